// Copyright (C) 2017 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jdwp

// InvokeStaticInterfaceMethod invokes a static or default method declared
// on the specified interface. Requires JDWP 1.8+ (CanInvokeStaticInterfaceMethod-equivalent support).
func (c *Connection) InvokeStaticInterfaceMethod(iface InterfaceID, method MethodID, thread ThreadID, options InvokeOptions, args ...Value) (InvokeResult, error) {
	req := struct {
		Interface InterfaceID
		Thread    ThreadID
		Method    MethodID
		Args      []Value
		Options   InvokeOptions
	}{iface, thread, method, args, options}
	var res InvokeResult
	err := c.get(cmdInterfaceTypeInvokeMethod, req, &res)
	return res, err
}
