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

// GetVisibleClasses returns every class visible to the specified class
// loader.
func (c *Connection) GetVisibleClasses(id ClassLoaderID) ([]ClassInfo, error) {
	var res []ClassInfo
	err := c.get(cmdClassLoaderReferenceVisibleClasses, id, &res)
	return res, err
}
