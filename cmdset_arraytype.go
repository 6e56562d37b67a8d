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

// NewArrayInstance creates a new array instance of the specified array
// type and length.
func (c *Connection) NewArrayInstance(ty ArrayTypeID, length int32) (TaggedObjectID, error) {
	req := struct {
		Type   ArrayTypeID
		Length int32
	}{ty, length}
	var res TaggedObjectID
	err := c.get(cmdArrayTypeNewInstance, req, &res)
	return res, err
}
