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

// GetThreadGroupName returns a thread group's name.
func (c *Connection) GetThreadGroupName(id ThreadGroupID) (string, error) {
	var res string
	err := c.get(cmdThreadGroupReferenceName, id, &res)
	return res, err
}

// GetThreadGroupParent returns the parent of the given thread group, or the
// zero ThreadGroupID if it is a top-level group.
func (c *Connection) GetThreadGroupParent(id ThreadGroupID) (ThreadGroupID, error) {
	var res ThreadGroupID
	err := c.get(cmdThreadGroupReferenceParent, id, &res)
	return res, err
}

// GetThreadGroupChildren returns the threads and child thread groups
// directly contained in the given thread group.
func (c *Connection) GetThreadGroupChildren(id ThreadGroupID) (threads []ThreadID, groups []ThreadGroupID, err error) {
	res := struct {
		Threads []ThreadID
		Groups  []ThreadGroupID
	}{}
	err = c.get(cmdThreadGroupReferenceChildren, id, &res)
	return res.Threads, res.Groups, err
}
