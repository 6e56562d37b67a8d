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

// GetThisObject returns the "this" reference for the specified thread and
// stack frame, or the zero TaggedObjectID if the frame is a static method.
func (c *Connection) GetThisObject(thread ThreadID, frame FrameID) (TaggedObjectID, error) {
	req := struct {
		Thread ThreadID
		Frame  FrameID
	}{thread, frame}
	var res TaggedObjectID
	err := c.get(cmdStackFrameThisObject, req, &res)
	return res, err
}

// VariableRequest names a local variable slot to fetch with GetValues.
type VariableRequest struct {
	Index int
	Tag   uint8
}

// GetValues returns the values of the given local variable slots in the
// specified thread and frame.
func (c *Connection) GetValues(thread ThreadID, frame FrameID, slots []VariableRequest) (ValueSlice, error) {
	req := struct {
		Thread ThreadID
		Frame  FrameID
		Slots  []VariableRequest
	}{thread, frame, slots}
	var res ValueSlice
	err := c.get(cmdStackFrameGetValues, req, &res)
	return res, err
}

// VariableAssignmentRequest names a local variable slot and the value to
// store in it, for SetValues.
type VariableAssignmentRequest struct {
	Index int
	Value Value
}

// SetValues writes the given local variable slots in the specified thread
// and frame.
func (c *Connection) SetValues(thread ThreadID, frame FrameID, slots []VariableAssignmentRequest) error {
	req := struct {
		Thread ThreadID
		Frame  FrameID
		Slots  []VariableAssignmentRequest
	}{thread, frame, slots}
	return c.get(cmdStackFrameSetValues, req, nil)
}

// PopFrames pops the specified frame and all frames above it off the
// thread's call stack. The frame's method must return normally from the
// caller's point of view; execution resumes just before the call
// instruction that invoked it.
func (c *Connection) PopFrames(thread ThreadID, frame FrameID) error {
	req := struct {
		Thread ThreadID
		Frame  FrameID
	}{thread, frame}
	return c.get(cmdStackFramePopFrames, req, nil)
}
