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

// GetThreadName returns a thread's name.
func (c *Connection) GetThreadName(id ThreadID) (string, error) {
	var res string
	err := c.get(cmdThreadReferenceName, id, &res)
	return res, err
}

// SuspendThread suspends the specified thread.
func (c *Connection) SuspendThread(id ThreadID) error {
	return c.get(cmdThreadReferenceSuspend, id, nil)
}

// ResumeThread resumes the specified thread.
func (c *Connection) ResumeThread(id ThreadID) error {
	return c.get(cmdThreadReferenceResume, id, nil)
}

// GetThreadStatus returns the thread's current execution and suspend
// status.
func (c *Connection) GetThreadStatus(id ThreadID) (ThreadStatus, SuspendStatus, error) {
	var res struct {
		T ThreadStatus
		S SuspendStatus
	}
	err := c.get(cmdThreadReferenceStatus, id, &res)
	return res.T, res.S, err
}

// GetThreadGroup returns the thread group that contains the given thread.
func (c *Connection) GetThreadGroup(id ThreadID) (ThreadGroupID, error) {
	var res ThreadGroupID
	err := c.get(cmdThreadReferenceThreadGroup, id, &res)
	return res, err
}

// GetFrames returns up to count stack frames of the given thread, starting
// at start (0 is the current frame). A negative count requests every
// remaining frame.
func (c *Connection) GetFrames(thread ThreadID, start, count int) ([]FrameInfo, error) {
	req := struct {
		Thread       ThreadID
		Start, Count int
	}{thread, start, count}
	var res []FrameInfo
	err := c.get(cmdThreadReferenceFrames, req, &res)
	return res, err
}

// GetFrameCount returns the number of stack frames in the given thread.
func (c *Connection) GetFrameCount(thread ThreadID) (int, error) {
	var res int
	err := c.get(cmdThreadReferenceFrameCount, thread, &res)
	return res, err
}

// GetSuspendCount returns the number of times the thread has been suspended
// without a corresponding resume.
func (c *Connection) GetSuspendCount(id ThreadID) (int, error) {
	var count int
	err := c.get(cmdThreadReferenceSuspendCount, id, &count)
	return count, err
}

// Interrupt sends a thread interrupt, the same as Thread.interrupt().
func (c *Connection) Interrupt(id ThreadID) error {
	return c.get(cmdThreadReferenceInterrupt, id, nil)
}

// Stop causes the thread to throw the given exception, the same as the
// deprecated Thread.stop().
func (c *Connection) Stop(id ThreadID, exception ObjectID) error {
	req := struct {
		Thread    ThreadID
		Exception ObjectID
	}{id, exception}
	return c.get(cmdThreadReferenceStop, req, nil)
}
