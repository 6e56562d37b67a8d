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

// Version describes the target VM and the JDWP revision it speaks.
type Version struct {
	Description string
	JDWPMajor   int
	JDWPMinor   int
	Version     string
	Name        string
}

// GetVersion returns the JDWP version from the server.
func (c *Connection) GetVersion() (Version, error) {
	res := Version{}
	err := c.get(cmdVirtualMachineVersion, struct{}{}, &res)
	return res, err
}

// GetClassesBySignature returns every loaded class matching the given JNI
// type signature (e.g. "Ljava/lang/String;").
func (c *Connection) GetClassesBySignature(signature string) ([]ClassInfo, error) {
	res := []struct {
		Kind   TypeTag
		TypeID ReferenceTypeID
		Status ClassStatus
	}{}
	err := c.get(cmdVirtualMachineClassesBySignature, signature, &res)
	out := make([]ClassInfo, len(res))
	for i, r := range res {
		out[i] = ClassInfo{RefTypeTag: r.Kind, TypeID: r.TypeID, Status: r.Status}
	}
	return out, err
}

// GetAllClasses returns every class currently loaded by the target VM.
func (c *Connection) GetAllClasses() ([]ClassInfo, error) {
	res := []ClassInfo{}
	err := c.get(cmdVirtualMachineAllClasses, struct{}{}, &res)
	return res, err
}

// GetAllThreads returns the identifiers of every live thread.
func (c *Connection) GetAllThreads() ([]ThreadID, error) {
	res := []ThreadID{}
	err := c.get(cmdVirtualMachineAllThreads, struct{}{}, &res)
	return res, err
}

// GetTopLevelThreadGroups returns the root thread groups of the target VM.
func (c *Connection) GetTopLevelThreadGroups() ([]ThreadGroupID, error) {
	res := []ThreadGroupID{}
	err := c.get(cmdVirtualMachineTopLevelThreadGroups, struct{}{}, &res)
	return res, err
}

// GetIDSizes returns the negotiated byte widths of the five ID kinds. Used
// once by Open and exposed for callers that want to print diagnostics.
func (c *Connection) GetIDSizes() (IDSizes, error) {
	res := IDSizes{}
	err := c.get(cmdVirtualMachineIDSizes, struct{}{}, &res)
	return res, err
}

// Suspend suspends every thread in the target VM.
func (c *Connection) Suspend() error {
	return c.get(cmdVirtualMachineSuspend, struct{}{}, nil)
}

// Resume resumes every thread in the target VM.
func (c *Connection) Resume() error {
	return c.get(cmdVirtualMachineResume, struct{}{}, nil)
}

// ResumeAllExcept suspends the target thread before resuming every other
// thread, so only it stays stopped.
func (c *Connection) ResumeAllExcept(thread ThreadID) error {
	if err := c.SuspendThread(thread); err != nil {
		return err
	}
	return c.Resume()
}

// Exit terminates the target VM with the given exit code.
func (c *Connection) Exit(code int32) error {
	req := struct{ ExitCode int32 }{code}
	return c.get(cmdVirtualMachineExit, req, nil)
}

// CreateString interns str in the target VM, returning its StringID.
func (c *Connection) CreateString(str string) (StringID, error) {
	res := StringID(0)
	err := c.get(cmdVirtualMachineCreateString, str, &res)
	return res, err
}

// GetCapabilities returns the base set of optional JDWP features the
// target VM supports.
func (c *Connection) GetCapabilities() (Capabilities, error) {
	res := Capabilities{}
	err := c.get(cmdVirtualMachineCapabilities, struct{}{}, &res)
	return res, err
}

// GetCapabilitiesNew returns the full set of optional JDWP features the
// target VM supports, including those added after the original
// Capabilities command.
func (c *Connection) GetCapabilitiesNew() (CapabilitiesNew, error) {
	res := CapabilitiesNew{}
	err := c.get(cmdVirtualMachineCapabilitiesNew, struct{}{}, &res)
	return res, err
}

// GetClassPaths returns the base directory, classpath and bootclasspath the
// target VM was launched with.
func (c *Connection) GetClassPaths() (baseDir string, classpaths, bootClasspaths []string, err error) {
	res := struct {
		BaseDir        string
		Classpaths     []string
		BootClasspaths []string
	}{}
	err = c.get(cmdVirtualMachineClassPaths, struct{}{}, &res)
	return res.BaseDir, res.Classpaths, res.BootClasspaths, err
}

// DisposeObjects tells the target VM it may release its strong references
// to the given objects, each held the given number of extra times beyond
// the implicit one from having sent its ObjectID over the wire.
func (c *Connection) DisposeObjects(refs map[ObjectID]int) error {
	type request struct {
		Object      ObjectID
		RefCount    int
	}
	reqs := make([]request, 0, len(refs))
	for id, count := range refs {
		reqs = append(reqs, request{id, count})
	}
	req := struct{ Requests []request }{reqs}
	return c.get(cmdVirtualMachineDisposeObjects, req, nil)
}

// HoldEvents tells the target VM to queue, rather than deliver, further
// events until ReleaseEvents is called.
func (c *Connection) HoldEvents() error {
	return c.get(cmdVirtualMachineHoldEvents, struct{}{}, nil)
}

// ReleaseEvents undoes HoldEvents, delivering any queued events.
func (c *Connection) ReleaseEvents() error {
	return c.get(cmdVirtualMachineReleaseEvents, struct{}{}, nil)
}

// SetDefaultStratum changes the default stratum (source-language view, in
// the sense of JSR-45) used when one isn't named explicitly.
func (c *Connection) SetDefaultStratum(stratum string) error {
	return c.get(cmdVirtualMachineSetDefaultStratum, stratum, nil)
}

// DisposeSession invalidates this connection's JDWP session without closing the
// transport: the target VM resumes all threads and stops reporting events,
// but the socket itself is still open. Most callers want Connection.Dispose
// instead, which also tears down the transport.
func (c *Connection) DisposeSession() error {
	return c.get(cmdVirtualMachineDispose, struct{}{}, nil)
}
