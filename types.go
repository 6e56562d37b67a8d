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

import (
	"fmt"
	"sort"
)

// TaggedObjectID is a type-and-object-identifier pair, as found at the sites
// the JDWP spec calls "tagged-object": the decoded Type selects which of the
// six object subtypes Object should be interpreted as.
type TaggedObjectID struct {
	Type   Tag
	Object ObjectID
}

// ID returns the underlying ObjectID.
func (t TaggedObjectID) ID() ObjectID { return t.Object }

// Location describes a single bytecode position: the kind of type it
// belongs to, the type itself, the method, and a code index within it.
type Location struct {
	Type     TypeTag
	Class    ClassID
	Method   MethodID
	Location uint64
}

// Char is JDWP's 16-bit character type (a Java char, not a Go rune).
type Char int16

// Value is the interface satisfied by every concrete Go type a tagged JDWP
// Value can hold: ArrayID, byte, Char, ObjectID, float32, float64, int,
// int16, int64, nil (void), bool, StringID, ThreadID, ThreadGroupID,
// ClassLoaderID or ClassObjectID. It exists purely as a marker so coder.go
// can recognize "this field is a tagged value" via reflect.TypeOf; there are
// no methods to implement, any of those concrete types already satisfies it.
type Value interface{}

// ValueSlice decodes as a JDWP "values" sequence: a 32-bit count followed by
// that many tagged Values, same as []Value, but given its own name where the
// protocol calls for a dedicated reply shape (StackFrame.GetValues).
type ValueSlice []Value

// VariableTable describes every local variable slot visible in a method, as
// returned by Method.VariableTable.
type VariableTable struct {
	ArgCount int
	Slots    []FrameVariable
}

// FrameVariable is a single local-variable-table entry.
type FrameVariable struct {
	CodeIndex uint64
	Name      string
	Signature string
	Length    int
	Slot      int
}

// ArgumentSlots returns the slots that could possibly be method arguments —
// those visible at code index 0 with a non-zero length — sorted by slot
// index.
func (v *VariableTable) ArgumentSlots() []FrameVariable {
	r := []FrameVariable{}
	for _, slot := range v.Slots {
		if slot.CodeIndex == 0 && slot.Length > 0 {
			r = append(r, slot)
		}
	}
	sort.Slice(r, func(i, j int) bool { return r[i].Slot < r[j].Slot })
	return r
}

// ThreadStatus is the current execution state of a thread, as returned by
// ThreadReference.Status. Unlike SuspendStatus this is not a bitmask: the VM
// reports exactly one status at a time.
type ThreadStatus int32

const (
	ThreadStatusZombie   = ThreadStatus(0)
	ThreadStatusRunning  = ThreadStatus(1)
	ThreadStatusSleeping = ThreadStatus(2)
	ThreadStatusMonitor  = ThreadStatus(3)
	ThreadStatusWait     = ThreadStatus(4)
)

func (s ThreadStatus) String() string {
	switch s {
	case ThreadStatusZombie:
		return "Zombie"
	case ThreadStatusRunning:
		return "Running"
	case ThreadStatusSleeping:
		return "Sleeping"
	case ThreadStatusMonitor:
		return "Monitor"
	case ThreadStatusWait:
		return "Wait"
	default:
		return fmt.Sprintf("ThreadStatus<%d>", int32(s))
	}
}

// SuspendStatus is a bitmask describing whether a thread is suspended,
// returned alongside ThreadStatus by ThreadReference.Status.
type SuspendStatus int32

const (
	SuspendStatusSuspended = SuspendStatus(0x1)
)

// Suspended reports whether the SuspendStatusSuspended bit is set.
func (s SuspendStatus) Suspended() bool { return s&SuspendStatusSuspended != 0 }

// ClassInfo is the reference-type/status pair returned wherever the
// protocol reports "the type of this object, plus whether it is prepared"
// (e.g. VirtualMachine.ClassesBySignature).
type ClassInfo struct {
	RefTypeTag TypeTag
	TypeID     ReferenceTypeID
	Status     ClassStatus
}

// FrameInfo pairs a stack frame's identifier with its current location, as
// returned by ThreadReference.Frames.
type FrameInfo struct {
	Frame    FrameID
	Location Location
}

// Capabilities is the reply shape of VirtualMachine.Capabilities: a flat
// record of booleans describing what the target VM supports.
type Capabilities struct {
	CanWatchFieldModification        bool
	CanWatchFieldAccess              bool
	CanGetBytecodes                  bool
	CanGetSyntheticAttribute         bool
	CanGetOwnedMonitorInfo           bool
	CanGetCurrentContendedMonitor    bool
	CanGetMonitorInfo                bool
}

// CapabilitiesNew is the reply shape of VirtualMachine.CapabilitiesNew: the
// original Capabilities record extended with the capabilities added by
// later JDWP versions.
type CapabilitiesNew struct {
	Capabilities
	CanRedefineClasses                bool
	CanAddMethod                      bool
	CanUnrestrictedlyRedefineClasses  bool
	CanPopFrames                      bool
	CanUseInstanceFilters             bool
	CanGetSourceDebugExtension        bool
	CanRequestVMDeathEvent            bool
	CanSetDefaultStratum              bool
	CanGetInstanceInfo                bool
	CanRequestMonitorEvents           bool
	CanGetMonitorFrameInfo            bool
	CanUseSourceNameFilters           bool
	CanGetConstantPool                bool
	CanForceEarlyReturn               bool
	CanBeModified                     bool
	CanGetClassFileVersion            bool
	CanGetMethodReturnValues          bool
	CanGetInstanceInfo2               bool
	CanUseTags                        bool
	CanUseSourceNameFilters2           bool
	Reserved28                        bool
	Reserved29                        bool
	Reserved30                        bool
	Reserved31                        bool
	Reserved32                        bool
}
