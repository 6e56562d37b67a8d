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

// compositeEvent is the body of a command-set-64 packet: one suspend policy
// followed by a 32-bit-counted sequence of per-event records (spec §3).
type compositeEvent struct {
	Policy SuspendPolicy
	Events []Event
}

// SuspendPolicy controls which threads a composite event suspends.
type SuspendPolicy uint8

const (
	SuspendNone        = SuspendPolicy(0)
	SuspendEventThread = SuspendPolicy(1)
	SuspendAll         = SuspendPolicy(2)
)

// Event is the interface implemented by every event kind raised by the VM.
type Event interface {
	request() EventRequestID
	Kind() EventKind
}

// EventVMStart is raised when the virtual machine is initialized.
type EventVMStart struct {
	Request EventRequestID
	Thread  ThreadID
}

// EventVMDeath is raised when the virtual machine is about to shut down.
type EventVMDeath struct {
	Request EventRequestID
}

// EventSingleStep is raised when a single-step has completed.
type EventSingleStep struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

// EventBreakpoint is raised when a breakpoint has been hit.
type EventBreakpoint struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

// EventMethodEntry is raised when a method has been entered.
type EventMethodEntry struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

// EventMethodExit is raised when a method has been exited.
type EventMethodExit struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

// EventException is raised when an exception is thrown (or, for
// ExceptionCatch requests, caught).
type EventException struct {
	Request       EventRequestID
	Thread        ThreadID
	Location      Location
	Exception     TaggedObjectID
	CatchLocation Location
}

// EventFramePop is raised when a method frame has been popped, for a
// request that asked to be notified when a specific frame returns.
type EventFramePop struct {
	Request  EventRequestID
	Thread   ThreadID
	Location Location
}

// EventUserDefined is raised for a user-defined event. The JDWP
// specification marks this kind obsolete, and no VM in practice sends it;
// it carries no payload beyond the request id that would have solicited it.
type EventUserDefined struct {
	Request EventRequestID
}

// EventClassLoad is raised when a class is loaded. The JDWP specification
// marks this kind obsolete in favor of ClassPrepare and no modern VM sends
// it, but the wire shape it was originally defined with is kept here so
// every EventKind has a catalog entry.
type EventClassLoad struct {
	Request   EventRequestID
	Thread    ThreadID
	ClassKind TypeTag
	ClassType ReferenceTypeID
	Signature string
	Status    ClassStatus
}

// EventThreadStart is raised when a new thread is started.
type EventThreadStart struct {
	Request EventRequestID
	Thread  ThreadID
}

// EventThreadDeath is raised when a thread has stopped.
type EventThreadDeath struct {
	Request EventRequestID
	Thread  ThreadID
}

// EventClassPrepare is raised when a class enters the prepared state.
type EventClassPrepare struct {
	Request   EventRequestID
	Thread    ThreadID
	ClassKind TypeTag
	ClassType ReferenceTypeID
	Signature string
	Status    ClassStatus
}

// EventClassUnload is raised when a class is unloaded.
type EventClassUnload struct {
	Request   EventRequestID
	Signature string
}

// EventFieldAccess is raised when a field is accessed.
type EventFieldAccess struct {
	Request   EventRequestID
	Thread    ThreadID
	Location  Location
	FieldKind TypeTag
	FieldType ReferenceTypeID
	Field     FieldID
	Object    TaggedObjectID
}

// EventFieldModification is raised when a field is about to be modified.
type EventFieldModification struct {
	Request   EventRequestID
	Thread    ThreadID
	Location  Location
	FieldKind TypeTag
	FieldType ReferenceTypeID
	Field     FieldID
	Object    TaggedObjectID
	NewValue  Value
}

func (e *EventVMStart) request() EventRequestID           { return e.Request }
func (e *EventVMDeath) request() EventRequestID           { return e.Request }
func (e *EventSingleStep) request() EventRequestID        { return e.Request }
func (e *EventBreakpoint) request() EventRequestID        { return e.Request }
func (e *EventFramePop) request() EventRequestID          { return e.Request }
func (e *EventMethodEntry) request() EventRequestID       { return e.Request }
func (e *EventMethodExit) request() EventRequestID        { return e.Request }
func (e *EventException) request() EventRequestID         { return e.Request }
func (e *EventUserDefined) request() EventRequestID       { return e.Request }
func (e *EventThreadStart) request() EventRequestID       { return e.Request }
func (e *EventThreadDeath) request() EventRequestID       { return e.Request }
func (e *EventClassPrepare) request() EventRequestID      { return e.Request }
func (e *EventClassUnload) request() EventRequestID       { return e.Request }
func (e *EventClassLoad) request() EventRequestID         { return e.Request }
func (e *EventFieldAccess) request() EventRequestID       { return e.Request }
func (e *EventFieldModification) request() EventRequestID { return e.Request }

func (*EventVMStart) Kind() EventKind           { return VMStart }
func (*EventVMDeath) Kind() EventKind           { return VMDeath }
func (*EventSingleStep) Kind() EventKind        { return SingleStep }
func (*EventBreakpoint) Kind() EventKind        { return Breakpoint }
func (*EventFramePop) Kind() EventKind          { return FramePop }
func (*EventMethodEntry) Kind() EventKind       { return MethodEntry }
func (*EventMethodExit) Kind() EventKind        { return MethodExit }
func (*EventException) Kind() EventKind         { return Exception }
func (*EventUserDefined) Kind() EventKind       { return UserDefined }
func (*EventThreadStart) Kind() EventKind       { return ThreadStart }
func (*EventThreadDeath) Kind() EventKind       { return ThreadDeath }
func (*EventClassPrepare) Kind() EventKind      { return ClassPrepare }
func (*EventClassUnload) Kind() EventKind       { return ClassUnload }
func (*EventClassLoad) Kind() EventKind         { return ClassLoad }
func (*EventFieldAccess) Kind() EventKind       { return FieldAccess }
func (*EventFieldModification) Kind() EventKind { return FieldModification }
