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

import "context"

// EventRequestID identifies a standing event request registered with
// SetEvent.
type EventRequestID int

// SetEvent asks the target VM to start reporting events of the given kind
// that satisfy every modifier, suspending threads per policy when one
// fires. Prefer WatchEvents, which also handles delivery and cleanup.
func (c *Connection) SetEvent(kind EventKind, policy SuspendPolicy, modifiers ...EventModifier) (EventRequestID, error) {
	return c.setEventCtx(context.Background(), kind, policy, modifiers...)
}

// setEventCtx is SetEvent with cancellation, used by WatchEvents so a
// caller's ctx can abandon the request before it's even acknowledged.
func (c *Connection) setEventCtx(ctx context.Context, kind EventKind, policy SuspendPolicy, modifiers ...EventModifier) (EventRequestID, error) {
	req := struct {
		Kind          EventKind
		SuspendPolicy SuspendPolicy
		Modifiers     []EventModifier
	}{kind, policy, modifiers}
	var res EventRequestID
	err := c.getCtx(ctx, cmdEventRequestSet, req, &res)
	return res, err
}

// ClearEvent cancels a standing event request.
func (c *Connection) ClearEvent(kind EventKind, id EventRequestID) error {
	req := struct {
		Kind EventKind
		ID   EventRequestID
	}{kind, id}
	return c.get(cmdEventRequestClear, req, nil)
}

// ClearAllBreakpoints removes every breakpoint event request.
func (c *Connection) ClearAllBreakpoints() error {
	return c.get(cmdEventRequestClearAllBreakpoints, struct{}{}, nil)
}

// EventModifier is implemented by every filter that can be attached to an
// event request. See the JDWP spec's EventRequest.Set for the rules
// governing which modifiers apply to which event kinds.
type EventModifier interface {
	modKind() uint8
}

// CountEventModifier limits the number of times an event fires before the
// request is automatically cleared: a count of 2 lets exactly two events
// through.
type CountEventModifier int32

// ThreadOnlyEventModifier restricts events to those raised on the given
// thread.
type ThreadOnlyEventModifier ThreadID

// ClassOnlyEventModifier restricts events to those associated with the
// given class or its subtypes.
type ClassOnlyEventModifier ClassID

// ClassMatchEventModifier restricts events to those whose class name
// matches pattern, which may use a single leading or trailing '*' wildcard
// (e.g. "java.lang.*" or "*.String").
type ClassMatchEventModifier string

// ClassExcludeEventModifier restricts events to those whose class name
// does NOT match pattern. See ClassMatchEventModifier for pattern syntax.
type ClassExcludeEventModifier string

// LocationOnlyEventModifier restricts events to those originating at the
// given location. Used by Breakpoint requests.
type LocationOnlyEventModifier Location

// ExceptionOnlyEventModifier restricts Exception events by thrown type and
// by whether they are caught, uncaught, or both.
type ExceptionOnlyEventModifier struct {
	ExceptionOrNull ReferenceTypeID
	Caught          bool
	Uncaught        bool
}

// FieldOnlyEventModifier restricts FieldAccess/FieldModification events to
// the given field.
type FieldOnlyEventModifier struct {
	Type  ReferenceTypeID
	Field FieldID
}

// StepEventModifier configures a SingleStep request's granularity (Size)
// and scope (Depth), on the given thread.
type StepEventModifier struct {
	Thread ThreadID
	Size   int32
	Depth  int32
}

// InstanceOnlyEventModifier restricts events to those whose "this" object
// is the given instance.
type InstanceOnlyEventModifier ObjectID

// SourceNameMatchEventModifier restricts events to those whose source name
// (per JSR-45) matches pattern.
type SourceNameMatchEventModifier string

func (CountEventModifier) modKind() uint8          { return 1 }
func (ThreadOnlyEventModifier) modKind() uint8     { return 3 }
func (ClassOnlyEventModifier) modKind() uint8      { return 4 }
func (ClassMatchEventModifier) modKind() uint8     { return 5 }
func (ClassExcludeEventModifier) modKind() uint8   { return 6 }
func (LocationOnlyEventModifier) modKind() uint8   { return 7 }
func (ExceptionOnlyEventModifier) modKind() uint8  { return 8 }
func (FieldOnlyEventModifier) modKind() uint8      { return 9 }
func (StepEventModifier) modKind() uint8           { return 10 }
func (InstanceOnlyEventModifier) modKind() uint8   { return 11 }
func (SourceNameMatchEventModifier) modKind() uint8 { return 12 }
