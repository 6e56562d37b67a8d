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

import "fmt"

// EventKind represents the type of event being requested or raised.
type EventKind uint8

const (
	SingleStep        = EventKind(1)
	Breakpoint        = EventKind(2)
	FramePop          = EventKind(3)
	Exception         = EventKind(4)
	UserDefined       = EventKind(5)
	ThreadStart       = EventKind(6)
	ThreadDeath       = EventKind(7)
	ClassPrepare      = EventKind(8)
	ClassUnload       = EventKind(9)
	ClassLoad         = EventKind(10)
	FieldAccess       = EventKind(20)
	FieldModification = EventKind(21)
	ExceptionCatch    = EventKind(30)
	MethodEntry       = EventKind(40)
	MethodExit        = EventKind(41)
	VMStart           = EventKind(90)
	VMDeath           = EventKind(99)
)

func (k EventKind) String() string {
	switch k {
	case SingleStep:
		return "SingleStep"
	case Breakpoint:
		return "Breakpoint"
	case FramePop:
		return "FramePop"
	case Exception:
		return "Exception"
	case UserDefined:
		return "UserDefined"
	case ThreadStart:
		return "ThreadStart"
	case ThreadDeath:
		return "ThreadDeath"
	case ClassPrepare:
		return "ClassPrepare"
	case ClassUnload:
		return "ClassUnload"
	case ClassLoad:
		return "ClassLoad"
	case FieldAccess:
		return "FieldAccess"
	case FieldModification:
		return "FieldModification"
	case ExceptionCatch:
		return "ExceptionCatch"
	case MethodEntry:
		return "MethodEntry"
	case MethodExit:
		return "MethodExit"
	case VMStart:
		return "VMStart"
	case VMDeath:
		return "VMDeath"
	default:
		return fmt.Sprintf("EventKind<%d>", int(k))
	}
}

// event returns a zero-valued Event of the specified kind, used by the
// decoder to pick a concrete type for a composite event record before
// decoding its kind-specific fields.
func (k EventKind) event() Event {
	switch k {
	case SingleStep:
		return &EventSingleStep{}
	case Breakpoint:
		return &EventBreakpoint{}
	case FramePop:
		return &EventFramePop{}
	case Exception:
		return &EventException{}
	case UserDefined:
		return &EventUserDefined{}
	case ThreadStart:
		return &EventThreadStart{}
	case ThreadDeath:
		return &EventThreadDeath{}
	case ClassPrepare:
		return &EventClassPrepare{}
	case ClassUnload:
		return &EventClassUnload{}
	case ClassLoad:
		return &EventClassLoad{}
	case FieldAccess:
		return &EventFieldAccess{}
	case FieldModification:
		return &EventFieldModification{}
	case ExceptionCatch:
		return &EventException{}
	case MethodEntry:
		return &EventMethodEntry{}
	case MethodExit:
		return &EventMethodExit{}
	case VMStart:
		return &EventVMStart{}
	case VMDeath:
		return &EventVMDeath{}
	default:
		return nil
	}
}
