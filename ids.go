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

// ObjectID is an object instance identifier.
// If the specific object type is known, then ObjectID can be cast to
// ThreadID, ThreadGroupID, StringID, ClassLoaderID, ClassObjectID or ArrayID.
// The zero value denotes null where the call site permits it.
type ObjectID uint64

// ThreadID is a thread instance identifier.
// ThreadID can always be safely cast to the less specific ObjectID.
type ThreadID uint64

// ThreadGroupID is a thread group identifier.
// ThreadGroupID can always be safely cast to the less specific ObjectID.
type ThreadGroupID uint64

// StringID is a string instance identifier.
// StringID can always be safely cast to the less specific ObjectID.
type StringID uint64

// ClassLoaderID is a class loader identifier.
// ClassLoaderID can always be safely cast to the less specific ObjectID.
type ClassLoaderID uint64

// ClassObjectID is a class object instance identifier.
// ClassObjectID can always be safely cast to the less specific ObjectID.
type ClassObjectID uint64

// ArrayID is an array instance identifier.
// ArrayID can always be safely cast to the less specific ObjectID.
type ArrayID uint64

// NullObject is the distinguished zero ObjectID. See the "null or unknown"
// open question in SPEC_FULL.md §5: this package preserves the zero byte
// on the wire rather than collapsing it into a Go nil.
const NullObject = ObjectID(0)

// Object is the interface implemented by all types that are a variant of
// ObjectID.
type Object interface {
	ID() ObjectID
}

func (i ObjectID) ID() ObjectID      { return i }
func (i ThreadID) ID() ObjectID      { return ObjectID(i) }
func (i ThreadGroupID) ID() ObjectID { return ObjectID(i) }
func (i StringID) ID() ObjectID      { return ObjectID(i) }
func (i ClassLoaderID) ID() ObjectID { return ObjectID(i) }
func (i ClassObjectID) ID() ObjectID { return ObjectID(i) }
func (i ArrayID) ID() ObjectID       { return ObjectID(i) }

// ReferenceTypeID is a reference type identifier.
// If the specific reference type is known, then ReferenceTypeID can be cast
// to ClassID, InterfaceID or ArrayTypeID.
type ReferenceTypeID uint64

// ClassID is a class reference type identifier.
// ClassID can always be safely cast to the less specific ReferenceTypeID.
type ClassID uint64

// InterfaceID is an interface reference type identifier.
// InterfaceID can always be safely cast to the less specific ReferenceTypeID.
type InterfaceID uint64

// ArrayTypeID is an array reference type identifier.
// ArrayTypeID can always be safely cast to the less specific ReferenceTypeID.
type ArrayTypeID uint64

// NullReferenceType is the distinguished zero ReferenceTypeID.
const NullReferenceType = ReferenceTypeID(0)

// MethodID is the identifier for a single method of a class or interface.
type MethodID uint64

// FieldID is the identifier for a single field of a class or interface.
type FieldID uint64

// FrameID is the identifier for a stack frame.
type FrameID uint64

func (i ObjectID) String() string        { return fmt.Sprintf("ObjectID<%d>", uint64(i)) }
func (i ThreadID) String() string        { return fmt.Sprintf("ThreadID<%d>", uint64(i)) }
func (i ThreadGroupID) String() string   { return fmt.Sprintf("ThreadGroupID<%d>", uint64(i)) }
func (i StringID) String() string        { return fmt.Sprintf("StringID<%d>", uint64(i)) }
func (i ClassLoaderID) String() string   { return fmt.Sprintf("ClassLoaderID<%d>", uint64(i)) }
func (i ClassObjectID) String() string   { return fmt.Sprintf("ClassObjectID<%d>", uint64(i)) }
func (i ArrayID) String() string         { return fmt.Sprintf("ArrayID<%d>", uint64(i)) }
func (i ReferenceTypeID) String() string { return fmt.Sprintf("ReferenceTypeID<%d>", uint64(i)) }
func (i ClassID) String() string         { return fmt.Sprintf("ClassID<%d>", uint64(i)) }
func (i InterfaceID) String() string     { return fmt.Sprintf("InterfaceID<%d>", uint64(i)) }
func (i ArrayTypeID) String() string     { return fmt.Sprintf("ArrayTypeID<%d>", uint64(i)) }
func (i MethodID) String() string        { return fmt.Sprintf("MethodID<%d>", uint64(i)) }
func (i FieldID) String() string         { return fmt.Sprintf("FieldID<%d>", uint64(i)) }
func (i FrameID) String() string         { return fmt.Sprintf("FrameID<%d>", uint64(i)) }

// IDSizes describes the negotiated byte widths of the five ID kinds. It is
// read once from the target VM immediately after handshake (via the
// VirtualMachine.IDSizes command) and never mutated again for the life of
// the connection — every encode/decode call after that reads it without
// locking.
type IDSizes struct {
	FieldIDSize         int32 // FieldID size in bytes.
	MethodIDSize        int32 // MethodID size in bytes.
	ObjectIDSize        int32 // ObjectID size in bytes.
	ReferenceTypeIDSize int32 // ReferenceTypeID size in bytes.
	FrameIDSize         int32 // FrameID size in bytes.
}

// defaultIDSizes is used only until the real IDSizes command reply arrives;
// every width is the conservative maximum so a bug that reads before the
// handshake completes fails loudly rather than truncating silently.
var defaultIDSizes = IDSizes{
	FieldIDSize:         8,
	MethodIDSize:        8,
	ObjectIDSize:        8,
	ReferenceTypeIDSize: 8,
	FrameIDSize:         8,
}

// Validate checks that every width is one of the sizes the wire format
// permits (1, 2, 4 or 8 bytes), returning ErrInvalidIDSize if not.
func (s IDSizes) Validate() error {
	for _, w := range []int32{s.FieldIDSize, s.MethodIDSize, s.ObjectIDSize, s.ReferenceTypeIDSize, s.FrameIDSize} {
		switch w {
		case 1, 2, 4, 8:
		default:
			return ErrInvalidIDSize
		}
	}
	return nil
}
