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
	"strings"
)

// Field describes a single field of a class or interface, as returned by
// ReferenceType.Fields.
type Field struct {
	ID        FieldID
	Name      string
	Signature string
	ModBits   ModBits
}

// Fields is a collection of Field, as cached per reference type by
// Connection.GetFields.
type Fields []Field

func (l Fields) String() string {
	parts := make([]string, len(l))
	for i, f := range l {
		parts[i] = fmt.Sprintf("%+v", f)
	}
	return strings.Join(parts, "\n")
}

// FindByName returns the field named name, or nil if l has none.
func (l Fields) FindByName(name string) *Field {
	for i, f := range l {
		if f.Name == name {
			return &l[i]
		}
	}
	return nil
}

// FindBySignature returns the field with the given name and signature, or
// nil if l has none.
func (l Fields) FindBySignature(name, sig string) *Field {
	for i, f := range l {
		if f.Name == name && f.Signature == sig {
			return &l[i]
		}
	}
	return nil
}

// FindByID returns the field with the given identifier, or nil if l has
// none.
func (l Fields) FindByID(id FieldID) *Field {
	for i, f := range l {
		if f.ID == id {
			return &l[i]
		}
	}
	return nil
}
