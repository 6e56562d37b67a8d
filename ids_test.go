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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDSizesValidate(t *testing.T) {
	valid := IDSizes{FieldIDSize: 1, MethodIDSize: 2, ObjectIDSize: 4, ReferenceTypeIDSize: 8, FrameIDSize: 1}
	assert.NoError(t, valid.Validate())

	invalid := defaultIDSizes
	invalid.ObjectIDSize = 3
	assert.ErrorIs(t, invalid.Validate(), ErrInvalidIDSize)

	invalid = defaultIDSizes
	invalid.FrameIDSize = 0
	assert.ErrorIs(t, invalid.Validate(), ErrInvalidIDSize)
}

func TestDefaultIDSizesAreValid(t *testing.T) {
	assert.NoError(t, defaultIDSizes.Validate())
}

func TestObjectSubtypesShareRepresentation(t *testing.T) {
	// Every ID kind wraps the same underlying uint64 representation, and
	// every Object subtype converts to the less-specific ObjectID via ID().
	var o Object = ThreadID(42)
	assert.Equal(t, ObjectID(42), o.ID())
	o = StringID(7)
	assert.Equal(t, ObjectID(7), o.ID())
}
