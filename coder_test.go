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
	"bytes"
	"encoding/binary"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// idSizeCombos covers the uniform widths plus one mixed combination where
// field, method, object and reference-type ids all have different widths,
// exercising coder.go's claim that a field-id is never written at object-id
// width even when the two happen to coincide.
var idSizeCombos = []IDSizes{
	{FieldIDSize: 1, MethodIDSize: 1, ObjectIDSize: 1, ReferenceTypeIDSize: 1, FrameIDSize: 1},
	{FieldIDSize: 2, MethodIDSize: 2, ObjectIDSize: 2, ReferenceTypeIDSize: 2, FrameIDSize: 2},
	{FieldIDSize: 4, MethodIDSize: 4, ObjectIDSize: 4, ReferenceTypeIDSize: 4, FrameIDSize: 4},
	{FieldIDSize: 8, MethodIDSize: 8, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 8},
	{FieldIDSize: 1, MethodIDSize: 2, ObjectIDSize: 4, ReferenceTypeIDSize: 8, FrameIDSize: 1},
}

// roundTrip encodes value, decodes it back into a fresh zero value of the
// same type, and returns the result for the caller to assert against.
func roundTrip(t *testing.T, c *Connection, value interface{}) interface{} {
	t.Helper()
	buf := &bytes.Buffer{}
	w := newWriter(buf)
	require.NoError(t, c.encode(w, reflect.ValueOf(value)))

	out := reflect.New(reflect.TypeOf(value)).Elem()
	r := newReader(buf)
	require.NoError(t, c.decode(r, out))
	require.NoError(t, r.Error())
	return out.Interface()
}

// fitWidth truncates v to what an ID of the given byte width can carry, so
// a test value is a valid ID under every combination in idSizeCombos.
func fitWidth(v uint64, width int32) uint64 {
	if width >= 8 {
		return v
	}
	return v & (uint64(1)<<(8*uint(width)) - 1)
}

func TestLocationRoundTrip(t *testing.T) {
	for _, sizes := range idSizeCombos {
		c := &Connection{idSizes: sizes}
		loc := Location{Type: Class, Class: ClassID(fitWidth(12345, sizes.ReferenceTypeIDSize)), Method: MethodID(99), Location: 0xff00ff00}
		got := roundTrip(t, c, loc)
		assert.Equal(t, loc, got)
	}
}

func TestTaggedObjectIDRoundTrip(t *testing.T) {
	for _, sizes := range idSizeCombos {
		c := &Connection{idSizes: sizes}
		for _, tag := range []Tag{TagObject, TagThread, TagThreadGroup, TagString, TagClassLoader, TagClassObject, TagArray} {
			obj := TaggedObjectID{Type: tag, Object: ObjectID(fitWidth(4242, sizes.ObjectIDSize))}
			got := roundTrip(t, c, obj)
			assert.Equal(t, obj, got)
		}
	}
}

func TestClassInfoRoundTrip(t *testing.T) {
	for _, sizes := range idSizeCombos {
		c := &Connection{idSizes: sizes}
		info := ClassInfo{RefTypeTag: Class, TypeID: ReferenceTypeID(fitWidth(777, sizes.ReferenceTypeIDSize)), Status: StatusPrepared | StatusInitialized}
		got := roundTrip(t, c, info)
		assert.Equal(t, info, got)
	}
}

func TestCapabilitiesNewRoundTrip(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	caps := CapabilitiesNew{
		Capabilities:           Capabilities{CanWatchFieldAccess: true, CanGetBytecodes: true},
		CanRedefineClasses:     true,
		CanPopFrames:           true,
		CanGetConstantPool:     true,
		CanUseSourceNameFilters2: true,
	}
	got := roundTrip(t, c, caps).(CapabilitiesNew)
	assert.Equal(t, caps, got)
}

func TestFieldsAndMethodsRoundTrip(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	fields := Fields{
		{ID: FieldID(1), Name: "value", Signature: "I", ModBits: ModPrivate},
		{ID: FieldID(2), Name: "name", Signature: "Ljava/lang/String;", ModBits: ModPrivate | ModFinal},
	}
	got := roundTrip(t, c, fields).(Fields)
	assert.Equal(t, fields, got)

	methods := Methods{
		{ID: MethodID(1), Name: "<init>", Signature: "()V", ModBits: ModPublic},
		{ID: MethodID(2), Name: "Add", Signature: "(II)I", ModBits: ModPublic | ModStatic},
	}
	gotM := roundTrip(t, c, methods).(Methods)
	assert.Equal(t, methods, gotM)
}

func TestVariableTableRoundTrip(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	vt := VariableTable{
		ArgCount: 2,
		Slots: []FrameVariable{
			{CodeIndex: 0, Name: "a", Signature: "I", Length: 10, Slot: 1},
			{CodeIndex: 0, Name: "b", Signature: "I", Length: 10, Slot: 2},
			{CodeIndex: 4, Name: "tmp", Signature: "I", Length: 2, Slot: 3},
		},
	}
	got := roundTrip(t, c, vt).(VariableTable)
	assert.Equal(t, vt, got)
	args := got.ArgumentSlots()
	require.Len(t, args, 2)
	assert.Equal(t, "a", args[0].Name)
	assert.Equal(t, "b", args[1].Name)
}

// TestValueRoundTrip exercises every concrete Go type the tagged Value union
// can hold, across ID-width combinations for the object-id-shaped variants.
func TestValueRoundTrip(t *testing.T) {
	type holder struct{ V Value }

	for _, sizes := range idSizeCombos {
		c := &Connection{idSizes: sizes}
		cases := []Value{
			byte(42),
			Char('x'),
			ObjectID(11),
			float32(1.5),
			float64(2.5),
			int(7),
			int16(8),
			int64(9),
			false,
			true,
			StringID(13),
			ThreadID(14),
			ThreadGroupID(15),
			ClassLoaderID(16),
			ClassObjectID(17),
			ArrayID(18),
			nil,
		}
		for _, v := range cases {
			h := holder{V: v}
			got := roundTrip(t, c, h).(holder)
			if v == nil {
				assert.Nil(t, got.V)
			} else if i, ok := v.(int); ok {
				assert.Equal(t, i, got.V)
			} else {
				assert.Equal(t, v, got.V)
			}
		}
	}
}

// TestStringDecodeRejectsOversizedCount ensures a declared string length
// that runs past the end of the buffer fails cleanly instead of driving a
// multi-gigabyte allocation.
func TestStringDecodeRejectsOversizedCount(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	// Declares a 0xFFFFFFFF-byte string but supplies none of it.
	golden := []byte{0xff, 0xff, 0xff, 0xff}
	r := newReader(bytes.NewReader(golden))
	var v Version
	err := c.decode(r, reflect.ValueOf(&v).Elem())
	assert.ErrorIs(t, err, ErrInvalidPacket)
}

// TestSliceDecodeRejectsOversizedCount is the Fields/Methods-shaped analogue
// of TestStringDecodeRejectsOversizedCount for a length-prefixed sequence.
func TestSliceDecodeRejectsOversizedCount(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	golden := []byte{0x7f, 0xff, 0xff, 0xff}
	r := newReader(bytes.NewReader(golden))
	var fields Fields
	err := c.decode(r, reflect.ValueOf(&fields).Elem())
	assert.ErrorIs(t, err, ErrInvalidPacket)
}

// TestStringDecodeRejectsInvalidUTF8 covers spec §4.1/§7's InvalidUtf8 case.
func TestStringDecodeRejectsInvalidUTF8(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	// Version.Description is a plain string field; pad the rest of the
	// reply with zeros so only the UTF-8 check can fail.
	var golden []byte
	golden = append(golden, 0, 0, 0, 2)
	golden = append(golden, 0xff, 0xfe) // not valid UTF-8
	golden = append(golden, make([]byte, 64)...)

	var v Version
	r := newReader(bytes.NewReader(golden))
	err := c.decode(r, reflect.ValueOf(&v).Elem())
	assert.ErrorIs(t, err, ErrInvalidUTF8)
}

func TestValueUnexpectedTag(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}
	r := newReader(bytes.NewReader([]byte{0x00}))
	var v Value
	err := c.decode(r, reflect.ValueOf(&v).Elem())
	var tagErr UnexpectedTagError
	require.ErrorAs(t, err, &tagErr)
	assert.Equal(t, byte(0x00), tagErr.Tag)
}

// TestIDKindsUseDistinctWidths confirms the nominal-typing guarantee of the
// distinct ID types in ids.go: a FieldID is encoded at FieldIDSize, never silently at
// ObjectIDSize, even in a struct carrying both.
func TestIDKindsUseDistinctWidths(t *testing.T) {
	type probe struct {
		F  FieldID
		O  ObjectID
		M  MethodID
		R  ReferenceTypeID
		Fr FrameID
	}
	sizes := IDSizes{FieldIDSize: 1, ObjectIDSize: 4, MethodIDSize: 2, ReferenceTypeIDSize: 8, FrameIDSize: 1}
	c := &Connection{idSizes: sizes}
	p := probe{F: 0xAB, O: 0xDEADBEEF, M: 0xBEEF, R: 0x0102030405060708, Fr: 0x7F}

	buf := &bytes.Buffer{}
	w := newWriter(buf)
	require.NoError(t, c.encode(w, reflect.ValueOf(p)))
	assert.Equal(t, 1+4+2+8+1, buf.Len())

	r := newReader(buf)
	var out probe
	require.NoError(t, c.decode(r, reflect.ValueOf(&out).Elem()))
	assert.Equal(t, p, out)
}

// TestVersionGoldenVector decodes a hand-crafted VirtualMachine.Version
// reply body and re-encodes it to the identical bytes.
func TestVersionGoldenVector(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}

	str := func(s string) []byte {
		b := make([]byte, 4+len(s))
		binary.BigEndian.PutUint32(b, uint32(len(s)))
		copy(b[4:], s)
		return b
	}
	i32 := func(v int32) []byte {
		b := make([]byte, 4)
		binary.BigEndian.PutUint32(b, uint32(v))
		return b
	}

	var golden []byte
	golden = append(golden, str("A JVM")...)
	golden = append(golden, i32(1)...)
	golden = append(golden, i32(8)...)
	golden = append(golden, str("1.8.0")...)
	golden = append(golden, str("Test VM")...)

	var v Version
	r := newReader(bytes.NewReader(golden))
	require.NoError(t, c.decode(r, reflect.ValueOf(&v).Elem()))
	require.NoError(t, r.Error())

	assert.Equal(t, Version{
		Description: "A JVM",
		JDWPMajor:   1,
		JDWPMinor:   8,
		Version:     "1.8.0",
		Name:        "Test VM",
	}, v)

	buf := &bytes.Buffer{}
	w := newWriter(buf)
	require.NoError(t, c.encode(w, reflect.ValueOf(v)))
	assert.Equal(t, golden, buf.Bytes())
}

// TestCompositeEventGoldenVector decodes a hand-crafted composite event
// packet body carrying a single ClassPrepare record.
func TestCompositeEventGoldenVector(t *testing.T) {
	c := &Connection{idSizes: defaultIDSizes}

	var golden []byte
	golden = append(golden, byte(SuspendAll))      // policy
	golden = append(golden, 0, 0, 0, 1)            // events count = 1
	golden = append(golden, byte(ClassPrepare))    // event kind
	golden = append(golden, 0, 0, 0, 42)           // request id
	golden = append(golden, 0, 0, 0, 0, 0, 0, 0, 100) // thread id (8 bytes)
	golden = append(golden, byte(Class))           // class kind
	golden = append(golden, 0, 0, 0, 0, 0, 0, 0, 55)  // class type id (8 bytes)
	sig := "LBasic;"
	golden = append(golden, 0, 0, 0, byte(len(sig)))
	golden = append(golden, []byte(sig)...)
	golden = append(golden, 0, 0, 0, byte(StatusPrepared|StatusInitialized))

	var ce compositeEvent
	r := newReader(bytes.NewReader(golden))
	require.NoError(t, c.decode(r, reflect.ValueOf(&ce).Elem()))
	require.NoError(t, r.Error())

	require.Equal(t, SuspendAll, ce.Policy)
	require.Len(t, ce.Events, 1)
	ev, ok := ce.Events[0].(*EventClassPrepare)
	require.True(t, ok)
	assert.Equal(t, EventRequestID(42), ev.Request)
	assert.Equal(t, ThreadID(100), ev.Thread)
	assert.Equal(t, Class, ev.ClassKind)
	assert.Equal(t, ReferenceTypeID(55), ev.ClassType)
	assert.Equal(t, sig, ev.Signature)
	assert.Equal(t, StatusPrepared|StatusInitialized, ev.Status)
	assert.Equal(t, ClassPrepare, ev.Kind())
}
