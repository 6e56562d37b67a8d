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
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrimitiveRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newWriter(buf)

	w.Bool(true)
	w.Bool(false)
	w.Uint8(0xab)
	w.Int8(-1)
	w.Uint16(0xbeef)
	w.Int16(-2)
	w.Uint32(0xdeadbeef)
	w.Int32(-3)
	w.Uint64(0x0102030405060708)
	w.Int64(-4)
	w.Float32(3.5)
	w.Float64(-6.25)
	w.Data([]byte{1, 2, 3})
	require.NoError(t, w.Error())

	r := newReader(buf)
	assert.Equal(t, true, r.Bool())
	assert.Equal(t, false, r.Bool())
	assert.Equal(t, uint8(0xab), r.Uint8())
	assert.Equal(t, int8(-1), r.Int8())
	assert.Equal(t, uint16(0xbeef), r.Uint16())
	assert.Equal(t, int16(-2), r.Int16())
	assert.Equal(t, uint32(0xdeadbeef), r.Uint32())
	assert.Equal(t, int32(-3), r.Int32())
	assert.Equal(t, uint64(0x0102030405060708), r.Uint64())
	assert.Equal(t, int64(-4), r.Int64())
	assert.Equal(t, float32(3.5), r.Float32())
	assert.Equal(t, float64(-6.25), r.Float64())
	data := make([]byte, 3)
	r.Data(data)
	assert.Equal(t, []byte{1, 2, 3}, data)
	require.NoError(t, r.Error())
}

func TestBooleanWriteIsStrict(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newWriter(buf)
	w.Bool(true)
	w.Bool(false)
	require.NoError(t, w.Error())
	assert.Equal(t, []byte{1, 0}, buf.Bytes())
}

func TestBooleanReadIsLenient(t *testing.T) {
	r := newReader(bytes.NewReader([]byte{0x00, 0x01, 0xff, 0x7f}))
	assert.False(t, r.Bool())
	assert.True(t, r.Bool())
	assert.True(t, r.Bool())
	assert.True(t, r.Bool())
	require.NoError(t, r.Error())
}

// Once a read fails, every subsequent read is a no-op and Error() surfaces
// the first failure, so callers can decode a whole packet body and check
// once at the end.
func TestReaderStickyError(t *testing.T) {
	r := newReader(bytes.NewReader([]byte{0x01}))
	r.Uint32() // only one byte available: fails
	require.Error(t, r.Error())
	first := r.Error()
	assert.Equal(t, uint8(0), r.Uint8())
	assert.Equal(t, uint64(0), r.Uint64())
	assert.Equal(t, first, r.Error())
}

func TestReaderShortRead(t *testing.T) {
	r := newReader(bytes.NewReader(nil))
	r.Uint32()
	require.Error(t, r.Error())
	assert.True(t, r.Error() == io.EOF || r.Error() == io.ErrUnexpectedEOF)
}

func TestReadWriteUintAllWidths(t *testing.T) {
	for _, width := range []int32{8, 16, 32, 64} {
		buf := &bytes.Buffer{}
		w := newWriter(buf)
		WriteUint(w, width, 0x0102030405060708)
		require.NoError(t, w.Error())

		mask := uint64(1)<<uint(width) - 1
		expect := uint64(0x0102030405060708) & mask

		r := newReader(buf)
		got := ReadUint(r, width)
		require.NoError(t, r.Error())
		assert.Equal(t, expect, got)
	}
}

func TestReadWriteUintInvalidWidth(t *testing.T) {
	buf := &bytes.Buffer{}
	w := newWriter(buf)
	WriteUint(w, 24, 1)
	assert.ErrorIs(t, w.Error(), ErrInvalidIDSize)

	r := newReader(bytes.NewReader([]byte{0, 0, 0, 0}))
	ReadUint(r, 24)
	assert.ErrorIs(t, r.Error(), ErrInvalidIDSize)
}

// Strings are a 32-bit length prefix followed by that many raw UTF-8 bytes,
// never NUL-terminated.
func TestStringRoundTrip(t *testing.T) {
	cases := []string{"", "hello", "LBasic;", "unicode: é中文", "\x00embedded nul"}
	for _, s := range cases {
		buf := &bytes.Buffer{}
		w := newWriter(buf)
		w.Uint32(uint32(len(s)))
		w.Data([]byte(s))
		require.NoError(t, w.Error())

		r := newReader(buf)
		data := make([]byte, r.Uint32())
		r.Data(data)
		require.NoError(t, r.Error())
		assert.Equal(t, s, string(data))
	}
}
