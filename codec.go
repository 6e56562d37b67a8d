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
	"encoding/binary"
	"io"
	"math"
)

// lenner is implemented by *bytes.Reader, the only concrete reader the
// coder ever decodes from (a reply payload or a composite event body is
// always read out of a fully-buffered byte slice, see client.go). It lets
// a declared count be checked against what's actually left in the packet
// before an allocation is made from it.
type lenner interface{ Len() int }

// boundedCount rejects a length-prefixed count that would require reading
// past what's left in the underlying buffer, so a corrupt or hostile count
// field can't drive an oversized allocation. Readers without a Len() (the
// handshake's plain io.Reader) skip the check; coder.go never needs it there.
func (r *reader) boundedCount(n int) int {
	if r.err != nil {
		return 0
	}
	if n < 0 {
		r.err = ErrInvalidPacket
		return 0
	}
	if lr, ok := r.r.(lenner); ok && n > lr.Len() {
		r.err = ErrInvalidPacket
		return 0
	}
	return n
}

// reader decodes JDWP's primitive wire types: everything on the wire is
// big-endian, and strings are a 32-bit length followed by that many UTF-8
// bytes (never NUL-terminated, unlike the endian.Reader this replaces).
// Once any read fails, every subsequent read is a no-op returning the zero
// value, and Error returns the first failure — callers decode a whole
// packet body and check Error once at the end rather than after every
// field.
type reader struct {
	r   io.Reader
	tmp [8]byte
	err error
}

func newReader(r io.Reader) *reader { return &reader{r: r} }

func (r *reader) Error() error { return r.err }

func (r *reader) fill(n int) []byte {
	if r.err != nil {
		return r.tmp[:n]
	}
	if _, err := io.ReadFull(r.r, r.tmp[:n]); err != nil {
		r.err = err
	}
	return r.tmp[:n]
}

func (r *reader) Data(buf []byte) {
	if r.err != nil {
		return
	}
	if _, err := io.ReadFull(r.r, buf); err != nil {
		r.err = err
	}
}

func (r *reader) Bool() bool     { return r.fill(1)[0] != 0 }
func (r *reader) Uint8() uint8   { return r.fill(1)[0] }
func (r *reader) Int8() int8     { return int8(r.fill(1)[0]) }
func (r *reader) Uint16() uint16 { return binary.BigEndian.Uint16(r.fill(2)) }
func (r *reader) Int16() int16   { return int16(binary.BigEndian.Uint16(r.fill(2))) }
func (r *reader) Uint32() uint32 { return binary.BigEndian.Uint32(r.fill(4)) }
func (r *reader) Int32() int32   { return int32(binary.BigEndian.Uint32(r.fill(4))) }
func (r *reader) Uint64() uint64 { return binary.BigEndian.Uint64(r.fill(8)) }
func (r *reader) Int64() int64   { return int64(binary.BigEndian.Uint64(r.fill(8))) }
func (r *reader) Float32() float32 {
	return math.Float32frombits(binary.BigEndian.Uint32(r.fill(4)))
}
func (r *reader) Float64() float64 {
	return math.Float64frombits(binary.BigEndian.Uint64(r.fill(8)))
}

// ReadUint reads an unsigned integer of the given bit width (8, 16, 32 or
// 64), used for the runtime-negotiated ID widths.
func ReadUint(r *reader, bits int32) uint64 {
	switch bits {
	case 8:
		return uint64(r.Uint8())
	case 16:
		return uint64(r.Uint16())
	case 32:
		return uint64(r.Uint32())
	case 64:
		return r.Uint64()
	default:
		r.err = ErrInvalidIDSize
		return 0
	}
}

// writer encodes JDWP's primitive wire types. It buffers nothing itself;
// the caller supplies an io.Writer (a bytes.Buffer for a request payload, or
// the connection's bufio.Writer for a framed packet, see client.go).
type writer struct {
	w   io.Writer
	tmp [8]byte
	err error
}

func newWriter(w io.Writer) *writer { return &writer{w: w} }

func (w *writer) Error() error { return w.err }

func (w *writer) write(buf []byte) {
	if w.err != nil {
		return
	}
	if _, err := w.w.Write(buf); err != nil {
		w.err = err
	}
}

func (w *writer) Data(buf []byte) { w.write(buf) }
func (w *writer) Bool(v bool) {
	if v {
		w.write([]byte{1})
	} else {
		w.write([]byte{0})
	}
}
func (w *writer) Uint8(v uint8)   { w.write([]byte{v}) }
func (w *writer) Int8(v int8)     { w.write([]byte{byte(v)}) }
func (w *writer) Uint16(v uint16) { binary.BigEndian.PutUint16(w.tmp[:2], v); w.write(w.tmp[:2]) }
func (w *writer) Int16(v int16)   { w.Uint16(uint16(v)) }
func (w *writer) Uint32(v uint32) { binary.BigEndian.PutUint32(w.tmp[:4], v); w.write(w.tmp[:4]) }
func (w *writer) Int32(v int32)   { w.Uint32(uint32(v)) }
func (w *writer) Uint64(v uint64) { binary.BigEndian.PutUint64(w.tmp[:8], v); w.write(w.tmp[:8]) }
func (w *writer) Int64(v int64)   { w.Uint64(uint64(v)) }
func (w *writer) Float32(v float32) { w.Uint32(math.Float32bits(v)) }
func (w *writer) Float64(v float64) { w.Uint64(math.Float64bits(v)) }

// WriteUint writes the low bits of v as an unsigned integer of the given
// bit width (8, 16, 32 or 64).
func WriteUint(w *writer, bits int32, v uint64) {
	switch bits {
	case 8:
		w.Uint8(uint8(v))
	case 16:
		w.Uint16(uint16(v))
	case 32:
		w.Uint32(uint32(v))
	case 64:
		w.Uint64(v)
	default:
		w.err = ErrInvalidIDSize
	}
}
