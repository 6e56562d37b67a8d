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
	"io"

	"github.com/bytedance/gopkg/lang/mcache"
	"github.com/pkg/errors"
)

// packetID is the 32-bit request/reply correlation number JDWP calls "id".
type packetID uint32

type packetFlags uint8

const packetIsReply = packetFlags(0x80)

// cmdPacket is an outgoing (or received incoming) command packet.
//
//	struct cmdPacket {
//	  length uint32       4 bytes
//	  id     packetID     4 bytes
//	  flags  packetFlags  1 byte
//	  cmdSet cmdSet       1 byte
//	  cmdID  cmdID        1 byte
//	  data   []byte       N bytes
//	}
type cmdPacket struct {
	id     packetID
	flags  packetFlags
	cmdSet cmdSet
	cmdID  cmdID
	data   []byte
}

func (p cmdPacket) write(w *writer) error {
	w.Uint32(11 + uint32(len(p.data)))
	w.Uint32(uint32(p.id))
	w.Uint8(uint8(p.flags))
	w.Uint8(uint8(p.cmdSet))
	w.Uint8(uint8(p.cmdID))
	w.Data(p.data)
	return w.Error()
}

// replyPacket is a received reply packet.
//
//	struct replyPacket {
//	  length uint32       4 bytes
//	  id     packetID     4 bytes
//	  flags  packetFlags  1 byte
//	  err    Error        2 bytes
//	  data   []byte       N bytes
//	}
type replyPacket struct {
	id   packetID
	err  Error
	data []byte
}

// readPacket reads a single cmdPacket or replyPacket from c's reader,
// distinguishing the two by bit 7 of the flags byte. The payload is pulled
// from the mcache pool rather than a plain make([]byte, ...): packets churn
// constantly on the reader goroutine, and the payload is released back to
// the pool once its decode completes (see pending.wait and recv).
func (c *Connection) readPacket() (interface{}, error) {
	length := c.r.Uint32()
	if err := c.r.Error(); err != nil {
		if err == io.EOF {
			// A clean shutdown between packets, not a truncated one.
			return nil, io.EOF
		}
		return nil, errors.Wrap(ErrInvalidPacket, err.Error())
	}
	if length < 11 {
		return nil, errors.Wrapf(ErrInvalidPacket, "length %d below the 11 byte header", length)
	}
	id := packetID(c.r.Uint32())
	flags := packetFlags(c.r.Uint8())

	data := mcache.Malloc(int(length - 11))

	if flags&packetIsReply != 0 {
		out := replyPacket{id: id, err: Error(c.r.Uint16())}
		out.data = data
		c.r.Data(out.data)
		if err := c.r.Error(); err != nil {
			release(out.data)
			return nil, errors.Wrap(ErrInvalidPacket, err.Error())
		}
		return out, nil
	}

	out := cmdPacket{
		id:     id,
		flags:  flags,
		cmdSet: cmdSet(c.r.Uint8()),
		cmdID:  cmdID(c.r.Uint8()),
	}
	out.data = data
	c.r.Data(out.data)
	if err := c.r.Error(); err != nil {
		release(out.data)
		return nil, errors.Wrap(ErrInvalidPacket, err.Error())
	}
	return out, nil
}

// release returns a packet payload obtained from readPacket back to the
// mcache pool. Safe to call with a nil or zero-length slice.
func release(data []byte) {
	if len(data) > 0 {
		mcache.Free(data)
	}
}
