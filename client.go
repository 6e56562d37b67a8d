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
	"bufio"
	"bytes"
	"context"
	"io"
	"reflect"
	"sync"
	"sync/atomic"
	"time"

	"github.com/op/go-logging"
	"github.com/pkg/errors"
)

var handshakeBytes = []byte("JDWP-Handshake")

// Config tunes a Connection beyond the wire-level defaults.
type Config struct {
	// RequestTimeout bounds how long a blocking call waits for its reply
	// before returning ErrTimeout. Zero means DefaultRequestTimeout.
	RequestTimeout time.Duration
	// EventQueueCapacity bounds the single event sink (see Connection.Events):
	// once full, the oldest undelivered event is dropped to make room rather
	// than blocking the reader goroutine on a slow or absent consumer. Zero
	// means DefaultEventQueueCapacity.
	EventQueueCapacity int
	// TypeCacheCapacity bounds the number of reference types whose
	// Fields/Methods are cached at once (see cache.go). Zero means
	// DefaultTypeCacheCapacity.
	TypeCacheCapacity int
	// Logger receives diagnostic and warning messages. Nil means the
	// package default (stderr, WARNING level).
	Logger *logging.Logger
}

// DefaultRequestTimeout is used when Config.RequestTimeout is zero.
const DefaultRequestTimeout = 120 * time.Second

// DefaultEventQueueCapacity is used when Config.EventQueueCapacity is zero.
const DefaultEventQueueCapacity = 1024

// Connection is a single blocking JDWP client connection: one writer at a
// time (guarded by mu), one dedicated reader goroutine demultiplexing
// replies (by packet id) from events, which it fans out to a single sink.
type Connection struct {
	conn    io.ReadWriteCloser
	r       *reader
	w       *writer
	wbuf    *bufio.Writer
	idSizes IDSizes
	cfg     Config
	log     *logging.Logger

	mu            sync.Mutex
	ready         bool
	nextPacketID  packetID
	replies       map[packetID]chan replyPacket
	events        chan Event
	eventsDropped uint64
	closed        bool
	closeErr      error

	cache *typeCache
}

// Open performs the JDWP handshake over conn, starts the reader goroutine,
// and negotiates ID sizes and the protocol version before returning. conn is
// owned by the Connection afterwards: closing it is done via Dispose.
func Open(ctx context.Context, conn io.ReadWriteCloser, cfg Config) (*Connection, error) {
	if err := exchangeHandshakes(conn); err != nil {
		return nil, err
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.EventQueueCapacity == 0 {
		cfg.EventQueueCapacity = DefaultEventQueueCapacity
	}
	if cfg.TypeCacheCapacity == 0 {
		cfg.TypeCacheCapacity = DefaultTypeCacheCapacity
	}
	log := cfg.Logger
	if log == nil {
		log = defaultLogger()
	}

	wbuf := bufio.NewWriterSize(conn, 4096)
	c := &Connection{
		conn:    conn,
		r:       newReader(bufio.NewReaderSize(conn, 4096)),
		w:       newWriter(wbuf),
		wbuf:    wbuf,
		idSizes: defaultIDSizes,
		cfg:     cfg,
		log:     log,
		replies: map[packetID]chan replyPacket{},
		events:  make(chan Event, cfg.EventQueueCapacity),
		cache:   newTypeCache(cfg.TypeCacheCapacity),
	}

	go recoverToLog(log, func() { c.recv(ctx) })

	sizes, err := c.GetIDSizes()
	if err != nil {
		c.Dispose()
		return nil, errors.Wrap(err, "negotiating ID sizes")
	}
	if err := sizes.Validate(); err != nil {
		c.Dispose()
		return nil, err
	}
	c.idSizes = sizes

	if _, err := c.GetVersion(); err != nil {
		c.Dispose()
		return nil, errors.Wrap(err, "fetching target VM version")
	}

	c.mu.Lock()
	c.ready = true
	c.mu.Unlock()
	return c, nil
}

func exchangeHandshakes(conn io.ReadWriter) error {
	if _, err := conn.Write(handshakeBytes); err != nil {
		return err
	}
	got := make([]byte, len(handshakeBytes))
	if _, err := io.ReadFull(conn, got); err != nil {
		return err
	}
	if !bytes.Equal(got, handshakeBytes) {
		return ErrHandshakeFailed
	}
	return nil
}

// Dispose sends a best-effort VirtualMachine.Dispose notification, then
// closes the underlying transport and fails every outstanding and future
// request with ErrConnectionClosed. It is safe to call more than once and
// safe to call concurrently with in-flight requests.
func (c *Connection) Dispose() error {
	c.mu.Lock()
	alreadyClosed := c.closed
	ready := c.ready
	c.mu.Unlock()
	if !alreadyClosed && ready {
		// Fire-and-forget: don't register a reply slot or wait for one.
		// Dispose must return promptly even if the peer is stuck or gone;
		// a caller that wants the VM to confirm session teardown can use
		// DisposeSession directly instead.
		go c.disposeBestEffort()
	}
	return c.close()
}

// disposeBestEffort writes the VirtualMachine.Dispose command straight to
// the transport, bypassing the request/reply machinery entirely. If the
// transport blocks (nothing reading the other end), it unblocks as soon as
// close's conn.Close runs, same as any other write racing a teardown.
func (c *Connection) disposeBestEffort() {
	buf := &bytes.Buffer{}
	p := cmdPacket{cmdSet: cmdVirtualMachineDispose.set, cmdID: cmdVirtualMachineDispose.id}
	if err := p.write(newWriter(buf)); err != nil {
		return
	}
	_, _ = c.conn.Write(buf.Bytes())
}

// close tears down connection state: every pending reply wait fails with
// ErrConnectionClosed, the event sink is closed, and the transport is
// closed. Unlike Dispose it never touches the wire, so the reader goroutine
// can defer straight to it without risking a write to a peer it just lost.
func (c *Connection) close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.closeErr = ErrConnectionClosed
	for id, ch := range c.replies {
		close(ch)
		delete(c.replies, id)
	}
	close(c.events)
	c.mu.Unlock()
	return c.conn.Close()
}

// get sends cmd with payload req and blocks until the reply arrives,
// decoding it into out (which must be a pointer, or nil to discard the
// reply body).
func (c *Connection) get(command cmd, req interface{}, out interface{}) error {
	return c.getCtx(context.Background(), command, req, out)
}

// getCtx is get with cancellation: if ctx is done before the reply arrives,
// the wait is abandoned and ErrCancelled is returned instead.
func (c *Connection) getCtx(ctx context.Context, command cmd, req interface{}, out interface{}) error {
	p, err := c.send(command, req)
	if err != nil {
		return err
	}
	return p.wait(ctx, out)
}

type pending struct {
	c  *Connection
	ch chan replyPacket
	id packetID
}

func (c *Connection) send(command cmd, req interface{}) (*pending, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, c.closeErr
	}
	if !c.ready && catalog[command].needsIDSizes {
		c.mu.Unlock()
		return nil, errors.Wrapf(ErrNotReady, "sending %s", command.name())
	}

	data := bytes.Buffer{}
	if req != nil {
		e := newWriter(&data)
		if err := c.encode(e, reflect.ValueOf(req)); err != nil {
			c.mu.Unlock()
			return nil, err
		}
	}

	id := c.nextPacketID
	c.nextPacketID++
	ch := make(chan replyPacket, 1)
	c.replies[id] = ch

	p := cmdPacket{id: id, cmdSet: command.set, cmdID: command.id, data: data.Bytes()}
	err := p.write(c.w)
	if err == nil {
		err = c.wbuf.Flush()
	}
	c.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return &pending{c: c, ch: ch, id: id}, nil
}

// deregister removes this pending call's reply slot, so the reader goroutine
// discards the eventual reply (if one ever arrives) instead of blocking on
// a slot nobody is waiting on.
func (p *pending) deregister() {
	p.c.mu.Lock()
	delete(p.c.replies, p.id)
	p.c.mu.Unlock()
}

func (p *pending) wait(ctx context.Context, out interface{}) error {
	select {
	case reply, ok := <-p.ch:
		if !ok {
			return ErrConnectionClosed
		}
		if reply.err != ErrNone {
			release(reply.data)
			return reply.err
		}
		if out != nil {
			br := bytes.NewReader(reply.data)
			r := newReader(br)
			if err := p.c.decode(r, reflect.ValueOf(out).Elem()); err != nil {
				release(reply.data)
				return err
			}
			if br.Len() > 0 {
				release(reply.data)
				return ErrTrailingBytes
			}
		}
		release(reply.data)
		return nil
	case <-time.After(p.c.cfg.RequestTimeout):
		p.deregister()
		return ErrTimeout
	case <-ctx.Done():
		p.deregister()
		return errors.Wrap(ErrCancelled, ctx.Err().Error())
	}
}

// Events returns the connection's single event sink: every event raised for
// every outstanding SetEvent request is delivered here, in the exact order
// it arrived on the wire. WatchEvents is built on top of this and filters
// by request id; only one goroutine should be draining the sink at a time
// (spec's single-sink model — see DESIGN.md), so don't run WatchEvents
// and a direct Events() reader concurrently on the same connection.
func (c *Connection) Events() <-chan Event {
	return c.events
}

// DroppedEvents returns the number of events discarded because the sink
// (see Events) was full and nothing was draining it. The count is
// monotonic for the life of the connection.
func (c *Connection) DroppedEvents() uint64 {
	return atomic.LoadUint64(&c.eventsDropped)
}

// WatchEvents sets an event request for kind with the given modifiers, then
// delivers every matching event read from the connection's single sink to
// onEvent until it returns false or ctx is done, clearing the request on the
// way out. Events belonging to other requests are read off the same sink
// and discarded while WatchEvents runs; they are not put back for another
// reader of Events().
func (c *Connection) WatchEvents(ctx context.Context, kind EventKind, policy SuspendPolicy, onEvent func(Event) bool, modifiers ...EventModifier) error {
	id, err := c.setEventCtx(ctx, kind, policy, modifiers...)
	if err != nil {
		return err
	}
	defer c.ClearEvent(kind, id)

	for {
		select {
		case ev, ok := <-c.events:
			if !ok {
				return ErrConnectionClosed
			}
			if ev.request() != id {
				continue
			}
			if !onEvent(ev) {
				return nil
			}
		case <-ctx.Done():
			return errors.Wrap(ErrCancelled, ctx.Err().Error())
		}
	}
}

// recv decodes every incoming packet, routing replies by packet id and
// composite events to the single event sink. It runs on its own goroutine
// for the life of the connection and returns once the transport is closed
// or produces an unrecoverable read error.
func (c *Connection) recv(ctx context.Context) {
	defer c.close()
	for {
		if ctx.Err() != nil {
			return
		}
		packet, err := c.readPacket()
		if err != nil {
			if err != io.EOF {
				c.log.Warningf("jdwp: read failed: %v", err)
			}
			return
		}

		switch p := packet.(type) {
		case replyPacket:
			c.mu.Lock()
			ch, ok := c.replies[p.id]
			delete(c.replies, p.id)
			c.mu.Unlock()
			if !ok {
				c.log.Warningf("jdwp: reply for unknown packet %d", p.id)
				release(p.data)
				continue
			}
			ch <- p

		case cmdPacket:
			if p.cmdSet == cmdSetEvent && p.cmdID == cmdEventComposite.id {
				c.dispatchComposite(p.data)
			}
			release(p.data)
		}
	}
}

func (c *Connection) dispatchComposite(data []byte) {
	r := newReader(bytes.NewReader(data))
	evs := compositeEvent{}
	if err := c.decode(r, reflect.ValueOf(&evs).Elem()); err != nil {
		// A composite event carries no per-record length, so one record of
		// an unrecognized kind makes the rest of this message undecodable;
		// only this bundle is lost, not the connection.
		c.log.Errorf("jdwp: failed to decode composite event: %v", err)
		return
	}
	for _, ev := range evs.Events {
		c.deliverEvent(ev)
	}
}

// deliverEvent pushes ev onto the single sink, dropping the oldest queued
// event to make room if it's full rather than blocking the reader goroutine
// on a slow or absent consumer.
func (c *Connection) deliverEvent(ev Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.events <- ev:
		return
	default:
	}
	select {
	case <-c.events:
		atomic.AddUint64(&c.eventsDropped, 1)
	default:
	}
	select {
	case c.events <- ev:
	default:
	}
}
