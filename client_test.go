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
	"context"
	"encoding/binary"
	"io"
	"net"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// serverHandshake performs the server side of the handshake: the client
// always writes first (see exchangeHandshakes), so the server must read
// before it writes or the synchronous net.Pipe would deadlock both sides.
func serverHandshake(conn io.ReadWriter) error {
	got := make([]byte, len(handshakeBytes))
	if _, err := io.ReadFull(conn, got); err != nil {
		return err
	}
	if !bytes.Equal(got, handshakeBytes) {
		return ErrHandshakeFailed
	}
	_, err := conn.Write(handshakeBytes)
	return err
}

func encodeValue(c *Connection, val interface{}) []byte {
	buf := &bytes.Buffer{}
	w := newWriter(buf)
	if err := c.encode(w, reflect.ValueOf(val)); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func writeReply(conn io.Writer, id packetID, errCode Error, payload []byte) error {
	buf := &bytes.Buffer{}
	w := newWriter(buf)
	w.Uint32(11 + uint32(len(payload)))
	w.Uint32(uint32(id))
	w.Uint8(uint8(packetIsReply))
	w.Uint16(uint16(errCode))
	w.Data(payload)
	_, err := conn.Write(buf.Bytes())
	return err
}

func writeCommand(conn io.Writer, cp cmdPacket) error {
	buf := &bytes.Buffer{}
	if err := cp.write(newWriter(buf)); err != nil {
		return err
	}
	_, err := conn.Write(buf.Bytes())
	return err
}

// fakeTarget plays the server half of the protocol on conn: it answers the
// handshake, then the bootstrap IDSizes/Version requests Open makes, then
// hands every further request to handle (nil means "reply ErrNone with an
// empty body"). It runs until conn is closed.
type fakeTarget struct {
	conn    net.Conn
	sizes   IDSizes
	version Version
	handle  func(cp cmdPacket) (payload []byte, code Error)
}

func (f *fakeTarget) run(t *testing.T) {
	if err := serverHandshake(f.conn); err != nil {
		return
	}
	codec := &Connection{idSizes: f.sizes}
	reader := &Connection{r: newReader(f.conn)}
	for {
		pkt, err := reader.readPacket()
		if err != nil {
			return
		}
		cp, ok := pkt.(cmdPacket)
		if !ok {
			continue
		}
		switch {
		case cp.cmdSet == cmdSetVirtualMachine && cp.cmdID == cmdVirtualMachineIDSizes.id:
			writeReply(f.conn, cp.id, ErrNone, encodeValue(codec, f.sizes))
		case cp.cmdSet == cmdSetVirtualMachine && cp.cmdID == cmdVirtualMachineVersion.id:
			writeReply(f.conn, cp.id, ErrNone, encodeValue(codec, f.version))
		case f.handle != nil:
			payload, code := f.handle(cp)
			writeReply(f.conn, cp.id, code, payload)
		default:
			writeReply(f.conn, cp.id, ErrNone, nil)
		}
		release(cp.data)
	}
}

func openOverPipe(t *testing.T, sizes IDSizes, version Version, handle func(cp cmdPacket) (payload []byte, code Error)) (*Connection, net.Conn) {
	t.Helper()
	client, server := net.Pipe()
	target := &fakeTarget{conn: server, sizes: sizes, version: version, handle: handle}
	go target.run(t)

	c, err := Open(context.Background(), client, Config{RequestTimeout: 5 * time.Second})
	require.NoError(t, err)
	return c, server
}

func TestOpenNegotiatesIDSizesAndVersion(t *testing.T) {
	sizes := IDSizes{FieldIDSize: 2, MethodIDSize: 2, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 4}
	version := Version{Description: "fake vm", JDWPMajor: 1, JDWPMinor: 8, Version: "1.8.0", Name: "FakeVM"}

	c, _ := openOverPipe(t, sizes, version, nil)
	defer c.Dispose()

	assert.Equal(t, sizes, c.idSizes)
	assert.True(t, c.ready)
}

func TestOpenHandshakeFailure(t *testing.T) {
	client, server := net.Pipe()
	go func() {
		got := make([]byte, len(handshakeBytes))
		io.ReadFull(server, got)
		server.Write([]byte("not-a-handshake"))
	}()

	_, err := Open(context.Background(), client, Config{})
	assert.ErrorIs(t, err, ErrHandshakeFailed)
}

func TestOpenFailsIfIDSizesInvalid(t *testing.T) {
	badSizes := IDSizes{FieldIDSize: 3, MethodIDSize: 2, ObjectIDSize: 8, ReferenceTypeIDSize: 8, FrameIDSize: 4}
	client, server := net.Pipe()
	target := &fakeTarget{conn: server, sizes: badSizes, version: Version{}}
	go target.run(t)

	_, err := Open(context.Background(), client, Config{RequestTimeout: 5 * time.Second})
	assert.ErrorIs(t, err, ErrInvalidIDSize)
}

// TestConcurrentSendsGetDistinctIDsAndCorrectReplies hammers the connection
// from many goroutines at once and checks every request goes out under a
// distinct packet id and every reply, which echoes its request's id, is
// delivered to exactly one caller.
func TestConcurrentSendsGetDistinctIDsAndCorrectReplies(t *testing.T) {
	const n = 32
	var mu sync.Mutex
	seen := map[packetID]bool{}
	got := map[ThreadID]bool{}

	c, _ := openOverPipe(t, defaultIDSizes, Version{}, func(cp cmdPacket) ([]byte, Error) {
		mu.Lock()
		if seen[cp.id] {
			t.Errorf("packet id %d reused", cp.id)
		}
		seen[cp.id] = true
		mu.Unlock()
		// Echo the packet id back as a thread id, so the replies received
		// can be matched against the requests sent.
		codec := &Connection{idSizes: defaultIDSizes}
		return encodeValue(codec, []ThreadID{ThreadID(cp.id)}), ErrNone
	})
	defer c.Dispose()

	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			threads, err := c.GetAllThreads()
			require.NoError(t, err)
			require.Len(t, threads, 1)
			assert.NotZero(t, threads[0])
			mu.Lock()
			got[threads[0]] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	mu.Lock()
	assert.Len(t, seen, n)
	// n distinct echoed ids means no reply went to two callers.
	assert.Len(t, got, n)
	for id := range got {
		assert.True(t, seen[packetID(id)], "reply %d matches no request", id)
	}
	mu.Unlock()
}

// TestRequestTimeout checks both that a call past RequestTimeout fails with
// ErrTimeout and that its reply slot is deregistered afterwards, so a reader
// goroutine that eventually sees a (late, abandoned) reply for that packet
// id doesn't block trying to deliver it to nobody.
func TestRequestTimeout(t *testing.T) {
	client, server := net.Pipe()
	target := &fakeTarget{conn: server, sizes: defaultIDSizes, version: Version{}}
	blocked := make(chan packetID, 1)
	target.handle = func(cp cmdPacket) ([]byte, Error) {
		if cp.cmdSet == cmdSetVirtualMachine && cp.cmdID == cmdVirtualMachineAllThreads.id {
			blocked <- cp.id
			select {} // never reply, so the client's RequestTimeout fires
		}
		return nil, ErrNone
	}
	go target.run(t)

	c, err := Open(context.Background(), client, Config{RequestTimeout: 50 * time.Millisecond})
	require.NoError(t, err)
	defer c.Dispose()

	_, err = c.GetAllThreads()
	assert.ErrorIs(t, err, ErrTimeout)

	id := <-blocked
	c.mu.Lock()
	_, stillRegistered := c.replies[id]
	c.mu.Unlock()
	assert.False(t, stillRegistered, "reply slot should be deregistered after a timeout")
}

// TestGetCtxCancellation checks that a context cancelled while a call is
// in flight aborts the wait with ErrCancelled and deregisters the reply
// slot, the same as a timeout does.
func TestGetCtxCancellation(t *testing.T) {
	client, server := net.Pipe()
	target := &fakeTarget{conn: server, sizes: defaultIDSizes, version: Version{}}
	blocked := make(chan packetID, 1)
	target.handle = func(cp cmdPacket) ([]byte, Error) {
		if cp.cmdSet == cmdSetVirtualMachine && cp.cmdID == cmdVirtualMachineAllThreads.id {
			blocked <- cp.id
			select {}
		}
		return nil, ErrNone
	}
	go target.run(t)

	c, err := Open(context.Background(), client, Config{RequestTimeout: 5 * time.Second})
	require.NoError(t, err)
	defer c.Dispose()

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		var out []ThreadID
		errCh <- c.getCtx(ctx, cmdVirtualMachineAllThreads, struct{}{}, &out)
	}()

	id := <-blocked
	cancel()

	assert.ErrorIs(t, <-errCh, ErrCancelled)

	c.mu.Lock()
	_, stillRegistered := c.replies[id]
	c.mu.Unlock()
	assert.False(t, stillRegistered, "reply slot should be deregistered after cancellation")
}

// TestDisposeFailsInFlightRequests checks that tearing down the connection
// unblocks every pending call with ErrConnectionClosed, rather than leaving
// it hanging until the timeout.
func TestDisposeFailsInFlightRequests(t *testing.T) {
	unblock := make(chan struct{})
	var target *fakeTarget
	client, server := net.Pipe()
	target = &fakeTarget{conn: server, sizes: defaultIDSizes, version: Version{}, handle: func(cp cmdPacket) ([]byte, Error) {
		if cp.cmdSet == cmdSetVirtualMachine && cp.cmdID == cmdVirtualMachineAllThreads.id {
			<-unblock
			return nil, ErrNone
		}
		return nil, ErrNone
	}}
	go target.run(t)

	c, err := Open(context.Background(), client, Config{RequestTimeout: 5 * time.Second})
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() {
		_, err := c.GetAllThreads()
		done <- err
	}()

	time.Sleep(20 * time.Millisecond)
	require.NoError(t, c.Dispose())
	close(unblock)

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrConnectionClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("pending call was never unblocked by Dispose")
	}
}

// TestEventsDeliveredInOrder pushes several unsolicited composite-event
// packets and checks the single registered sink sees them in the exact
// order they arrived on the wire, per spec §8 property 6.
func TestEventsDeliveredInOrder(t *testing.T) {
	c, server := openOverPipe(t, defaultIDSizes, Version{}, nil)
	defer c.Dispose()

	// Each event carries its send index as its request id, so the order in
	// which the sink yields them can be checked.
	send := func(n int) {
		reqIDBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(reqIDBytes, uint32(n))
		var body []byte
		body = append(body, byte(SuspendNone))
		body = append(body, 0, 0, 0, 1) // one event record
		body = append(body, byte(VMDeath))
		body = append(body, reqIDBytes...)
		cp := cmdPacket{id: packetID(1000 + n), cmdSet: cmdSetEvent, cmdID: cmdEventComposite.id, data: body}
		require.NoError(t, writeCommand(server, cp))
	}

	// Stay within the default event queue capacity so nothing is dropped;
	// drop-under-pressure behavior is a separate concern from ordering.
	const count = 10
	for i := 0; i < count; i++ {
		send(i)
	}

	for i := 0; i < count; i++ {
		select {
		case ev, ok := <-c.Events():
			require.True(t, ok)
			death, isDeath := ev.(*EventVMDeath)
			require.True(t, isDeath)
			assert.Equal(t, EventRequestID(i), death.Request)
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
	assert.Zero(t, c.DroppedEvents())
}

// TestEventsDropOldestWhenFull checks that once the single sink's queue is
// full, further events push out the oldest undelivered one and the drop
// counter tracks exactly how many were discarded this way.
func TestEventsDropOldestWhenFull(t *testing.T) {
	client, server := net.Pipe()
	target := &fakeTarget{conn: server, sizes: defaultIDSizes, version: Version{}}
	go target.run(t)

	c, err := Open(context.Background(), client, Config{RequestTimeout: 5 * time.Second, EventQueueCapacity: 2})
	require.NoError(t, err)
	defer c.Dispose()

	// Each event carries its send index as its request id, so the survivors
	// can be told apart from the dropped ones.
	send := func(id int) {
		reqIDBytes := make([]byte, 4)
		binary.BigEndian.PutUint32(reqIDBytes, uint32(id))
		var body []byte
		body = append(body, byte(SuspendNone))
		body = append(body, 0, 0, 0, 1)
		body = append(body, byte(VMDeath))
		body = append(body, reqIDBytes...)
		cp := cmdPacket{id: packetID(2000 + id), cmdSet: cmdSetEvent, cmdID: cmdEventComposite.id, data: body}
		require.NoError(t, writeCommand(server, cp))
	}

	const count = 5
	for i := 0; i < count; i++ {
		send(i)
	}

	// Give the reader goroutine time to push all five through the
	// 2-capacity sink before we start draining it.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, uint64(count-2), c.DroppedEvents())

	var drained []EventRequestID
	for {
		select {
		case ev, ok := <-c.Events():
			if !ok {
				t.Fatal("events sink closed unexpectedly")
			}
			drained = append(drained, ev.request())
		default:
			// The three oldest (0, 1, 2) were pushed out; the newest two remain.
			assert.Equal(t, []EventRequestID{3, 4}, drained)
			return
		}
	}
}

// TestEventsChannelClosesOnDispose checks that Dispose closes the event
// sink along with everything else, so a caller blocked reading Events()
// is unblocked rather than left hanging.
func TestEventsChannelClosesOnDispose(t *testing.T) {
	c, _ := openOverPipe(t, defaultIDSizes, Version{}, nil)
	require.NoError(t, c.Dispose())

	_, ok := <-c.Events()
	assert.False(t, ok)
}

// TestWatchEventsReturnsCancelledWhenContextDone checks that WatchEvents
// honors context cancellation while waiting for a matching event, per
// spec §5's external-signal cancellation requirement.
func TestWatchEventsReturnsCancelledWhenContextDone(t *testing.T) {
	// EventRequest.Set must be answered with a request id for SetEvent to
	// succeed; every other command gets an empty reply.
	c, _ := openOverPipe(t, defaultIDSizes, Version{}, func(cp cmdPacket) ([]byte, Error) {
		if cp.cmdSet == cmdSetEventRequest && cp.cmdID == cmdEventRequestSet.id {
			return []byte{0, 0, 0, 1}, ErrNone
		}
		return nil, ErrNone
	})
	defer c.Dispose()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- c.WatchEvents(ctx, Breakpoint, SuspendAll, func(Event) bool { return true })
	}()

	time.Sleep(20 * time.Millisecond) // let SetEvent complete and WatchEvents start waiting
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrCancelled)
	case <-time.After(2 * time.Second):
		t.Fatal("WatchEvents did not return after context cancellation")
	}
}
