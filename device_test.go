package loupedeck

import (
	"bufio"
	"bytes"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// fakePort is an in-memory serial.Port stand-in: writes are recorded,
// and reads drain a pipe fed by the test. Good enough to exercise
// device.go's upgrade handshake and reader/writer loops without real
// hardware.
type fakePort struct {
	mu      sync.Mutex
	written [][]byte

	pr *io.PipeReader
	pw *io.PipeWriter
}

func newFakePort() *fakePort {
	pr, pw := io.Pipe()
	return &fakePort{pr: pr, pw: pw}
}

func (f *fakePort) Read(b []byte) (int, error) { return f.pr.Read(b) }

func (f *fakePort) Write(b []byte) (int, error) {
	f.mu.Lock()
	cp := append([]byte(nil), b...)
	f.written = append(f.written, cp)
	f.mu.Unlock()
	return len(b), nil
}

func (f *fakePort) Close() error {
	f.pw.Close()
	return f.pr.Close()
}

func (f *fakePort) feed(b []byte) { f.pw.Write(b) }

func TestRequestReplyCorrelationOutOfOrder(t *testing.T) {
	port := newFakePort()
	br := bufio.NewReader(port)

	go port.feed([]byte("HTTP/1.1 101\n"))
	require.NoError(t, performUpgrade(port, br, time.Second))

	d := &Device{
		port:     port,
		reader:   NewFrameReader(br),
		outbound: make(chan []byte, outboundCapacity),
		nextTxID: firstTxID,
		waiters:  make(map[byte]chan Event),
		subs:     make(map[chan Event]struct{}),
		closed:   make(chan struct{}),
	}
	go d.writeLoop()
	go d.readLoop()

	var wg sync.WaitGroup
	results := make(map[string]Event)
	var resultsMu sync.Mutex

	wg.Add(2)
	go func() {
		defer wg.Done()
		ev, err := d.SendAndWait(Message{Header: SerialOut}, time.Second)
		require.NoError(t, err)
		resultsMu.Lock()
		results["A"] = ev
		resultsMu.Unlock()
	}()
	time.Sleep(10 * time.Millisecond) // ensure A's tx_id (2) allocates before B's (3)
	go func() {
		defer wg.Done()
		ev, err := d.SendAndWait(Message{Header: VersionOut}, time.Second)
		require.NoError(t, err)
		resultsMu.Lock()
		results["B"] = ev
		resultsMu.Unlock()
	}()

	time.Sleep(20 * time.Millisecond)

	// Deliver replies in the order B, A.
	replyB := EncodeFrame(Message{Header: VersionIn, Body: []byte{0, 5, 10}}, 3)
	replyA := EncodeFrame(Message{Header: SerialIn, Body: []byte("ABC")}, 2)
	port.feed(replyB)
	port.feed(replyA)

	wg.Wait()

	resultsMu.Lock()
	defer resultsMu.Unlock()
	require.Equal(t, "ABC", results["A"].Serial)
	require.Equal(t, "0.5.10", results["B"].Version)
}

func TestDrawBufferRejectsLengthMismatch(t *testing.T) {
	d := &Device{outbound: make(chan []byte, 1), closed: make(chan struct{})}
	err := d.DrawBuffer(ScreenCenter, 0, 0, 90, 90, bytes.Repeat([]byte{0}, 10))
	require.ErrorIs(t, err, ErrLengthMismatch)
}
