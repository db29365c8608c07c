package loupedeck

import (
	"bufio"
	"log/slog"
	"sync"
	"time"
)

// broadcastCapacity bounds each subscriber's event channel; a lagging
// subscriber drops events rather than blocking the reader loop.
const broadcastCapacity = 10

// outboundCapacity bounds the outbound frame queue.
const outboundCapacity = 100

// firstTxID is the first transaction id the allocator hands out; tx_id 1
// is reserved for fire-and-forget sends.
const firstTxID = 2

// Device owns a live connection to one Loupedeck-class controller: the
// serial port, the reader and writer goroutines, the transaction id
// allocator, the broadcast event bus, and reply waiters.
type Device struct {
	port   serialPort
	reader *FrameReader

	outbound chan []byte

	txMu       sync.Mutex
	nextTxID   byte
	waiters    map[byte]chan Event
	waitersMu  sync.Mutex

	subsMu sync.Mutex
	subs   map[chan Event]struct{}

	closeOnce sync.Once
	closed    chan struct{}
}

// Connect opens the first Loupedeck found by vendor-id port discovery,
// performs the WS-like upgrade, and starts the reader/writer loops.
func Connect() (*Device, error) {
	port, path, err := OpenAuto()
	if err != nil {
		return nil, err
	}
	slog.Info("found candidate device", "port", path)
	return connectPort(port)
}

// ConnectPath connects to a specific serial device path.
func ConnectPath(path string) (*Device, error) {
	port, err := OpenPath(path)
	if err != nil {
		return nil, err
	}
	return connectPort(port)
}

func connectPort(port serialPort) (*Device, error) {
	br := bufio.NewReader(port)

	if err := performUpgrade(port, br, 2*time.Second); err != nil {
		port.Close()
		return nil, err
	}

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

	slog.Info("device connected")
	return d, nil
}

// newTxID allocates the next transaction id, wrapping mod 256 and
// skipping 0 and 1 (1 is reserved for fire-and-forget).
func (d *Device) newTxID() byte {
	d.txMu.Lock()
	defer d.txMu.Unlock()
	t := d.nextTxID
	d.nextTxID++
	if d.nextTxID == 0 || d.nextTxID == 1 {
		d.nextTxID = firstTxID
	}
	return t
}

// Subscribe returns a channel receiving every decoded event. Callers
// that fall behind the broadcastCapacity buffer silently miss events;
// Unsubscribe releases the channel.
func (d *Device) Subscribe() chan Event {
	ch := make(chan Event, broadcastCapacity)
	d.subsMu.Lock()
	d.subs[ch] = struct{}{}
	d.subsMu.Unlock()
	return ch
}

// Unsubscribe removes a channel previously returned by Subscribe.
func (d *Device) Unsubscribe(ch chan Event) {
	d.subsMu.Lock()
	delete(d.subs, ch)
	d.subsMu.Unlock()
}

func (d *Device) publish(ev Event) {
	d.subsMu.Lock()
	defer d.subsMu.Unlock()
	for ch := range d.subs {
		select {
		case ch <- ev:
		default:
			slog.Warn("subscriber lagging, dropping event", "event", ev.Kind)
		}
	}
}

// Send enqueues a message fire-and-forget, using tx_id 1. No reply is
// expected or correlated.
func (d *Device) Send(m Message) error {
	frame := EncodeFrame(m, 1)
	select {
	case d.outbound <- frame:
		return nil
	case <-d.closed:
		return ErrClosed
	}
}

// SendAndWait enqueues a message with a freshly allocated tx_id and
// blocks until a reply event carrying the same tx_id is observed, or the
// timeout elapses.
func (d *Device) SendAndWait(m Message, timeout time.Duration) (Event, error) {
	txID := d.newTxID()
	ch := make(chan Event, 1)

	d.waitersMu.Lock()
	d.waiters[txID] = ch
	d.waitersMu.Unlock()

	defer func() {
		d.waitersMu.Lock()
		delete(d.waiters, txID)
		d.waitersMu.Unlock()
	}()

	frame := EncodeFrame(m, txID)
	select {
	case d.outbound <- frame:
	case <-d.closed:
		return Event{}, ErrClosed
	}

	select {
	case ev := <-ch:
		return ev, nil
	case <-time.After(timeout):
		return Event{}, ErrTimeout
	case <-d.closed:
		return Event{}, ErrClosed
	}
}

func (d *Device) writeLoop() {
	for {
		select {
		case frame := <-d.outbound:
			if _, err := d.port.Write(frame); err != nil {
				slog.Warn("write failed, closing device", "err", err)
				d.Close()
				return
			}
		case <-d.closed:
			return
		}
	}
}

func (d *Device) readLoop() {
	for {
		payload, err := d.reader.ReadFrame()
		if err != nil {
			select {
			case <-d.closed:
			default:
				slog.Warn("read failed, closing device", "err", err)
				d.Close()
			}
			return
		}

		msg, err := DecodeMessage(payload)
		if err != nil {
			slog.Warn("malformed payload, resyncing", "err", err)
			continue
		}

		ev := DecodeEvent(msg)
		slog.Debug("received", "message", msg.String())
		if _, known := headerNames[msg.Header]; !known {
			slog.Warn("unknown header, reporting as Other", "err", ErrUnknownHeader, "header", msg.Header)
		}

		d.waitersMu.Lock()
		waiter, ok := d.waiters[ev.TxID]
		d.waitersMu.Unlock()
		if ok {
			select {
			case waiter <- ev:
			default:
			}
		}

		d.publish(ev)
	}
}

// Close tears down the connection: both loops exit, the broadcast
// channel closes for every subscriber, and pending waiters observe
// closure rather than a reply.
func (d *Device) Close() error {
	var err error
	d.closeOnce.Do(func() {
		close(d.closed)
		err = d.port.Close()

		d.subsMu.Lock()
		for ch := range d.subs {
			close(ch)
		}
		d.subs = nil
		d.subsMu.Unlock()
	})
	return err
}
