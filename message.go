package loupedeck

import (
	"encoding/binary"
	"fmt"
)

// txIDMarker is the placeholder byte Encode writes where the frame layer
// will later stamp the allocated transaction id. Keeping this a fixed
// constant (rather than, say, zero) makes a mis-wired encode path obvious
// in hex dumps.
const txIDMarker = 0x01

// Message is the typed payload carried inside a Frame: a header
// identifying the kind of message, a transaction id correlating replies
// with requests, and an opaque body.
//
// Message is intentionally tx_id-agnostic at the encode level: Encode
// always writes txIDMarker in the tx_id slot. The frame layer owns tx_id
// assignment (see EncodeFrame), so Message itself stays pure and
// testable without a live allocator.
type Message struct {
	Header Header
	TxID   byte
	Body   []byte
}

// Encode renders the message to wire bytes: header_hi, header_lo, tx_id
// marker, body. The tx_id byte is a placeholder; callers that need a real
// tx_id use EncodeFrame (frame.go), which overwrites it.
func (m Message) Encode() []byte {
	b := make([]byte, 3+len(m.Body))
	binary.BigEndian.PutUint16(b[0:2], uint16(m.Header))
	b[2] = txIDMarker
	copy(b[3:], m.Body)
	return b
}

// DecodeMessage parses a message out of a frame payload. The payload must
// be at least 3 bytes (header + tx_id); shorter payloads are a protocol
// error handled by the caller (device.go's reader loop drops the frame
// and reads on rather than panicking).
func DecodeMessage(payload []byte) (Message, error) {
	if len(payload) < 3 {
		return Message{}, fmt.Errorf("loupedeck: short payload (%d bytes): %w", len(payload), ErrLengthMismatch)
	}
	return Message{
		Header: Header(binary.BigEndian.Uint16(payload[0:2])),
		TxID:   payload[2],
		Body:   payload[3:],
	}, nil
}

// String renders a human-readable summary for logging.
func (m Message) String() string {
	body := m.Body
	if len(body) > 16 {
		return fmt.Sprintf("{header: %s, tx: %02x, body: %v..., len: %d}", m.Header, m.TxID, body[:16], len(m.Body))
	}
	return fmt.Sprintf("{header: %s, tx: %02x, body: %v}", m.Header, m.TxID, body)
}
