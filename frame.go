package loupedeck

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// frameMarker is the leading byte of every frame, short- or long-form.
// It doubles as a WebSocket-like "binary frame" opcode byte (0x82 = FIN +
// opcode 0x2), inherited from the device's WS-like envelope even though
// the rest of the handshake/framing isn't RFC6455-conformant.
const frameMarker = 0x82

// longFormLen is the sentinel short-length byte signaling a 14-byte
// long-form prefix follows instead of a single payload-length byte.
const longFormLen = 0xFF

// longFormPrefixLen is the fixed size of the long-form prefix.
const longFormPrefixLen = 14

// longFormLenOffset is the prefix offset carrying the BE32 payload
// length. Earlier drafts of this protocol wrote the length at offset 9,
// producing malformed frames; offset 6 is the correct, load-bearing
// value.
const longFormLenOffset = 6

// EncodeFrame wraps a message's encoded bytes in the wire envelope,
// stamping txID into the tx_id slot that Message.Encode left as a
// placeholder. Short form is used when the payload is under 255 bytes;
// a payload of exactly 255 bytes must use long form too, since a
// short-form length byte of 0xFF is indistinguishable from longFormLen.
func EncodeFrame(m Message, txID byte) []byte {
	payload := m.Encode()
	payload[2] = txID

	if len(payload) < longFormLen {
		frame := make([]byte, 2+len(payload))
		frame[0] = frameMarker
		frame[1] = byte(len(payload))
		copy(frame[2:], payload)
		return frame
	}

	frame := make([]byte, longFormPrefixLen+len(payload))
	frame[0] = frameMarker
	frame[1] = longFormLen
	binary.BigEndian.PutUint32(frame[longFormLenOffset:longFormLenOffset+4], uint32(len(payload)))
	copy(frame[longFormPrefixLen:], payload)
	return frame
}

// FrameReader scans an inbound byte stream for frame-marker-delimited
// payloads, resynchronizing on stray bytes rather than failing outright.
// Only short-form frames are expected inbound (per the protocol's
// observed behavior); a long-form marker byte is read past length-wise,
// but the device does not send them.
type FrameReader struct {
	r *bufio.Reader
}

// NewFrameReader wraps r for frame-at-a-time reads.
func NewFrameReader(r *bufio.Reader) *FrameReader {
	return &FrameReader{r: r}
}

// ReadFrame blocks until one complete payload has been read, resyncing
// past any bytes preceding the next frameMarker. It returns the raw
// message payload (header+tx_id+body), not including the envelope.
func (fr *FrameReader) ReadFrame() ([]byte, error) {
	for {
		b, err := fr.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("loupedeck: frame read: %w", err)
		}
		if b != frameMarker {
			continue
		}

		lenByte, err := fr.r.ReadByte()
		if err != nil {
			return nil, fmt.Errorf("loupedeck: frame length read: %w", err)
		}

		var payloadLen int
		if lenByte == longFormLen {
			prefix := make([]byte, longFormPrefixLen-2)
			if _, err := io.ReadFull(fr.r, prefix); err != nil {
				return nil, fmt.Errorf("loupedeck: long-form prefix read: %w", err)
			}
			payloadLen = int(binary.BigEndian.Uint32(prefix[longFormLenOffset-2 : longFormLenOffset+2]))
		} else {
			payloadLen = int(lenByte)
		}

		payload := make([]byte, payloadLen)
		if _, err := io.ReadFull(fr.r, payload); err != nil {
			return nil, fmt.Errorf("loupedeck: frame payload read: %w", err)
		}
		return payload, nil
	}
}
