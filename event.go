package loupedeck

import (
	"encoding/binary"
	"strings"
)

// EventKind discriminates the variants of Event.
type EventKind int

const (
	EventButtonPress EventKind = iota
	EventKnobRotate
	EventTouch
	EventSerialIn
	EventVersionIn
	EventConfirmFrameBuffer
	EventDrawIn
	EventOther
)

// TouchPhase distinguishes a touch-down from a touch-up within a
// TouchEvent.
type TouchPhase int

const (
	TouchDownPhase TouchPhase = iota
	TouchUpPhase
)

// Event is the decoded form of an inbound Message. Exactly one of the
// typed fields below is meaningful, selected by Kind.
type Event struct {
	Kind EventKind
	TxID byte

	Button    Button
	Direction PressDirection

	Knob  Knob
	Delta int8

	TouchX, TouchY uint16
	TouchID        byte
	TouchScreen    Screen
	TouchPhase     TouchPhase

	Serial  string
	Version string

	// Raw carries the undecoded message for EventOther, for diagnostics.
	Raw Message
}

// DecodeEvent turns a decoded Message into an Event. Protocol errors
// (malformed bodies, out-of-range touch coordinates) never fail outright;
// they degrade to EventOther so a single bad frame doesn't kill the
// stream, matching the propagation policy of dropping bad events rather
// than the connection.
func DecodeEvent(m Message) Event {
	switch m.Header {
	case ButtonPress:
		if len(m.Body) < 2 {
			return Event{Kind: EventOther, TxID: m.TxID, Raw: m}
		}
		return Event{
			Kind:      EventButtonPress,
			TxID:      m.TxID,
			Button:    Button(m.Body[0]),
			Direction: PressDirection(m.Body[1]),
		}

	case KnobRotate:
		if len(m.Body) < 2 {
			return Event{Kind: EventOther, TxID: m.TxID, Raw: m}
		}
		return Event{
			Kind:  EventKnobRotate,
			TxID:  m.TxID,
			Knob:  Knob(m.Body[0]),
			Delta: int8(m.Body[1]),
		}

	case TouchDown, TouchUp:
		if len(m.Body) < 6 {
			return Event{Kind: EventOther, TxID: m.TxID, Raw: m}
		}
		x := binary.BigEndian.Uint16(m.Body[1:3])
		y := binary.BigEndian.Uint16(m.Body[3:5])
		id := m.Body[5]
		screen, err := ScreenForX(x)
		if err != nil {
			return Event{Kind: EventOther, TxID: m.TxID, Raw: m}
		}
		phase := TouchDownPhase
		if m.Header == TouchUp {
			phase = TouchUpPhase
		}
		return Event{
			Kind:        EventTouch,
			TxID:        m.TxID,
			TouchX:      x,
			TouchY:      y,
			TouchID:     id,
			TouchScreen: screen,
			TouchPhase:  phase,
		}

	case SerialIn:
		return Event{
			Kind:   EventSerialIn,
			TxID:   m.TxID,
			Serial: strings.TrimSpace(string(m.Body)),
		}

	case VersionIn:
		if len(m.Body) < 3 {
			return Event{Kind: EventOther, TxID: m.TxID, Raw: m}
		}
		return Event{
			Kind:    EventVersionIn,
			TxID:    m.TxID,
			Version: formatVersion(m.Body[0], m.Body[1], m.Body[2]),
		}

	case ConfirmFrameBuffer:
		return Event{Kind: EventConfirmFrameBuffer, TxID: m.TxID}

	case DrawIn:
		return Event{Kind: EventDrawIn, TxID: m.TxID}

	default:
		return Event{Kind: EventOther, TxID: m.TxID, Raw: m}
	}
}

func formatVersion(major, minor, patch byte) string {
	return itoa(major) + "." + itoa(minor) + "." + itoa(patch)
}

func itoa(b byte) string {
	if b < 10 {
		return string([]byte{'0' + b})
	}
	var digits []byte
	for b > 0 {
		digits = append([]byte{'0' + b%10}, digits...)
		b /= 10
	}
	return string(digits)
}
