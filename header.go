package loupedeck

// Header identifies the kind of message carried inside a frame. Values are
// the big-endian u16 codes the device uses on the wire; they are bit-exact
// and must not be renumbered.
type Header uint16

// See "Message header table" in the protocol documentation. Names follow
// https://github.com/foxxyz/loupedeck's constants.js, adjusted to the
// numeric layout this device generation actually uses.
const (
	Confirm           Header = 0x0302
	SerialOut         Header = 0x0303
	VersionOut        Header = 0x0307
	Tick              Header = 0x0400
	SetBrightness     Header = 0x0409
	ConfirmFrameBuffer Header = 0x0410
	SetVibration      Header = 0x041B
	ButtonPress       Header = 0x0500
	KnobRotate        Header = 0x0501
	Reset             Header = 0x0506
	DrawIn            Header = 0x040F
	DrawOut           Header = 0x050F
	SetColor          Header = 0x0702
	TouchDown         Header = 0x094D
	TouchUp           Header = 0x096D
	VersionIn         Header = 0x0C07
	MCU               Header = 0x180D
	SerialIn          Header = 0x1F03
	WriteFrameBuffer  Header = 0xFF10
)

var headerNames = map[Header]string{
	Confirm:            "Confirm",
	SerialOut:          "SerialOut",
	VersionOut:         "VersionOut",
	Tick:               "Tick",
	SetBrightness:      "SetBrightness",
	ConfirmFrameBuffer: "ConfirmFrameBuffer",
	SetVibration:       "SetVibration",
	ButtonPress:        "ButtonPress",
	KnobRotate:         "KnobRotate",
	Reset:              "Reset",
	DrawIn:             "DrawIn",
	DrawOut:            "DrawOut",
	SetColor:           "SetColor",
	TouchDown:          "TouchDown",
	TouchUp:            "TouchUp",
	VersionIn:          "VersionIn",
	MCU:                "MCU",
	SerialIn:           "SerialIn",
	WriteFrameBuffer:   "WriteFrameBuffer",
}

// String renders a Header's name if known, or its raw hex value otherwise.
func (h Header) String() string {
	if name, ok := headerNames[h]; ok {
		return name
	}
	return "Header(0x" + hexByte(byte(h>>8)) + hexByte(byte(h)) + ")"
}

func hexByte(b byte) string {
	const digits = "0123456789abcdef"
	return string([]byte{digits[b>>4], digits[b&0xf]})
}

// Button identifies a physical or virtual button code.
type Button byte

const (
	ButtonHome Button = 0x07
)

// Knob identifies a rotary encoder code. 0x01..0x06.
type Knob byte

// PressDirection is the decoded direction of a ButtonPress event.
//
// The source this protocol was derived from is inconsistent about which
// value means which direction across its own versions; the touch-event
// branch's mapping is canonical: 0x00 is Down, 0x01 is Up.
type PressDirection byte

const (
	Down PressDirection = 0x00
	Up   PressDirection = 0x01
)
