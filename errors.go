package loupedeck

import "errors"

var (
	// ErrVersionMismatch is returned when a plugin's declared ABI or core
	// version does not match the host's compiled-in values.
	ErrVersionMismatch = errors.New("loupedeck: version mismatch")

	// ErrUnknownHeader is reported (never fatal) when a decoded message
	// carries a header the codec doesn't recognize; the event still
	// surfaces as Other.
	ErrUnknownHeader = errors.New("loupedeck: unknown header")

	// ErrLengthMismatch is returned when a draw payload's length doesn't
	// match the region it's addressed to.
	ErrLengthMismatch = errors.New("loupedeck: buffer length mismatch")

	// ErrTimeout is returned when a request waiter expires before a
	// correlated reply arrives.
	ErrTimeout = errors.New("loupedeck: timeout waiting for reply")

	// ErrUpgradeRejected is returned when the device's response to the
	// WS-like upgrade payload doesn't contain the expected substring.
	ErrUpgradeRejected = errors.New("loupedeck: upgrade rejected")

	// ErrClosed is returned by operations attempted after the device's
	// connection has been torn down.
	ErrClosed = errors.New("loupedeck: device closed")
)
