package loupedeck

import (
	"bufio"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"
)

// loupedeckVendorID is the USB vendor id all Loupedeck-class devices
// share, regardless of product id.
const loupedeckVendorID = "2eca"

// upgradePayload is the fixed WS-like upgrade request the device expects.
// CRLF or LF line endings are both accepted; this sends LF, matching the
// reference implementation.
const upgradePayload = "GET /index.html\nHTTP/1.1\nConnection: Upgrade\nUpgrade: websocket\nSec-WebSocket-Key: 123abc\n\n"

// upgradeAcceptSubstring is the literal substring the upgrade response
// must contain; there is no real Sec-WebSocket-Accept validation.
const upgradeAcceptSubstring = "HTTP/1.1"

// serialPort is the minimal surface device.go needs from go.bug.st/serial,
// kept narrow so tests can substitute an in-memory fake.
type serialPort interface {
	Read(b []byte) (int, error)
	Write(b []byte) (int, error)
	Close() error
}

// OpenAuto enumerates serial ports and opens the first one carrying the
// Loupedeck vendor id. Port discovery is a simple filter over the OS
// port list, same as the teacher's ConnectSerialAuto, generalized to
// spec.md's single vendor id.
func OpenAuto() (serial.Port, string, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, "", fmt.Errorf("loupedeck: enumerate ports: %w", err)
	}
	if len(ports) == 0 {
		return nil, "", fmt.Errorf("loupedeck: no serial ports found")
	}

	for _, port := range ports {
		if !port.IsUSB || strings.ToLower(port.VID) != loupedeckVendorID {
			continue
		}
		slog.Info("opening candidate port", "port", port.Name, "vid", port.VID)
		p, err := openPort(port.Name)
		if err != nil {
			return nil, "", err
		}
		return p, port.Name, nil
	}

	return nil, "", fmt.Errorf("loupedeck: no device with vendor id 0x%s found", loupedeckVendorID)
}

// OpenPath opens a specific serial device path directly, bypassing
// vendor-id discovery.
func OpenPath(path string) (serial.Port, error) {
	return openPort(path)
}

func openPort(path string) (serial.Port, error) {
	p, err := serial.Open(path, &serial.Mode{BaudRate: 9600})
	if err != nil {
		return nil, fmt.Errorf("loupedeck: open port %q: %w", path, err)
	}
	return p, nil
}

// performUpgrade writes the fixed upgrade payload and blocks until the
// response contains the expected substring, or the deadline passes. r
// must be the same buffered reader the caller will use afterwards for
// frame reads, so no bytes following the handshake response are lost to
// a discarded read-ahead buffer.
func performUpgrade(port serialPort, r *bufio.Reader, timeout time.Duration) error {
	if _, err := port.Write([]byte(upgradePayload)); err != nil {
		return fmt.Errorf("loupedeck: upgrade write: %w", err)
	}

	deadline := time.Now().Add(timeout)
	var seen strings.Builder

	for time.Now().Before(deadline) {
		b, err := r.ReadByte()
		if err != nil {
			continue
		}
		seen.WriteByte(b)
		if strings.Contains(seen.String(), upgradeAcceptSubstring) {
			return nil
		}
	}
	return fmt.Errorf("loupedeck: no upgrade response containing %q: %w", upgradeAcceptSubstring, ErrUpgradeRejected)
}
