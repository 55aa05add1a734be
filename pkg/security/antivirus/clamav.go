package antivirus

import (
	"context"
	"encoding/binary"
	"fmt"
	"io"
	"net"
	"strings"
	"time"
)

// ClamAVScanner streams resumes to a clamd daemon.
type ClamAVScanner struct {
	address string        // TCP address (host:port) or Unix socket path
	timeout time.Duration // Connection and scan timeout
}

var _ Scanner = (*ClamAVScanner)(nil)

// NewClamAVScanner creates a ClamAV scanner
// address: TCP "localhost:3310" or Unix socket "/var/run/clamav/clamd.sock"
func NewClamAVScanner(address string, timeout time.Duration) *ClamAVScanner {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &ClamAVScanner{
		address: address,
		timeout: timeout,
	}
}

func (c *ClamAVScanner) Name() string {
	return "clamav"
}

func (c *ClamAVScanner) dial(ctx context.Context, timeout time.Duration) (net.Conn, error) {
	network := "tcp"
	if strings.HasPrefix(c.address, "/") {
		network = "unix"
	}

	d := net.Dialer{Timeout: timeout}
	conn, err := d.DialContext(ctx, network, c.address)
	if err != nil {
		return nil, err
	}
	deadline := time.Now().Add(timeout)
	if dl, ok := ctx.Deadline(); ok && dl.Before(deadline) {
		deadline = dl
	}
	_ = conn.SetDeadline(deadline)
	return conn, nil
}

// Available sends PING and expects PONG.
func (c *ClamAVScanner) Available(ctx context.Context) bool {
	conn, err := c.dial(ctx, 5*time.Second)
	if err != nil {
		return false
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zPING\x00")); err != nil {
		return false
	}

	buf := make([]byte, 16)
	n, err := conn.Read(buf)
	if err != nil && n == 0 {
		return false
	}
	return strings.HasPrefix(string(buf[:n]), "PONG")
}

// Ping reports clamd reachability as an error, for health checks.
func (c *ClamAVScanner) Ping(ctx context.Context) error {
	if !c.Available(ctx) {
		return fmt.Errorf("clamd at %s is not responding", c.address)
	}
	return nil
}

// Scan checks file for malware using the clamd INSTREAM command
func (c *ClamAVScanner) Scan(ctx context.Context, filename string, data io.Reader) ScanResult {
	result := ScanResult{ScannerName: c.Name()}
	fail := func(format string, err error) ScanResult {
		result.Infected = true // Fail closed
		result.Error = fmt.Errorf(format, err)
		return result
	}

	fileData, err := io.ReadAll(data)
	if err != nil {
		return fail("failed to read file data: %w", err)
	}

	conn, err := c.dial(ctx, c.timeout)
	if err != nil {
		return fail("failed to connect to clamd: %w", err)
	}
	defer conn.Close()

	if _, err := conn.Write([]byte("zINSTREAM\x00")); err != nil {
		return fail("failed to send command: %w", err)
	}

	// One chunk: big-endian uint32 length, payload, then a zero-length chunk.
	size := make([]byte, 4)
	binary.BigEndian.PutUint32(size, uint32(len(fileData)))
	if _, err := conn.Write(size); err != nil {
		return fail("failed to send size: %w", err)
	}
	if _, err := conn.Write(fileData); err != nil {
		return fail("failed to send file data: %w", err)
	}
	if _, err := conn.Write([]byte{0, 0, 0, 0}); err != nil {
		return fail("failed to send end marker: %w", err)
	}

	reply, err := io.ReadAll(io.LimitReader(conn, 1024))
	if err != nil && len(reply) == 0 {
		return fail("failed to read response: %w", err)
	}

	// "stream: OK", "stream: Eicar-Signature FOUND" or "stream: <msg> ERROR"
	resp := strings.TrimRight(strings.TrimSpace(string(reply)), "\x00")
	switch {
	case strings.HasSuffix(resp, "FOUND"):
		result.Infected = true
		if _, threat, ok := strings.Cut(resp, ":"); ok {
			result.ThreatName = strings.TrimSuffix(strings.TrimSpace(threat), " FOUND")
		}
	case strings.HasSuffix(resp, "ERROR"):
		result.Infected = true
		result.Error = fmt.Errorf("scan error: %s", resp)
	}
	return result
}
