package location

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	nmea "github.com/adrianmo/go-nmea"
	"github.com/rs/zerolog/log"
	"go.bug.st/serial"
)

// DefaultBaud is the usual NMEA 0183 line speed.
const DefaultBaud = 9600

// uereMeters converts HDOP into a rough accuracy figure.
const uereMeters = 5.0

// NMEA reads fixes from a serial GPS receiver.
type NMEA struct {
	portPath string
	baud     int
	open     func(path string, mode *serial.Mode) (io.ReadCloser, error)

	mu     sync.Mutex
	last   Fix
	have   bool
	seenAt time.Time
}

var _ Source = (*NMEA)(nil)

// NewNMEA returns a source for the receiver on portPath. Run must be started
// for fixes to arrive.
func NewNMEA(portPath string, baud int) *NMEA {
	if baud <= 0 {
		baud = DefaultBaud
	}
	return &NMEA{
		portPath: portPath,
		baud:     baud,
		open: func(path string, mode *serial.Mode) (io.ReadCloser, error) {
			return serial.Open(path, mode)
		},
	}
}

// Run opens the port and consumes sentences until ctx is cancelled or the
// port fails.
func (n *NMEA) Run(ctx context.Context) error {
	mode := &serial.Mode{
		BaudRate: n.baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}
	port, err := n.open(n.portPath, mode)
	if err != nil {
		return fmt.Errorf("gps: open %s: %w", n.portPath, err)
	}
	log.Info().Str("component", "gps").Str("port", n.portPath).Int("baud", n.baud).Msg("gps connected")

	// Closing the port unblocks the scanner.
	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
		case <-done:
		}
		_ = port.Close()
	}()

	err = n.consume(port)
	close(done)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

func (n *NMEA) consume(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "$") {
			continue
		}
		sentence, err := nmea.Parse(line)
		if err != nil {
			log.Trace().Str("component", "gps").Err(err).Msg("skip sentence")
			continue
		}
		n.apply(sentence)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("gps: read: %w", err)
	}
	return nil
}

func (n *NMEA) apply(sentence nmea.Sentence) {
	n.mu.Lock()
	defer n.mu.Unlock()

	switch s := sentence.(type) {
	case nmea.RMC:
		if s.Validity != nmea.ValidRMC {
			n.have = false
			return
		}
		n.last.Lat = s.Latitude
		n.last.Lng = s.Longitude
		n.have = true
		n.seenAt = time.Now()
	case nmea.GGA:
		if s.FixQuality == nmea.Invalid {
			n.have = false
			return
		}
		n.last.Lat = s.Latitude
		n.last.Lng = s.Longitude
		n.last.Alt = s.Altitude
		n.last.Accuracy = s.HDOP * uereMeters
		n.have = true
		n.seenAt = time.Now()
	}
}

// Locate implements Source. It never blocks on the receiver.
func (n *NMEA) Locate(context.Context) (Fix, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.have {
		return Fix{}, ErrNoFix
	}
	return n.last, nil
}
