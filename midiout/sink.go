package midiout

import (
	"fmt"
	"strings"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/quaverlabs/pitchroll/logging"
)

// Sink consumes raw MIDI command bytes. The player calls it from its
// dispatch goroutine only, so implementations need not be thread safe.
type Sink interface {
	Send(msg midi.Message) error
}

// PortSink drives a real output device through rtmidi.
type PortSink struct {
	drv    *rtmididrv.Driver
	out    drivers.Out
	logger logging.Logger
}

// OpenPortSink connects to the first output port whose name contains the
// given pattern (case-insensitive). With an empty pattern it connects to
// the only available port, and fails when the choice is ambiguous.
func OpenPortSink(pattern string) (*PortSink, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	outs, err := drv.Outs()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("list midi outputs: %w", err)
	}

	out, err := pickOut(outs, pattern)
	if err != nil {
		drv.Close()
		return nil, err
	}

	if err := out.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("open midi output %q: %w", out.String(), err)
	}

	logger := logging.WithFields(logging.Fields{"component": "midiout"})
	logger.Info("connected to midi output", logging.Fields{"port": out.String()})

	return &PortSink{drv: drv, out: out, logger: logger}, nil
}

func pickOut(outs []drivers.Out, pattern string) (drivers.Out, error) {
	if pattern != "" {
		for _, out := range outs {
			if strings.Contains(strings.ToLower(out.String()), strings.ToLower(pattern)) {
				return out, nil
			}
		}
		return nil, fmt.Errorf("no midi output matching %q", pattern)
	}

	switch len(outs) {
	case 0:
		return nil, fmt.Errorf("no midi outputs available")
	case 1:
		return outs[0], nil
	default:
		names := make([]string, len(outs))
		for i, out := range outs {
			names[i] = out.String()
		}
		return nil, fmt.Errorf("multiple midi outputs available, pick one: %s", strings.Join(names, ", "))
	}
}

// Send writes the raw command bytes to the device.
func (p *PortSink) Send(msg midi.Message) error {
	return p.out.Send(msg)
}

// Close silences the device and shuts the connection down.
func (p *PortSink) Close() error {
	if err := p.out.Send(allSoundOffMessage()); err != nil {
		p.logger.Warn("all-sound-off on close failed", logging.Fields{"err": err})
	}
	if err := p.out.Close(); err != nil {
		p.drv.Close()
		return fmt.Errorf("close midi output: %w", err)
	}
	return p.drv.Close()
}
