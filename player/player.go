package player

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/codec"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/event"
	"github.com/jsphweid/gosoul/model"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Sender delivers a message to an output, e.g. the func from gomidi.SendTo.
type Sender func(msg gomidi.Message) error

const allNotesOff = 123

// Player plays streams through one output. A Play call waits until the
// previous one has finished.
type Player struct {
	Logger *log.Logger

	mu    sync.Mutex
	send  Sender
	sleep func(ctx context.Context, d time.Duration) error
}

func New(send Sender) *Player {
	return &Player{send: send, sleep: sleep}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Schedule merges the tracks into one list ordered by tick. Messages on the
// same tick keep track order, then stream order.
func Schedule(stream event.Stream) event.Track {
	var res event.Track
	for _, t := range stream {
		res = append(res, t...)
	}
	sort.SliceStable(res, func(i, j int) bool {
		return res[i].Tick < res[j].Tick
	})
	return res
}

// TickDuration is the wall-clock length of ticks at micros per beat.
func TickDuration(ticks uint32, micros uint32) time.Duration {
	return time.Duration(ticks) * time.Duration(micros) * time.Microsecond / constants.TicksPerBeat
}

func (p *Player) PlaySequence(ctx context.Context, seq *model.Sequence) error {
	stream, err := codec.Encode(seq)
	if err != nil {
		return err
	}
	return p.Play(ctx, stream)
}

// Play sends the stream in real time. Tempo changes take effect when they
// are reached; until the first one 120 BPM is assumed. If ctx ends early,
// every used channel is silenced before returning.
func (p *Player) Play(ctx context.Context, stream event.Stream) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	micros, _ := event.BPMToMicros(constants.DefaultTempo)
	channels := map[uint8]bool{}
	var last uint32

	for _, m := range Schedule(stream) {
		if m.Tick > last {
			if err := p.sleep(ctx, TickDuration(m.Tick-last, micros)); err != nil {
				p.silence(channels)
				return err
			}
			last = m.Tick
		}

		var msg gomidi.Message
		switch m.Kind {
		case event.TempoChange:
			if v, err := event.DecodeTempo(m.Payload); err == nil && v > 0 {
				micros = v
			}
			continue
		case event.ProgramChange:
			msg = gomidi.ProgramChange(m.Channel, m.Program)
		case event.NoteOn:
			msg = gomidi.NoteOn(m.Channel, m.Key, m.Velocity)
		case event.NoteOff:
			msg = gomidi.NoteOff(m.Channel, m.Key)
		default:
			continue
		}
		channels[m.Channel] = true
		if err := p.send(msg); err != nil {
			p.silence(channels)
			return errors.Wrapf(err, "could not send %v", m)
		}
	}
	return nil
}

func (p *Player) logger() *log.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return log.Default()
}

func (p *Player) silence(channels map[uint8]bool) {
	for ch := range channels {
		if err := p.send(gomidi.ControlChange(ch, allNotesOff, 0)); err != nil {
			p.logger().Warn("could not silence channel", "channel", ch, "err", err)
		}
	}
}
