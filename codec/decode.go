package codec

import (
	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/event"
	"github.com/jsphweid/gosoul/model"
	"github.com/pkg/errors"
)

var (
	ErrUnmatchedNoteOff  = errors.New("note off without a sounding note")
	ErrUnterminatedGroup = errors.New("notes still sounding at end of track")
)

// Decoder rebuilds sequences from message lists.
//
// Simultaneous notes are regrouped by counting sounding notes: a group opens
// with the first note-on and closes when as many note-offs have arrived.
// One pitch becomes a Note, several a Chord. This restores exactly what
// Encode produced; overlapping notes from other sources may be grouped
// differently.
//
// Without Strict, stray note-offs, groups left open at the end of a track
// and unreadable tempos are logged and skipped.
type Decoder struct {
	Strict bool
	Logger *log.Logger
}

// Decode uses a lenient Decoder.
func Decode(stream event.Stream) (*model.Sequence, error) {
	return Decoder{}.Decode(stream)
}

func (d Decoder) logger() *log.Logger {
	if d.Logger != nil {
		return d.Logger
	}
	return log.Default()
}

// pending is the group of notes currently sounding.
type pending struct {
	open     bool
	start    uint32
	velocity uint8
	live     int
	pitches  []uint8
}

func (d Decoder) Decode(stream event.Stream) (*model.Sequence, error) {
	if err := stream.Validate(); err != nil {
		return nil, err
	}

	var tempo float64
	tracks := make([]model.Track, 0, len(stream))

	for i, messages := range stream {
		t, bpm, err := d.decodeTrack(messages)
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		if tempo == 0 && bpm != 0 {
			tempo = bpm
		}
		tracks = append(tracks, t)
	}

	if tempo == 0 {
		tempo = constants.DefaultTempo
	}
	seq := model.NewSequence(tracks...)
	seq.SetTempo(tempo)
	return seq, nil
}

// decodeTrack returns the track and the first tempo it carries, or 0.
func (d Decoder) decodeTrack(messages event.Track) (model.Track, float64, error) {
	var t model.Track
	var tempo float64
	var g pending

	for _, m := range messages {
		switch m.Kind {
		case event.ProgramChange:
			t.SetInstrument(model.Instrument(m.Program))

		case event.TempoChange:
			bpm, err := m.BPM()
			if err != nil {
				if d.Strict {
					return t, 0, err
				}
				d.logger().Warn("ignoring unreadable tempo", "tick", m.Tick, "err", err)
				continue
			}
			if tempo == 0 {
				tempo = bpm
			}

		case event.NoteOn:
			if !g.open {
				g = pending{open: true, start: m.Tick, velocity: m.Velocity}
			}
			g.live++

		case event.NoteOff:
			if !g.open {
				if d.Strict {
					return t, 0, errors.Wrapf(ErrUnmatchedNoteOff, "key %d at tick %d", m.Key, m.Tick)
				}
				d.logger().Warn("ignoring unmatched note off", "key", m.Key, "tick", m.Tick)
				continue
			}
			g.pitches = append(g.pitches, m.Key)
			g.live--
			if g.live == 0 {
				e, err := g.close(m.Tick)
				if err != nil {
					return t, 0, err
				}
				t.Add(e)
				g = pending{}
			}
		}
	}

	if g.open {
		if d.Strict {
			return t, 0, errors.Wrapf(ErrUnterminatedGroup, "%d notes from tick %d", g.live, g.start)
		}
		d.logger().Warn("dropping notes still sounding at end of track", "count", g.live, "tick", g.start)
	}
	return t, tempo, nil
}

func (g pending) close(tick uint32) (model.Element, error) {
	duration := tick - g.start
	if len(g.pitches) == 1 {
		return model.NewNote(int(g.pitches[0]), int(g.velocity), duration), nil
	}
	c, err := model.NewChord(g.pitches, int(g.velocity), duration)
	if err != nil {
		return nil, err
	}
	return c, nil
}
