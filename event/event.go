package event

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrNonMonotonic = errors.New("ticks go backwards")

type Kind uint8

const (
	TempoChange Kind = iota + 1
	ProgramChange
	NoteOn
	NoteOff
)

func (k Kind) String() string {
	switch k {
	case TempoChange:
		return "TempoChange"
	case ProgramChange:
		return "ProgramChange"
	case NoteOn:
		return "NoteOn"
	case NoteOff:
		return "NoteOff"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Message is one timestamped event. Tick is an absolute tick count.
// Only the fields relevant to Kind are set: Payload for TempoChange,
// Program for ProgramChange, Key and Velocity for notes.
type Message struct {
	Tick     uint32
	Kind     Kind
	Channel  uint8
	Key      uint8
	Velocity uint8
	Program  uint8
	Payload  []byte
}

func Tempo(tick uint32, payload []byte) Message {
	return Message{Tick: tick, Kind: TempoChange, Payload: payload}
}

func Program(tick uint32, channel, program uint8) Message {
	return Message{Tick: tick, Kind: ProgramChange, Channel: channel, Program: program}
}

func On(tick uint32, channel, key, velocity uint8) Message {
	return Message{Tick: tick, Kind: NoteOn, Channel: channel, Key: key, Velocity: velocity}
}

func Off(tick uint32, channel, key uint8) Message {
	return Message{Tick: tick, Kind: NoteOff, Channel: channel, Key: key}
}

func (m Message) String() string {
	switch m.Kind {
	case TempoChange:
		return fmt.Sprintf("@%d TempoChange(% X)", m.Tick, m.Payload)
	case ProgramChange:
		return fmt.Sprintf("@%d ProgramChange(%d, %d)", m.Tick, m.Channel, m.Program)
	case NoteOn:
		return fmt.Sprintf("@%d NoteOn(%d, %d, %d)", m.Tick, m.Channel, m.Key, m.Velocity)
	case NoteOff:
		return fmt.Sprintf("@%d NoteOff(%d, %d)", m.Tick, m.Channel, m.Key)
	}
	return fmt.Sprintf("@%d %v", m.Tick, m.Kind)
}

// Track is the ordered message list of one track.
type Track []Message

// Validate checks that ticks never decrease.
func (t Track) Validate() error {
	for i := 1; i < len(t); i++ {
		if t[i].Tick < t[i-1].Tick {
			return errors.Wrapf(ErrNonMonotonic, "message %d at tick %d follows tick %d", i, t[i].Tick, t[i-1].Tick)
		}
	}
	return nil
}

// End is the tick of the last message.
func (t Track) End() uint32 {
	if len(t) == 0 {
		return 0
	}
	return t[len(t)-1].Tick
}

// Stream holds one message list per track, in channel order.
type Stream []Track

func (s Stream) Validate() error {
	for i, t := range s {
		if err := t.Validate(); err != nil {
			return errors.Wrapf(err, "track %d", i)
		}
	}
	return nil
}
