package model

import (
	"fmt"

	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/util"
)

// Note is a single pitch played at a velocity for a number of ticks.
type Note struct {
	pitch    uint8
	velocity uint8
	duration uint32
}

func clampData(v int) uint8 {
	return uint8(util.Clamp(v, 0, constants.MaxDataValue))
}

// NewNote clamps pitch and velocity to 0-127.
func NewNote(pitch, velocity int, duration uint32) Note {
	return Note{pitch: clampData(pitch), velocity: clampData(velocity), duration: duration}
}

// ParseNote builds a Note from a pitch name such as "Eb5".
func ParseNote(name string, velocity int, duration uint32) (Note, error) {
	p, err := ParsePitch(name)
	if err != nil {
		return Note{}, err
	}
	return NewNote(int(p), velocity, duration), nil
}

// DefaultNote is a mezzoforte middle C whole note.
func DefaultNote() Note {
	return NewNote(60, MezzoForte, Whole)
}

func (n Note) Pitch() uint8 {
	return n.pitch
}

func (n Note) PitchName() string {
	return PitchName(n.pitch)
}

func (n Note) Velocity() uint8 {
	return n.velocity
}

func (n Note) Duration() uint32 {
	return n.duration
}

func (n Note) Pitches() []uint8 {
	return []uint8{n.pitch}
}

func (n *Note) SetPitch(pitch int) {
	n.pitch = clampData(pitch)
}

func (n *Note) SetPitchName(name string) error {
	p, err := ParsePitch(name)
	if err != nil {
		return err
	}
	n.pitch = p
	return nil
}

func (n *Note) SetVelocity(velocity int) {
	n.velocity = clampData(velocity)
}

func (n *Note) SetDuration(duration uint32) {
	n.duration = duration
}

// Transpose moves the note by steps semitones. It does nothing and returns
// false when the result would leave 0-127.
func (n *Note) Transpose(steps int) bool {
	p := int(n.pitch) + steps
	if !util.InRange(0, constants.MaxDataValue, p) {
		return false
	}
	n.pitch = uint8(p)
	return true
}

// Compare orders notes by pitch.
func (n Note) Compare(other Note) int {
	switch {
	case n.pitch > other.pitch:
		return 1
	case n.pitch < other.pitch:
		return -1
	}
	return 0
}

func (n Note) String() string {
	return fmt.Sprintf("NOTE: Pitch = %v, Velocity = %v, Duration = %v", n.PitchName(), n.velocity, n.duration)
}

func (Note) element() {}
