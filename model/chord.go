package model

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/util"
	"github.com/pkg/errors"
)

var ErrEmptyChord = errors.New("chord needs at least one pitch")

// Chord is a set of pitches sharing one velocity and duration. Pitches are
// always kept in ascending order.
type Chord struct {
	pitches  []uint8
	velocity uint8
	duration uint32
}

func sortedCopy(pitches []uint8) []uint8 {
	res := make([]uint8, len(pitches))
	copy(res, pitches)
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}

func NewChord(pitches []uint8, velocity int, duration uint32) (Chord, error) {
	if len(pitches) == 0 {
		return Chord{}, ErrEmptyChord
	}
	for _, p := range pitches {
		if p > constants.MaxDataValue {
			return Chord{}, errors.Wrapf(ErrInvalidPitch, "pitch %d is out of range", p)
		}
	}
	return Chord{pitches: sortedCopy(pitches), velocity: clampData(velocity), duration: duration}, nil
}

// ParseChord builds a chord from space separated pitch names, e.g. "C4 E4 G4".
func ParseChord(list string, velocity int, duration uint32) (Chord, error) {
	pitches, err := ParsePitches(list)
	if err != nil {
		return Chord{}, err
	}
	return NewChord(pitches, velocity, duration)
}

// DefaultChord is a mezzoforte C major triad lasting a whole note.
func DefaultChord() Chord {
	return Chord{pitches: []uint8{60, 64, 67}, velocity: MezzoForte, duration: Whole}
}

func (c Chord) Size() int {
	return len(c.pitches)
}

// Pitches returns a copy of the pitches, lowest first.
func (c Chord) Pitches() []uint8 {
	res := make([]uint8, len(c.pitches))
	copy(res, c.pitches)
	return res
}

func (c *Chord) SetPitches(pitches []uint8) error {
	next, err := NewChord(pitches, int(c.velocity), c.duration)
	if err != nil {
		return err
	}
	c.pitches = next.pitches
	return nil
}

func (c Chord) Lowest() uint8 {
	return c.pitches[0]
}

func (c Chord) Highest() uint8 {
	return c.pitches[len(c.pitches)-1]
}

func (c Chord) Velocity() uint8 {
	return c.velocity
}

func (c *Chord) SetVelocity(velocity int) {
	c.velocity = clampData(velocity)
}

func (c Chord) Duration() uint32 {
	return c.duration
}

func (c *Chord) SetDuration(duration uint32) {
	c.duration = duration
}

// Notes splits the chord into one Note per pitch, lowest first.
func (c Chord) Notes() []Note {
	res := make([]Note, 0, len(c.pitches))
	for _, p := range c.pitches {
		res = append(res, Note{pitch: p, velocity: c.velocity, duration: c.duration})
	}
	return res
}

func (c Chord) Note(i int) Note {
	return Note{pitch: c.pitches[i], velocity: c.velocity, duration: c.duration}
}

// Transpose moves every pitch by steps semitones. Nothing changes if any
// pitch would leave 0-127.
func (c *Chord) Transpose(steps int) bool {
	if len(c.pitches) == 0 {
		return false
	}
	if !util.InRange(0, constants.MaxDataValue, int(c.Lowest())+steps, int(c.Highest())+steps) {
		return false
	}
	next := make([]uint8, len(c.pitches))
	for i, p := range c.pitches {
		next[i] = uint8(int(p) + steps)
	}
	c.pitches = next
	return true
}

// Key identifies the pitch set, e.g. "60-64-67".
func (c Chord) Key() string {
	parts := make([]string, len(c.pitches))
	for i, p := range c.pitches {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "-")
}

// Compare orders chords by size.
func (c Chord) Compare(other Chord) int {
	switch {
	case len(c.pitches) > len(other.pitches):
		return 1
	case len(c.pitches) < len(other.pitches):
		return -1
	}
	return 0
}

func (c Chord) String() string {
	var names []string
	for _, p := range c.pitches {
		names = append(names, PitchName(p))
	}
	return fmt.Sprintf("CHORD: Pitches = %v, Velocity = %v, Duration = %v", strings.Join(names, " "), c.velocity, c.duration)
}

func (Chord) element() {}
