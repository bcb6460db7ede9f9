package model

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

var ErrIndexOutOfRange = errors.New("index out of range")

// Element is something a Track can play: a Note or a Chord.
type Element interface {
	Pitches() []uint8
	Velocity() uint8
	Duration() uint32
	String() string
	element()
}

// Track is an ordered list of notes and chords played by one instrument.
type Track struct {
	elements   []Element
	instrument Instrument
}

func NewTrack(elements ...Element) Track {
	var t Track
	t.Add(elements...)
	return t
}

// Add appends elements in playback order. nil elements and chords without
// pitches are skipped.
func (t *Track) Add(elements ...Element) {
	for _, e := range elements {
		if checkElement(e) == nil {
			t.elements = append(t.elements, e)
		}
	}
}

func checkElement(e Element) error {
	if e == nil {
		return errors.New("nil element")
	}
	if c, ok := e.(Chord); ok && c.Size() == 0 {
		return ErrEmptyChord
	}
	return nil
}

// AddTrack appends the elements of other tracks; they are flattened, never
// nested.
func (t *Track) AddTrack(others ...Track) {
	for _, o := range others {
		t.elements = append(t.elements, o.elements...)
	}
}

func (t *Track) Set(i int, e Element) error {
	if i < 0 || i >= len(t.elements) {
		return errors.Wrapf(ErrIndexOutOfRange, "element %d of %d", i, len(t.elements))
	}
	if err := checkElement(e); err != nil {
		return errors.Wrapf(err, "cannot set element %d", i)
	}
	t.elements[i] = e
	return nil
}

func (t *Track) Remove(i int) error {
	if i < 0 || i >= len(t.elements) {
		return errors.Wrapf(ErrIndexOutOfRange, "element %d of %d", i, len(t.elements))
	}
	t.elements = append(t.elements[:i], t.elements[i+1:]...)
	return nil
}

// Clear drops every element and resets the instrument to piano.
func (t *Track) Clear() {
	t.elements = nil
	t.instrument = GrandPiano
}

func (t Track) Len() int {
	return len(t.elements)
}

// Elements returns a copy of the element list.
func (t Track) Elements() []Element {
	res := make([]Element, len(t.elements))
	copy(res, t.elements)
	return res
}

func (t Track) Element(i int) Element {
	return t.elements[i]
}

func (t Track) Instrument() Instrument {
	return t.instrument
}

func (t *Track) SetInstrument(i Instrument) {
	t.instrument = i
}

// Transpose moves every element by steps semitones. Elements that would
// leave 0-127 stay where they are.
func (t *Track) Transpose(steps int) {
	for i, e := range t.elements {
		switch v := e.(type) {
		case Note:
			v.Transpose(steps)
			t.elements[i] = v
		case Chord:
			v.Transpose(steps)
			t.elements[i] = v
		}
	}
}

// Ticks is the length of the track in ticks.
func (t Track) Ticks() uint64 {
	var total uint64
	for _, e := range t.elements {
		total += uint64(e.Duration())
	}
	return total
}

func (t Track) Clone() Track {
	return Track{elements: t.Elements(), instrument: t.instrument}
}

func (t Track) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "TRACK: Elements = %v, Instrument = %v\n", len(t.elements), t.instrument)
	for _, e := range t.elements {
		fmt.Fprintf(&b, "   %v\n", e)
	}
	b.WriteString("END TRACK")
	return b.String()
}
