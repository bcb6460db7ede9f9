package model

import (
	"fmt"
	"strings"

	"github.com/jsphweid/gosoul/constants"
	"github.com/pkg/errors"
)

var ErrTrackCountMismatch = errors.New("track counts differ")

// Sequence layers tracks under one tempo in beats per minute. Track order
// is channel order. A Sequence owns its tracks and is passed by pointer;
// Clone gives an independent copy.
type Sequence struct {
	tracks []*Track
	tempo  float64
}

func NewSequence(tracks ...Track) *Sequence {
	s := &Sequence{tempo: constants.DefaultTempo}
	s.Add(tracks...)
	return s
}

func (s *Sequence) Clone() *Sequence {
	c := &Sequence{tempo: s.tempo}
	for _, t := range s.tracks {
		c.Add(*t)
	}
	return c
}

// Add stores copies of the given tracks.
func (s *Sequence) Add(tracks ...Track) {
	for _, t := range tracks {
		c := t.Clone()
		s.tracks = append(s.tracks, &c)
	}
}

func (s *Sequence) SetTrack(i int, t Track) error {
	if i < 0 || i >= len(s.tracks) {
		return errors.Wrapf(ErrIndexOutOfRange, "track %d of %d", i, len(s.tracks))
	}
	c := t.Clone()
	s.tracks[i] = &c
	return nil
}

func (s *Sequence) SetTracks(tracks ...Track) {
	s.tracks = nil
	s.Add(tracks...)
}

func (s *Sequence) RemoveTrack(i int) error {
	if i < 0 || i >= len(s.tracks) {
		return errors.Wrapf(ErrIndexOutOfRange, "track %d of %d", i, len(s.tracks))
	}
	s.tracks = append(s.tracks[:i], s.tracks[i+1:]...)
	return nil
}

// Clear drops every track and resets the tempo to 120 BPM.
func (s *Sequence) Clear() {
	s.tracks = nil
	s.tempo = constants.DefaultTempo
}

func (s *Sequence) NumTracks() int {
	return len(s.tracks)
}

// Track returns the owned track at i; changes through it are kept.
func (s *Sequence) Track(i int) *Track {
	return s.tracks[i]
}

// Tracks returns copies of all tracks.
func (s *Sequence) Tracks() []Track {
	res := make([]Track, 0, len(s.tracks))
	for _, t := range s.tracks {
		res = append(res, t.Clone())
	}
	return res
}

// Tempo is in beats per minute. The zero Sequence reports 120.
func (s *Sequence) Tempo() float64 {
	if s.tempo == 0 {
		return constants.DefaultTempo
	}
	return s.tempo
}

func (s *Sequence) SetTempo(bpm float64) {
	s.tempo = bpm
}

func (s *Sequence) Transpose(steps int) {
	for _, t := range s.tracks {
		t.Transpose(steps)
	}
}

// Append extends track i with the elements of other's track i. Both
// sequences must have the same number of tracks; on mismatch nothing is
// changed.
func (s *Sequence) Append(other *Sequence) error {
	if len(s.tracks) != len(other.tracks) {
		return errors.Wrapf(ErrTrackCountMismatch, "have %d tracks, appending %d", len(s.tracks), len(other.tracks))
	}
	for i, t := range other.tracks {
		s.tracks[i].AddTrack(*t)
	}
	return nil
}

func (s *Sequence) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "SEQUENCE: Tracks = %v, Tempo = %v bpm\n", len(s.tracks), s.Tempo())
	for _, t := range s.tracks {
		fmt.Fprintf(&b, "%v\n", t)
	}
	b.WriteString("END SEQUENCE")
	return b.String()
}
