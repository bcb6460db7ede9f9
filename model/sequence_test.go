package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrackFlattensNestedTracks(t *testing.T) {
	inner := NewTrack(DefaultNote(), DefaultChord())
	outer := NewTrack(NewNote(50, Piano, Eighth))
	outer.AddTrack(inner)

	assert := assert.New(t)
	assert.Equal(3, outer.Len())
	assert.Equal(DefaultChord(), outer.Element(2))
	assert.Equal(uint64(Eighth+Whole+Whole), outer.Ticks())
}

func TestTrackSetRemoveClear(t *testing.T) {
	tr := NewTrack(DefaultNote(), DefaultChord(), nil)
	tr.SetInstrument(ChoirAahs)

	assert := assert.New(t)
	assert.Equal(2, tr.Len())
	assert.NoError(tr.Set(0, NewNote(70, Piano, Half)))
	assert.ErrorIs(tr.Set(5, DefaultNote()), ErrIndexOutOfRange)
	assert.Equal(NewNote(70, Piano, Half), tr.Element(0))

	assert.NoError(tr.Remove(0))
	assert.ErrorIs(tr.Remove(3), ErrIndexOutOfRange)
	assert.Equal([]Element{DefaultChord()}, tr.Elements())

	tr.Clear()
	assert.Equal(0, tr.Len())
	assert.Equal(GrandPiano, tr.Instrument())
}

func TestTrackTransposeSkipsElementsOutOfRange(t *testing.T) {
	c, err := NewChord([]uint8{100, 120}, Forte, Quarter)
	require.NoError(t, err)
	tr := NewTrack(NewNote(60, Forte, Quarter), c)

	tr.Transpose(10)

	assert.Equal(t, uint8(70), tr.Element(0).Pitches()[0])
	assert.Equal(t, []uint8{100, 120}, tr.Element(1).Pitches())
}

func TestTrackRejectsEmptyChords(t *testing.T) {
	tr := NewTrack(DefaultNote(), Chord{}, nil, DefaultChord())

	assert := assert.New(t)
	assert.Equal(2, tr.Len())
	assert.ErrorIs(tr.Set(0, Chord{}), ErrEmptyChord)
	assert.Error(tr.Set(0, nil))
	assert.Equal(DefaultNote(), tr.Element(0))

	assert.Equal(uint64(Whole+Whole), tr.Ticks())
}

func TestSequenceDefaults(t *testing.T) {
	var zero Sequence
	s := NewSequence(NewTrack())

	assert.Equal(t, 120.0, zero.Tempo())
	assert.Equal(t, 120.0, s.Tempo())
	assert.Equal(t, 1, s.NumTracks())

	s.SetTempo(90)
	s.Clear()
	assert.Equal(t, 120.0, s.Tempo())
	assert.Equal(t, 0, s.NumTracks())
}

func TestSequenceOwnsItsTracks(t *testing.T) {
	tr := NewTrack(DefaultNote())
	s := NewSequence(tr)

	tr.Add(DefaultChord())
	assert.Equal(t, 1, s.Track(0).Len())

	s.Track(0).Add(DefaultChord())
	assert.Equal(t, 2, s.Track(0).Len())
	assert.Equal(t, 2, tr.Len())

	copies := s.Tracks()
	copies[0].Clear()
	assert.Equal(t, 2, s.Track(0).Len())
}

func TestSequenceAppend(t *testing.T) {
	s := NewSequence(NewTrack(DefaultNote()), NewTrack(DefaultChord()))
	more := NewSequence(NewTrack(NewNote(62, Piano, Half)), NewTrack())

	require.NoError(t, s.Append(more))

	assert := assert.New(t)
	assert.Equal([]Element{DefaultNote(), NewNote(62, Piano, Half)}, s.Track(0).Elements())
	assert.Equal([]Element{DefaultChord()}, s.Track(1).Elements())
}

func TestSequenceAppendMismatchChangesNothing(t *testing.T) {
	s := NewSequence(NewTrack(DefaultNote()), NewTrack(DefaultChord()))
	more := NewSequence(NewTrack(NewNote(62, Piano, Half)))

	err := s.Append(more)

	assert.ErrorIs(t, err, ErrTrackCountMismatch)
	assert.Equal(t, 1, s.Track(0).Len())
	assert.Equal(t, 1, s.Track(1).Len())
}

func TestSequenceTrackBookkeeping(t *testing.T) {
	s := NewSequence(NewTrack(), NewTrack(DefaultNote()))

	assert := assert.New(t)
	assert.NoError(s.SetTrack(0, NewTrack(DefaultChord())))
	assert.ErrorIs(s.SetTrack(2, NewTrack()), ErrIndexOutOfRange)
	assert.NoError(s.RemoveTrack(1))
	assert.Equal(1, s.NumTracks())
	assert.Equal(DefaultChord(), s.Track(0).Element(0))

	s.SetTracks(NewTrack(DefaultNote()), NewTrack(DefaultChord()), NewTrack())
	assert.Equal(3, s.NumTracks())

	s.Transpose(1)
	assert.Equal([]uint8{61}, s.Track(0).Element(0).Pitches())
	assert.Equal([]uint8{61, 65, 68}, s.Track(1).Element(0).Pitches())
	assert.Equal(0, s.Track(2).Len())
}

func TestSequenceCloneIsIndependent(t *testing.T) {
	a := NewSequence(NewTrack(DefaultNote()))
	a.SetTempo(90)
	b := a.Clone()

	b.Track(0).Add(DefaultChord())
	require.NoError(t, b.Append(NewSequence(NewTrack(NewNote(62, Piano, Half)))))
	b.Transpose(2)
	b.SetTempo(140)

	assert := assert.New(t)
	assert.Equal(3, b.Track(0).Len())
	assert.Equal([]Element{DefaultNote()}, a.Track(0).Elements())
	assert.Equal(90.0, a.Tempo())

	a.Track(0).Clear()
	assert.Equal(3, b.Track(0).Len())
}
