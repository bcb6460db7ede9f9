package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPitchNameRoundTrip(t *testing.T) {
	cases := map[string]uint8{
		"C4":  60,
		"F#2": 42,
		"C-1": 0,
		"B-1": 11,
		"Bb3": 58,
		"Eb5": 75,
		"G9":  127,
		"A0":  21,
	}

	for name, pitch := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParsePitch(name)
			require.NoError(t, err)
			assert.Equal(t, pitch, got)
			assert.Equal(t, name, PitchName(got))
		})
	}
}

func TestEveryPitchNameParses(t *testing.T) {
	for p := 0; p <= 127; p++ {
		got, err := ParsePitch(PitchName(uint8(p)))
		require.NoError(t, err)
		assert.Equal(t, uint8(p), got)
	}
}

func TestParsePitchAliases(t *testing.T) {
	cases := map[string]uint8{
		"Db4": 61,
		"D#4": 63,
		"A#4": 70,
		"Gb4": 66,
		"Ab4": 68,
		"Fb4": 64,
		"E#4": 65,
		"B#3": 60,
		"Cb5": 71,
	}

	for name, pitch := range cases {
		t.Run(name, func(t *testing.T) {
			got, err := ParsePitch(name)
			require.NoError(t, err)
			assert.Equal(t, pitch, got)
		})
	}
}

func TestParsePitchErrors(t *testing.T) {
	for _, name := range []string{"", "C", "H4", "G#9", "B9", "C10", "Cb-1", "C-2", "4"} {
		t.Run(name, func(t *testing.T) {
			_, err := ParsePitch(name)
			assert.ErrorIs(t, err, ErrInvalidPitch)
		})
	}
}

func TestNewNoteClamps(t *testing.T) {
	n := NewNote(300, -5, Quarter)

	assert := assert.New(t)
	assert.Equal(uint8(127), n.Pitch())
	assert.Equal(uint8(0), n.Velocity())

	n.SetVelocity(1000)
	assert.Equal(uint8(127), n.Velocity())
	n.SetPitch(-1)
	assert.Equal(uint8(0), n.Pitch())
}

func TestNoteTransposeBoundary(t *testing.T) {
	n := NewNote(120, Forte, Quarter)

	assert := assert.New(t)
	assert.False(n.Transpose(8))
	assert.Equal(uint8(120), n.Pitch())
	assert.True(n.Transpose(7))
	assert.Equal(uint8(127), n.Pitch())
	assert.False(n.Transpose(-128))
	assert.Equal(uint8(127), n.Pitch())
	assert.True(n.Transpose(-127))
	assert.Equal(uint8(0), n.Pitch())
}

func TestParseNote(t *testing.T) {
	n, err := ParseNote("C4", Forte, Whole)
	require.NoError(t, err)
	assert.Equal(t, NewNote(60, Forte, Whole), n)
	assert.Equal(t, "NOTE: Pitch = C4, Velocity = 107, Duration = 64", n.String())

	_, err = ParseNote("Z4", Forte, Whole)
	assert.ErrorIs(t, err, ErrInvalidPitch)
}

func TestSetPitchNameKeepsPitchOnError(t *testing.T) {
	n := DefaultNote()
	assert.Error(t, n.SetPitchName("nope"))
	assert.Equal(t, uint8(60), n.Pitch())
	assert.NoError(t, n.SetPitchName("F#5"))
	assert.Equal(t, "F#5", n.PitchName())
}

func TestNoteCompare(t *testing.T) {
	low := NewNote(40, Forte, Quarter)
	high := NewNote(41, Piano, Half)

	assert.Equal(t, -1, low.Compare(high))
	assert.Equal(t, 1, high.Compare(low))
	assert.Equal(t, 0, low.Compare(NewNote(40, Piano, Whole)))
}

func TestInstrumentNames(t *testing.T) {
	assert.Equal(t, "Acoustic Grand Piano", GrandPiano.String())
	assert.Equal(t, "Choir Aahs", ChoirAahs.String())
	assert.Equal(t, "Gunshot", Gunshot.String())
	assert.Equal(t, Instrument(127), Gunshot)
	assert.Equal(t, "Program 200", Instrument(200).String())

	i, ok := InstrumentByName("Honky-tonk Piano")
	assert.True(t, ok)
	assert.Equal(t, HonkyTonkPiano, i)
}
