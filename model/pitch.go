package model

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

var ErrInvalidPitch = errors.New("invalid pitch")

// KeyNames are the canonical names of the 12 semitones of an octave.
var KeyNames = [12]string{"C", "C#", "D", "Eb", "E", "F", "F#", "G", "G#", "A", "Bb", "B"}

// offsets relative to C of the same octave number
var semitoneOffsets = map[string]int{
	"C": 0, "B#": 12,
	"C#": 1, "Db": 1,
	"D":  2,
	"D#": 3, "Eb": 3,
	"E": 4, "Fb": 4,
	"F": 5, "E#": 5,
	"F#": 6, "Gb": 6,
	"G":  7,
	"G#": 8, "Ab": 8,
	"A":  9,
	"A#": 10, "Bb": 10,
	"B": 11, "Cb": -1,
}

// PitchName converts a pitch to its canonical name, e.g. 60 -> "C4".
func PitchName(pitch uint8) string {
	return fmt.Sprintf("%s%d", KeyNames[pitch%12], int(pitch/12)-1)
}

// ParsePitch converts a name such as "C4", "F#2" or "Bb-1" to a pitch.
// Octaves run from -1 to 9; names resolving outside 0-127 are rejected.
func ParsePitch(name string) (uint8, error) {
	var key, octave string
	if strings.HasSuffix(name, "-1") {
		key, octave = name[:len(name)-2], "-1"
	} else {
		i := strings.IndexAny(name, "0123456789")
		if i < 0 {
			return 0, errors.Wrapf(ErrInvalidPitch, "%q has no octave", name)
		}
		key, octave = name[:i], name[i:]
	}

	offset, ok := semitoneOffsets[key]
	if !ok {
		return 0, errors.Wrapf(ErrInvalidPitch, "%q has unknown key name %q", name, key)
	}
	o, err := strconv.Atoi(octave)
	if err != nil || o < -1 || o > 9 {
		return 0, errors.Wrapf(ErrInvalidPitch, "%q has bad octave %q", name, octave)
	}

	pitch := offset + 12*(o+1)
	if pitch < 0 || pitch > 127 {
		return 0, errors.Wrapf(ErrInvalidPitch, "%q is out of range (%d)", name, pitch)
	}
	return uint8(pitch), nil
}

// ParsePitches parses a space separated list of pitch names.
func ParsePitches(list string) ([]uint8, error) {
	var res []uint8
	for _, name := range strings.Fields(list) {
		p, err := ParsePitch(name)
		if err != nil {
			return nil, err
		}
		res = append(res, p)
	}
	return res, nil
}
