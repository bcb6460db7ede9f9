package codec

import (
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/event"
	"github.com/jsphweid/gosoul/model"
	"github.com/pkg/errors"
)

var ErrTooManyTracks = errors.New("more tracks than channels")

// Encode turns a sequence into one message list per track. Track i plays
// on channel i, so at most 16 tracks are supported.
func Encode(seq *model.Sequence) (event.Stream, error) {
	if seq.NumTracks() > constants.MaxTracks {
		return nil, errors.Wrapf(ErrTooManyTracks, "%d tracks", seq.NumTracks())
	}

	res := make(event.Stream, 0, seq.NumTracks())
	for i := 0; i < seq.NumTracks(); i++ {
		tempo, err := event.TempoMessage(0, seq.Tempo())
		if err != nil {
			return nil, err
		}
		res = append(res, EncodeTrack(*seq.Track(i), uint8(i), tempo))
	}
	return res, nil
}

// EncodeTrack lays out a track starting at tick 0: the tempo and program
// change come first, then every element's note-ons at the running tick
// and its note-offs once its duration has passed.
func EncodeTrack(t model.Track, channel uint8, tempo event.Message) event.Track {
	res := event.Track{tempo, event.Program(0, channel, uint8(t.Instrument()))}

	var tick uint32
	for _, e := range t.Elements() {
		// chords are already sorted lowest first
		pitches := e.Pitches()
		for _, p := range pitches {
			res = append(res, event.On(tick, channel, p, e.Velocity()))
		}
		tick += e.Duration()
		for _, p := range pitches {
			res = append(res, event.Off(tick, channel, p))
		}
	}
	return res
}
