package event

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var ErrInvalidTempo = errors.New("invalid tempo")

const microsPerMinute = 60_000_000

// BPMToMicros converts beats per minute to microseconds per beat. The BPM is
// rounded to a whole number first.
func BPMToMicros(bpm float64) (uint32, error) {
	rounded := math.Round(bpm)
	if math.IsNaN(rounded) || rounded < 1 || rounded > microsPerMinute {
		return 0, errors.Wrapf(ErrInvalidTempo, "%v bpm", bpm)
	}
	return uint32(microsPerMinute / int64(rounded)), nil
}

func MicrosToBPM(micros uint32) (float64, error) {
	if micros == 0 {
		return 0, errors.Wrap(ErrInvalidTempo, "0 microseconds per beat")
	}
	return float64(microsPerMinute) / float64(micros), nil
}

// EncodeTempo serializes micros as a big-endian integer using as few bytes
// as possible, but at least one.
func EncodeTempo(micros uint32) []byte {
	var buf [4]byte
	binary.BigEndian.PutUint32(buf[:], micros)
	i := 0
	for i < len(buf)-1 && buf[i] == 0 {
		i++
	}
	res := make([]byte, len(buf)-i)
	copy(res, buf[i:])
	return res
}

// DecodeTempo reads a big-endian payload of 1 to 4 bytes.
func DecodeTempo(payload []byte) (uint32, error) {
	if len(payload) == 0 || len(payload) > 4 {
		return 0, errors.Wrapf(ErrInvalidTempo, "payload of %d bytes", len(payload))
	}
	var micros uint32
	for _, b := range payload {
		micros = micros<<8 | uint32(b)
	}
	return micros, nil
}

// TempoMessage builds the TempoChange for bpm at tick.
func TempoMessage(tick uint32, bpm float64) (Message, error) {
	micros, err := BPMToMicros(bpm)
	if err != nil {
		return Message{}, err
	}
	return Tempo(tick, EncodeTempo(micros)), nil
}

// BPM decodes the payload of a TempoChange.
func (m Message) BPM() (float64, error) {
	if m.Kind != TempoChange {
		return 0, errors.Errorf("%v carries no tempo", m.Kind)
	}
	micros, err := DecodeTempo(m.Payload)
	if err != nil {
		return 0, err
	}
	return MicrosToBPM(micros)
}
