package midi

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/event"
	"github.com/jsphweid/gosoul/util"
	"github.com/pkg/errors"
	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

var (
	ErrParse             = errors.New("could not parse midi data")
	ErrUnsupportedFormat = errors.New("unsupported time format")
)

const metaStatus = 0xFF

// ToSMF lays the stream out as a multi-track SMF with 16 ticks per beat.
// Silent note-ons are written with velocity 1.
func ToSMF(stream event.Stream) (*smf.SMF, error) {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(constants.TicksPerBeat)

	for i, messages := range stream {
		if err := messages.Validate(); err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		var track smf.Track
		var last uint32
		for _, m := range messages {
			raw, err := toRaw(m)
			if err != nil {
				return nil, errors.Wrapf(err, "track %d", i)
			}
			track.Add(m.Tick-last, raw)
			last = m.Tick
		}
		track.Close(0)
		if err := s.Add(track); err != nil {
			return nil, errors.Wrapf(err, "could not add track %d", i)
		}
	}
	return s, nil
}

func toRaw(m event.Message) ([]byte, error) {
	switch m.Kind {
	case event.TempoChange:
		return metaMessage(constants.TempoMetaType, m.Payload), nil
	case event.ProgramChange:
		return gomidi.ProgramChange(m.Channel, m.Program), nil
	case event.NoteOn:
		// a velocity of 0 would be read back as a note off
		return gomidi.NoteOn(m.Channel, m.Key, util.Max(m.Velocity, 1)), nil
	case event.NoteOff:
		return gomidi.NoteOff(m.Channel, m.Key), nil
	}
	return nil, errors.Errorf("cannot write %v", m.Kind)
}

func metaMessage(typ byte, data []byte) []byte {
	res := []byte{metaStatus, typ}
	res = append(res, encodeVarint(uint32(len(data)))...)
	return append(res, data...)
}

func encodeVarint(n uint32) []byte {
	res := []byte{byte(n & 0x7f)}
	for n >>= 7; n > 0; n >>= 7 {
		res = append([]byte{byte(n&0x7f) | 0x80}, res...)
	}
	return res
}

// decodeVarint returns the value and the number of bytes it used.
func decodeVarint(b []byte) (uint32, int, error) {
	var n uint32
	for i := 0; i < len(b) && i < 4; i++ {
		n = n<<7 | uint32(b[i]&0x7f)
		if b[i]&0x80 == 0 {
			return n, i + 1, nil
		}
	}
	return 0, 0, errors.Wrap(ErrParse, "bad variable length quantity")
}

// FromSMF flattens each SMF track into absolute-tick messages. Ticks of
// files with another resolution are rescaled to 16 per beat. Messages other
// than tempo, program change and notes are dropped.
func FromSMF(s *smf.SMF) (event.Stream, error) {
	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%v", s.TimeFormat)
	}
	resolution := uint64(ticks)
	if resolution == 0 {
		return nil, errors.Wrap(ErrUnsupportedFormat, "zero resolution")
	}

	res := make(event.Stream, 0, len(s.Tracks))
	for i, track := range s.Tracks {
		var absTicks uint64
		messages := event.Track{}
		for _, ev := range track {
			absTicks += uint64(ev.Delta)
			tick := uint32(absTicks * constants.TicksPerBeat / resolution)
			m, ok, err := fromRaw(tick, ev.Message)
			if err != nil {
				return nil, errors.Wrapf(err, "track %d", i)
			}
			if ok {
				messages = append(messages, m)
			}
		}
		res = append(res, messages)
	}
	return res, nil
}

func fromRaw(tick uint32, raw []byte) (event.Message, bool, error) {
	if len(raw) >= 2 && raw[0] == metaStatus {
		if raw[1] != constants.TempoMetaType {
			return event.Message{}, false, nil
		}
		length, n, err := decodeVarint(raw[2:])
		if err != nil {
			return event.Message{}, false, err
		}
		data := raw[2+n:]
		if uint32(len(data)) < length {
			return event.Message{}, false, errors.Wrap(ErrParse, "truncated tempo")
		}
		payload := make([]byte, length)
		copy(payload, data)
		return event.Tempo(tick, payload), true, nil
	}

	msg := gomidi.Message(raw)
	var channel, key, velocity, program uint8
	switch {
	case msg.GetNoteStart(&channel, &key, &velocity):
		return event.On(tick, channel, key, velocity), true, nil
	case msg.GetNoteEnd(&channel, &key):
		return event.Off(tick, channel, key), true, nil
	case msg.GetProgramChange(&channel, &program):
		return event.Program(tick, channel, program), true, nil
	}
	return event.Message{}, false, nil
}

// Read parses SMF data into a stream.
func Read(r io.Reader) (stream event.Stream, e error) {
	// the smf reader can panic on corrupt input
	defer func() {
		if rec := recover(); rec != nil {
			stream = nil
			e = errors.Wrap(ErrParse, fmt.Sprint(rec))
		}
	}()

	s, err := smf.ReadFrom(r)
	if err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	return FromSMF(s)
}

func Write(w io.Writer, stream event.Stream) error {
	s, err := ToSMF(stream)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(w); err != nil {
		return errors.Wrap(err, "could not write midi data")
	}
	return nil
}

func Bytes(stream event.Stream) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(&buf, stream); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func ReadFile(path string) (event.Stream, error) {
	dat, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "error reading midi file %v", path)
	}
	stream, err := Read(bytes.NewReader(dat))
	if err != nil {
		return nil, errors.Wrapf(err, "error parsing midi file %v", path)
	}
	return stream, nil
}

func WriteFile(path string, stream event.Stream) error {
	dat, err := Bytes(stream)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, dat, 0644); err != nil {
		return errors.Wrapf(err, "error writing midi file %v", path)
	}
	return nil
}
