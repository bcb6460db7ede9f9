package recorder

import (
	"math"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/event"
	gomidi "gitlab.com/gomidi/midi/v2"
)

// Recorder collects live input into a one-track stream. Times are taken
// relative to the first message, so leading silence is dropped.
type Recorder struct {
	Logger *log.Logger

	bpm      float64
	debounce func(f func())
	onTake   func(event.Stream)

	mu       sync.Mutex
	started  bool
	origin   int32
	last     uint32
	sounding map[uint8]uint8 // key -> channel
	messages event.Track
}

// New returns a recorder at bpm. When onTake is set, it is called with
// the captured stream once no input arrived for quiet.
func New(bpm float64, quiet time.Duration, onTake func(event.Stream)) *Recorder {
	if bpm < 1 {
		bpm = constants.DefaultTempo
	}
	return &Recorder{
		bpm:      bpm,
		debounce: debounce.New(quiet),
		onTake:   onTake,
		sounding: make(map[uint8]uint8),
	}
}

func (r *Recorder) logger() *log.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return log.Default()
}

// Tick converts milliseconds to ticks at the recorder's tempo.
func (r *Recorder) Tick(ms int32) uint32 {
	if ms <= 0 {
		return 0
	}
	return uint32(math.Round(float64(ms) * r.bpm * constants.TicksPerBeat / 60000))
}

// Handle has the signature gomidi.ListenTo expects.
func (r *Recorder) Handle(msg gomidi.Message, timestampms int32) {
	var ch, key, vel, prog uint8

	r.mu.Lock()
	if !r.started {
		r.started = true
		r.origin = timestampms
	}
	tick := r.Tick(timestampms - r.origin)
	if tick < r.last {
		tick = r.last
	}

	switch {
	case msg.GetNoteStart(&ch, &key, &vel):
		r.sounding[key] = ch
		r.messages = append(r.messages, event.On(tick, ch, key, vel))
	case msg.GetNoteEnd(&ch, &key):
		if _, ok := r.sounding[key]; !ok {
			r.mu.Unlock()
			r.logger().Debug("ignoring release of a key that was not pressed", "key", key)
			return
		}
		delete(r.sounding, key)
		r.messages = append(r.messages, event.Off(tick, ch, key))
	case msg.GetProgramChange(&ch, &prog):
		r.messages = append(r.messages, event.Program(tick, ch, prog))
	default:
		r.mu.Unlock()
		return
	}
	r.last = tick
	r.mu.Unlock()

	if r.onTake != nil {
		r.debounce(r.take)
	}
}

func (r *Recorder) take() {
	stream := r.Take()
	if len(stream) > 0 {
		r.onTake(stream)
	}
}

// Take returns what was captured so far and starts over. Keys still held
// are released at the last tick. An empty recorder returns nil.
func (r *Recorder) Take() event.Stream {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return nil
	}

	tempo, err := event.TempoMessage(0, r.bpm)
	if err != nil {
		r.logger().Error("could not encode tempo", "bpm", r.bpm, "err", err)
		tempo, _ = event.TempoMessage(0, constants.DefaultTempo)
	}
	track := append(event.Track{tempo}, r.messages...)
	for key, ch := range r.sounding {
		track = append(track, event.Off(r.last, ch, key))
	}

	r.started = false
	r.last = 0
	r.messages = nil
	r.sounding = make(map[uint8]uint8)
	return event.Stream{track}
}
