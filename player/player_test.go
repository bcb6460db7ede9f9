package player

import (
	"bytes"
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jsphweid/gosoul/event"
	"github.com/jsphweid/gosoul/model"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomidi "gitlab.com/gomidi/midi/v2"
)

type recorder struct {
	mu     sync.Mutex
	sent   []gomidi.Message
	slept  []time.Duration
}

func (r *recorder) send(msg gomidi.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, msg)
	return nil
}

func (r *recorder) sleep(ctx context.Context, d time.Duration) error {
	r.mu.Lock()
	r.slept = append(r.slept, d)
	r.mu.Unlock()
	return ctx.Err()
}

func newTestPlayer() (*Player, *recorder) {
	r := &recorder{}
	p := New(r.send)
	p.sleep = r.sleep
	return p, r
}

func TestScheduleMergesByTick(t *testing.T) {
	stream := event.Stream{
		{event.On(0, 0, 60, 90), event.Off(16, 0, 60)},
		{event.On(8, 1, 40, 90), event.Off(16, 1, 40)},
	}

	assert.Equal(t, event.Track{
		event.On(0, 0, 60, 90),
		event.On(8, 1, 40, 90),
		event.Off(16, 0, 60),
		event.Off(16, 1, 40),
	}, Schedule(stream))
}

func TestTickDuration(t *testing.T) {
	// a beat at 120 bpm is half a second
	assert.Equal(t, 500*time.Millisecond, TickDuration(16, 500000))
	assert.Equal(t, time.Second, TickDuration(16, 1000000))
	assert.Equal(t, 125*time.Millisecond, TickDuration(4, 500000))
}

func TestPlaySendsMessagesInTime(t *testing.T) {
	p, r := newTestPlayer()
	seq := model.NewSequence(model.NewTrack(model.NewNote(60, 100, 16), model.NewNote(62, 100, 8)))
	seq.SetTempo(60)

	require.NoError(t, p.PlaySequence(context.Background(), seq))

	assert.Equal(t, []gomidi.Message{
		gomidi.ProgramChange(0, 0),
		gomidi.NoteOn(0, 60, 100),
		gomidi.NoteOff(0, 60),
		gomidi.NoteOn(0, 62, 100),
		gomidi.NoteOff(0, 62),
	}, r.sent)
	assert.Equal(t, []time.Duration{time.Second, 500 * time.Millisecond}, r.slept)
}

func TestPlaySilencesOnCancel(t *testing.T) {
	p, r := newTestPlayer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.Play(ctx, event.Stream{{event.On(0, 2, 60, 90), event.Off(16, 2, 60)}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, []gomidi.Message{
		gomidi.NoteOn(2, 60, 90),
		gomidi.ControlChange(2, allNotesOff, 0),
	}, r.sent)
}

func TestPlayReportsSendErrors(t *testing.T) {
	boom := errors.New("unplugged")
	p := New(func(msg gomidi.Message) error { return boom })
	p.sleep = func(ctx context.Context, d time.Duration) error { return nil }

	var buf bytes.Buffer
	p.Logger = log.New(&buf)

	err := p.Play(context.Background(), event.Stream{{event.On(0, 0, 60, 90)}})
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, buf.String(), "could not silence channel")
	assert.Contains(t, buf.String(), "unplugged")
}

func TestPlayCallsDoNotOverlap(t *testing.T) {
	var active, overlaps int32
	p := New(func(msg gomidi.Message) error { return nil })
	p.sleep = func(ctx context.Context, d time.Duration) error {
		if atomic.AddInt32(&active, 1) > 1 {
			atomic.AddInt32(&overlaps, 1)
		}
		time.Sleep(time.Millisecond)
		atomic.AddInt32(&active, -1)
		return nil
	}

	stream := event.Stream{{event.On(0, 0, 60, 90), event.Off(4, 0, 60), event.On(4, 0, 62, 90), event.Off(8, 0, 62)}}
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, p.Play(context.Background(), stream))
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(0), overlaps)
}
