// Package chord lists the harmony sounding across all tracks of a stream.
package chord

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jsphweid/gosoul/event"
)

// Snapshot is the set of keys held from Tick until the next snapshot.
type Snapshot struct {
	Tick    uint32
	Pitches []uint8
}

// Key joins the sorted pitches, e.g. "60-64-67".
func (s Snapshot) Key() string {
	return CreateChordKey(s.Pitches)
}

func CreateChordKey(pitches []uint8) string {
	sorted := append([]uint8(nil), pitches...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	parts := make([]string, len(sorted))
	for i, p := range sorted {
		parts[i] = fmt.Sprintf("%v", p)
	}
	return strings.Join(parts, "-")
}

type reduced struct {
	tick  uint32
	off   bool
	key   uint8
	order int
}

// Snapshots merges the tracks and returns one snapshot per tick at which
// the set of held keys changes, skipping silence. Keys are counted per
// press so the same key held on two tracks sounds until both release.
func Snapshots(stream event.Stream) []Snapshot {
	var events []reduced
	for _, track := range stream {
		for _, m := range track {
			switch m.Kind {
			case event.NoteOn:
				events = append(events, reduced{tick: m.Tick, key: m.Key, order: len(events)})
			case event.NoteOff:
				events = append(events, reduced{tick: m.Tick, off: true, key: m.Key, order: len(events)})
			}
		}
	}

	// earlier ticks first, then note offs
	sort.Slice(events, func(i, j int) bool {
		if events[i].tick != events[j].tick {
			return events[i].tick < events[j].tick
		}
		if events[i].off != events[j].off {
			return events[i].off
		}
		return events[i].order < events[j].order
	})

	var res []Snapshot
	var prev string
	pressed := make(map[uint8]int)
	for i, evt := range events {
		if evt.off {
			if pressed[evt.key] > 0 {
				pressed[evt.key]--
			}
			if pressed[evt.key] == 0 {
				delete(pressed, evt.key)
			}
		} else {
			pressed[evt.key]++
		}

		if i+1 < len(events) && events[i+1].tick == evt.tick {
			continue
		}
		if len(pressed) == 0 {
			prev = ""
			continue
		}
		s := Snapshot{Tick: evt.tick, Pitches: held(pressed)}
		if s.Key() == prev {
			continue
		}
		prev = s.Key()
		res = append(res, s)
	}
	return res
}

func held(pressed map[uint8]int) []uint8 {
	res := make([]uint8, 0, len(pressed))
	for k := range pressed {
		res = append(res, k)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i] < res[j]
	})
	return res
}
