package model

// Durations in ticks, where a tick is a 16th of a beat.
const (
	Whole        = 64
	Half         = 32
	Quarter      = 16
	Eighth       = 8
	Sixteenth    = 4
	ThirtySecond = 2
	SixtyFourth  = 1
)

// Common velocities.
const (
	Pianissimo = 27
	Piano      = 47
	MezzoPiano = 67
	MezzoForte = 87
	Forte      = 107
	Fortissimo = 127
)
