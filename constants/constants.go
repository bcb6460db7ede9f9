package constants

import (
	"os"
	"strconv"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func GetOutputDir() string {
	return getEnv("OUTPUT_DIR", "./out")
}

func GetDynamoEndpoint() string {
	return getEnv("DYNAMODB_ENDPOINT", "http://localhost:8000")
}

func GetDynamoRegion() string {
	return getEnv("DYNAMODB_REGION", "localhost")
}

func GetSongTable() string {
	return getEnv("SONG_TABLE", "gosoul-songs")
}

func GetMidiOutPort() int {
	return getEnvInt("MIDI_OUT_PORT", 0)
}

func GetMidiInPort() int {
	return getEnvInt("MIDI_IN_PORT", 0)
}

func GetListenAddr() string {
	return getEnv("LISTEN_ADDR", ":8080")
}

// 1 tick is a 16th of a beat
const TicksPerBeat = 16

const DefaultTempo = 120

// one track per channel
const MaxTracks = 16

const MaxDataValue = 127

// TempoMetaType is the "set tempo" meta-event type code.
const TempoMetaType = 0x51
