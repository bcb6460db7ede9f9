package score

import (
	"testing"

	"github.com/jsphweid/gosoul/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const yamlScore = `
tempo: 96
tracks:
  - instrument: Choir Aahs
    elements:
      - chord: G4 C4 E4
        velocity: 107
        duration: 32
      - note: G4
  - program: 33
    elements:
      - note: C2
        duration: 64
`

const jsonScore = `{"tracks": [{"program": 3, "elements": [{"note": "F#2", "velocity": 20, "duration": 8}]}]}`

func TestParseYAML(t *testing.T) {
	doc, err := Parse([]byte(yamlScore))
	require.NoError(t, err)
	seq, err := doc.Sequence()
	require.NoError(t, err)

	chord, err := model.NewChord([]uint8{60, 64, 67}, 107, 32)
	require.NoError(t, err)

	assert := assert.New(t)
	assert.Equal(96.0, seq.Tempo())
	assert.Equal(2, seq.NumTracks())
	assert.Equal(model.ChoirAahs, seq.Track(0).Instrument())
	assert.Equal([]model.Element{chord, model.NewNote(67, model.MezzoForte, model.Quarter)}, seq.Track(0).Elements())
	assert.Equal(model.FingerBass, seq.Track(1).Instrument())
	assert.Equal([]model.Element{model.NewNote(36, model.MezzoForte, model.Whole)}, seq.Track(1).Elements())
}

func TestParseJSON(t *testing.T) {
	doc, err := Parse([]byte(jsonScore))
	require.NoError(t, err)
	seq, err := doc.Sequence()
	require.NoError(t, err)

	assert.Equal(t, 120.0, seq.Tempo())
	assert.Equal(t, model.HonkyTonkPiano, seq.Track(0).Instrument())
	assert.Equal(t, []model.Element{model.NewNote(42, 20, 8)}, seq.Track(0).Elements())
}

func TestParseGarbage(t *testing.T) {
	_, err := Parse([]byte("tracks: [unclosed"))
	assert.Error(t, err)
}

func TestBadElements(t *testing.T) {
	cases := map[string]string{
		"unknown pitch":      `{"tracks": [{"elements": [{"note": "H2"}]}]}`,
		"note and chord":     `{"tracks": [{"elements": [{"note": "C2", "chord": "C2 E2"}]}]}`,
		"empty element":      `{"tracks": [{"elements": [{}]}]}`,
		"unknown instrument": `{"tracks": [{"instrument": "Kazoo", "elements": []}]}`,
	}

	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			doc, err := Parse([]byte(data))
			require.NoError(t, err)
			_, err = doc.Sequence()
			assert.Error(t, err)
		})
	}
}

func TestDocumentRoundTrip(t *testing.T) {
	chord, err := model.ParseChord("C4 E4 G4", model.Forte, model.Half)
	require.NoError(t, err)
	lead := model.NewTrack(chord, model.NewNote(72, model.Piano, 0))
	lead.SetInstrument(model.Vibraphone)
	seq := model.NewSequence(lead, model.NewTrack())
	seq.SetTempo(140)

	for _, format := range []string{"yaml", "json"} {
		t.Run(format, func(t *testing.T) {
			doc := FromSequence(seq)
			var data []byte
			if format == "yaml" {
				data, err = doc.YAML()
			} else {
				data, err = doc.JSON()
			}
			require.NoError(t, err)

			parsed, err := Parse(data)
			require.NoError(t, err)
			back, err := parsed.Sequence()
			require.NoError(t, err)

			assert.Equal(t, 140.0, back.Tempo())
			require.Equal(t, 2, back.NumTracks())
			assert.Equal(t, seq.Track(0).Elements(), back.Track(0).Elements())
			assert.Equal(t, model.Vibraphone, back.Track(0).Instrument())
			assert.Equal(t, 0, back.Track(1).Len())
		})
	}
}
