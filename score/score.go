// Package score reads and writes hand-editable descriptions of sequences.
//
//	tempo: 96
//	tracks:
//	  - instrument: Choir Aahs
//	    elements:
//	      - chord: C4 E4 G4
//	        velocity: 107
//	        duration: 32
//	      - note: G4
//
// Velocity defaults to mezzoforte and duration to a quarter note.
package score

import (
	"encoding/json"
	"strings"

	"github.com/jsphweid/gosoul/model"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

type Document struct {
	Tempo  float64 `json:"tempo,omitempty" yaml:"tempo,omitempty"`
	Tracks []Track `json:"tracks" yaml:"tracks"`
}

type Track struct {
	Program uint8 `json:"program" yaml:"program"`
	// General MIDI name; takes precedence over Program when set
	Instrument string    `json:"instrument,omitempty" yaml:"instrument,omitempty"`
	Elements   []Element `json:"elements" yaml:"elements"`
}

// Element holds either a Note name or a space separated Chord.
type Element struct {
	Note     string  `json:"note,omitempty" yaml:"note,omitempty"`
	Chord    string  `json:"chord,omitempty" yaml:"chord,omitempty"`
	Velocity *int    `json:"velocity,omitempty" yaml:"velocity,omitempty"`
	Duration *uint32 `json:"duration,omitempty" yaml:"duration,omitempty"`
}

// Parse accepts JSON or YAML.
func Parse(data []byte) (Document, error) {
	var doc Document
	if errJSON := json.Unmarshal(data, &doc); errJSON != nil {
		doc = Document{}
		if errYaml := yaml.Unmarshal(data, &doc); errYaml != nil {
			return Document{}, errors.Errorf("the score could not be parsed as .json (%v) or .yml (%v)", errJSON, errYaml)
		}
	}
	return doc, nil
}

func (d Document) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

func (d Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

// Sequence builds the model described by the document.
func (d Document) Sequence() (*model.Sequence, error) {
	seq := model.NewSequence()
	if d.Tempo != 0 {
		seq.SetTempo(d.Tempo)
	}
	for i, td := range d.Tracks {
		t, err := td.track()
		if err != nil {
			return nil, errors.Wrapf(err, "track %d", i)
		}
		seq.Add(t)
	}
	return seq, nil
}

func (td Track) track() (model.Track, error) {
	var t model.Track
	t.SetInstrument(model.Instrument(td.Program))
	if td.Instrument != "" {
		inst, ok := model.InstrumentByName(td.Instrument)
		if !ok {
			return t, errors.Errorf("unknown instrument %q", td.Instrument)
		}
		t.SetInstrument(inst)
	}
	for i, ed := range td.Elements {
		e, err := ed.element()
		if err != nil {
			return t, errors.Wrapf(err, "element %d", i)
		}
		t.Add(e)
	}
	return t, nil
}

func (ed Element) element() (model.Element, error) {
	velocity := model.MezzoForte
	if ed.Velocity != nil {
		velocity = *ed.Velocity
	}
	var duration uint32 = model.Quarter
	if ed.Duration != nil {
		duration = *ed.Duration
	}

	switch {
	case ed.Note != "" && ed.Chord != "":
		return nil, errors.New("element has both a note and a chord")
	case ed.Note != "":
		return model.ParseNote(ed.Note, velocity, duration)
	case ed.Chord != "":
		return model.ParseChord(ed.Chord, velocity, duration)
	}
	return nil, errors.New("element has neither a note nor a chord")
}

// FromSequence describes seq as a document.
func FromSequence(seq *model.Sequence) Document {
	doc := Document{Tempo: seq.Tempo()}
	for _, t := range seq.Tracks() {
		td := Track{Program: uint8(t.Instrument())}
		if t.Instrument() <= model.Gunshot {
			td.Instrument = t.Instrument().String()
		}
		for _, e := range t.Elements() {
			td.Elements = append(td.Elements, fromElement(e))
		}
		doc.Tracks = append(doc.Tracks, td)
	}
	return doc
}

func fromElement(e model.Element) Element {
	velocity := int(e.Velocity())
	duration := e.Duration()
	ed := Element{Velocity: &velocity, Duration: &duration}
	switch v := e.(type) {
	case model.Note:
		ed.Note = v.PitchName()
	case model.Chord:
		var names []string
		for _, p := range v.Pitches() {
			names = append(names, model.PitchName(p))
		}
		ed.Chord = strings.Join(names, " ")
	}
	return ed
}
