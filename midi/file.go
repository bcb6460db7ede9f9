package midi

import (
	"strings"

	"github.com/jsphweid/gosoul/codec"
	"github.com/jsphweid/gosoul/model"
	"github.com/pkg/errors"
)

// File is a .mid file on disk holding an encoded sequence.
type File struct {
	Path    string
	Decoder codec.Decoder
}

// NewFile adds the .mid extension when missing.
func NewFile(path string) File {
	if !strings.HasSuffix(path, ".mid") {
		path += ".mid"
	}
	return File{Path: path}
}

func (f File) Write(seq *model.Sequence) error {
	stream, err := codec.Encode(seq)
	if err != nil {
		return errors.Wrapf(err, "could not encode sequence for %v", f.Path)
	}
	return WriteFile(f.Path, stream)
}

// Sequence decodes the file. Only files written by this package are
// guaranteed to come back unchanged.
func (f File) Sequence() (*model.Sequence, error) {
	stream, err := ReadFile(f.Path)
	if err != nil {
		return nil, err
	}
	seq, err := f.Decoder.Decode(stream)
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode %v", f.Path)
	}
	return seq, nil
}

// AppendedPath is where Append writes its result.
func (f File) AppendedPath() string {
	return strings.TrimSuffix(f.Path, ".mid") + "_appended.mid"
}

// Append writes the file's sequence followed by seq, track by track, to
// AppendedPath. The file itself is left untouched and nothing is written
// when the track counts differ.
func (f File) Append(seq *model.Sequence) (string, error) {
	existing, err := f.Sequence()
	if err != nil {
		return "", err
	}
	if err := existing.Append(seq); err != nil {
		return "", errors.Wrapf(err, "could not append to %v", f.Path)
	}
	out := NewFile(f.AppendedPath())
	if err := out.Write(existing); err != nil {
		return "", err
	}
	return out.Path, nil
}

// Clear rewrites the file with the same number of empty piano tracks.
func (f File) Clear() error {
	stream, err := ReadFile(f.Path)
	if err != nil {
		return err
	}
	tracks := make([]model.Track, len(stream))
	return f.Write(model.NewSequence(tracks...))
}
