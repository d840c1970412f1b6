// Package eventfile reads and writes timeline files: YAML documents holding
// an ordered, optionally labelled list of events.
//
//	title: Release train
//	events:
//	  - label: Kickoff
//	    at: 2024-01-01
//	  - at: 2024-06-01T09:00:00+02:00
package eventfile

import (
	"bytes"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"cantwait/internal/errors"
)

// RawTime keeps the literal text of a YAML scalar so that dates reach the
// event parser exactly as written, whatever type YAML would infer.
type RawTime string

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RawTime) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return errors.Wrapf(errors.ErrEventFile, "line %d: event time must be a scalar", node.Line)
	}
	*r = RawTime(node.Value)
	return nil
}

// Entry is one event in a file.
type Entry struct {
	Label string  `yaml:"label,omitempty"`
	At    RawTime `yaml:"at"`
}

// File is a decoded timeline file.
type File struct {
	Title  string  `yaml:"title,omitempty"`
	Events []Entry `yaml:"events"`
}

// New builds a File from raw event strings.
func New(title string, raws []string) *File {
	f := &File{Title: title, Events: make([]Entry, len(raws))}
	for i, raw := range raws {
		f.Events[i] = Entry{At: RawTime(raw)}
	}
	return f
}

// Raw returns the event times in file order.
func (f *File) Raw() []string {
	raws := make([]string, len(f.Events))
	for i, e := range f.Events {
		raws[i] = string(e.At)
	}
	return raws
}

// Labels returns the event labels in file order; unlabelled events yield "".
func (f *File) Labels() []string {
	labels := make([]string, len(f.Events))
	for i, e := range f.Events {
		labels[i] = e.Label
	}
	return labels
}

// Decode reads a timeline file from r. Unknown keys are rejected so that
// typos such as "evnets" do not silently produce an empty timeline.
func Decode(r io.Reader) (*File, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return &f, nil
		}
		if errors.Is(err, errors.ErrEventFile) {
			return nil, err
		}
		return nil, errors.Wrap(errors.ErrEventFile, err.Error())
	}
	return &f, nil
}

// Load reads the timeline file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrEventFile, "read %s: %v", path, err)
	}
	f, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	return f, nil
}

// Encode writes f as YAML.
func Encode(w io.Writer, f *File) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return errors.Wrap(err, "encode timeline file")
	}
	return enc.Close()
}

// Save writes f to path, creating parent directories as needed.
func Save(path string, f *File) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "create %s", filepath.Dir(path))
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return errors.Wrapf(err, "write %s", path)
	}
	return nil
}
