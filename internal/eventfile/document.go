package eventfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/decaychain/internal/event"
	"github.com/roach88/decaychain/internal/particle"
)

// Format identifies a document encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatCUE  Format = "cue"
)

// ErrUnknownFormat is returned for a path whose extension maps to no format.
var ErrUnknownFormat = errors.New("eventfile: unknown document format")

// Document is the on-disk shape of an event file.
type Document struct {
	Events []EventDoc `json:"events" yaml:"events"`
}

// EventDoc is one event. Nil pointers mark absent parts.
type EventDoc struct {
	Number    *int64               `json:"number,omitempty" yaml:"number,omitempty"`
	Particles *particle.Collection `json:"particles,omitempty" yaml:"particles,omitempty"`
}

// FormatFor maps a file extension to its format.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML, nil
	case ".cue":
		return FormatCUE, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, filepath.Ext(path))
	}
}

// Load reads every event from the document at path.
func Load(path string) ([]event.Event, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read event file: %w", err)
	}

	var doc *Document
	switch format {
	case FormatCUE:
		doc, err = DecodeCUE(path, data)
	default:
		doc, err = DecodeYAML(data)
	}
	if err != nil {
		return nil, err
	}
	return doc.ToEvents(), nil
}

// Open loads the document at path into an in-memory event source.
func Open(path string) (*event.MemorySource, error) {
	events, err := Load(path)
	if err != nil {
		return nil, err
	}
	return event.NewMemorySource(events...), nil
}

// DecodeYAML parses a YAML or JSON document, rejecting unknown fields.
func DecodeYAML(data []byte) (*Document, error) {
	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	return &doc, nil
}

// ToEvents converts the document to events, preserving absent parts.
func (d *Document) ToEvents() []event.Event {
	events := make([]event.Event, 0, len(d.Events))
	for _, e := range d.Events {
		var opts []event.Option
		if e.Number != nil {
			opts = append(opts, event.WithNumber(*e.Number))
		}
		if e.Particles != nil {
			opts = append(opts, event.WithParticles(*e.Particles))
		}
		events = append(events, event.New(opts...))
	}
	return events
}

// FromEvents is the inverse of ToEvents.
func FromEvents(events []event.Event) *Document {
	doc := &Document{Events: make([]EventDoc, 0, len(events))}
	for _, ev := range events {
		var e EventDoc
		if n, ok := ev.Number(); ok {
			e.Number = &n
		}
		if p, ok := ev.Particles(); ok {
			p = p.Clone()
			if p == nil {
				p = particle.Collection{}
			}
			e.Particles = &p
		}
		doc.Events = append(doc.Events, e)
	}
	return doc
}

// EncodeYAML writes events as a YAML document.
func EncodeYAML(w io.Writer, events []event.Event) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(FromEvents(events)); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}
	return enc.Close()
}
