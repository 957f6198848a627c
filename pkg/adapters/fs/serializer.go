package fs

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/darkboard/darkboard/pkg/core"
)

// Serializer converts notes to and from an interchange format.
// The notes file itself always uses the CBOR record codec; serializers
// back export and import.
type Serializer interface {
	// Encode writes the notes in order.
	Encode(w io.Writer, notes []core.Note) error
	// Decode reads notes. Ids and states are carried over as written;
	// callers decide whether to keep them.
	Decode(r io.Reader) ([]core.Note, error)
}

// DefaultSerializers returns the standard set of serializers keyed by extension.
func DefaultSerializers(strict bool) map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(strict),
		".yaml": NewYAMLSerializer(strict),
		".yml":  NewYAMLSerializer(strict),
		".csv":  NewCSVSerializer(),
		".md":   NewMarkdownSerializer(strict),
	}
}

// SerializerFor picks a serializer from a format name ("yaml") or a file
// name ("board.yaml").
func SerializerFor(name string, strict bool) (Serializer, error) {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		ext = "." + strings.ToLower(name)
	}
	s, ok := DefaultSerializers(strict)[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", name)
	}
	return s, nil
}

// Export writes the non-deleted notes with s.
func Export(w io.Writer, s Serializer, notes []core.Note) error {
	live := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		if !n.IsDeleted() {
			live = append(live, n)
		}
	}
	return s.Encode(w, live)
}

// noteDoc is the interchange shape shared by JSON, YAML and CSV.
type noteDoc struct {
	ID     int32   `json:"id" yaml:"id"`
	Title  string  `json:"title" yaml:"title"`
	Body   string  `json:"body" yaml:"body"`
	Pinned bool    `json:"pinned" yaml:"pinned"`
	State  string  `json:"state" yaml:"state"`
	X      float32 `json:"x" yaml:"x"`
	Y      float32 `json:"y" yaml:"y"`
}

func toDoc(n core.Note) noteDoc {
	return noteDoc{
		ID:     int32(n.ID),
		Title:  n.Title,
		Body:   n.Body,
		Pinned: n.Pinned,
		State:  n.State.String(),
		X:      n.Position.X,
		Y:      n.Position.Y,
	}
}

func (d noteDoc) note() core.Note {
	return core.Note{
		ID:       core.ID(d.ID),
		Title:    d.Title,
		Body:     d.Body,
		State:    core.ParseState(d.State),
		Pinned:   d.Pinned,
		Position: core.Position{X: d.X, Y: d.Y},
	}
}

func toDocs(notes []core.Note) []noteDoc {
	docs := make([]noteDoc, 0, len(notes))
	for _, n := range notes {
		docs = append(docs, toDoc(n))
	}
	return docs
}

func fromDocs(docs []noteDoc) []core.Note {
	notes := make([]core.Note, 0, len(docs))
	for _, d := range docs {
		notes = append(notes, d.note())
	}
	return notes
}

// --- JSON Serializer ---

// JSONSerializer handles JSON arrays of notes.
type JSONSerializer struct {
	// Strict rejects unknown fields on decode.
	Strict bool
}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer(strict bool) *JSONSerializer {
	return &JSONSerializer{Strict: strict}
}

func (s *JSONSerializer) Encode(w io.Writer, notes []core.Note) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toDocs(notes))
}

func (s *JSONSerializer) Decode(r io.Reader) ([]core.Note, error) {
	dec := json.NewDecoder(r)
	if s.Strict {
		dec.DisallowUnknownFields()
	}
	var docs []noteDoc
	if err := dec.Decode(&docs); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	return fromDocs(docs), nil
}

// --- YAML Serializer ---

// YAMLSerializer handles YAML sequences of notes.
type YAMLSerializer struct {
	// Strict rejects unknown fields on decode.
	Strict bool
}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer(strict bool) *YAMLSerializer {
	return &YAMLSerializer{Strict: strict}
}

func (s *YAMLSerializer) Encode(w io.Writer, notes []core.Note) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(toDocs(notes)); err != nil {
		return err
	}
	return enc.Close()
}

func (s *YAMLSerializer) Decode(r io.Reader) ([]core.Note, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(s.Strict)
	var docs []noteDoc
	if err := dec.Decode(&docs); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}
	return fromDocs(docs), nil
}

// --- Markdown Serializer ---

// mdMeta is the frontmatter of one note; the body follows it as text.
type mdMeta struct {
	ID     int32   `yaml:"id"`
	Title  string  `yaml:"title"`
	Pinned bool    `yaml:"pinned"`
	State  string  `yaml:"state"`
	X      float32 `yaml:"x"`
	Y      float32 `yaml:"y"`
}

// MarkdownSerializer writes one frontmatter block per note followed by its body.
// A body consisting of "---" alone cannot be told apart from a delimiter.
type MarkdownSerializer struct {
	// Strict rejects unknown frontmatter fields on decode.
	Strict bool
}

// NewMarkdownSerializer creates a new Markdown serializer.
func NewMarkdownSerializer(strict bool) *MarkdownSerializer {
	return &MarkdownSerializer{Strict: strict}
}

func (s *MarkdownSerializer) Encode(w io.Writer, notes []core.Note) error {
	var buf bytes.Buffer
	for _, n := range notes {
		d := toDoc(n)
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(mdMeta{ID: d.ID, Title: d.Title, Pinned: d.Pinned, State: d.State, X: d.X, Y: d.Y}); err != nil {
			return err
		}
		encoder.Close()
		buf.WriteString("---\n")
		buf.WriteString(n.Body)
		buf.WriteString("\n\n")
	}
	_, err := buf.WriteTo(w)
	return err
}

func (s *MarkdownSerializer) Decode(r io.Reader) ([]core.Note, error) {
	const (
		outside = iota
		inFrontmatter
		inBody
	)

	var (
		notes []core.Note
		meta  []string
		body  []string
		mode  = outside
	)

	flush := func() error {
		var m mdMeta
		dec := yaml.NewDecoder(strings.NewReader(strings.Join(meta, "\n")))
		dec.KnownFields(s.Strict)
		if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		d := noteDoc{ID: m.ID, Title: m.Title, Pinned: m.Pinned, State: m.State, X: m.X, Y: m.Y}
		d.Body = strings.TrimSpace(strings.Join(body, "\n"))
		notes = append(notes, d.note())
		meta, body = nil, nil
		return nil
	}

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		switch mode {
		case outside:
			if line == "---" {
				mode = inFrontmatter
			} else if strings.TrimSpace(line) != "" {
				return nil, errors.New("expected frontmatter delimiter")
			}
		case inFrontmatter:
			if line == "---" {
				mode = inBody
			} else {
				meta = append(meta, line)
			}
		case inBody:
			if line == "---" {
				if err := flush(); err != nil {
					return nil, err
				}
				mode = inFrontmatter
			} else {
				body = append(body, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	switch mode {
	case inFrontmatter:
		return nil, errors.New("frontmatter started but no closing delimiter found")
	case inBody:
		if err := flush(); err != nil {
			return nil, err
		}
	}
	return notes, nil
}

// --- CSV Serializer ---

var csvHeader = []string{"id", "title", "body", "pinned", "state", "x", "y"}

// CSVSerializer handles one note per row under a fixed header.
type CSVSerializer struct{}

// NewCSVSerializer creates a new CSV serializer.
func NewCSVSerializer() *CSVSerializer {
	return &CSVSerializer{}
}

func (s *CSVSerializer) Encode(w io.Writer, notes []core.Note) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, n := range notes {
		d := toDoc(n)
		row := []string{
			strconv.FormatInt(int64(d.ID), 10),
			d.Title,
			d.Body,
			strconv.FormatBool(d.Pinned),
			d.State,
			strconv.FormatFloat(float64(d.X), 'f', -1, 32),
			strconv.FormatFloat(float64(d.Y), 'f', -1, 32),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (s *CSVSerializer) Decode(r io.Reader) ([]core.Note, error) {
	reader := csv.NewReader(r)
	headers, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}

	column := make(map[string]int, len(headers))
	for i, h := range headers {
		column[strings.ToLower(strings.TrimSpace(h))] = i
	}
	field := func(row []string, name string) string {
		if i, ok := column[name]; ok && i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var notes []core.Note
	for line := 2; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return notes, nil
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv row %d: %w", line, err)
		}

		var d noteDoc
		if v := field(row, "id"); v != "" {
			id, err := strconv.ParseInt(v, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("row %d: invalid id %q: %w", line, v, err)
			}
			d.ID = int32(id)
		}
		d.Title = field(row, "title")
		d.Body = field(row, "body")
		d.Pinned, _ = strconv.ParseBool(field(row, "pinned"))
		d.State = field(row, "state")
		d.X = parseFloat32(field(row, "x"))
		d.Y = parseFloat32(field(row, "y"))
		notes = append(notes, d.note())
	}
}

func parseFloat32(v string) float32 {
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return 0
	}
	return float32(f)
}
