package fs

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkboard/darkboard/pkg/core"
)

func TestSerializers_RoundTrip(t *testing.T) {
	for ext, s := range DefaultSerializers(true) {
		t.Run(ext, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, s.Encode(&buf, sampleNotes()))

			got, err := s.Decode(&buf)
			require.NoError(t, err)
			assert.Equal(t, sampleNotes(), got)
		})
	}
}

func TestExport_SkipsDeleted(t *testing.T) {
	notes := sampleNotes()
	notes[0].State = core.StateDeleted

	var buf bytes.Buffer
	require.NoError(t, Export(&buf, NewJSONSerializer(false), notes))
	assert.NotContains(t, buf.String(), "Groceries")
	assert.Contains(t, buf.String(), "Pinned")
}

func TestSerializerFor(t *testing.T) {
	tests := []struct {
		name string
		want Serializer
	}{
		{"yaml", &YAMLSerializer{}},
		{"board.YML", &YAMLSerializer{}},
		{"export.json", &JSONSerializer{}},
		{"csv", &CSVSerializer{}},
		{"notes.md", &MarkdownSerializer{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := SerializerFor(tt.name, false)
			require.NoError(t, err)
			assert.IsType(t, tt.want, s)
		})
	}

	_, err := SerializerFor("toml", false)
	assert.Error(t, err)
}

func TestYAMLSerializer_Strict(t *testing.T) {
	input := "- id: 1\n  title: x\n  color: yellow\n"

	_, err := NewYAMLSerializer(true).Decode(strings.NewReader(input))
	assert.Error(t, err)

	notes, err := NewYAMLSerializer(false).Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "x", notes[0].Title)
	assert.Equal(t, core.StateViewing, notes[0].State)
}

func TestCSVSerializer_ColumnOrder(t *testing.T) {
	input := "title,body,x,y\nshopping,\"milk, eggs\",1.5,2\n"

	notes, err := NewCSVSerializer().Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, notes, 1)
	assert.Equal(t, "shopping", notes[0].Title)
	assert.Equal(t, "milk, eggs", notes[0].Body)
	assert.Equal(t, core.Position{X: 1.5, Y: 2}, notes[0].Position)
}

func TestMarkdownSerializer_Errors(t *testing.T) {
	_, err := NewMarkdownSerializer(false).Decode(strings.NewReader("no frontmatter here"))
	assert.Error(t, err)

	_, err = NewMarkdownSerializer(false).Decode(strings.NewReader("---\ntitle: x\n"))
	assert.Error(t, err)
}
