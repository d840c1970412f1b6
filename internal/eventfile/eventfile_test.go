package eventfile

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cantwait/internal/errors"
)

const sample = `title: Release train
events:
  - label: Kickoff
    at: 2024-01-01
  - label: Freeze
    at: 2024-05-15T18:00
  - at: 2024-06-01T09:00:00+02:00
`

func TestDecode(t *testing.T) {
	t.Parallel()

	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	assert.Equal(t, "Release train", f.Title)
	assert.Equal(t, []string{"2024-01-01", "2024-05-15T18:00", "2024-06-01T09:00:00+02:00"}, f.Raw())
	assert.Equal(t, []string{"Kickoff", "Freeze", ""}, f.Labels())
}

func TestDecode_Empty(t *testing.T) {
	t.Parallel()

	f, err := Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Raw())
}

func TestDecode_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		doc  string
	}{
		{name: "malformed", doc: "events: [\n"},
		{name: "unknown key", doc: "evnets:\n  - at: 2024-01-01\n"},
		{name: "non scalar time", doc: "events:\n  - at: [2024, 1, 1]\n"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := Decode(strings.NewReader(tc.doc))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrEventFile), err.Error())
		})
	}
}

func TestRoundTrip(t *testing.T) {
	t.Parallel()

	in := New("Years", []string{"2013-01-01", "2015-01-01T10:00"})
	in.Events[0].Label = "start"

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, in))

	out, err := Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoadAndSave(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "timeline.yaml")
	require.NoError(t, Save(path, New("", []string{"2013", "2014"})))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"2013", "2014"}, f.Raw())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "title")
}

func TestLoad_Missing(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEventFile))
}
