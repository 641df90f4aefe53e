package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONCanonicalBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "artifact.json")

	require.NoError(t, WriteJSON(path, map[string]any{"zebra": 1, "alpha": 2}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "{\"alpha\":2,\"zebra\":1}\n", string(data))
}

func TestReadJSONRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "artifact.json")
	require.NoError(t, WriteJSON(path, map[string]int{"count": 3}))

	var out map[string]int
	require.NoError(t, ReadJSON(path, &out))
	assert.Equal(t, 3, out["count"])
}

func TestReadJSONMissingFile(t *testing.T) {
	var out map[string]int
	err := ReadJSON(filepath.Join(t.TempDir(), "missing.json"), &out)
	assert.Error(t, err)
}
