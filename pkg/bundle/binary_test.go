package bundle

import (
	"path/filepath"
	"testing"

	"codebundle/pkg/language"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLooksBinary(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"text.py":  "print('héllo')\n",
		"empty.py": "",
		"blob.dat": "\x00\x01\x02abc",
		"noise":    "\x01\x02\x03\x04\x05\x06abc",
	})

	tests := map[string]bool{"text.py": false, "empty.py": false, "blob.dat": true, "noise": true}
	for name, want := range tests {
		got, err := looksBinary(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, want, got, name)
	}

	_, err := looksBinary(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}

func TestSelect_AllNotesBinaryFiles(t *testing.T) {
	dir := t.TempDir()
	writeSources(t, dir, map[string]string{
		"a.py":     "a\n",
		"blob.dat": "\x00\x00",
	})
	core, logs := observer.New(zap.InfoLevel)

	spec, err := language.Lookup("all")
	require.NoError(t, err)
	files, err := Select(dir, Criteria{Language: spec}, zap.New(core))
	require.NoError(t, err)

	assert.Len(t, files, 2)
	entries := logs.FilterMessage("Selected file looks binary; it is bundled as is").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.InfoLevel, entries[0].Level)
	assert.Equal(t, filepath.Join(dir, "blob.dat"), entries[0].ContextMap()["file"])
}
