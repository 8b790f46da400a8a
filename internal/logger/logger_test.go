package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenOutput(t *testing.T) {
	w, err := openOutput("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, w)

	w, err = openOutput("stderr")
	require.NoError(t, err)
	assert.Equal(t, os.Stderr, w)

	path := filepath.Join(t.TempDir(), "nested", "app.log")
	w, err = openOutput(path)
	require.NoError(t, err)
	f, ok := w.(*os.File)
	require.True(t, ok)
	t.Cleanup(func() { _ = f.Close() })
	assert.FileExists(t, path)
}

func TestGetBeforeInitDiscards(t *testing.T) {
	assert.NotPanics(t, func() {
		Get().Info().Msg("dropped")
		Warn().Str("k", "v").Msg("dropped")
	})
}
