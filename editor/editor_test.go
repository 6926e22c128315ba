package editor

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Setenv("EDITOR", "")
	t.Setenv("VISUAL", "")
	assert.Equal(t, "vim", Resolve(""))

	t.Setenv("VISUAL", "emacs")
	assert.Equal(t, "emacs", Resolve(""))

	t.Setenv("EDITOR", "nano")
	assert.Equal(t, "nano", Resolve(""))

	assert.Equal(t, "helix", Resolve("helix"))
}

func TestStartAndResult(t *testing.T) {
	e, cmd, err := Start("true", "original text\n")
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "original text\n", e.Original())

	// Simulate the editor rewriting the file.
	require.NoError(t, os.WriteFile(e.path, []byte("edited text\n\n"), 0644))

	result, err := e.Result()
	require.NoError(t, err)
	assert.Equal(t, "edited text", result)

	// Temp file is gone after Result.
	_, err = os.Stat(e.path)
	assert.True(t, os.IsNotExist(err))
}

func TestDiscard(t *testing.T) {
	e, _, err := Start("true", "text")
	require.NoError(t, err)

	e.Discard()
	_, statErr := os.Stat(e.path)
	assert.True(t, os.IsNotExist(statErr))
}
