package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "displaymode.pid")

	require.NoError(t, createPidFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(os.Getpid()), strings.TrimSpace(string(data)))

	// this process is alive so a second claim fails
	err = createPidFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already running")

	removePidFile(path)
	assert.NoFileExists(t, path)
	removePidFile(path)
}

func TestPidFileTakesOverStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "displaymode.pid")
	require.NoError(t, os.WriteFile(path, []byte("not a pid\n"), 0o644))

	require.NoError(t, createPidFile(path))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprint(os.Getpid()), strings.TrimSpace(string(data)))
}
