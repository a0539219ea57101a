package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppliesDefaults(t *testing.T) {
	c, err := New(Options{})
	require.NoError(t, err)
	assert.False(t, c.GetBool("debug"))
	assert.Equal(t, 8080, c.GetInt("port"))
	assert.Equal(t, 1000, c.GetInt("default-conflict-limit"))
}

func TestNewReadsEnvironmentOverrides(t *testing.T) {
	t.Setenv("UNIQUE_PORT", "9090")
	t.Setenv("UNIQUE_DEBUG", "true")

	c, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, 9090, c.GetInt("port"))
	assert.True(t, c.GetBool("debug"))
}

func TestNewToleratesMissingConfigFile(t *testing.T) {
	c, err := New(Options{ConfigFile: "/nonexistent/path/unique.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 8080, c.GetInt("port"))
}

func TestNewReadsConfigFile(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "unique-*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString("port: 7070\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	c, err := New(Options{ConfigFile: f.Name()})
	require.NoError(t, err)
	assert.Equal(t, 7070, c.GetInt("port"))
}
