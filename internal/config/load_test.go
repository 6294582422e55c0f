package config

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
world:
  map_file: map.yaml
control:
  step:
    start: 0
    total: 1000
    interval: 1
  seed: 42
`

func TestLoadParsesValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "map.yaml", c.World.MapFile)
	assert.Equal(t, uint64(42), c.Control.Seed)
}

func TestLoadRejectsUnknownFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYAML+"\nbogus_field: 1\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsInvalidInterval(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	bad := `
control:
  step:
    interval: 0
`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "interval must be > 0")
}

func TestLoadBase64DecodesAndParses(t *testing.T) {
	encoded := base64.StdEncoding.EncodeToString([]byte(testConfigYAML))
	c, err := LoadBase64(encoded)
	require.NoError(t, err)
	assert.Equal(t, "map.yaml", c.World.MapFile)
}
