package main

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"canon-builder/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestRegistryUpdater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")

	out, err := execute(t, "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Found 5 generators (5 enabled)")

	out, err = execute(t, "set", "--path", path, "--kind", "technology", "--field", "enabled", "--value", "false")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated generator technology")

	out, err = execute(t, "validate", "--path", path)
	require.NoError(t, err)
	assert.Contains(t, out, "(4 enabled)")

	out, err = execute(t, "show", "--path", path)
	require.NoError(t, err)
	var reg registry.GeneratorRegistry
	require.NoError(t, json.Unmarshal([]byte(out), &reg))
	tech, ok := reg.Lookup("Technology")
	require.True(t, ok)
	assert.False(t, tech.IsEnabled())
}

func TestRegistryUpdater_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")

	_, err := execute(t, "set", "--path", path, "--kind", "planet", "--field", "enabled", "--value", "true")
	assert.Error(t, err)

	_, err = execute(t, "set", "--path", path, "--field", "enabled", "--value", "true")
	assert.Error(t, err, "kind is required")

	_, err = execute(t, "set", "--path", path, "--kind", "world", "--field", "idPrefix", "--value", "x")
	assert.Error(t, err)
}
