package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	reg := Default()
	require.Len(t, reg.Generators, 5)

	want := []struct{ kind, route, prefix, name string }{
		{"Universe", "/generate/universe", "u", "New Universe"},
		{"World", "/generate/world", "w", "New World"},
		{"Character", "/generate/character", "ch", "New Character"},
		{"Culture", "/generate/culture", "cu", "New Culture"},
		{"Technology", "/generate/technology", "t", "New Technology"},
	}
	for i, w := range want {
		g := reg.Generators[i]
		assert.Equal(t, w.kind, g.Kind)
		assert.Equal(t, w.route, g.Route)
		assert.Equal(t, w.prefix, g.IDPrefix)
		assert.Equal(t, w.name, g.DefaultName)
		assert.True(t, g.IsEnabled())
		assert.Equal(t, "object", g.InputSchema["type"])
	}
}

func TestLookup(t *testing.T) {
	reg := Default()

	g, ok := reg.Lookup("culture")
	require.True(t, ok)
	assert.Equal(t, "cu", g.IDPrefix)

	g, ok = reg.LookupRoute("/generate/technology")
	require.True(t, ok)
	assert.Equal(t, "Technology", g.Kind)

	_, ok = reg.Lookup("Planet")
	assert.False(t, ok)
	_, ok = reg.LookupRoute("/generate/planet")
	assert.False(t, ok)
}

func TestLoadRegistry_AppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registry.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"version": "1.1.0",
		"lastUpdated": "2025-06-01",
		"generators": [
			{"kind": "world", "enabled": false},
			{"kind": "Character", "description": "People of the setting", "tags": ["npc"]}
		]
	}`), 0o600))

	reg, err := LoadRegistry(path)
	require.NoError(t, err)

	assert.Equal(t, "1.1.0", reg.Version)
	assert.Len(t, reg.Enabled(), 4)

	world, _ := reg.Lookup("World")
	assert.False(t, world.IsEnabled())
	assert.Equal(t, "/generate/world", world.Route, "route is not overridable")

	ch, _ := reg.Lookup("Character")
	assert.Equal(t, "People of the setting", ch.Description)
	assert.Equal(t, []string{"npc"}, ch.Tags)

	assert.True(t, Default().Generators[1].IsEnabled(), "defaults are not mutated")
}

func TestLoadRegistry_Errors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadRegistry(filepath.Join(dir, "missing.json"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{not json`), 0o600))
	_, err = LoadRegistry(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.json")
	require.NoError(t, os.WriteFile(unknown, []byte(`{"generators":[{"kind":"Planet"}]}`), 0o600))
	_, err = LoadRegistry(unknown)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Planet")
}
