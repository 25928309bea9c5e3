package entrypoint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/davinci-coder-club/clubsite/internal/importers"
)

func TestBuildAliases(t *testing.T) {
	t.Run("no overrides file", func(t *testing.T) {
		aliases, err := BuildAliases("")
		require.NoError(t, err)
		assert.Equal(t, importers.DefaultAliases(), aliases)
	})

	t.Run("overrides merged", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aliases.yaml")
		require.NoError(t, os.WriteFile(path, []byte("event:\n  venue: [location]\n"), 0644))

		aliases, err := BuildAliases(path)
		require.NoError(t, err)
		assert.Contains(t, aliases.Aliases(importers.EntityEvent, "venue"), "location")
	})

	t.Run("unknown field rejected", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "aliases.yaml")
		require.NoError(t, os.WriteFile(path, []byte("project:\n  budget: [cost]\n"), 0644))

		_, err := BuildAliases(path)
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := BuildAliases(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})
}
