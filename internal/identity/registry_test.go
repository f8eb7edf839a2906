package identity

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_NewSlug_MintsHexToken(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "ids.json"))
	require.NoError(t, err)

	id := r.Resolve("my-post")
	require.Len(t, id, 32)
	require.Regexp(t, "^[0-9a-f]{32}$", id)
	require.True(t, r.Dirty())
}

func TestResolve_Idempotent(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "ids.json"))
	require.NoError(t, err)

	first := r.Resolve("my-post")
	second := r.Resolve("my-post")
	require.Equal(t, first, second)
}

func TestResolve_DistinctSlugs_DistinctIDs(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "ids.json"))
	require.NoError(t, err)

	require.NotEqual(t, r.Resolve("alpha"), r.Resolve("beta"))
}

func TestFlush_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")

	r, err := Load(path)
	require.NoError(t, err)
	id := r.Resolve("my-post")
	require.NoError(t, err)
	require.NoError(t, r.Flush())
	require.False(t, r.Dirty())

	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, id, reloaded.Resolve("my-post"))
	require.False(t, reloaded.Dirty(), "resolving a persisted slug must not dirty the registry")
}

func TestFlush_Clean_DoesNotWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")

	r, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, r.Flush())

	_, statErr := os.Stat(path)
	require.True(t, os.IsNotExist(statErr), "flush without mutation must not create the file")
}

func TestBind_ConflictingID_Rejected(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "ids.json"))
	require.NoError(t, err)

	pinned := NewID()
	require.NoError(t, r.Bind("my-post", pinned))
	require.NoError(t, r.Bind("my-post", pinned)) // identical rebind is fine
	require.Error(t, r.Bind("my-post", NewID()))
	require.Equal(t, pinned, r.Resolve("my-post"))
}

func TestLoad_CorruptFile_Fails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ids.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
