package fingerprint

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestCompute_StableAcrossRuns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.md", "alpha")
	b := writeFile(t, dir, "b.md", "beta")
	inputs := []Input{{Key: "post:a.md", Path: a}, {Key: "post:b.md", Path: b}}

	first, err := Compute(inputs)
	require.NoError(t, err)
	second, err := Compute(inputs)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Len(t, first, 2)
}

func TestCompute_UnreadableInput_FailsWholeStep(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.md", "alpha")

	_, err := Compute([]Input{
		{Key: "post:a.md", Path: a},
		{Key: "post:gone.md", Path: filepath.Join(dir, "gone.md")},
	})
	require.Error(t, err)
}

func TestShouldBuild_FirstRun_AlwaysTrue(t *testing.T) {
	require.True(t, ShouldBuild(nil, Map{}))
	require.True(t, ShouldBuild(nil, Map{"k": "v"}))
}

func TestShouldBuild_IdenticalMaps_False(t *testing.T) {
	prev := Map{"a": "1", "b": "2"}
	cur := Map{"b": "2", "a": "1"}
	require.False(t, ShouldBuild(prev, cur))
}

func TestShouldBuild_ChangedDigest_True(t *testing.T) {
	require.True(t, ShouldBuild(Map{"a": "1"}, Map{"a": "2"}))
}

func TestShouldBuild_AddedOrRemovedKey_True(t *testing.T) {
	require.True(t, ShouldBuild(Map{"a": "1"}, Map{"a": "1", "b": "2"}))
	require.True(t, ShouldBuild(Map{"a": "1", "b": "2"}, Map{"a": "1"}))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "fingerprints.json")
	m := Map{"template:index": "abc", "post:x.md": "def"}

	require.NoError(t, Save(path, m))
	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, m, loaded)
}

func TestLoad_Missing_ReturnsNilMap(t *testing.T) {
	m, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	require.Nil(t, m)
	require.True(t, ShouldBuild(m, Map{}))
}

func TestEndToEnd_ContentChangeFlipsDecision(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.md", "alpha")
	inputs := []Input{{Key: "post:a.md", Path: a}}

	before, err := Compute(inputs)
	require.NoError(t, err)
	require.False(t, ShouldBuild(before, before))

	require.NoError(t, os.WriteFile(a, []byte("alpha edited"), 0o644))
	after, err := Compute(inputs)
	require.NoError(t, err)
	require.True(t, ShouldBuild(before, after))
}
