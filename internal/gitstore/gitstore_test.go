package gitstore

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/content"
)

func initRepo(t *testing.T) (string, *git.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return dir, repo
}

func headCount(t *testing.T, repo *git.Repository) int {
	t.Helper()
	head, err := repo.Head()
	if err != nil {
		return 0
	}
	iter, err := repo.Log(&git.LogOptions{From: head.Hash()})
	require.NoError(t, err)
	defer iter.Close()
	count := 0
	require.NoError(t, iter.ForEach(func(*object.Commit) error { count++; return nil }))
	return count
}

func TestOpen_NotARepository_ReturnsNil(t *testing.T) {
	c, err := Open(t.TempDir(), "author", "a@b.c")
	require.NoError(t, err)
	require.Nil(t, c)
}

func TestCommitter_Commit_RecordsChange(t *testing.T) {
	dir, repo := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hello.md"), []byte("hi"), 0o644))

	c, err := Open(dir, "Tester", "t@example.com")
	require.NoError(t, err)
	require.NotNil(t, c)

	require.NoError(t, c.Commit("Add hello"))
	require.Equal(t, 1, headCount(t, repo))

	head, err := repo.Head()
	require.NoError(t, err)
	commit, err := repo.CommitObject(head.Hash())
	require.NoError(t, err)
	require.Equal(t, "Add hello", commit.Message)
	require.Equal(t, "Tester", commit.Author.Name)
}

func TestCommitter_Commit_CleanWorktreeIsNoop(t *testing.T) {
	dir, repo := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.md"), []byte("a"), 0o644))

	c, err := Open(dir, "Tester", "t@example.com")
	require.NoError(t, err)
	require.NoError(t, c.Commit("First"))
	require.NoError(t, c.Commit("Should not appear"))
	require.Equal(t, 1, headCount(t, repo))
}

func TestCommitter_NilReceiver_Safe(t *testing.T) {
	var c *Committer
	require.NoError(t, c.Commit("nothing"))
	c.CommitQuietly("nothing")
}

func TestContentStore_MutationsAutoCommit(t *testing.T) {
	dir, repo := initRepo(t)
	inner, err := content.NewStore(filepath.Join(dir, "posts"), filepath.Join(dir, "images"))
	require.NoError(t, err)

	c, err := Open(dir, "Tester", "t@example.com")
	require.NoError(t, err)
	store := NewContentStore(inner, c)

	filename, err := store.CreatePost("Commit Me")
	require.NoError(t, err)
	require.Equal(t, 1, headCount(t, repo))

	require.NoError(t, store.WritePost(filename, []byte("---\ntitle: Commit Me\ndate: 2024-01-01\n---\nedited\n")))
	require.Equal(t, 2, headCount(t, repo))

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	_, err = store.SaveImage("commit-me", "pic.png", &buf, 1600)
	require.NoError(t, err)
	require.Equal(t, 3, headCount(t, repo))

	require.NoError(t, store.DeletePost(filename))
	require.Equal(t, 4, headCount(t, repo))
}

func TestContentStore_NilCommitter_PassesThrough(t *testing.T) {
	dir := t.TempDir()
	inner, err := content.NewStore(filepath.Join(dir, "posts"), filepath.Join(dir, "images"))
	require.NoError(t, err)
	store := NewContentStore(inner, nil)

	filename, err := store.CreatePost("Plain")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(dir, "posts", filename))
}
