package content

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	ierrors "github.com/inkwell/inkwell/internal/errors"
)

func pngBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestSaveImage_WideImage_DownscaledToMaxWidth(t *testing.T) {
	store := newTestStore(t)

	name, err := store.SaveImage("trip", "wide.png", bytes.NewReader(pngBytes(t, 400, 200)), 100)
	require.NoError(t, err)
	require.Equal(t, "wide.png", name)

	path, err := store.ImagePath("trip", "wide.png")
	require.NoError(t, err)
	stored, err := readImageConfig(path)
	require.NoError(t, err)
	require.Equal(t, 100, stored.Width)
	require.Equal(t, 50, stored.Height)
}

func TestSaveImage_NarrowImage_StoredVerbatim(t *testing.T) {
	store := newTestStore(t)
	original := pngBytes(t, 50, 50)

	_, err := store.SaveImage("trip", "small.png", bytes.NewReader(original), 100)
	require.NoError(t, err)

	path, err := store.ImagePath("trip", "small.png")
	require.NoError(t, err)
	stored := mustReadFile(t, path)
	require.Equal(t, original, stored)
}

func TestSaveImage_NonRaster_StoredVerbatim(t *testing.T) {
	store := newTestStore(t)

	_, err := store.SaveImage("trip", "diagram.svg", strings.NewReader("<svg/>"), 100)
	require.NoError(t, err)

	path, err := store.ImagePath("trip", "diagram.svg")
	require.NoError(t, err)
	require.Equal(t, []byte("<svg/>"), mustReadFile(t, path))
}

func TestListImages_EmptyAndSorted(t *testing.T) {
	store := newTestStore(t)

	names, err := store.ListImages("nothing-yet")
	require.NoError(t, err)
	require.Empty(t, names)

	_, err = store.SaveImage("trip", "b.png", bytes.NewReader(pngBytes(t, 10, 10)), 0)
	require.NoError(t, err)
	_, err = store.SaveImage("trip", "a.png", bytes.NewReader(pngBytes(t, 10, 10)), 0)
	require.NoError(t, err)

	names, err = store.ListImages("trip")
	require.NoError(t, err)
	require.Equal(t, []string{"a.png", "b.png"}, names)
}

func TestDeleteImage_MissingReturnsNotFound(t *testing.T) {
	store := newTestStore(t)
	err := store.DeleteImage("trip", "nope.png")
	require.Error(t, err)
	require.Equal(t, ierrors.CategoryNotFound, ierrors.CategoryOf(err))
}

func readImageConfig(path string) (image.Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return image.Config{}, err
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	return cfg, err
}

func mustReadFile(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return data
}

func TestContentImageFiles_WalksAllSlugs(t *testing.T) {
	store := newTestStore(t)
	_, err := store.SaveImage("alpha", "one.png", bytes.NewReader(pngBytes(t, 10, 10)), 0)
	require.NoError(t, err)
	_, err = store.SaveImage("beta", "two.png", bytes.NewReader(pngBytes(t, 10, 10)), 0)
	require.NoError(t, err)

	paths, err := store.ContentImageFiles()
	require.NoError(t, err)
	require.Len(t, paths, 2)
	require.Contains(t, paths[0], "one.png")
	require.Contains(t, paths[1], "two.png")
}
