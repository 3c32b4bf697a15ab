package storage

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"doc2html/internal/domain/entity"
)

func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 11), B: uint8(x + y), A: 255})
		}
	}
	return img
}

func TestFileStore_WriteAssetsRoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	store := NewFileStore(dir)
	img := gradient(17, 9)

	paths, err := store.WriteAssets([]entity.Asset{{Name: "visual_element_0.png", Image: img}})
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(dir, "visual_element_0.png")}, paths)

	f, err := os.Open(paths[0])
	require.NoError(t, err)
	defer f.Close()
	decoded, err := png.Decode(f)
	require.NoError(t, err)

	require.Equal(t, img.Bounds(), decoded.Bounds())
	for y := 0; y < 9; y++ {
		for x := 0; x < 17; x++ {
			require.Equal(t, img.RGBAAt(x, y), color.RGBAModel.Convert(decoded.At(x, y)))
		}
	}
}

func TestFileStore_WriteAssetsFailure(t *testing.T) {
	dir := t.TempDir()
	// Каталог с именем второго файла мешает его создать.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "visual_element_1.png"), 0o755))
	store := NewFileStore(dir)

	paths, err := store.WriteAssets([]entity.Asset{
		{Name: "visual_element_0.png", Image: gradient(2, 2)},
		{Name: "visual_element_1.png", Image: gradient(2, 2)},
	})
	require.Error(t, err)
	require.Len(t, paths, 1)

	require.NoError(t, store.Remove(paths))
	_, err = os.Stat(paths[0])
	require.True(t, os.IsNotExist(err))
}

func TestFileStore_WriteDocument(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	path, err := store.WriteDocument("output.html", "<p>привет</p>")
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "<p>привет</p>", string(data))
}

func TestFileStore_RemoveMissing(t *testing.T) {
	store := NewFileStore(t.TempDir())
	require.NoError(t, store.Remove([]string{filepath.Join(store.Dir(), "nope.png")}))
}
