package utils

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setanarut/spritebuilder"
)

func TestSaveImage_RoundTrip(t *testing.T) {
	img := spritebuilder.NewRaster(3, 2)
	img.SetNRGBA(0, 0, color.NRGBA{255, 0, 0, 255})
	img.SetNRGBA(2, 1, color.NRGBA{10, 20, 30, 128})

	path := filepath.Join(t.TempDir(), "nested", "dir", "out.png")
	require.NoError(t, SaveImage(img, path))

	back, err := ReadImage(path)
	require.NoError(t, err)
	got := spritebuilder.ToNRGBA(back)
	assert.Equal(t, img.Pix, got.Pix)
}

func TestReadImage_Errors(t *testing.T) {
	_, err := ReadImage(filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bogus := filepath.Join(t.TempDir(), "bogus.png")
	require.NoError(t, os.WriteFile(bogus, []byte("not an image"), 0o644))
	_, err = ReadImage(bogus)
	assert.ErrorIs(t, err, image.ErrFormat)
}

func TestSaveComponents(t *testing.T) {
	comps := []spritebuilder.NamedComponent{
		{Name: "component_1", Component: spritebuilder.Component{Label: 1, Area: 4, Bounds: image.Rect(0, 0, 2, 2), Image: spritebuilder.NewRaster(2, 2)}},
		{Name: "component_2", Component: spritebuilder.Component{Label: 3, Area: 1, Bounds: image.Rect(5, 5, 6, 6), Image: spritebuilder.NewRaster(1, 1)}},
	}
	dir := t.TempDir()

	paths, err := SaveComponents(comps, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "component_1.png"),
		filepath.Join(dir, "component_2.png"),
	}, paths)
	for _, p := range paths {
		assert.FileExists(t, p)
	}

	paths, err = SaveComponents(nil, dir)
	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestSavePalette(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.png")
	palette := []colorful.Color{{R: 1}, {G: 1}, {B: 1}}
	require.NoError(t, SavePalette(palette, 4, path))

	img, err := ReadImage(path)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 12, 4), img.Bounds())
	r, g, b, _ := img.At(5, 2).RGBA()
	assert.Equal(t, [3]uint32{0, 0xffff, 0}, [3]uint32{r, g, b})

	assert.Error(t, SavePalette(nil, 4, path))
}

func TestSaveSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	require.NoError(t, SaveSheet(spritebuilder.NewRaster(8, 16), path))
	assert.FileExists(t, path)
}

func TestSwatches(t *testing.T) {
	comps := []spritebuilder.NamedComponent{
		{Component: spritebuilder.Component{Swatch: colorful.Color{R: 0.5}}},
		{Component: spritebuilder.Component{}},
	}
	assert.Equal(t, []colorful.Color{{R: 0.5}, {}}, Swatches(comps))
}
