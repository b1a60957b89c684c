package spritebuilder

import (
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var white = color.NRGBA{255, 255, 255, 255}

func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// twoSquares is a black 200x100 image with a 40x40 and a 30x30 white square.
func twoSquares(t *testing.T) *image.NRGBA {
	t.Helper()
	img := solid(200, 100, color.NRGBA{0, 0, 0, 255})
	fillRect(img, image.Rect(10, 10, 50, 50), white)
	fillRect(img, image.Rect(150, 60, 180, 90), white)
	masked, err := Mask(img, MaskOptions{Threshold: 10})
	require.NoError(t, err)
	return masked
}

func TestLabel_TwoSquares(t *testing.T) {
	masked := twoSquares(t)

	comps, err := Label(masked, ComponentOptions{MinArea: 100})
	require.NoError(t, err)
	require.Len(t, comps, 2)

	assert.Equal(t, 1600, comps[0].Area)
	assert.Equal(t, image.Rect(10, 10, 50, 50), comps[0].Bounds)
	assert.Equal(t, image.Rect(0, 0, 40, 40), comps[0].Image.Bounds())

	assert.Equal(t, 900, comps[1].Area)
	assert.Equal(t, image.Rect(150, 60, 180, 90), comps[1].Bounds)
	assert.Equal(t, image.Rect(0, 0, 30, 30), comps[1].Image.Bounds())

	assert.Equal(t, white, comps[0].Image.NRGBAAt(0, 0))
	assert.Equal(t, white, comps[1].Image.NRGBAAt(29, 29))
}

func TestLabel_MinAreaFilter(t *testing.T) {
	masked := twoSquares(t)
	tests := []struct {
		minArea int
		areas   []int
	}{
		{0, []int{1600, 900}},
		{900, []int{1600, 900}},
		{901, []int{1600}},
		{1600, []int{1600}},
		{2000, nil},
	}
	for _, tt := range tests {
		comps, err := Label(masked, ComponentOptions{MinArea: tt.minArea})
		require.NoError(t, err, "min area %d", tt.minArea)
		var areas []int
		for _, c := range comps {
			areas = append(areas, c.Area)
		}
		assert.Equal(t, tt.areas, areas, "min area %d", tt.minArea)
	}
}

func TestLabel_DiagonalNeighboursConnect(t *testing.T) {
	img := NewRaster(4, 4)
	img.SetNRGBA(0, 0, white)
	img.SetNRGBA(1, 1, white)
	img.SetNRGBA(2, 2, white)
	img.SetNRGBA(3, 0, white)

	comps, err := Label(img, ComponentOptions{})
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, 3, comps[0].Area)
	assert.Equal(t, image.Rect(0, 0, 3, 3), comps[0].Bounds)
	assert.Equal(t, 1, comps[1].Area)
}

func TestLabel_ForeignPixelsInsideBoxAreTransparent(t *testing.T) {
	img := NewRaster(10, 10)
	// An L along the top and left edges, and a block inside its box.
	fillRect(img, image.Rect(0, 0, 10, 1), white)
	fillRect(img, image.Rect(0, 0, 1, 10), white)
	fillRect(img, image.Rect(5, 5, 8, 8), color.NRGBA{255, 0, 0, 255})

	comps, err := Label(img, ComponentOptions{})
	require.NoError(t, err)
	require.Len(t, comps, 2)

	l, block := comps[0], comps[1]
	assert.Equal(t, image.Rect(0, 0, 10, 10), l.Bounds)
	assert.Equal(t, 19, l.Area)
	assert.Equal(t, color.NRGBA{}, l.Image.NRGBAAt(6, 6))

	assert.Equal(t, image.Rect(5, 5, 8, 8), block.Bounds)
	assert.Equal(t, color.NRGBA{255, 0, 0, 255}, block.Image.NRGBAAt(1, 1))
}

func TestLabel_RoundTripReproducesForeground(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1))
	img := NewRaster(60, 40)
	for y := range 40 {
		for x := range 60 {
			if rng.IntN(100) < 35 {
				img.SetNRGBA(x, y, color.NRGBA{uint8(x * 4), uint8(y * 6), 90, uint8(1 + rng.IntN(255))})
			}
		}
	}

	comps, err := Label(img, ComponentOptions{MinArea: 0})
	require.NoError(t, err)

	owner := make([]int, 60*40)
	for _, c := range comps {
		n := 0
		for y := range c.Bounds.Dy() {
			for x := range c.Bounds.Dx() {
				px := c.Image.NRGBAAt(x, y)
				if px.A == 0 {
					continue
				}
				sx, sy := c.Bounds.Min.X+x, c.Bounds.Min.Y+y
				i := labelOffset(60, sx, sy)
				assert.Zero(t, owner[i], "pixel %d,%d claimed twice", sx, sy)
				owner[i] = c.Label
				assert.Equal(t, img.NRGBAAt(sx, sy), px, "local alpha and colour preserved")
				n++
			}
		}
		assert.Equal(t, c.Area, n)
	}
	for y := range 40 {
		for x := range 60 {
			fg := img.NRGBAAt(x, y).A > 0
			assert.Equal(t, fg, owner[labelOffset(60, x, y)] != 0, "pixel %d,%d", x, y)
		}
	}
}

func TestLabel_DeterministicOrder(t *testing.T) {
	masked := twoSquares(t)
	a, err := Label(masked, ComponentOptions{})
	require.NoError(t, err)
	b, err := Label(masked, ComponentOptions{})
	require.NoError(t, err)
	require.Len(t, b, len(a))
	for i := range a {
		assert.Equal(t, a[i].Label, b[i].Label)
		assert.Equal(t, a[i].Bounds, b[i].Bounds)
	}
	assert.Less(t, a[0].Label, a[1].Label)
}

func TestLabel_Despeckle(t *testing.T) {
	img := NewRaster(40, 40)
	fillRect(img, image.Rect(5, 5, 25, 25), white)
	img.SetNRGBA(35, 35, white)
	// One-pixel bridge to a second blob.
	fillRect(img, image.Rect(25, 14, 30, 15), white)
	fillRect(img, image.Rect(30, 10, 38, 18), white)

	plain, err := Label(img, ComponentOptions{})
	require.NoError(t, err)
	assert.Len(t, plain, 2)

	opened, err := Label(img, ComponentOptions{Despeckle: true})
	require.NoError(t, err)
	require.Len(t, opened, 2)
	assert.Equal(t, 400, opened[0].Area)
	assert.Equal(t, image.Rect(5, 5, 25, 25), opened[0].Bounds)
	assert.Equal(t, 64, opened[1].Area)
}

func TestLabel_DespeckleKeepsBorderStrips(t *testing.T) {
	img := NewRaster(30, 20)
	// Two rows along the top edge, two columns along the right edge.
	fillRect(img, image.Rect(0, 0, 20, 2), white)
	fillRect(img, image.Rect(28, 5, 30, 15), white)
	// A one-pixel line away from the border is removed.
	fillRect(img, image.Rect(5, 10, 15, 11), white)

	comps, err := Label(img, ComponentOptions{Despeckle: true})
	require.NoError(t, err)
	require.Len(t, comps, 2)
	assert.Equal(t, image.Rect(0, 0, 20, 2), comps[0].Bounds)
	assert.Equal(t, 40, comps[0].Area)
	assert.Equal(t, image.Rect(28, 5, 30, 15), comps[1].Bounds)
	assert.Equal(t, 20, comps[1].Area)

	full := solid(6, 4, white)
	comps, err = Label(full, ComponentOptions{Despeckle: true})
	require.NoError(t, err)
	require.Len(t, comps, 1)
	assert.Equal(t, 24, comps[0].Area)
}

func TestLabel_EmptyAndInvalid(t *testing.T) {
	comps, err := Label(NewRaster(10, 10), ComponentOptions{})
	require.NoError(t, err)
	assert.Empty(t, comps)

	comps, err = Label(NewRaster(0, 0), ComponentOptions{})
	require.NoError(t, err)
	assert.Empty(t, comps)

	_, err = Label(NewRaster(1, 1), ComponentOptions{MinArea: -1})
	assert.ErrorIs(t, err, ErrInvalidParameter)
}

func TestComponentOptionsFromSize(t *testing.T) {
	assert.Equal(t, DefaultMinArea, ComponentOptionsFromSize(image.Pt(1000, 1000)).MinArea)
	assert.Equal(t, 100, ComponentOptionsFromSize(image.Pt(100, 100)).MinArea)
	assert.Equal(t, 1, ComponentOptionsFromSize(image.Pt(5, 5)).MinArea)
	assert.Equal(t, DefaultMinArea, ComponentOptionsFromSize(image.Point{}).MinArea)
}
