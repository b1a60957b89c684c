package spritebuilder

import (
	"image"
	"math"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r2"
)

// Resampler renders a source image onto a fixed-size transparent canvas
// under a Transform. The canvas origin coincides with the source origin, so a
// pivot keeps the same canvas position for every angle.
type Resampler struct {
	// Rotations are rendered at Supersample times the canvas resolution and
	// filtered back down with Lanczos3. Zero means DefaultSupersample.
	Supersample int
}

func NewResampler(supersample int) Resampler {
	return Resampler{Supersample: supersample}
}

func (r Resampler) factor() (int, error) {
	s := r.Supersample
	if s == 0 {
		s = DefaultSupersample
	}
	if s < 1 || s > MaxSupersample {
		return 0, invalid("supersample %d outside [1,%d]", s, MaxSupersample)
	}
	return s, nil
}

// Render returns a canvas-sized buffer with src placed according to t.
// Pixels moved off the canvas are clipped; uncovered pixels stay transparent.
func (r Resampler) Render(src image.Image, t Transform, canvas image.Point) (*image.NRGBA, error) {
	if canvas.X <= 0 || canvas.Y <= 0 {
		return nil, invalid("canvas %v has zero area", canvas)
	}
	s, err := r.factor()
	if err != nil {
		return nil, err
	}
	img := ToNRGBA(src)
	switch t.Kind {
	case TransformTranslate:
		return translate(img, t.Offset, canvas), nil
	case TransformRotate:
		if math.Mod(t.Angle, 360) == 0 {
			return translate(img, t.Offset, canvas), nil
		}
		return rotate(img, t, canvas, s), nil
	}
	return nil, invalid("transform kind %d", t.Kind)
}

func translate(src *image.NRGBA, off r2.Vec, canvas image.Point) *image.NRGBA {
	dst := NewRaster(canvas.X, canvas.Y)
	if off.X != math.Trunc(off.X) || off.Y != math.Trunc(off.Y) {
		s2d := f64.Aff3{1, 0, off.X, 0, 1, off.Y}
		draw.BiLinear.Transform(dst, s2d, src, src.Bounds(), draw.Over, nil)
		return dst
	}

	// Integral offsets are an exact copy.
	paste(dst, src, image.Pt(int(off.X), int(off.Y)))
	return dst
}

func rotate(src *image.NRGBA, t Transform, canvas image.Point, s int) *image.NRGBA {
	big := image.NewRGBA(image.Rect(0, 0, canvas.X*s, canvas.Y*s))
	m := affineMatrix(t, float64(s))
	s2d := f64.Aff3{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
	}
	draw.BiLinear.Transform(big, s2d, src, src.Bounds(), draw.Src, nil)

	var small image.Image = big
	if s > 1 {
		small = resize.Resize(uint(canvas.X), uint(canvas.Y), big, resize.Lanczos3)
	}
	return unpremultiply(small)
}

// affineMatrix maps source coordinates to supersampled canvas coordinates:
// scale · translate(pivot+offset) · rotate(angle) · translate(-pivot).
func affineMatrix(t Transform, scale float64) *mat.Dense {
	rad := t.Angle * math.Pi / 180
	c, s := math.Cos(rad), math.Sin(rad)
	toPivot := mat.NewDense(3, 3, []float64{
		1, 0, -t.Pivot.X,
		0, 1, -t.Pivot.Y,
		0, 0, 1,
	})
	rot := mat.NewDense(3, 3, []float64{
		c, -s, 0,
		s, c, 0,
		0, 0, 1,
	})
	back := mat.NewDense(3, 3, []float64{
		scale, 0, scale * (t.Pivot.X + t.Offset.X),
		0, scale, scale * (t.Pivot.Y + t.Offset.Y),
		0, 0, 1,
	})
	var m mat.Dense
	m.Product(back, rot, toPivot)
	return &m
}

// unpremultiply converts a resampled image to NRGBA. Lanczos ringing can push
// a colour sample above its alpha; such samples are clamped first.
func unpremultiply(img image.Image) *image.NRGBA {
	rgba, ok := img.(*image.RGBA)
	if !ok {
		return ToNRGBA(img)
	}
	b := rgba.Bounds()
	out := NewRaster(b.Dx(), b.Dy())
	for y := range b.Dy() {
		for x := range b.Dx() {
			s := rgba.PixOffset(b.Min.X+x, b.Min.Y+y)
			a := uint32(rgba.Pix[s+3])
			if a == 0 {
				continue
			}
			d := pixOffset(out.Bounds().Dx(), x, y)
			for c := range 3 {
				v := min(uint32(rgba.Pix[s+c]), a)
				out.Pix[d+c] = uint8((v*255 + a/2) / a)
			}
			out.Pix[d+3] = uint8(a)
		}
	}
	return out
}
