package knobs

import (
	"image"
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// Cubic Bézier handle length for a quarter circle.
const kappa = 0.5522847498

// canvas is a premultiplied drawing surface; every shape is source-over.
type canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

func newCanvas(size int) *canvas {
	return &canvas{
		img: image.NewRGBA(image.Rect(0, 0, size, size)),
		z:   vector.NewRasterizer(size, size),
	}
}

func (c *canvas) center() float64 {
	return float64(c.img.Bounds().Dx()) / 2
}

func (c *canvas) fill(col color.Color) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
	b := c.img.Bounds()
	c.z.Reset(b.Dx(), b.Dy())
}

func (c *canvas) disc(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	circlePath(c.z, cx, cy, r, false)
	c.fill(col)
}

// ring strokes a circle of radius r with the given width centred on it.
func (c *canvas) ring(cx, cy, r, width float64, col color.Color) {
	outer, inner := r+width/2, r-width/2
	circlePath(c.z, cx, cy, outer, false)
	if inner > 0 {
		circlePath(c.z, cx, cy, inner, true)
	}
	c.fill(col)
}

// line draws a butt-capped segment of the given width.
func (c *canvas) line(x1, y1, x2, y2, width float64, col color.Color) {
	dx, dy := x2-x1, y2-y1
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}
	nx, ny := -dy/l*width/2, dx/l*width/2
	c.z.MoveTo(f32(x1+nx), f32(y1+ny))
	c.z.LineTo(f32(x2+nx), f32(y2+ny))
	c.z.LineTo(f32(x2-nx), f32(y2-ny))
	c.z.LineTo(f32(x1-nx), f32(y1-ny))
	c.z.ClosePath()
	c.fill(col)
}

// radial draws a segment along angle deg (0 = right, clockwise on screen)
// between radii r1 and r2 from the canvas centre.
func (c *canvas) radial(deg, r1, r2, width float64, col color.Color) {
	ctr := c.center()
	x1, y1 := polar(ctr, deg, r1)
	x2, y2 := polar(ctr, deg, r2)
	c.line(x1, y1, x2, y2, width, col)
}

// polar returns the point at distance r along angle deg from (ctr, ctr).
func polar(ctr, deg, r float64) (x, y float64) {
	s, co := math.Sincos(deg * math.Pi / 180)
	return ctr + r*co, ctr + r*s
}

func circlePath(z *vector.Rasterizer, cx, cy, r float64, reverse bool) {
	k := kappa * r
	z.MoveTo(f32(cx+r), f32(cy))
	if !reverse {
		z.CubeTo(f32(cx+r), f32(cy+k), f32(cx+k), f32(cy+r), f32(cx), f32(cy+r))
		z.CubeTo(f32(cx-k), f32(cy+r), f32(cx-r), f32(cy+k), f32(cx-r), f32(cy))
		z.CubeTo(f32(cx-r), f32(cy-k), f32(cx-k), f32(cy-r), f32(cx), f32(cy-r))
		z.CubeTo(f32(cx+k), f32(cy-r), f32(cx+r), f32(cy-k), f32(cx+r), f32(cy))
	} else {
		z.CubeTo(f32(cx+r), f32(cy-k), f32(cx+k), f32(cy-r), f32(cx), f32(cy-r))
		z.CubeTo(f32(cx-k), f32(cy-r), f32(cx-r), f32(cy-k), f32(cx-r), f32(cy))
		z.CubeTo(f32(cx-r), f32(cy+k), f32(cx-k), f32(cy+r), f32(cx), f32(cy+r))
		z.CubeTo(f32(cx+k), f32(cy+r), f32(cx+r), f32(cy+k), f32(cx+r), f32(cy))
	}
	z.ClosePath()
}

// withGlow composites img over a blurred copy of itself.
func withGlow(img *image.RGBA, radius int) *image.RGBA {
	out := boxBlur(img, radius)
	draw.Draw(out, out.Bounds(), img, img.Bounds().Min, draw.Over)
	return out
}

// boxBlur approximates a gaussian with three separable box passes on
// premultiplied samples. Pixels beyond the border are transparent.
func boxBlur(img *image.RGBA, radius int) *image.RGBA {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	cur := make([]float64, w*h*4)
	for y := range h {
		for x := range w {
			s := img.PixOffset(b.Min.X+x, b.Min.Y+y)
			for ch := range 4 {
				cur[(y*w+x)*4+ch] = float64(img.Pix[s+ch])
			}
		}
	}
	tmp := make([]float64, len(cur))
	for range 3 {
		boxPass(cur, tmp, w, h, radius, 4, w*4)
		boxPass(tmp, cur, h, w, radius, w*4, 4)
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, v := range cur {
		out.Pix[i] = uint8(max(0, min(255, v+0.5)))
	}
	return out
}

// boxPass averages n samples along lines of length n, step apart, for each of
// the count lines that start stride apart.
func boxPass(src, dst []float64, n, count, radius, step, stride int) {
	norm := 1 / float64(2*radius+1)
	for line := range count {
		base := line * stride
		for ch := range 4 {
			var sum float64
			for i := 0; i <= radius && i < n; i++ {
				sum += src[base+i*step+ch]
			}
			for i := range n {
				dst[base+i*step+ch] = sum * norm
				if j := i + radius + 1; j < n {
					sum += src[base+j*step+ch]
				}
				if j := i - radius; j >= 0 {
					sum -= src[base+j*step+ch]
				}
			}
		}
	}
}

func nrgba(c colorful.Color, a uint8) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: a}
}

func f32(v float64) float32 {
	return float32(v)
}
