package spritebuilder

import (
	"image"

	"golang.org/x/image/draw"
)

// NewRaster returns a fully transparent w×h buffer anchored at the origin.
func NewRaster(w, h int) *image.NRGBA {
	return image.NewNRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
}

// Clone returns a deep copy of img re-anchored at the origin with a tight stride.
func Clone(img *image.NRGBA) *image.NRGBA {
	if img == nil {
		return nil
	}
	b := img.Bounds()
	out := NewRaster(b.Dx(), b.Dy())
	rowLen := b.Dx() * 4
	for y := range b.Dy() {
		src := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(out.Pix[y*out.Stride:y*out.Stride+rowLen], img.Pix[src:src+rowLen])
	}
	return out
}

// ToNRGBA converts any decoded image into a fresh origin-anchored NRGBA buffer.
// The input is never aliased.
func ToNRGBA(img image.Image) *image.NRGBA {
	if img == nil {
		return NewRaster(0, 0)
	}
	if n, ok := img.(*image.NRGBA); ok {
		return Clone(n)
	}
	b := img.Bounds()
	out := NewRaster(b.Dx(), b.Dy())
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	return out
}

// paste copies src into dst with its top-left corner at p, replacing the
// covered pixels and clipping to dst.
func paste(dst, src *image.NRGBA, p image.Point) {
	sb := src.Bounds()
	rect := sb.Sub(sb.Min).Add(p).Intersect(dst.Bounds())
	if rect.Empty() {
		return
	}
	rowLen := rect.Dx() * 4
	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		d := dst.PixOffset(rect.Min.X, y)
		s := src.PixOffset(sb.Min.X+rect.Min.X-p.X, sb.Min.Y+y-p.Y)
		copy(dst.Pix[d:d+rowLen], src.Pix[s:s+rowLen])
	}
}

func pixOffset(w, x, y int) int {
	return (y*w + x) * 4
}

func labelOffset(w, x, y int) int {
	return y*w + x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
