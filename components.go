package spritebuilder

import (
	"image"

	"github.com/lucasb-eyer/go-colorful"
)

// Component is one 8-connected foreground region of a masked image.
type Component struct {
	// 1-based, in discovery order (row-major scan of the first pixel).
	Label int
	Area  int
	// Bounding box in source coordinates. Max is exclusive.
	Bounds image.Rectangle
	// Crop of Bounds anchored at the origin. Pixels of other components
	// inside the box are fully transparent.
	Image *image.NRGBA
	// Zero unless ComponentOptions.Swatches is set.
	Swatch colorful.Color
}

// Label partitions the foreground (alpha > 0) of img into 8-connected
// components and returns those with at least opt.MinArea pixels. The order is
// deterministic for identical input. No surviving component is not an error.
func Label(img image.Image, opt ComponentOptions) ([]Component, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	src := ToNRGBA(img)
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	if w == 0 || h == 0 {
		return nil, nil
	}

	fg := foreground(src)
	if opt.Despeckle {
		fg = open3x3(fg, w, h)
	}
	labels, regions := labelRegions(fg, w, h)

	var out []Component
	for i, r := range regions {
		if r.area < opt.MinArea {
			continue
		}
		id := int32(i + 1)
		c := Component{
			Label:  int(id),
			Area:   r.area,
			Bounds: r.bounds,
			Image:  extractRegion(src, labels, id, r.bounds),
		}
		if opt.Swatches {
			c.Swatch = Swatch(c.Image, opt.SwatchMethod)
		}
		out = append(out, c)
	}
	return out, nil
}

type region struct {
	area   int
	bounds image.Rectangle
}

// labelRegions flood-fills every 8-connected run of true flags. labels holds
// 0 for background and i+1 for pixels of regions[i].
func labelRegions(fg []bool, w, h int) ([]int32, []region) {
	labels := make([]int32, w*h)
	var regions []region
	var stack []int

	for start := range fg {
		if !fg[start] || labels[start] != 0 {
			continue
		}
		id := int32(len(regions) + 1)
		sx, sy := start%w, start/w
		r := region{bounds: image.Rect(sx, sy, sx+1, sy+1)}

		labels[start] = id
		stack = append(stack[:0], start)
		for len(stack) > 0 {
			p := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			px, py := p%w, p/w
			r.area++
			r.bounds.Min.X = min(r.bounds.Min.X, px)
			r.bounds.Min.Y = min(r.bounds.Min.Y, py)
			r.bounds.Max.X = max(r.bounds.Max.X, px+1)
			r.bounds.Max.Y = max(r.bounds.Max.Y, py+1)

			for dy := -1; dy <= 1; dy++ {
				ny := py + dy
				if ny < 0 || ny >= h {
					continue
				}
				for dx := -1; dx <= 1; dx++ {
					nx := px + dx
					if (dx == 0 && dy == 0) || nx < 0 || nx >= w {
						continue
					}
					n := labelOffset(w, nx, ny)
					if fg[n] && labels[n] == 0 {
						labels[n] = id
						stack = append(stack, n)
					}
				}
			}
		}
		regions = append(regions, r)
	}
	return labels, regions
}

func extractRegion(src *image.NRGBA, labels []int32, id int32, bounds image.Rectangle) *image.NRGBA {
	w := src.Bounds().Dx()
	out := NewRaster(bounds.Dx(), bounds.Dy())
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if labels[labelOffset(w, x, y)] != id {
				continue
			}
			s := src.PixOffset(x, y)
			d := pixOffset(out.Bounds().Dx(), x-bounds.Min.X, y-bounds.Min.Y)
			copy(out.Pix[d:d+4], src.Pix[s:s+4])
		}
	}
	return out
}

// open3x3 is an erosion followed by a dilation with a 3x3 square. Pixels
// beyond the border are ignored by both passes, so the border itself never
// erodes a component.
func open3x3(fg []bool, w, h int) []bool {
	return morph3x3(morph3x3(fg, w, h, true), w, h, false)
}

// morph3x3 erodes (a pixel survives when no neighbour is background) or
// dilates (a pixel is set when any neighbour is foreground).
func morph3x3(fg []bool, w, h int, erode bool) []bool {
	out := make([]bool, len(fg))
	for y := range h {
		for x := range w {
			hit := erode
		scan:
			for ny := max(y-1, 0); ny <= min(y+1, h-1); ny++ {
				for nx := max(x-1, 0); nx <= min(x+1, w-1); nx++ {
					if fg[labelOffset(w, nx, ny)] != erode {
						hit = !erode
						break scan
					}
				}
			}
			out[labelOffset(w, x, y)] = hit
		}
	}
	return out
}
