package spritebuilder

import (
	"image"
	"image/color"
	"math"
	"slices"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/clusters"
	"github.com/muesli/kmeans"
)

type PaletteMethod int

const (
	PaletteMethodDominantColor PaletteMethod = iota
	PaletteMethodKMeans
)

func (m PaletteMethod) String() string {
	switch m {
	case PaletteMethodKMeans:
		return "kmeans"
	default:
		return "dominantcolor"
	}
}

func ParsePaletteMethod(s string) (PaletteMethod, error) {
	switch s {
	case "", "dominantcolor", "dominant":
		return PaletteMethodDominantColor, nil
	case "kmeans":
		return PaletteMethodKMeans, nil
	}
	return 0, invalid("palette method %q", s)
}

type weightedColor struct {
	Col    colorful.Color
	Weight float64
}

// Swatch returns the most representative visible colour of img, or the zero
// colour when img has no visible pixel.
func Swatch(img image.Image, method PaletteMethod) colorful.Color {
	p := ExtractPalette(img, 1, method)
	if len(p) == 0 {
		return colorful.Color{}
	}
	return p[0]
}

// SortPaletteByBrightness orders colors from darkest to brightest.
func SortPaletteByBrightness(palette []colorful.Color) {
	slices.SortFunc(palette, func(a, b colorful.Color) int {
		ri, gi, bi := a.LinearRgb()
		rj, gj, bj := b.LinearRgb()
		yi := 0.2126*ri + 0.7152*gi + 0.0722*bi
		yj := 0.2126*rj + 0.7152*gj + 0.0722*bj
		if yi < yj {
			return -1
		}
		if yi > yj {
			return 1
		}
		return 0
	})
}

// ExtractPalette picks k diverse colours among the visible pixels of img.
// Transparent pixels never contribute.
func ExtractPalette(img image.Image, k int, method PaletteMethod) []colorful.Color {
	visible := packVisible(img)
	if visible == nil {
		return nil
	}
	switch method {
	case PaletteMethodKMeans:
		if p := ExtractKMeansPalette(visible, k); len(p) != 0 {
			return p
		}
		return ExtractDominantPalette(visible, k)
	default:
		return ExtractDominantPalette(visible, k)
	}
}

// packVisible copies every pixel with alpha > 0 into a near-square opaque
// image, so that colour extractors unaware of alpha only see sprite pixels.
// The last row is padded by repeating pixels from the start.
func packVisible(img image.Image) *image.NRGBA {
	if img == nil {
		return nil
	}
	src := ToNRGBA(img)
	var px []color.NRGBA
	for i := 0; i+3 < len(src.Pix); i += 4 {
		if src.Pix[i+3] == 0 {
			continue
		}
		px = append(px, color.NRGBA{R: src.Pix[i], G: src.Pix[i+1], B: src.Pix[i+2], A: 255})
	}
	if len(px) == 0 {
		return nil
	}
	side := int(math.Ceil(math.Sqrt(float64(len(px)))))
	rows := (len(px) + side - 1) / side
	out := NewRaster(side, rows)
	for i := range side * rows {
		out.SetNRGBA(i%side, i/side, px[i%len(px)])
	}
	return out
}

func ExtractDominantPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	nCandidates := max(24, k*8)
	candidates := dominantcolor.FindWeight(img, nCandidates)
	if len(candidates) == 0 {
		candidates = append(candidates, dominantcolor.Color{
			RGBA:   color.RGBA{R: 128, G: 128, B: 128, A: 255},
			Weight: 1.0,
		})
	}

	weighted := make([]weightedColor, 0, len(candidates))
	for _, c := range candidates {
		col, _ := colorful.MakeColor(c.RGBA)
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		weighted = append(weighted, weightedColor{Col: col.Clamped(), Weight: w})
	}
	return SelectDiverseWeightedColors(weighted, k)
}

// SelectDiverseWeightedColors greedily picks k colours, seeded with the
// heaviest one, maximising Lab distance to the picks so far scaled by weight.
func SelectDiverseWeightedColors(cands []weightedColor, k int) []colorful.Color {
	if k <= 0 || len(cands) == 0 {
		return nil
	}
	type item struct {
		col colorful.Color
		lab [3]float64
		w   float64
	}
	items := make([]item, 0, len(cands))
	maxW := 0.0
	for _, c := range cands {
		col := c.Col.Clamped()
		l, a, b := col.Lab()
		w := c.Weight
		if w <= 0 {
			w = 1e-6
		}
		maxW = max(maxW, w)
		items = append(items, item{col: col, lab: [3]float64{l, a, b}, w: w})
	}
	k = min(k, len(items))

	selectedIdx := make([]int, 0, k)
	selected := make([]bool, len(items))

	bestSeed := 0
	for i := 1; i < len(items); i++ {
		if items[i].w > items[bestSeed].w {
			bestSeed = i
		}
	}
	selectedIdx = append(selectedIdx, bestSeed)
	selected[bestSeed] = true

	for len(selectedIdx) < k {
		bestIdx := -1
		bestScore := -1.0
		for i := range items {
			if selected[i] {
				continue
			}
			minD2 := math.MaxFloat64
			for _, s := range selectedIdx {
				d0 := items[i].lab[0] - items[s].lab[0]
				d1 := items[i].lab[1] - items[s].lab[1]
				d2 := items[i].lab[2] - items[s].lab[2]
				minD2 = min(minD2, d0*d0+d1*d1+d2*d2)
			}
			normW := items[i].w / maxW
			score := math.Sqrt(minD2) * (0.55 + 0.45*math.Sqrt(normW))
			if score > bestScore {
				bestScore = score
				bestIdx = i
			}
		}
		if bestIdx < 0 {
			break
		}
		selected[bestIdx] = true
		selectedIdx = append(selectedIdx, bestIdx)
	}

	out := make([]colorful.Color, 0, len(selectedIdx))
	for _, idx := range selectedIdx {
		out = append(out, items[idx].col)
	}
	return out
}

func ExtractKMeansPalette(img image.Image, k int) []colorful.Color {
	if k <= 0 {
		return nil
	}

	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	if width == 0 || height == 0 {
		return nil
	}

	// Subsample to keep kmeans tractable on large sprites.
	maxSamples := 12000
	step := 1
	if width*height > maxSamples {
		step = int(math.Sqrt(float64(width*height)/float64(maxSamples))) + 1
	}

	dataset := make(clusters.Observations, 0, min(width*height, maxSamples))
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r16, g16, b16, a16 := img.At(x, y).RGBA()
			if a16 == 0 {
				continue
			}
			dataset = append(dataset, clusters.Coordinates{
				float64(r16) / float64(a16),
				float64(g16) / float64(a16),
				float64(b16) / float64(a16),
			})
		}
	}
	if len(dataset) == 0 {
		return nil
	}

	workK := min(max(k*4, k+2), len(dataset))
	km := kmeans.New()
	cc, err := km.Partition(dataset, workK)
	if err != nil || len(cc) == 0 {
		return nil
	}

	// Most populated clusters first.
	slices.SortFunc(cc, func(a, b clusters.Cluster) int {
		return len(b.Observations) - len(a.Observations)
	})

	weighted := make([]weightedColor, 0, len(cc))
	for _, c := range cc {
		if len(c.Center) < 3 {
			continue
		}
		col := colorful.Color{R: c.Center[0], G: c.Center[1], B: c.Center[2]}.Clamped()
		weighted = append(weighted, weightedColor{Col: col, Weight: max(float64(len(c.Observations)), 1e-6)})
	}
	return SelectDiverseWeightedColors(weighted, k)
}
