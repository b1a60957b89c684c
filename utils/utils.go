package utils

import (
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder for source scans
	"image/png"
	"log"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/spritebuilder"
)

func ReadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func SaveImage(img image.Image, filename string) error {
	if dir := filepath.Dir(filename); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", filename, err)
	}
	return f.Close()
}

// SaveComponents writes each component as <dir>/<name>.png and returns the
// written paths in order. An empty input writes nothing and logs a hint.
func SaveComponents(comps []spritebuilder.NamedComponent, dir string) ([]string, error) {
	if len(comps) == 0 {
		log.Println("no components found (check threshold/min-area settings)")
		return nil, nil
	}
	paths := make([]string, 0, len(comps))
	for _, c := range comps {
		path := filepath.Join(dir, c.Name+".png")
		if err := SaveImage(c.Image, path); err != nil {
			return paths, err
		}
		log.Printf("saved %s (%s px, %dx%d at %d,%d)",
			path, humanize.Comma(int64(c.Area)),
			c.Bounds.Dx(), c.Bounds.Dy(), c.Bounds.Min.X, c.Bounds.Min.Y)
		paths = append(paths, path)
	}
	return paths, nil
}

// SaveSheet writes a sprite sheet and logs its dimensions and encoded size.
func SaveSheet(sheet image.Image, filename string) error {
	if err := SaveImage(sheet, filename); err != nil {
		return err
	}
	info, err := os.Stat(filename)
	if err != nil {
		return err
	}
	b := sheet.Bounds()
	log.Printf("saved %s (%dx%d, %s)", filename, b.Dx(), b.Dy(), humanize.Bytes(uint64(max(info.Size(), 0))))
	return nil
}

// SavePalette writes one tileSize square per colour, left to right.
func SavePalette(palette []colorful.Color, tileSize int, filename string) error {
	if len(palette) == 0 {
		return fmt.Errorf("empty palette")
	}
	if tileSize <= 0 {
		tileSize = 64
	}

	w := tileSize * len(palette)
	h := tileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for i, c := range palette {
		r, g, b := c.Clamped().RGB255()
		x0 := i * tileSize
		x1 := x0 + tileSize
		for y := range h {
			for x := x0; x < x1; x++ {
				img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: 255})
			}
		}
	}

	return SaveImage(img, filename)
}

// Swatches collects the representative colour of every component in order.
func Swatches(comps []spritebuilder.NamedComponent) []colorful.Color {
	out := make([]colorful.Color, len(comps))
	for i, c := range comps {
		out[i] = c.Swatch
	}
	return out
}
