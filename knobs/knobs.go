// Package knobs renders sample rotary knobs for trying out knob sheets.
// Every factory is pure and returns a fresh image.
package knobs

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/setanarut/spritebuilder"
)

const (
	MinSize = 16

	// Upper left, the pointer angle spritebuilder.DefaultKnobOptions expects.
	DefaultPointerAngle = -135.0

	glowPadding = 20
)

var (
	NeonCyan    = colorful.Color{R: 0, G: 229.0 / 255, B: 1}
	NeonMagenta = colorful.Color{R: 1, G: 0, B: 128.0 / 255}
	NeonGreen   = colorful.Color{R: 0, G: 1, B: 100.0 / 255}
)

type Style int

const (
	StyleMetallic Style = iota
	StyleNeon
	StyleCyberpunk
	StyleSimple
)

func (s Style) String() string {
	switch s {
	case StyleNeon:
		return "neon"
	case StyleCyberpunk:
		return "cyberpunk"
	case StyleSimple:
		return "simple"
	default:
		return "metallic"
	}
}

func ParseStyle(s string) (Style, error) {
	switch strings.ToLower(s) {
	case "metallic":
		return StyleMetallic, nil
	case "neon":
		return StyleNeon, nil
	case "cyberpunk":
		return StyleCyberpunk, nil
	case "simple":
		return StyleSimple, nil
	}
	return 0, fmt.Errorf("%w: knob style %q", spritebuilder.ErrInvalidParameter, s)
}

// New renders a size×size knob of the given style with its pointer at
// pointerAngle degrees (0 = right, clockwise on screen).
func New(style Style, size int, pointerAngle float64) (*image.NRGBA, error) {
	switch style {
	case StyleNeon:
		return Neon(size, pointerAngle, NeonCyan)
	case StyleCyberpunk:
		return Cyberpunk(size, pointerAngle)
	case StyleSimple:
		return Simple(size, pointerAngle)
	case StyleMetallic:
		return Metallic(size, pointerAngle)
	}
	return nil, fmt.Errorf("%w: knob style %d", spritebuilder.ErrInvalidParameter, style)
}

func checkSize(size int) error {
	if size < MinSize {
		return fmt.Errorf("%w: knob size %d < %d", spritebuilder.ErrInvalidParameter, size, MinSize)
	}
	return nil
}

// Metallic is a grey gradient body with a dark rim and a red pointer.
func Metallic(size int, pointerAngle float64) (*image.NRGBA, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	c := newCanvas(size)
	ctr := c.center()
	outer := float64(size/2 - 4)
	inner := outer - 8
	pointer := inner - 6

	c.disc(ctr, ctr, outer, nrgba(colorful.Color{R: 40.0 / 255, G: 40.0 / 255, B: 45.0 / 255}, 255))
	c.ring(ctr, ctr, outer-1, 2, nrgba(colorful.Color{R: 20.0 / 255, G: 20.0 / 255, B: 25.0 / 255}, 255))

	// Concentric discs, lighter towards the rim.
	dark := colorful.Color{R: 80.0 / 255, G: 80.0 / 255, B: 85.0 / 255}
	light := colorful.Color{R: 140.0 / 255, G: 140.0 / 255, B: 145.0 / 255}
	for r := inner; r > 0; r -= 2 {
		c.disc(ctr, ctr, r, nrgba(dark.BlendRgb(light, r/inner), 255))
	}

	hl := inner / 3
	c.disc(ctr-hl+2.5, ctr-hl+2.5, 12.5, nrgba(colorful.Color{R: 180.0 / 255, G: 180.0 / 255, B: 185.0 / 255}, 100))

	shadow := nrgba(colorful.Color{R: 30.0 / 255, G: 30.0 / 255, B: 35.0 / 255}, 150)
	drawPointerOffset(c, pointerAngle, 10, pointer, 4, 2, shadow)
	c.radial(pointerAngle, 10, pointer, 3, nrgba(colorful.Color{R: 1, G: 80.0 / 255, B: 80.0 / 255}, 255))
	c.radial(pointerAngle, 10, pointer, 1, nrgba(colorful.Color{R: 1, G: 150.0 / 255, B: 150.0 / 255}, 255))

	c.disc(ctr, ctr, 8, nrgba(colorful.Color{R: 50.0 / 255, G: 50.0 / 255, B: 55.0 / 255}, 255))
	return spritebuilder.ToNRGBA(c.img), nil
}

// Neon is a dark disc with a glowing ring and pointer in col.
func Neon(size int, pointerAngle float64, col colorful.Color) (*image.NRGBA, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	full := size + glowPadding*2
	c := newCanvas(full)
	ctr := c.center()
	outer := float64(size/2 - 4)
	inner := outer - 6
	pointer := inner - 8

	c.disc(ctr, ctr, outer+2, nrgba(colorful.Color{R: 15.0 / 255, G: 15.0 / 255, B: 20.0 / 255}, 255))
	c.ring(ctr, ctr, outer-1.5, 3, nrgba(col, 255))
	c.disc(ctr, ctr, inner, nrgba(colorful.Color{R: 20.0 / 255, G: 20.0 / 255, B: 25.0 / 255}, 255))

	for glow := 8; glow > 0; glow -= 2 {
		c.radial(pointerAngle, 12, pointer, float64(glow+4), nrgba(col, uint8(50-glow*5)))
	}
	c.radial(pointerAngle, 12, pointer, 3, nrgba(col, 255))
	c.radial(pointerAngle, 12, pointer, 1, nrgba(colorful.Color{R: 1, G: 1, B: 1}, 200))
	c.disc(ctr, ctr, 5, nrgba(col, 255))

	return cropPadding(withGlow(c.img, 4), size), nil
}

// Cyberpunk is a dark disc with thin magenta and cyan rings, tick marks and a
// cyan pointer.
func Cyberpunk(size int, pointerAngle float64) (*image.NRGBA, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	full := size + glowPadding*2
	c := newCanvas(full)
	ctr := c.center()
	outer := float64(size/2 - 6)
	inner := outer - 15
	pointer := inner - 5

	cyan := colorful.Color{R: 0, G: 1, B: 1}
	magenta := colorful.Color{R: 1, G: 0, B: 128.0 / 255}

	c.disc(ctr, ctr, outer+2, nrgba(colorful.Color{R: 10.0 / 255, G: 10.0 / 255, B: 15.0 / 255}, 255))
	c.ring(ctr, ctr, outer-1, 2, nrgba(magenta, 180))
	c.ring(ctr, ctr, inner-0.5, 1, nrgba(cyan, 150))

	for angle := -135; angle <= 135; angle += 30 {
		c.radial(float64(angle), outer-4, outer+2, 1, nrgba(magenta, 200))
	}

	for glow := 6; glow > 0; glow -= 2 {
		c.radial(pointerAngle, 8, pointer, float64(glow+2), nrgba(cyan, uint8(40-glow*5)))
	}
	c.radial(pointerAngle, 8, pointer, 2, nrgba(cyan, 255))
	c.disc(ctr, ctr, 3, nrgba(cyan, 255))

	return cropPadding(withGlow(c.img, 3), size), nil
}

// Simple is a flat grey disc with a white pointer.
func Simple(size int, pointerAngle float64) (*image.NRGBA, error) {
	if err := checkSize(size); err != nil {
		return nil, err
	}
	c := newCanvas(size)
	ctr := c.center()
	outer := float64(size/2 - 4)
	pointer := outer - 12

	c.disc(ctr, ctr, outer, nrgba(colorful.Color{R: 60.0 / 255, G: 60.0 / 255, B: 65.0 / 255}, 255))
	c.ring(ctr, ctr, outer-1, 2, nrgba(colorful.Color{R: 80.0 / 255, G: 80.0 / 255, B: 85.0 / 255}, 255))
	c.radial(pointerAngle, 0, pointer, 3, nrgba(colorful.Color{R: 1, G: 1, B: 1}, 255))
	c.disc(ctr, ctr, 6, nrgba(colorful.Color{R: 40.0 / 255, G: 40.0 / 255, B: 45.0 / 255}, 255))
	return spritebuilder.ToNRGBA(c.img), nil
}

// drawPointerOffset draws a radial segment shifted by (d, d), used for drop
// shadows.
func drawPointerOffset(c *canvas, deg, r1, r2, width, d float64, col color.Color) {
	ctr := c.center()
	x1, y1 := polar(ctr, deg, r1)
	x2, y2 := polar(ctr, deg, r2)
	c.line(x1+d, y1+d, x2+d, y2+d, width, col)
}

func cropPadding(img *image.RGBA, size int) *image.NRGBA {
	r := image.Rect(glowPadding, glowPadding, glowPadding+size, glowPadding+size)
	return spritebuilder.ToNRGBA(img.SubImage(r))
}
