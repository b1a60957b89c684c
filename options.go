package spritebuilder

import (
	"errors"
	"fmt"
	"image"
	"strings"

	"gonum.org/v1/gonum/spatial/r2"
)

// ErrInvalidParameter is wrapped by every option validation failure.
var ErrInvalidParameter = errors.New("invalid parameter")

const (
	MinFrames = 2
	MaxFrames = 256

	MaxThreshold     = 255
	DefaultThreshold = 10
	DefaultMinArea   = 2000

	DefaultSupersample = 4
	MaxSupersample     = 8
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalidParameter}, args...)...)
}

// ============ MASK ============

type MaskMode int

const (
	// Background when max(R,G,B) <= threshold.
	MaskMaxChannel MaskMode = iota
	// Background when the Rec.601 grey value <= threshold.
	MaskLuminance
)

func (m MaskMode) String() string {
	switch m {
	case MaskLuminance:
		return "luminance"
	default:
		return "max"
	}
}

func ParseMaskMode(s string) (MaskMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "max":
		return MaskMaxChannel, nil
	case "luminance", "luma":
		return MaskLuminance, nil
	}
	return 0, invalid("mask mode %q", s)
}

type MaskOptions struct {
	// Pixels at or below this darkness are background. Range [0,255].
	// Higher values remove more near-black detail.
	Threshold int
	Mode      MaskMode
}

func DefaultMaskOptions() MaskOptions {
	return MaskOptions{Threshold: DefaultThreshold}
}

func (o MaskOptions) Validate() error {
	if o.Threshold < 0 || o.Threshold > MaxThreshold {
		return invalid("threshold %d outside [0,%d]", o.Threshold, MaxThreshold)
	}
	if o.Mode != MaskMaxChannel && o.Mode != MaskLuminance {
		return invalid("mask mode %d", o.Mode)
	}
	return nil
}

// ============ COMPONENTS ============

type ComponentOptions struct {
	// Components with fewer pixels are dropped. Ideal start: 2000 for
	// full-size panel scans, a few hundred for small crops.
	MinArea int
	// Run a 3x3 morphological opening before labelling. Removes one-pixel
	// specks and hairline bridges, but the union of components is then no
	// longer the exact input foreground.
	Despeckle bool
	// Compute Component.Swatch, picked with SwatchMethod.
	Swatches     bool
	SwatchMethod PaletteMethod
}

func DefaultComponentOptions() ComponentOptions {
	return ComponentOptions{
		MinArea:      DefaultMinArea,
		Swatches:     true,
		SwatchMethod: PaletteMethodDominantColor,
	}
}

// ComponentOptionsFromSize keeps the default min area from swallowing every
// component of a small source: it is capped at 1% of the image area.
func ComponentOptionsFromSize(size image.Point) ComponentOptions {
	opt := DefaultComponentOptions()
	if size.X <= 0 || size.Y <= 0 {
		return opt
	}
	opt.MinArea = clampInt(size.X*size.Y/100, 1, DefaultMinArea)
	return opt
}

func (o ComponentOptions) Validate() error {
	if o.MinArea < 0 {
		return invalid("min area %d < 0", o.MinArea)
	}
	if o.SwatchMethod != PaletteMethodDominantColor && o.SwatchMethod != PaletteMethodKMeans {
		return invalid("palette method %d", o.SwatchMethod)
	}
	return nil
}

// ============ LAYOUT ============

type Arrangement int

const (
	Horizontal Arrangement = iota
	Vertical
	Grid
)

func (a Arrangement) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Grid:
		return "grid"
	default:
		return "horizontal"
	}
}

func ParseArrangement(s string) (Arrangement, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "horizontal":
		return Horizontal, nil
	case "vertical":
		return Vertical, nil
	case "grid":
		return Grid, nil
	}
	return 0, invalid("arrangement %q", s)
}

// Layout describes how frames are packed into a sprite sheet.
type Layout struct {
	FrameCount  int
	Arrangement Arrangement
	// Only used by Grid. Must be >= 1.
	Columns int
	// Pixels between neighbouring frames. Negative values overlap frames.
	Offset int
}

func DefaultLayout() Layout {
	return Layout{FrameCount: 64, Arrangement: Vertical, Columns: 8}
}

func (l Layout) Validate() error {
	if l.FrameCount < MinFrames || l.FrameCount > MaxFrames {
		return invalid("frame count %d outside [%d,%d]", l.FrameCount, MinFrames, MaxFrames)
	}
	switch l.Arrangement {
	case Horizontal, Vertical:
	case Grid:
		if l.Columns < 1 {
			return invalid("grid columns %d < 1", l.Columns)
		}
	default:
		return invalid("arrangement %d", l.Arrangement)
	}
	return nil
}

// cells returns the number of frame columns and rows of the sheet.
func (l Layout) cells() (cols, rows int) {
	switch l.Arrangement {
	case Vertical:
		return 1, l.FrameCount
	case Grid:
		return l.Columns, (l.FrameCount + l.Columns - 1) / l.Columns
	default:
		return l.FrameCount, 1
	}
}

// SheetSize returns the exact sheet dimensions for frames of the given size.
func (l Layout) SheetSize(frame image.Point) (image.Point, error) {
	if err := l.Validate(); err != nil {
		return image.Point{}, err
	}
	if frame.X <= 0 || frame.Y <= 0 {
		return image.Point{}, invalid("frame size %v has zero area", frame)
	}
	cols, rows := l.cells()
	size := image.Pt(
		cols*frame.X+(cols-1)*l.Offset,
		rows*frame.Y+(rows-1)*l.Offset,
	)
	if size.X <= 0 || size.Y <= 0 {
		return image.Point{}, invalid("offset %d collapses sheet to %v", l.Offset, size)
	}
	return size, nil
}

// FramePosition returns the top-left corner of frame i on the sheet.
func (l Layout) FramePosition(i int, frame image.Point) (image.Point, error) {
	if err := l.Validate(); err != nil {
		return image.Point{}, err
	}
	if i < 0 || i >= l.FrameCount {
		return image.Point{}, invalid("frame index %d outside [0,%d)", i, l.FrameCount)
	}
	var col, row int
	switch l.Arrangement {
	case Vertical:
		row = i
	case Grid:
		col, row = i%l.Columns, i/l.Columns
	default:
		col = i
	}
	return image.Pt(col*(frame.X+l.Offset), row*(frame.Y+l.Offset)), nil
}

// ============ SHEETS ============

type FaderOptions struct {
	// Cap position (top-left, guide coordinates) at the first and last frame.
	Start, End r2.Vec
	Layout     Layout
}

func DefaultFaderOptions() FaderOptions {
	return FaderOptions{Layout: DefaultLayout()}
}

func (o FaderOptions) Validate() error {
	return o.Layout.Validate()
}

type KnobOptions struct {
	// Rotation centre in knob image coordinates. May lie outside the image.
	Pivot r2.Vec
	// Target pointer angles in degrees, 0 = right, clockwise on screen.
	StartAngle, EndAngle float64
	// Angle the pointer already has in the source image.
	PointerAngle float64
	// Take the other arc between StartAngle and EndAngle.
	Reverse bool
	// Linear supersampling factor for rotation. Range [1,8].
	Supersample int
	Layout      Layout
}

// DefaultKnobOptions matches the usual 270° sweep of a synth knob with the
// pointer drawn at -135°.
func DefaultKnobOptions(size image.Point) KnobOptions {
	return KnobOptions{
		Pivot:        r2.Vec{X: float64(size.X) / 2, Y: float64(size.Y) / 2},
		StartAngle:   -225,
		EndAngle:     45,
		PointerAngle: -135,
		Supersample:  DefaultSupersample,
		Layout:       DefaultLayout(),
	}
}

func (o KnobOptions) Validate() error {
	if o.Supersample < 1 || o.Supersample > MaxSupersample {
		return invalid("supersample %d outside [1,%d]", o.Supersample, MaxSupersample)
	}
	return o.Layout.Validate()
}
