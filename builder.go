package spritebuilder

import (
	"fmt"
	"image"
)

// RemoveBackground makes the near-black background of img transparent.
func RemoveBackground(img image.Image, opt MaskOptions) (*image.NRGBA, error) {
	return Mask(img, opt)
}

type NamedComponent struct {
	Name string
	Component
}

// ExtractComponents labels a masked image and names the surviving components
// component_1, component_2, ... in emission order.
func ExtractComponents(masked image.Image, opt ComponentOptions) ([]NamedComponent, error) {
	comps, err := Label(masked, opt)
	if err != nil {
		return nil, err
	}
	out := make([]NamedComponent, len(comps))
	for i, c := range comps {
		out[i] = NamedComponent{Name: fmt.Sprintf("component_%d", i+1), Component: c}
	}
	return out, nil
}

// BuildFaderSheet slides capImg over a copy of guide from opt.Start to opt.End,
// one frame per layout slot. Frames have the size of guide.
func BuildFaderSheet(guide, capImg image.Image, opt FaderOptions) (*image.NRGBA, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	bg := ToNRGBA(guide)
	size := bg.Bounds().Size()
	if _, err := opt.Layout.SheetSize(size); err != nil {
		return nil, err
	}
	steps, err := TranslationFrames(opt.Start, opt.End, opt.Layout.FrameCount)
	if err != nil {
		return nil, err
	}

	fg := ToNRGBA(capImg)
	var rs Resampler
	frames := make([]*image.NRGBA, len(steps))
	for i, st := range steps {
		layer, err := rs.Render(fg, st.Transform, size)
		if err != nil {
			return nil, err
		}
		frame := Clone(bg)
		compositeOver(frame, layer)
		frames[i] = frame
	}
	return Assemble(frames, opt.Layout)
}

// BuildKnobSheet rotates knob about opt.Pivot so that its pointer, drawn at
// opt.PointerAngle, sweeps from opt.StartAngle to opt.EndAngle.
func BuildKnobSheet(knob image.Image, opt KnobOptions) (*image.NRGBA, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	src := ToNRGBA(knob)
	size := src.Bounds().Size()
	if _, err := opt.Layout.SheetSize(size); err != nil {
		return nil, err
	}
	steps, err := RotationFrames(
		opt.StartAngle-opt.PointerAngle,
		opt.EndAngle-opt.PointerAngle,
		opt.Pivot,
		opt.Layout.FrameCount,
		opt.Reverse,
	)
	if err != nil {
		return nil, err
	}

	rs := NewResampler(opt.Supersample)
	frames := make([]*image.NRGBA, len(steps))
	for i, st := range steps {
		if frames[i], err = rs.Render(src, st.Transform, size); err != nil {
			return nil, err
		}
	}
	return Assemble(frames, opt.Layout)
}

// compositeOver alpha-composites src onto dst (source-over, unassociated
// alpha). Both must have the same size.
func compositeOver(dst, src *image.NRGBA) {
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	for y := range h {
		for x := range w {
			s := src.PixOffset(src.Bounds().Min.X+x, src.Bounds().Min.Y+y)
			sa := float64(src.Pix[s+3]) / 255.0
			if sa == 0 {
				continue
			}
			d := dst.PixOffset(dst.Bounds().Min.X+x, dst.Bounds().Min.Y+y)
			if sa == 1 {
				copy(dst.Pix[d:d+4], src.Pix[s:s+4])
				continue
			}
			da := float64(dst.Pix[d+3]) / 255.0
			oneMinusA := 1 - sa
			outA := sa + da*oneMinusA
			for c := range 3 {
				v := (float64(src.Pix[s+c])*sa + float64(dst.Pix[d+c])*da*oneMinusA) / outA
				dst.Pix[d+c] = uint8(max(0, min(255, v+0.5)))
			}
			dst.Pix[d+3] = uint8(max(0, min(255, outA*255+0.5)))
		}
	}
}
