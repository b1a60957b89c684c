package spritebuilder

import "image"

// Mask returns a copy of img whose alpha channel is a hard cutoff on darkness:
// background pixels get A=0, everything else A=255. Colour channels are kept
// as they are and any alpha already present in img is ignored.
func Mask(img image.Image, opt MaskOptions) (*image.NRGBA, error) {
	if err := opt.Validate(); err != nil {
		return nil, err
	}
	out := ToNRGBA(img)
	t := uint32(opt.Threshold)
	pix := out.Pix
	for i := 0; i+3 < len(pix); i += 4 {
		r, g, b := uint32(pix[i]), uint32(pix[i+1]), uint32(pix[i+2])
		var v uint32
		if opt.Mode == MaskLuminance {
			v = luma(r, g, b)
		} else {
			v = max(r, g, b)
		}
		if v <= t {
			pix[i+3] = 0
		} else {
			pix[i+3] = 255
		}
	}
	return out, nil
}

// luma is the Rec.601 grey value in fixed point, rounded to nearest.
func luma(r, g, b uint32) uint32 {
	return (r*4899 + g*9617 + b*1868 + 1<<13) >> 14
}

// foreground returns one flag per pixel, true where alpha > 0.
func foreground(img *image.NRGBA) []bool {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	fg := make([]bool, w*h)
	for y := range h {
		row := img.PixOffset(b.Min.X, b.Min.Y+y)
		for x := range w {
			fg[labelOffset(w, x, y)] = img.Pix[row+x*4+3] > 0
		}
	}
	return fg
}
