package spritebuilder

import "image"

// Assemble packs equally sized frames into one sheet following layout.
// Frames are pasted in order, so with a negative offset a later frame
// replaces the overlapped part of an earlier one.
func Assemble(frames []*image.NRGBA, layout Layout) (*image.NRGBA, error) {
	if err := layout.Validate(); err != nil {
		return nil, err
	}
	if len(frames) != layout.FrameCount {
		return nil, invalid("got %d frames, layout expects %d", len(frames), layout.FrameCount)
	}
	var size image.Point
	for i, f := range frames {
		if f == nil {
			return nil, invalid("frame %d is nil", i)
		}
		if i == 0 {
			size = f.Bounds().Size()
		} else if f.Bounds().Size() != size {
			return nil, invalid("frame %d is %v, frame 0 is %v", i, f.Bounds().Size(), size)
		}
	}
	sheetSize, err := layout.SheetSize(size)
	if err != nil {
		return nil, err
	}

	sheet := NewRaster(sheetSize.X, sheetSize.Y)
	for i, f := range frames {
		p, err := layout.FramePosition(i, size)
		if err != nil {
			return nil, err
		}
		paste(sheet, f, p)
	}
	return sheet, nil
}
