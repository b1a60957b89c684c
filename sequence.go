package spritebuilder

import "gonum.org/v1/gonum/spatial/r2"

type TransformKind int

const (
	TransformTranslate TransformKind = iota
	TransformRotate
)

// Transform places a source image on a frame canvas. Translate uses Offset;
// Rotate turns the source by Angle degrees (clockwise on screen) about Pivot,
// given in source coordinates.
type Transform struct {
	Kind   TransformKind
	Offset r2.Vec
	Angle  float64
	Pivot  r2.Vec
}

type Frame struct {
	Index     int
	Transform Transform
}

// TranslationFrames interpolates an offset linearly from start to end.
// Frame 0 is exactly start and the last frame exactly end.
func TranslationFrames(start, end r2.Vec, frameCount int) ([]Frame, error) {
	if err := checkFrameCount(frameCount); err != nil {
		return nil, err
	}
	frames := make([]Frame, frameCount)
	for i := range frames {
		t := frameT(i, frameCount)
		frames[i] = Frame{
			Index: i,
			Transform: Transform{
				Kind:   TransformTranslate,
				Offset: r2.Vec{X: lerp(start.X, end.X, t), Y: lerp(start.Y, end.Y, t)},
			},
		}
	}
	return frames, nil
}

// RotationFrames interpolates an angle from start to end about a fixed pivot.
// With reverse set the end angle is moved a full turn so the sweep takes the
// other arc; the first frame stays at start.
func RotationFrames(start, end float64, pivot r2.Vec, frameCount int, reverse bool) ([]Frame, error) {
	if err := checkFrameCount(frameCount); err != nil {
		return nil, err
	}
	if reverse {
		end = ReverseArc(start, end)
	}
	frames := make([]Frame, frameCount)
	for i := range frames {
		frames[i] = Frame{
			Index: i,
			Transform: Transform{
				Kind:  TransformRotate,
				Angle: lerp(start, end, frameT(i, frameCount)),
				Pivot: pivot,
			},
		}
	}
	return frames, nil
}

// ReverseArc returns the end angle that reaches the same direction as end
// along the opposite arc from start. Equal angles become a full turn.
func ReverseArc(start, end float64) float64 {
	if end-start > 0 {
		return end - 360
	}
	return end + 360
}

func checkFrameCount(n int) error {
	if n < MinFrames || n > MaxFrames {
		return invalid("frame count %d outside [%d,%d]", n, MinFrames, MaxFrames)
	}
	return nil
}

func frameT(i, n int) float64 {
	return float64(i) / float64(n-1)
}

// lerp is exact at both ends: t=0 gives a, t=1 gives b. Equal ends give a
// for every t.
func lerp(a, b, t float64) float64 {
	if a == b {
		return a
	}
	return a*(1-t) + b*t
}
