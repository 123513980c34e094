package program

import (
	"sync/atomic"

	"github.com/lucasb-eyer/go-colorful"
)

// MaxBrightness is reported when a program has no brightness timeline.
const MaxBrightness uint8 = 255

// Color is an 8-bit RGB triple.
type Color struct {
	R, G, B uint8
}

// Colorful converts the triple to a colorful.Color.
func (c Color) Colorful() colorful.Color {
	return colorful.Color{
		R: float64(c.R) / 255.0,
		G: float64(c.G) / 255.0,
		B: float64(c.B) / 255.0,
	}
}

// ColorFromColorful converts a colorful.Color, clamping it into RGB space first.
func ColorFromColorful(c colorful.Color) Color {
	r, g, b := c.Clamped().RGB255()
	return Color{r, g, b}
}

// Range is an inclusive span of pixel indices with Start <= End.
type Range struct {
	Start uint32
	End   uint32
}

// An Evaluator turns an elapsed time into an unsigned value.
type Evaluator interface {
	Value(elapsedMs int64) uint32
}

// EvaluatorFunc adapts a plain function to the Evaluator interface.
type EvaluatorFunc func(elapsedMs int64) uint32

// Value calls f(elapsedMs).
func (f EvaluatorFunc) Value(elapsedMs int64) uint32 {
	return f(elapsedMs)
}

// A Program produces colour, brightness and lit segments at a point in time.
type Program interface {
	TimeBase() int64
	GetColor(runtimeMs int64) Color
	GetBrightness(runtimeMs int64) uint8
	GetSegment(runtimeMs int64, index int) (Range, bool)
}

// A Restarter is a Program whose time base can be moved.
type Restarter interface {
	Program
	Restart(runtimeMs int64)
}

// Base holds the time base of a program. It is meant to be embedded.
type Base struct {
	timeBase atomic.Int64
}

// TimeBase returns the runtime at which the program was (re)started.
func (b *Base) TimeBase() int64 {
	return b.timeBase.Load()
}

// Restart moves the time base to runtimeMs.
func (b *Base) Restart(runtimeMs int64) {
	b.timeBase.Store(runtimeMs)
}

// Elapsed is runtimeMs relative to the time base.
func (b *Base) Elapsed(runtimeMs int64) int64 {
	return runtimeMs - b.TimeBase()
}
