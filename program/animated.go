package program

import (
	"sync"
	"sync/atomic"
)

// A Segment is a lit range whose two ends move independently. Neither end is
// the start; the range is ordered when it is evaluated. A nil end stays at 0.
type Segment struct {
	From Evaluator
	To   Evaluator
}

type animatedConfig struct {
	color      Color
	brightness Evaluator
	segments   []Segment
}

// AnimatedProgram is a Program with a fixed colour, an optional brightness
// timeline and a list of animated segments.
//
// Setters may be called at any time, including while other goroutines query
// the program. Each query works against a single configuration snapshot.
type AnimatedProgram struct {
	Base

	mu     sync.Mutex
	config atomic.Pointer[animatedConfig]
}

// NewAnimatedProgram creates a black program with no brightness timeline and no segments.
func NewAnimatedProgram() *AnimatedProgram {
	p := new(AnimatedProgram)
	p.config.Store(&animatedConfig{})
	return p
}

func (p *AnimatedProgram) snapshot() *animatedConfig {
	c := p.config.Load()
	if c == nil {
		return &animatedConfig{}
	}
	return c
}

func (p *AnimatedProgram) update(fn func(c *animatedConfig)) {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := *p.snapshot()
	fn(&next)
	p.config.Store(&next)
}

// SetColor sets the colour.
func (p *AnimatedProgram) SetColor(red, green, blue uint8) {
	p.update(func(c *animatedConfig) {
		c.color = Color{red, green, blue}
	})
}

// SetBrightness replaces the brightness timeline. A nil timeline means full brightness.
func (p *AnimatedProgram) SetBrightness(timeline Evaluator) {
	p.update(func(c *animatedConfig) {
		c.brightness = timeline
	})
}

var zero = EvaluatorFunc(func(int64) uint32 { return 0 })

// SetSegments replaces all segments. The slice is copied.
func (p *AnimatedProgram) SetSegments(segments []Segment) {
	owned := make([]Segment, len(segments))
	copy(owned, segments)
	for i := range owned {
		if owned[i].From == nil {
			owned[i].From = zero
		}
		if owned[i].To == nil {
			owned[i].To = zero
		}
	}
	p.update(func(c *animatedConfig) {
		c.segments = owned
	})
}

// GetColor returns the colour. The colour does not vary with time.
func (p *AnimatedProgram) GetColor(runtimeMs int64) Color {
	return p.snapshot().color
}

// GetBrightness evaluates the brightness timeline, or returns MaxBrightness if there is none.
// The timeline's value is truncated to 8 bits and not clamped.
func (p *AnimatedProgram) GetBrightness(runtimeMs int64) uint8 {
	c := p.snapshot()
	if c.brightness == nil {
		return MaxBrightness
	}
	return uint8(c.brightness.Value(p.Elapsed(runtimeMs)))
}

// NumSegments returns the number of configured segments.
func (p *AnimatedProgram) NumSegments() int {
	return len(p.snapshot().segments)
}

// GetSegment evaluates segment index at runtimeMs. It returns false if there
// is no such segment.
func (p *AnimatedProgram) GetSegment(runtimeMs int64, index int) (Range, bool) {
	c := p.snapshot()
	if index < 0 || index >= len(c.segments) {
		return Range{}, false
	}

	elapsed := p.Elapsed(runtimeMs)
	seg := c.segments[index]
	start := seg.From.Value(elapsed)
	end := seg.To.Value(elapsed)
	if start > end {
		start, end = end, start
	}

	return Range{Start: start, End: end}, true
}
