package stream

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledprog/program"
)

// Render paints every segment of p at runtimeMs onto f. The program's colour
// is scaled by its brightness.
func Render(p program.Program, runtimeMs int64, f *Frame) {
	c := p.GetColor(runtimeMs).Colorful()
	gain := float64(p.GetBrightness(runtimeMs)) / 255.0
	lit := colorful.Color{R: c.R * gain, G: c.G * gain, B: c.B * gain}

	for i := 0; ; i++ {
		r, ok := p.GetSegment(runtimeMs, i)
		if !ok {
			return
		}
		f.Fill(r, lit)
	}
}

// RenderFrame renders p onto a new black frame.
func RenderFrame(p program.Program, runtimeMs int64, numPixels int) *Frame {
	f := NewFrame(numPixels)
	Render(p, runtimeMs, f)
	return f
}
