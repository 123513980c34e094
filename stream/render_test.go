package stream

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledprog/animation"
	"github.com/matt-g-everett/ledprog/program"
	"github.com/stretchr/testify/assert"
)

func TestRenderPaintsAllSegments(t *testing.T) {
	p := program.NewAnimatedProgram()
	p.SetColor(255, 0, 0)
	p.SetSegments([]program.Segment{
		{From: animation.Constant(3), To: animation.Constant(1)},
		{From: animation.Constant(6), To: animation.Constant(6)},
	})

	f := RenderFrame(p, 0, 8)

	red := colorful.Color{R: 1}
	for i := 0; i < f.Len(); i++ {
		lit := (i >= 1 && i <= 3) || i == 6
		if lit {
			assert.Equal(t, red, f.Pixel(i), "pixel %d", i)
		} else {
			assert.Equal(t, colorful.Color{}, f.Pixel(i), "pixel %d", i)
		}
	}
}

func TestRenderScalesByBrightness(t *testing.T) {
	p := program.NewAnimatedProgram()
	p.SetColor(255, 255, 0)
	p.SetBrightness(animation.Constant(51))
	p.SetSegments([]program.Segment{{From: animation.Constant(0), To: animation.Constant(0)}})

	f := RenderFrame(p, 0, 1)

	assert.InDelta(t, 0.2, f.Pixel(0).R, 1e-9)
	assert.InDelta(t, 0.2, f.Pixel(0).G, 1e-9)
	assert.InDelta(t, 0.0, f.Pixel(0).B, 1e-9)
}

func TestRenderWithoutSegmentsIsBlack(t *testing.T) {
	p := program.NewAnimatedProgram()
	p.SetColor(255, 255, 255)

	f := RenderFrame(p, 0, 4)
	for i := 0; i < f.Len(); i++ {
		assert.Equal(t, colorful.Color{}, f.Pixel(i))
	}
}
