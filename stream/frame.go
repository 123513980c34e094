package stream

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledprog/program"
	"github.com/pkg/errors"
)

// DefaultPixels is the strip length used when none is configured.
const DefaultPixels = 500

// MaxPixels is the longest strip the frame header can describe.
const MaxPixels = math.MaxUint16

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of numPixels pixels.
func NewFrame(numPixels int) *Frame {
	f := new(Frame)
	f.pixels = make([]colorful.Color, numPixels)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return len(f.pixels)
}

// Pixel returns the colour of pixel i.
func (f *Frame) Pixel(i int) colorful.Color {
	return f.pixels[i]
}

// Fill paints the pixels in r, clipped to the frame.
func (f *Frame) Fill(r program.Range, c colorful.Color) {
	n := uint32(len(f.pixels))
	if n == 0 || r.Start >= n {
		return
	}
	end := r.End
	if end >= n {
		end = n - 1
	}
	for i := r.Start; i <= end; i++ {
		f.pixels[i] = c
	}
}

// InterpolateFrame merges two frames. Pixels missing from the shorter frame are treated as black.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	n := len(f.pixels)
	if len(f2.pixels) > n {
		n = len(f2.pixels)
	}

	out := NewFrame(n)
	for i := 0; i < n; i++ {
		var c1, c2 colorful.Color
		if i < len(f.pixels) {
			c1 = f.pixels[i]
		}
		if i < len(f2.pixels) {
			c2 = f2.pixels[i]
		}
		out.pixels[i] = c1.BlendRgb(c2, transitionPoint)
	}

	return out
}

// MarshalBinary converts a Frame into binary data.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	if len(f.pixels) > MaxPixels {
		return nil, errors.Errorf("frame has %d pixels, at most %d fit the header", len(f.pixels), MaxPixels)
	}

	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
