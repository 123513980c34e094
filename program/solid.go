package program

// Solid is a Program that lights one fixed range in one colour at full brightness.
type Solid struct {
	Base
	color Color
	span  Range
}

// NewSolid creates a Solid program. The ends of span may be given in either order.
func NewSolid(color Color, span Range) *Solid {
	if span.Start > span.End {
		span.Start, span.End = span.End, span.Start
	}
	return &Solid{color: color, span: span}
}

func (s *Solid) GetColor(runtimeMs int64) Color {
	return s.color
}

func (s *Solid) GetBrightness(runtimeMs int64) uint8 {
	return MaxBrightness
}

func (s *Solid) GetSegment(runtimeMs int64, index int) (Range, bool) {
	if index != 0 {
		return Range{}, false
	}
	return s.span, true
}
