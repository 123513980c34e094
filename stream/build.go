package stream

import (
	"github.com/lucasb-eyer/go-colorful"
	"github.com/matt-g-everett/ledprog/animation"
	"github.com/matt-g-everett/ledprog/program"
	"github.com/pkg/errors"
)

// BuildLibrary creates AnimatedPrograms for every configured program.
func BuildLibrary(configs []ProgramConfig) (*Library, error) {
	l := NewLibrary()
	for i, pc := range configs {
		p, err := BuildProgram(pc)
		if err != nil {
			return nil, errors.Wrapf(err, "program %d (%s)", i, pc.Name)
		}
		if err := l.Add(pc.Name, p); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// BuildProgram creates a single AnimatedProgram.
func BuildProgram(pc ProgramConfig) (*program.AnimatedProgram, error) {
	p := program.NewAnimatedProgram()

	if pc.Color != "" {
		c, err := colorful.Hex(pc.Color)
		if err != nil {
			return nil, errors.Wrapf(err, "color %q", pc.Color)
		}
		rgb := program.ColorFromColorful(c)
		p.SetColor(rgb.R, rgb.G, rgb.B)
	}

	if pc.Brightness != nil {
		ev, err := BuildCurve(*pc.Brightness)
		if err != nil {
			return nil, errors.Wrap(err, "brightness")
		}
		p.SetBrightness(ev)
	}

	segments := make([]program.Segment, 0, len(pc.Segments))
	for i, sc := range pc.Segments {
		from, err := BuildCurve(sc.From)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d from", i)
		}
		to, err := BuildCurve(sc.To)
		if err != nil {
			return nil, errors.Wrapf(err, "segment %d to", i)
		}
		segments = append(segments, program.Segment{From: from, To: to})
	}
	p.SetSegments(segments)

	return p, nil
}

// BuildCurve creates an evaluator from exactly one of the curve forms.
func BuildCurve(cc CurveConfig) (program.Evaluator, error) {
	forms := 0
	if cc.Constant != nil {
		forms++
	}
	if len(cc.Keyframes) > 0 {
		forms++
	}
	if len(cc.Sequence) > 0 {
		forms++
	}
	if forms != 1 {
		return nil, errors.Errorf("curve needs exactly one of constant, keyframes or sequence, got %d", forms)
	}

	switch {
	case cc.Constant != nil:
		return animation.Constant(*cc.Constant), nil
	case len(cc.Keyframes) > 0:
		k, err := animation.NewKeyframes(cc.Keyframes, cc.Loop)
		if err != nil {
			return nil, err
		}
		return k, nil
	}

	parts := make([]*animation.Keyframes, 0, len(cc.Sequence))
	for i, frames := range cc.Sequence {
		k, err := animation.NewKeyframes(frames, false)
		if err != nil {
			return nil, errors.Wrapf(err, "sequence part %d", i)
		}
		parts = append(parts, k)
	}
	seq, err := animation.NewSequence(parts, cc.Repeat)
	if err != nil {
		return nil, err
	}
	return seq, nil
}
