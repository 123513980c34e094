// Package animation provides time-driven evaluators for programs: constants,
// eased keyframe animations and sequences of animations.
package animation

import (
	"math"

	"github.com/matt-g-everett/ledprog/util"
	"github.com/pkg/errors"
)

// Constant always evaluates to itself.
type Constant uint32

// Value returns c.
func (c Constant) Value(elapsedMs int64) uint32 {
	return uint32(c)
}

// Keyframe is a value reached at time T. Ease shapes the approach from the
// previous keyframe.
type Keyframe struct {
	T     int64  `yaml:"t"`
	Value uint32 `yaml:"value"`
	Ease  string `yaml:"ease"`
}

// Keyframes is an animation that interpolates between keyframes.
type Keyframes struct {
	frames  []Keyframe
	easings []util.EasingFunc
	loop    bool
}

// NewKeyframes creates an animation. Keyframe times must be non-negative and
// strictly increasing. A looping animation restarts after its last keyframe.
func NewKeyframes(frames []Keyframe, loop bool) (*Keyframes, error) {
	if len(frames) == 0 {
		return nil, errors.New("animation needs at least one keyframe")
	}

	k := new(Keyframes)
	k.frames = make([]Keyframe, len(frames))
	copy(k.frames, frames)
	k.easings = make([]util.EasingFunc, len(frames))
	k.loop = loop

	for i, f := range k.frames {
		if f.T < 0 {
			return nil, errors.Errorf("keyframe %d: negative time %d", i, f.T)
		}
		if i > 0 && f.T <= k.frames[i-1].T {
			return nil, errors.Errorf("keyframe %d: time %d not after %d", i, f.T, k.frames[i-1].T)
		}
		easing, err := util.Easing(f.Ease)
		if err != nil {
			return nil, errors.Wrapf(err, "keyframe %d", i)
		}
		k.easings[i] = easing
	}

	return k, nil
}

// Duration is the time of the last keyframe.
func (k *Keyframes) Duration() int64 {
	return k.frames[len(k.frames)-1].T
}

// Value evaluates the animation at elapsedMs.
func (k *Keyframes) Value(elapsedMs int64) uint32 {
	d := k.Duration()
	if k.loop && d > 0 {
		elapsedMs = ((elapsedMs % d) + d) % d
	}

	first := k.frames[0]
	if elapsedMs <= first.T {
		return first.Value
	}
	last := k.frames[len(k.frames)-1]
	if elapsedMs >= last.T {
		return last.Value
	}

	i := 1
	for k.frames[i].T <= elapsedMs {
		i++
	}
	a, b := k.frames[i-1], k.frames[i]
	progress := float64(elapsedMs-a.T) / float64(b.T-a.T)
	v := float64(a.Value) + (float64(b.Value)-float64(a.Value))*k.easings[i](progress)

	return clampUint32(math.Round(v))
}

func clampUint32(v float64) uint32 {
	if v <= 0 {
		return 0
	}
	if v >= math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// Sequence plays animations back to back.
type Sequence struct {
	parts  []*Keyframes
	total  int64
	repeat bool
}

// NewSequence creates a sequence. With repeat set the whole sequence loops;
// otherwise it holds the final value once finished.
func NewSequence(parts []*Keyframes, repeat bool) (*Sequence, error) {
	if len(parts) == 0 {
		return nil, errors.New("sequence needs at least one animation")
	}

	s := new(Sequence)
	s.parts = make([]*Keyframes, len(parts))
	copy(s.parts, parts)
	s.repeat = repeat
	for i, p := range s.parts {
		if p == nil {
			return nil, errors.Errorf("sequence part %d is nil", i)
		}
		s.total += p.Duration()
	}

	return s, nil
}

// Duration is the combined duration of all parts.
func (s *Sequence) Duration() int64 {
	return s.total
}

// Value evaluates the sequence at elapsedMs.
func (s *Sequence) Value(elapsedMs int64) uint32 {
	if elapsedMs < 0 {
		return s.parts[0].frames[0].Value
	}
	if s.repeat && s.total > 0 {
		elapsedMs %= s.total
	}

	for _, p := range s.parts {
		d := p.Duration()
		if elapsedMs < d {
			return p.Value(elapsedMs)
		}
		elapsedMs -= d
	}

	last := s.parts[len(s.parts)-1]
	return last.frames[len(last.frames)-1].Value
}
