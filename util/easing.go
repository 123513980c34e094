package util

import (
	"github.com/fogleman/ease"
	"github.com/pkg/errors"
)

// An EasingFunc maps progress in [0, 1] to eased progress.
type EasingFunc func(t float64) float64

var easings = map[string]EasingFunc{
	"linear":     ease.Linear,
	"inQuad":     ease.InQuad,
	"outQuad":    ease.OutQuad,
	"inOutQuad":  ease.InOutQuad,
	"inCubic":    ease.InCubic,
	"outCubic":   ease.OutCubic,
	"inOutCubic": ease.InOutCubic,
	"inSine":     ease.InSine,
	"outSine":    ease.OutSine,
	"inOutSine":  ease.InOutSine,
	"outBounce":  ease.OutBounce,
}

// Easing looks up an easing function by name. An empty name is linear.
func Easing(name string) (EasingFunc, error) {
	if name == "" {
		return ease.Linear, nil
	}
	f, found := easings[name]
	if !found {
		return nil, errors.Errorf("unknown easing %q", name)
	}
	return f, nil
}
