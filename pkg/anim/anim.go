// Package anim holds the easing helpers behind the dialog fade-in.
package anim

import (
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// FadeDuration is how long a dialog takes to become fully opaque.
const FadeDuration = time.Second

// Ease is the half-cosine ease-in-out curve. It maps 0 to 0 and 1 to 1 and is
// not clamped outside that range.
func Ease(t float64) float64 {
	return -(math.Cos(math.Pi*t) - 1) / 2
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Fade converts the time since a dialog was opened into an opacity in [0, 1].
func Fade(elapsed time.Duration) float64 {
	return Ease(clamp(elapsed.Seconds() / FadeDuration.Seconds()))
}

// Blend mixes two hex colors in Lab space. t is clamped to [0, 1]. If either
// color does not parse, to is returned unchanged.
func Blend(from, to string, t float64) string {
	a, err := colorful.Hex(from)
	if err != nil {
		return to
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return to
	}
	switch t = clamp(t); t {
	case 0:
		return a.Hex()
	case 1:
		return b.Hex()
	}
	return a.BlendLab(b, t).Clamped().Hex()
}

func clamp(t float64) float64 {
	switch {
	case t < 0 || math.IsNaN(t):
		return 0
	case t > 1:
		return 1
	}
	return t
}
