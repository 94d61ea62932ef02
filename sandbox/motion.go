package sandbox

import (
	"fmt"
	"math"
)

// Extrapolation behavior for Interpolate outside the input range.
const (
	ExtrapolateExtend = "extend" // continue the nearest segment's slope (default)
	ExtrapolateClamp  = "clamp"  // pin to the range endpoint
)

// InterpolateOptions control behavior beyond the ends of the input range.
type InterpolateOptions struct {
	ExtrapolateLeft  string
	ExtrapolateRight string
}

// Interpolate maps input through piecewise-linear stops. inputRange must be
// monotonically increasing and the two ranges must be the same length (>= 2).
//
// Inputs beyond the range extrapolate linearly using the nearest segment's
// slope unless the corresponding option is "clamp". Both the preview and the
// final composite call this with the same frame numbers, so it must stay a
// pure function of its arguments.
func Interpolate(input float64, inputRange, outputRange []float64, opts *InterpolateOptions) (float64, error) {
	if len(inputRange) < 2 {
		return 0, fmt.Errorf("interpolate: input range needs at least 2 stops, got %d", len(inputRange))
	}
	if len(inputRange) != len(outputRange) {
		return 0, fmt.Errorf("interpolate: input range has %d stops, output range has %d", len(inputRange), len(outputRange))
	}
	for i := 1; i < len(inputRange); i++ {
		if inputRange[i] <= inputRange[i-1] {
			return 0, fmt.Errorf("interpolate: input range must be strictly increasing at index %d", i)
		}
	}

	left := ExtrapolateExtend
	right := ExtrapolateExtend
	if opts != nil {
		if opts.ExtrapolateLeft != "" {
			left = opts.ExtrapolateLeft
		}
		if opts.ExtrapolateRight != "" {
			right = opts.ExtrapolateRight
		}
	}

	n := len(inputRange)
	if input <= inputRange[0] {
		if left == ExtrapolateClamp {
			return outputRange[0], nil
		}
		return segmentValue(input, inputRange[0], inputRange[1], outputRange[0], outputRange[1]), nil
	}
	if input >= inputRange[n-1] {
		if right == ExtrapolateClamp {
			return outputRange[n-1], nil
		}
		return segmentValue(input, inputRange[n-2], inputRange[n-1], outputRange[n-2], outputRange[n-1]), nil
	}

	for i := 1; i < n; i++ {
		if input <= inputRange[i] {
			return segmentValue(input, inputRange[i-1], inputRange[i], outputRange[i-1], outputRange[i]), nil
		}
	}
	return outputRange[n-1], nil
}

func segmentValue(input, x0, x1, y0, y1 float64) float64 {
	return y0 + (input-x0)/(x1-x0)*(y1-y0)
}

// SpringOptions configure the damped oscillator behind Spring. Use
// NewSpringOptions for the defaults; From and To are taken literally, so a
// zero-to-zero spring holds constant at zero.
type SpringOptions struct {
	Mass      float64
	Stiffness float64
	Damping   float64
	From      float64
	To        float64
}

// NewSpringOptions fills in the defaults.
func NewSpringOptions() SpringOptions {
	return SpringOptions{Mass: 1, Stiffness: 100, Damping: 10, From: 0, To: 1}
}

// Spring evaluates a damped harmonic oscillator at a frame index. It is the
// closed-form solution, so the same (frame, fps, options) always produces the
// same value with no hidden clock or randomness; this is what lets the live
// preview and the composited render agree bit-for-bit.
func Spring(frame int, fps float64, opts SpringOptions) float64 {
	if opts.Mass <= 0 {
		opts.Mass = 1
	}
	if opts.Stiffness <= 0 {
		opts.Stiffness = 100
	}
	if opts.Damping <= 0 {
		opts.Damping = 10
	}
	if fps <= 0 {
		fps = DefaultFPS
	}

	t := float64(frame) / fps
	if t <= 0 {
		return opts.From
	}

	omega0 := math.Sqrt(opts.Stiffness / opts.Mass)
	zeta := opts.Damping / (2 * math.Sqrt(opts.Stiffness*opts.Mass))

	var progress float64
	switch {
	case zeta < 1:
		omegaD := omega0 * math.Sqrt(1-zeta*zeta)
		envelope := math.Exp(-zeta * omega0 * t)
		progress = 1 - envelope*(math.Cos(omegaD*t)+(zeta*omega0/omegaD)*math.Sin(omegaD*t))
	case zeta == 1:
		progress = 1 - math.Exp(-omega0*t)*(1+omega0*t)
	default:
		omegaD := omega0 * math.Sqrt(zeta*zeta-1)
		envelope := math.Exp(-zeta * omega0 * t)
		progress = 1 - envelope*(math.Cosh(omegaD*t)+(zeta*omega0/omegaD)*math.Sinh(omegaD*t))
	}

	return opts.From + (opts.To-opts.From)*progress
}

// DefaultFPS is the frame rate the whole pipeline assumes; the spring
// primitive falls back to it when the caller does not pass one.
const DefaultFPS = 30

// Easing curves exposed to sandboxed programs. All are pure [0,1] → [0,1].
var easingFuncs = map[string]func(float64) float64{
	"linear":    func(t float64) float64 { return t },
	"easeIn":    func(t float64) float64 { return t * t },
	"easeOut":   func(t float64) float64 { return t * (2 - t) },
	"easeInOut": func(t float64) float64 { return t * t * (3 - 2*t) },
	"cubicIn":   func(t float64) float64 { return t * t * t },
	"cubicOut":  func(t float64) float64 { u := t - 1; return u*u*u + 1 },
}
