package sandbox

import (
	"math"
	"testing"
)

func TestInterpolate(t *testing.T) {
	clampRight := &InterpolateOptions{ExtrapolateRight: ExtrapolateClamp}
	clampBoth := &InterpolateOptions{ExtrapolateLeft: ExtrapolateClamp, ExtrapolateRight: ExtrapolateClamp}

	tests := []struct {
		name        string
		input       float64
		inputRange  []float64
		outputRange []float64
		opts        *InterpolateOptions
		want        float64
	}{
		{name: "midpoint", input: 15, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, want: 50},
		{name: "at left stop", input: 0, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, want: 0},
		{name: "at right stop", input: 30, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, want: 100},
		{name: "default extrapolates right", input: 45, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, want: 150},
		{name: "default extrapolates left", input: -15, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, want: -50},
		{name: "clamp right pins endpoint", input: 45, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, opts: clampRight, want: 100},
		{name: "clamp right leaves left open", input: -15, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, opts: clampRight, want: -50},
		{name: "clamp both left", input: -5, inputRange: []float64{0, 30}, outputRange: []float64{0, 100}, opts: clampBoth, want: 0},
		{name: "multi-stop middle segment", input: 15, inputRange: []float64{0, 10, 20}, outputRange: []float64{0, 100, 0}, want: 50},
		{name: "multi-stop extrapolates nearest segment slope", input: 25, inputRange: []float64{0, 10, 20}, outputRange: []float64{0, 100, 0}, want: -50},
		{name: "descending output", input: 10, inputRange: []float64{0, 20}, outputRange: []float64{100, 0}, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Interpolate(tt.input, tt.inputRange, tt.outputRange, tt.opts)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInterpolateClampNeverLeavesRange(t *testing.T) {
	opts := &InterpolateOptions{ExtrapolateRight: ExtrapolateClamp}
	for input := -100.0; input <= 300; input += 7 {
		got, err := Interpolate(input, []float64{0, 30}, []float64{20, 80}, opts)
		if err != nil {
			t.Fatalf("unexpected error at %v: %v", input, err)
		}
		if input >= 0 && got > 80 {
			t.Errorf("input %v: clamped right returned %v above endpoint 80", input, got)
		}
	}
}

func TestInterpolateValidation(t *testing.T) {
	tests := []struct {
		name        string
		inputRange  []float64
		outputRange []float64
	}{
		{name: "too few stops", inputRange: []float64{0}, outputRange: []float64{0}},
		{name: "length mismatch", inputRange: []float64{0, 10, 20}, outputRange: []float64{0, 10}},
		{name: "non-increasing input", inputRange: []float64{0, 10, 10}, outputRange: []float64{0, 1, 2}},
		{name: "decreasing input", inputRange: []float64{0, 20, 10}, outputRange: []float64{0, 1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Interpolate(5, tt.inputRange, tt.outputRange, nil); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestSpring(t *testing.T) {
	opts := NewSpringOptions()

	if got := Spring(0, 30, opts); got != 0 {
		t.Errorf("frame 0 must start at From: got %v", got)
	}

	// The oscillator settles at To for large frame counts.
	if got := Spring(600, 30, opts); math.Abs(got-1) > 1e-3 {
		t.Errorf("settled value: got %v, want ~1", got)
	}

	// Same inputs, same output: no clock, no randomness.
	for frame := 0; frame <= 120; frame += 10 {
		a := Spring(frame, 30, opts)
		b := Spring(frame, 30, opts)
		if a != b {
			t.Fatalf("frame %d: %v != %v, spring is not deterministic", frame, a, b)
		}
	}
}

func TestSpringCustomRange(t *testing.T) {
	opts := NewSpringOptions()
	opts.From = 100
	opts.To = 200

	if got := Spring(0, 30, opts); got != 100 {
		t.Errorf("frame 0: got %v, want 100", got)
	}
	if got := Spring(600, 30, opts); math.Abs(got-200) > 0.5 {
		t.Errorf("settled: got %v, want ~200", got)
	}
}

func TestSpringExplicitZeroTarget(t *testing.T) {
	// An explicit zero target is honored, not re-defaulted: the spring
	// holds constant at zero for every frame.
	opts := NewSpringOptions()
	opts.To = 0

	for frame := 0; frame <= 120; frame += 10 {
		if got := Spring(frame, 30, opts); got != 0 {
			t.Fatalf("frame %d: got %v, want 0", frame, got)
		}
	}
}

func TestSpringMonotonicEarlyRise(t *testing.T) {
	// With default damping the curve rises from 0 toward 1 over the first
	// frames; a regression here usually means the fps handling broke.
	opts := NewSpringOptions()
	prev := Spring(0, 30, opts)
	for frame := 1; frame <= 5; frame++ {
		cur := Spring(frame, 30, opts)
		if cur <= prev {
			t.Fatalf("frame %d: %v not rising from %v", frame, cur, prev)
		}
		prev = cur
	}
}
