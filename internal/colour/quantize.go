package colour

import "fmt"

// MaxLevel is the highest accepted colour level.
// Level 9 is accepted by the range check but yields a quantum step of 0.
const MaxLevel = 9

// QuantizeParams configures bit-depth quantization.
type QuantizeParams struct {
	// Level is the colour-resolution knob (0-9). Higher levels keep more colours.
	Level int

	// LightBoost widens the rescale multiplier, brightening the output.
	LightBoost int

	// Clamp saturates the output into [0, 255]. Off by default: boosted
	// channels are allowed to overflow.
	Clamp bool
}

// EffectiveLevel returns 9 - Level.
func (p QuantizeParams) EffectiveLevel() int {
	return MaxLevel - p.Level
}

// Step returns the quantum step derived from Level.
func (p QuantizeParams) Step() (int, error) {
	return QuantumStep(p.Level)
}

// Validate validates the quantization parameters.
func (p QuantizeParams) Validate() error {
	_, err := p.Step()
	return err
}

// QuantumStep derives the quantization divisor 2^(9-level) - 1.
func QuantumStep(level int) (int, error) {
	if level < 0 || level > MaxLevel {
		return 0, fmt.Errorf("%w: %d (valid: 0-%d)", ErrLevel, level, MaxLevel)
	}

	step := 1<<(MaxLevel-level) - 1
	if step < 1 {
		return 0, fmt.Errorf("%w: level %d gives a step of %d", ErrQuantumStep, level, step)
	}
	return step, nil
}

// Quantize reduces each channel to floor(channel/step) * (step + boost).
// The result is not clamped.
func Quantize(c RGB, step, boost int) (RGB, error) {
	if step < 1 {
		return RGB{}, fmt.Errorf("%w: got %d", ErrQuantumStep, step)
	}

	multiplier := step + boost
	return RGB{
		R: floorDiv(c.R, step) * multiplier,
		G: floorDiv(c.G, step) * multiplier,
		B: floorDiv(c.B, step) * multiplier,
	}, nil
}

// floorDiv divides rounding towards negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
