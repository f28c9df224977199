package colour

import (
	"fmt"
	"slices"
)

// Reducer maps a sampled tile colour onto the reduced output colour.
type Reducer interface {
	// Reduce returns the reduced colour for c.
	Reduce(c RGB) RGB

	// Strategy returns the strategy the reducer implements.
	Strategy() Strategy
}

// Strategy represents the colour reduction strategy type.
type Strategy string

const (
	// StrategyPalette snaps colours to the nearest entry of a fixed palette.
	StrategyPalette Strategy = "palette"

	// StrategyQuantize reduces the bit depth of every channel.
	StrategyQuantize Strategy = "quantize"

	// StrategyNone keeps the averaged tile colour.
	StrategyNone Strategy = "none"
)

// ValidStrategies returns a list of valid strategy names.
func ValidStrategies() []Strategy {
	return []Strategy{StrategyPalette, StrategyQuantize, StrategyNone}
}

// ParseStrategy converts a strategy name into a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(name)
	if !slices.Contains(ValidStrategies(), s) {
		return "", fmt.Errorf("%w: %s (valid strategies: %v)", ErrUnknownStrategy, name, ValidStrategies())
	}
	return s, nil
}

// ReducerConfig holds the settings for every strategy.
// Only the fields of the selected strategy are consulted.
type ReducerConfig struct {
	Strategy Strategy
	Palette  *Palette
	Metric   Metric
	Quantize QuantizeParams
}

// NewReducer creates a Reducer for the configured strategy.
// All configuration errors surface here, before any colour is reduced.
func NewReducer(cfg ReducerConfig) (Reducer, error) {
	switch cfg.Strategy {
	case StrategyPalette:
		return NewPaletteReducer(cfg.Palette, cfg.Metric)
	case StrategyQuantize:
		return NewQuantizeReducer(cfg.Quantize)
	case StrategyNone:
		return IdentityReducer{}, nil
	default:
		return nil, fmt.Errorf("%w: %s (valid strategies: %v)", ErrUnknownStrategy, cfg.Strategy, ValidStrategies())
	}
}

// PaletteReducer implements nearest-colour matching against a fixed palette.
type PaletteReducer struct {
	palette  *Palette
	distance func(a, b Mean) float64
}

var _ MeanReducer = (*PaletteReducer)(nil)

// NewPaletteReducer validates the palette and metric up front.
func NewPaletteReducer(palette *Palette, m Metric) (*PaletteReducer, error) {
	if err := palette.Validate(); err != nil {
		return nil, err
	}
	distance, err := distanceFunc(m)
	if err != nil {
		return nil, err
	}
	return &PaletteReducer{palette: palette, distance: distance}, nil
}

// Reduce returns the palette entry closest to c.
func (r *PaletteReducer) Reduce(c RGB) RGB {
	return r.ReduceMean(c.Mean())
}

// ReduceMean returns the palette entry closest to the unrounded mean m.
func (r *PaletteReducer) ReduceMean(m Mean) RGB {
	return r.palette.Colours[nearest(m, r.palette.Colours, r.distance)]
}

// Strategy returns StrategyPalette.
func (r *PaletteReducer) Strategy() Strategy {
	return StrategyPalette
}

// Palette returns the palette the reducer matches against.
func (r *PaletteReducer) Palette() *Palette {
	return r.palette
}

// QuantizeReducer implements bit-depth quantization.
type QuantizeReducer struct {
	step   int
	params QuantizeParams
}

// NewQuantizeReducer derives and validates the quantum step.
func NewQuantizeReducer(params QuantizeParams) (*QuantizeReducer, error) {
	step, err := params.Step()
	if err != nil {
		return nil, err
	}
	return &QuantizeReducer{step: step, params: params}, nil
}

// Reduce quantizes c, clamping only when the params opted in.
func (r *QuantizeReducer) Reduce(c RGB) RGB {
	out, _ := Quantize(c, r.step, r.params.LightBoost)
	if r.params.Clamp {
		return out.Clamp()
	}
	return out
}

// Strategy returns StrategyQuantize.
func (r *QuantizeReducer) Strategy() Strategy {
	return StrategyQuantize
}

// Step returns the derived quantum step.
func (r *QuantizeReducer) Step() int {
	return r.step
}

// IdentityReducer leaves colours untouched.
type IdentityReducer struct{}

// Reduce returns c.
func (IdentityReducer) Reduce(c RGB) RGB { return c }

// Strategy returns StrategyNone.
func (IdentityReducer) Strategy() Strategy { return StrategyNone }
