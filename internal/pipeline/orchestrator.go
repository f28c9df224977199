// Package pipeline drives an image through sampling, colour reduction and
// painting to produce a pixel-art surface.
package pipeline

import (
	"context"
	"fmt"
	"image"
	"sync"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/grid"
	"github.com/jmylchreest/pixelize/internal/sampler"
	"github.com/jmylchreest/pixelize/internal/surface"
)

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards all output.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator owns the current image and parameters and runs the
// Idle -> Configured -> Sampled -> Painted state machine.
//
// Any parameter change or new image resets the stage to Idle. Each run works
// on a fresh surface; only a successful, current run replaces the visible
// result, so a failed or superseded run leaves the previous output intact.
type Orchestrator struct {
	mu         sync.Mutex
	cfg        Config
	img        image.Image
	stage      Stage
	generation uint64
	visible    *PipelineState

	logger hclog.Logger
}

// New creates an Orchestrator with the given configuration.
func New(cfg Config, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		cfg:    cfg,
		stage:  StageIdle,
		logger: hclog.NewNullLogger(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// SetImage loads a new source image and resets to Idle.
func (o *Orchestrator) SetImage(img image.Image) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.img = img
	o.reset()
}

// Update replaces the configuration and resets to Idle.
func (o *Orchestrator) Update(cfg Config) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.cfg = cfg
	o.reset()
}

// Config returns the current configuration.
func (o *Orchestrator) Config() Config {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cfg
}

// Stage returns the current stage.
func (o *Orchestrator) Stage() Stage {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.stage
}

// State returns the last committed run, or nil if none has succeeded.
func (o *Orchestrator) State() *PipelineState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.visible
}

// Surface returns the last committed surface, or nil if none has succeeded.
func (o *Orchestrator) Surface() *image.NRGBA {
	st := o.State()
	if st == nil {
		return nil
	}
	return st.Canvas.Image()
}

// reset must be called with mu held. Bumping the generation makes any run in
// flight stale.
func (o *Orchestrator) reset() {
	o.stage = StageIdle
	o.generation++
}

// Run executes the full pipeline for the current image and configuration.
// On success the result becomes the visible state and is returned.
func (o *Orchestrator) Run(ctx context.Context) (*PipelineState, error) {
	o.mu.Lock()
	o.generation++
	gen := o.generation
	cfg := o.cfg
	img := o.img
	prior := o.stage
	o.mu.Unlock()

	st := &PipelineState{Stage: StageIdle, Config: cfg}

	st, err := o.configure(st, img)
	if err != nil {
		o.abort(gen, prior)
		return nil, err
	}
	o.advance(gen, StageConfigured)

	st, err = o.sample(ctx, st)
	if err != nil {
		o.abort(gen, prior)
		return nil, err
	}
	o.advance(gen, StageSampled)

	st, err = o.paint(ctx, st)
	if err != nil {
		o.abort(gen, prior)
		return nil, err
	}

	if err := o.commit(gen, st); err != nil {
		return nil, err
	}

	o.logger.Info("rendered image",
		"rows", st.Grid.Rows,
		"columns", st.Grid.Columns,
		"strategy", st.reducer.Strategy(),
		"colours", st.Frequency.Len())
	return st, nil
}

// configure validates parameters, builds the reducer and grid, and fits the
// image onto a fresh surface. No pixel is read before validation succeeds.
func (o *Orchestrator) configure(st *PipelineState, img image.Image) (*PipelineState, error) {
	if img == nil {
		return nil, ErrMissingInput
	}

	cfg := st.Config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	reducer, err := cfg.Reducer()
	if err != nil {
		return nil, err
	}
	stroke, err := cfg.GridStroke()
	if err != nil {
		return nil, err
	}

	width, height := surfaceSize(cfg, img.Bounds())
	g, err := grid.Build(cfg.Rows, width, height)
	if err != nil {
		return nil, configError(err)
	}

	canvas := surface.New(width, height)
	fit := canvas.DrawFit(img)

	o.logger.Debug("configured pipeline",
		"surface", fmt.Sprintf("%dx%d", width, height),
		"image", fit,
		"rows", g.Rows,
		"columns", g.Columns,
		"strategy", reducer.Strategy())

	return &PipelineState{
		Stage:   StageConfigured,
		Config:  cfg,
		Grid:    g,
		Canvas:  canvas,
		reducer: reducer,
		stroke:  stroke,
	}, nil
}

// sample resolves every tile colour and builds the frequency index.
// Transparent tiles become white without passing through the reducer.
func (o *Orchestrator) sample(ctx context.Context, st *PipelineState) (*PipelineState, error) {
	transparent := 0
	for y := range st.Grid.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for tile := range st.Grid.Row(y) {
			res := sampler.Sample(st.Canvas, st.Grid.Rect(tile))
			if res.Transparent {
				tile.Resolve(colour.White)
				transparent++
				continue
			}
			tile.Resolve(colour.ReduceMean(st.reducer, res.Mean))
		}
	}

	next := *st
	next.Stage = StageSampled
	next.Frequency = colour.NewFrequencyIndex(st.Grid.Colours())

	o.logger.Debug("sampled tiles",
		"tiles", st.Grid.Len(),
		"transparent", transparent,
		"distinct", next.Frequency.Len(),
		"entropy", next.Frequency.Entropy())
	return &next, nil
}

// paint fills each tile in grid order and strokes the grid overlay.
func (o *Orchestrator) paint(ctx context.Context, st *PipelineState) (*PipelineState, error) {
	for y := range st.Grid.Rows {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for tile := range st.Grid.Row(y) {
			st.Canvas.FillRect(st.Grid.PixelBounds(tile), tile.Colour)
		}
	}
	st.Canvas.StrokeLines(st.Grid.Lines(), st.stroke.Colour, st.stroke.Style)

	next := *st
	next.Stage = StagePainted
	return &next, nil
}

// advance records progress of the current run.
func (o *Orchestrator) advance(gen uint64, stage Stage) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if gen == o.generation {
		o.stage = stage
	}
}

// abort restores the stage held before a failed run, so Stage and State
// keep describing the last committed result.
func (o *Orchestrator) abort(gen uint64, prior Stage) {
	o.advance(gen, prior)
}

// commit publishes st unless a newer run or parameter change has started.
func (o *Orchestrator) commit(gen uint64, st *PipelineState) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		o.logger.Debug("discarding stale run", "generation", gen, "current", o.generation)
		return ErrSuperseded
	}
	o.visible = st
	o.stage = StagePainted
	return nil
}

// surfaceSize resolves the configured surface size against the image bounds.
func surfaceSize(cfg Config, b image.Rectangle) (int, int) {
	w, h := cfg.Width, cfg.Height
	iw, ih := b.Dx(), b.Dy()

	switch {
	case w == 0 && h == 0:
		return iw, ih
	case w == 0 && ih > 0:
		return max(1, h*iw/ih), h
	case h == 0 && iw > 0:
		return w, max(1, w*ih/iw)
	default:
		return w, h
	}
}
