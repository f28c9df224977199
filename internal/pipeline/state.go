package pipeline

import (
	"github.com/jmylchreest/pixelize/internal/colour"
	"github.com/jmylchreest/pixelize/internal/grid"
	"github.com/jmylchreest/pixelize/internal/surface"
)

// Stage is a pipeline state-machine stage.
type Stage int

const (
	StageIdle Stage = iota
	StageConfigured
	StageSampled
	StagePainted
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageConfigured:
		return "configured"
	case StageSampled:
		return "sampled"
	case StagePainted:
		return "painted"
	default:
		return "unknown"
	}
}

// PipelineState is the value passed between transitions of a single run.
type PipelineState struct {
	Stage  Stage
	Config Config

	// Grid owns the tiles. Set from StageConfigured.
	Grid *grid.Grid

	// Canvas is the working surface. It becomes visible only once the run commits.
	Canvas *surface.Canvas

	// Frequency is the tile colour tally. Set from StageSampled.
	Frequency *colour.FrequencyIndex

	reducer colour.Reducer
	stroke  Stroke
}
