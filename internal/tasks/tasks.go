package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

// SlideRenderer rasterizes a slide deck into image artifacts, in slide order.
type SlideRenderer interface {
	Render(ctx context.Context, slides []models.Slide, done func(n, total int)) ([]models.Artifact, error)
}

// Narrator turns a course into a narration track.
//
// A nil artifact with a nil error means no audio was produced.
type Narrator interface {
	Narrate(ctx context.Context, result *models.GenerationResult, slides []models.Artifact) (*models.Artifact, error)
}

// Muxer combines slide images and narration into a playable container.
//
// A nil artifact with a nil error means no video was produced.
type Muxer interface {
	Mux(ctx context.Context, slides []models.Artifact, audio *models.Artifact) (*models.Artifact, error)
}

// VideoResult holds everything one pipeline run produced.
type VideoResult struct {
	Slides []models.Artifact
	Audio  *models.Artifact
	Video  *models.Artifact
}

// VideoPipeline is what callers need from [VideoEngine].
type VideoPipeline interface {
	Run(ctx context.Context, result *models.GenerationResult, progress chan<- ProgressUpdate) (*VideoResult, error)
}

var _ VideoPipeline = (*VideoEngine)(nil)

// VideoEngine runs render, narrate and mux in sequence.
type VideoEngine struct {
	renderer SlideRenderer
	narrator Narrator
	muxer    Muxer
	logger   *log.Logger
}

// NewVideoEngine creates a [VideoEngine]. A nil narrator or muxer is replaced by its placeholder.
func NewVideoEngine(renderer SlideRenderer, narrator Narrator, muxer Muxer, logger *log.Logger) *VideoEngine {
	if logger == nil {
		logger = log.Default()
	}
	if narrator == nil {
		narrator = NewSilentNarrator(logger)
	}
	if muxer == nil {
		muxer = NewSimulatedMuxer(shared.DefaultSimulateDelay, logger)
	}
	return &VideoEngine{renderer: renderer, narrator: narrator, muxer: muxer, logger: logger}
}

// Run executes the pipeline for result.
//
// Any step failing aborts the run; slides rendered before the failure are not returned.
func (e *VideoEngine) Run(ctx context.Context, result *models.GenerationResult, progress chan<- ProgressUpdate) (*VideoResult, error) {
	if result == nil {
		return nil, shared.ErrNoResult
	}
	if e.renderer == nil {
		return nil, fmt.Errorf("%w: no renderer configured", shared.ErrVideoFailed)
	}

	slides := result.Slides()
	sendProgress(progress, prepareUpdate(len(slides)))

	sendProgress(progress, renderStartUpdate(len(slides)))
	images, err := e.renderer.Render(ctx, slides, func(n, total int) {
		sendProgress(progress, slideRenderedUpdate(n, total))
	})
	if err != nil {
		return nil, err
	}
	e.logger.Debug("slides rendered", "count", len(images))

	sendProgress(progress, narrateUpdate())
	audio, err := e.narrator.Narrate(ctx, result, images)
	if err != nil {
		return nil, fmt.Errorf("%w: narration: %v", shared.ErrVideoFailed, err)
	}

	sendProgress(progress, muxUpdate())
	video, err := e.muxer.Mux(ctx, images, audio)
	if err != nil {
		return nil, fmt.Errorf("%w: mux: %v", shared.ErrVideoFailed, err)
	}

	res := &VideoResult{Slides: images, Audio: audio, Video: video}
	sendProgress(progress, doneUpdate(res))
	return res, nil
}

// SilentNarrator is a placeholder [Narrator]. It produces no audio.
type SilentNarrator struct {
	logger *log.Logger
}

func NewSilentNarrator(logger *log.Logger) *SilentNarrator {
	if logger == nil {
		logger = log.Default()
	}
	return &SilentNarrator{logger: logger}
}

func (n *SilentNarrator) Narrate(ctx context.Context, result *models.GenerationResult, slides []models.Artifact) (*models.Artifact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	n.logger.Debug("narration skipped: no speech synthesizer configured", "slides", len(slides))
	return nil, nil
}

// SimulatedMuxer is a placeholder [Muxer]. It waits for Delay and produces no video.
type SimulatedMuxer struct {
	Delay  time.Duration
	logger *log.Logger
}

func NewSimulatedMuxer(delay time.Duration, logger *log.Logger) *SimulatedMuxer {
	if logger == nil {
		logger = log.Default()
	}
	return &SimulatedMuxer{Delay: delay, logger: logger}
}

func (m *SimulatedMuxer) Mux(ctx context.Context, slides []models.Artifact, audio *models.Artifact) (*models.Artifact, error) {
	m.logger.Debug("simulating video encoding", "slides", len(slides), "delay", m.Delay)
	if m.Delay <= 0 {
		return nil, ctx.Err()
	}

	timer := time.NewTimer(m.Delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-timer.C:
		return nil, nil
	}
}
