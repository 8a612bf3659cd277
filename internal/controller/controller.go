// package controller implements the client's user actions: submit the course form, generate the
// placeholder video and download the result.
//
// Every action takes the current [State] and returns the next one; the controller itself holds no
// mutable state, so the CLI can rebuild a State per process and the TUI can keep one in its model.
package controller

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/services"
	"github.com/desertthunder/mooc/internal/shared"
	"github.com/desertthunder/mooc/internal/tasks"
)

// State is the page state carried between actions.
type State struct {
	Current         *models.GenerationResult
	ResultID        string // history ID of Current, when stored
	Slides          []models.Artifact
	Video           *models.Artifact
	DownloadEnabled bool
}

// ResultStore persists successful generations.
type ResultStore interface {
	Create(stored *models.StoredResult) error
}

// Controller runs user actions against a [Surface].
type Controller struct {
	svc    services.CourseService
	video  tasks.VideoPipeline
	locale shared.Locale
	now    func() time.Time
	logger *log.Logger
	store  ResultStore
}

// Option configures a [Controller].
type Option func(*Controller)

// WithLocale sets the language of log lines, alerts and labels.
func WithLocale(l shared.Locale) Option { return func(c *Controller) { c.locale = l } }

// WithClock replaces time.Now, which names downloaded files.
func WithClock(now func() time.Time) Option { return func(c *Controller) { c.now = now } }

func WithLogger(l *log.Logger) Option { return func(c *Controller) { c.logger = l } }

// WithStore saves every successful generation.
func WithStore(s ResultStore) Option { return func(c *Controller) { c.store = s } }

// New creates a Controller. Without options it speaks English, uses the wall clock and stores nothing.
func New(svc services.CourseService, video tasks.VideoPipeline, opts ...Option) *Controller {
	c := &Controller{
		svc:    svc,
		video:  video,
		locale: shared.NewLocale("en"),
		now:    time.Now,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Locale returns the controller's language.
func (c *Controller) Locale() shared.Locale { return c.locale }

// Init puts the controls in their starting state.
func (c *Controller) Init(s Surface, st State) {
	s.SetControl(SubmitControl, c.idle(SubmitControl))
	s.SetControl(VideoControl, c.idle(VideoControl))
	download := c.idle(DownloadControl)
	download.Enabled = st.DownloadEnabled
	s.SetControl(DownloadControl, download)
}

// Submit sends the form to the backend.
//
// On success the result becomes current and the preview is shown. A logical failure or a
// transport error is logged and alerted, and the previous state is kept. The submit control is
// enabled with its idle label on every exit path.
func (c *Controller) Submit(ctx context.Context, s Surface, st State, form models.Form) (State, error) {
	defer s.SetControl(SubmitControl, c.idle(SubmitControl))

	req, err := form.Request()
	if err != nil {
		s.ShowProgress(true)
		s.ClearLog()
		c.log(s, shared.MsgRunFailed, err.Error())
		s.Alert(c.locale.T(shared.MsgAlertSystem, err.Error()))
		return st, fmt.Errorf("%w: %v", shared.ErrInvalidInput, err)
	}

	s.ShowProgress(true)
	s.HidePreview()
	s.SetControl(SubmitControl, c.busy(SubmitControl))
	s.ClearLog()

	c.log(s, shared.MsgStarting)
	c.log(s, shared.MsgTopic, req.Topic)
	c.log(s, shared.MsgAudienceLine, req.TargetAudience)
	c.log(s, shared.MsgDurationLine, req.DurationMinutes)
	c.logLine(s, "")

	c.logger.Info("submitting course request", "topic", req.Topic, "audience", req.TargetAudience, "minutes", req.DurationMinutes)

	result, err := c.svc.Generate(ctx, req)
	if err != nil {
		c.log(s, shared.MsgNetworkError, err.Error())
		s.Alert(c.locale.T(shared.MsgAlertSystem, err.Error()))
		return st, err
	}
	if result == nil {
		err := fmt.Errorf("%w: empty response", shared.ErrInvalidResponse)
		c.log(s, shared.MsgNetworkError, err.Error())
		s.Alert(c.locale.T(shared.MsgAlertSystem, err.Error()))
		return st, err
	}
	if !result.Success {
		c.log(s, shared.MsgRunFailed, result.Error)
		s.Alert(c.locale.T(shared.MsgAlertFailed, result.Error))
		return st, fmt.Errorf("%w: %s", shared.ErrGenerationFailed, result.Error)
	}

	next := State{Current: result, DownloadEnabled: st.DownloadEnabled}
	if c.store != nil {
		stored := &models.StoredResult{Request: req, Result: result, CreatedAt: c.now()}
		if err := c.store.Create(stored); err != nil {
			c.logger.Warn("failed to save result to history", "error", err)
		} else {
			next.ResultID = stored.ID
		}
	}

	c.log(s, shared.MsgAllAgentsDone)
	c.log(s, shared.MsgElapsed, strconv.FormatFloat(result.ElapsedTime, 'f', 2, 64))

	c.ShowPreview(s, next)
	return next, nil
}

// ShowPreview renders the current result, replacing any earlier preview.
func (c *Controller) ShowPreview(s Surface, st State) {
	if st.Current == nil {
		return
	}
	s.ShowPreview(formatter.NewPreview(st.Current, c.locale))
	c.log(s, shared.MsgSlideCount, len(st.Current.Slides()))
}

// GenerateVideo renders the slides of the current result and runs the video pipeline.
//
// Without a current result the user is told to generate content first. On success the slide
// images are kept in order and the download control is enabled; on failure they are discarded.
func (c *Controller) GenerateVideo(ctx context.Context, s Surface, st State) (State, error) {
	if st.Current == nil {
		s.Alert(c.locale.T(shared.MsgNeedContent))
		return st, shared.ErrNoResult
	}
	if c.video == nil {
		s.Alert(c.locale.T(shared.MsgVideoFailed, shared.ErrNotImplemented.Error()))
		return st, fmt.Errorf("%w: %v", shared.ErrVideoFailed, shared.ErrNotImplemented)
	}

	defer s.SetControl(VideoControl, c.idle(VideoControl))
	s.SetControl(VideoControl, c.busy(VideoControl))

	c.logLine(s, "")
	c.log(s, shared.MsgVideoStart)

	// Buffered for every update one run can emit, so none are dropped.
	progress := make(chan tasks.ProgressUpdate, len(st.Current.Slides())+8)
	consumed := make(chan struct{})
	go func() {
		defer close(consumed)
		for update := range progress {
			c.logProgress(s, update)
		}
	}()

	res, err := c.video.Run(ctx, st.Current, progress)
	close(progress)
	<-consumed

	if err != nil {
		c.log(s, shared.MsgVideoFailedLog, err.Error())
		s.Alert(c.locale.T(shared.MsgVideoFailed, err.Error()))
		if !errors.Is(err, shared.ErrVideoFailed) {
			err = fmt.Errorf("%w: %w", shared.ErrVideoFailed, err)
		}
		return st, err
	}

	next := st
	next.Slides = res.Slides
	next.Video = res.Video
	next.DownloadEnabled = true

	c.log(s, shared.MsgVideoDone)
	s.SetControl(DownloadControl, c.idle(DownloadControl))
	return next, nil
}

func (c *Controller) logProgress(s Surface, u tasks.ProgressUpdate) {
	c.logger.Debug(u.Message, "phase", u.Phase, "step", u.Step, "total", u.Total)

	switch {
	case u.Phase == tasks.Prepare:
		c.log(s, shared.MsgVideoPrepare)
	case u.Phase == tasks.RenderSlides && u.Step == 0:
		c.log(s, shared.MsgVideoRender)
	case u.Phase == tasks.Narrate:
		c.log(s, shared.MsgVideoAudio)
	case u.Phase == tasks.Mux:
		c.log(s, shared.MsgVideoMux)
	}
}

// Download hands the best available output to the surface.
//
// A video artifact wins and is saved as course_<unix-ms>.mp4. Otherwise the current result is
// saved as indented JSON in course_<unix-ms>.json. With neither, nothing is saved.
func (c *Controller) Download(ctx context.Context, s Surface, st State) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := c.now()

	var (
		artifact models.Artifact
		msg      string
	)
	switch {
	case st.Video != nil:
		artifact = *st.Video
		artifact.Name = formatter.ExportFilename(now, "mp4")
		if artifact.MIME == "" {
			artifact.MIME = "video/mp4"
		}
		msg = shared.MsgVideoDownloaded
	case st.Current != nil:
		a, err := formatter.JSONArtifact(st.Current, now)
		if err != nil {
			s.Alert(c.locale.T(shared.MsgAlertSystem, err.Error()))
			return "", err
		}
		artifact = a
		msg = shared.MsgJSONDownloaded
	default:
		s.Alert(c.locale.T(shared.MsgNeedContent))
		return "", shared.ErrNothingToSave
	}

	path, err := s.Save(artifact)
	if err != nil {
		s.Alert(c.locale.T(shared.MsgAlertSystem, err.Error()))
		return "", err
	}

	c.log(s, msg, path)
	return path, nil
}

func (c *Controller) idle(id ControlID) ControlState {
	return ControlState{Enabled: true, Label: c.locale.T(idleLabels[id])}
}

func (c *Controller) busy(id ControlID) ControlState {
	return ControlState{Enabled: false, Busy: true, Label: c.locale.T(busyLabels[id])}
}

var idleLabels = map[ControlID]string{
	SubmitControl:   shared.MsgSubmitIdle,
	VideoControl:    shared.MsgVideoIdle,
	DownloadControl: shared.MsgDownloadIdle,
}

var busyLabels = map[ControlID]string{
	SubmitControl:   shared.MsgSubmitBusy,
	VideoControl:    shared.MsgVideoBusy,
	DownloadControl: shared.MsgDownloadIdle,
}

func (c *Controller) log(s Surface, key string, args ...any) {
	c.logLine(s, c.locale.T(key, args...))
}

func (c *Controller) logLine(s Surface, msg string) {
	c.logger.Debug("activity", "line", msg)
	s.Log(LogPrefix + msg)
}
