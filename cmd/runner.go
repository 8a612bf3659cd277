package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/render"
	"github.com/desertthunder/mooc/internal/repositories"
	"github.com/desertthunder/mooc/internal/services"
	"github.com/desertthunder/mooc/internal/shared"
	"github.com/desertthunder/mooc/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	configPath string
	api        *services.APIService
	course     services.CourseService
	video      tasks.VideoPipeline
	db         *sql.DB
	logger     *log.Logger
	output     io.Writer
	now        func() time.Time
}

// RunnerOpts contains configuration options for creating a Runner.
//
// Services left nil are built from Config.
type RunnerOpts struct {
	Config     *shared.Config
	ConfigPath string
	API        *services.APIService
	Course     services.CourseService
	Video      tasks.VideoPipeline
	DB         *sql.DB
	Logger     *log.Logger
	Output     io.Writer
	Clock      func() time.Time
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}

	r := &Runner{
		config:     opts.Config,
		configPath: opts.ConfigPath,
		api:        opts.API,
		course:     opts.Course,
		video:      opts.Video,
		db:         opts.DB,
		logger:     opts.Logger,
		output:     opts.Output,
		now:        opts.Clock,
	}
	r.connect()
	return r
}

// connect builds the backend clients that were not injected.
//
// Raw api and health calls use the configured timeout; generation has none, so it only ends when
// the backend answers or the command is interrupted.
func (r *Runner) connect() {
	backend := r.config.Backend
	if r.api == nil {
		r.api = services.NewAPIService(backend.BaseURL, services.NewHTTPClient(backend.Token, backend.Timeout()))
	}
	if r.course == nil {
		r.course = services.NewCourseClient(services.NewAPIService(backend.BaseURL, services.NewHTTPClient(backend.Token, 0)))
	}
}

// Configure loads the --config file and applies the log level. It runs before every command.
func (r *Runner) Configure(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if path := cmd.String("config"); path != "" {
		r.config = shared.LoadConfigOrDefault(path)
		r.configPath = path
		r.api, r.course, r.video = nil, nil, nil
		r.connect()
	}

	level := shared.ParseLogLevel(r.config.Log.Level)
	if cmd.Bool("verbose") {
		level = log.DebugLevel
	}
	shared.SetLogLevel(r.logger, level)
	return ctx, nil
}

// SetLogger replaces the logger, e.g. to keep log lines off the TUI.
func (r *Runner) SetLogger(l *log.Logger) {
	r.logger = l
}

// Close releases the history database.
func (r *Runner) Close() error {
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, generateCommand, videoCommand, downloadCommand, showCommand,
		historyCommand, healthCommand, logsCommand, apiCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

func (r *Runner) store() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}
	db, err := shared.OpenStore(r.config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to open history: %w", err)
	}
	r.db = db
	return db, nil
}

func (r *Runner) locale() shared.Locale {
	return shared.NewLocale(r.config.UI.Locale)
}

// pipeline returns the video pipeline, building the default renderer-backed one on first use.
func (r *Runner) pipeline() (tasks.VideoPipeline, error) {
	if r.video != nil {
		return r.video, nil
	}
	renderer, err := render.NewRenderer(r.config.Video.Workers)
	if err != nil {
		return nil, err
	}
	r.video = tasks.NewVideoEngine(
		renderer,
		tasks.NewSilentNarrator(r.logger),
		tasks.NewSimulatedMuxer(r.config.Video.SimulateDelay(), r.logger),
		r.logger,
	)
	r.logger.Debug("video pipeline ready", "workers", renderer.Workers())
	return r.video, nil
}

func (r *Runner) controller(results *repositories.ResultRepository) (*controller.Controller, error) {
	video, err := r.pipeline()
	if err != nil {
		return nil, err
	}

	opts := []controller.Option{
		controller.WithLocale(r.locale()),
		controller.WithLogger(r.logger),
		controller.WithClock(r.now),
	}
	if results != nil {
		opts = append(opts, controller.WithStore(results))
	}
	return controller.New(r.course, video, opts...), nil
}

// findResult resolves a history reference: empty means the latest result, digits a sequence number,
// anything else an ID.
func findResult(results *repositories.ResultRepository, ref string) (*models.StoredResult, error) {
	if ref == "" {
		return results.Latest()
	}
	if seq, err := strconv.Atoi(ref); err == nil {
		return results.GetBySequence(seq)
	}
	return results.Get(ref)
}

// loadState rebuilds the page state from history. A missing result gives an empty state, which the
// controller rejects the same way a fresh page does.
func (r *Runner) loadState(db *sql.DB, ref string) (controller.State, error) {
	stored, err := findResult(repositories.NewResultRepository(db), ref)
	if errors.Is(err, shared.ErrResultMissing) && ref == "" {
		return controller.State{}, nil
	}
	if err != nil {
		return controller.State{}, err
	}

	st := controller.State{Current: stored.Result, ResultID: stored.ID}

	artifacts, err := repositories.NewArtifactRepository(db).ListByResult(stored.ID)
	if err != nil {
		return st, err
	}
	for _, a := range artifacts {
		if a.Kind == models.ArtifactSlide {
			st.DownloadEnabled = true
			break
		}
	}
	return st, nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
