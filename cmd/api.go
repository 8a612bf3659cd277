package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mooc/internal/services"
	"github.com/desertthunder/mooc/internal/shared"
	"github.com/desertthunder/mooc/internal/tasks"
)

// APIGet makes a direct GET request to the backend
func (r *Runner) APIGet(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}

	r.logger.Info("GET request", "path", path)

	resp, err := r.api.Get(ctx, path)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, !cmd.Bool("json"))
	}
	return r.writePlain("%s\n", resp.Body)
}

// APIPost makes a direct POST request to the backend
func (r *Runner) APIPost(ctx context.Context, cmd *cli.Command) error {
	path := cmd.StringArg("path")
	data := cmd.String("data")

	if path == "" {
		return fmt.Errorf("%w: path", shared.ErrMissingArgument)
	}
	if data == "" {
		return fmt.Errorf("%w: --data flag is required", shared.ErrMissingArgument)
	}

	r.logger.Info("POST request", "path", path)

	if !json.Valid([]byte(data)) {
		return fmt.Errorf("%w: data is not valid JSON", shared.ErrInvalidInput)
	}

	resp, err := r.api.Post(ctx, path, []byte(data))
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if !resp.OK() {
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, resp.StatusCode, string(resp.Body))
	}

	if resp.IsJSON {
		return r.writeJSON(resp.JSONData, true)
	}
	return r.writePlain("%s\n", resp.Body)
}

// withTimeout applies the configured backend timeout to short calls.
func (r *Runner) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if timeout := r.config.Backend.Timeout(); timeout > 0 {
		return context.WithTimeout(ctx, timeout)
	}
	return context.WithCancel(ctx)
}

// Health reports the backend status, optionally polling until it is healthy.
func (r *Runner) Health(ctx context.Context, cmd *cli.Command) error {
	var status *services.HealthStatus
	var err error

	if cmd.Bool("wait") {
		progress := make(chan tasks.ProgressUpdate, 8)
		done := make(chan struct{})
		go func() {
			defer close(done)
			for u := range progress {
				r.logger.Info(u.Message)
			}
		}()

		status, err = tasks.WaitHealthy(ctx, r.course, cmd.Duration("interval"), cmd.Int("attempts"), progress)
		close(progress)
		<-done
	} else {
		ctx, cancel := r.withTimeout(ctx)
		defer cancel()

		status, err = r.course.Health(ctx)
		if err == nil && !status.Healthy() {
			err = fmt.Errorf("%w: status %q", shared.ErrServiceUnavailable, status.Status)
		}
	}
	if err != nil {
		return err
	}

	if cmd.Bool("json") {
		return r.writeJSON(status, true)
	}

	r.writePlain("✓ %s %s is %s\n", status.Service, status.Version, status.Status)
	r.writePlain("  Ollama configured: %t\n", status.OllamaConfigured)
	r.writePlain("  Gemini configured: %t\n", status.GeminiConfigured)
	return nil
}

// Logs prints the agents' decision logs as JSON.
func (r *Runner) Logs(ctx context.Context, cmd *cli.Command) error {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	logs, err := r.course.DecisionLogs(ctx)
	if err != nil {
		return err
	}

	if agent := cmd.String("agent"); agent != "" {
		entries, ok := logs[agent]
		if !ok {
			return fmt.Errorf("%w: no decision log for agent %q", shared.ErrInvalidArgument, agent)
		}
		return r.writeJSON(entries, true)
	}
	return r.writeJSON(logs, true)
}
