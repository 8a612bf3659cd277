package main

import (
	"context"
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mooc/internal/repositories"
	"github.com/desertthunder/mooc/internal/shared"
	"github.com/desertthunder/mooc/internal/ui"
)

// TUI launches the interactive course generator, starting from the latest stored result.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(filepath.Join("tmp", "mooc-tui.log"))
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.SetLogLevel(fileLogger, r.logger.GetLevel())
	r.SetLogger(fileLogger)
	r.video = nil

	db, err := r.store()
	if err != nil {
		return err
	}

	st, err := r.loadState(db, "")
	if err != nil {
		return err
	}

	ctrl, err := r.controller(repositories.NewResultRepository(db))
	if err != nil {
		return err
	}

	model := ui.NewModel(ctx, ctrl, ui.NewSurface(r.config.Output.Dir), st)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
