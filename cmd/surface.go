package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/repositories"
	"github.com/desertthunder/mooc/internal/shared"
)

var _ controller.Surface = (*terminalSurface)(nil)

// terminalSurface prints the activity log and the preview to the command's output and saves
// downloads under the output directory, recording each file in history.
type terminalSurface struct {
	controller.ActivityLog

	out       io.Writer
	locale    shared.Locale
	dir       string
	artifacts *repositories.ArtifactRepository
	resultID  string
	logger    *log.Logger
}

func (r *Runner) newSurface(artifacts *repositories.ArtifactRepository, resultID string) *terminalSurface {
	return &terminalSurface{
		out:       r.output,
		locale:    r.locale(),
		dir:       r.config.Output.Dir,
		artifacts: artifacts,
		resultID:  resultID,
		logger:    r.logger,
	}
}

// ClearLog starts a new log; lines already printed stay on screen.
func (s *terminalSurface) ClearLog() { s.Clear() }

func (s *terminalSurface) Log(line string) {
	s.Append(line)
	fmt.Fprintln(s.out, line)
}

func (s *terminalSurface) Alert(msg string) { fmt.Fprintf(s.out, "! %s\n", msg) }

func (s *terminalSurface) SetControl(id controller.ControlID, state controller.ControlState) {
	s.logger.Debug("control", "id", id, "enabled", state.Enabled, "busy", state.Busy, "label", state.Label)
}

func (s *terminalSurface) ShowProgress(bool) {}

func (s *terminalSurface) ShowPreview(p formatter.Preview) {
	fmt.Fprintln(s.out)
	s.out.Write(formatter.ToText(p, s.locale))
	fmt.Fprintln(s.out)
}

func (s *terminalSurface) HidePreview() {}

// Save writes a and, when the result is in history, records the file against it.
func (s *terminalSurface) Save(a models.Artifact) (string, error) {
	path, err := formatter.WriteArtifact(s.dir, a)
	if err != nil {
		return "", err
	}

	if s.artifacts != nil && s.resultID != "" {
		record := &models.StoredArtifact{ResultID: s.resultID, Kind: a.Kind, Path: path}
		if err := s.artifacts.Create(record); err != nil {
			s.logger.Warn("failed to record artifact", "path", path, "error", err)
		}
	}
	return path, nil
}
