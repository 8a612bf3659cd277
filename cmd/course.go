package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/repositories"
	"github.com/desertthunder/mooc/internal/shared"
)

// Generate submits the course form and stores the result in history.
//
// History is optional here: when the database cannot be opened the course is still generated.
func (r *Runner) Generate(ctx context.Context, cmd *cli.Command) error {
	form := models.Form{
		Topic:    cmd.String("topic"),
		Audience: cmd.String("audience"),
		Duration: cmd.String("duration"),
	}

	var results *repositories.ResultRepository
	if db, err := r.store(); err != nil {
		r.logger.Warn("history unavailable, result will not be saved", "error", err)
	} else {
		results = repositories.NewResultRepository(db)
	}

	ctrl, err := r.controller(results)
	if err != nil {
		return err
	}

	st, err := ctrl.Submit(ctx, r.newSurface(nil, ""), controller.State{}, form)
	if err != nil {
		return err
	}

	if results != nil && st.ResultID != "" {
		stored, err := results.Get(st.ResultID)
		if err != nil {
			return err
		}
		r.writePlain("Saved as #%d (%s)\n", stored.Sequence, stored.ID)
	}
	return nil
}

// Video renders the slides of a stored result and runs the placeholder pipeline.
func (r *Runner) Video(ctx context.Context, cmd *cli.Command) error {
	db, err := r.store()
	if err != nil {
		return err
	}

	st, err := r.loadState(db, cmd.String("id"))
	if err != nil {
		return err
	}

	ctrl, err := r.controller(nil)
	if err != nil {
		return err
	}

	surface := r.newSurface(repositories.NewArtifactRepository(db), st.ResultID)
	next, err := ctrl.GenerateVideo(ctx, surface, st)
	if err != nil {
		return err
	}

	if !cmd.Bool("slides") {
		return nil
	}

	for _, slide := range next.Slides {
		if _, err := surface.Save(slide); err != nil {
			return fmt.Errorf("failed to save %s: %w", slide.Name, err)
		}
	}
	return r.writePlainln("✓ %d slide images saved to %s", len(next.Slides), r.config.Output.Dir)
}

// Download saves a stored result (or its video, once one exists) to the output directory.
func (r *Runner) Download(ctx context.Context, cmd *cli.Command) error {
	db, err := r.store()
	if err != nil {
		return err
	}

	st, err := r.loadState(db, cmd.String("id"))
	if err != nil {
		return err
	}

	ctrl, err := r.controller(nil)
	if err != nil {
		return err
	}

	path, err := ctrl.Download(ctx, r.newSurface(repositories.NewArtifactRepository(db), st.ResultID), st)
	if err != nil {
		return err
	}

	if cmd.Bool("open") {
		if err := shared.OpenPath(path); err != nil {
			r.logger.Warn("failed to open file", "path", path, "error", err)
		}
	}
	return nil
}

// Show prints the preview of a stored result in the requested format.
func (r *Runner) Show(ctx context.Context, cmd *cli.Command) error {
	db, err := r.store()
	if err != nil {
		return err
	}

	stored, err := findResult(repositories.NewResultRepository(db), cmd.String("id"))
	if err != nil {
		return err
	}

	loc := r.locale()
	preview := formatter.NewPreview(stored.Result, loc)

	var data []byte
	switch format := cmd.String("format"); format {
	case "", "text":
		data = formatter.ToText(preview, loc)
	case "markdown", "md":
		data = formatter.ToMarkdown(preview, loc)
	case "yaml", "yml":
		if data, err = formatter.ToYAML(preview); err != nil {
			return err
		}
	case "json":
		if data, err = formatter.ResultJSON(stored.Result); err != nil {
			return err
		}
		data = append(data, '\n')
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}

	if _, err := r.output.Write(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
