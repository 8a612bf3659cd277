package main

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/mooc/internal/repositories"
	"github.com/desertthunder/mooc/internal/shared"
)

type historyEntry struct {
	Sequence  int       `json:"sequence"`
	ID        string    `json:"id"`
	Title     string    `json:"course_title"`
	Topic     string    `json:"topic"`
	Slides    int       `json:"slide_count"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryList prints stored results, newest first.
func (r *Runner) HistoryList(ctx context.Context, cmd *cli.Command) error {
	db, err := r.store()
	if err != nil {
		return err
	}

	stored, err := repositories.NewResultRepository(db).List(cmd.Int("limit"))
	if err != nil {
		return err
	}

	entries := make([]historyEntry, len(stored))
	for i, s := range stored {
		entries[i] = historyEntry{
			Sequence:  s.Sequence,
			ID:        s.ID,
			Title:     s.Result.Results.Curriculum.CourseTitle,
			Topic:     s.Request.Topic,
			Slides:    len(s.Result.Slides()),
			CreatedAt: s.CreatedAt,
		}
	}

	if cmd.Bool("json") {
		return r.writeJSON(entries, true)
	}

	if len(entries) == 0 {
		return r.writePlain("No courses generated yet\n")
	}

	r.writePlainHeader("Generated courses")
	for _, e := range entries {
		r.writePlain("#%-4d %s  %s (%d slides)\n", e.Sequence, e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Title, e.Slides)
	}
	return nil
}

// HistoryDelete removes a stored result by ID or sequence number.
func (r *Runner) HistoryDelete(ctx context.Context, cmd *cli.Command) error {
	ref := cmd.StringArg("id")
	if ref == "" {
		return fmt.Errorf("%w: result ID or sequence number", shared.ErrMissingArgument)
	}

	db, err := r.store()
	if err != nil {
		return err
	}

	results := repositories.NewResultRepository(db)
	stored, err := findResult(results, ref)
	if err != nil {
		return err
	}
	if err := results.Delete(stored.ID); err != nil {
		return err
	}

	r.logger.Info("result deleted", "id", stored.ID, "sequence", stored.Sequence)
	return r.writePlain("✓ Deleted #%d\n", stored.Sequence)
}
