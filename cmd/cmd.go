// submodule cmd contains command definitions
package main

import (
	"time"

	"github.com/urfave/cli/v3"
)

// resultFlag selects a stored result by ID or sequence number; empty means the latest one.
func resultFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "id",
		Usage: "Result ID or sequence number (defaults to the latest result)",
	}
}

// setupCommand handles setup operations for configuration and the history database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Setup and configuration commands",
		Commands: []*cli.Command{
			{
				Name:   "config",
				Usage:  "Write a config file with the default settings",
				Action: r.SetupConfig,
			},
			{
				Name:   "database",
				Usage:  "Initialize database and run migrations",
				Action: r.SetupDatabase,
			},
			{
				Name:   "rollback",
				Usage:  "Revert the most recent database migration",
				Action: r.SetupRollback,
			},
		},
	}
}

// generateCommand submits the course form
func generateCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "generate",
		Aliases: []string{"gen"},
		Usage:   "Generate a course with the multi-agent backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "topic",
				Aliases:  []string{"t"},
				Usage:    "Course topic",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "audience",
				Aliases: []string{"a"},
				Usage:   "Target audience",
			},
			&cli.StringFlag{
				Name:    "duration",
				Aliases: []string{"d"},
				Usage:   "Course length in minutes",
				Value:   "30",
			},
		},
		Action: r.Generate,
	}
}

// videoCommand runs the placeholder video pipeline
func videoCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "video",
		Usage: "Render slide images and run the placeholder video pipeline",
		Flags: []cli.Flag{
			resultFlag(),
			&cli.BoolFlag{
				Name:  "slides",
				Usage: "Save the rendered slide images to the output directory",
				Value: true,
			},
		},
		Action: r.Video,
	}
}

// downloadCommand exports a result
func downloadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "download",
		Usage: "Save a result as course_<timestamp>.json (or .mp4 once a video exists)",
		Flags: []cli.Flag{
			resultFlag(),
			&cli.BoolFlag{
				Name:  "open",
				Usage: "Open the saved file",
			},
		},
		Action: r.Download,
	}
}

// showCommand prints a stored result
func showCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "show",
		Usage: "Show the preview of a stored result",
		Flags: []cli.Flag{
			resultFlag(),
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, markdown, yaml or json",
				Value:   "text",
			},
		},
		Action: r.Show,
	}
}

// historyCommand manages stored results
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Manage generated courses",
		Commands: []*cli.Command{
			{
				Name:    "list",
				Aliases: []string{"ls"},
				Usage:   "List stored results, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of results to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:  "delete",
				Usage: "Delete a stored result",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.HistoryDelete,
			},
		},
	}
}

// healthCommand checks the backend
func healthCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "health",
		Usage: "Check that the backend is up (calls /health)",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "wait",
				Usage: "Poll until the backend reports healthy",
			},
			&cli.DurationFlag{
				Name:  "interval",
				Usage: "Time between polls",
				Value: 2 * time.Second,
			},
			&cli.IntFlag{
				Name:  "attempts",
				Usage: "Number of polls before giving up (0 polls until interrupted)",
				Value: 30,
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
		},
		Action: r.Health,
	}
}

// logsCommand prints agent decision logs
func logsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "Show the agents' decision logs for the last generation",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "agent",
				Usage: "Only show one agent's log",
			},
		},
		Action: r.Logs,
	}
}

// apiCommand handles direct API calls
func apiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "api",
		Usage: "Direct API calls to the backend",
		Commands: []*cli.Command{
			{
				Name:  "get",
				Usage: "Direct GET to the backend, prints raw JSON",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
						Value: true,
					},
				},
				Action: r.APIGet,
			},
			{
				Name:  "post",
				Usage: "Direct POST with JSON body",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "path",
					},
				},
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "data",
						Aliases:  []string{"d"},
						Usage:    "JSON body to send",
						Required: true,
					},
				},
				Action: r.APIPost,
			},
		},
	}
}

// tuiCommand returns the top-level TUI command.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive course generator",
		Action:  r.TUI,
	}
}
