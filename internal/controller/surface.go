package controller

import (
	"sync"

	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
)

// LogPrefix starts every activity log line.
const LogPrefix = "> "

// ControlID names one of the three buttons.
type ControlID int

const (
	SubmitControl ControlID = iota
	VideoControl
	DownloadControl
)

func (c ControlID) String() string {
	switch c {
	case SubmitControl:
		return "submit"
	case VideoControl:
		return "video"
	case DownloadControl:
		return "download"
	default:
		return ""
	}
}

// ControlState is how a button looks.
type ControlState struct {
	Enabled bool
	Busy    bool
	Label   string
}

// Surface is everything the controller can change on screen.
//
// Implementations are the terminal printer, the interactive UI and test recorders.
type Surface interface {
	ClearLog()
	Log(line string)
	Alert(msg string)
	SetControl(id ControlID, state ControlState)
	ShowProgress(visible bool)
	ShowPreview(p formatter.Preview)
	HidePreview()
	// Save hands a download to the user and returns where it ended up.
	Save(a models.Artifact) (string, error)
}

// ActivityLog is an append-only list of log lines, cleared at each submission.
//
// It is safe for concurrent use. The TUI log panel and the terminal surface are backed by one.
type ActivityLog struct {
	mu    sync.Mutex
	lines []string
}

func (l *ActivityLog) Append(line string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, line)
}

func (l *ActivityLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = nil
}

// Lines returns a copy of the log in insertion order.
func (l *ActivityLog) Lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string{}, l.lines...)
}

func (l *ActivityLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.lines)
}
