package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	Prepare Phase = iota
	RenderSlides
	Narrate
	Mux
	Done
	PollHealth
)

func (p Phase) String() string {
	switch p {
	case Prepare:
		return "prepare"
	case RenderSlides:
		return "render_slides"
	case Narrate:
		return "narrate"
	case Mux:
		return "mux"
	case Done:
		return "done"
	case PollHealth:
		return "poll_health"
	default:
		return ""
	}
}

func prepareUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Prepare,
		Total:   total,
		Message: fmt.Sprintf("Preparing %d slides...", total),
	}
}

func renderStartUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderSlides,
		Total:   total,
		Message: "Rendering slides...",
	}
}

func slideRenderedUpdate(step, total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderSlides,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] slide rendered", step, total),
	}
}

func narrateUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Narrate,
		Message: "Processing audio...",
	}
}

func muxUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   Mux,
		Message: "Composing video...",
	}
}

func doneUpdate(res *VideoResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Done,
		Step:    len(res.Slides),
		Total:   len(res.Slides),
		Message: "Video generation complete",
		Data:    res,
	}
}

func pollHealthUpdate(step, total int, err error) ProgressUpdate {
	msg := fmt.Sprintf("Waiting for backend (attempt %d)...", step)
	if err != nil {
		msg = fmt.Sprintf("Waiting for backend (attempt %d): %v", step, err)
	}
	return ProgressUpdate{
		Phase:   PollHealth,
		Step:    step,
		Total:   total,
		Message: msg,
	}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}
