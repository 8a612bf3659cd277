package ui

import (
	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
)

var _ controller.Surface = (*Surface)(nil)

// Surface turns controller calls into TUI messages.
//
// The controller runs off the event loop; every call is queued on a channel that the model drains
// one message at a time, so screen updates keep their order.
type Surface struct {
	events    chan Msg
	outputDir string
}

// NewSurface creates a Surface that saves downloads under outputDir.
func NewSurface(outputDir string) *Surface {
	return &Surface{events: make(chan Msg, 64), outputDir: outputDir}
}

func (s *Surface) ClearLog()        { s.events <- clearLogMsg() }
func (s *Surface) Log(line string)  { s.events <- logLineMsg(line) }
func (s *Surface) Alert(msg string) { s.events <- alertMsg(msg) }
func (s *Surface) HidePreview()     { s.events <- hidePreviewMsg() }

func (s *Surface) SetControl(id controller.ControlID, state controller.ControlState) {
	s.events <- controlMsg(id, state)
}

func (s *Surface) ShowProgress(visible bool) { s.events <- progressVisibleMsg(visible) }

func (s *Surface) ShowPreview(p formatter.Preview) { s.events <- previewMsg(p) }

// Save writes a to the output directory.
func (s *Surface) Save(a models.Artifact) (string, error) {
	return formatter.WriteArtifact(s.outputDir, a)
}

// done reports the end of an action.
func (s *Surface) done(state controller.State, err error) {
	s.events <- actionDoneMsg(state, err)
}

// Close stops the surface; the model's pending wait returns [MsgSurfaceClosed].
func (s *Surface) Close() {
	close(s.events)
}
