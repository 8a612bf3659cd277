package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/formatter"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgClearLog MsgKind = iota
	MsgLogLine
	MsgAlert
	MsgControl
	MsgProgressVisible
	MsgPreview
	MsgHidePreview
	MsgActionDone
	MsgSurfaceClosed
)

type controlUpdate struct {
	id    controller.ControlID
	state controller.ControlState
}

type actionResult struct {
	state controller.State
	err   error
}

func clearLogMsg() Msg { return Msg{kind: MsgClearLog} }

func logLineMsg(line string) Msg { return Msg{kind: MsgLogLine, data: line} }

func alertMsg(text string) Msg { return Msg{kind: MsgAlert, data: text} }

func controlMsg(id controller.ControlID, state controller.ControlState) Msg {
	return Msg{kind: MsgControl, data: controlUpdate{id: id, state: state}}
}

func progressVisibleMsg(visible bool) Msg { return Msg{kind: MsgProgressVisible, data: visible} }

func previewMsg(p formatter.Preview) Msg { return Msg{kind: MsgPreview, data: p} }

func hidePreviewMsg() Msg { return Msg{kind: MsgHidePreview} }

// actionDoneMsg is the constructor for [MsgActionDone]
func actionDoneMsg(state controller.State, err error) Msg {
	return Msg{kind: MsgActionDone, data: actionResult{state: state, err: err}}
}
