package ui

import (
	"context"
	"io"
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
	th "github.com/desertthunder/mooc/internal/testing"
)

func newTestModel(t *testing.T, svc *th.MockCourseService, state controller.State) *Model {
	t.Helper()
	ctrl := controller.New(svc, nil, controller.WithLogger(shared.NewLogger(io.Discard)))
	m := NewModel(context.Background(), ctrl, NewSurface(t.TempDir()), state)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// drain feeds queued surface events to the model until the running action reports back.
func drain(t *testing.T, m *Model) {
	t.Helper()
	for i := 0; i < 100; i++ {
		msg := m.waitForEvent()()
		m.Update(msg)
		if ev, ok := msg.(Msg); ok && (ev.kind == MsgActionDone || ev.kind == MsgSurfaceClosed) {
			return
		}
	}
	t.Fatal("action never finished")
}

func runCmd(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	cmd()
}

func TestModel_Form(t *testing.T) {
	m := newTestModel(t, &th.MockCourseService{}, controller.State{})

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Go")})
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("devs")})

	form := m.Form()
	if form.Topic != "Go" || form.Audience != "devs" || form.Duration != "30" {
		t.Errorf("unexpected form %+v", form)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != topicField {
		t.Errorf("expected focus back on topic, got %d", m.focus)
	}
}

func TestModel_SurfaceEvents(t *testing.T) {
	m := newTestModel(t, &th.MockCourseService{}, controller.State{})

	t.Run("Log", func(t *testing.T) {
		m.apply(progressVisibleMsg(true))
		m.apply(logLineMsg("> first"))
		m.apply(logLineMsg("> second"))

		if m.activity.Len() != 2 {
			t.Fatalf("expected 2 lines, got %d", m.activity.Len())
		}
		if !strings.Contains(m.View(), "> second") {
			t.Error("log panel should show the latest line")
		}

		m.apply(clearLogMsg())
		if m.activity.Len() != 0 {
			t.Error("log should be cleared")
		}
	})

	t.Run("Preview", func(t *testing.T) {
		p := formatter.Preview{
			Summary: formatter.Summary{Title: "Intro to Go", Audience: "beginners", Duration: "10", ChapterCount: 2},
			Cards:   []formatter.Card{{Index: 1, Title: "Welcome", Type: "title"}, {Index: 2, Title: "Slide 2", Type: "content"}},
		}
		m.apply(previewMsg(p))

		if len(m.slides.Items()) != 2 {
			t.Errorf("expected 2 cards, got %d", len(m.slides.Items()))
		}
		if !strings.Contains(m.View(), "Intro to Go") {
			t.Error("view should include the course title")
		}

		m.apply(hidePreviewMsg())
		if m.preview != nil {
			t.Error("preview should be hidden")
		}
	})

	t.Run("Controls", func(t *testing.T) {
		m.apply(controlMsg(controller.SubmitControl, controller.ControlState{Busy: true, Label: "Generating..."}))
		if !strings.Contains(m.View(), "Generating...") {
			t.Error("view should show the busy label")
		}
	})

	t.Run("Alert", func(t *testing.T) {
		m.apply(alertMsg("Course generation failed: X"))
		if !strings.Contains(m.View(), "Course generation failed: X") {
			t.Error("view should show the alert")
		}

		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("z")})
		if m.alert == "" {
			t.Error("other keys should not dismiss the alert")
		}
		m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		if m.alert != "" {
			t.Error("esc should dismiss the alert")
		}
	})
}

func TestModel_Actions(t *testing.T) {
	t.Run("Submit", func(t *testing.T) {
		svc := &th.MockCourseService{Result: th.SampleResult(models.Slide{SlideType: "title", Title: "Welcome"}, models.Slide{SlideType: "content"})}
		m := newTestModel(t, svc, controller.State{})
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Go")})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		if !m.running {
			t.Error("model should be running an action")
		}
		runCmd(t, cmd)
		drain(t, m)

		if m.running {
			t.Error("action should be finished")
		}
		if m.State().Current == nil {
			t.Fatal("result should be current")
		}
		if svc.Requests[0].DurationMinutes != 30 {
			t.Errorf("duration = %d", svc.Requests[0].DurationMinutes)
		}
		if m.preview == nil || len(m.slides.Items()) != 2 {
			t.Error("preview should list two slides")
		}
		if c := m.controls[controller.SubmitControl]; !c.Enabled || c.Busy {
			t.Errorf("submit control left as %+v", c)
		}
	})

	t.Run("One Action At A Time", func(t *testing.T) {
		m := newTestModel(t, &th.MockCourseService{Result: th.SampleResult()}, controller.State{})

		_, first := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
		_, second := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
		if first == nil || second != nil {
			t.Error("second action should be ignored while the first runs")
		}
	})

	t.Run("Video Without Content", func(t *testing.T) {
		m := newTestModel(t, &th.MockCourseService{}, controller.State{})

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlG})
		runCmd(t, cmd)
		drain(t, m)

		if m.alert != "Please generate course content first" {
			t.Errorf("alert = %q", m.alert)
		}
	})

	t.Run("Download Disabled Until Video", func(t *testing.T) {
		m := newTestModel(t, &th.MockCourseService{}, controller.State{Current: th.SampleResult()})
		m.apply(controlMsg(controller.DownloadControl, controller.ControlState{Enabled: false}))

		if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD}); cmd != nil {
			t.Error("download should be ignored while disabled")
		}
	})

	t.Run("Download", func(t *testing.T) {
		m := newTestModel(t, &th.MockCourseService{}, controller.State{Current: th.SampleResult(), DownloadEnabled: true})
		m.apply(controlMsg(controller.DownloadControl, controller.ControlState{Enabled: true}))

		_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
		runCmd(t, cmd)
		drain(t, m)

		entries, err := os.ReadDir(m.surface.outputDir)
		if err != nil {
			t.Fatal(err)
		}
		if len(entries) != 1 || !strings.HasPrefix(entries[0].Name(), "course_") {
			t.Errorf("expected one course file, got %v", entries)
		}
	})
}

func TestModel_Init(t *testing.T) {
	m := newTestModel(t, &th.MockCourseService{}, controller.State{Current: th.SampleResult(models.Slide{Title: "A"})})

	if cmd := m.Init(); cmd == nil {
		t.Fatal("Init should return a command")
	}

	// Init's setup runs inside a batched command; call it the same way.
	m.ctrl.Init(m.surface, m.state)
	m.ctrl.ShowPreview(m.surface, m.state)
	for i := 0; i < 5; i++ {
		m.Update(m.waitForEvent()())
	}

	if m.preview == nil || len(m.slides.Items()) != 1 {
		t.Error("stored result should be previewed at start")
	}
	if c := m.controls[controller.DownloadControl]; c.Enabled {
		t.Error("download should start disabled")
	}
}

func TestSurface(t *testing.T) {
	t.Run("Save", func(t *testing.T) {
		dir := t.TempDir()
		s := NewSurface(dir)

		path, err := s.Save(models.Artifact{Name: "course_1.json", Data: []byte("{}")})
		if err != nil {
			t.Fatalf("Save failed: %v", err)
		}
		th.AssertFileExists(t, path)
	})

	t.Run("Close", func(t *testing.T) {
		s := NewSurface(t.TempDir())
		m := &Model{surface: s}
		s.Close()

		msg, ok := m.waitForEvent()().(Msg)
		if !ok || msg.kind != MsgSurfaceClosed {
			t.Errorf("expected closed message, got %#v", msg)
		}
	})
}
