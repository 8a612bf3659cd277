package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/mooc/internal/controller"
	"github.com/desertthunder/mooc/internal/formatter"
	"github.com/desertthunder/mooc/internal/models"
	"github.com/desertthunder/mooc/internal/shared"
)

// Form fields, in tab order.
const (
	topicField = iota
	audienceField
	durationField
	fieldCount
)

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	ctrl     *controller.Controller
	locale   shared.Locale
	surface  *Surface
	state    controller.State
	running  bool
	inputs   []textinput.Model
	focus    int
	onSlides bool
	controls map[controller.ControlID]controller.ControlState
	activity controller.ActivityLog
	logView  viewport.Model
	progress bool
	preview  *formatter.Preview
	slides   list.Model
	alert    string
	spinner  spinner.Model
	width    int
	height   int
	help     help.Model
	keys     keyMap
}

// NewModel creates a new TUI model. state is the starting page state, usually the latest stored result.
func NewModel(ctx context.Context, ctrl *controller.Controller, surface *Surface, state controller.State) *Model {
	loc := ctrl.Locale()

	placeholders := []string{"Python", "beginners", "30"}
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.CharLimit = 200
		inputs[i] = in
	}
	inputs[durationField].CharLimit = 4
	inputs[durationField].SetValue("30")
	inputs[topicField].Focus()

	slides := list.New([]list.Item{}, list.NewDefaultDelegate(), 0, 0)
	slides.SetShowHelp(false)
	slides.SetFilteringEnabled(false)
	slides.Title = loc.T(shared.MsgSlides)

	return &Model{
		ctx:      ctx,
		ctrl:     ctrl,
		locale:   loc,
		surface:  surface,
		state:    state,
		inputs:   inputs,
		controls: map[controller.ControlID]controller.ControlState{},
		logView:  viewport.New(80, 8),
		slides:   slides,
		spinner:  spinner.New(spinner.WithSpinner(spinner.Dot)),
		help:     help.New(),
		keys:     newKeyMap(),
	}
}

// State returns the page state as of the last finished action.
func (m *Model) State() controller.State { return m.state }

// Init sets up the controls, shows a stored result if there is one and starts listening for surface events.
func (m *Model) Init() tea.Cmd {
	st := m.state
	setup := func() tea.Msg {
		m.ctrl.Init(m.surface, st)
		if st.Current != nil {
			m.ctrl.ShowPreview(m.surface, st)
		}
		return nil
	}
	return tea.Batch(textinput.Blink, m.spinner.Tick, setup, m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logView.Width = max(msg.Width-4, 20)
		m.logView.Height = max(msg.Height/4, 4)
		m.slides.SetSize(max(msg.Width-4, 20), max(msg.Height/3, 6))
		return m, nil

	case tea.KeyMsg:
		return m.handleKeys(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		if msg.kind == MsgSurfaceClosed {
			return m, nil
		}
		m.apply(msg)
		return m, m.waitForEvent()
	}

	return m.updateInputs(msg)
}

// apply changes the screen for one surface event.
func (m *Model) apply(msg Msg) {
	switch msg.kind {
	case MsgClearLog:
		m.activity.Clear()
		m.refreshLog()
	case MsgLogLine:
		m.activity.Append(msg.data.(string))
		m.refreshLog()
	case MsgAlert:
		m.alert = msg.data.(string)
	case MsgControl:
		u := msg.data.(controlUpdate)
		m.controls[u.id] = u.state
	case MsgProgressVisible:
		m.progress = msg.data.(bool)
	case MsgPreview:
		p := msg.data.(formatter.Preview)
		m.preview = &p
		m.slides.SetItems(cardItems(p.Cards))
	case MsgHidePreview:
		m.preview = nil
		m.onSlides = false
	case MsgActionDone:
		res := msg.data.(actionResult)
		m.state = res.state
		m.running = false
	}
}

func (m *Model) refreshLog() {
	m.logView.SetContent(strings.Join(m.activity.Lines(), "\n"))
	m.logView.GotoBottom()
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	if m.alert != "" {
		if key.Matches(msg, m.keys.dismiss) || key.Matches(msg, m.keys.submit) {
			m.alert = ""
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.video):
		return m, m.runAction(func(ctx context.Context, st controller.State) (controller.State, error) {
			return m.ctrl.GenerateVideo(ctx, m.surface, st)
		}, controller.VideoControl)

	case key.Matches(msg, m.keys.download):
		return m, m.runAction(func(ctx context.Context, st controller.State) (controller.State, error) {
			_, err := m.ctrl.Download(ctx, m.surface, st)
			return st, err
		}, controller.DownloadControl)

	case key.Matches(msg, m.keys.scrollUp):
		m.logView.HalfPageUp()
		return m, nil

	case key.Matches(msg, m.keys.scrollDn):
		m.logView.HalfPageDown()
		return m, nil

	case key.Matches(msg, m.keys.slides):
		if m.preview != nil {
			m.onSlides = !m.onSlides
		}
		return m, nil
	}

	if m.onSlides {
		var cmd tea.Cmd
		m.slides, cmd = m.slides.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.next):
		return m, m.setFocus((m.focus + 1) % fieldCount)
	case key.Matches(msg, m.keys.prev):
		return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
	case key.Matches(msg, m.keys.submit):
		form := m.Form()
		return m, m.runAction(func(ctx context.Context, st controller.State) (controller.State, error) {
			return m.ctrl.Submit(ctx, m.surface, st, form)
		}, controller.SubmitControl)
	}

	return m.updateInputs(msg)
}

// Form returns the current field values.
func (m *Model) Form() models.Form {
	return models.Form{
		Topic:    m.inputs[topicField].Value(),
		Audience: m.inputs[audienceField].Value(),
		Duration: m.inputs[durationField].Value(),
	}
}

func (m *Model) setFocus(i int) tea.Cmd {
	m.inputs[m.focus].Blur()
	m.focus = i
	return m.inputs[i].Focus()
}

func (m *Model) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// runAction starts a controller action off the event loop.
//
// Actions are serialized: each one receives the state left by the previous action.
func (m *Model) runAction(action func(context.Context, controller.State) (controller.State, error), id controller.ControlID) tea.Cmd {
	if m.running {
		return nil
	}
	if c, ok := m.controls[id]; ok && !c.Enabled {
		return nil
	}

	m.running = true
	st := m.state
	return func() tea.Msg {
		next, err := action(m.ctx, st)
		m.surface.done(next, err)
		return nil
	}
}

func (m *Model) waitForEvent() tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-m.surface.events
		if !ok {
			return Msg{kind: MsgSurfaceClosed}
		}
		return msg
	}
}

// View renders the form, the controls, the activity log and the preview.
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(styles.title.Render(m.locale.T(shared.MsgAppTitle)))
	b.WriteString("\n")
	b.WriteString(m.renderAgents())
	b.WriteString("\n\n")
	b.WriteString(m.renderForm())
	b.WriteString("\n")
	b.WriteString(m.renderControls())
	b.WriteString("\n")

	if m.alert != "" {
		b.WriteString("\n")
		b.WriteString(styles.err.Render("! " + m.alert))
		b.WriteString(" ")
		b.WriteString(styles.help.Render("(" + m.locale.T(shared.MsgDismiss) + ")"))
		b.WriteString("\n")
	}

	if m.progress {
		b.WriteString("\n")
		b.WriteString(styles.panel.Render(m.logView.View()))
		b.WriteString("\n")
	}

	if m.preview != nil {
		b.WriteString("\n")
		b.WriteString(m.renderPreview())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) renderAgents() string {
	agents := []string{shared.MsgAgentCurriculum, shared.MsgAgentScript, shared.MsgAgentVisual, shared.MsgAgentProducer}

	style, mark := styles.help, "○"
	switch {
	case m.controls[controller.SubmitControl].Busy:
		style, mark = styles.active, m.spinner.View()
	case m.preview != nil:
		style, mark = styles.ok, "✓"
	}

	cells := make([]string, len(agents))
	for i, a := range agents {
		cells[i] = style.Render(fmt.Sprintf("%s %s", mark, m.locale.T(a)))
	}
	return strings.Join(cells, "  ")
}

func (m *Model) renderForm() string {
	labels := []string{m.locale.T(shared.MsgFieldTopic), m.locale.T(shared.MsgAudience), m.locale.T(shared.MsgFieldDuration)}

	rows := make([]string, fieldCount)
	for i, in := range m.inputs {
		label := labels[i]
		if i == m.focus && !m.onSlides {
			label = styles.active.Render(label)
		}
		rows[i] = fmt.Sprintf("%s\n%s", label, in.View())
	}
	return strings.Join(rows, "\n")
}

func (m *Model) renderControls() string {
	ids := []controller.ControlID{controller.SubmitControl, controller.VideoControl, controller.DownloadControl}

	cells := make([]string, 0, len(ids))
	for _, id := range ids {
		c, ok := m.controls[id]
		if !ok {
			continue
		}
		label := c.Label
		switch {
		case c.Busy:
			label = m.spinner.View() + " " + label
			cells = append(cells, styles.active.Render("["+label+"]"))
		case c.Enabled:
			cells = append(cells, styles.ok.Render("["+label+"]"))
		default:
			cells = append(cells, styles.help.Render("["+label+"]"))
		}
	}
	return strings.Join(cells, " ")
}

func (m *Model) renderPreview() string {
	p := m.preview
	info := fmt.Sprintf("%s\n%s: %s\n%s: %s\n%s: %s",
		styles.title.Render(p.Summary.Title),
		m.locale.T(shared.MsgAudience), p.Summary.Audience,
		m.locale.T(shared.MsgTotalDuration), m.locale.T(shared.MsgAboutMinutes, p.Summary.Duration),
		m.locale.T(shared.MsgChapters), m.locale.T(shared.MsgChapterCount, p.Summary.ChapterCount),
	)
	return fmt.Sprintf("%s\n\n%s", info, m.slides.View())
}
