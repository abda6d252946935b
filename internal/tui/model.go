// Package tui is a full-screen front end for the grade menu. It walks the
// same states as the console loop and reports the same messages.
package tui

import (
	"context"
	"strings"

	"gradebook/internal/console"
	"gradebook/internal/gradebook"
	"gradebook/internal/logging"
	"gradebook/internal/store"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const maxTranscript = 200

type stage int

const (
	stageChoice stage = iota
	stageAddName
	stageAddGrade
	stageUpdateName
	stageUpdateGrade
)

func (s stage) prompt() string {
	switch s {
	case stageAddName, stageUpdateName:
		return gradebook.PromptName
	case stageAddGrade:
		return gradebook.PromptGrade
	case stageUpdateGrade:
		return gradebook.PromptNewGrade
	default:
		return gradebook.PromptChoice
	}
}

type lineKind int

const (
	linePlain lineKind = iota
	lineSuccess
	lineError
	lineEcho
)

type line struct {
	kind lineKind
	text string
}

// Model is the bubbletea model for one store.
type Model struct {
	ctx    context.Context
	store  store.Store
	menu   []console.Command
	input  textinput.Model
	stage  stage
	name   string
	lines  []line
	height int
	err    error
	done   bool
	styles Styles
}

// New returns a model awaiting a menu choice.
func New(ctx context.Context, st store.Store) Model {
	ti := textinput.New()
	ti.Prompt = gradebook.PromptChoice
	ti.Focus()

	return Model{
		ctx:    ctx,
		store:  st,
		menu:   console.DefaultCommands(),
		input:  ti,
		stage:  stageChoice,
		styles: DefaultStyles(),
	}
}

// Err returns the store failure that ended the program, if any.
func (m Model) Err() error { return m.err }

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.height = msg.Height
		m.input.Width = max(msg.Width-len(m.input.Prompt)-1, 1)
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			logging.TUIDebug("quit by key %s", msg.String())
			m.done = true
			return m, tea.Quit
		case tea.KeyEnter:
			value := m.input.Value()
			m.input.Reset()
			return m.submit(value)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit advances the state machine with one line of input.
func (m Model) submit(value string) (tea.Model, tea.Cmd) {
	m.echo(m.stage.prompt() + value)

	switch m.stage {
	case stageChoice:
		return m.choose(value)

	case stageAddName:
		m.name = value
		m.setStage(stageAddGrade)

	case stageAddGrade:
		msg, err := gradebook.Add(m.ctx, m.store, m.name, value)
		if err != nil {
			return m.fail(err)
		}
		m.say(lineSuccess, msg)
		m.setStage(stageChoice)

	case stageUpdateName:
		found, err := gradebook.Lookup(m.ctx, m.store, value)
		if err != nil {
			return m.fail(err)
		}
		if !found {
			m.say(lineError, gradebook.MsgNotFound)
			m.setStage(stageChoice)
			break
		}
		m.name = value
		m.setStage(stageUpdateGrade)

	case stageUpdateGrade:
		msg, err := gradebook.Update(m.ctx, m.store, m.name, value)
		if err != nil {
			return m.fail(err)
		}
		m.say(lineSuccess, msg)
		m.setStage(stageChoice)
	}
	return m, nil
}

func (m Model) choose(choice string) (tea.Model, tea.Cmd) {
	switch choice {
	case gradebook.ChoiceAdd:
		m.setStage(stageAddName)
	case gradebook.ChoiceUpdate:
		m.setStage(stageUpdateName)
	case gradebook.ChoiceDisplay:
		for text, err := range gradebook.Display(m.ctx, m.store) {
			if err != nil {
				return m.fail(err)
			}
			m.say(linePlain, text)
		}
	case gradebook.ChoiceExit:
		m.say(linePlain, gradebook.MsgExiting)
		m.done = true
		return m, tea.Quit
	default:
		m.say(lineError, gradebook.MsgInvalidChoice)
	}
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	logging.Get(logging.CategoryTUI).Error("store failure: %v", err)
	m.err = err
	m.done = true
	return m, tea.Quit
}

func (m *Model) setStage(s stage) {
	m.stage = s
	m.input.Prompt = s.prompt()
	if s == stageChoice {
		m.name = ""
	}
}

func (m *Model) echo(text string) {
	m.say(lineEcho, text)
}

// say appends text to the transcript, one entry per physical line.
func (m *Model) say(kind lineKind, text string) {
	for _, part := range strings.Split(text, "\n") {
		m.lines = append(m.lines, line{kind: kind, text: part})
	}
	if over := len(m.lines) - maxTranscript; over > 0 {
		m.lines = m.lines[over:]
	}
}

// Transcript returns the plain text of everything shown so far.
func (m Model) Transcript() []string {
	out := make([]string, len(m.lines))
	for i, l := range m.lines {
		out[i] = l.text
	}
	return out
}

// View renders the model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Student Grades"))
	b.WriteString("\n\n")
	for _, c := range m.menu {
		b.WriteString(m.styles.Menu.Render(c.Key + ". " + c.Label))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, l := range m.visibleLines() {
		switch l.kind {
		case lineSuccess:
			b.WriteString(m.styles.Success.Render(l.text))
		case lineError:
			b.WriteString(m.styles.Error.Render(l.text))
		case lineEcho:
			b.WriteString(m.styles.Muted.Render(l.text))
		default:
			b.WriteString(l.text)
		}
		b.WriteString("\n")
	}

	if !m.done {
		b.WriteString(m.input.View())
		b.WriteString("\n")
		b.WriteString(m.styles.Muted.Render("esc to quit"))
	}
	return b.String()
}

// visibleLines trims the transcript to what fits under the menu.
func (m Model) visibleLines() []line {
	if m.height <= 0 {
		return m.lines
	}
	room := m.height - len(m.menu) - 6
	if room < 1 {
		room = 1
	}
	if len(m.lines) > room {
		return m.lines[len(m.lines)-room:]
	}
	return m.lines
}

// WithStyles returns a copy of m rendered with s.
func (m Model) WithStyles(s Styles) Model {
	m.styles = s
	return m
}

// Run starts the program on the terminal and blocks until it exits.
// theme is a configured theme name (see ThemeFor).
func Run(ctx context.Context, st store.Store, theme string, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	m := New(ctx, st).WithStyles(NewStyles(ThemeFor(theme)))
	p := tea.NewProgram(m, opts...)

	logging.TUI("tui started")
	final, err := p.Run()
	logging.TUI("tui ended")
	if err != nil {
		return err
	}
	if m, ok := final.(Model); ok && m.err != nil {
		return m.err
	}
	return nil
}
