// Package ui provides the interactive terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nibzard/todolist-go/internal/render"
	"github.com/nibzard/todolist-go/internal/todo"
)

// ControllerFactory builds a controller bound to the TUI surface.
type ControllerFactory func(todo.Surface) *todo.Controller

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

// tuiConfig holds TUI configuration.
type tuiConfig struct {
	input     io.Reader
	output    io.Writer
	altScreen bool
}

// WithInput reads key presses from r instead of stdin.
func WithInput(r io.Reader) TUIOption {
	return func(c *tuiConfig) {
		c.input = r
	}
}

// WithOutput draws to w instead of stdout.
func WithOutput(w io.Writer) TUIOption {
	return func(c *tuiConfig) {
		c.output = w
	}
}

// WithAltScreen controls whether the TUI takes over the whole terminal.
func WithAltScreen(enabled bool) TUIOption {
	return func(c *tuiConfig) {
		c.altScreen = enabled
	}
}

// RunTUI starts the task list TUI and blocks until the user quits or ctx
// is cancelled.
func RunTUI(ctx context.Context, factory ControllerFactory, opts ...TUIOption) error {
	c := &tuiConfig{
		output:    os.Stdout,
		altScreen: true,
	}
	for _, opt := range opts {
		opt(c)
	}

	if !IsTTY(c.output) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(factory)
	programOpts := []tea.ProgramOption{tea.WithContext(ctx), tea.WithOutput(c.output)}
	if c.input != nil {
		programOpts = append(programOpts, tea.WithInput(c.input))
	}
	if c.altScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	_, err := tea.NewProgram(model, programOpts...).Run()
	return err
}

// tuiModel is both the bubbletea model and the controller's surface.
type tuiModel struct {
	ctrl *todo.Controller
	keys keyMap
	help help.Model

	desc   textinput.Model
	due    textinput.Model
	adding bool

	view    todo.View
	marked  todo.Filter
	minDue  string
	errors  todo.FieldErrors
	notice  string
	cursor  int
	width   int
	resets  int
	quitted bool
}

var _ todo.Surface = (*tuiModel)(nil)

func newTUIModel(factory ControllerFactory) *tuiModel {
	desc := textinput.New()
	desc.Placeholder = "What needs to be done?"
	desc.Prompt = ""

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.Prompt = ""
	due.CharLimit = len(todo.DateLayout)

	m := &tuiModel{
		keys: defaultKeyMap(),
		help: help.New(),
		desc: desc,
		due:  due,
	}
	m.ctrl = factory(m)
	m.ctrl.Start()
	return m
}

// SetMinDueDate implements todo.Surface.
func (m *tuiModel) SetMinDueDate(date string) {
	m.minDue = date
}

// ShowFieldErrors implements todo.Surface.
func (m *tuiModel) ShowFieldErrors(fields todo.FieldErrors) {
	m.errors = fields
}

// MarkFilter implements todo.Surface.
func (m *tuiModel) MarkFilter(f todo.Filter) {
	m.marked = f
}

// Display implements todo.Surface.
func (m *tuiModel) Display(v todo.View) {
	m.view = v
	if m.cursor >= len(v.Rows) {
		m.cursor = len(v.Rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// ResetInputs implements todo.Surface.
func (m *tuiModel) ResetInputs() {
	m.desc.Reset()
	m.due.Reset()
	m.notice = ""
	m.resets++
	m.closeForm()
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.quitted = true
			return m, tea.Quit
		}
		if m.adding {
			return m.updateForm(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m *tuiModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitted = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Add):
		return m, m.openForm()
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.view.Rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		if row, ok := m.selected(); ok {
			if err := m.ctrl.ToggleComplete(row.ID); err != nil {
				m.notice = err.Error()
			}
		}
	case key.Matches(msg, m.keys.Delete):
		if row, ok := m.selected(); ok {
			m.ctrl.DeleteTask(row.ID)
		}
	case key.Matches(msg, m.keys.All):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

func (m *tuiModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.notice = ""
		m.closeForm()
		return m, nil
	case key.Matches(msg, m.keys.NextField):
		return m, m.switchField()
	case key.Matches(msg, m.keys.Submit):
		m.submit()
		return m, nil
	}

	var cmd tea.Cmd
	if m.due.Focused() {
		if msg.Type == tea.KeyRunes && !dateRunes(msg.Runes) {
			return m, nil
		}
		m.due, cmd = m.due.Update(msg)
		return m, cmd
	}
	m.desc, cmd = m.desc.Update(msg)
	return m, cmd
}

// submit hands the form to the controller. Due dates that are malformed
// or earlier than the minimum never reach it.
func (m *tuiModel) submit() {
	due := strings.TrimSpace(m.due.Value())
	if due != "" {
		if _, err := todo.ParseDueDate(due); err != nil {
			m.notice = "Use YYYY-MM-DD for the due date"
			return
		}
		if todo.BeforeDate(due, m.minDue) {
			m.notice = fmt.Sprintf("Due date can't be before %s", m.minDue)
			return
		}
	}
	m.notice = ""
	if _, err := m.ctrl.AddTask(m.desc.Value(), due); err != nil {
		if m.errors.Description {
			m.focusField(&m.desc, &m.due)
		} else {
			m.focusField(&m.due, &m.desc)
		}
	}
}

func (m *tuiModel) openForm() tea.Cmd {
	m.adding = true
	m.keys.form = true
	m.help.ShowAll = false
	return m.focusField(&m.desc, &m.due)
}

func (m *tuiModel) closeForm() {
	m.adding = false
	m.keys.form = false
	m.desc.Blur()
	m.due.Blur()
}

func (m *tuiModel) switchField() tea.Cmd {
	if m.desc.Focused() {
		return m.focusField(&m.due, &m.desc)
	}
	return m.focusField(&m.desc, &m.due)
}

func (m *tuiModel) focusField(on, off *textinput.Model) tea.Cmd {
	off.Blur()
	return on.Focus()
}

func (m *tuiModel) setFilter(f todo.Filter) {
	if err := m.ctrl.SetFilter(f); err != nil {
		m.notice = err.Error()
		return
	}
	m.cursor = 0
}

func (m *tuiModel) selected() (todo.Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.view.Rows) {
		return todo.Row{}, false
	}
	return m.view.Rows[m.cursor], true
}

func (m *tuiModel) View() string {
	if m.quitted {
		return ""
	}

	var b strings.Builder
	writeTitle(&b)
	b.WriteString(render.FilterBar(m.marked) + "\n\n")

	if m.adding {
		m.writeForm(&b)
	}
	if m.notice != "" {
		b.WriteString(errorStyle.Render(m.notice) + "\n\n")
	}

	m.writeList(&b)
	b.WriteString(footerStyle.Render(m.help.View(m.keys)) + "\n")
	return b.String()
}

func writeTitle(b *strings.Builder) {
	title := "Todo List"
	b.WriteString(titleStyle.Render(title) + "\n")
	b.WriteString(strings.Repeat("=", len(title)) + "\n\n")
}

func (m *tuiModel) writeForm(b *strings.Builder) {
	b.WriteString(labelStyle.Render("Task") + m.desc.View() + "\n")
	b.WriteString(labelStyle.Render("Due") + m.due.View())
	if m.minDue != "" {
		b.WriteString(faintStyle.Render("  (from " + m.minDue + ")"))
	}
	b.WriteString("\n")
	for _, msg := range render.FieldMessages(m.errors) {
		b.WriteString(errorStyle.Render("! "+msg) + "\n")
	}
	b.WriteString("\n")
}

func (m *tuiModel) writeList(b *strings.Builder) {
	if m.view.Empty != nil {
		b.WriteString(titleStyle.Render(m.view.Empty.Title) + "\n")
		b.WriteString(faintStyle.Render(m.view.Empty.Message) + "\n")
		return
	}
	width := m.descWidth()
	for i, row := range m.view.Rows {
		line := render.TextRow(row, width)
		if i == m.cursor && !m.adding {
			line = cursorStyle.Render(">") + strings.TrimPrefix(line, " ")
		}
		b.WriteString(line + "\n")
	}
}

// descWidth leaves room for the check box, date and id columns. Zero
// means the terminal size is not known yet.
func (m *tuiModel) descWidth() int {
	if m.width == 0 {
		return 0
	}
	w := m.width - 40
	if w < 10 {
		w = 10
	}
	return w
}

// dateRunes reports whether rs can appear in an ISO date.
func dateRunes(rs []rune) bool {
	for _, r := range rs {
		if (r < '0' || r > '9') && r != '-' {
			return false
		}
	}
	return true
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
