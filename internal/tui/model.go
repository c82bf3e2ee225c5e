// Package tui is the interactive terminal task manager.
package tui

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"taskui/internal/output"
	"taskui/internal/service"
	"taskui/internal/taskview"
)

type focus int

const (
	focusTitle focus = iota
	focusDescription
	focusTable
	focusCount
)

var (
	headerStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(13)
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("230")).Background(lipgloss.Color("62"))
	tableStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderForeground(lipgloss.Color("240"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	focusedColor = lipgloss.Color("62")
)

// opDoneMsg reports that a network operation finished. Failures were already
// logged by the view-model and are not shown.
type opDoneMsg struct {
	op  string
	err error
}

type model struct {
	ctx  context.Context
	view *taskview.Manager

	title       textinput.Model
	description textinput.Model
	table       table.Model
	focus       focus

	state taskview.State
}

func newModel(ctx context.Context, view *taskview.Manager) model {
	title := textinput.New()
	title.Placeholder = "Title"
	title.Prompt = ""
	title.Width = 40

	description := textinput.New()
	description.Placeholder = "Description"
	description.Prompt = ""
	description.Width = 40

	t := table.New(
		table.WithColumns([]table.Column{
			{Title: "ID", Width: 6},
			{Title: "Title", Width: 24},
			{Title: "Description", Width: 36},
			{Title: "Status", Width: 12},
		}),
		table.WithHeight(10),
	)
	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(focusedColor)
	t.SetStyles(styles)

	m := model{
		ctx:         ctx,
		view:        view,
		title:       title,
		description: description,
		table:       t,
	}
	m.setFocus(focusTitle)
	m.sync()
	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.load())
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case opDoneMsg:
		m.sync()
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// cursor blinks and other widget messages
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		m.title, cmd = m.title.Update(msg)
	case focusDescription:
		m.description, cmd = m.description.Update(msg)
	default:
		m.table, cmd = m.table.Update(msg)
	}
	return m, cmd
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "tab":
		return m, m.setFocus((m.focus + 1) % focusCount)
	case "shift+tab":
		return m, m.setFocus((m.focus + focusCount - 1) % focusCount)
	}

	if m.focus == focusTable {
		switch msg.String() {
		case "q":
			return m, tea.Quit
		case "e":
			task, ok := m.selected()
			if !ok {
				return m, nil
			}
			m.view.Edit(task)
			m.sync()
			return m, m.setFocus(focusTitle)
		case "d", "delete":
			task, ok := m.selected()
			if !ok {
				return m, nil
			}
			return m, m.remove(task.ID)
		}
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}

	// Enter submits; it never reaches the inputs.
	if msg.Type == tea.KeyEnter {
		return m, m.submit()
	}

	var cmd tea.Cmd
	if m.focus == focusTitle {
		m.title, cmd = m.title.Update(msg)
		m.view.SetTitle(m.title.Value())
	} else {
		m.description, cmd = m.description.Update(msg)
		m.view.SetDescription(m.description.Value())
	}
	return m, cmd
}

func (m *model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.title.Blur()
	m.description.Blur()
	m.table.Blur()
	switch f {
	case focusTitle:
		return m.title.Focus()
	case focusDescription:
		return m.description.Focus()
	default:
		m.table.Focus()
		return nil
	}
}

// sync copies the view-model snapshot into the widgets.
func (m *model) sync() {
	m.state = m.view.Snapshot()

	rows := make([]table.Row, 0, len(m.state.Tasks))
	for _, task := range m.state.Tasks {
		rows = append(rows, table.Row(output.Row(task)))
	}
	m.table.SetRows(rows)
	if c := m.table.Cursor(); c >= len(rows) && len(rows) > 0 {
		m.table.SetCursor(len(rows) - 1)
	}

	if m.title.Value() != m.state.Form.Title {
		m.title.SetValue(m.state.Form.Title)
	}
	if m.description.Value() != m.state.Form.Description {
		m.description.SetValue(m.state.Form.Description)
	}
}

func (m model) selected() (service.Task, bool) {
	c := m.table.Cursor()
	if c < 0 || c >= len(m.state.Tasks) {
		return service.Task{}, false
	}
	return m.state.Tasks[c], true
}

func (m model) load() tea.Cmd {
	view, ctx := m.view, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "load", err: view.Load(ctx)}
	}
}

func (m model) submit() tea.Cmd {
	view, ctx := m.view, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "submit", err: view.Submit(ctx)}
	}
}

func (m model) remove(id int64) tea.Cmd {
	view, ctx := m.view, m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: "delete", err: view.Delete(ctx, id)}
	}
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(headerStyle.Render("Task Manager"))
	b.WriteString("\n")
	b.WriteString(m.field("Title", m.title, m.focus == focusTitle))
	b.WriteString("\n")
	b.WriteString(m.field("Description", m.description, m.focus == focusDescription))
	b.WriteString("\n\n")
	b.WriteString(buttonStyle.Render(taskview.SubmitLabel(m.state.Mode)))
	b.WriteString("\n\n")
	b.WriteString(tableStyle.Render(m.table.View()))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help()))
	b.WriteString("\n")
	return b.String()
}

func (m model) field(label string, in textinput.Model, focused bool) string {
	l := labelStyle
	if focused {
		l = l.Foreground(focusedColor).Bold(true)
	}
	return l.Render(label+":") + in.View()
}

func (m model) help() string {
	if m.focus == focusTable {
		return "e edit • d delete • tab switch focus • q quit"
	}
	return "enter " + strings.ToLower(taskview.SubmitLabel(m.state.Mode)) + " • tab switch focus • ctrl+c quit"
}

// Run starts the terminal UI and blocks until the user quits or ctx is done.
func Run(ctx context.Context, view *taskview.Manager) error {
	p := tea.NewProgram(newModel(ctx, view), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
