package ui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"report-pad/internal/notes"
	"report-pad/internal/runner"
	"report-pad/shared/config"
	"report-pad/shared/monitoring"
)

// Options configure the Report Pad UI.
type Options struct {
	Context      context.Context
	Doc          *notes.Document
	Runner       *runner.Runner
	Monitor      *monitoring.Monitor
	Settings     *config.Settings
	SettingsPath string
}

// Run boots the TUI and blocks until the user quits or the context is
// cancelled.
func Run(opts Options) error {
	return runProgram(opts, tea.WithAltScreen())
}

func runProgram(opts Options, extra ...tea.ProgramOption) error {
	progOpts := append([]tea.ProgramOption{tea.WithContext(opts.Context)}, extra...)
	p := tea.NewProgram(newModel(opts), progOpts...)
	_, err := p.Run()
	// Cancellation (SIGTERM) is a clean shutdown, not a failure.
	if errors.Is(err, tea.ErrProgramKilled) && opts.Context.Err() != nil {
		return nil
	}
	return err
}

type mode int

const (
	modeNote mode = iota
	modeForm
	modeSettings
)

// reportDoneMsg carries the outcome of an async report run.
type reportDoneMsg struct {
	err    error
	cursor int
}

type Model struct {
	opts Options

	width  int
	height int

	mode     mode
	cursor   int // line index in the note buffer
	form     optionsForm
	settings settingsPrompt

	running   bool
	notice    string
	noticeErr bool
}

func newModel(opts Options) Model {
	return Model{opts: opts}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case reportDoneMsg:
		m.running = false
		if msg.err != nil {
			m.setNotice(msg.err.Error(), true)
		} else {
			m.setNotice(fmt.Sprintf("report inserted at line %d", msg.cursor+1), false)
		}
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeSettings:
			return m.updateSettings(msg)
		default:
			return m.updateNote(msg)
		}
	}
	return m, nil
}

func (m Model) updateNote(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < m.opts.Doc.LineCount()-1 {
			m.cursor++
		}
	case "pgup":
		m.cursor -= m.viewHeight()
		if m.cursor < 0 {
			m.cursor = 0
		}
	case "pgdown":
		m.cursor += m.viewHeight()
		if last := m.opts.Doc.LineCount() - 1; m.cursor > last {
			m.cursor = last
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = m.opts.Doc.LineCount() - 1

	case "w", "ctrl+s":
		if err := m.opts.Doc.Save(); err != nil {
			m.setNotice(err.Error(), true)
		} else {
			m.setNotice("note saved", false)
		}

	case "s":
		m.settings = newSettingsPrompt(m.opts.Runner.KeyfileLocation())
		m.mode = modeSettings

	case "r":
		return m.triggerReport()
	}
	return m, nil
}

// triggerReport runs the entry-point gating and, when it passes, opens the
// options form seeded with the last-used values.
func (m Model) triggerReport() (tea.Model, tea.Cmd) {
	if m.opts.Doc == nil {
		return m, nil
	}
	if m.running {
		m.setNotice(runner.ErrBusy.Error(), true)
		return m, nil
	}
	if err := m.opts.Runner.CheckReady(); err != nil {
		m.setNotice(err.Error(), true)
		return m, nil
	}

	m.form = newOptionsForm(m.opts.Runner.Options())
	m.mode = modeForm
	return m, m.form.focusCmd()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Cancelled: no options are cached, nothing runs.
		m.mode = modeNote
		return m, nil

	case "enter":
		opts := m.form.values()
		m.mode = modeNote
		m.running = true
		m.setNotice("running report...", false)
		cursor := m.cursor
		return m, func() tea.Msg {
			err := m.opts.Runner.Submit(m.opts.Context, opts, cursor)
			return reportDoneMsg{err: err, cursor: cursor}
		}
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.update(msg)
	return m, cmd
}

func (m Model) updateSettings(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNote
		return m, nil

	case "enter":
		// The runner owns the location; writing it directly would race a
		// run reading it mid-flight.
		m.opts.Runner.SetKeyfileLocation(m.settings.value())
		m.mode = modeNote
		if err := config.Save(m.opts.SettingsPath, m.opts.Settings); err != nil {
			m.setNotice(err.Error(), true)
		} else {
			m.setNotice("settings saved", false)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.settings, cmd = m.settings.update(msg)
	return m, cmd
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m Model) viewHeight() int {
	h := m.height - 2 // title and status bars
	if h < 1 {
		h = 1
	}
	return h
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cursorStyle = lipgloss.NewStyle().Reverse(true)
	statusStyle = lipgloss.NewStyle().Faint(true).Padding(0, 1)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(0, 1)
)

func (m Model) View() string {
	switch m.mode {
	case modeForm:
		return m.form.view(m.width)
	case modeSettings:
		return m.settings.view(m.width)
	default:
		return m.viewNote()
	}
}

func (m Model) viewNote() string {
	title := m.opts.Doc.Path()
	if m.opts.Doc.Dirty() {
		title += " [+]"
	}

	lines := m.opts.Doc.Lines()
	height := m.viewHeight()

	top := 0
	if m.cursor >= height {
		top = m.cursor - height + 1
	}

	body := ""
	for i := top; i < top+height && i < len(lines); i++ {
		line := lines[i]
		if i == m.cursor {
			line = cursorStyle.Render(line + " ")
		}
		body += line + "\n"
	}

	status := m.statusLine()
	return titleStyle.Render(title) + "\n" + body + status
}

func (m Model) statusLine() string {
	if m.notice != "" {
		if m.noticeErr {
			return errStyle.Render(m.notice)
		}
		return statusStyle.Render(m.notice)
	}
	if s := m.opts.Monitor.StatusSummary(); s != "" {
		return statusStyle.Render(s)
	}
	return statusStyle.Render("r: report  s: settings  w: save  q: quit")
}
