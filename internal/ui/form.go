package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"report-pad/internal/models"
)

// Field order in the options form.
const (
	fieldStartDate = iota
	fieldEndDate
	fieldMetrics
	fieldVideoID
	fieldCount
)

var fieldLabels = [fieldCount]string{
	"Start date (YYYY-MM-DD)",
	"End date (YYYY-MM-DD)",
	"Metrics",
	"Video ID",
}

var (
	formTitleStyle = lipgloss.NewStyle().Bold(true).Padding(1, 2, 0, 2)
	labelStyle     = lipgloss.NewStyle().Padding(0, 2)
	helpStyle      = lipgloss.NewStyle().Faint(true).Padding(1, 2)
)

// optionsForm collects the four report parameters, seeded from the
// last-used options. Submission hands the (possibly unmodified) record
// back to the entry point; closing with esc changes nothing.
type optionsForm struct {
	inputs [fieldCount]textinput.Model
	focus  int
}

func newOptionsForm(opts models.ReportOptions) optionsForm {
	var f optionsForm
	seeds := [fieldCount]string{opts.StartDate, opts.EndDate, opts.Metrics, opts.VideoID}
	for i := range f.inputs {
		ti := textinput.New()
		ti.SetValue(seeds[i])
		ti.CharLimit = 200
		f.inputs[i] = ti
	}
	f.inputs[0].Focus()
	return f
}

func (f optionsForm) focusCmd() tea.Cmd {
	return textinput.Blink
}

func (f optionsForm) update(msg tea.KeyMsg) (optionsForm, tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus((f.focus + 1) % fieldCount)
		return f, nil
	case "shift+tab", "up":
		f.setFocus((f.focus + fieldCount - 1) % fieldCount)
		return f, nil
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return f, cmd
}

func (f *optionsForm) setFocus(i int) {
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (f optionsForm) values() models.ReportOptions {
	return models.ReportOptions{
		StartDate: f.inputs[fieldStartDate].Value(),
		EndDate:   f.inputs[fieldEndDate].Value(),
		Metrics:   f.inputs[fieldMetrics].Value(),
		VideoID:   f.inputs[fieldVideoID].Value(),
	}
}

func (f optionsForm) view(width int) string {
	out := formTitleStyle.Render("Analytics report") + "\n\n"
	for i := range f.inputs {
		out += labelStyle.Render(fieldLabels[i]) + "\n"
		out += labelStyle.Render(f.inputs[i].View()) + "\n\n"
	}
	out += helpStyle.Render("enter: run report  tab: next field  esc: cancel")
	return out
}

// settingsPrompt edits the OAuth2 key file location.
type settingsPrompt struct {
	input textinput.Model
}

func newSettingsPrompt(current string) settingsPrompt {
	ti := textinput.New()
	ti.SetValue(current)
	ti.CharLimit = 512
	ti.Focus()
	return settingsPrompt{input: ti}
}

func (s settingsPrompt) update(msg tea.KeyMsg) (settingsPrompt, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s settingsPrompt) value() string {
	return s.input.Value()
}

func (s settingsPrompt) view(width int) string {
	out := formTitleStyle.Render("Settings") + "\n\n"
	out += labelStyle.Render("OAuth2 key file location") + "\n"
	out += labelStyle.Render(s.input.View()) + "\n\n"
	out += helpStyle.Render("enter: save  esc: cancel")
	return out
}
