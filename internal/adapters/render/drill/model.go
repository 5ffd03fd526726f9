package drill

import (
	"errors"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/tomdyson/go-amee/internal/domain"
)

var ErrUnexpectedRenderModel = errors.New("unexpected final bubbletea model type")

type renderReadyMsg struct{}

type model struct {
	view   func(styles) string
	styles styles
	output string
}

func (m model) Init() tea.Cmd {
	return func() tea.Msg {
		return renderReadyMsg{}
	}
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg.(type) {
	case renderReadyMsg:
		m.output = m.view(m.styles)
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m model) View() string {
	return m.output
}

// Drill renders one drilldown step: the choices made so far and either the
// resolved data item or the next attribute to choose.
func Drill(path string, choices domain.Choices, result domain.DrillResult) (string, error) {
	return run(func(s styles) string { return drillView(path, choices, result, s) })
}

func Profiles(uids []string) (string, error) {
	return run(func(s styles) string { return profilesView(uids, s) })
}

func Amount(uri string, amount domain.Amount) (string, error) {
	return run(func(s styles) string { return amountView(uri, amount, s) })
}

func run(view func(styles) string) (string, error) {
	p := tea.NewProgram(
		model{view: view, styles: newStyles()},
		tea.WithInput(nil),
		tea.WithOutput(io.Discard),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	rendered, ok := finalModel.(model)
	if !ok {
		return "", ErrUnexpectedRenderModel
	}

	return rendered.View(), nil
}
