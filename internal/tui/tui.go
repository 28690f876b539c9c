package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Init initializes the TUI model and returns any initial commands to run.
func (m model) Init() tea.Cmd {
	return nil
}

// Confirm shows body (usually a rendered diff) under title and blocks until
// the user accepts or declines.
func Confirm(title, body string) (bool, error) {
	m := initialModel(title, body, 80, 24)
	p := tea.NewProgram(&teaModelAdapter{m}, tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("tui: %w", err)
	}
	a, ok := final.(*teaModelAdapter)
	if !ok {
		return false, fmt.Errorf("tui: unexpected final model %T", final)
	}
	return a.m.decision == DecisionAccepted, nil
}

// teaModelAdapter adapts our model to the tea.Model interface using Update and ModelView.
type teaModelAdapter struct {
	m model
}

func (a *teaModelAdapter) Init() tea.Cmd {
	return a.m.Init()
}

func (a *teaModelAdapter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m2, cmd := Update(a.m, msg)
	a.m = m2
	return a, cmd
}

func (a *teaModelAdapter) View() string {
	return ModelView(a.m)
}
