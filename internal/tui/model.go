package tui

import (
	"github.com/charmbracelet/bubbles/viewport"
)

// Decision is the outcome of the confirmation screen.
type Decision int

const (
	DecisionPending Decision = iota
	DecisionAccepted
	DecisionDeclined
)

// chromeHeight is the number of rows taken by the title, border and footer.
const chromeHeight = 6

// model is the Bubbletea model for the confirmation screen.
type model struct {
	title    string
	viewport viewport.Model
	decision Decision
	height   int // Track terminal height for dynamic resizing
	width    int // Track terminal width for dynamic resizing
}

// initialModel creates the confirmation model showing body under title.
func initialModel(title, body string, width, height int) model {
	vp := viewport.New(max(width-4, 10), max(height-chromeHeight, 3))
	vp.SetContent(body)
	return model{
		title:    title,
		viewport: vp,
		height:   height,
		width:    width,
	}
}

// Decision reports what the user chose.
func (m model) Decision() Decision { return m.decision }
