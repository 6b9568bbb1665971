// Package helpview renders the keybinding reference overlay.
package helpview

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorales/shopdesk/internal/keys"
	"github.com/jmorales/shopdesk/internal/theme"
)

// Model is the help overlay.
type Model struct {
	help   help.Model
	keys   *keys.KeyMap
	width  int
	height int
}

// New creates the help overlay.
func New(k *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.ShowAll = true
	h.Width = width
	return Model{
		help:   h,
		keys:   k,
		width:  width,
		height: height,
	}
}

// ShortHelpView renders the compact one-line hint for the status bar.
func (m Model) ShortHelpView() string {
	compact := m.help
	compact.ShowAll = false
	return compact.View(m.keys)
}

// View renders the expanded keybinding reference.
func (m Model) View() string {
	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Keyboard Shortcuts")

	panel := theme.PanelStyle.Render(title + "\n" + m.help.View(m.keys))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center, panel)
}

// SetSize updates the overlay dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width
}
