// Package form renders the create/edit dialogs as huh forms. Field
// values live behind a Binder so huh's Value() pointers stay valid
// across Bubble Tea model copies.
package form

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorales/shopdesk/internal/theme"
)

// Binder owns the heap-allocated field bindings for one resource type.
type Binder[T any] interface {
	// Load sets the bindings from an existing item (or a zero value for
	// a fresh create dialog).
	Load(item T)

	// Fields builds the huh fields bound to the bindings.
	Fields() []huh.Field

	// Value assembles a draft from the current bindings.
	Value() T
}

// SubmitMsg is dispatched when the user completes the form. EditID is
// empty for a create dialog.
type SubmitMsg[T any] struct {
	Draft  T
	EditID string
}

// CancelMsg is dispatched when the user aborts the form.
type CancelMsg struct{}

// Model is the Bubble Tea model for one resource's create/edit dialog.
type Model[T any] struct {
	form     *huh.Form
	binder   Binder[T]
	title    string
	editMode bool
	editID   string
	width    int
	height   int
}

// New creates a form model with the given binder.
func New[T any](title string, binder Binder[T], width, height int) Model[T] {
	return Model[T]{
		title:  title,
		binder: binder,
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for creating a new item.
func (m *Model[T]) StartCreate() tea.Cmd {
	var zero T
	m.editMode = false
	m.editID = ""
	m.binder.Load(zero)
	m.form = huh.NewForm(huh.NewGroup(m.binder.Fields()...))
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing item.
func (m *Model[T]) StartEdit(item T, id string) tea.Cmd {
	m.editMode = true
	m.editID = id
	m.binder.Load(item)
	m.form = huh.NewForm(huh.NewGroup(m.binder.Fields()...))
	return m.form.Init()
}

// Update handles messages for the dialog.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		draft := m.binder.Value()
		editID := m.editID
		return m, func() tea.Msg {
			return SubmitMsg[T]{Draft: draft, EditID: editID}
		}
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return CancelMsg{} }
	}

	return m, cmd
}

// View renders the dialog.
func (m Model[T]) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New " + m.title
	if m.editMode {
		titleText = "Edit " + m.title
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(content)
}

// SetSize updates the dialog dimensions.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
}
