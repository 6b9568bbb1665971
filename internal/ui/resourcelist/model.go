// Package resourcelist is the list view shared by every resource page:
// a searchable, filterable table with create/edit/delete dialogs backed
// by a resource.Page controller.
package resourcelist

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorales/shopdesk/internal/keys"
	"github.com/jmorales/shopdesk/internal/resource"
	"github.com/jmorales/shopdesk/internal/theme"
	"github.com/jmorales/shopdesk/internal/ui/form"
)

// LoadedMsg is sent when a page finished (re)loading from the backend.
type LoadedMsg struct {
	Resource string
}

// MutationDoneMsg is sent after a create/update/delete attempt settled.
type MutationDoneMsg struct {
	Resource string
	Err      error
}

// Spec describes the resource-specific parts of a list page.
type Spec[T resource.Entity] struct {
	// Title is the tab label ("Customers").
	Title string

	// Describe returns the main line for an item.
	Describe func(T) string

	// Summary returns the dimmed metadata suffix for an item.
	Summary func(T) string

	// FilterDim is the enum dimension cycled by the filter key.
	FilterDim string

	// FilterValues are the dimension's values; "all" is prepended
	// automatically when cycling.
	FilterValues []string

	// NewBinder builds the dialog bindings for this resource.
	NewBinder func() form.Binder[T]
}

// mode tracks which input surface owns the keyboard.
type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeForm
	modeConfirm
)

// Model is the list view for one resource page.
type Model[T resource.Entity] struct {
	page *resource.Page[T]
	spec Spec[T]
	keys *keys.KeyMap

	list        list.Model
	searchInput textinput.Model
	dialog      form.Model[T]
	mode        mode

	filterIndex int
	pendingID   string

	width  int
	height int
}

// New creates a resource list model bound to a page controller.
func New[T resource.Entity](
	page *resource.Page[T],
	spec Spec[T],
	k *keys.KeyMap,
	width, height int,
) Model[T] {
	l := list.New([]list.Item{}, delegate[T]{}, width, height-3)
	l.Title = spec.Title
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search " + strings.ToLower(spec.Title) + "..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model[T]{
		page:        page,
		spec:        spec,
		keys:        k,
		list:        l,
		searchInput: si,
		dialog:      form.New(spec.Title, spec.NewBinder(), width, height),
		width:       width,
		height:      height,
	}
}

// Init loads the page on mount.
func (m Model[T]) Init() tea.Cmd {
	return m.loadCmd()
}

// Name returns the underlying resource name.
func (m Model[T]) Name() string { return m.page.Name() }

// Title returns the tab label.
func (m Model[T]) Title() string { return m.spec.Title }

// InputActive reports whether a search box or dialog currently owns the
// keyboard, in which case global shortcuts must not fire.
func (m Model[T]) InputActive() bool { return m.mode != modeBrowse }

// loadCmd runs a full load off the UI thread.
func (m Model[T]) loadCmd() tea.Cmd {
	p := m.page
	return func() tea.Msg {
		_ = p.Load(context.Background())
		return LoadedMsg{Resource: p.Name()}
	}
}

// Update handles messages for the list view.
func (m Model[T]) Update(msg tea.Msg) (Model[T], tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		if msg.Resource == m.page.Name() {
			return m, m.syncItems()
		}
		return m, nil

	case MutationDoneMsg:
		if msg.Resource == m.page.Name() {
			return m, m.syncItems()
		}
		return m, nil

	case form.SubmitMsg[T]:
		m.mode = modeBrowse
		return m, m.submitCmd(msg.Draft, msg.EditID)

	case form.CancelMsg:
		m.mode = modeBrowse
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.handleSearchKeys(msg)
		case modeForm:
			var cmd tea.Cmd
			m.dialog, cmd = m.dialog.Update(msg)
			return m, cmd
		case modeConfirm:
			return m.handleConfirmKeys(msg)
		}
		return m.handleBrowseKeys(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.dialog, cmd = m.dialog.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleBrowseKeys processes key input in normal browsing mode.
func (m Model[T]) handleBrowseKeys(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Search):
		m.mode = modeSearch
		m.searchInput.SetValue(m.page.SearchTerm())
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Refresh):
		return m, m.loadCmd()

	case key.Matches(msg, m.keys.CycleFilter):
		if m.spec.FilterDim == "" {
			return m, nil
		}
		values := append([]string{"all"}, m.spec.FilterValues...)
		m.filterIndex = (m.filterIndex + 1) % len(values)
		m.page.SetFilter(m.spec.FilterDim, values[m.filterIndex])
		return m, m.syncItems()

	case key.Matches(msg, m.keys.Create):
		if !m.page.Can("create") {
			return m, nil
		}
		m.mode = modeForm
		return m, m.dialog.StartCreate()

	case key.Matches(msg, m.keys.Edit):
		if !m.page.Can("update") {
			return m, nil
		}
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeForm
		return m, m.dialog.StartEdit(item, item.EntityID())

	case key.Matches(msg, m.keys.Delete):
		if !m.page.Can("delete") {
			return m, nil
		}
		item, ok := m.selected()
		if !ok {
			return m, nil
		}
		m.mode = modeConfirm
		m.pendingID = item.EntityID()
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while the search bar is focused.
func (m Model[T]) handleSearchKeys(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = modeBrowse
		m.page.SetSearchTerm(m.searchInput.Value())
		return m, m.syncItems()

	case "esc":
		m.mode = modeBrowse
		m.searchInput.Reset()
		m.page.SetSearchTerm("")
		return m, m.syncItems()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleConfirmKeys processes the delete confirmation prompt.
func (m Model[T]) handleConfirmKeys(msg tea.KeyMsg) (Model[T], tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		id := m.pendingID
		m.mode = modeBrowse
		m.pendingID = ""
		return m, m.deleteCmd(id)
	case "n", "N", "esc":
		m.mode = modeBrowse
		m.pendingID = ""
	}
	return m, nil
}

// submitCmd dispatches a create or update off the UI thread.
func (m Model[T]) submitCmd(draft T, editID string) tea.Cmd {
	p := m.page
	return func() tea.Msg {
		var err error
		if editID == "" {
			err = p.Create(context.Background(), draft)
		} else {
			err = p.Update(context.Background(), editID, draft)
		}
		return MutationDoneMsg{Resource: p.Name(), Err: err}
	}
}

// deleteCmd dispatches a delete off the UI thread.
func (m Model[T]) deleteCmd(id string) tea.Cmd {
	p := m.page
	return func() tea.Msg {
		err := p.Delete(context.Background(), id)
		return MutationDoneMsg{Resource: p.Name(), Err: err}
	}
}

// syncItems refreshes the list rows from the page's visible items.
func (m *Model[T]) syncItems() tea.Cmd {
	visible := m.page.VisibleItems()
	items := make([]list.Item, len(visible))
	for i, it := range visible {
		items[i] = row[T]{item: it, spec: m.spec}
	}
	return m.list.SetItems(items)
}

// selected returns the currently focused entity.
func (m Model[T]) selected() (T, bool) {
	r, ok := m.list.SelectedItem().(row[T])
	if !ok {
		var zero T
		return zero, false
	}
	return r.item, true
}

// View renders the list view.
func (m Model[T]) View() string {
	switch m.mode {
	case modeForm:
		return m.dialog.View()
	case modeConfirm:
		prompt := theme.PanelStyle.Render(fmt.Sprintf(
			"Delete this %s? (y/n)", strings.ToLower(m.spec.Title),
		))
		return lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, prompt)
	}

	var sections []string

	if m.mode == modeSearch {
		sections = append(sections, lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View()))
	}

	if errMsg := m.page.Err(); errMsg != "" {
		banner := theme.ErrorBannerStyle.Render("! " + errMsg)
		if !m.page.LastUpdated().IsZero() {
			banner += theme.DimmedStyle.Render(
				"  showing data from " + relativeTime(m.page.LastUpdated()),
			)
		}
		sections = append(sections, banner)
	}

	sections = append(sections, m.statsLine(), m.list.View())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// statsLine renders the aggregate counters above the list.
func (m Model[T]) statsLine() string {
	stats := m.page.Stats()
	if stats == nil {
		return theme.DimmedStyle.Render(" stats unavailable")
	}
	return theme.DimmedStyle.Render(fmt.Sprintf(
		" total %d · active %d · pending %d · revenue %.2f",
		stats.Total, stats.Active, stats.Pending, stats.Revenue,
	))
}

// SetSize updates the view dimensions.
func (m *Model[T]) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
	m.searchInput.Width = width - 4
	m.dialog.SetSize(width, height)
}
