// Package notifpanel renders the notification center: the locally
// persisted notification history with unread tracking.
package notifpanel

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/jmorales/shopdesk/internal/keys"
	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/store"
	"github.com/jmorales/shopdesk/internal/theme"
)

const historyLimit = 100

// RefreshedMsg is sent after the history was reloaded from the store.
type RefreshedMsg struct {
	Unread int
}

type item struct {
	n model.Notification
}

func (i item) FilterValue() string { return "" }

type delegate struct{}

func (d delegate) Height() int                             { return 2 }
func (d delegate) Spacing() int                            { return 0 }
func (d delegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }

func (d delegate) Render(w io.Writer, m list.Model, index int, li list.Item) {
	it, ok := li.(item)
	if !ok {
		return
	}

	marker := "  "
	if !it.n.Read {
		marker = theme.NotificationStyle(it.n.Type).Render("● ")
	}

	title := it.n.Title
	if it.n.Read {
		title = theme.DimmedStyle.Render(title)
	}

	meta := theme.DimmedStyle.Render(fmt.Sprintf(
		"%s · %s · %s",
		it.n.Category,
		theme.PriorityStyle(it.n.Priority).Render(it.n.Priority),
		relativeTime(it.n.CreatedAt),
	))

	line := fmt.Sprintf("%s%s  %s\n    %s", marker, title, meta,
		theme.DimmedStyle.Render(it.n.Message))

	if index == m.Index() {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}

func relativeTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	}
}

// Model is the notification center view.
type Model struct {
	store  store.Store
	keys   *keys.KeyMap
	log    zerolog.Logger
	list   list.Model
	unread int
	width  int
	height int
}

// New creates the notification center backed by the local store.
func New(s store.Store, k *keys.KeyMap, log zerolog.Logger, width, height int) Model {
	l := list.New([]list.Item{}, delegate{}, width, height-3)
	l.Title = "Notifications"
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	return Model{
		store:  s,
		keys:   k,
		log:    log,
		list:   l,
		width:  width,
		height: height,
	}
}

// Init loads the persisted history.
func (m Model) Init() tea.Cmd {
	return m.refreshCmd()
}

// Unread returns the last known unread count for the tab badge.
func (m Model) Unread() int { return m.unread }

// Refresh reloads the history, typically after a poll cycle landed new
// notifications.
func (m Model) Refresh() tea.Cmd {
	return m.refreshCmd()
}

func (m Model) refreshCmd() tea.Cmd {
	s := m.store
	log := m.log
	return func() tea.Msg {
		ctx := context.Background()
		unread, err := s.UnreadCount(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("unread count failed")
		}
		return RefreshedMsg{Unread: unread}
	}
}

// Update handles messages for the notification center.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case RefreshedMsg:
		m.unread = msg.Unread
		m.reloadItems()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.MarkAllRead):
			return m, m.markAllCmd()

		case msg.String() == "enter":
			if it, ok := m.list.SelectedItem().(item); ok && !it.n.Read {
				return m, m.markReadCmd(it.n.ID)
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) markReadCmd(id string) tea.Cmd {
	s := m.store
	log := m.log
	return func() tea.Msg {
		ctx := context.Background()
		if err := s.MarkNotificationRead(ctx, id); err != nil {
			log.Warn().Err(err).Str("id", id).Msg("mark read failed")
		}
		unread, _ := s.UnreadCount(ctx)
		return RefreshedMsg{Unread: unread}
	}
}

func (m Model) markAllCmd() tea.Cmd {
	s := m.store
	log := m.log
	return func() tea.Msg {
		ctx := context.Background()
		if err := s.MarkAllNotificationsRead(ctx); err != nil {
			log.Warn().Err(err).Msg("mark all read failed")
		}
		return RefreshedMsg{Unread: 0}
	}
}

// reloadItems pulls the current history from the store into the list.
// Reads are fast enough against the local db to run on the UI thread.
func (m *Model) reloadItems() {
	ns, err := m.store.GetNotifications(context.Background(), historyLimit)
	if err != nil {
		m.log.Warn().Err(err).Msg("history load failed")
		return
	}
	items := make([]list.Item, len(ns))
	for i, n := range ns {
		items[i] = item{n: n}
	}
	m.list.SetItems(items)
}

// View renders the notification center.
func (m Model) View() string {
	header := theme.DimmedStyle.Render(fmt.Sprintf(" %d unread", m.unread))
	if len(m.list.Items()) == 0 {
		empty := theme.DimmedStyle.Render("No notifications yet.")
		return lipgloss.JoinVertical(lipgloss.Left, header,
			lipgloss.Place(m.width, m.height-4, lipgloss.Center, lipgloss.Center, empty))
	}
	return lipgloss.JoinVertical(lipgloss.Left, header, m.list.View())
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-3)
}
