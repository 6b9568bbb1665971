// Package app wires the views, the page controllers, and the
// notification poller into the root Bubble Tea model.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/jmorales/shopdesk/internal/api"
	"github.com/jmorales/shopdesk/internal/keys"
	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/notify"
	"github.com/jmorales/shopdesk/internal/resource"
	"github.com/jmorales/shopdesk/internal/session"
	"github.com/jmorales/shopdesk/internal/settings"
	"github.com/jmorales/shopdesk/internal/store"
	"github.com/jmorales/shopdesk/internal/theme"
	"github.com/jmorales/shopdesk/internal/ui"
	"github.com/jmorales/shopdesk/internal/ui/helpview"
	"github.com/jmorales/shopdesk/internal/ui/notifpanel"
	"github.com/jmorales/shopdesk/internal/ui/resourcelist"
	"github.com/jmorales/shopdesk/internal/ui/settingsform"
)

const toastDuration = 4 * time.Second

// view selects which surface owns the content area.
type view int

const (
	viewResources view = iota
	viewNotifications
	viewSettings
	viewHelp
)

// toastExpiredMsg clears the status-bar toast.
type toastExpiredMsg struct {
	seq int
}

// tab adapts one generic resource list model to a common interface.
type tab interface {
	Init() tea.Cmd
	Update(msg tea.Msg) tea.Cmd
	View() string
	SetSize(width, height int)
	Title() string
	Name() string
	InputActive() bool
}

// resourceTab wraps a resourcelist.Model so differently-typed pages can
// share one tab slice.
type resourceTab[T resource.Entity] struct {
	m resourcelist.Model[T]
}

func (t *resourceTab[T]) Init() tea.Cmd { return t.m.Init() }

func (t *resourceTab[T]) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	t.m, cmd = t.m.Update(msg)
	return cmd
}

func (t *resourceTab[T]) View() string      { return t.m.View() }
func (t *resourceTab[T]) SetSize(w, h int)  { t.m.SetSize(w, h) }
func (t *resourceTab[T]) Title() string     { return t.m.Title() }
func (t *resourceTab[T]) Name() string      { return t.m.Name() }
func (t *resourceTab[T]) InputActive() bool { return t.m.InputActive() }

// toastSource is the per-page toast subscription. *resource.Page
// satisfies it.
type toastSource interface {
	WaitForToast() tea.Cmd
}

// Config wires the root model to its collaborators.
type Config struct {
	Client   *api.Client
	Store    store.Store
	Sessions session.Provider
	Poller   *notify.Poller
	Keys     *keys.KeyMap
	Log      zerolog.Logger
}

// Model is the root application model.
type Model struct {
	cfg    Config
	layout ui.Layout

	tabs   []tab
	toasts map[string]toastSource
	active int
	view   view

	notif    notifpanel.Model
	settings settingsform.Model
	help     helpview.Model

	toast    *resource.Toast
	toastSeq int
	unread   int
}

// New assembles the page controllers and views for every resource.
func New(cfg Config) Model {
	layout := ui.NewLayout(80, 24)
	w, h := layout.ContentWidth(), layout.ContentHeight()

	toasts := make(map[string]toastSource)

	customers := newPage(cfg, "customers", api.Customers(cfg.Client), resource.ValidateCustomer)
	jobs := newPage(cfg, "jobs", api.Jobs(cfg.Client), resource.ValidateJob)
	stock := newPage(cfg, "stock", api.Stock(cfg.Client), resource.ValidateStockItem)
	refunds := newPage(cfg, "refunds", api.Refunds(cfg.Client), resource.ValidateRefund)
	warranties := newPage(cfg, "warranties", api.Warranties(cfg.Client), resource.ValidateWarranty)
	technicians := newPage(cfg, "technicians", api.Technicians(cfg.Client), resource.ValidateTechnician)

	for name, p := range map[string]toastSource{
		"customers":   customers,
		"jobs":        jobs,
		"stock":       stock,
		"refunds":     refunds,
		"warranties":  warranties,
		"technicians": technicians,
	} {
		toasts[name] = p
	}

	tabs := []tab{
		&resourceTab[model.Customer]{m: resourcelist.New(customers, resourcelist.CustomerSpec(), cfg.Keys, w, h)},
		&resourceTab[model.Job]{m: resourcelist.New(jobs, resourcelist.JobSpec(), cfg.Keys, w, h)},
		&resourceTab[model.StockItem]{m: resourcelist.New(stock, resourcelist.StockSpec(), cfg.Keys, w, h)},
		&resourceTab[model.Refund]{m: resourcelist.New(refunds, resourcelist.RefundSpec(), cfg.Keys, w, h)},
		&resourceTab[model.Warranty]{m: resourcelist.New(warranties, resourcelist.WarrantySpec(), cfg.Keys, w, h)},
		&resourceTab[model.Technician]{m: resourcelist.New(technicians, resourcelist.TechnicianSpec(), cfg.Keys, w, h)},
	}

	editor := settings.NewEditor(api.NewNotifications(cfg.Client), cfg.Sessions)

	return Model{
		cfg:      cfg,
		layout:   layout,
		tabs:     tabs,
		toasts:   toasts,
		notif:    notifpanel.New(cfg.Store, cfg.Keys, cfg.Log, w, h),
		settings: settingsform.New(editor, w, h),
		help:     helpview.New(cfg.Keys, w, h),
	}
}

// newPage builds one page controller with snapshot persistence.
func newPage[T resource.Entity](
	cfg Config,
	name string,
	client resource.Client[T],
	validate func(T) *api.FieldError,
) *resource.Page[T] {
	return resource.NewPage(resource.Config[T]{
		Name:      name,
		Client:    client,
		Sessions:  cfg.Sessions,
		Validate:  validate,
		Snapshots: cfg.Store,
		Log:       cfg.Log,
	})
}

// Init loads every page, starts the poller, and subscribes to the toast
// and poll-result channels.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.cfg.Poller.Start(), m.notif.Init()}
	for _, t := range m.tabs {
		cmds = append(cmds, t.Init())
	}
	for _, src := range m.toasts {
		cmds = append(cmds, src.WaitForToast())
	}
	return tea.Batch(cmds...)
}

// Update routes messages to the active surface.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		w, h := m.layout.ContentWidth(), m.layout.ContentHeight()
		for _, t := range m.tabs {
			t.SetSize(w, h)
		}
		m.notif.SetSize(w, h)
		m.settings.SetSize(w, h)
		m.help.SetSize(w, h)
		return m, nil

	case notify.ResultMsg:
		m.unread = msg.UnreadCount
		m.showToast(resource.Toast{
			Level:   resource.ToastInfo,
			Message: pollSummary(msg.New),
		})
		return m, tea.Batch(
			m.cfg.Poller.WaitForNextResult(),
			m.notif.Refresh(),
			m.toastExpiry(),
		)

	case notifpanel.RefreshedMsg:
		m.unread = msg.Unread
		var cmd tea.Cmd
		m.notif, cmd = m.notif.Update(msg)
		return m, cmd

	case resource.ToastMsg:
		m.showToast(msg.Toast)
		cmds := []tea.Cmd{m.toastExpiry()}
		if src, ok := m.toasts[msg.Resource]; ok {
			cmds = append(cmds, src.WaitForToast())
		}
		return m, tea.Batch(cmds...)

	case toastExpiredMsg:
		if msg.seq == m.toastSeq {
			m.toast = nil
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, m.routeToActive(msg)
}

// handleKey applies global keys when no text surface owns the keyboard,
// otherwise forwards to the active view.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.cfg.Keys

	// ctrl+c always quits, even inside a form.
	if msg.String() == "ctrl+c" {
		m.cfg.Poller.Stop()
		return m, tea.Quit
	}

	switch m.view {
	case viewHelp:
		m.view = viewResources
		return m, nil

	case viewSettings:
		if key.Matches(msg, k.Back) {
			m.view = viewResources
			return m, nil
		}
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return m, cmd

	case viewNotifications:
		switch {
		case key.Matches(msg, k.Back), key.Matches(msg, k.Notifications):
			m.view = viewResources
			return m, nil
		case key.Matches(msg, k.Quit):
			m.cfg.Poller.Stop()
			return m, tea.Quit
		case key.Matches(msg, k.Refresh):
			return m, m.cfg.Poller.Refresh()
		case key.Matches(msg, k.Help):
			m.view = viewHelp
			return m, nil
		}
		var cmd tea.Cmd
		m.notif, cmd = m.notif.Update(msg)
		return m, cmd
	}

	// A search box or dialog on the active tab owns the keyboard.
	if m.tabs[m.active].InputActive() {
		return m, m.tabs[m.active].Update(msg)
	}

	switch {
	case key.Matches(msg, k.Quit):
		m.cfg.Poller.Stop()
		return m, tea.Quit

	case key.Matches(msg, k.NextTab):
		m.active = (m.active + 1) % len(m.tabs)
		return m, nil

	case key.Matches(msg, k.PrevTab):
		m.active = (m.active - 1 + len(m.tabs)) % len(m.tabs)
		return m, nil

	case key.Matches(msg, k.Notifications):
		m.view = viewNotifications
		return m, m.notif.Refresh()

	case key.Matches(msg, k.Settings):
		m.view = viewSettings
		return m, m.settings.Init()

	case key.Matches(msg, k.Help):
		m.view = viewHelp
		return m, nil
	}

	return m, m.tabs[m.active].Update(msg)
}

// routeToActive forwards non-key messages. Page-scoped messages go to
// every tab so background loads land on inactive pages too.
func (m *Model) routeToActive(msg tea.Msg) tea.Cmd {
	switch m.view {
	case viewSettings:
		var cmd tea.Cmd
		m.settings, cmd = m.settings.Update(msg)
		return cmd
	case viewNotifications:
		var cmd tea.Cmd
		m.notif, cmd = m.notif.Update(msg)
		return cmd
	}

	var cmds []tea.Cmd
	for _, t := range m.tabs {
		if cmd := t.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

// showToast replaces the status-bar toast.
func (m *Model) showToast(t resource.Toast) {
	m.toastSeq++
	m.toast = &t
}

// toastExpiry schedules clearing the current toast.
func (m Model) toastExpiry() tea.Cmd {
	seq := m.toastSeq
	return tea.Tick(toastDuration, func(time.Time) tea.Msg {
		return toastExpiredMsg{seq: seq}
	})
}

// pollSummary describes a batch of new notifications for the toast line.
func pollSummary(ns []model.Notification) string {
	if len(ns) == 1 {
		return ns[0].Title
	}
	return fmt.Sprintf("%d new notifications", len(ns))
}

// View renders the whole terminal frame.
func (m Model) View() string {
	var content string
	switch m.view {
	case viewNotifications:
		content = m.notif.View()
	case viewSettings:
		content = m.settings.View()
	case viewHelp:
		content = m.help.View()
	default:
		content = m.tabs[m.active].View()
	}

	header := m.layout.RenderHeader(m.renderTabs(), m.renderBadge())
	statusBar := m.layout.RenderStatusBar(m.renderStatus())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderTabs renders the tab strip with the active page highlighted.
func (m Model) renderTabs() string {
	var parts []string
	for i, t := range m.tabs {
		title := t.Title()
		if i == m.active && m.view == viewResources {
			title = "[" + title + "]"
		}
		parts = append(parts, title)
	}
	return strings.Join(parts, "  ")
}

// renderBadge renders the unread counter shown at the right of the header.
func (m Model) renderBadge() string {
	if m.unread == 0 {
		return "no unread"
	}
	return fmt.Sprintf("%d unread", m.unread)
}

// renderStatus renders the status bar content: an active toast wins over
// the keyboard hints.
func (m Model) renderStatus() string {
	if m.toast != nil {
		return theme.ToastStyle(int(m.toast.Level)).Render(m.toast.Message)
	}
	return m.help.ShortHelpView()
}
