// Package settingsform renders the notification settings editor as a
// huh form over the settings.Editor draft.
package settingsform

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/settings"
	"github.com/jmorales/shopdesk/internal/theme"
)

// LoadedMsg carries the fetched settings record.
type LoadedMsg struct {
	Settings model.NotificationSettings
	Err      error
}

// SavedMsg reports the outcome of a save.
type SavedMsg struct {
	Err error
}

// bindings holds the heap-allocated values huh fields point at.
type bindings struct {
	emailEnabled bool
	smsEnabled   bool
	pushEnabled  bool

	systemAlerts    bool
	orderUpdates    bool
	repairUpdates   bool
	inventoryAlerts bool
	paymentAlerts   bool
	warrantyAlerts  bool
	refundAlerts    bool

	quietStart string
	quietEnd   string
	timezone   string
	frequency  string
	channels   []string
}

func (b *bindings) load(s model.NotificationSettings) {
	b.emailEnabled = s.EmailEnabled
	b.smsEnabled = s.SMSEnabled
	b.pushEnabled = s.PushEnabled
	b.systemAlerts = s.SystemAlerts
	b.orderUpdates = s.OrderUpdates
	b.repairUpdates = s.RepairUpdates
	b.inventoryAlerts = s.InventoryAlerts
	b.paymentAlerts = s.PaymentAlerts
	b.warrantyAlerts = s.WarrantyAlerts
	b.refundAlerts = s.RefundAlerts
	b.quietStart = s.QuietHoursStart
	b.quietEnd = s.QuietHoursEnd
	b.timezone = s.Timezone
	b.frequency = s.Frequency
	b.channels = append([]string(nil), s.Channels...)
}

func (b *bindings) value() model.NotificationSettings {
	return model.NotificationSettings{
		EmailEnabled:    b.emailEnabled,
		SMSEnabled:      b.smsEnabled,
		PushEnabled:     b.pushEnabled,
		SystemAlerts:    b.systemAlerts,
		OrderUpdates:    b.orderUpdates,
		RepairUpdates:   b.repairUpdates,
		InventoryAlerts: b.inventoryAlerts,
		PaymentAlerts:   b.paymentAlerts,
		WarrantyAlerts:  b.warrantyAlerts,
		RefundAlerts:    b.refundAlerts,
		QuietHoursStart: b.quietStart,
		QuietHoursEnd:   b.quietEnd,
		Timezone:        b.timezone,
		Frequency:       b.frequency,
		Channels:        model.ChannelList(b.channels),
	}
}

// Model is the settings editor view.
type Model struct {
	editor  *settings.Editor
	bind    *bindings
	form    *huh.Form
	status  string
	loading bool
	width   int
	height  int
}

// New creates the settings editor view.
func New(editor *settings.Editor, width, height int) Model {
	return Model{
		editor: editor,
		bind:   &bindings{},
		width:  width,
		height: height,
	}
}

// Init fetches the settings record.
func (m Model) Init() tea.Cmd {
	return m.loadCmd()
}

func (m Model) loadCmd() tea.Cmd {
	e := m.editor
	return func() tea.Msg {
		err := e.Load(context.Background())
		return LoadedMsg{Settings: e.Draft(), Err: err}
	}
}

func (m Model) saveCmd() tea.Cmd {
	e := m.editor
	return func() tea.Msg {
		return SavedMsg{Err: e.Save(context.Background())}
	}
}

// newForm builds the form over the current bindings.
func (m *Model) newForm() tea.Cmd {
	b := m.bind
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().Title("Email notifications").Value(&b.emailEnabled),
			huh.NewConfirm().Title("SMS notifications").Value(&b.smsEnabled),
			huh.NewConfirm().Title("Push notifications").Value(&b.pushEnabled),
		),
		huh.NewGroup(
			huh.NewConfirm().Title("System alerts").Value(&b.systemAlerts),
			huh.NewConfirm().Title("Order updates").Value(&b.orderUpdates),
			huh.NewConfirm().Title("Repair updates").Value(&b.repairUpdates),
			huh.NewConfirm().Title("Inventory alerts").Value(&b.inventoryAlerts),
			huh.NewConfirm().Title("Payment alerts").Value(&b.paymentAlerts),
			huh.NewConfirm().Title("Warranty alerts").Value(&b.warrantyAlerts),
			huh.NewConfirm().Title("Refund alerts").Value(&b.refundAlerts),
		),
		huh.NewGroup(
			huh.NewInput().Title("Quiet hours start (HH:MM)").Value(&b.quietStart),
			huh.NewInput().Title("Quiet hours end (HH:MM)").Value(&b.quietEnd),
			huh.NewInput().Title("Timezone").Value(&b.timezone),
			huh.NewSelect[string]().Title("Digest frequency").
				Options(huh.NewOptions(
					model.FrequencyImmediate,
					model.FrequencyHourly,
					model.FrequencyDaily,
					model.FrequencyWeekly,
				)...).
				Value(&b.frequency),
			huh.NewMultiSelect[string]().Title("Digest channels").
				Options(huh.NewOptions("email", "sms", "push")...).
				Value(&b.channels),
		),
	)
	return m.form.Init()
}

// Update handles messages for the settings editor.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case LoadedMsg:
		m.loading = false
		if msg.Err != nil {
			m.status = "Could not load settings: " + msg.Err.Error()
		} else {
			m.status = ""
		}
		m.bind.load(msg.Settings)
		return m, m.newForm()

	case SavedMsg:
		if msg.Err != nil {
			m.status = "Save failed: " + msg.Err.Error()
		} else {
			m.status = "Settings saved."
		}
		return m, nil

	case tea.KeyMsg:
		if m.form == nil {
			return m, nil
		}
	}

	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.editor.SetDraft(m.bind.value())
		// Rebuild so the form is editable again after completion.
		rebuild := m.newForm()
		return m, tea.Batch(m.saveCmd(), rebuild)
	}
	if m.form.State == huh.StateAborted {
		rebuild := m.newForm()
		return m, rebuild
	}

	return m, cmd
}

// View renders the settings editor.
func (m Model) View() string {
	if m.form == nil {
		return theme.DimmedStyle.Render("Loading settings...")
	}

	var status string
	if m.status != "" {
		status = "\n" + theme.HelpStyle.Render(m.status)
	}

	title := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1).
		Render("Notification Settings")

	return theme.PanelStyle.
		Width(m.width - 4).
		Render(fmt.Sprintf("%s\n%s%s", title, m.form.View(), status))
}

// SetSize updates the view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}
