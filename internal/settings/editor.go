// Package settings implements the fetch-then-edit-then-replace workflow
// for the notification settings record. The record is owned server-side
// and has no partial updates: the complete record is PUT back on save.
package settings

import (
	"context"
	"errors"
	"sync"

	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/session"
)

// API is the settings endpoint pair. *api.Notifications satisfies it.
type API interface {
	Settings(ctx context.Context) (model.NotificationSettings, error)
	SaveSettings(ctx context.Context, s model.NotificationSettings) error
}

// ErrSaveInFlight is returned when a save is attempted while a previous
// one has not completed.
var ErrSaveInFlight = errors.New("a save is already in flight")

// Editor holds the local draft of the settings record.
type Editor struct {
	api      API
	sessions session.Provider

	mu     sync.Mutex
	draft  model.NotificationSettings
	loaded bool
	saving bool
}

// NewEditor creates a settings editor.
func NewEditor(api API, sessions session.Provider) *Editor {
	return &Editor{api: api, sessions: sessions}
}

// Load fetches the current record and fills defaults for any field the
// response left absent or falsy. This is a default-filling step, not a
// merge: a channel toggle the server reports as false comes back enabled
// when its default is enabled.
func (e *Editor) Load(ctx context.Context) error {
	if e.sessions.Current() == nil {
		return session.ErrNoSession
	}

	fetched, err := e.api.Settings(ctx)
	if err != nil {
		return err
	}

	e.mu.Lock()
	e.draft = fillDefaults(fetched)
	e.loaded = true
	e.mu.Unlock()
	return nil
}

// Draft returns the current local draft.
func (e *Editor) Draft() model.NotificationSettings {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.loaded {
		return model.DefaultNotificationSettings()
	}
	return e.draft
}

// SetDraft replaces the local draft with edited values.
func (e *Editor) SetDraft(s model.NotificationSettings) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.draft = s
	e.loaded = true
}

// Save sends the complete draft record to the server. The channels list
// serializes to its comma-joined wire form in transit.
func (e *Editor) Save(ctx context.Context) error {
	if e.sessions.Current() == nil {
		return session.ErrNoSession
	}

	e.mu.Lock()
	if e.saving {
		e.mu.Unlock()
		return ErrSaveInFlight
	}
	e.saving = true
	draft := e.draft
	e.mu.Unlock()

	err := e.api.SaveSettings(ctx, draft)

	e.mu.Lock()
	e.saving = false
	e.mu.Unlock()
	return err
}

// fillDefaults substitutes defaults for absent/falsy fields.
func fillDefaults(s model.NotificationSettings) model.NotificationSettings {
	d := model.DefaultNotificationSettings()

	s.EmailEnabled = s.EmailEnabled || d.EmailEnabled
	s.SMSEnabled = s.SMSEnabled || d.SMSEnabled
	s.PushEnabled = s.PushEnabled || d.PushEnabled
	s.SystemAlerts = s.SystemAlerts || d.SystemAlerts
	s.OrderUpdates = s.OrderUpdates || d.OrderUpdates
	s.RepairUpdates = s.RepairUpdates || d.RepairUpdates
	s.InventoryAlerts = s.InventoryAlerts || d.InventoryAlerts
	s.PaymentAlerts = s.PaymentAlerts || d.PaymentAlerts
	s.WarrantyAlerts = s.WarrantyAlerts || d.WarrantyAlerts
	s.RefundAlerts = s.RefundAlerts || d.RefundAlerts

	if s.QuietHoursStart == "" {
		s.QuietHoursStart = d.QuietHoursStart
	}
	if s.QuietHoursEnd == "" {
		s.QuietHoursEnd = d.QuietHoursEnd
	}
	if s.Timezone == "" {
		s.Timezone = d.Timezone
	}
	if s.Frequency == "" {
		s.Frequency = d.Frequency
	}
	if len(s.Channels) == 0 {
		s.Channels = d.Channels
	}

	return s
}
