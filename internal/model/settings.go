package model

import (
	"encoding/json"
	"strings"
)

// Notification frequencies.
const (
	FrequencyImmediate = "immediate"
	FrequencyHourly    = "hourly"
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
)

// ChannelList is the list of digest channels. The backend serializes it
// as a comma-joined string; older responses may carry a native array, so
// both forms are accepted on read.
type ChannelList []string

// MarshalJSON emits the wire form, a comma-joined string.
func (c ChannelList) MarshalJSON() ([]byte, error) {
	return json.Marshal(strings.Join(c, ","))
}

// UnmarshalJSON accepts either a comma-joined string or a JSON array.
func (c *ChannelList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s == "" {
			*c = nil
			return nil
		}
		parts := strings.Split(s, ",")
		out := make(ChannelList, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		*c = out
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*c = list
	return nil
}

// NotificationSettings is the whole-record notification preference set.
// The record is owned server-side; the client fetches it, edits a draft,
// and PUTs the complete record back.
//
// The per-channel booleans and the Channels list are intentionally
// independent: the booleans gate delivery on each channel, while Channels
// selects which channels the frequency digest covers.
type NotificationSettings struct {
	EmailEnabled bool `json:"emailEnabled"`
	SMSEnabled   bool `json:"smsEnabled"`
	PushEnabled  bool `json:"pushEnabled"`

	SystemAlerts    bool `json:"systemAlerts"`
	OrderUpdates    bool `json:"orderUpdates"`
	RepairUpdates   bool `json:"repairUpdates"`
	InventoryAlerts bool `json:"inventoryAlerts"`
	PaymentAlerts   bool `json:"paymentAlerts"`
	WarrantyAlerts  bool `json:"warrantyAlerts"`
	RefundAlerts    bool `json:"refundAlerts"`

	// QuietHoursStart/End are local times in HH:MM form.
	QuietHoursStart string `json:"quietHoursStart"`
	QuietHoursEnd   string `json:"quietHoursEnd"`

	Timezone  string      `json:"timezone"`
	Frequency string      `json:"frequency"`
	Channels  ChannelList `json:"channels"`
}

// DefaultNotificationSettings returns the defaults applied to any field
// absent or falsy in the server response.
func DefaultNotificationSettings() NotificationSettings {
	return NotificationSettings{
		EmailEnabled:    true,
		PushEnabled:     true,
		SystemAlerts:    true,
		OrderUpdates:    true,
		RepairUpdates:   true,
		InventoryAlerts: true,
		PaymentAlerts:   true,
		WarrantyAlerts:  true,
		RefundAlerts:    true,
		QuietHoursStart: "22:00",
		QuietHoursEnd:   "08:00",
		Timezone:        "UTC",
		Frequency:       FrequencyImmediate,
		Channels:        ChannelList{"email"},
	}
}
