package model

import "time"

// Notification types.
const (
	NotificationInfo    = "info"
	NotificationSuccess = "success"
	NotificationWarning = "warning"
	NotificationError   = "error"
)

// Notification categories.
const (
	CategorySystem    = "system"
	CategoryUser      = "user"
	CategoryOrder     = "order"
	CategoryRepair    = "repair"
	CategoryInventory = "inventory"
	CategoryPayment   = "payment"
	CategoryWarranty  = "warranty"
	CategoryRefund    = "refund"
)

// Notification priorities.
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Notification is an alert created server-side by a business event and
// surfaced to the user by the polling loop.
type Notification struct {
	// ID is the unique identifier assigned by the server.
	ID string `json:"id"`

	// Title and Message are the display text.
	Title   string `json:"title"`
	Message string `json:"message"`

	// Type is one of info, success, warning, error.
	Type string `json:"type"`

	// Category identifies the business area that produced the event.
	Category string `json:"category"`

	// Priority is one of low, medium, high.
	Priority string `json:"priority"`

	// ActionURL and ActionText are an optional deep-link affordance.
	ActionURL  string `json:"actionUrl,omitempty"`
	ActionText string `json:"actionText,omitempty"`

	// Read indicates whether the user has opened this notification.
	Read bool `json:"read"`

	// CreatedAt is when the server generated the notification.
	CreatedAt time.Time `json:"createdAt"`
}
