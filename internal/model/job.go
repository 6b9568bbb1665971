package model

import "time"

// Job lifecycle statuses.
const (
	JobStatusPending       = "pending"
	JobStatusInProgress    = "in_progress"
	JobStatusAwaitingParts = "awaiting_parts"
	JobStatusCompleted     = "completed"
	JobStatusCancelled     = "cancelled"
)

// Job priorities.
const (
	JobPriorityLow    = "low"
	JobPriorityMedium = "medium"
	JobPriorityHigh   = "high"
)

// Job is a repair ticket tracking a device through the shop.
type Job struct {
	// ID is the server-assigned ticket identifier.
	ID string `json:"id"`

	// CustomerID links the ticket to the owning customer.
	CustomerID string `json:"customerId"`

	// CustomerName is denormalized by the server for display.
	CustomerName string `json:"customerName"`

	// Device is the make/model being repaired.
	Device string `json:"device"`

	// Issue describes the reported problem.
	Issue string `json:"issue"`

	Status   string `json:"status"`
	Priority string `json:"priority"`

	// TechnicianID is the assigned technician, empty if unassigned.
	TechnicianID string `json:"technicianId"`

	EstimatedCost float64 `json:"estimatedCost"`
	FinalCost     float64 `json:"finalCost"`

	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (j Job) EntityID() string { return j.ID }

func (j Job) SearchFields() []string {
	return []string{j.Device, j.Issue, j.CustomerName}
}

func (j Job) FilterValue(dim string) string {
	switch dim {
	case "status":
		return j.Status
	case "priority":
		return j.Priority
	}
	return ""
}
