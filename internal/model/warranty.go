package model

import "time"

// Warranty lifecycle statuses.
const (
	WarrantyStatusActive  = "active"
	WarrantyStatusExpired = "expired"
	WarrantyStatusClaimed = "claimed"
	WarrantyStatusVoid    = "void"
)

// Warranty covers a completed repair or a sold item for a fixed window.
type Warranty struct {
	ID           string    `json:"id"`
	JobID        string    `json:"jobId"`
	CustomerID   string    `json:"customerId"`
	CustomerName string    `json:"customerName"`
	Item         string    `json:"item"`
	Provider     string    `json:"provider"`
	Terms        string    `json:"terms"`
	Status       string    `json:"status"`
	StartsAt     time.Time `json:"startsAt"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

func (w Warranty) EntityID() string { return w.ID }

func (w Warranty) SearchFields() []string {
	return []string{w.Item, w.CustomerName, w.Provider}
}

func (w Warranty) FilterValue(dim string) string {
	if dim == "status" {
		return w.Status
	}
	return ""
}
