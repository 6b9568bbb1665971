package model

import "time"

// Customer statuses used by the status filter dimension.
const (
	CustomerStatusActive   = "active"
	CustomerStatusInactive = "inactive"
)

// Customer is a shop customer record. TotalSpent and JobCount are
// server-computed aggregates and never edited locally.
type Customer struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	Notes      string    `json:"notes"`
	Status     string    `json:"status"`
	TotalSpent float64   `json:"totalSpent"`
	JobCount   int       `json:"jobCount"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// EntityID returns the server-assigned identifier.
func (c Customer) EntityID() string { return c.ID }

// SearchFields returns the text fields matched by client-side search.
func (c Customer) SearchFields() []string {
	return []string{c.Name, c.Email, c.Phone}
}

// FilterValue returns the value of an enum filter dimension.
func (c Customer) FilterValue(dim string) string {
	if dim == "status" {
		return c.Status
	}
	return ""
}
