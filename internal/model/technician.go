package model

import "time"

// Technician availability statuses.
const (
	TechnicianStatusAvailable = "available"
	TechnicianStatusBusy      = "busy"
	TechnicianStatusOff       = "off"
)

// Technician is a staff member who works repair tickets. ActiveJobs and
// CompletedJobs are server-computed counters.
type Technician struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Specialty     string    `json:"specialty"`
	Status        string    `json:"status"`
	ActiveJobs    int       `json:"activeJobs"`
	CompletedJobs int       `json:"completedJobs"`
	CreatedAt     time.Time `json:"createdAt"`
}

func (t Technician) EntityID() string { return t.ID }

func (t Technician) SearchFields() []string {
	return []string{t.Name, t.Email, t.Specialty}
}

func (t Technician) FilterValue(dim string) string {
	if dim == "status" {
		return t.Status
	}
	return ""
}
