package model

import "time"

// Refund lifecycle statuses.
const (
	RefundStatusPending   = "pending"
	RefundStatusApproved  = "approved"
	RefundStatusRejected  = "rejected"
	RefundStatusProcessed = "processed"
)

// Refund payment methods.
const (
	RefundMethodCash     = "cash"
	RefundMethodCard     = "card"
	RefundMethodTransfer = "transfer"
	RefundMethodCredit   = "store_credit"
)

// Refund records money returned to a customer against a job.
type Refund struct {
	ID           string     `json:"id"`
	JobID        string     `json:"jobId"`
	CustomerID   string     `json:"customerId"`
	CustomerName string     `json:"customerName"`
	Amount       float64    `json:"amount"`
	Reason       string     `json:"reason"`
	Method       string     `json:"method"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"createdAt"`
	ProcessedAt  *time.Time `json:"processedAt,omitempty"`
}

func (r Refund) EntityID() string { return r.ID }

func (r Refund) SearchFields() []string {
	return []string{r.CustomerName, r.Reason, r.JobID}
}

func (r Refund) FilterValue(dim string) string {
	switch dim {
	case "status":
		return r.Status
	case "method":
		return r.Method
	}
	return ""
}
