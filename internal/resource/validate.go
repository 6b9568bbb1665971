package resource

import (
	"strings"

	"github.com/jmorales/shopdesk/internal/api"
	"github.com/jmorales/shopdesk/internal/model"
)

// The validators below run the client-side required-field checks before
// a create/update submission. Each returns the first failing field in
// declaration order, matching the order fields appear in the dialogs.

func required(field, value string) *api.FieldError {
	if strings.TrimSpace(value) == "" {
		return &api.FieldError{Field: field, Message: "is required"}
	}
	return nil
}

// ValidateCustomer checks a customer draft.
func ValidateCustomer(c model.Customer) *api.FieldError {
	if fe := required("name", c.Name); fe != nil {
		return fe
	}
	if fe := required("email", c.Email); fe != nil {
		return fe
	}
	if !strings.Contains(c.Email, "@") {
		return &api.FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}

// ValidateJob checks a repair ticket draft.
func ValidateJob(j model.Job) *api.FieldError {
	if fe := required("customerId", j.CustomerID); fe != nil {
		return fe
	}
	if fe := required("device", j.Device); fe != nil {
		return fe
	}
	if fe := required("issue", j.Issue); fe != nil {
		return fe
	}
	if j.EstimatedCost < 0 {
		return &api.FieldError{Field: "estimatedCost", Message: "must not be negative"}
	}
	return nil
}

// ValidateStockItem checks an inventory item draft.
func ValidateStockItem(s model.StockItem) *api.FieldError {
	if fe := required("sku", s.SKU); fe != nil {
		return fe
	}
	if fe := required("name", s.Name); fe != nil {
		return fe
	}
	if s.Quantity < 0 {
		return &api.FieldError{Field: "quantity", Message: "must not be negative"}
	}
	if s.SalePrice < 0 {
		return &api.FieldError{Field: "salePrice", Message: "must not be negative"}
	}
	return nil
}

// ValidateRefund checks a refund draft.
func ValidateRefund(r model.Refund) *api.FieldError {
	if fe := required("jobId", r.JobID); fe != nil {
		return fe
	}
	if r.Amount <= 0 {
		return &api.FieldError{Field: "amount", Message: "must be greater than zero"}
	}
	if fe := required("reason", r.Reason); fe != nil {
		return fe
	}
	return nil
}

// ValidateWarranty checks a warranty draft.
func ValidateWarranty(w model.Warranty) *api.FieldError {
	if fe := required("jobId", w.JobID); fe != nil {
		return fe
	}
	if fe := required("item", w.Item); fe != nil {
		return fe
	}
	if !w.ExpiresAt.IsZero() && !w.StartsAt.IsZero() && w.ExpiresAt.Before(w.StartsAt) {
		return &api.FieldError{Field: "expiresAt", Message: "must be after the start date"}
	}
	return nil
}

// ValidateTechnician checks a technician draft.
func ValidateTechnician(t model.Technician) *api.FieldError {
	if fe := required("name", t.Name); fe != nil {
		return fe
	}
	if fe := required("email", t.Email); fe != nil {
		return fe
	}
	if !strings.Contains(t.Email, "@") {
		return &api.FieldError{Field: "email", Message: "must be a valid email address"}
	}
	return nil
}
