package resourcelist

import (
	"fmt"

	"github.com/jmorales/shopdesk/internal/model"
	"github.com/jmorales/shopdesk/internal/ui/form"
)

// CustomerSpec describes the customers page.
func CustomerSpec() Spec[model.Customer] {
	return Spec[model.Customer]{
		Title: "Customers",
		Describe: func(c model.Customer) string {
			return c.Name
		},
		Summary: func(c model.Customer) string {
			return fmt.Sprintf("%s · %s", c.Email, c.Phone)
		},
		FilterDim: "status",
		FilterValues: []string{
			model.CustomerStatusActive,
			model.CustomerStatusInactive,
		},
		NewBinder: func() form.Binder[model.Customer] {
			return form.NewCustomerBinder()
		},
	}
}

// JobSpec describes the repair jobs page.
func JobSpec() Spec[model.Job] {
	return Spec[model.Job]{
		Title: "Jobs",
		Describe: func(j model.Job) string {
			return j.Device
		},
		Summary: func(j model.Job) string {
			return fmt.Sprintf("%s · %s priority · %.2f", j.Issue, j.Priority, j.EstimatedCost)
		},
		FilterDim: "status",
		FilterValues: []string{
			model.JobStatusPending,
			model.JobStatusInProgress,
			model.JobStatusAwaitingParts,
			model.JobStatusCompleted,
			model.JobStatusCancelled,
		},
		NewBinder: func() form.Binder[model.Job] {
			return form.NewJobBinder()
		},
	}
}

// StockSpec describes the inventory page.
func StockSpec() Spec[model.StockItem] {
	return Spec[model.StockItem]{
		Title: "Stock",
		Describe: func(s model.StockItem) string {
			return fmt.Sprintf("%s [%s]", s.Name, s.SKU)
		},
		Summary: func(s model.StockItem) string {
			line := fmt.Sprintf("%s · qty %d · %.2f", s.Category, s.Quantity, s.SalePrice)
			if s.LowStock() {
				line += " · LOW"
			}
			return line
		},
		FilterDim: "category",
		FilterValues: []string{
			model.StockCategoryParts,
			model.StockCategoryAccessories,
			model.StockCategoryDevices,
			model.StockCategoryConsumables,
		},
		NewBinder: func() form.Binder[model.StockItem] {
			return form.NewStockBinder()
		},
	}
}

// RefundSpec describes the refunds page.
func RefundSpec() Spec[model.Refund] {
	return Spec[model.Refund]{
		Title: "Refunds",
		Describe: func(r model.Refund) string {
			return fmt.Sprintf("%.2f via %s", r.Amount, r.Method)
		},
		Summary: func(r model.Refund) string {
			return fmt.Sprintf("job %s · %s", r.JobID, r.Reason)
		},
		FilterDim: "status",
		FilterValues: []string{
			model.RefundStatusPending,
			model.RefundStatusApproved,
			model.RefundStatusRejected,
			model.RefundStatusProcessed,
		},
		NewBinder: func() form.Binder[model.Refund] {
			return form.NewRefundBinder()
		},
	}
}

// WarrantySpec describes the warranties page.
func WarrantySpec() Spec[model.Warranty] {
	return Spec[model.Warranty]{
		Title: "Warranties",
		Describe: func(w model.Warranty) string {
			return w.Item
		},
		Summary: func(w model.Warranty) string {
			expiry := ""
			if !w.ExpiresAt.IsZero() {
				expiry = " · expires " + w.ExpiresAt.Format("2006-01-02")
			}
			return w.Provider + expiry
		},
		FilterDim: "status",
		FilterValues: []string{
			model.WarrantyStatusActive,
			model.WarrantyStatusExpired,
			model.WarrantyStatusClaimed,
			model.WarrantyStatusVoid,
		},
		NewBinder: func() form.Binder[model.Warranty] {
			return form.NewWarrantyBinder()
		},
	}
}

// TechnicianSpec describes the technicians page.
func TechnicianSpec() Spec[model.Technician] {
	return Spec[model.Technician]{
		Title: "Technicians",
		Describe: func(t model.Technician) string {
			return t.Name
		},
		Summary: func(t model.Technician) string {
			return fmt.Sprintf("%s · %s", t.Specialty, t.Email)
		},
		FilterDim: "status",
		FilterValues: []string{
			model.TechnicianStatusAvailable,
			model.TechnicianStatusBusy,
			model.TechnicianStatusOff,
		},
		NewBinder: func() form.Binder[model.Technician] {
			return form.NewTechnicianBinder()
		},
	}
}
