package form

import (
	"strconv"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/jmorales/shopdesk/internal/model"
)

// parseAmount converts a money input to a float, treating blank and
// unparsable input as zero; range checks happen in validation.
func parseAmount(s string) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

func parseCount(s string) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return v
}

func formatAmount(v float64) string {
	if v == 0 {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// CustomerBinder binds the customer dialog fields.
type CustomerBinder struct {
	id      string
	name    string
	email   string
	phone   string
	address string
	notes   string
	status  string
}

func NewCustomerBinder() *CustomerBinder { return &CustomerBinder{} }

func (b *CustomerBinder) Load(c model.Customer) {
	b.id = c.ID
	b.name = c.Name
	b.email = c.Email
	b.phone = c.Phone
	b.address = c.Address
	b.notes = c.Notes
	b.status = c.Status
	if b.status == "" {
		b.status = model.CustomerStatusActive
	}
}

func (b *CustomerBinder) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Name").Value(&b.name),
		huh.NewInput().Title("Email").Value(&b.email),
		huh.NewInput().Title("Phone").Value(&b.phone),
		huh.NewInput().Title("Address").Value(&b.address),
		huh.NewText().Title("Notes").Value(&b.notes),
		huh.NewSelect[string]().Title("Status").
			Options(huh.NewOptions(
				model.CustomerStatusActive,
				model.CustomerStatusInactive,
			)...).
			Value(&b.status),
	}
}

func (b *CustomerBinder) Value() model.Customer {
	return model.Customer{
		ID:      b.id,
		Name:    b.name,
		Email:   b.email,
		Phone:   b.phone,
		Address: b.address,
		Notes:   b.notes,
		Status:  b.status,
	}
}

// JobBinder binds the repair ticket dialog fields.
type JobBinder struct {
	id            string
	customerID    string
	device        string
	issue         string
	status        string
	priority      string
	technicianID  string
	estimatedCost string
}

func NewJobBinder() *JobBinder { return &JobBinder{} }

func (b *JobBinder) Load(j model.Job) {
	b.id = j.ID
	b.customerID = j.CustomerID
	b.device = j.Device
	b.issue = j.Issue
	b.status = j.Status
	b.priority = j.Priority
	b.technicianID = j.TechnicianID
	b.estimatedCost = formatAmount(j.EstimatedCost)
	if b.status == "" {
		b.status = model.JobStatusPending
	}
	if b.priority == "" {
		b.priority = model.JobPriorityMedium
	}
}

func (b *JobBinder) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Customer ID").Value(&b.customerID),
		huh.NewInput().Title("Device").Value(&b.device),
		huh.NewText().Title("Issue").Value(&b.issue),
		huh.NewSelect[string]().Title("Status").
			Options(huh.NewOptions(
				model.JobStatusPending,
				model.JobStatusInProgress,
				model.JobStatusAwaitingParts,
				model.JobStatusCompleted,
				model.JobStatusCancelled,
			)...).
			Value(&b.status),
		huh.NewSelect[string]().Title("Priority").
			Options(huh.NewOptions(
				model.JobPriorityLow,
				model.JobPriorityMedium,
				model.JobPriorityHigh,
			)...).
			Value(&b.priority),
		huh.NewInput().Title("Technician ID").Value(&b.technicianID),
		huh.NewInput().Title("Estimated cost").Value(&b.estimatedCost),
	}
}

func (b *JobBinder) Value() model.Job {
	return model.Job{
		ID:            b.id,
		CustomerID:    b.customerID,
		Device:        b.device,
		Issue:         b.issue,
		Status:        b.status,
		Priority:      b.priority,
		TechnicianID:  b.technicianID,
		EstimatedCost: parseAmount(b.estimatedCost),
	}
}

// StockBinder binds the inventory item dialog fields.
type StockBinder struct {
	id           string
	sku          string
	name         string
	category     string
	quantity     string
	reorderLevel string
	unitCost     string
	salePrice    string
	supplier     string
	status       string
}

func NewStockBinder() *StockBinder { return &StockBinder{} }

func (b *StockBinder) Load(s model.StockItem) {
	b.id = s.ID
	b.sku = s.SKU
	b.name = s.Name
	b.category = s.Category
	b.quantity = strconv.Itoa(s.Quantity)
	b.reorderLevel = strconv.Itoa(s.ReorderLevel)
	b.unitCost = formatAmount(s.UnitCost)
	b.salePrice = formatAmount(s.SalePrice)
	b.supplier = s.Supplier
	b.status = s.Status
	if b.category == "" {
		b.category = model.StockCategoryParts
	}
	if b.status == "" {
		b.status = model.StockStatusActive
	}
}

func (b *StockBinder) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("SKU").Value(&b.sku),
		huh.NewInput().Title("Name").Value(&b.name),
		huh.NewSelect[string]().Title("Category").
			Options(huh.NewOptions(
				model.StockCategoryParts,
				model.StockCategoryAccessories,
				model.StockCategoryDevices,
				model.StockCategoryConsumables,
			)...).
			Value(&b.category),
		huh.NewInput().Title("Quantity").Value(&b.quantity),
		huh.NewInput().Title("Reorder level").Value(&b.reorderLevel),
		huh.NewInput().Title("Unit cost").Value(&b.unitCost),
		huh.NewInput().Title("Sale price").Value(&b.salePrice),
		huh.NewInput().Title("Supplier").Value(&b.supplier),
	}
}

func (b *StockBinder) Value() model.StockItem {
	return model.StockItem{
		ID:           b.id,
		SKU:          b.sku,
		Name:         b.name,
		Category:     b.category,
		Quantity:     parseCount(b.quantity),
		ReorderLevel: parseCount(b.reorderLevel),
		UnitCost:     parseAmount(b.unitCost),
		SalePrice:    parseAmount(b.salePrice),
		Supplier:     b.supplier,
		Status:       b.status,
	}
}

// RefundBinder binds the refund dialog fields.
type RefundBinder struct {
	id     string
	jobID  string
	amount string
	reason string
	method string
	status string
}

func NewRefundBinder() *RefundBinder { return &RefundBinder{} }

func (b *RefundBinder) Load(r model.Refund) {
	b.id = r.ID
	b.jobID = r.JobID
	b.amount = formatAmount(r.Amount)
	b.reason = r.Reason
	b.method = r.Method
	b.status = r.Status
	if b.method == "" {
		b.method = model.RefundMethodCard
	}
	if b.status == "" {
		b.status = model.RefundStatusPending
	}
}

func (b *RefundBinder) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Job ID").Value(&b.jobID),
		huh.NewInput().Title("Amount").Value(&b.amount),
		huh.NewText().Title("Reason").Value(&b.reason),
		huh.NewSelect[string]().Title("Method").
			Options(huh.NewOptions(
				model.RefundMethodCash,
				model.RefundMethodCard,
				model.RefundMethodTransfer,
				model.RefundMethodCredit,
			)...).
			Value(&b.method),
		huh.NewSelect[string]().Title("Status").
			Options(huh.NewOptions(
				model.RefundStatusPending,
				model.RefundStatusApproved,
				model.RefundStatusRejected,
				model.RefundStatusProcessed,
			)...).
			Value(&b.status),
	}
}

func (b *RefundBinder) Value() model.Refund {
	return model.Refund{
		ID:     b.id,
		JobID:  b.jobID,
		Amount: parseAmount(b.amount),
		Reason: b.reason,
		Method: b.method,
		Status: b.status,
	}
}

// WarrantyBinder binds the warranty dialog fields.
type WarrantyBinder struct {
	id        string
	jobID     string
	item      string
	provider  string
	terms     string
	status    string
	startsAt  string
	expiresAt string
}

func NewWarrantyBinder() *WarrantyBinder { return &WarrantyBinder{} }

func (b *WarrantyBinder) Load(w model.Warranty) {
	b.id = w.ID
	b.jobID = w.JobID
	b.item = w.Item
	b.provider = w.Provider
	b.terms = w.Terms
	b.status = w.Status
	if !w.StartsAt.IsZero() {
		b.startsAt = w.StartsAt.Format("2006-01-02")
	} else {
		b.startsAt = ""
	}
	if !w.ExpiresAt.IsZero() {
		b.expiresAt = w.ExpiresAt.Format("2006-01-02")
	} else {
		b.expiresAt = ""
	}
	if b.status == "" {
		b.status = model.WarrantyStatusActive
	}
}

func (b *WarrantyBinder) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Job ID").Value(&b.jobID),
		huh.NewInput().Title("Item").Value(&b.item),
		huh.NewInput().Title("Provider").Value(&b.provider),
		huh.NewText().Title("Terms").Value(&b.terms),
		huh.NewSelect[string]().Title("Status").
			Options(huh.NewOptions(
				model.WarrantyStatusActive,
				model.WarrantyStatusExpired,
				model.WarrantyStatusClaimed,
				model.WarrantyStatusVoid,
			)...).
			Value(&b.status),
		huh.NewInput().Title("Starts (YYYY-MM-DD)").Value(&b.startsAt),
		huh.NewInput().Title("Expires (YYYY-MM-DD)").Value(&b.expiresAt),
	}
}

func (b *WarrantyBinder) Value() model.Warranty {
	w := model.Warranty{
		ID:       b.id,
		JobID:    b.jobID,
		Item:     b.item,
		Provider: b.provider,
		Terms:    b.terms,
		Status:   b.status,
	}
	if t, err := time.Parse("2006-01-02", b.startsAt); err == nil {
		w.StartsAt = t
	}
	if t, err := time.Parse("2006-01-02", b.expiresAt); err == nil {
		w.ExpiresAt = t
	}
	return w
}

// TechnicianBinder binds the technician dialog fields.
type TechnicianBinder struct {
	id        string
	name      string
	email     string
	specialty string
	status    string
}

func NewTechnicianBinder() *TechnicianBinder { return &TechnicianBinder{} }

func (b *TechnicianBinder) Load(t model.Technician) {
	b.id = t.ID
	b.name = t.Name
	b.email = t.Email
	b.specialty = t.Specialty
	b.status = t.Status
	if b.status == "" {
		b.status = model.TechnicianStatusAvailable
	}
}

func (b *TechnicianBinder) Fields() []huh.Field {
	return []huh.Field{
		huh.NewInput().Title("Name").Value(&b.name),
		huh.NewInput().Title("Email").Value(&b.email),
		huh.NewInput().Title("Specialty").Value(&b.specialty),
		huh.NewSelect[string]().Title("Status").
			Options(huh.NewOptions(
				model.TechnicianStatusAvailable,
				model.TechnicianStatusBusy,
				model.TechnicianStatusOff,
			)...).
			Value(&b.status),
	}
}

func (b *TechnicianBinder) Value() model.Technician {
	return model.Technician{
		ID:        b.id,
		Name:      b.name,
		Email:     b.email,
		Specialty: b.specialty,
		Status:    b.status,
	}
}
