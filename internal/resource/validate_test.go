package resource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jmorales/shopdesk/internal/model"
)

func TestValidateCustomerFirstFailingField(t *testing.T) {
	// Both name and email are missing; only the first is reported.
	fe := ValidateCustomer(model.Customer{})
	require.NotNil(t, fe)
	require.Equal(t, "name", fe.Field)

	fe = ValidateCustomer(model.Customer{Name: "Alice"})
	require.NotNil(t, fe)
	require.Equal(t, "email", fe.Field)

	fe = ValidateCustomer(model.Customer{Name: "Alice", Email: "not-an-email"})
	require.NotNil(t, fe)
	require.Equal(t, "email", fe.Field)

	require.Nil(t, ValidateCustomer(model.Customer{Name: "Alice", Email: "a@shop.test"}))
}

func TestValidateCustomerWhitespaceOnly(t *testing.T) {
	fe := ValidateCustomer(model.Customer{Name: "   ", Email: "a@shop.test"})
	require.NotNil(t, fe)
	require.Equal(t, "name", fe.Field)
}

func TestValidateJob(t *testing.T) {
	fe := ValidateJob(model.Job{})
	require.Equal(t, "customerId", fe.Field)

	fe = ValidateJob(model.Job{CustomerID: "c1", Device: "phone", Issue: "broken", EstimatedCost: -5})
	require.Equal(t, "estimatedCost", fe.Field)

	require.Nil(t, ValidateJob(model.Job{CustomerID: "c1", Device: "phone", Issue: "broken"}))
}

func TestValidateStockItem(t *testing.T) {
	fe := ValidateStockItem(model.StockItem{})
	require.Equal(t, "sku", fe.Field)

	fe = ValidateStockItem(model.StockItem{SKU: "S1", Name: "Screen", Quantity: -1})
	require.Equal(t, "quantity", fe.Field)

	require.Nil(t, ValidateStockItem(model.StockItem{SKU: "S1", Name: "Screen"}))
}

func TestValidateRefund(t *testing.T) {
	fe := ValidateRefund(model.Refund{})
	require.Equal(t, "jobId", fe.Field)

	fe = ValidateRefund(model.Refund{JobID: "j1", Reason: "defect"})
	require.Equal(t, "amount", fe.Field)

	require.Nil(t, ValidateRefund(model.Refund{JobID: "j1", Amount: 10, Reason: "defect"}))
}

func TestValidateWarrantyDateOrder(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	fe := ValidateWarranty(model.Warranty{
		JobID:     "j1",
		Item:      "battery",
		StartsAt:  start,
		ExpiresAt: start.Add(-24 * time.Hour),
	})
	require.NotNil(t, fe)
	require.Equal(t, "expiresAt", fe.Field)

	require.Nil(t, ValidateWarranty(model.Warranty{
		JobID:     "j1",
		Item:      "battery",
		StartsAt:  start,
		ExpiresAt: start.AddDate(1, 0, 0),
	}))
}

func TestValidateTechnician(t *testing.T) {
	fe := ValidateTechnician(model.Technician{Name: "Sam", Email: "nope"})
	require.Equal(t, "email", fe.Field)

	require.Nil(t, ValidateTechnician(model.Technician{Name: "Sam", Email: "sam@shop.test"}))
}
