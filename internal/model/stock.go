package model

import "time"

// Stock item statuses.
const (
	StockStatusActive       = "in_stock"
	StockStatusDiscontinued = "discontinued"
)

// Stock item categories recognized by the category filter.
const (
	StockCategoryParts       = "parts"
	StockCategoryAccessories = "accessories"
	StockCategoryDevices     = "devices"
	StockCategoryConsumables = "consumables"
)

// StockItem is a single inventory line.
type StockItem struct {
	ID           string    `json:"id"`
	SKU          string    `json:"sku"`
	Name         string    `json:"name"`
	Category     string    `json:"category"`
	Quantity     int       `json:"quantity"`
	ReorderLevel int       `json:"reorderLevel"`
	UnitCost     float64   `json:"unitCost"`
	SalePrice    float64   `json:"salePrice"`
	Supplier     string    `json:"supplier"`
	Status       string    `json:"status"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// LowStock reports whether the quantity has fallen to the reorder level.
func (s StockItem) LowStock() bool {
	return s.Quantity <= s.ReorderLevel
}

func (s StockItem) EntityID() string { return s.ID }

func (s StockItem) SearchFields() []string {
	return []string{s.Name, s.SKU, s.Supplier}
}

func (s StockItem) FilterValue(dim string) string {
	switch dim {
	case "category":
		return s.Category
	case "status":
		return s.Status
	}
	return ""
}
