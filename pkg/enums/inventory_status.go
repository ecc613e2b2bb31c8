package enums

// InventoryStatus is derived from stock levels and never stored.
type InventoryStatus string

const (
	InventoryStatusInStock    InventoryStatus = "in_stock"
	InventoryStatusLowStock   InventoryStatus = "low_stock"
	InventoryStatusOutOfStock InventoryStatus = "out_of_stock"
)

// Alerting reports whether the status should raise a low stock alert.
func (s InventoryStatus) Alerting() bool {
	return s == InventoryStatusLowStock || s == InventoryStatusOutOfStock
}
