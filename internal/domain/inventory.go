package domain

// InventoryItem is a read-only snapshot of one stock-bearing item,
// owned by the remote inventory service.
type InventoryItem struct {
	ID    uint   `json:"id"`
	Kode  string `json:"kode"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}
