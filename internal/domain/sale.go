package domain

// Sale is one outtake record ("barang keluar"): stock leaving the
// inventory outside of a customer checkout.
type Sale struct {
	ID           uint   `json:"id"`
	InventoryID  uint   `json:"inventory_id"`
	Kode         string `json:"kode"`
	Name         string `json:"name"`
	Quantity     int    `json:"quantity"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Date         string `json:"date"`
}
