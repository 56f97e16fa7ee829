package domain

// PaymentLine is one cart entry as persisted by the upstream payment
// endpoint.
type PaymentLine struct {
	Kode       string `json:"kode"`
	Qty        int    `json:"qty"`
	TotalPrice int    `json:"total_price"`
}

// PaymentRecord is the server-persisted result of a completed
// checkout. It is immutable once created.
type PaymentRecord struct {
	ID         uint          `json:"id"`
	CustomerID uint          `json:"customer_id"`
	EmployeeID uint          `json:"employee_id"`
	TotalPrice int           `json:"total_price"`
	Date       string        `json:"date"`
	Carts      []PaymentLine `json:"carts"`
}

// ComputeChange derives the change due from the tendered amount.
// A negative result means "not yet fully paid" and is valid output,
// not an error. Amounts are integer currency units.
func ComputeChange(total, amountTendered int) int {
	return amountTendered - total
}
