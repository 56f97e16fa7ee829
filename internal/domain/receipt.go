package domain

import "time"

// ReceiptLine is one printed item row.
type ReceiptLine struct {
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Price     int    `json:"price"`
	LineTotal int    `json:"line_total"`
}

// Receipt is the printable result of a checkout. The transaction
// number is derived from the render timestamp and is independent of
// the server-assigned payment id.
type Receipt struct {
	Header            string        `json:"header"`
	TransactionNumber string        `json:"transaction_number"`
	Cashier           string        `json:"cashier"`
	Customer          string        `json:"customer"`
	Date              time.Time     `json:"date"`
	Lines             []ReceiptLine `json:"lines"`
	Total             int           `json:"total"`
	AmountPaid        int           `json:"amount_paid"`
	Change            int           `json:"change"`
	Footer            string        `json:"footer"`
}
