package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CheckoutRequest struct {
	CustomerID uint `json:"customer_id"`
	EmployeeID uint `json:"employee_id"`
}

func (req *CheckoutRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.CustomerID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.EmployeeID, validation.Required, validation.Min(uint(1))),
	)
}

// ReceiptRequest carries the tender and the optional party selections.
// Nothing is required: the renderer falls back to "Unknown" names and
// a negative change simply means insufficient tender.
type ReceiptRequest struct {
	CustomerID uint `json:"customer_id"`
	EmployeeID uint `json:"employee_id"`
	AmountPaid int  `json:"amount_paid"`
}

func (req *ReceiptRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.AmountPaid, validation.Min(0)),
	)
}
