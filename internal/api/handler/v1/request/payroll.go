package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type SalaryRequest struct {
	EmployeeID  uint   `json:"employee_id"`
	Amount      int    `json:"amount"`
	Period      string `json:"period"`
	PaymentDate string `json:"payment_date"`
}

func (req *SalaryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.EmployeeID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Amount, validation.Required, validation.Min(1)),
		validation.Field(&req.Period, validation.Required),
	)
}
