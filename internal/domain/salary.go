package domain

type Salary struct {
	ID           uint   `json:"id"`
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	Amount       int    `json:"amount"`
	Period       string `json:"period"`
	PaymentDate  string `json:"payment_date"`
}
