package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type CustomerRequest struct {
	NIK     string `json:"nik"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (req *CustomerRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.NIK, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Phone, validation.Required),
	)
}

type InventoryRequest struct {
	Kode  string `json:"kode"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

func (req *InventoryRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Kode, validation.Required),
		validation.Field(&req.Name, validation.Required),
		validation.Field(&req.Price, validation.Required, validation.Min(1)),
		validation.Field(&req.Stock, validation.Min(0)),
	)
}

type RecordSaleRequest struct {
	InventoryID uint `json:"inventory_id"`
	Quantity    int  `json:"quantity"`
	EmployeeID  uint `json:"employee_id"`
}

func (req *RecordSaleRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InventoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Quantity, validation.Required),
		validation.Field(&req.EmployeeID, validation.Required, validation.Min(uint(1))),
	)
}
