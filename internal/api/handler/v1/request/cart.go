package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
)

type AddCartLineRequest struct {
	InventoryID uint `json:"inventory_id"`
	Quantity    int  `json:"quantity"`
}

func (req *AddCartLineRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.InventoryID, validation.Required, validation.Min(uint(1))),
		validation.Field(&req.Quantity, validation.Required),
	)
}

type UpdateCartLineRequest struct {
	Quantity int `json:"quantity"`
}

func (req *UpdateCartLineRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Quantity, validation.Required),
	)
}
