package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

// CustomerRequest is the write payload for the customers resource.
type CustomerRequest struct {
	NIK     string `json:"nik"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

func (c *Client) ListCustomers(ctx context.Context, token string) ([]domain.Customer, error) {
	return getJSON[[]domain.Customer](ctx, c, "/customers", token, "customers")
}

func (c *Client) CreateCustomer(ctx context.Context, token string, req CustomerRequest) (domain.Customer, error) {
	return sendJSON[domain.Customer](ctx, c, http.MethodPost, "/customers", token, req)
}

func (c *Client) UpdateCustomer(ctx context.Context, token string, id uint, req CustomerRequest) (domain.Customer, error) {
	return sendJSON[domain.Customer](ctx, c, http.MethodPut, fmt.Sprintf("/customers/%v", id), token, req)
}

func (c *Client) DeleteCustomer(ctx context.Context, token string, id uint) error {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/customers/%v", id), token, nil)
}
