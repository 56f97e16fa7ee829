package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

type InventoryRequest struct {
	Kode  string `json:"kode"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Stock int    `json:"stock"`
}

func (c *Client) ListInventories(ctx context.Context, token string) ([]domain.InventoryItem, error) {
	return getJSON[[]domain.InventoryItem](ctx, c, "/inventories", token, "inventory")
}

func (c *Client) CreateInventory(ctx context.Context, token string, req InventoryRequest) (domain.InventoryItem, error) {
	return sendJSON[domain.InventoryItem](ctx, c, http.MethodPost, "/inventories", token, req)
}

func (c *Client) UpdateInventory(ctx context.Context, token string, id uint, req InventoryRequest) (domain.InventoryItem, error) {
	return sendJSON[domain.InventoryItem](ctx, c, http.MethodPut, fmt.Sprintf("/inventories/%v", id), token, req)
}

func (c *Client) DeleteInventory(ctx context.Context, token string, id uint) error {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/inventories/%v", id), token, nil)
}
