package upstream

import (
	"context"
	"net/http"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

type SaleRequest struct {
	InventoryID uint   `json:"inventory_id"`
	Quantity    int    `json:"quantity"`
	EmployeeID  uint   `json:"employee_id"`
	Date        string `json:"date"`
}

func (c *Client) ListSales(ctx context.Context, token string) ([]domain.Sale, error) {
	return getJSON[[]domain.Sale](ctx, c, "/sales", token, "sales")
}

func (c *Client) CreateSale(ctx context.Context, token string, req SaleRequest) (domain.Sale, error) {
	return sendJSON[domain.Sale](ctx, c, http.MethodPost, "/sales", token, req)
}
