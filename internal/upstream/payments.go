package upstream

import (
	"context"
	"net/http"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

// PaymentRequest packages one checkout. Carts entries carry the item
// code, quantity and line total exactly as the payment endpoint
// persists them.
type PaymentRequest struct {
	CustomerID uint                 `json:"customer_id"`
	EmployeeID uint                 `json:"employee_id"`
	TotalPrice int                  `json:"total_price"`
	Date       string               `json:"date"`
	Carts      []domain.PaymentLine `json:"carts"`
}

func (c *Client) ListPayments(ctx context.Context, token string) ([]domain.PaymentRecord, error) {
	return getJSON[[]domain.PaymentRecord](ctx, c, "/payments", token, "payments")
}

func (c *Client) CreatePayment(ctx context.Context, token string, req PaymentRequest) (domain.PaymentRecord, error) {
	return sendJSON[domain.PaymentRecord](ctx, c, http.MethodPost, "/payments", token, req)
}
