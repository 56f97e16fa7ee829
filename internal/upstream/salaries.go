package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

type SalaryRequest struct {
	EmployeeID  uint   `json:"employee_id"`
	Amount      int    `json:"amount"`
	Period      string `json:"period"`
	PaymentDate string `json:"payment_date"`
}

func (c *Client) ListSalaries(ctx context.Context, token string) ([]domain.Salary, error) {
	return getJSON[[]domain.Salary](ctx, c, "/salaries", token, "salaries")
}

func (c *Client) CreateSalary(ctx context.Context, token string, req SalaryRequest) (domain.Salary, error) {
	return sendJSON[domain.Salary](ctx, c, http.MethodPost, "/salaries", token, req)
}

func (c *Client) UpdateSalary(ctx context.Context, token string, id uint, req SalaryRequest) (domain.Salary, error) {
	return sendJSON[domain.Salary](ctx, c, http.MethodPut, fmt.Sprintf("/salaries/%v", id), token, req)
}

func (c *Client) DeleteSalary(ctx context.Context, token string, id uint) error {
	return send(ctx, c, http.MethodDelete, fmt.Sprintf("/salaries/%v", id), token, nil)
}
