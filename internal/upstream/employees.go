package upstream

import (
	"context"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

func (c *Client) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	return getJSON[[]domain.Employee](ctx, c, "/employees", token, "employees")
}
