package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

type PayrollClient interface {
	ListSalaries(ctx context.Context, token string) ([]domain.Salary, error)
	CreateSalary(ctx context.Context, token string, req upstream.SalaryRequest) (domain.Salary, error)
	UpdateSalary(ctx context.Context, token string, id uint, req upstream.SalaryRequest) (domain.Salary, error)
	DeleteSalary(ctx context.Context, token string, id uint) error
}

type PayrollService struct {
	client PayrollClient
}

func NewPayrollService(client PayrollClient) *PayrollService {
	return &PayrollService{
		client: client,
	}
}

// ListSalaries filters by exact period and by employee-name substring
// when either is non-empty.
func (s *PayrollService) ListSalaries(ctx context.Context, token, period, query string) ([]domain.Salary, error) {
	salaries, err := s.client.ListSalaries(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListSalaries -> %w", err)
	}

	return filterSalaries(salaries, period, query), nil
}

func (s *PayrollService) CreateSalary(ctx context.Context, token string, req upstream.SalaryRequest) (domain.Salary, error) {
	created, err := s.client.CreateSalary(ctx, token, req)
	if err != nil {
		return domain.Salary{}, fmt.Errorf("s.client.CreateSalary -> %w", err)
	}

	return created, nil
}

func (s *PayrollService) UpdateSalary(ctx context.Context, token string, id uint, req upstream.SalaryRequest) (domain.Salary, error) {
	updated, err := s.client.UpdateSalary(ctx, token, id, req)
	if err != nil {
		return domain.Salary{}, fmt.Errorf("s.client.UpdateSalary -> %w", err)
	}

	return updated, nil
}

func (s *PayrollService) DeleteSalary(ctx context.Context, token string, id uint) error {
	if err := s.client.DeleteSalary(ctx, token, id); err != nil {
		return fmt.Errorf("s.client.DeleteSalary -> %w", err)
	}

	return nil
}

func filterSalaries(salaries []domain.Salary, period, query string) []domain.Salary {
	if period == "" && query == "" {
		return salaries
	}

	needle := strings.ToLower(query)
	filtered := make([]domain.Salary, 0, len(salaries))
	for _, salary := range salaries {
		if period != "" && salary.Period != period {
			continue
		}
		if needle != "" && !strings.Contains(strings.ToLower(salary.EmployeeName), needle) {
			continue
		}
		filtered = append(filtered, salary)
	}

	return filtered
}
