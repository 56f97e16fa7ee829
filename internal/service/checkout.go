package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

var ErrValidation = errors.New("validation failed")

type PaymentClient interface {
	CreatePayment(ctx context.Context, token string, req upstream.PaymentRequest) (domain.PaymentRecord, error)
	ListPayments(ctx context.Context, token string) ([]domain.PaymentRecord, error)
}

// CheckoutService packages the session's cart into a payment record
// and sends it upstream. No retry exists; a duplicate submit creates a
// duplicate payment, which is an accepted limitation.
type CheckoutService struct {
	carts  *CartService
	client PaymentClient
	now    func() time.Time
}

func NewCheckoutService(carts *CartService, client PaymentClient) *CheckoutService {
	return &CheckoutService{
		carts:  carts,
		client: client,
		now:    time.Now,
	}
}

// Submit requires a non-empty cart and both party identifiers. The
// cart is cleared only after the upstream accepts the payment; on any
// failure it is kept so the user can retry manually.
func (s *CheckoutService) Submit(ctx context.Context, session domain.Session, customerID, employeeID uint) (domain.PaymentRecord, error) {
	cart := s.carts.Get(session.ID)

	if len(cart.Lines) == 0 {
		return domain.PaymentRecord{}, fmt.Errorf("%w: cart is empty", ErrValidation)
	}
	if customerID == 0 || employeeID == 0 {
		return domain.PaymentRecord{}, fmt.Errorf("%w: customer and employee must be selected", ErrValidation)
	}

	lines := make([]domain.PaymentLine, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lines = append(lines, domain.PaymentLine{
			Kode:       line.Kode,
			Qty:        line.Quantity,
			TotalPrice: line.LineTotal,
		})
	}

	created, err := s.client.CreatePayment(ctx, session.UpstreamToken, upstream.PaymentRequest{
		CustomerID: customerID,
		EmployeeID: employeeID,
		TotalPrice: cart.Total,
		Date:       s.now().UTC().Format("2006-01-02"),
		Carts:      lines,
	})
	if err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("s.client.CreatePayment -> %w", err)
	}

	s.carts.Reset(session.ID)

	return created, nil
}

func (s *CheckoutService) ListPayments(ctx context.Context, token string) ([]domain.PaymentRecord, error) {
	payments, err := s.client.ListPayments(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListPayments -> %w", err)
	}

	return payments, nil
}
