package service

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
)

var (
	ErrInvalidQuantity   = errors.New("quantity must be greater than zero")
	ErrInsufficientStock = errors.New("requested quantity exceeds available stock")
)

// CartService holds one cart per session, in memory only. Carts are
// destroyed on submit or reset and never touch the network or the
// database.
type CartService struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func NewCartService() *CartService {
	return &CartService{
		carts: make(map[string]*domain.Cart),
	}
}

// Get returns a copy of the session's cart. A session without a cart
// gets an empty one.
func (s *CartService) Get(sessionID string) domain.Cart {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return domain.Cart{}
	}

	copied := domain.Cart{
		Lines: make([]domain.CartLine, len(cart.Lines)),
		Total: cart.Total,
	}
	copy(copied.Lines, cart.Lines)

	return copied
}

// AddLine appends a new line for the item. Adding the same item twice
// produces two distinct lines; lines are never merged. The aggregate
// total is recomputed from all line totals on every mutation.
func (s *CartService) AddLine(sessionID string, item domain.InventoryItem, quantity int) (domain.CartLine, error) {
	if quantity <= 0 {
		return domain.CartLine{}, ErrInvalidQuantity
	}
	if quantity > item.Stock {
		return domain.CartLine{}, ErrInsufficientStock
	}

	line := domain.CartLine{
		ID:        uuid.NewString(),
		ItemID:    item.ID,
		Kode:      item.Kode,
		Name:      item.Name,
		Price:     item.Price,
		Stock:     item.Stock,
		Quantity:  quantity,
		LineTotal: item.Price * quantity,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		cart = &domain.Cart{}
		s.carts[sessionID] = cart
	}

	cart.Lines = append(cart.Lines, line)
	cart.RecomputeTotal()

	return line, nil
}

// RemoveLine removes the line unconditionally; an absent line is a
// no-op, not an error.
func (s *CartService) RemoveLine(sessionID, lineID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return
	}

	kept := cart.Lines[:0]
	for _, line := range cart.Lines {
		if line.ID != lineID {
			kept = append(kept, line)
		}
	}
	cart.Lines = kept
	cart.RecomputeTotal()
}

// UpdateQuantity replaces the line's quantity and line total. The new
// quantity is validated against the stock snapshotted when the line
// was added. An absent line is a no-op.
func (s *CartService) UpdateQuantity(sessionID, lineID string, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	cart, ok := s.carts[sessionID]
	if !ok {
		return nil
	}

	for i := range cart.Lines {
		if cart.Lines[i].ID != lineID {
			continue
		}

		if quantity > cart.Lines[i].Stock {
			return ErrInsufficientStock
		}

		cart.Lines[i].Quantity = quantity
		cart.Lines[i].LineTotal = cart.Lines[i].Price * quantity
		cart.RecomputeTotal()

		return nil
	}

	return nil
}

// Reset discards the session's cart.
func (s *CartService) Reset(sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.carts, sessionID)
}
