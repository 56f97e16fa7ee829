package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/silendas/pharmacy-backoffice/internal/cache"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

var (
	ErrItemNotFound       = errors.New("inventory item not found")
	ErrSnapshotSuperseded = errors.New("inventory snapshot superseded by a newer fetch")
)

type CatalogClient interface {
	ListInventories(ctx context.Context, token string) ([]domain.InventoryItem, error)
	CreateInventory(ctx context.Context, token string, req upstream.InventoryRequest) (domain.InventoryItem, error)
	UpdateInventory(ctx context.Context, token string, id uint, req upstream.InventoryRequest) (domain.InventoryItem, error)
	DeleteInventory(ctx context.Context, token string, id uint) error
	ListCustomers(ctx context.Context, token string) ([]domain.Customer, error)
	CreateCustomer(ctx context.Context, token string, req upstream.CustomerRequest) (domain.Customer, error)
	UpdateCustomer(ctx context.Context, token string, id uint, req upstream.CustomerRequest) (domain.Customer, error)
	DeleteCustomer(ctx context.Context, token string, id uint) error
	ListEmployees(ctx context.Context, token string) ([]domain.Employee, error)
	ListSales(ctx context.Context, token string) ([]domain.Sale, error)
	CreateSale(ctx context.Context, token string, req upstream.SaleRequest) (domain.Sale, error)
}

// CatalogService mediates every read of upstream reference data and
// the inventory intake/outtake writes. Reads fail independently; a
// failed employees fetch never blocks an inventory fetch.
type CatalogService struct {
	client CatalogClient
	cache  cache.SnapshotCache

	mu  sync.Mutex
	gen uint64

	now func() time.Time
}

// NewCatalogService builds the service. snapshotCache may be nil, in
// which case every snapshot goes to the upstream API.
func NewCatalogService(client CatalogClient, snapshotCache cache.SnapshotCache) *CatalogService {
	return &CatalogService{
		client: client,
		cache:  snapshotCache,
		now:    time.Now,
	}
}

// InventorySnapshot returns the stock-bearing items only; exhausted
// items are excluded. Each call opens a new fetch generation, and a
// response resolving after a newer fetch started is discarded instead
// of overwriting it.
func (s *CatalogService) InventorySnapshot(ctx context.Context, token string) ([]domain.InventoryItem, error) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	if s.cache != nil {
		if items, err := s.cache.Get(ctx); err == nil {
			return items, nil
		}
	}

	items, err := s.client.ListInventories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListInventories -> %w", err)
	}

	available := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if item.Stock > 0 {
			available = append(available, item)
		}
	}

	s.mu.Lock()
	stale := gen != s.gen
	s.mu.Unlock()
	if stale {
		return nil, ErrSnapshotSuperseded
	}

	if s.cache != nil {
		_ = s.cache.Set(ctx, available)
	}

	return available, nil
}

// FindSnapshotItem looks one item up in the current snapshot.
func (s *CatalogService) FindSnapshotItem(ctx context.Context, token string, itemID uint) (domain.InventoryItem, error) {
	items, err := s.InventorySnapshot(ctx, token)
	if err != nil {
		return domain.InventoryItem{}, err
	}

	for _, item := range items {
		if item.ID == itemID {
			return item, nil
		}
	}

	return domain.InventoryItem{}, ErrItemNotFound
}

// ListInventories returns the full intake list, exhausted items
// included.
func (s *CatalogService) ListInventories(ctx context.Context, token string) ([]domain.InventoryItem, error) {
	items, err := s.client.ListInventories(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListInventories -> %w", err)
	}

	return items, nil
}

func (s *CatalogService) CreateInventory(ctx context.Context, token string, req upstream.InventoryRequest) (domain.InventoryItem, error) {
	created, err := s.client.CreateInventory(ctx, token, req)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("s.client.CreateInventory -> %w", err)
	}
	s.invalidateSnapshot(ctx)

	return created, nil
}

func (s *CatalogService) UpdateInventory(ctx context.Context, token string, id uint, req upstream.InventoryRequest) (domain.InventoryItem, error) {
	updated, err := s.client.UpdateInventory(ctx, token, id, req)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("s.client.UpdateInventory -> %w", err)
	}
	s.invalidateSnapshot(ctx)

	return updated, nil
}

func (s *CatalogService) DeleteInventory(ctx context.Context, token string, id uint) error {
	if err := s.client.DeleteInventory(ctx, token, id); err != nil {
		return fmt.Errorf("s.client.DeleteInventory -> %w", err)
	}
	s.invalidateSnapshot(ctx)

	return nil
}

// ListCustomers filters by name or NIK when search is non-empty,
// matching case-insensitively.
func (s *CatalogService) ListCustomers(ctx context.Context, token, search string) ([]domain.Customer, error) {
	customers, err := s.client.ListCustomers(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListCustomers -> %w", err)
	}

	if search == "" {
		return customers, nil
	}

	needle := strings.ToLower(search)
	filtered := make([]domain.Customer, 0, len(customers))
	for _, customer := range customers {
		if strings.Contains(strings.ToLower(customer.Name), needle) ||
			strings.Contains(strings.ToLower(customer.NIK), needle) {
			filtered = append(filtered, customer)
		}
	}

	return filtered, nil
}

func (s *CatalogService) CreateCustomer(ctx context.Context, token string, req upstream.CustomerRequest) (domain.Customer, error) {
	created, err := s.client.CreateCustomer(ctx, token, req)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("s.client.CreateCustomer -> %w", err)
	}

	return created, nil
}

func (s *CatalogService) UpdateCustomer(ctx context.Context, token string, id uint, req upstream.CustomerRequest) (domain.Customer, error) {
	updated, err := s.client.UpdateCustomer(ctx, token, id, req)
	if err != nil {
		return domain.Customer{}, fmt.Errorf("s.client.UpdateCustomer -> %w", err)
	}

	return updated, nil
}

func (s *CatalogService) DeleteCustomer(ctx context.Context, token string, id uint) error {
	if err := s.client.DeleteCustomer(ctx, token, id); err != nil {
		return fmt.Errorf("s.client.DeleteCustomer -> %w", err)
	}

	return nil
}

func (s *CatalogService) ListEmployees(ctx context.Context, token string) ([]domain.Employee, error) {
	employees, err := s.client.ListEmployees(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListEmployees -> %w", err)
	}

	return employees, nil
}

func (s *CatalogService) ListSales(ctx context.Context, token string) ([]domain.Sale, error) {
	sales, err := s.client.ListSales(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("s.client.ListSales -> %w", err)
	}

	return sales, nil
}

// RecordSale registers one outtake: the decremented stock is written
// back first, then the sale record is created. The two writes are not
// transactional; the upstream API offers no way to couple them.
func (s *CatalogService) RecordSale(ctx context.Context, token string, inventoryID uint, quantity int, employeeID uint) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	items, err := s.client.ListInventories(ctx, token)
	if err != nil {
		return fmt.Errorf("s.client.ListInventories -> %w", err)
	}

	var item domain.InventoryItem
	found := false
	for _, candidate := range items {
		if candidate.ID == inventoryID {
			item = candidate
			found = true
			break
		}
	}
	if !found {
		return ErrItemNotFound
	}

	if quantity > item.Stock {
		return ErrInsufficientStock
	}

	_, err = s.client.UpdateInventory(ctx, token, item.ID, upstream.InventoryRequest{
		Kode:  item.Kode,
		Name:  item.Name,
		Price: item.Price,
		Stock: item.Stock - quantity,
	})
	if err != nil {
		return fmt.Errorf("s.client.UpdateInventory -> %w", err)
	}

	_, err = s.client.CreateSale(ctx, token, upstream.SaleRequest{
		InventoryID: item.ID,
		Quantity:    quantity,
		EmployeeID:  employeeID,
		Date:        s.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("s.client.CreateSale -> %w", err)
	}

	s.invalidateSnapshot(ctx)

	return nil
}

func (s *CatalogService) invalidateSnapshot(ctx context.Context) {
	if s.cache != nil {
		_ = s.cache.Invalidate(ctx)
	}
}
