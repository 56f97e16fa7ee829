package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silendas/pharmacy-backoffice/internal/cache"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

type mockCatalogClient struct {
	items     []domain.InventoryItem
	customers []domain.Customer
	employees []domain.Employee
	sales     []domain.Sale
	err       error

	listInventoriesCalls int
	updatedInventory     *upstream.InventoryRequest
	createdSale          *upstream.SaleRequest

	onListInventories func()
}

func (m *mockCatalogClient) ListInventories(context.Context, string) ([]domain.InventoryItem, error) {
	m.listInventoriesCalls++
	if m.onListInventories != nil {
		m.onListInventories()
	}
	if m.err != nil {
		return nil, m.err
	}

	return m.items, nil
}

func (m *mockCatalogClient) CreateInventory(_ context.Context, _ string, req upstream.InventoryRequest) (domain.InventoryItem, error) {
	if m.err != nil {
		return domain.InventoryItem{}, m.err
	}

	return domain.InventoryItem{ID: 99, Kode: req.Kode, Name: req.Name, Price: req.Price, Stock: req.Stock}, nil
}

func (m *mockCatalogClient) UpdateInventory(_ context.Context, _ string, id uint, req upstream.InventoryRequest) (domain.InventoryItem, error) {
	m.updatedInventory = &req
	if m.err != nil {
		return domain.InventoryItem{}, m.err
	}

	return domain.InventoryItem{ID: id, Kode: req.Kode, Name: req.Name, Price: req.Price, Stock: req.Stock}, nil
}

func (m *mockCatalogClient) DeleteInventory(context.Context, string, uint) error {
	return m.err
}

func (m *mockCatalogClient) ListCustomers(context.Context, string) ([]domain.Customer, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.customers, nil
}

func (m *mockCatalogClient) CreateCustomer(_ context.Context, _ string, req upstream.CustomerRequest) (domain.Customer, error) {
	if m.err != nil {
		return domain.Customer{}, m.err
	}

	return domain.Customer{ID: 1, NIK: req.NIK, Name: req.Name, Phone: req.Phone, Address: req.Address}, nil
}

func (m *mockCatalogClient) UpdateCustomer(_ context.Context, _ string, id uint, req upstream.CustomerRequest) (domain.Customer, error) {
	if m.err != nil {
		return domain.Customer{}, m.err
	}

	return domain.Customer{ID: id, NIK: req.NIK, Name: req.Name, Phone: req.Phone, Address: req.Address}, nil
}

func (m *mockCatalogClient) DeleteCustomer(context.Context, string, uint) error {
	return m.err
}

func (m *mockCatalogClient) ListEmployees(context.Context, string) ([]domain.Employee, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.employees, nil
}

func (m *mockCatalogClient) ListSales(context.Context, string) ([]domain.Sale, error) {
	if m.err != nil {
		return nil, m.err
	}

	return m.sales, nil
}

func (m *mockCatalogClient) CreateSale(_ context.Context, _ string, req upstream.SaleRequest) (domain.Sale, error) {
	m.createdSale = &req
	if m.err != nil {
		return domain.Sale{}, m.err
	}

	return domain.Sale{ID: 1, InventoryID: req.InventoryID, Quantity: req.Quantity, EmployeeID: req.EmployeeID, Date: req.Date}, nil
}

type fakeSnapshotCache struct {
	items           []domain.InventoryItem
	has             bool
	setCalls        int
	invalidateCalls int
}

func (f *fakeSnapshotCache) Get(context.Context) ([]domain.InventoryItem, error) {
	if !f.has {
		return nil, cache.ErrCacheMiss
	}

	return f.items, nil
}

func (f *fakeSnapshotCache) Set(_ context.Context, items []domain.InventoryItem) error {
	f.items = items
	f.has = true
	f.setCalls++

	return nil
}

func (f *fakeSnapshotCache) Invalidate(context.Context) error {
	f.items = nil
	f.has = false
	f.invalidateCalls++

	return nil
}

func TestCatalogService_InventorySnapshot(t *testing.T) {
	t.Run("filters out exhausted items", func(t *testing.T) {
		client := &mockCatalogClient{
			items: []domain.InventoryItem{
				{ID: 1, Kode: "OBT-001", Stock: 5},
				{ID: 2, Kode: "OBT-002", Stock: 0},
				{ID: 3, Kode: "OBT-003", Stock: 12},
			},
		}
		svc := NewCatalogService(client, nil)

		items, err := svc.InventorySnapshot(context.Background(), "token")

		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, uint(1), items[0].ID)
		assert.Equal(t, uint(3), items[1].ID)
	})

	t.Run("superseded fetch is discarded", func(t *testing.T) {
		client := &mockCatalogClient{
			items: []domain.InventoryItem{{ID: 1, Stock: 5}},
		}
		svc := NewCatalogService(client, nil)

		// The first fetch is overtaken by a second one resolving
		// while it is still in flight.
		raced := false
		client.onListInventories = func() {
			if raced {
				return
			}
			raced = true

			_, err := svc.InventorySnapshot(context.Background(), "token")
			require.NoError(t, err)
		}

		_, err := svc.InventorySnapshot(context.Background(), "token")

		assert.ErrorIs(t, err, ErrSnapshotSuperseded)
	})

	t.Run("upstream failure propagates", func(t *testing.T) {
		client := &mockCatalogClient{
			err: &upstream.FetchError{Resource: "inventory", Err: errors.New("connection refused")},
		}
		svc := NewCatalogService(client, nil)

		_, err := svc.InventorySnapshot(context.Background(), "token")

		var fetchErr *upstream.FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})

	t.Run("cache hit skips the upstream fetch", func(t *testing.T) {
		client := &mockCatalogClient{}
		snapshotCache := &fakeSnapshotCache{
			items: []domain.InventoryItem{{ID: 1, Stock: 5}},
			has:   true,
		}
		svc := NewCatalogService(client, snapshotCache)

		items, err := svc.InventorySnapshot(context.Background(), "token")

		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Zero(t, client.listInventoriesCalls)
	})

	t.Run("cache miss fetches and fills the cache", func(t *testing.T) {
		client := &mockCatalogClient{
			items: []domain.InventoryItem{{ID: 1, Stock: 5}, {ID: 2, Stock: 0}},
		}
		snapshotCache := &fakeSnapshotCache{}
		svc := NewCatalogService(client, snapshotCache)

		items, err := svc.InventorySnapshot(context.Background(), "token")

		require.NoError(t, err)
		assert.Len(t, items, 1)
		assert.Equal(t, 1, client.listInventoriesCalls)
		assert.Equal(t, 1, snapshotCache.setCalls)
	})
}

func TestCatalogService_FindSnapshotItem(t *testing.T) {
	client := &mockCatalogClient{
		items: []domain.InventoryItem{
			{ID: 1, Kode: "OBT-001", Stock: 5},
			{ID: 2, Kode: "OBT-002", Stock: 0},
		},
	}
	svc := NewCatalogService(client, nil)

	item, err := svc.FindSnapshotItem(context.Background(), "token", 1)
	require.NoError(t, err)
	assert.Equal(t, "OBT-001", item.Kode)

	// Exhausted items are invisible to the snapshot.
	_, err = svc.FindSnapshotItem(context.Background(), "token", 2)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = svc.FindSnapshotItem(context.Background(), "token", 404)
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestCatalogService_ListCustomers(t *testing.T) {
	client := &mockCatalogClient{
		customers: []domain.Customer{
			{ID: 1, NIK: "3171001", Name: "Budi Santoso"},
			{ID: 2, NIK: "3171002", Name: "Siti Rahayu"},
			{ID: 3, NIK: "3171003", Name: "Budiman"},
		},
	}
	svc := NewCatalogService(client, nil)

	t.Run("empty search returns everyone", func(t *testing.T) {
		customers, err := svc.ListCustomers(context.Background(), "token", "")

		require.NoError(t, err)
		assert.Len(t, customers, 3)
	})

	t.Run("matches name case-insensitively", func(t *testing.T) {
		customers, err := svc.ListCustomers(context.Background(), "token", "BUDI")

		require.NoError(t, err)
		require.Len(t, customers, 2)
		assert.Equal(t, "Budi Santoso", customers[0].Name)
		assert.Equal(t, "Budiman", customers[1].Name)
	})

	t.Run("matches NIK", func(t *testing.T) {
		customers, err := svc.ListCustomers(context.Background(), "token", "3171002")

		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Siti Rahayu", customers[0].Name)
	})

	t.Run("no match yields empty slice", func(t *testing.T) {
		customers, err := svc.ListCustomers(context.Background(), "token", "zzz")

		require.NoError(t, err)
		assert.Empty(t, customers)
	})
}

func TestCatalogService_RecordSale(t *testing.T) {
	newClient := func() *mockCatalogClient {
		return &mockCatalogClient{
			items: []domain.InventoryItem{
				{ID: 1, Kode: "OBT-001", Name: "Paracetamol", Price: 10000, Stock: 5},
			},
		}
	}

	t.Run("decrements stock then creates the sale", func(t *testing.T) {
		client := newClient()
		svc := NewCatalogService(client, nil)
		svc.now = func() time.Time {
			return time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC)
		}

		err := svc.RecordSale(context.Background(), "token", 1, 2, 3)

		require.NoError(t, err)
		require.NotNil(t, client.updatedInventory)
		assert.Equal(t, 3, client.updatedInventory.Stock)
		require.NotNil(t, client.createdSale)
		assert.Equal(t, uint(1), client.createdSale.InventoryID)
		assert.Equal(t, 2, client.createdSale.Quantity)
		assert.Equal(t, uint(3), client.createdSale.EmployeeID)
		assert.Equal(t, "2024-03-15T10:00:00Z", client.createdSale.Date)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		client := newClient()
		svc := NewCatalogService(client, nil)

		err := svc.RecordSale(context.Background(), "token", 1, 0, 3)

		assert.ErrorIs(t, err, ErrInvalidQuantity)
		assert.Zero(t, client.listInventoriesCalls)
	})

	t.Run("unknown item", func(t *testing.T) {
		svc := NewCatalogService(newClient(), nil)

		err := svc.RecordSale(context.Background(), "token", 404, 2, 3)

		assert.ErrorIs(t, err, ErrItemNotFound)
	})

	t.Run("quantity above stock", func(t *testing.T) {
		client := newClient()
		svc := NewCatalogService(client, nil)

		err := svc.RecordSale(context.Background(), "token", 1, 6, 3)

		assert.ErrorIs(t, err, ErrInsufficientStock)
		assert.Nil(t, client.updatedInventory)
		assert.Nil(t, client.createdSale)
	})

	t.Run("invalidates the snapshot cache", func(t *testing.T) {
		client := newClient()
		snapshotCache := &fakeSnapshotCache{has: true}
		svc := NewCatalogService(client, snapshotCache)

		err := svc.RecordSale(context.Background(), "token", 1, 2, 3)

		require.NoError(t, err)
		assert.Equal(t, 1, snapshotCache.invalidateCalls)
	})
}
