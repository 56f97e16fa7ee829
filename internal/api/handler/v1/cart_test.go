package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silendas/pharmacy-backoffice/internal/api/middleware"
	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/service"
)

type stubCartCatalog struct {
	item domain.InventoryItem
	err  error
}

func (s *stubCartCatalog) FindSnapshotItem(context.Context, string, uint) (domain.InventoryItem, error) {
	if s.err != nil {
		return domain.InventoryItem{}, s.err
	}

	return s.item, nil
}

func setupCartRouter(catalog *stubCartCatalog) (*gin.Engine, *service.CartService) {
	gin.SetMode(gin.TestMode)

	carts := service.NewCartService()
	handler := NewCartHandler(carts, catalog)

	router := gin.New()
	router.Use(func(ctx *gin.Context) {
		ctx.Set(middleware.ContextKeySession, domain.Session{
			ID:            "session-1",
			UpstreamToken: "upstream-token",
		})
	})

	router.GET("/cart", handler.HandleGetCart)
	router.DELETE("/cart", handler.HandleResetCart)
	router.POST("/cart/lines", handler.HandleAddLine)
	router.PUT("/cart/lines/:lineID", handler.HandleUpdateLine)
	router.DELETE("/cart/lines/:lineID", handler.HandleRemoveLine)

	return router, carts
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(buf)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, req)

	return recorder
}

func TestCartHandler_HandleGetCart(t *testing.T) {
	router, _ := setupCartRouter(&stubCartCatalog{})

	recorder := performJSON(t, router, http.MethodGet, "/cart", nil)

	require.Equal(t, http.StatusOK, recorder.Code)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
	assert.Empty(t, cart.Lines)
	assert.Zero(t, cart.Total)
}

func TestCartHandler_HandleAddLine(t *testing.T) {
	item := domain.InventoryItem{ID: 1, Kode: "OBT-001", Name: "Paracetamol", Price: 10000, Stock: 5}

	t.Run("adds the line", func(t *testing.T) {
		router, _ := setupCartRouter(&stubCartCatalog{item: item})

		recorder := performJSON(t, router, http.MethodPost, "/cart/lines", gin.H{
			"inventory_id": 1,
			"quantity":     2,
		})

		require.Equal(t, http.StatusCreated, recorder.Code)

		var cart domain.Cart
		require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
		require.Len(t, cart.Lines, 1)
		assert.Equal(t, 20000, cart.Total)
	})

	t.Run("missing body fields fail validation", func(t *testing.T) {
		router, _ := setupCartRouter(&stubCartCatalog{item: item})

		recorder := performJSON(t, router, http.MethodPost, "/cart/lines", gin.H{})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})

	t.Run("unknown item maps to 404", func(t *testing.T) {
		router, _ := setupCartRouter(&stubCartCatalog{err: service.ErrItemNotFound})

		recorder := performJSON(t, router, http.MethodPost, "/cart/lines", gin.H{
			"inventory_id": 404,
			"quantity":     2,
		})

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})

	t.Run("superseded snapshot maps to 409", func(t *testing.T) {
		router, _ := setupCartRouter(&stubCartCatalog{err: service.ErrSnapshotSuperseded})

		recorder := performJSON(t, router, http.MethodPost, "/cart/lines", gin.H{
			"inventory_id": 1,
			"quantity":     2,
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})

	t.Run("quantity above stock maps to 409", func(t *testing.T) {
		router, _ := setupCartRouter(&stubCartCatalog{item: item})

		recorder := performJSON(t, router, http.MethodPost, "/cart/lines", gin.H{
			"inventory_id": 1,
			"quantity":     6,
		})

		assert.Equal(t, http.StatusConflict, recorder.Code)
	})
}

func TestCartHandler_HandleUpdateLine(t *testing.T) {
	item := domain.InventoryItem{ID: 1, Kode: "OBT-001", Name: "Paracetamol", Price: 10000, Stock: 5}
	router, carts := setupCartRouter(&stubCartCatalog{item: item})

	line, err := carts.AddLine("session-1", item, 2)
	require.NoError(t, err)

	recorder := performJSON(t, router, http.MethodPut, "/cart/lines/"+line.ID, gin.H{
		"quantity": 4,
	})

	require.Equal(t, http.StatusOK, recorder.Code)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
	assert.Equal(t, 40000, cart.Total)
}

func TestCartHandler_HandleRemoveLine(t *testing.T) {
	item := domain.InventoryItem{ID: 1, Kode: "OBT-001", Name: "Paracetamol", Price: 10000, Stock: 5}
	router, carts := setupCartRouter(&stubCartCatalog{item: item})

	line, err := carts.AddLine("session-1", item, 2)
	require.NoError(t, err)

	recorder := performJSON(t, router, http.MethodDelete, "/cart/lines/"+line.ID, nil)

	require.Equal(t, http.StatusOK, recorder.Code)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &cart))
	assert.Empty(t, cart.Lines)
}

func TestCartHandler_HandleResetCart(t *testing.T) {
	item := domain.InventoryItem{ID: 1, Kode: "OBT-001", Name: "Paracetamol", Price: 10000, Stock: 5}
	router, carts := setupCartRouter(&stubCartCatalog{item: item})

	_, err := carts.AddLine("session-1", item, 2)
	require.NoError(t, err)

	recorder := performJSON(t, router, http.MethodDelete, "/cart", nil)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Empty(t, carts.Get("session-1").Lines)
}
