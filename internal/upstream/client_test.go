package upstream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silendas/pharmacy-backoffice/internal/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&config.UpstreamConfig{
		BaseURL: server.URL,
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("returns the bearer token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/users/login", r.URL.Path)

			var payload map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, "admin", payload["username"])
			assert.Equal(t, "secret", payload["password"])

			_ = json.NewEncoder(w).Encode(map[string]string{"token": "upstream-token"})
		})

		token, err := client.Login(context.Background(), "admin", "secret")

		require.NoError(t, err)
		assert.Equal(t, "upstream-token", token)
	})

	t.Run("401 and 400 mean wrong credentials", func(t *testing.T) {
		for _, status := range []int{http.StatusUnauthorized, http.StatusBadRequest} {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(status)
			})

			_, err := client.Login(context.Background(), "admin", "wrong")

			assert.ErrorIs(t, err, ErrInvalidCredentials)
		}
	})

	t.Run("empty token is rejected", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			_ = json.NewEncoder(w).Encode(map[string]string{"token": ""})
		})

		_, err := client.Login(context.Background(), "admin", "secret")

		assert.ErrorIs(t, err, ErrTokenMissing)
	})
}

func TestClient_ListInventories(t *testing.T) {
	t.Run("sends the bearer token", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer upstream-token", r.Header.Get("Authorization"))
			assert.Equal(t, "/inventories", r.URL.Path)

			_ = json.NewEncoder(w).Encode([]map[string]any{
				{"id": 1, "kode": "OBT-001", "name": "Paracetamol", "price": 10000, "stock": 5},
			})
		})

		items, err := client.ListInventories(context.Background(), "upstream-token")

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "OBT-001", items[0].Kode)
	})

	t.Run("non-2xx becomes a FetchError", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.ListInventories(context.Background(), "upstream-token")

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, "inventory", fetchErr.Resource)
	})
}

func TestClient_CreatePayment(t *testing.T) {
	t.Run("round-trips the created record", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/payments", r.URL.Path)

			var payload map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
			assert.Equal(t, float64(45000), payload["total_price"])

			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 42, "total_price": 45000})
		})

		created, err := client.CreatePayment(context.Background(), "upstream-token", PaymentRequest{
			CustomerID: 7,
			EmployeeID: 3,
			TotalPrice: 45000,
			Date:       "2024-03-15",
		})

		require.NoError(t, err)
		assert.Equal(t, uint(42), created.ID)
	})

	t.Run("failure carries the server message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "stock changed"})
		})

		_, err := client.CreatePayment(context.Background(), "upstream-token", PaymentRequest{})

		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Equal(t, "stock changed", submissionErr.Message)
		assert.Contains(t, submissionErr.Error(), "stock changed")
	})

	t.Run("transport failure reads as a network error", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		client := NewClient(&config.UpstreamConfig{BaseURL: server.URL})
		server.Close()

		_, err := client.CreatePayment(context.Background(), "upstream-token", PaymentRequest{})

		var submissionErr *SubmissionError
		require.ErrorAs(t, err, &submissionErr)
		assert.Contains(t, submissionErr.Error(), "network error occurred")
	})
}

func TestClient_DeleteInventory(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/inventories/7", r.URL.Path)

		w.WriteHeader(http.StatusNoContent)
	})

	err := client.DeleteInventory(context.Background(), "upstream-token", 7)

	assert.NoError(t, err)
}
