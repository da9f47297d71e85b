package ticketing

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festivo/backend/internal/infrastructure/config"
)

func newTestClient(baseURL string) *HTTPOrderClient {
	return NewHTTPOrderClient(config.ProviderConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
	})
}

func TestHTTPOrderClient_FetchOrders(t *testing.T) {
	t.Run("sends token and paging parameters", func(t *testing.T) {
		var gotAuth, gotSince, gotPage, gotPerPage string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			gotSince = r.URL.Query().Get("since")
			gotPage = r.URL.Query().Get("page")
			gotPerPage = r.URL.Query().Get("per_page")
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"orders":[{"id":"ord1","channel":"web","lines":[{"id":"1","item_name":"Dagspass","quantity":2,"unit_gross":"600","unit_vat":"120"}]}]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		since := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

		orders, err := client.FetchOrders(context.Background(), "tenant-token", since, 1, 200)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "ord1", orders[0].ID)
		require.Len(t, orders[0].Lines, 1)
		assert.Equal(t, "Dagspass", orders[0].Lines[0].ItemName)
		assert.Equal(t, int64(2), orders[0].Lines[0].Quantity)
		assert.Equal(t, "600", orders[0].Lines[0].UnitGross.String())
		assert.Equal(t, "120", orders[0].Lines[0].UnitVAT.String())

		assert.Equal(t, "Bearer tenant-token", gotAuth)
		assert.Equal(t, "2026-06-01T00:00:00Z", gotSince)
		assert.Equal(t, "1", gotPage)
		assert.Equal(t, "200", gotPerPage)
	})

	t.Run("decodes a bare array response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`[{"id":"ord2","channel":"pos","lines":[]}]`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		orders, err := client.FetchOrders(context.Background(), "t", time.Now(), 1, 50)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "pos", orders[0].Channel)
	})

	t.Run("empty page signals end of result set", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"orders":[]}`))
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		orders, err := client.FetchOrders(context.Background(), "t", time.Now(), 3, 50)
		require.NoError(t, err)
		assert.Empty(t, orders)
	})

	t.Run("non-2xx is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newTestClient(server.URL)
		_, err := client.FetchOrders(context.Background(), "bad-token", time.Now(), 1, 50)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte(`{"orders":[]}`))
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
		defer cancel()

		client := newTestClient(server.URL)
		_, err := client.FetchOrders(ctx, "t", time.Now(), 1, 50)
		assert.Error(t, err)
	})
}
