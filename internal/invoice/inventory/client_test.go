package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"oficina-import/internal/invoice/model"
)

func TestClient_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/produtos", r.URL.Path)
		assert.Equal(t, "wega wo123", r.URL.Query().Get("search"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[{"id":"1","nome":"Filtro Wega WO123","preco":35.9,"quantidade":3,"unidade":"UNIT"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/api/", "secret", time.Second)
	got, err := c.Search(context.Background(), "wega wo123")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.CatalogProduct{ID: "1", Name: "Filtro Wega WO123", UnitPrice: 35.9, QuantityOnHand: 3, Unit: model.UnitUnit}, got[0])
}

func TestClient_SearchNullBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`null`))
	}))
	defer srv.Close()

	got, err := NewClient(srv.URL, "", 0).Search(context.Background(), "x")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/produtos", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Empty(t, r.Header.Get("Authorization"))

		var p NewProduct
		require.NoError(t, json.NewDecoder(r.Body).Decode(&p))
		assert.Equal(t, "Graxa Azul 500g", p.Name)
		assert.Equal(t, model.CategoryGrease, p.Category)
		require.NotNil(t, p.Volume)
		assert.InDelta(t, 0.5, *p.Volume, 1e-9)

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":"99","nome":"Graxa Azul 500g","quantidade":10}`))
	}))
	defer srv.Close()

	vol := 0.5
	got, err := NewClient(srv.URL, "", time.Second).Create(context.Background(), NewProduct{
		Name: "Graxa Azul 500g", Category: model.CategoryGrease, Unit: model.UnitKilogram,
		Volume: &vol, Quantity: 10, CostPrice: 9, SalePrice: 18,
	})
	require.NoError(t, err)
	assert.Equal(t, "99", got.ID)
	assert.Equal(t, 10.0, got.QuantityOnHand)
}

func TestClient_IncrementStock(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/produtos/a b/estoque", r.URL.Path)
		var body map[string]float64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, 6.0, body["quantidade"])
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "", time.Second).IncrementStock(context.Background(), "a b", 6)
	require.NoError(t, err)
}

func TestClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/produtos/404/estoque" {
			http.Error(w, "nao encontrado", http.StatusNotFound)
			return
		}
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()
	c := NewClient(srv.URL, "", time.Second)

	_, err := c.IncrementStock(context.Background(), "404", 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))

	_, err = c.Search(context.Background(), "x")
	require.Error(t, err)
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusInternalServerError, apiErr.Status)
	assert.Equal(t, "boom", apiErr.Body)
	assert.False(t, errors.Is(err, ErrNotFound))
}

func TestClient_ContextCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewClient(srv.URL, "", time.Second).Search(ctx, "x")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
