// Package inventory talks to the shop's inventory REST API.
package inventory

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"oficina-import/internal/invoice/model"
)

var ErrNotFound = errors.New("inventory: product not found")

// APIError is a non-2xx answer of the inventory API.
type APIError struct {
	Status int
	Body   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("inventory api: status %d: %s", e.Status, e.Body)
}

func (e *APIError) Unwrap() error {
	if e.Status == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// NewProduct is the POST body for a product created from an invoice row.
type NewProduct struct {
	Name         string              `json:"nome"`
	SupplierCode string              `json:"codigo,omitempty"`
	Category     model.CategoryTag   `json:"categoria"`
	Unit         model.UnitOfMeasure `json:"unidade"`
	Volume       *float64            `json:"volume,omitempty"`
	Quantity     float64             `json:"quantidade"`
	CostPrice    float64             `json:"precoCusto"`
	SalePrice    float64             `json:"precoVenda"`
}

type Client struct {
	base  string
	token string
	http  *http.Client
}

func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		base:  strings.TrimRight(baseURL, "/"),
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

// Search: GET /produtos?search=q
func (c *Client) Search(ctx context.Context, keyword string) ([]model.CatalogProduct, error) {
	q := url.Values{}
	q.Set("search", keyword)
	var out []model.CatalogProduct
	if err := c.do(ctx, http.MethodGet, "/produtos?"+q.Encode(), nil, &out); err != nil {
		return nil, fmt.Errorf("search %q: %w", keyword, err)
	}
	if out == nil {
		out = []model.CatalogProduct{}
	}
	return out, nil
}

// Create: POST /produtos
func (c *Client) Create(ctx context.Context, p NewProduct) (model.CatalogProduct, error) {
	var out model.CatalogProduct
	if err := c.do(ctx, http.MethodPost, "/produtos", p, &out); err != nil {
		return model.CatalogProduct{}, fmt.Errorf("create %q: %w", p.Name, err)
	}
	return out, nil
}

// IncrementStock: PUT /produtos/{id}/estoque
func (c *Client) IncrementStock(ctx context.Context, id string, qty float64) (model.CatalogProduct, error) {
	body := map[string]float64{"quantidade": qty}
	var out model.CatalogProduct
	path := "/produtos/" + url.PathEscape(id) + "/estoque"
	if err := c.do(ctx, http.MethodPut, path, body, &out); err != nil {
		return model.CatalogProduct{}, fmt.Errorf("increment %s: %w", id, err)
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &APIError{Status: resp.StatusCode, Body: strings.TrimSpace(string(b))}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
