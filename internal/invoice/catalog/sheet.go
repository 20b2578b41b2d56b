// Package catalog provides candidate sources for duplicate detection.
package catalog

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"oficina-import/internal/fileio"
	"oficina-import/internal/invoice/match"
	"oficina-import/internal/invoice/model"
	"oficina-import/internal/utils"
)

// Searcher returns catalog products pre-filtered by keyword.
type Searcher interface {
	Search(ctx context.Context, keyword string) ([]model.CatalogProduct, error)
}

// Column hints for inventory exports.
const (
	ColID    = "id|codigo|cod|sku"
	ColName  = "nome|descricao|produto|item"
	ColPrice = "preco|preco venda|valor|valor unitario"
	ColQty   = "quantidade|estoque|saldo|qtd|qtde"
	ColUnit  = "unidade|un|und|unid"
)

// Sheet is an in-memory catalog, typically an inventory spreadsheet export.
type Sheet struct {
	products []model.CatalogProduct
	norms    []string
}

func NewSheet(products []model.CatalogProduct) *Sheet {
	s := &Sheet{
		products: make([]model.CatalogProduct, 0, len(products)),
		norms:    make([]string, 0, len(products)),
	}
	for _, p := range products {
		s.products = append(s.products, p)
		s.norms = append(s.norms, match.Normalize(p.Name))
	}
	return s
}

// OpenSheet loads a catalog file from disk (csv, xls, xlsx).
func OpenSheet(path string, headerRow int) (*Sheet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return LoadSheet(f, filepath.Base(path), headerRow)
}

// LoadSheet reads a catalog spreadsheet. Rows without a name are skipped;
// rows without an id get their 1-based row number.
func LoadSheet(r io.Reader, filename string, headerRow int) (*Sheet, error) {
	recs, err := fileio.ReadAnyMaps(r, filename, headerRow)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", filename, err)
	}
	if len(recs) == 0 {
		return NewSheet(nil), nil
	}

	first := recs[0]
	nameKey := fileio.ResolveKey(first, ColName)
	if nameKey == "" {
		return nil, fmt.Errorf("catalog %s: no name column", filename)
	}
	idKey := fileio.ResolveKey(first, ColID)
	priceKey := fileio.ResolveKey(first, ColPrice)
	qtyKey := fileio.ResolveKey(first, ColQty)
	unitKey := fileio.ResolveKey(first, ColUnit)

	products := make([]model.CatalogProduct, 0, len(recs))
	for i, rec := range recs {
		name := strings.TrimSpace(rec[nameKey])
		if name == "" {
			continue
		}
		p := model.CatalogProduct{
			ID:   strings.TrimSpace(rec[idKey]),
			Name: name,
			Unit: ParseUnit(rec[unitKey]),
		}
		if p.ID == "" {
			p.ID = strconv.Itoa(i + 1)
		}
		if v, ok := utils.ParseFloatBR(rec[priceKey]); ok {
			p.UnitPrice = v
		}
		if v, ok := utils.ParseFloatBR(rec[qtyKey]); ok {
			p.QuantityOnHand = v
		}
		products = append(products, p)
	}
	return NewSheet(products), nil
}

// Search returns the products whose normalized name contains every word of
// the keyword, in file order. An empty keyword returns the whole catalog.
func (s *Sheet) Search(_ context.Context, keyword string) ([]model.CatalogProduct, error) {
	words := strings.Fields(match.Normalize(keyword))
	out := make([]model.CatalogProduct, 0)
	for i, n := range s.norms {
		if containsAll(n, words) {
			out = append(out, s.products[i])
		}
	}
	return out, nil
}

func (s *Sheet) Len() int { return len(s.products) }

func containsAll(s string, words []string) bool {
	for _, w := range words {
		if !strings.Contains(s, w) {
			return false
		}
	}
	return true
}

// ParseUnit maps the unit column of an inventory export.
func ParseUnit(s string) model.UnitOfMeasure {
	u := strings.ToUpper(match.Normalize(s))
	switch u {
	case "":
		return ""
	case "L", "LT", "LTS", "LITRO", "LITROS", "LITER":
		return model.UnitLiter
	case "KG", "KGS", "QUILO", "QUILOS", "KILOGRAM":
		return model.UnitKilogram
	case "M", "MT", "MTS", "METRO", "METROS", "METER":
		return model.UnitMeter
	default:
		return model.UnitUnit
	}
}
