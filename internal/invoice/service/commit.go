package service

import (
	"context"
	"fmt"
	"strings"

	"oficina-import/internal/invoice/inventory"
	"oficina-import/internal/invoice/model"
)

// Inventory is the write side of the inventory API.
type Inventory interface {
	Create(ctx context.Context, p inventory.NewProduct) (model.CatalogProduct, error)
	IncrementStock(ctx context.Context, id string, qty float64) (model.CatalogProduct, error)
}

type invalidator interface {
	Invalidate(ctx context.Context) error
}

// Operation is one planned write. Err is set when the item was rejected.
type Operation struct {
	Index     int
	Action    string
	ProductID string
	Quantity  float64
	New       *inventory.NewProduct
	Err       error
}

type CommitResult struct {
	Index   int                   `json:"indice"`
	Action  string                `json:"acao"`
	Product *model.CatalogProduct `json:"produto,omitempty"`
	Error   string                `json:"erro,omitempty"`
}

// PlanCommit decides create vs. update for each reviewed item. Update needs a
// matched product; create needs a sale price. Both need a positive quantity.
func PlanCommit(items []model.ReviewItem) []Operation {
	ops := make([]Operation, 0, len(items))
	for i, it := range items {
		op := Operation{Index: i, Action: it.Action, Quantity: it.Quantity}
		if op.Action == "" {
			op.Action = model.ActionCreate
			if it.Match != nil {
				op.Action = model.ActionUpdate
			}
		}

		switch {
		case it.Quantity <= 0:
			op.Err = ErrInvalidQuantity
		case op.Action == model.ActionUpdate:
			if it.Match == nil || strings.TrimSpace(it.Match.ID) == "" {
				op.Err = ErrNoMatch
				break
			}
			op.ProductID = it.Match.ID
		case op.Action == model.ActionCreate:
			if it.SalePrice <= 0 {
				op.Err = ErrMissingSalePrice
				break
			}
			op.New = &inventory.NewProduct{
				Name:         strings.TrimSpace(it.Description),
				SupplierCode: strings.TrimSpace(it.SupplierCode),
				Category:     it.Category,
				Unit:         it.Unit,
				Volume:       it.Volume,
				Quantity:     it.Quantity,
				CostPrice:    it.UnitPrice,
				SalePrice:    it.SalePrice,
			}
		default:
			op.Err = fmt.Errorf("unknown action %q", op.Action)
		}
		ops = append(ops, op)
	}
	return ops
}

// Commit executes the plan in order. A failed item does not stop the others.
func (imp *Importer) Commit(ctx context.Context, items []model.ReviewItem) ([]CommitResult, error) {
	if imp.inventory == nil {
		return nil, ErrNoInventory
	}

	ops := PlanCommit(items)
	results := make([]CommitResult, 0, len(ops))
	written := 0
	for _, op := range ops {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := CommitResult{Index: op.Index, Action: op.Action}
		if op.Err != nil {
			res.Error = op.Err.Error()
			results = append(results, res)
			continue
		}

		var (
			p   model.CatalogProduct
			err error
		)
		if op.Action == model.ActionUpdate {
			p, err = imp.inventory.IncrementStock(ctx, op.ProductID, op.Quantity)
		} else {
			p, err = imp.inventory.Create(ctx, *op.New)
		}
		if err != nil {
			imp.log.Error().Err(err).Int("index", op.Index).Str("action", op.Action).Msg("commit item failed")
			res.Error = err.Error()
		} else {
			written++
			res.Product = &p
		}
		results = append(results, res)
	}

	if written > 0 {
		if inv, ok := imp.searcher.(invalidator); ok {
			if err := inv.Invalidate(ctx); err != nil {
				imp.log.Warn().Err(err).Msg("catalog cache invalidate")
			}
		}
	}
	imp.log.Info().Int("items", len(items)).Int("written", written).Msg("commit done")
	return results, nil
}
