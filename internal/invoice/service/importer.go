// Package service runs the invoice import: review (classify + duplicate
// search per line item) and commit (create or restock).
package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"oficina-import/internal/invoice/catalog"
	"oficina-import/internal/invoice/classify"
	"oficina-import/internal/invoice/match"
	"oficina-import/internal/invoice/model"
)

const defaultWorkers = 4

type Importer struct {
	classifier *classify.Classifier
	resolver   match.Resolver
	searcher   catalog.Searcher
	inventory  Inventory
	workers    int
	log        zerolog.Logger
}

type Option func(*Importer)

// WithInventory enables Commit.
func WithInventory(inv Inventory) Option {
	return func(i *Importer) { i.inventory = inv }
}

// WithWorkers bounds how many line items are searched at once.
func WithWorkers(n int) Option {
	return func(i *Importer) {
		if n > 0 {
			i.workers = n
		}
	}
}

func NewImporter(c *classify.Classifier, r match.Resolver, s catalog.Searcher, logger zerolog.Logger, opts ...Option) *Importer {
	imp := &Importer{
		classifier: c,
		resolver:   r,
		searcher:   s,
		workers:    defaultWorkers,
		log:        logger,
	}
	for _, o := range opts {
		o(imp)
	}
	return imp
}

// WithSearcher returns a copy of the importer that searches s instead.
func (imp *Importer) WithSearcher(s catalog.Searcher) *Importer {
	cp := *imp
	cp.searcher = s
	return &cp
}

// Prefill classifies a single item without touching the catalog.
func (imp *Importer) Prefill(item model.LineItem) model.ReviewItem {
	ri := model.ReviewItem{
		LineItem: item,
		Category: imp.classifier.Classify(item.Description, item.SupplierCode),
		Unit:     classify.DetectUnit(item.Description, item.OCRUnitHint),
		Action:   model.ActionCreate,
	}
	if v, ok := classify.DetectVolume(item.Description); ok {
		ri.Volume = &v
	}
	ri.NeedsVolume = ri.Volume == nil
	ri.NeedsPrice = true
	return ri
}

// Explain reports the category and the rule that produced it.
func (imp *Importer) Explain(description, supplierCode string) (model.CategoryTag, string) {
	return imp.classifier.Explain(description, supplierCode)
}

// Review pre-fills the review form for every item. Items are processed
// concurrently; the result keeps the input order. A failed catalog search
// degrades only that item to "new product".
func (imp *Importer) Review(ctx context.Context, items []model.LineItem) ([]model.ReviewItem, error) {
	out := make([]model.ReviewItem, len(items))
	sem := make(chan struct{}, imp.workers)
	var wg sync.WaitGroup

	for i := range items {
		select {
		case <-ctx.Done():
			wg.Wait()
			return nil, ctx.Err()
		case sem <- struct{}{}:
		}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			out[i] = imp.reviewOne(ctx, items[i])
		}(i)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (imp *Importer) reviewOne(ctx context.Context, item model.LineItem) model.ReviewItem {
	ri := imp.Prefill(item)
	if imp.searcher == nil {
		return ri
	}

	kw := SearchKeyword(item.Description)
	if kw == "" {
		return ri
	}
	cands, err := imp.searcher.Search(ctx, kw)
	if err != nil {
		imp.log.Warn().Err(err).Str("keyword", kw).Str("desc", item.Description).Msg("catalog search failed")
		ri.MatchError = err.Error()
		return ri
	}

	res := imp.resolver.FindBestMatch(item.Description, cands)
	ri.Score = res.Score
	if res.Product != nil {
		ri.Match = res.Product
		ri.Action = model.ActionUpdate
		ri.NeedsPrice = false
		ri.SalePrice = res.Product.UnitPrice
	}
	imp.log.Debug().
		Str("desc", item.Description).
		Str("keyword", kw).
		Int("candidates", len(cands)).
		Float64("score", res.Score).
		Str("action", ri.Action).
		Msg("line item reviewed")
	return ri
}
