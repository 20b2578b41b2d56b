package match

import "oficina-import/internal/invoice/model"

// DefaultThreshold: минимальная схожесть, при которой позиция считается дублем.
const DefaultThreshold = 0.6

type Resolver struct {
	Threshold float64
}

func NewResolver(threshold float64) Resolver {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return Resolver{Threshold: threshold}
}

// FindBestMatch scans candidates in order and returns the highest scoring one
// when its score reaches the threshold. Ties keep the first candidate seen.
// The best score is reported even when no product is accepted.
func (r Resolver) FindBestMatch(description string, candidates []model.CatalogProduct) model.MatchResult {
	best := -1.0
	bestIdx := -1
	for i := range candidates {
		s := Similarity(description, candidates[i].Name)
		if s > best {
			best, bestIdx = s, i
		}
	}
	if bestIdx < 0 {
		return model.MatchResult{}
	}
	if best < r.Threshold {
		return model.MatchResult{Score: best}
	}
	p := candidates[bestIdx]
	return model.MatchResult{Product: &p, Score: best}
}
