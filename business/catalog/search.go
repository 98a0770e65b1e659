package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"sizefit/domain"
)

// Scoring weights for the weighted text search over the catalog.
const (
	scoreExactID     = 100
	scoreName        = 50
	scoreFit         = 30
	scoreFabric      = 30
	scoreWordName    = 10
	scoreWordFit     = 15
	scoreWordFabric  = 15
	minSearchWordLen = 3
)

// SearchProducts ranks catalog entries against a free-text query: exact id
// matches first, then name, fit, and fabric matches, then partial words.
func (s *catalogService) SearchProducts(ctx context.Context, query string, limit int) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = 5
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		product domain.Product
		score   int
	}

	var results []scored
	for _, p := range products {
		score := scoreProduct(p, query)
		if score > 0 {
			results = append(results, scored{product: p, score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].score > results[j].score
	})

	if len(results) > limit {
		results = results[:limit]
	}

	out := make([]domain.Product, 0, len(results))
	for _, r := range results {
		out = append(out, r.product)
	}

	return out, nil
}

func scoreProduct(p domain.Product, query string) int {
	id := strings.ToLower(p.ProductID)
	name := strings.ToLower(p.Name)
	fit := strings.ToLower(p.Fit)
	fabric := strings.ToLower(p.Fabric)

	if query == id {
		return scoreExactID
	}

	score := 0
	if strings.Contains(name, query) {
		score += scoreName
	}
	if strings.Contains(fit, query) {
		score += scoreFit
	}
	if strings.Contains(fabric, query) {
		score += scoreFabric
	}

	for _, word := range strings.Fields(query) {
		if len(word) < minSearchWordLen {
			continue
		}
		if strings.Contains(name, word) {
			score += scoreWordName
		}
		if strings.Contains(fit, word) {
			score += scoreWordFit
		}
		if strings.Contains(fabric, word) {
			score += scoreWordFabric
		}
	}

	return score
}
