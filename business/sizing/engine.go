package sizing

import (
	"fmt"
	"sort"

	"sizefit/domain"
)

// Engine scores every candidate size of a product against a client profile
// and picks the best one. It holds no state besides its configuration, so a
// single instance can serve concurrent callers.
type Engine struct {
	cfg         Config
	sizeToIndex map[string]int
	fitToIndex  map[string]int
}

func NewEngine(cfg Config) *Engine {
	// zero-valued weight sets fall back to defaults so a partially filled
	// config cannot silently zero out the ranking
	def := DefaultConfig()
	if cfg.Weights.Measurement == 0 && cfg.Weights.History == 0 && cfg.Weights.Preference == 0 {
		cfg.Weights = def.Weights
	}
	if cfg.Dimensions.Bust == 0 && cfg.Dimensions.Waist == 0 && cfg.Dimensions.Hips == 0 {
		cfg.Dimensions = def.Dimensions
	}
	if cfg.BustDecayCM <= 0 {
		cfg.BustDecayCM = def.BustDecayCM
	}
	if cfg.WaistDecayCM <= 0 {
		cfg.WaistDecayCM = def.WaistDecayCM
	}
	if cfg.HipsDecayCM <= 0 {
		cfg.HipsDecayCM = def.HipsDecayCM
	}
	if cfg.HistoryStep <= 0 {
		cfg.HistoryStep = def.HistoryStep
	}
	if cfg.PreferenceSizeBias <= 0 {
		cfg.PreferenceSizeBias = def.PreferenceSizeBias
	}
	if cfg.MaxAlternatives <= 0 {
		cfg.MaxAlternatives = def.MaxAlternatives
	}
	if cfg.MaxConfidenceWithoutMeasurements <= 0 {
		cfg.MaxConfidenceWithoutMeasurements = def.MaxConfidenceWithoutMeasurements
	}
	if len(cfg.SizeOrder) == 0 {
		cfg.SizeOrder = def.SizeOrder
	}
	if len(cfg.FitOrder) == 0 {
		cfg.FitOrder = def.FitOrder
	}

	sizeToIndex := make(map[string]int, len(cfg.SizeOrder))
	for i, s := range cfg.SizeOrder {
		sizeToIndex[s] = i
	}
	fitToIndex := make(map[string]int, len(cfg.FitOrder))
	for i, f := range cfg.FitOrder {
		fitToIndex[f] = i
	}

	return &Engine{
		cfg:         cfg,
		sizeToIndex: sizeToIndex,
		fitToIndex:  fitToIndex,
	}
}

func (e *Engine) Config() Config {
	return e.cfg
}

// Recommend scores every candidate size and returns the ranked result.
// It is deterministic and never mutates its inputs.
func (e *Engine) Recommend(
	client domain.Client,
	product domain.Product,
	history []domain.PurchaseRecord,
) (domain.SizeRecommendation, error) {

	chart, err := product.Chart()
	if err != nil {
		return domain.SizeRecommendation{}, fmt.Errorf("decode size chart: %w", err)
	}

	sizes, err := product.Sizes()
	if err != nil {
		return domain.SizeRecommendation{}, fmt.Errorf("decode available sizes: %w", err)
	}

	candidates := e.candidateSizes(sizes, chart)
	if len(candidates) == 0 {
		return domain.SizeRecommendation{}, domain.ErrNoSizesAvailable
	}

	hasMeasurements := client.HasMeasurements()
	scores := make([]domain.SizeScore, 0, len(candidates))

	for _, size := range candidates {
		measurement, _ := e.measurementScore(client, chart[size])
		historyScore := e.historyScore(size, product, history)
		preference := e.preferenceScore(size, client.PreferredFit, product.Fit)

		var final float64
		if hasMeasurements {
			final = e.cfg.Weights.Measurement*measurement +
				e.cfg.Weights.History*historyScore +
				e.cfg.Weights.Preference*preference
		} else {
			// all dimensions missing: rank on history and preference only,
			// with their weights rescaled to sum to 1
			wSum := e.cfg.Weights.History + e.cfg.Weights.Preference
			final = (e.cfg.Weights.History*historyScore + e.cfg.Weights.Preference*preference) / wSum
			measurement = 0
		}

		scores = append(scores, domain.SizeScore{
			Size:        size,
			Measurement: measurement,
			History:     historyScore,
			Preference:  preference,
			Final:       clamp01(final),
		})
	}

	// rank: final score desc, then measurement sub-score desc, then the
	// smaller size label under the chart's natural ordering
	sort.SliceStable(scores, func(i, j int) bool {
		if scores[i].Final != scores[j].Final {
			return scores[i].Final > scores[j].Final
		}
		if scores[i].Measurement != scores[j].Measurement {
			return scores[i].Measurement > scores[j].Measurement
		}
		return e.sizeRank(scores[i].Size) < e.sizeRank(scores[j].Size)
	})

	best := scores[0]
	confidence := clamp01(best.Final)
	if !hasMeasurements && confidence > e.cfg.MaxConfidenceWithoutMeasurements {
		confidence = e.cfg.MaxConfidenceWithoutMeasurements
	}

	alternatives := make([]string, 0, e.cfg.MaxAlternatives)
	for _, s := range scores[1:] {
		if len(alternatives) == e.cfg.MaxAlternatives {
			break
		}
		alternatives = append(alternatives, s.Size)
	}

	rec := domain.SizeRecommendation{
		RecommendedSize:  best.Size,
		Confidence:       confidence,
		AlternativeSizes: alternatives,
		Breakdown:        scores,
		InsufficientData: !hasMeasurements,
	}
	rec.Reasoning = e.buildReasoning(client, product, rec, history)
	rec.FitNotes = e.buildFitNotes(client, product)

	return rec, nil
}

// candidateSizes intersects the product's available sizes with its chart,
// keeping the chart's natural ordering. A product without an explicit
// available-sizes list offers every charted size.
func (e *Engine) candidateSizes(available []string, chart domain.SizeChartSpec) []string {
	var candidates []string
	if len(available) == 0 {
		for size := range chart {
			candidates = append(candidates, size)
		}
	} else {
		for _, size := range available {
			if _, ok := chart[size]; ok {
				candidates = append(candidates, size)
			}
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		ri, rj := e.sizeRank(candidates[i]), e.sizeRank(candidates[j])
		if ri != rj {
			return ri < rj
		}
		return candidates[i] < candidates[j]
	})

	return candidates
}

// sizeRank orders labels by the configured size order; unknown labels sort
// after all known ones.
func (e *Engine) sizeRank(size string) int {
	if idx, ok := e.sizeToIndex[size]; ok {
		return idx
	}
	return len(e.cfg.SizeOrder)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
