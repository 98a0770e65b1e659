package sizing

import (
	"encoding/json"
	"errors"
	"math"
	"reflect"
	"testing"

	"sizefit/domain"

	"gorm.io/datatypes"
)

func ptr(v float64) *float64 {
	return &v
}

func newTestProduct(t *testing.T, fit string, sizes []string, chart domain.SizeChartSpec) domain.Product {
	t.Helper()

	chartJSON, err := json.Marshal(chart)
	if err != nil {
		t.Fatalf("marshal chart: %v", err)
	}
	sizesJSON, err := json.Marshal(sizes)
	if err != nil {
		t.Fatalf("marshal sizes: %v", err)
	}

	return domain.Product{
		ProductID:      "P001",
		Name:           "Test Dress",
		Fit:            fit,
		Fabric:         "cotton",
		AvailableSizes: datatypes.JSON(sizesJSON),
		SizeChart:      datatypes.JSON(chartJSON),
	}
}

// chart with non-overlapping ranges so one size clearly wins
func standardChart() domain.SizeChartSpec {
	return domain.SizeChartSpec{
		"S": {
			Bust:  domain.MeasurementRange{MinCM: 82, MaxCM: 85},
			Waist: domain.MeasurementRange{MinCM: 62, MaxCM: 65},
			Hips:  domain.MeasurementRange{MinCM: 88, MaxCM: 91},
		},
		"M": {
			Bust:  domain.MeasurementRange{MinCM: 86, MaxCM: 90},
			Waist: domain.MeasurementRange{MinCM: 66, MaxCM: 70},
			Hips:  domain.MeasurementRange{MinCM: 92, MaxCM: 96},
		},
		"L": {
			Bust:  domain.MeasurementRange{MinCM: 91, MaxCM: 95},
			Waist: domain.MeasurementRange{MinCM: 71, MaxCM: 75},
			Hips:  domain.MeasurementRange{MinCM: 97, MaxCM: 101},
		},
	}
}

func standardClient() domain.Client {
	return domain.Client{
		ID:           1,
		ClientID:     "C0001",
		Name:         "Ana",
		HeightCM:     168,
		WeightKG:     62,
		BustCM:       ptr(90),
		WaistCM:      ptr(70),
		HipsCM:       ptr(95),
		PreferredFit: "regular",
	}
}

func TestRecommendBestMatch(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	product := newTestProduct(t, "regular", []string{"S", "M", "L"}, standardChart())

	rec, err := engine.Recommend(standardClient(), product, nil)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if rec.RecommendedSize != "M" {
		t.Fatalf("expected M, got %s", rec.RecommendedSize)
	}
	if rec.InsufficientData {
		t.Error("expected InsufficientData to be false")
	}
	if rec.Confidence <= 0.8 {
		t.Errorf("expected confidence above 0.8, got %.3f", rec.Confidence)
	}

	// all three dimensions sit inside M's ranges: measurement 1.0, neutral
	// history 0.5, regular-on-regular preference 0.9
	want := 0.60*1.0 + 0.25*0.5 + 0.15*0.9
	if math.Abs(rec.Confidence-want) > 1e-9 {
		t.Errorf("expected confidence %.4f, got %.4f", want, rec.Confidence)
	}

	if !reflect.DeepEqual(rec.AlternativeSizes, []string{"L", "S"}) {
		t.Errorf("expected alternatives [L S], got %v", rec.AlternativeSizes)
	}
	if len(rec.Breakdown) != 3 {
		t.Errorf("expected a breakdown entry per candidate size, got %d", len(rec.Breakdown))
	}
	if rec.Reasoning == "" {
		t.Error("expected non-empty reasoning")
	}
}

func TestRecommendDeterministic(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	product := newTestProduct(t, "regular", []string{"S", "M", "L"}, standardChart())
	history := []domain.PurchaseRecord{
		{ProductID: "P001", ProductFit: "regular", Size: "M", Feedback: "perfect fit"},
	}

	first, err := engine.Recommend(standardClient(), product, history)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	second, err := engine.Recommend(standardClient(), product, history)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("expected identical results for identical inputs")
	}
}

func TestRecommendFitMismatchLowersConfidence(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	matching := newTestProduct(t, "regular", []string{"S", "M", "L"}, standardChart())
	mismatched := newTestProduct(t, "slim", []string{"S", "M", "L"}, standardChart())

	client := standardClient()
	client.PreferredFit = "loose"

	recMatching, err := engine.Recommend(standardClient(), matching, nil)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}
	recMismatched, err := engine.Recommend(client, mismatched, nil)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	// measurements dominate, so the best size stays the same
	if recMismatched.RecommendedSize != "M" {
		t.Fatalf("expected M despite fit mismatch, got %s", recMismatched.RecommendedSize)
	}
	if recMismatched.Confidence >= recMatching.Confidence {
		t.Errorf("expected mismatch confidence %.3f below matching %.3f",
			recMismatched.Confidence, recMatching.Confidence)
	}
}

func TestRecommendWithoutMeasurements(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	product := newTestProduct(t, "regular", []string{"S", "M", "L"}, standardChart())

	client := standardClient()
	client.BustCM = nil
	client.WaistCM = nil
	client.HipsCM = nil

	history := []domain.PurchaseRecord{
		{ProductID: "P001", ProductFit: "regular", Size: "M", Feedback: "perfect fit"},
	}

	rec, err := engine.Recommend(client, product, history)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if !rec.InsufficientData {
		t.Error("expected InsufficientData to be true")
	}
	if rec.Confidence > DefaultConfig().MaxConfidenceWithoutMeasurements {
		t.Errorf("expected capped confidence, got %.3f", rec.Confidence)
	}
	// history still steers the pick
	if rec.RecommendedSize != "M" {
		t.Errorf("expected history to select M, got %s", rec.RecommendedSize)
	}
	for _, s := range rec.Breakdown {
		if s.Measurement != 0 {
			t.Errorf("expected zero measurement sub-score for %s, got %.3f", s.Size, s.Measurement)
		}
	}
}

func TestRecommendNoSizesAvailable(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	product := newTestProduct(t, "regular", nil, domain.SizeChartSpec{})
	if _, err := engine.Recommend(standardClient(), product, nil); !errors.Is(err, domain.ErrNoSizesAvailable) {
		t.Errorf("expected ErrNoSizesAvailable for empty chart, got %v", err)
	}

	// available sizes that never appear in the chart are no candidates either
	product = newTestProduct(t, "regular", []string{"XXL"}, standardChart())
	if _, err := engine.Recommend(standardClient(), product, nil); !errors.Is(err, domain.ErrNoSizesAvailable) {
		t.Errorf("expected ErrNoSizesAvailable for disjoint sizes, got %v", err)
	}
}

func TestRecommendRespectsAvailableSizes(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	product := newTestProduct(t, "regular", []string{"S", "M"}, standardChart())

	rec, err := engine.Recommend(standardClient(), product, nil)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if rec.RecommendedSize == "L" {
		t.Error("recommended a size that is not available")
	}
	for _, alt := range rec.AlternativeSizes {
		if alt == "L" {
			t.Error("alternatives contain a size that is not available")
		}
	}
	if len(rec.Breakdown) != 2 {
		t.Errorf("expected 2 candidates, got %d", len(rec.Breakdown))
	}
}

func TestRecommendTieBreakPrefersSmallerSize(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	spec := domain.SizeSpec{
		Bust:  domain.MeasurementRange{MinCM: 86, MaxCM: 90},
		Waist: domain.MeasurementRange{MinCM: 66, MaxCM: 70},
		Hips:  domain.MeasurementRange{MinCM: 92, MaxCM: 96},
	}
	chart := domain.SizeChartSpec{"S": spec, "M": spec}
	product := newTestProduct(t, "regular", []string{"S", "M"}, chart)

	rec, err := engine.Recommend(standardClient(), product, nil)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if rec.RecommendedSize != "S" {
		t.Errorf("expected the smaller size to win the tie, got %s", rec.RecommendedSize)
	}
}

func TestRecommendAlternativesCapped(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	chart := standardChart()
	chart["XS"] = domain.SizeSpec{
		Bust:  domain.MeasurementRange{MinCM: 78, MaxCM: 81},
		Waist: domain.MeasurementRange{MinCM: 58, MaxCM: 61},
		Hips:  domain.MeasurementRange{MinCM: 84, MaxCM: 87},
	}
	chart["XL"] = domain.SizeSpec{
		Bust:  domain.MeasurementRange{MinCM: 96, MaxCM: 100},
		Waist: domain.MeasurementRange{MinCM: 76, MaxCM: 80},
		Hips:  domain.MeasurementRange{MinCM: 102, MaxCM: 106},
	}
	product := newTestProduct(t, "regular", []string{"XS", "S", "M", "L", "XL"}, chart)

	rec, err := engine.Recommend(standardClient(), product, nil)
	if err != nil {
		t.Fatalf("Recommend returned error: %v", err)
	}

	if len(rec.AlternativeSizes) != DefaultConfig().MaxAlternatives {
		t.Errorf("expected %d alternatives, got %v", DefaultConfig().MaxAlternatives, rec.AlternativeSizes)
	}
	if len(rec.Breakdown) != 5 {
		t.Errorf("expected all candidates scored, got %d", len(rec.Breakdown))
	}
}

func TestHistoryScoreAdjustments(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	product := newTestProduct(t, "regular", []string{"S", "M", "L"}, standardChart())

	// no relevant history keeps the neutral midpoint
	irrelevant := []domain.PurchaseRecord{
		{ProductID: "P999", ProductFit: "oversized", Size: "M", Feedback: "too tight"},
	}
	if got := engine.historyScore("M", product, irrelevant); got != 0.5 {
		t.Errorf("expected neutral 0.5 for irrelevant history, got %.2f", got)
	}

	tooTight := []domain.PurchaseRecord{
		{ProductID: "P001", ProductFit: "regular", Size: "M", Feedback: "too tight"},
	}
	if got := engine.historyScore("L", product, tooTight); got != 0.6 {
		t.Errorf("too tight should favour the larger size, got %.2f", got)
	}
	if got := engine.historyScore("M", product, tooTight); got != 0.4 {
		t.Errorf("too tight should penalize the purchased size, got %.2f", got)
	}
	if got := engine.historyScore("S", product, tooTight); got != 0.4 {
		t.Errorf("too tight should penalize smaller sizes, got %.2f", got)
	}

	tooLoose := []domain.PurchaseRecord{
		{ProductID: "P001", ProductFit: "regular", Size: "M", Feedback: "too loose"},
	}
	if got := engine.historyScore("S", product, tooLoose); got != 0.6 {
		t.Errorf("too loose should favour the smaller size, got %.2f", got)
	}
	if got := engine.historyScore("L", product, tooLoose); got != 0.4 {
		t.Errorf("too loose should penalize larger sizes, got %.2f", got)
	}

	positive := []domain.PurchaseRecord{
		{ProductID: "P001", ProductFit: "regular", Size: "M", Feedback: "perfect fit"},
	}
	if got := engine.historyScore("M", product, positive); got != 0.7 {
		t.Errorf("positive feedback should reinforce the purchased size, got %.2f", got)
	}
	if got := engine.historyScore("S", product, positive); got != 0.55 {
		t.Errorf("positive feedback should mildly lift neighbours, got %.2f", got)
	}

	// same fit type counts even for a different product
	sameFit := []domain.PurchaseRecord{
		{ProductID: "P777", ProductFit: "regular", Size: "M", Feedback: "perfect fit"},
	}
	if got := engine.historyScore("M", product, sameFit); got != 0.7 {
		t.Errorf("same-fit purchases should count, got %.2f", got)
	}
}

func TestClassifyFeedback(t *testing.T) {
	cases := map[string]string{
		"way too tight around the waist": FeedbackTooTight,
		"Too Loose for me":               FeedbackTooLoose,
		"perfect fit!":                   FeedbackPositive,
		"really comfortable":             FeedbackPositive,
		"great quality":                  FeedbackPositive,
		"returned it":                    FeedbackOther,
		"":                               FeedbackOther,
	}
	for feedback, want := range cases {
		if got := ClassifyFeedback(feedback); got != want {
			t.Errorf("ClassifyFeedback(%q) = %s, want %s", feedback, got, want)
		}
	}
}

func TestMeasurementScorePartialDimensions(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	spec := standardChart()["M"]

	// only bust known: the sub-score rests on that dimension alone
	client := domain.Client{BustCM: ptr(95)}
	got, ok := engine.measurementScore(client, spec)
	if !ok {
		t.Fatal("expected a score with one dimension present")
	}
	want := math.Exp(-5.0 / DefaultConfig().BustDecayCM)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %.4f, got %.4f", want, got)
	}

	if _, ok := engine.measurementScore(domain.Client{}, spec); ok {
		t.Error("expected ok=false with no measurements")
	}
}

func TestPreferenceScoreBias(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	// unknown pairing falls back to a neutral base
	if got := engine.preferenceScore("M", "athletic", "regular"); got != 0.5 {
		t.Errorf("expected neutral 0.5 for unknown pairing, got %.2f", got)
	}

	// slim preference leans toward smaller labels
	if engine.preferenceScore("XS", "slim", "slim") <= engine.preferenceScore("XL", "slim", "slim") {
		t.Error("slim preference should score smaller sizes higher")
	}

	// loose preference leans the other way
	if engine.preferenceScore("XL", "loose", "loose") <= engine.preferenceScore("XS", "loose", "loose") {
		t.Error("loose preference should score larger sizes higher")
	}
}

func TestNewEngineFillsZeroValues(t *testing.T) {
	engine := NewEngine(Config{})
	cfg := engine.Config()

	if cfg.Weights != DefaultConfig().Weights {
		t.Errorf("expected default weights, got %+v", cfg.Weights)
	}
	if cfg.HistoryStep != defaultHistoryStep {
		t.Errorf("expected default history step, got %v", cfg.HistoryStep)
	}
	if len(cfg.SizeOrder) == 0 || len(cfg.FitOrder) == 0 {
		t.Error("expected default orderings to be filled in")
	}
}
