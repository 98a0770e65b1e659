package sizing

import "strings"

type fitPair struct {
	preference string
	garment    string
}

// fitCompatibility maps (client preference, garment fit) to a base score in
// [0,1]. Exact matches score high, neighbouring categories get partial
// credit, opposite ends of the fit spectrum get little.
var fitCompatibility = map[fitPair]float64{
	{"slim", "slim"}:      0.90,
	{"slim", "tailored"}:  0.70,
	{"slim", "regular"}:   0.40,
	{"slim", "loose"}:     0.20,
	{"slim", "oversized"}: 0.20,

	{"regular", "slim"}:      0.40,
	{"regular", "tailored"}:  0.70,
	{"regular", "regular"}:   0.90,
	{"regular", "loose"}:     0.60,
	{"regular", "oversized"}: 0.60,

	{"loose", "slim"}:      0.20,
	{"loose", "tailored"}:  0.30,
	{"loose", "regular"}:   0.60,
	{"loose", "loose"}:     0.90,
	{"loose", "oversized"}: 0.90,
}

// preferenceScore rates how well the garment's cut matches the client's
// declared fit preference, with a per-size nudge: slim lovers lean toward
// smaller labels, loose lovers toward larger ones.
func (e *Engine) preferenceScore(size, preferredFit, productFit string) float64 {
	pref := strings.ToLower(strings.TrimSpace(preferredFit))
	garment := strings.ToLower(strings.TrimSpace(productFit))

	base, ok := fitCompatibility[fitPair{pref, garment}]
	if !ok {
		base = 0.5
	}

	return clamp01(base + e.sizeBias(size, pref))
}

// sizeBias leans the preference sub-score toward one end of the size order:
// negative direction for slim preferences, positive for loose. The bias is
// proportional to the label's distance from the middle of the order.
func (e *Engine) sizeBias(size, pref string) float64 {
	idx, ok := e.sizeToIndex[size]
	if !ok {
		return 0
	}
	center := float64(len(e.cfg.SizeOrder)-1) / 2

	switch pref {
	case "slim":
		return e.cfg.PreferenceSizeBias * (center - float64(idx))
	case "loose":
		return e.cfg.PreferenceSizeBias * (float64(idx) - center)
	default:
		return 0
	}
}
