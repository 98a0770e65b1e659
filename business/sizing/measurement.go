package sizing

import (
	"math"

	"sizefit/domain"
)

// measurementScore computes how closely the client's body measurements match
// one size's target ranges. A dimension inside its range contributes a full
// score; outside the range the contribution decays exponentially with the
// distance in cm. Missing dimensions are skipped and the remaining weights
// are rescaled so they still sum to 1 within the sub-score.
//
// The second return value is false when no dimension was available.
func (e *Engine) measurementScore(client domain.Client, spec domain.SizeSpec) (float64, bool) {
	type dimension struct {
		value   *float64
		target  domain.MeasurementRange
		weight  float64
		decayCM float64
	}

	dims := []dimension{
		{client.BustCM, spec.Bust, e.cfg.Dimensions.Bust, e.cfg.BustDecayCM},
		{client.WaistCM, spec.Waist, e.cfg.Dimensions.Waist, e.cfg.WaistDecayCM},
		{client.HipsCM, spec.Hips, e.cfg.Dimensions.Hips, e.cfg.HipsDecayCM},
	}

	var weighted, totalWeight float64
	for _, d := range dims {
		if d.value == nil || d.weight <= 0 {
			continue
		}
		dist := rangeDistance(*d.value, d.target)
		weighted += d.weight * math.Exp(-dist/d.decayCM)
		totalWeight += d.weight
	}

	if totalWeight == 0 {
		return 0, false
	}
	return weighted / totalWeight, true
}

// rangeDistance is the distance from a value to a closed interval, zero when
// the value falls inside it.
func rangeDistance(v float64, r domain.MeasurementRange) float64 {
	switch {
	case v < r.MinCM:
		return r.MinCM - v
	case v > r.MaxCM:
		return v - r.MaxCM
	default:
		return 0
	}
}
