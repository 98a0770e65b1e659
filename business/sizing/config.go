package sizing

// Weights controls how the three scoring factors combine into a final score.
type Weights struct {
	Measurement float64
	History     float64
	Preference  float64
}

// DimensionWeights controls the relative importance of each body dimension
// inside the measurement sub-score.
type DimensionWeights struct {
	Bust  float64
	Waist float64
	Hips  float64
}

type Config struct {
	Weights    Weights
	Dimensions DimensionWeights

	// Exponential falloff constants: a dimension scores exp(-distance/decay)
	// where distance is measured in cm outside the size's target range.
	BustDecayCM  float64
	WaistDecayCM float64
	HipsDecayCM  float64

	// Adjustment applied per matching feedback record when shifting the
	// history sub-score away from its neutral midpoint.
	HistoryStep float64

	// Per-step bias toward smaller sizes for slim preference (and larger
	// sizes for loose preference) inside the preference sub-score.
	PreferenceSizeBias float64

	MaxAlternatives int

	// Confidence ceiling when the client has no body measurements at all.
	MaxConfidenceWithoutMeasurements float64

	// Natural ordering of size labels, smallest first.
	SizeOrder []string

	// Ordering of fit categories from most fitted to most relaxed.
	FitOrder []string
}

const (
	defaultWMeasurement = 0.60
	defaultWHistory     = 0.25
	defaultWPreference  = 0.15

	defaultBustWeight  = 0.40
	defaultWaistWeight = 0.35
	defaultHipsWeight  = 0.25

	defaultBustDecayCM  = 10.0
	defaultWaistDecayCM = 8.0
	defaultHipsDecayCM  = 10.0

	defaultHistoryStep        = 0.10
	defaultPreferenceSizeBias = 0.05
	defaultMaxAlternatives    = 2

	defaultMaxConfidenceWithoutMeasurements = 0.45
)

func DefaultConfig() Config {
	return Config{
		Weights: Weights{
			Measurement: defaultWMeasurement,
			History:     defaultWHistory,
			Preference:  defaultWPreference,
		},
		Dimensions: DimensionWeights{
			Bust:  defaultBustWeight,
			Waist: defaultWaistWeight,
			Hips:  defaultHipsWeight,
		},

		BustDecayCM:  defaultBustDecayCM,
		WaistDecayCM: defaultWaistDecayCM,
		HipsDecayCM:  defaultHipsDecayCM,

		HistoryStep:        defaultHistoryStep,
		PreferenceSizeBias: defaultPreferenceSizeBias,
		MaxAlternatives:    defaultMaxAlternatives,

		MaxConfidenceWithoutMeasurements: defaultMaxConfidenceWithoutMeasurements,

		SizeOrder: []string{"XS", "S", "M", "L", "XL"},
		FitOrder:  []string{"slim", "tailored", "regular", "loose", "oversized"},
	}
}
