package domain

// SizeScore is the per-size breakdown of the three scoring factors.
type SizeScore struct {
	Size        string  `json:"size"`
	Measurement float64 `json:"measurement"`
	History     float64 `json:"history"`
	Preference  float64 `json:"preference"`
	Final       float64 `json:"final"`
}

// SizeRecommendation is the engine output: the best size, how confident the
// engine is in it, and the runner-up sizes ordered best to worst.
type SizeRecommendation struct {
	RecommendedSize  string      `json:"recommended_size"`
	Confidence       float64     `json:"confidence"`
	AlternativeSizes []string    `json:"alternative_sizes"`
	Breakdown        []SizeScore `json:"breakdown,omitempty"`
	Reasoning        string      `json:"reasoning,omitempty"`
	FitNotes         string      `json:"fit_notes,omitempty"`

	// InsufficientData is set when no body measurements were available and
	// the recommendation relied on history and preference only.
	InsufficientData bool `json:"insufficient_data,omitempty"`
}
