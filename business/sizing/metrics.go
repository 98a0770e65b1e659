package sizing

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "size_recommendations_total",
			Help: "Count of size recommendations by recommended size and data completeness.",
		},
		[]string{"recommended_size", "insufficient_data"},
	)

	FeedbackEventsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fit_feedback_events_total",
			Help: "Count of recorded purchase fit feedback events by feedback class.",
		},
		[]string{"size", "feedback_class"},
	)
)

func init() {
	prometheus.MustRegister(RecommendationsTotal, FeedbackEventsTotal)
}
