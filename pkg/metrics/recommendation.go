package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the size recommendation HTTP handler
	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "size_recommend_latency_seconds",
		Help:    "Latency of the size recommendation handler",
		Buckets: prometheus.DefBuckets,
	})

	// Total number of size recommendation requests served
	RecommendRequests = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "size_recommend_requests_total",
		Help: "Total number of size recommendation requests",
	})

	// Chat messages handled, by resolved intent
	ChatMessagesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chat_messages_total",
		Help: "Total chat messages handled, by resolved intent",
	}, []string{"intent"})

	// LLM completion calls, by outcome (ok, error, fallback)
	LLMCompletionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "llm_completions_total",
		Help: "LLM completion calls by outcome",
	}, []string{"outcome"})
)

func Init() {
	prometheus.MustRegister(
		RecommendLatency,
		RecommendRequests,
		ChatMessagesTotal,
		LLMCompletionsTotal,
	)
}
