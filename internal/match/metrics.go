package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationsServed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_recommendations_served_total",
			Help: "Recommendations served, by delivery mode",
		},
		[]string{"mode"}, // cached, generated, on_demand, batch
	)

	retrievalTierHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_retrieval_tier_hits_total",
			Help: "Candidate pools produced, by retrieval tier",
		},
		[]string{"tier"},
	)

	noCandidatesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "match_no_candidates_total",
			Help: "Requests for which no candidate could be found at any tier",
		},
	)

	matchScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_scores",
			Help:    "Distribution of raw match scores of served recommendations",
			Buckets: prometheus.LinearBuckets(0, 2, 16),
		},
	)

	feedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_feedback_total",
			Help: "Recommendation feedback actions",
		},
		[]string{"action"}, // skip, like
	)
)

func RecordRecommendation(mode string) {
	recommendationsServed.WithLabelValues(mode).Inc()
}

func RecordRetrievalTier(tier string) {
	retrievalTierHits.WithLabelValues(tier).Inc()
}

func RecordNoCandidates() {
	noCandidatesTotal.Inc()
}

func RecordMatchScore(score float64) {
	matchScores.Observe(score)
}

func RecordFeedback(action string) {
	feedbackTotal.WithLabelValues(action).Inc()
}
