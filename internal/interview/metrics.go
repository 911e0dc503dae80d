package interview

import "github.com/prometheus/client_golang/prometheus"

var scoreHistogram = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "interview_score",
		Help:    "Distribution of evaluation scores",
		Buckets: prometheus.LinearBuckets(0, 10, 11),
	}, []string{"difficulty"},
)

func init() { prometheus.MustRegister(scoreHistogram) }
