package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ModelRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prodrec",
		Subsystem: "server",
		Name:      "model_recommend_seconds",
	})
	UserBasedRecommendSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prodrec",
		Subsystem: "server",
		Name:      "user_based_recommend_seconds",
	})
	TopProductsSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "prodrec",
		Subsystem: "server",
		Name:      "top_products_seconds",
	})
	RestAPIRequestTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "prodrec",
		Subsystem: "server",
		Name:      "rest_api_request_total",
	}, []string{"path", "status"})
)
