package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DownloadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuegos_effis_downloads_total",
			Help: "Total EFFIS WFS downloads",
		},
		[]string{"country", "status"},
	)

	DownloadLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fuegos_effis_download_latency_seconds",
			Help:    "EFFIS download latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	DownloadBytes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fuegos_effis_download_bytes_total",
			Help: "Total bytes downloaded from EFFIS",
		},
	)

	FeaturesCleaned = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuegos_features_cleaned_total",
			Help: "Features successfully cleaned",
		},
		[]string{"country"},
	)

	UnmatchedProvinces = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fuegos_unmatched_provinces_total",
			Help: "Province strings that missed the region taxonomy",
		},
	)

	FeaturesBelowThreshold = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "fuegos_features_below_threshold_total",
			Help: "Features excluded from aggregation by the min-ha filter",
		},
	)

	BridgePushesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuegos_bridge_pushes_total",
			Help: "Sheet payload pushes to the spreadsheet bridge",
		},
		[]string{"sheet", "status"},
	)
)
