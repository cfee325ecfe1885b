package app

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// generationsTotal counts generation runs by result.
	generationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schedgrid_generations_total",
		Help: "Total generation runs by result",
	}, []string{"result"})

	generationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "schedgrid_generation_duration_seconds",
		Help:    "Duration of a full load, build, render and emit run",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
	})

	// documentsTotal counts emitted documents by outcome: written, unchanged,
	// published or deduplicated.
	documentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "schedgrid_documents_total",
		Help: "Documents handled by outcome",
	}, []string{"outcome"})
)

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
