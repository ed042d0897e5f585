// Package metrics defines the service's Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CategorizeRequests counts categorization attempts per backend
	// ("openai", "claude", "rules").
	CategorizeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "checklister_categorize_requests_total",
		Help: "Categorization requests by backend.",
	}, []string{"backend"})

	// CategorizeFallbacks counts remote failures recovered by the local
	// rule-based categorizer.
	CategorizeFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checklister_categorize_fallbacks_total",
		Help: "Remote categorization failures recovered by the rule-based fallback.",
	})

	// OCRExtractions counts image-to-text extraction attempts.
	OCRExtractions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checklister_ocr_extractions_total",
		Help: "OCR text extraction attempts.",
	})

	// ItemsIngested counts items installed into the checklist after a
	// successful categorization.
	ItemsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Name: "checklister_items_ingested_total",
		Help: "Checklist items produced by ingestion.",
	})
)
