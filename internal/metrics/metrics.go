// Package metrics exposes Prometheus collectors for the settings service.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// SettingsMetrics tracks settings cache efficiency and write outcomes.
// All methods are nil-safe: calls on a nil *SettingsMetrics are no-ops.
type SettingsMetrics struct {
	cacheHits          *prometheus.CounterVec
	cacheMisses        *prometheus.CounterVec
	writes             *prometheus.CounterVec
	validationFailures *prometheus.CounterVec
}

// NewSettingsMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is what tests want.
func NewSettingsMetrics(reg prometheus.Registerer) *SettingsMetrics {
	m := &SettingsMetrics{
		cacheHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "settings",
			Name:      "cache_hits_total",
			Help:      "Settings reads served from the cache",
		}, []string{"category"}),
		cacheMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "settings",
			Name:      "cache_misses_total",
			Help:      "Settings reads that went to persistence",
		}, []string{"category"}),
		writes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "settings",
			Name:      "writes_total",
			Help:      "Successful settings upserts",
		}, []string{"category"}),
		validationFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "fitcoach",
			Subsystem: "settings",
			Name:      "validation_failures_total",
			Help:      "Settings writes rejected by category validation",
		}, []string{"category"}),
	}

	if reg != nil {
		m.cacheHits = registerOrReuse(reg, m.cacheHits)
		m.cacheMisses = registerOrReuse(reg, m.cacheMisses)
		m.writes = registerOrReuse(reg, m.writes)
		m.validationFailures = registerOrReuse(reg, m.validationFailures)
	}
	return m
}

func registerOrReuse(reg prometheus.Registerer, c *prometheus.CounterVec) *prometheus.CounterVec {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(*prometheus.CounterVec); ok {
				return existing
			}
		}
	}
	return c
}

// RecordCacheHit counts a read served from the cache.
func (m *SettingsMetrics) RecordCacheHit(category string) {
	if m == nil {
		return
	}
	m.cacheHits.WithLabelValues(category).Inc()
}

// RecordCacheMiss counts a read that fell through to persistence.
func (m *SettingsMetrics) RecordCacheMiss(category string) {
	if m == nil {
		return
	}
	m.cacheMisses.WithLabelValues(category).Inc()
}

// RecordWrite counts a successful upsert.
func (m *SettingsMetrics) RecordWrite(category string) {
	if m == nil {
		return
	}
	m.writes.WithLabelValues(category).Inc()
}

// RecordValidationFailure counts a rejected write.
func (m *SettingsMetrics) RecordValidationFailure(category string) {
	if m == nil {
		return
	}
	m.validationFailures.WithLabelValues(category).Inc()
}
