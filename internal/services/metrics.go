package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogLoads = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ottpulse",
		Subsystem: "catalog",
		Name:      "loads_total",
		Help:      "Number of catalog table loads, by table.",
	}, []string{"table"})

	catalogWarnings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ottpulse",
		Subsystem: "catalog",
		Name:      "warnings_total",
		Help:      "Ingestion warnings absorbed during catalog loads, by type.",
	}, []string{"type"})

	catalogRows = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "ottpulse",
		Subsystem: "catalog",
		Name:      "rows",
		Help:      "Rows held by the cached catalog tables.",
	}, []string{"table"})

	queriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ottpulse",
		Subsystem: "analytics",
		Name:      "queries_total",
		Help:      "Analytics queries served, by query name and outcome.",
	}, []string{"query", "outcome"})
)

func observeQuery(query string, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	queriesTotal.WithLabelValues(query, outcome).Inc()
}
