package table

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "members"

type tableMetrics struct {
	records      prometheus.Gauge
	matching     prometheus.Gauge
	selected     prometheus.Gauge
	deleted      prometheus.Counter
	edits        prometheus.Counter
	loadFailures prometheus.Counter
}

func newTableMetrics() *tableMetrics {
	gauge := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{Namespace: metricsNamespace, Name: name, Help: help})
	}
	counter := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{Namespace: metricsNamespace, Name: name, Help: help})
	}
	return &tableMetrics{
		records:      gauge("records", "Records in the full set."),
		matching:     gauge("matching_records", "Records matching the active search."),
		selected:     gauge("selected_records", "Records currently selected."),
		deleted:      counter("deleted_total", "Records deleted since start."),
		edits:        counter("edits_committed_total", "Edit sessions committed."),
		loadFailures: counter("load_failures_total", "Loads that ended in failure."),
	}
}

func (m *tableMetrics) collectors() []prometheus.Collector {
	return []prometheus.Collector{m.records, m.matching, m.selected, m.deleted, m.edits, m.loadFailures}
}

func (m *tableMetrics) observe(state State) {
	m.records.Set(float64(state.Len()))
	m.matching.Set(float64(len(state.projection)))
	m.selected.Set(float64(state.selection.Len()))
}
