// Package metrics exports report figures in the Prometheus text format so a
// node_exporter textfile collector can scrape the latest catalog state.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/bgricker/opreport/internal/report"
)

const namespace = "opreport"

// Registry builds a registry holding gauges for one generated report.
func Registry(version string, summary report.Summary, rows []report.Row) *prometheus.Registry {
	reg := prometheus.NewRegistry()

	operations := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "operations",
		Help:      "Number of cataloged operations per collection.",
	}, []string{"collection"})
	percent := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "operations_percent",
		Help:      "Floor percentage of cataloged operations per collection.",
	}, []string{"collection"})
	status := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "transaction_status_operations",
		Help:      "Operations with alternatives grouped by transaction status.",
	}, []string{"status"})
	info := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_info",
		Help:      "Catalog metadata; the value is always 1.",
	}, []string{"version"})

	reg.MustRegister(operations, percent, status, info)

	operations.WithLabelValues("total").Set(float64(summary.Total))
	operations.WithLabelValues("with_alternatives").Set(float64(summary.With))
	operations.WithLabelValues("without_alternatives").Set(float64(summary.Without))
	percent.WithLabelValues("with_alternatives").Set(float64(summary.WithPercent))
	percent.WithLabelValues("without_alternatives").Set(float64(summary.WithoutPercent))

	for _, s := range []report.TransactionStatus{report.AllSafe, report.AllUnsafe, report.Mixed} {
		status.WithLabelValues(s.String()).Set(0)
	}
	for _, row := range rows {
		status.WithLabelValues(row.Status.String()).Inc()
	}
	info.WithLabelValues(version).Set(1)

	return reg
}

// WriteTextfile writes the report gauges to path.
func WriteTextfile(path, version string, summary report.Summary, rows []report.Row) error {
	if err := prometheus.WriteToTextfile(path, Registry(version, summary, rows)); err != nil {
		return fmt.Errorf("write metrics %q: %w", path, err)
	}
	return nil
}
