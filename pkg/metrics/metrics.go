// Package metrics holds the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoshop_http_requests_total",
			Help: "HTTP requests by method, route and status.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "autoshop_http_request_duration_seconds",
			Help:    "HTTP request latency by method and route.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	InvoicesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoshop_invoices_created_total",
		Help: "Invoices created, including quotation conversions.",
	})

	InvoiceRevenue = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoshop_invoice_revenue_total",
			Help: "Total of invoices marked paid, by payment method.",
		},
		[]string{"method"},
	)

	QuotationsConverted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "autoshop_quotations_converted_total",
		Help: "Quotations converted into invoices.",
	})

	StockAdjustments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoshop_stock_adjustments_total",
			Help: "Manual tire stock adjustments by type.",
		},
		[]string{"type"},
	)

	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "autoshop_notifications_total",
			Help: "Outbound notifications by channel and result.",
		},
		[]string{"channel", "result"},
	)
)

// Notification records one outbound email or SMS attempt.
func Notification(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	NotificationsSent.WithLabelValues(channel, result).Inc()
}
