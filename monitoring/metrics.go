package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	bookingAdmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_admissions_total",
			Help: "Booking admission attempts by outcome",
		},
		[]string{"outcome"},
	)

	paymentSettlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_settlements_total",
			Help: "Payment settlement attempts by outcome",
		},
		[]string{"outcome"},
	)

	refunds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_refunds_total",
			Help: "Refund attempts by outcome",
		},
		[]string{"outcome"},
	)

	requestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_request_duration_seconds",
			Help:    "Duration of booking platform operations",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"operation"},
	)
)

func TrackAdmission(outcome string) {
	bookingAdmissions.WithLabelValues(outcome).Inc()
}

func TrackSettlement(outcome string) {
	paymentSettlements.WithLabelValues(outcome).Inc()
}

func TrackRefund(outcome string) {
	refunds.WithLabelValues(outcome).Inc()
}

func TrackDuration(operation string, duration time.Duration) {
	requestDuration.WithLabelValues(operation).Observe(duration.Seconds())
}
