// Package metrics registers the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultInvalid = "invalid"
	ResultFailed  = "failed"
)

var (
	BookingSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_submissions_total",
		Help: "Booking submissions by booking type and result",
	}, []string{"booking_type", "result"})

	BookingRevenue = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "booking_revenue_euros_total",
		Help: "Sum of total_price over stored bookings",
	}, []string{"booking_type"})

	ContactInquiries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "contact_inquiries_total",
		Help: "Contact form submissions by result",
	}, []string{"result"})

	ReservationLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "reservation_lookups_total",
		Help: "Reservation lookups by outcome (found, empty, failed)",
	}, []string{"outcome"})

	DataServiceDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "data_service_call_duration_seconds",
		Help:    "Latency of calls to the data service",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})
)
