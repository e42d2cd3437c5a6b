package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogyn_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "yogyn_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	BookingsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogyn_bookings_created_total",
			Help: "Total number of bookings admitted, by decided status",
		},
		[]string{"status"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogyn_booking_transitions_total",
			Help: "Total number of booking state transitions",
		},
		[]string{"transition"},
	)

	BookingAdmissionRejectedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogyn_booking_admission_rejected_total",
			Help: "Total number of admissions refused, by reason",
		},
		[]string{"reason"},
	)

	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogyn_events_published_total",
			Help: "Total number of booking events published",
		},
		[]string{"type", "status"},
	)

	EventQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "yogyn_event_queue_length",
			Help: "Current length of the booking event queue",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "yogyn_emails_sent_total",
			Help: "Total number of notification emails sent",
		},
		[]string{"type", "status"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordBookingCreated(status string) {
	BookingsCreatedTotal.WithLabelValues(status).Inc()
}

func RecordBookingTransition(transition string) {
	BookingTransitionsTotal.WithLabelValues(transition).Inc()
}

func RecordAdmissionRejected(reason string) {
	BookingAdmissionRejectedTotal.WithLabelValues(reason).Inc()
}

func RecordEventPublished(eventType, status string) {
	EventsPublishedTotal.WithLabelValues(eventType, status).Inc()
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
