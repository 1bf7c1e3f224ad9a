package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Метрики бэкенда записи на звонки
var (
	// HTTP метрики
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_http_requests_total",
			Help: "Общее количество HTTP запросов",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "booking_http_request_duration_seconds",
			Help:    "Время обработки HTTP запросов в секундах",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Метрики слотов
	SlotsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_slots_created_total",
			Help: "Общее количество созданных слотов",
		},
	)

	AvailableSlots = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_available_slots",
			Help: "Количество доступных будущих слотов",
		},
	)

	// Метрики бронирований
	BookingsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_bookings_created_total",
			Help: "Общее количество созданных заявок",
		},
	)

	PendingBookings = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "booking_pending_bookings",
			Help: "Количество заявок, ожидающих решения",
		},
	)

	BookingDecisions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_decisions_total",
			Help: "Количество решений по заявкам",
		},
		[]string{"action"},
	)

	// Решения по несуществующим заявкам: поведение для Telegram — no-op,
	// но сигнал нужен, чтобы отличить повторные нажатия от багов.
	UnknownBookingDecisions = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_decisions_unknown_total",
			Help: "Количество решений по несуществующим заявкам",
		},
	)

	// Метрики уведомлений
	NotificationsSent = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_notifications_sent_total",
			Help: "Общее количество отправленных уведомлений",
		},
		[]string{"type", "status"},
	)
)
