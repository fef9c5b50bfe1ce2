package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics набор метрик сервиса.
// Все методы записи безопасны для nil-получателя: если метрики выключены, вызовы ничего не делают.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration    *prometheus.HistogramVec
	DBQueryErrorsTotal *prometheus.CounterVec
	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec

	BookingsCreatedTotal    *prometheus.CounterVec
	BookingTransitionsTotal *prometheus.CounterVec
	SlotConflictsTotal      *prometheus.CounterVec
	SlotCacheRequestsTotal  *prometheus.CounterVec
}

// New регистрирует метрики в стандартном реестре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в указанном реестре (для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	constLabels := prometheus.Labels{"service": serviceName}

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"operation"}),

		DBQueryErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Total number of failed database queries",
			ConstLabels: constLabels,
		}, []string{"operation"}),

		DBOpenConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBInUseConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBIdleConnections: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),

		DBWaitCount: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),

		BookingsCreatedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "bookings_created_total",
			Help:        "Total number of created bookings by initial status",
			ConstLabels: constLabels,
		}, []string{"status"}),

		BookingTransitionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_transitions_total",
			Help:        "Total number of applied booking status transitions",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		SlotConflictsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_slot_conflicts_total",
			Help:        "Total number of booking attempts rejected because the slot was taken",
			ConstLabels: constLabels,
		}, []string{"reason"}),

		SlotCacheRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name:        "slot_cache_requests_total",
			Help:        "Slot cache lookups by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
	}
}

// RecordHTTPRequest записывает метрики HTTP запроса
func (m *Metrics) RecordHTTPRequest(method, route, status string, seconds float64) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, status).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(seconds)
}

// RecordDBQuery записывает длительность запроса к БД
func (m *Metrics) RecordDBQuery(operation string, seconds float64, err error) {
	if m == nil {
		return
	}
	m.DBQueryDuration.WithLabelValues(operation).Observe(seconds)
	if err != nil {
		m.DBQueryErrorsTotal.WithLabelValues(operation).Inc()
	}
}

// RecordBookingCreated увеличивает счетчик созданных бронирований
func (m *Metrics) RecordBookingCreated(status string) {
	if m == nil {
		return
	}
	m.BookingsCreatedTotal.WithLabelValues(status).Inc()
}

// RecordBookingTransition увеличивает счетчик переходов статусов
func (m *Metrics) RecordBookingTransition(from, to string) {
	if m == nil {
		return
	}
	m.BookingTransitionsTotal.WithLabelValues(from, to).Inc()
}

// RecordSlotConflict увеличивает счетчик отказов из-за занятого слота
func (m *Metrics) RecordSlotConflict(reason string) {
	if m == nil {
		return
	}
	m.SlotConflictsTotal.WithLabelValues(reason).Inc()
}

// RecordSlotCache записывает результат обращения к кэшу слотов (hit, miss, error, stale)
func (m *Metrics) RecordSlotCache(result string) {
	if m == nil {
		return
	}
	m.SlotCacheRequestsTotal.WithLabelValues(result).Inc()
}
