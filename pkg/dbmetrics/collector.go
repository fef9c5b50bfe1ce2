package dbmetrics

import (
	"database/sql"
	"time"

	"github.com/m04kA/SMC-ArtistScheduling/pkg/metrics"
)

// StatsCollector периодически снимает статистику пула соединений
type StatsCollector struct {
	db       *sql.DB
	metrics  *metrics.Metrics
	name     string
	interval time.Duration
	stop     chan struct{}
	done     chan struct{}
}

// NewStatsCollector создает коллектор. interval <= 0 означает 15 секунд.
func NewStatsCollector(db *sql.DB, m *metrics.Metrics, name string, interval time.Duration) *StatsCollector {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &StatsCollector{
		db:       db,
		metrics:  m,
		name:     name,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Start запускает сбор в отдельной горутине
func (c *StatsCollector) Start() {
	go func() {
		defer close(c.done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		c.collect()
		for {
			select {
			case <-ticker.C:
				c.collect()
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop останавливает сбор и ждет завершения горутины
func (c *StatsCollector) Stop() {
	close(c.stop)
	<-c.done
}

func (c *StatsCollector) collect() {
	if c.metrics == nil {
		return
	}
	stats := c.db.Stats()
	c.metrics.DBOpenConnections.WithLabelValues(c.name).Set(float64(stats.OpenConnections))
	c.metrics.DBInUseConnections.WithLabelValues(c.name).Set(float64(stats.InUse))
	c.metrics.DBIdleConnections.WithLabelValues(c.name).Set(float64(stats.Idle))
	c.metrics.DBWaitCount.WithLabelValues(c.name).Set(float64(stats.WaitCount))
}
