package telemetry

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSlowQueryThreshold marks queries counted as slow
const DefaultSlowQueryThreshold = 200 * time.Millisecond

// DBMetrics holds the query instruments fed by DBMetricsPlugin
type DBMetrics struct {
	queryTotal     *prometheus.CounterVec
	queryDuration  *prometheus.HistogramVec
	slowQueryTotal *prometheus.CounterVec
	slowThreshold  time.Duration
}

func newDBMetrics(slowThreshold time.Duration) *DBMetrics {
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowQueryThreshold
	}
	return &DBMetrics{
		queryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "db",
			Name:      "queries_total",
			Help:      "Total number of database statements by operation and outcome",
		}, []string{"operation", "table", "outcome"}),
		queryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "db",
			Name:      "query_duration_seconds",
			Help:      "Database statement latency in seconds",
			Buckets:   DBDurationBuckets,
		}, []string{"operation"}),
		slowQueryTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "db",
			Name:      "slow_queries_total",
			Help:      "Database statements slower than the configured threshold",
		}, []string{"table"}),
		slowThreshold: slowThreshold,
	}
}

// RecordQuery records one finished statement
func (m *DBMetrics) RecordQuery(operation, table string, duration time.Duration, err error) {
	operation = strings.ToUpper(operation)
	if operation == "" {
		operation = "UNKNOWN"
	}
	if table == "" {
		table = "unknown"
	}
	outcome := "ok"
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		outcome = "error"
	}

	m.queryTotal.WithLabelValues(operation, table, outcome).Inc()
	m.queryDuration.WithLabelValues(operation).Observe(duration.Seconds())
	if duration > m.slowThreshold {
		m.slowQueryTotal.WithLabelValues(table).Inc()
	}
}

// DBMetricsPlugin is a GORM plugin timing every statement
type DBMetricsPlugin struct {
	metrics *DBMetrics
}

// Name returns the plugin name
func (p *DBMetricsPlugin) Name() string {
	return "market:db_metrics"
}

// Initialize registers the before/after callbacks
func (p *DBMetricsPlugin) Initialize(db *gorm.DB) error {
	cb := db.Callback()
	steps := []func() error{
		func() error { return cb.Create().Before("gorm:create").Register("db_metrics:before_create", p.before) },
		func() error { return cb.Query().Before("gorm:query").Register("db_metrics:before_query", p.before) },
		func() error { return cb.Update().Before("gorm:update").Register("db_metrics:before_update", p.before) },
		func() error { return cb.Delete().Before("gorm:delete").Register("db_metrics:before_delete", p.before) },
		func() error { return cb.Row().Before("gorm:row").Register("db_metrics:before_row", p.before) },
		func() error { return cb.Raw().Before("gorm:raw").Register("db_metrics:before_raw", p.before) },
		func() error {
			return cb.Create().After("gorm:create").Register("db_metrics:after_create", p.after("INSERT"))
		},
		func() error {
			return cb.Query().After("gorm:query").Register("db_metrics:after_query", p.after("SELECT"))
		},
		func() error {
			return cb.Update().After("gorm:update").Register("db_metrics:after_update", p.after("UPDATE"))
		},
		func() error {
			return cb.Delete().After("gorm:delete").Register("db_metrics:after_delete", p.after("DELETE"))
		},
		func() error { return cb.Row().After("gorm:row").Register("db_metrics:after_row", p.after("")) },
		func() error { return cb.Raw().After("gorm:raw").Register("db_metrics:after_raw", p.after("")) },
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

type dbMetricsContextKey struct{}

func (p *DBMetricsPlugin) before(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		ctx = context.Background()
	}
	db.Statement.Context = context.WithValue(ctx, dbMetricsContextKey{}, time.Now())
}

// after returns a callback recording the statement. An empty operation is
// detected from the rendered SQL.
func (p *DBMetricsPlugin) after(operation string) func(*gorm.DB) {
	return func(db *gorm.DB) {
		var duration time.Duration
		if ctx := db.Statement.Context; ctx != nil {
			if start, ok := ctx.Value(dbMetricsContextKey{}).(time.Time); ok {
				duration = time.Since(start)
			}
		}
		op := operation
		if op == "" {
			op = detectOperationType(db.Statement.SQL.String())
		}
		p.metrics.RecordQuery(op, db.Statement.Table, duration, db.Error)
	}
}

func detectOperationType(sql string) string {
	sql = strings.ToUpper(strings.TrimSpace(sql))
	for _, op := range []string{"SELECT", "INSERT", "UPDATE", "DELETE"} {
		if strings.HasPrefix(sql, op) {
			return op
		}
	}
	return "OTHER"
}

// RegisterDBMetrics installs the query plugin on db and exports connection
// pool statistics through the standard DBStats collector.
func RegisterDBMetrics(m *Metrics, db *gorm.DB, dbName string, slowThreshold time.Duration, logger *zap.Logger) (*DBMetrics, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	dbm := newDBMetrics(slowThreshold)
	if err := m.registry.Register(collectors.NewDBStatsCollector(sqlDB, dbName)); err != nil {
		return nil, err
	}
	m.registry.MustRegister(dbm.queryTotal, dbm.queryDuration, dbm.slowQueryTotal)

	if err := db.Use(&DBMetricsPlugin{metrics: dbm}); err != nil {
		return nil, err
	}

	logger.Info("database metrics registered",
		zap.String("db_name", dbName),
		zap.Duration("slow_query_threshold", dbm.slowThreshold),
	)
	return dbm, nil
}
