package telemetry

import (
	"context"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/prometheus/client_golang/prometheus"
)

// BusinessMetrics counts marketplace activity. It subscribes to the event
// bus as a wildcard handler.
type BusinessMetrics struct {
	eventsTotal        *prometheus.CounterVec
	checkoutsTotal     prometheus.Counter
	checkoutItemsTotal prometheus.Counter
	checkoutAmount     prometheus.Counter
	checkoutSize       prometheus.Histogram
	listingsActive     prometheus.Gauge
}

// NewBusinessMetrics registers the domain instruments on m
func NewBusinessMetrics(m *Metrics) *BusinessMetrics {
	bm := &BusinessMetrics{
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "domain_events_total",
			Help:      "Domain events published, by event type",
		}, []string{"event_type"}),
		checkoutsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "trade",
			Name:      "checkouts_total",
			Help:      "Completed checkouts",
		}),
		checkoutItemsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "trade",
			Name:      "checkout_items_total",
			Help:      "Listings purchased through checkout",
		}),
		checkoutAmount: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: "trade",
			Name:      "checkout_amount_total",
			Help:      "Sum of checkout totals in currency units",
		}),
		checkoutSize: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Subsystem: "trade",
			Name:      "checkout_items",
			Help:      "Number of listings per checkout",
			Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
		}),
		listingsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: "catalog",
			Name:      "listings_posted_net",
			Help:      "Listings posted minus listings removed since process start",
		}),
	}
	m.registry.MustRegister(
		bm.eventsTotal,
		bm.checkoutsTotal,
		bm.checkoutItemsTotal,
		bm.checkoutAmount,
		bm.checkoutSize,
		bm.listingsActive,
	)
	return bm
}

// Handle records one domain event
func (bm *BusinessMetrics) Handle(_ context.Context, evt shared.DomainEvent) error {
	bm.eventsTotal.WithLabelValues(evt.EventType()).Inc()

	switch e := evt.(type) {
	case *trade.CheckoutCompletedEvent:
		bm.checkoutsTotal.Inc()
		bm.checkoutItemsTotal.Add(float64(len(e.ListingIDs)))
		bm.checkoutSize.Observe(float64(len(e.ListingIDs)))
		amount, _ := e.Total.Float64()
		if amount > 0 {
			bm.checkoutAmount.Add(amount)
		}
	case *catalog.ListingPostedEvent:
		bm.listingsActive.Inc()
	case *catalog.ListingRemovedEvent:
		bm.listingsActive.Dec()
	}
	return nil
}

// EventTypes returns nil so the handler receives every event
func (bm *BusinessMetrics) EventTypes() []string {
	return nil
}

var _ shared.EventHandler = (*BusinessMetrics)(nil)
