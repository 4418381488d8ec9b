package telemetry

import (
	"context"
	"testing"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusinessMetrics_Checkout(t *testing.T) {
	bm := NewBusinessMetrics(NewMetrics())
	evt := trade.NewCheckoutCompletedEvent(uuid.New(), []uuid.UUID{uuid.New(), uuid.New()}, decimal.RequireFromString("35.50"))

	require.NoError(t, bm.Handle(context.Background(), evt))

	assert.Equal(t, 1.0, testutil.ToFloat64(bm.checkoutsTotal))
	assert.Equal(t, 2.0, testutil.ToFloat64(bm.checkoutItemsTotal))
	assert.InDelta(t, 35.5, testutil.ToFloat64(bm.checkoutAmount), 1e-9)
	assert.Equal(t, 1.0, testutil.ToFloat64(bm.eventsTotal.WithLabelValues(trade.EventTypeCheckoutCompleted)))
}

func TestBusinessMetrics_ListingGauge(t *testing.T) {
	bm := NewBusinessMetrics(NewMetrics())
	listing := &catalog.Listing{Name: "bike"}
	listing.ID = uuid.New()
	listing.OwnerID = uuid.New()

	ctx := context.Background()
	require.NoError(t, bm.Handle(ctx, catalog.NewListingPostedEvent(listing)))
	require.NoError(t, bm.Handle(ctx, catalog.NewListingPostedEvent(listing)))
	require.NoError(t, bm.Handle(ctx, catalog.NewListingRemovedEvent(listing, listing.OwnerID)))

	assert.Equal(t, 1.0, testutil.ToFloat64(bm.listingsActive))
	assert.Equal(t, 2.0, testutil.ToFloat64(bm.eventsTotal.WithLabelValues(catalog.EventTypeListingPosted)))
	assert.Nil(t, bm.EventTypes())
}
