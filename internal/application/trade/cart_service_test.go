package trade

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) Create(ctx context.Context, entry *trade.CartEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockCartRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.CartEntry, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.CartEntry), args.Error(1)
}

func (m *MockCartRepository) FindByBuyerAndListing(ctx context.Context, buyerID, listingID uuid.UUID) (*trade.CartEntry, error) {
	args := m.Called(ctx, buyerID, listingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.CartEntry), args.Error(1)
}

func (m *MockCartRepository) FindByBuyer(ctx context.Context, buyerID uuid.UUID) ([]*trade.CartEntry, error) {
	args := m.Called(ctx, buyerID)
	return args.Get(0).([]*trade.CartEntry), args.Error(1)
}

func (m *MockCartRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCartRepository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCartRepository) DeleteByListing(ctx context.Context, listingID uuid.UUID) (int64, error) {
	args := m.Called(ctx, listingID)
	return args.Get(0).(int64), args.Error(1)
}

type MockListingRepository struct {
	mock.Mock
}

func (m *MockListingRepository) Create(ctx context.Context, listing *catalog.Listing) error {
	return m.Called(ctx, listing).Error(0)
}

func (m *MockListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Listing, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Listing), args.Error(1)
}

func (m *MockListingRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Listing, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).([]*catalog.Listing), args.Error(1)
}

func (m *MockListingRepository) FindAll(ctx context.Context, filter shared.Filter) ([]*catalog.Listing, int64, error) {
	args := m.Called(ctx, filter)
	return args.Get(0).([]*catalog.Listing), args.Get(1).(int64), args.Error(2)
}

func (m *MockListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...shared.DomainEvent) error {
	return m.Called(ctx, events).Error(0)
}

type staticURLs struct{}

func (staticURLs) URL(ref string) string { return "/static/" + ref }

type cartFixture struct {
	service   *CartService
	carts     *MockCartRepository
	listings  *MockListingRepository
	publisher *MockEventPublisher
}

func newCartFixture() *cartFixture {
	f := &cartFixture{
		carts:     new(MockCartRepository),
		listings:  new(MockListingRepository),
		publisher: new(MockEventPublisher),
	}
	f.service = NewCartService(f.carts, f.listings, NewNoOpTransactionScope(f.carts, f.listings),
		staticURLs{}, f.publisher, zap.NewNop())
	return f
}

func listingFor(t *testing.T, owner uuid.UUID, name, price string) *catalog.Listing {
	t.Helper()
	l, err := catalog.NewListing(owner, name, "used", decimal.RequireFromString(price))
	require.NoError(t, err)
	l.ClearDomainEvents()
	return l
}

func entryFor(t *testing.T, buyer uuid.UUID, l *catalog.Listing) *trade.CartEntry {
	t.Helper()
	e, err := trade.NewCartEntry(buyer, l.ID, l.OwnerID)
	require.NoError(t, err)
	return e
}

func TestCartService_AddToCart(t *testing.T) {
	ctx := context.Background()
	buyer := uuid.New()

	t.Run("adds new entry", func(t *testing.T) {
		f := newCartFixture()
		listing := listingFor(t, uuid.New(), "Lamp", "8")
		f.listings.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.carts.On("FindByBuyerAndListing", ctx, buyer, listing.ID).Return(nil, shared.NewNotFoundError("Cart entry"))
		f.carts.On("Create", ctx, mock.AnythingOfType("*trade.CartEntry")).Return(nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == trade.EventTypeCartEntryAdded
		})).Return(nil)

		result, err := f.service.AddToCart(ctx, buyer, listing.ID)

		require.NoError(t, err)
		assert.False(t, result.AlreadyInCart)
		assert.Equal(t, listing.ID, result.Entry.ListingID)
		assert.Equal(t, buyer, result.Entry.BuyerID)
		f.publisher.AssertExpectations(t)
	})

	t.Run("duplicate add returns existing entry", func(t *testing.T) {
		f := newCartFixture()
		listing := listingFor(t, uuid.New(), "Lamp", "8")
		existing := entryFor(t, buyer, listing)
		f.listings.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.carts.On("FindByBuyerAndListing", ctx, buyer, listing.ID).Return(existing, nil)

		result, err := f.service.AddToCart(ctx, buyer, listing.ID)

		require.NoError(t, err)
		assert.True(t, result.AlreadyInCart)
		assert.Equal(t, existing.ID, result.Entry.ID)
		f.carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("concurrent duplicate insert is deduplicated", func(t *testing.T) {
		f := newCartFixture()
		listing := listingFor(t, uuid.New(), "Lamp", "8")
		winner := entryFor(t, buyer, listing)
		f.listings.On("FindByID", ctx, listing.ID).Return(listing, nil)
		f.carts.On("FindByBuyerAndListing", ctx, buyer, listing.ID).Return(nil, shared.NewNotFoundError("Cart entry")).Once()
		f.carts.On("Create", ctx, mock.Anything).Return(shared.NewDuplicateError("Listing is already in the cart"))
		f.carts.On("FindByBuyerAndListing", ctx, buyer, listing.ID).Return(winner, nil).Once()

		result, err := f.service.AddToCart(ctx, buyer, listing.ID)

		require.NoError(t, err)
		assert.True(t, result.AlreadyInCart)
		assert.Equal(t, winner.ID, result.Entry.ID)
	})

	t.Run("own listing is rejected", func(t *testing.T) {
		f := newCartFixture()
		listing := listingFor(t, buyer, "Lamp", "8")
		f.listings.On("FindByID", ctx, listing.ID).Return(listing, nil)

		_, err := f.service.AddToCart(ctx, buyer, listing.ID)

		assert.ErrorIs(t, err, shared.ErrSelfPurchaseForbidden)
		f.carts.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("missing listing", func(t *testing.T) {
		f := newCartFixture()
		id := uuid.New()
		f.listings.On("FindByID", ctx, id).Return(nil, shared.NewNotFoundError("Listing"))

		_, err := f.service.AddToCart(ctx, buyer, id)

		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestCartService_Remove(t *testing.T) {
	ctx := context.Background()
	buyer := uuid.New()
	listing := listingFor(t, uuid.New(), "Lamp", "8")
	entry := entryFor(t, buyer, listing)

	t.Run("owner of cart removes entry", func(t *testing.T) {
		f := newCartFixture()
		f.carts.On("FindByID", ctx, entry.ID).Return(entry, nil)
		f.carts.On("Delete", ctx, entry.ID).Return(nil)

		require.NoError(t, f.service.Remove(ctx, entry.ID, buyer))
		f.carts.AssertExpectations(t)
	})

	t.Run("another account is forbidden", func(t *testing.T) {
		f := newCartFixture()
		f.carts.On("FindByID", ctx, entry.ID).Return(entry, nil)

		err := f.service.Remove(ctx, entry.ID, uuid.New())

		assert.ErrorIs(t, err, shared.ErrForbidden)
		f.carts.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestCartService_View(t *testing.T) {
	ctx := context.Background()
	f := newCartFixture()
	buyer := uuid.New()
	lamp := listingFor(t, uuid.New(), "Lamp", "8.50")
	desk := listingFor(t, uuid.New(), "Desk", "30")
	e1 := entryFor(t, buyer, desk)
	e2 := entryFor(t, buyer, lamp)
	e1.AddedAt = e2.AddedAt.Add(time.Second)

	f.carts.On("FindByBuyer", ctx, buyer).Return([]*trade.CartEntry{e1, e2}, nil)
	f.listings.On("FindByIDs", ctx, []uuid.UUID{desk.ID, lamp.ID}).Return([]*catalog.Listing{lamp, desk}, nil)

	cart, err := f.service.View(ctx, buyer)

	require.NoError(t, err)
	require.Len(t, cart.Items, 2)
	assert.Equal(t, "Desk", cart.Items[0].Name)
	assert.Equal(t, "/static/default.jpg", cart.Items[0].ImageURL)
	assert.Equal(t, 2, cart.ItemCount)
	assert.True(t, decimal.RequireFromString("38.50").Equal(cart.Total))
}

func TestCartService_Checkout(t *testing.T) {
	ctx := context.Background()
	buyer := uuid.New()

	t.Run("empties cart and reports total", func(t *testing.T) {
		f := newCartFixture()
		a := listingFor(t, uuid.New(), "Lamp", "8.25")
		b := listingFor(t, uuid.New(), "Desk", "30")
		ea := entryFor(t, buyer, a)
		eb := entryFor(t, buyer, b)
		f.carts.On("FindByBuyer", ctx, buyer).Return([]*trade.CartEntry{ea, eb}, nil)
		f.listings.On("FindByIDs", ctx, []uuid.UUID{a.ID, b.ID}).Return([]*catalog.Listing{a, b}, nil)
		f.carts.On("DeleteByIDs", ctx, []uuid.UUID{ea.ID, eb.ID}).Return(int64(2), nil)
		f.publisher.On("Publish", ctx, mock.MatchedBy(func(events []shared.DomainEvent) bool {
			return len(events) == 1 && events[0].EventType() == trade.EventTypeCheckoutCompleted
		})).Return(nil)

		result, err := f.service.Checkout(ctx, buyer)

		require.NoError(t, err)
		assert.Equal(t, 2, result.ItemCount)
		assert.True(t, decimal.RequireFromString("38.25").Equal(result.Total))
		assert.ElementsMatch(t, []uuid.UUID{a.ID, b.ID}, result.ListingIDs)
		f.carts.AssertExpectations(t)
		f.publisher.AssertExpectations(t)
	})

	t.Run("empty cart", func(t *testing.T) {
		f := newCartFixture()
		f.carts.On("FindByBuyer", ctx, buyer).Return([]*trade.CartEntry{}, nil)

		_, err := f.service.Checkout(ctx, buyer)

		assert.ErrorIs(t, err, shared.ErrEmptyCart)
		f.carts.AssertNotCalled(t, "DeleteByIDs", mock.Anything, mock.Anything)
		f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
	})

	t.Run("concurrent change aborts", func(t *testing.T) {
		f := newCartFixture()
		a := listingFor(t, uuid.New(), "Lamp", "8")
		ea := entryFor(t, buyer, a)
		f.carts.On("FindByBuyer", ctx, buyer).Return([]*trade.CartEntry{ea}, nil)
		f.listings.On("FindByIDs", ctx, []uuid.UUID{a.ID}).Return([]*catalog.Listing{a}, nil)
		f.carts.On("DeleteByIDs", ctx, []uuid.UUID{ea.ID}).Return(int64(0), nil)

		_, err := f.service.Checkout(ctx, buyer)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
	})

	t.Run("repository failure", func(t *testing.T) {
		f := newCartFixture()
		f.carts.On("FindByBuyer", ctx, buyer).Return([]*trade.CartEntry(nil), errors.New("timeout"))

		_, err := f.service.Checkout(ctx, buyer)

		require.Error(t, err)
	})
}
