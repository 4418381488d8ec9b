package trade

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/domain/trade"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ImageURLResolver turns stored image references into public URLs
type ImageURLResolver interface {
	URL(ref string) string
}

// CartService manages buyers' carts and checkout
type CartService struct {
	cartRepo    trade.CartRepository
	listingRepo catalog.ListingRepository
	txScope     TransactionScope
	images      ImageURLResolver
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewCartService creates a new CartService. images and publisher may be nil.
func NewCartService(
	cartRepo trade.CartRepository,
	listingRepo catalog.ListingRepository,
	txScope TransactionScope,
	images ImageURLResolver,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *CartService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CartService{
		cartRepo:    cartRepo,
		listingRepo: listingRepo,
		txScope:     txScope,
		images:      images,
		publisher:   publisher,
		logger:      logger,
	}
}

// AddToCart puts a listing in the buyer's cart. Adding a listing that is
// already there returns the existing entry with AlreadyInCart set.
func (s *CartService) AddToCart(ctx context.Context, buyer, listingID uuid.UUID) (*AddToCartResult, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	entry, err := trade.NewCartEntry(buyer, listing.ID, listing.OwnerID)
	if err != nil {
		return nil, err
	}

	existing, err := s.cartRepo.FindByBuyerAndListing(ctx, buyer, listingID)
	switch {
	case err == nil:
		return &AddToCartResult{Entry: ToCartEntryResponse(existing), AlreadyInCart: true}, nil
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if err := s.cartRepo.Create(ctx, entry); err != nil {
		if !errors.Is(err, shared.ErrAlreadyExists) {
			return nil, err
		}
		// lost a race with a concurrent add of the same listing
		existing, findErr := s.cartRepo.FindByBuyerAndListing(ctx, buyer, listingID)
		if findErr != nil {
			return nil, findErr
		}
		return &AddToCartResult{Entry: ToCartEntryResponse(existing), AlreadyInCart: true}, nil
	}

	s.logger.Info("listing added to cart",
		zap.String("buyer_id", buyer.String()),
		zap.String("listing_id", listingID.String()),
	)
	s.publish(ctx, trade.NewCartEntryAddedEvent(entry))

	return &AddToCartResult{Entry: ToCartEntryResponse(entry)}, nil
}

// Remove deletes one entry from the requester's cart
func (s *CartService) Remove(ctx context.Context, entryID, requester uuid.UUID) error {
	entry, err := s.cartRepo.FindByID(ctx, entryID)
	if err != nil {
		return err
	}
	if err := entry.EnsureRemovableBy(requester); err != nil {
		return err
	}
	return s.cartRepo.Delete(ctx, entryID)
}

// View returns the buyer's cart, newest entries first, with its total
func (s *CartService) View(ctx context.Context, buyer uuid.UUID) (*CartResponse, error) {
	cart, err := loadCart(ctx, s.cartRepo, s.listingRepo, buyer)
	if err != nil {
		return nil, err
	}

	items := make([]CartLineResponse, len(cart.Lines))
	for i, line := range cart.Lines {
		items[i] = CartLineResponse{
			EntryID:   line.EntryID,
			ListingID: line.ListingID,
			Name:      line.Name,
			Image:     line.Image,
			ImageURL:  s.imageURL(line.Image),
			Price:     line.Price,
			AddedAt:   line.AddedAt,
		}
	}
	return &CartResponse{
		Items:     items,
		ItemCount: cart.ItemCount(),
		Total:     cart.Total(),
	}, nil
}

// Checkout empties the buyer's cart in one transaction and reports the total.
// An empty cart fails with ErrEmptyCart and changes nothing.
func (s *CartService) Checkout(ctx context.Context, buyer uuid.UUID) (*CheckoutResult, error) {
	var completed *trade.CheckoutCompletedEvent

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		cart, err := loadCart(ctx, repos.CartRepo(), repos.ListingRepo(), buyer)
		if err != nil {
			return err
		}
		evt, err := cart.Checkout()
		if err != nil {
			return err
		}

		removed, err := repos.CartRepo().DeleteByIDs(ctx, cart.EntryIDs())
		if err != nil {
			return fmt.Errorf("clear cart: %w", err)
		}
		if removed != int64(cart.ItemCount()) {
			return shared.NewDomainError(shared.CodeInvalidState, "Cart changed during checkout, please try again")
		}
		completed = evt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("checkout completed",
		zap.String("buyer_id", buyer.String()),
		zap.Int("items", len(completed.ListingIDs)),
		zap.String("total", completed.Total.StringFixed(2)),
	)
	s.publish(ctx, completed)

	return &CheckoutResult{
		ItemCount:  len(completed.ListingIDs),
		Total:      completed.Total,
		ListingIDs: completed.ListingIDs,
	}, nil
}

func (s *CartService) imageURL(ref string) string {
	if s.images == nil {
		return ""
	}
	return s.images.URL(ref)
}

func (s *CartService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish cart events", zap.Error(err))
	}
}

// loadCart joins the buyer's entries with their listings. Entries whose
// listing no longer exists are left out.
func loadCart(ctx context.Context, cartRepo trade.CartRepository, listingRepo catalog.ListingRepository, buyer uuid.UUID) (*trade.Cart, error) {
	entries, err := cartRepo.FindByBuyer(ctx, buyer)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return trade.NewCart(buyer, nil), nil
	}

	ids := make([]uuid.UUID, len(entries))
	for i, e := range entries {
		ids[i] = e.ListingID
	}
	listings, err := listingRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]*catalog.Listing, len(listings))
	for _, l := range listings {
		byID[l.ID] = l
	}

	lines := make([]trade.CartLine, 0, len(entries))
	for _, e := range entries {
		l, ok := byID[e.ListingID]
		if !ok {
			continue
		}
		lines = append(lines, trade.CartLine{
			EntryID:   e.ID,
			ListingID: l.ID,
			Name:      l.Name,
			Image:     l.Image,
			Price:     l.Price,
			AddedAt:   e.AddedAt,
		})
	}
	return trade.NewCart(buyer, lines), nil
}
