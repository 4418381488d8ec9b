package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusmarket/backend/internal/domain/catalog"
	"github.com/campusmarket/backend/internal/domain/identity"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultMaxImageSize bounds uploaded listing images
const DefaultMaxImageSize int64 = 5 << 20

// ListingServiceConfig tunes ListingService
type ListingServiceConfig struct {
	MaxImageSize int64
}

// ListingService handles posting, browsing and removing listings
type ListingService struct {
	listingRepo  catalog.ListingRepository
	commentRepo  catalog.CommentRepository
	accountRepo  identity.AccountRepository
	txScope      TransactionScope
	images       ImageStorage
	publisher    shared.EventPublisher
	maxImageSize int64
	logger       *zap.Logger
}

// NewListingService creates a new ListingService. publisher may be nil.
func NewListingService(
	listingRepo catalog.ListingRepository,
	commentRepo catalog.CommentRepository,
	accountRepo identity.AccountRepository,
	txScope TransactionScope,
	images ImageStorage,
	publisher shared.EventPublisher,
	cfg ListingServiceConfig,
	logger *zap.Logger,
) *ListingService {
	if cfg.MaxImageSize <= 0 {
		cfg.MaxImageSize = DefaultMaxImageSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{
		listingRepo:  listingRepo,
		commentRepo:  commentRepo,
		accountRepo:  accountRepo,
		txScope:      txScope,
		images:       images,
		publisher:    publisher,
		maxImageSize: cfg.MaxImageSize,
		logger:       logger,
	}
}

// Create posts a new listing owned by owner. The image is optional; when
// present it must be a jpg or png no larger than the configured limit.
func (s *ListingService) Create(ctx context.Context, owner uuid.UUID, req CreateListingRequest, image *ImageUpload) (*ListingResponse, error) {
	price, err := parsePrice(req.Price)
	if err != nil {
		return nil, err
	}

	listing, err := catalog.NewListing(owner, req.Name, req.Description, price)
	if err != nil {
		return nil, err
	}

	var storedImage string
	if image != nil && image.Content != nil {
		storedImage, err = s.storeImage(ctx, image)
		if err != nil {
			return nil, err
		}
		if err := listing.SetImage(storedImage); err != nil {
			s.discardImage(ctx, storedImage)
			return nil, err
		}
	}

	if err := s.listingRepo.Create(ctx, listing); err != nil {
		if storedImage != "" {
			s.discardImage(ctx, storedImage)
		}
		return nil, err
	}

	s.logger.Info("listing posted",
		zap.String("listing_id", listing.ID.String()),
		zap.String("owner_id", owner.String()),
		zap.String("price", listing.Price.StringFixed(2)),
	)
	s.publish(ctx, listing.GetDomainEvents()...)
	listing.ClearDomainEvents()

	names := usernames(ctx, s.accountRepo, s.logger, []uuid.UUID{owner})
	resp := ToListingResponse(listing, names[owner], s.images.URL(listing.Image))
	return &resp, nil
}

// Delete removes a listing together with its comments and cart entries.
// Only the owner may delete; the stored image is removed best-effort afterwards.
func (s *ListingService) Delete(ctx context.Context, listingID, requester uuid.UUID) error {
	var removed *catalog.Listing
	var comments, cartEntries int64

	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		listing, err := repos.ListingRepo().FindByID(ctx, listingID)
		if err != nil {
			return err
		}
		if err := listing.Remove(requester); err != nil {
			return err
		}

		if comments, err = repos.CommentRepo().DeleteByListing(ctx, listingID); err != nil {
			return fmt.Errorf("delete comments: %w", err)
		}
		if cartEntries, err = repos.CartRepo().DeleteByListing(ctx, listingID); err != nil {
			return fmt.Errorf("delete cart entries: %w", err)
		}
		if err := repos.ListingRepo().Delete(ctx, listingID); err != nil {
			return err
		}
		removed = listing
		return nil
	})
	if err != nil {
		return err
	}

	if removed.HasCustomImage() {
		s.discardImage(ctx, removed.Image)
	}

	s.logger.Info("listing removed",
		zap.String("listing_id", listingID.String()),
		zap.Int64("comments_removed", comments),
		zap.Int64("cart_entries_removed", cartEntries),
	)
	s.publish(ctx, removed.GetDomainEvents()...)
	removed.ClearDomainEvents()
	return nil
}

// List returns one page of listings, newest first
func (s *ListingService) List(ctx context.Context, req ListListingsRequest) (*shared.Paginated[ListingResponse], error) {
	filter := shared.Filter{Page: req.Page, PageSize: req.PageSize}.Normalize()

	listings, total, err := s.listingRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	owners := make([]uuid.UUID, 0, len(listings))
	for _, l := range listings {
		owners = append(owners, l.OwnerID)
	}
	names := usernames(ctx, s.accountRepo, s.logger, owners)

	items := make([]ListingResponse, len(listings))
	for i, l := range listings {
		items[i] = ToListingResponse(l, names[l.OwnerID], s.images.URL(l.Image))
	}
	page := shared.NewPaginated(items, total, filter.Page, filter.PageSize)
	return &page, nil
}

// Get returns a listing with its comments, newest first
func (s *ListingService) Get(ctx context.Context, listingID uuid.UUID) (*ListingDetailResponse, error) {
	listing, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}
	comments, err := s.commentRepo.FindByListing(ctx, listingID)
	if err != nil {
		return nil, err
	}

	ids := []uuid.UUID{listing.OwnerID}
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	names := usernames(ctx, s.accountRepo, s.logger, ids)

	detail := &ListingDetailResponse{
		ListingResponse: ToListingResponse(listing, names[listing.OwnerID], s.images.URL(listing.Image)),
		Comments:        make([]CommentResponse, len(comments)),
	}
	for i, c := range comments {
		detail.Comments[i] = ToCommentResponse(c, names[c.AuthorID])
	}
	return detail, nil
}

func (s *ListingService) storeImage(ctx context.Context, image *ImageUpload) (string, error) {
	ext, err := catalog.ImageExtension(image.Filename)
	if err != nil {
		return "", err
	}
	if image.Size > s.maxImageSize {
		return "", shared.NewValidationError(fmt.Sprintf("Image cannot exceed %d bytes", s.maxImageSize))
	}
	ref, err := s.images.Save(ctx, ext, image.Content, s.maxImageSize)
	if err != nil {
		return "", fmt.Errorf("store image: %w", err)
	}
	return ref, nil
}

func (s *ListingService) discardImage(ctx context.Context, ref string) {
	if err := s.images.Delete(ctx, ref); err != nil {
		s.logger.Warn("failed to delete listing image", zap.String("image", ref), zap.Error(err))
	}
}

func (s *ListingService) publish(ctx context.Context, events ...shared.DomainEvent) {
	publish(ctx, s.publisher, s.logger, events...)
}

// parsePrice accepts a plain decimal such as "12" or "12.50"
func parsePrice(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, shared.NewValidationError("Price is required")
	}
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, shared.NewValidationError("Price must be a number")
	}
	return price, nil
}

// usernames resolves account IDs to usernames. Lookup failures leave names blank.
func usernames(ctx context.Context, repo identity.AccountRepository, logger *zap.Logger, ids []uuid.UUID) map[uuid.UUID]string {
	names := make(map[uuid.UUID]string, len(ids))
	if repo == nil || len(ids) == 0 {
		return names
	}

	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	accounts, err := repo.FindByIDs(ctx, unique)
	if err != nil {
		logger.Warn("failed to resolve usernames", zap.Error(err))
		return names
	}
	for _, a := range accounts {
		names[a.ID] = a.Username
	}
	return names
}

func publish(ctx context.Context, publisher shared.EventPublisher, logger *zap.Logger, events ...shared.DomainEvent) {
	if publisher == nil || len(events) == 0 {
		return
	}
	if err := publisher.Publish(ctx, events...); err != nil {
		logger.Warn("failed to publish catalog events", zap.Error(err))
	}
}
