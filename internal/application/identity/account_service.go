package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campusmarket/backend/internal/domain/identity"
	"github.com/campusmarket/backend/internal/domain/shared"
	"github.com/campusmarket/backend/internal/infrastructure/auth"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AccountService handles registration, authentication and logout
type AccountService struct {
	accountRepo identity.AccountRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	publisher   shared.EventPublisher
	logger      *zap.Logger
}

// NewAccountService creates a new AccountService. publisher may be nil.
func NewAccountService(
	accountRepo identity.AccountRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *AccountService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AccountService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		publisher:   publisher,
		logger:      logger,
	}
}

// Register creates a new account. Username (case-insensitive) and email must be unused.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (*AccountDTO, error) {
	if input.Password != input.ConfirmPassword {
		return nil, shared.NewValidationError("Passwords do not match")
	}

	account, err := identity.NewAccount(input.Username, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	taken, err := s.accountRepo.ExistsByUsername(ctx, account.Username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, shared.NewDuplicateError("Username is already taken")
	}

	taken, err = s.accountRepo.ExistsByEmail(ctx, account.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, shared.NewDuplicateError("Email is already registered")
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}

	s.logger.Info("account registered",
		zap.String("account_id", account.ID.String()),
		zap.String("username", account.Username),
	)
	s.publish(ctx, account.GetDomainEvents()...)
	account.ClearDomainEvents()

	dto := ToAccountDTO(account)
	return &dto, nil
}

// Authenticate checks the credentials and issues an access token.
// Unknown emails and wrong passwords produce the same error.
func (s *AccountService) Authenticate(ctx context.Context, input LoginInput) (*LoginResult, error) {
	email := identity.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, shared.ErrInvalidCredentials
	}

	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			s.logger.Warn("login for unknown email")
			return nil, shared.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find account: %w", err)
	}

	if !account.VerifyPassword(input.Password) {
		s.logger.Warn("invalid password attempt", zap.String("account_id", account.ID.String()))
		return nil, shared.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   account.ID,
		Username: account.Username,
		Email:    account.Email,
	})
	if err != nil {
		return nil, fmt.Errorf("issue access token: %w", err)
	}

	account.RecordLogin()
	if err := s.accountRepo.Update(ctx, account); err != nil {
		// a failed bookkeeping write does not fail the login
		s.logger.Error("failed to record login", zap.String("account_id", account.ID.String()), zap.Error(err))
	}

	s.publish(ctx, identity.NewAccountAuthenticatedEvent(account))
	s.logger.Info("account logged in", zap.String("account_id", account.ID.String()))

	return &LoginResult{
		AccessToken: token.Token,
		TokenID:     token.JTI,
		TokenType:   token.TokenType,
		ExpiresAt:   token.ExpiresAt,
		Account:     ToAccountDTO(account),
	}, nil
}

// Logout revokes the token until it would have expired anyway.
// Logging out without a token is a no-op.
func (s *AccountService) Logout(ctx context.Context, input LogoutInput) error {
	if input.TokenID == "" || s.blacklist == nil {
		return nil
	}
	ttl := time.Until(input.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	if err := s.blacklist.AddToBlacklist(ctx, input.TokenID, ttl); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	s.logger.Info("account logged out",
		zap.String("account_id", input.AccountID.String()),
		zap.Duration("revoked_for", ttl),
	)
	return nil
}

// GetAccount returns the account with the given ID
func (s *AccountService) GetAccount(ctx context.Context, id uuid.UUID) (*AccountDTO, error) {
	account, err := s.accountRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := ToAccountDTO(account)
	return &dto, nil
}

func (s *AccountService) publish(ctx context.Context, events ...shared.DomainEvent) {
	if s.publisher == nil || len(events) == 0 {
		return
	}
	if err := s.publisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("failed to publish account events", zap.Error(err))
	}
}
