// Package auth implements wallet-signature login and session tokens.
// A caller proves control of a wallet by signing a timestamped
// challenge message; the service answers with a JWT carrying the
// wallet and its governance profile.
package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"condogov/internal/condo/models"
	"condogov/internal/platform/middleware"
	"condogov/pkg/requestcontext"

	dErrors "condogov/pkg/domain-errors"

	authstore "condogov/internal/auth/store"
)

// maxChallengeAge is how old a signed login challenge may be.
const maxChallengeAge = 30 * time.Second

// ChallengeMessage builds the message a wallet must sign to log in at
// the given unix timestamp (seconds).
func ChallengeMessage(timestamp int64) string {
	return fmt.Sprintf("Authentication to condominium. Timestamp: %d", timestamp)
}

// GovernanceReader is the read surface the login flow needs to decide
// a wallet's profile.
type GovernanceReader interface {
	Manager(ctx context.Context) (models.Address, error)
	GetResident(ctx context.Context, wallet models.Address) (models.Resident, error)
}

// Service authenticates wallets and manages session revocation.
type Service struct {
	governance  GovernanceReader
	tokens      *JWTService
	revocations authstore.RevocationStore
	lockouts    authstore.LockoutStore
	tokenTTL    time.Duration
	logger      *slog.Logger
}

func NewService(governance GovernanceReader, tokens *JWTService, revocations authstore.RevocationStore, tokenTTL time.Duration, logger *slog.Logger) *Service {
	return &Service{
		governance:  governance,
		tokens:      tokens,
		revocations: revocations,
		lockouts:    authstore.NewMemoryLockouts(),
		tokenTTL:    tokenTTL,
		logger:      logger,
	}
}

// Session is the result of a successful login.
type Session struct {
	Token   string         `json:"token"`
	Wallet  models.Address `json:"wallet"`
	Profile string         `json:"profile"`
}

// Login verifies a signed, fresh challenge for wallet and issues a
// session token carrying the wallet's current profile.
func (s *Service) Login(ctx context.Context, wallet models.Address, timestamp int64, signature string) (Session, error) {
	if wallet.IsZero() {
		return Session{}, dErrors.New(dErrors.CodeInvalidAddress, "the wallet must be a valid address")
	}
	now := requestcontext.Now(ctx)
	key := wallet.Normalized().String()
	if until := s.lockouts.LockedUntil(ctx, key, now); !until.IsZero() {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "too many failed logins, try again later")
	}
	issued := time.Unix(timestamp, 0)
	if now.Sub(issued) > maxChallengeAge || issued.After(now.Add(maxChallengeAge)) {
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "the challenge timestamp is too old")
	}

	signer, err := RecoverSigner(ChallengeMessage(timestamp), signature)
	if err != nil {
		s.lockouts.RecordFailure(ctx, key, now)
		return Session{}, err
	}
	if !signer.Equal(wallet) {
		s.lockouts.RecordFailure(ctx, key, now)
		return Session{}, dErrors.New(dErrors.CodeUnauthorized, "signature does not match the wallet")
	}
	s.lockouts.ClearFailures(ctx, key)

	profile, err := s.profileOf(ctx, wallet)
	if err != nil {
		return Session{}, err
	}

	token, err := s.tokens.GenerateToken(wallet, profile, now, s.tokenTTL)
	if err != nil {
		return Session{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue session token")
	}

	s.logger.Info("session issued", "wallet", wallet.Normalized(), "profile", profile)
	return Session{Token: token, Wallet: wallet.Normalized(), Profile: profile}, nil
}

// Logout revokes the session token so it stops validating before its
// natural expiry.
func (s *Service) Logout(ctx context.Context, claims *middleware.SessionClaims) error {
	if err := s.revocations.Revoke(ctx, claims.TokenID, s.tokenTTL); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
	s.logger.Info("session revoked", "wallet", claims.Wallet)
	return nil
}

// TokenValidator exposes the JWT service for the auth middleware.
func (s *Service) TokenValidator() middleware.TokenValidator {
	return s.tokens
}

// IsRevoked reports whether a token id has been logged out.
func (s *Service) IsRevoked(tokenID string) bool {
	return s.revocations.IsRevoked(context.Background(), tokenID)
}

func (s *Service) profileOf(ctx context.Context, wallet models.Address) (string, error) {
	manager, err := s.governance.Manager(ctx)
	if err != nil {
		return "", err
	}
	if manager.Equal(wallet) {
		return middleware.ProfileManager, nil
	}

	resident, err := s.governance.GetResident(ctx, wallet)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeNotFound) {
			return "", dErrors.New(dErrors.CodeForbidden, "this wallet is not a resident")
		}
		return "", err
	}
	if resident.IsCounselor {
		return middleware.ProfileCounselor, nil
	}
	return middleware.ProfileResident, nil
}
