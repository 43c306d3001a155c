package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"

	"github.com/alex/dev-tools-portal/internal/config"
	"github.com/alex/dev-tools-portal/internal/domain"
	"github.com/alex/dev-tools-portal/internal/password"
	"github.com/alex/dev-tools-portal/internal/repository"
	"github.com/alex/dev-tools-portal/internal/token"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrSignInFailed hides internal faults during sign-in.
	ErrSignInFailed = errors.New("something went wrong")
	// ErrInvalidToken means the refresh token decoded but its session is gone.
	ErrInvalidToken = errors.New("invalid token")
	// ErrInvalidRefreshToken is the opaque failure for everything else in the
	// refresh flow.
	ErrInvalidRefreshToken = errors.New("invalid refresh token")
	// ErrTokenReuse is raised after the reuse lockout wiped the user's sessions.
	ErrTokenReuse      = errors.New("refresh token reuse detected")
	ErrSessionNotFound = errors.New("session not found")
	ErrNotAuthorized   = errors.New("not authorized to access this route")
)

type AuthService struct {
	userRepo    repository.UserRepository
	sessionRepo repository.SessionRepository
	codec       *token.Codec
	cfg         *config.Config
}

func NewAuthService(userRepo repository.UserRepository, sessionRepo repository.SessionRepository, codec *token.Codec, cfg *config.Config) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		codec:       codec,
		cfg:         cfg,
	}
}

type SignInInput struct {
	Email    string
	Password string
	ClientIP string
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

func (s *AuthService) SignIn(ctx context.Context, input SignInInput) (*TokenPair, error) {
	user, err := s.userRepo.GetActiveByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		log.Printf("ERROR [auth.SignIn] user lookup: %v", err)
		return nil, ErrSignInFailed
	}

	ok, err := password.Verify(user.PasswordHash, input.Password)
	if err != nil {
		log.Printf("ERROR [auth.SignIn] password verify: %v", err)
		return nil, ErrSignInFailed
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	pair, err := s.createSession(ctx, user.ID, input.ClientIP)
	if err != nil {
		log.Printf("ERROR [auth.SignIn] create session: %v", err)
		return nil, ErrSignInFailed
	}
	return pair, nil
}

func (s *AuthService) createSession(ctx context.Context, userID uuid.UUID, clientIP string) (*TokenPair, error) {
	session := &domain.UserSession{
		ID:        uuid.New(),
		UserID:    userID,
		IPAddress: clientIP,
	}
	if err := s.sessionRepo.Create(ctx, session); err != nil {
		return nil, err
	}

	accessToken, err := s.codec.Sign(userID, session.ID, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.codec.Sign(userID, session.ID, s.cfg.RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	if err := s.sessionRepo.UpdateRefreshToken(ctx, session.ID, refreshToken); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RefreshToken exchanges a valid refresh token for a fresh pair, rotating the
// stored token so the presented one is never accepted again. A token whose
// embedded user does not own the session is treated as replayed theft and
// every session of that user is revoked.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims, err := s.codec.Verify(refreshToken)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	sessionID, err := uuid.Parse(claims.SessionID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}
	tokenUserID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, ErrInvalidRefreshToken
	}

	session, err := s.sessionRepo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidToken
		}
		log.Printf("ERROR [auth.RefreshToken] session lookup: %v", err)
		return nil, ErrInvalidRefreshToken
	}

	if refreshTokenMatches(session.RefreshToken, refreshToken) {
		accessToken, err := s.codec.Sign(tokenUserID, sessionID, s.cfg.AccessTokenTTL)
		if err != nil {
			return nil, ErrInvalidRefreshToken
		}
		newRefreshToken, err := s.codec.Sign(tokenUserID, sessionID, s.cfg.RefreshTokenTTL)
		if err != nil {
			return nil, ErrInvalidRefreshToken
		}

		if err := s.sessionRepo.UpdateRefreshToken(ctx, sessionID, newRefreshToken); err != nil {
			log.Printf("ERROR [auth.RefreshToken] rotate token: %v", err)
			return nil, ErrInvalidRefreshToken
		}

		return &TokenPair{AccessToken: accessToken, RefreshToken: newRefreshToken}, nil
	}

	// Mismatch against the stored token. If the embedded user is not the
	// session's owner the token was minted for a different account: revoke
	// everything that account has.
	if tokenUserID != session.UserID {
		if err := s.sessionRepo.DeleteByUserID(ctx, tokenUserID); err != nil {
			log.Printf("ERROR [auth.RefreshToken] reuse lockout: %v", err)
		}
		return nil, ErrTokenReuse
	}

	return nil, ErrInvalidRefreshToken
}

// refreshTokenMatches gates on length before the constant-time comparison;
// unequal lengths are an immediate mismatch.
func refreshTokenMatches(stored *string, presented string) bool {
	if stored == nil || len(*stored) != len(presented) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(*stored), []byte(presented)) == 1
}

// Logout removes exactly the one session matching user and session id.
func (s *AuthService) Logout(ctx context.Context, userID, sessionID uuid.UUID) error {
	deleted, err := s.sessionRepo.DeleteByIDAndUser(ctx, sessionID, userID)
	if err != nil {
		log.Printf("ERROR [auth.Logout] delete session: %v", err)
		return ErrSessionNotFound
	}
	if deleted == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// CheckSession confirms the session row still exists and returns the request
// principal. It is read-only; token signatures are the codec's business and
// are checked earlier in the pipeline.
func (s *AuthService) CheckSession(ctx context.Context, userID, sessionID uuid.UUID) (*domain.Principal, error) {
	session, err := s.sessionRepo.GetByIDAndUser(ctx, sessionID, userID)
	if err != nil {
		return nil, ErrNotAuthorized
	}
	if session.User == nil {
		return nil, ErrNotAuthorized
	}

	return &domain.Principal{
		UserID:    session.UserID,
		SessionID: session.ID,
		Role:      session.User.Role,
	}, nil
}

// DestroySessions deletes all of a user's sessions, optionally sparing one
// (log out of all other devices).
func (s *AuthService) DestroySessions(ctx context.Context, userID uuid.UUID, keep *uuid.UUID) error {
	if keep != nil {
		return s.sessionRepo.DeleteByUserIDExcept(ctx, userID, *keep)
	}
	return s.sessionRepo.DeleteByUserID(ctx, userID)
}

// SeedAdmin creates the bootstrap admin once, only while the user table is
// empty and credentials are configured. Safe to call on every start.
func (s *AuthService) SeedAdmin(ctx context.Context) error {
	count, err := s.userRepo.Count(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	if s.cfg.AdminEmail == "" || s.cfg.AdminPassword == "" {
		log.Printf("WARN [auth.SeedAdmin] no users in database and ADMIN_USERNAME/ADMIN_PASSWORD not set; create a user manually")
		return nil
	}

	hash, err := password.Hash(s.cfg.AdminPassword)
	if err != nil {
		return err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Email:        s.cfg.AdminEmail,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		Status:       domain.StatusActive,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return err
	}

	log.Printf("admin user created: %s", user.Email)
	return nil
}
