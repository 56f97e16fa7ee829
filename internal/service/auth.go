package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/repository"
	"github.com/silendas/pharmacy-backoffice/internal/upstream"
)

var (
	ErrInvalidCredentials = upstream.ErrInvalidCredentials
	ErrSessionNotFound    = repository.ErrSessionNotFound
	ErrSessionExpired     = errors.New("session expired")
)

type SessionRepository interface {
	Create(ctx context.Context, session domain.Session) (domain.Session, error)
	FindByID(ctx context.Context, id string) (domain.Session, error)
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

type LoginClient interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// AuthService owns the session lifecycle: the upstream bearer token is
// acquired at login, persisted with an expiry, and invalidated at
// logout or on first use after expiry.
type AuthService struct {
	repo   SessionRepository
	client LoginClient
	ttl    time.Duration
	now    func() time.Time
}

func NewAuthService(repo SessionRepository, client LoginClient, ttl time.Duration) *AuthService {
	return &AuthService{
		repo:   repo,
		client: client,
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (domain.Session, error) {
	token, err := s.client.Login(ctx, username, password)
	if err != nil {
		if errors.Is(err, upstream.ErrInvalidCredentials) {
			return domain.Session{}, ErrInvalidCredentials
		}

		return domain.Session{}, fmt.Errorf("s.client.Login -> %w", err)
	}

	created, err := s.repo.Create(ctx, domain.Session{
		ID:            uuid.NewString(),
		Username:      username,
		UpstreamToken: token,
		ExpiresAt:     s.now().Add(s.ttl),
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// PurgeExpired removes every session already past its expiry. Expiry
// is also enforced lazily in Resolve; the purge only keeps the table
// from growing unbounded.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	if err := s.repo.DeleteExpired(ctx, s.now()); err != nil {
		return fmt.Errorf("s.repo.DeleteExpired -> %w", err)
	}

	return nil
}

// Resolve returns the session when it exists and has not expired.
// Expired sessions are deleted on sight.
func (s *AuthService) Resolve(ctx context.Context, sessionID string) (domain.Session, error) {
	session, err := s.repo.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return domain.Session{}, ErrSessionNotFound
		}

		return domain.Session{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	if session.Expired(s.now()) {
		_ = s.repo.Delete(ctx, sessionID)

		return domain.Session{}, ErrSessionExpired
	}

	return session, nil
}
