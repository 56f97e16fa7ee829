package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/silendas/pharmacy-backoffice/internal/domain"
	"github.com/silendas/pharmacy-backoffice/internal/repository/dao"
)

var (
	ErrSessionExists   = dao.ErrSessionExists
	ErrSessionNotFound = dao.ErrSessionNotFound
)

type SessionDAO interface {
	Insert(ctx context.Context, session dao.Session) (dao.Session, error)
	FindByID(ctx context.Context, id string) (dao.Session, error)
	DeleteByID(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

type SessionRepository struct {
	dao SessionDAO
}

func NewSessionRepository(dao SessionDAO) *SessionRepository {
	return &SessionRepository{
		dao: dao,
	}
}

func (r *SessionRepository) Create(ctx context.Context, session domain.Session) (domain.Session, error) {
	created, err := r.dao.Insert(ctx, dao.Session{
		ID:            session.ID,
		Username:      session.Username,
		UpstreamToken: session.UpstreamToken,
		ExpiresAt:     session.ExpiresAt,
	})
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *SessionRepository) FindByID(ctx context.Context, id string) (domain.Session, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Session{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.dao.DeleteByID(ctx, id); err != nil {
		return fmt.Errorf("r.dao.DeleteByID -> %w", err)
	}

	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) error {
	if err := r.dao.DeleteExpired(ctx, now); err != nil {
		return fmt.Errorf("r.dao.DeleteExpired -> %w", err)
	}

	return nil
}

func (r *SessionRepository) daoToDomain(s dao.Session) domain.Session {
	return domain.Session{
		ID:            s.ID,
		Username:      s.Username,
		UpstreamToken: s.UpstreamToken,
		ExpiresAt:     s.ExpiresAt,
		CreatedAt:     s.CreatedAt,
	}
}
