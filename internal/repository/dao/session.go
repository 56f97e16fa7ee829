package dao

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrSessionExists   = errors.New("session already exists")
	ErrSessionNotFound = errors.New("session not found")
)

type Session struct {
	ID string `gorm:"primaryKey"`

	Username      string `gorm:"not null"`
	UpstreamToken string `gorm:"not null"`

	ExpiresAt time.Time `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type SessionDAO struct {
	db *gorm.DB
}

func NewSessionDAO(db *gorm.DB) *SessionDAO {
	return &SessionDAO{
		db: db,
	}
}

func (d *SessionDAO) Insert(ctx context.Context, session Session) (Session, error) {
	result := d.db.WithContext(ctx).Create(&session)
	if result.Error != nil {
		var err *pgconn.PgError
		if errors.As(result.Error, &err) &&
			err.Code == pgerrcode.UniqueViolation &&
			strings.Contains(err.Message, "sessions_pkey") {
			return Session{}, ErrSessionExists
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) FindByID(ctx context.Context, id string) (Session, error) {
	var session Session

	result := d.db.WithContext(ctx).First(&session, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Session{}, ErrSessionNotFound
		}

		return Session{}, result.Error
	}

	return session, nil
}

func (d *SessionDAO) DeleteByID(ctx context.Context, id string) error {
	result := d.db.WithContext(ctx).Delete(&Session{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

// DeleteExpired removes every session whose expiry is before now.
func (d *SessionDAO) DeleteExpired(ctx context.Context, now time.Time) error {
	result := d.db.WithContext(ctx).Delete(&Session{}, "expires_at < ?", now)
	if result.Error != nil {
		return result.Error
	}

	return nil
}
