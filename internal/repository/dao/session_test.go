package dao

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	pool, err := dockertest.NewPool("")
	require.NoError(t, err)

	resource, err := pool.Run("postgres", "16-alpine", []string{
		"POSTGRES_USER=testuser",
		"POSTGRES_PASSWORD=testpass",
		"POSTGRES_DB=testdb",
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("failed to purge resource: %v", err)
		}
	})

	dsn := fmt.Sprintf(
		"host=localhost port=%v user=testuser password=testpass dbname=testdb sslmode=disable",
		resource.GetPort("5432/tcp"),
	)

	var db *gorm.DB
	err = pool.Retry(func() error {
		db, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
		if err != nil {
			return err
		}

		sqlDB, err := db.DB()
		if err != nil {
			return err
		}

		return sqlDB.Ping()
	})
	require.NoError(t, err)

	require.NoError(t, InitTables(db))

	return db
}

func newTestSession(id string, expiresAt time.Time) Session {
	return Session{
		ID:            id,
		Username:      "admin",
		UpstreamToken: "upstream-token",
		ExpiresAt:     expiresAt,
	}
}

func TestSessionDAO(t *testing.T) {
	db := setupTestDB(t)
	dao := NewSessionDAO(db)
	ctx := context.Background()

	t.Run("insert and find", func(t *testing.T) {
		created, err := dao.Insert(ctx, newTestSession("session-1", time.Now().Add(time.Hour)))
		require.NoError(t, err)
		assert.Equal(t, "session-1", created.ID)

		found, err := dao.FindByID(ctx, "session-1")
		require.NoError(t, err)
		assert.Equal(t, "admin", found.Username)
		assert.Equal(t, "upstream-token", found.UpstreamToken)
	})

	t.Run("duplicate id", func(t *testing.T) {
		_, err := dao.Insert(ctx, newTestSession("session-dup", time.Now().Add(time.Hour)))
		require.NoError(t, err)

		_, err = dao.Insert(ctx, newTestSession("session-dup", time.Now().Add(time.Hour)))
		assert.ErrorIs(t, err, ErrSessionExists)
	})

	t.Run("find missing", func(t *testing.T) {
		_, err := dao.FindByID(ctx, "no-such-session")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		_, err := dao.Insert(ctx, newTestSession("session-del", time.Now().Add(time.Hour)))
		require.NoError(t, err)

		require.NoError(t, dao.DeleteByID(ctx, "session-del"))

		_, err = dao.FindByID(ctx, "session-del")
		assert.ErrorIs(t, err, ErrSessionNotFound)
	})

	t.Run("delete expired keeps live sessions", func(t *testing.T) {
		_, err := dao.Insert(ctx, newTestSession("session-old", time.Now().Add(-time.Hour)))
		require.NoError(t, err)
		_, err = dao.Insert(ctx, newTestSession("session-live", time.Now().Add(time.Hour)))
		require.NoError(t, err)

		require.NoError(t, dao.DeleteExpired(ctx, time.Now()))

		_, err = dao.FindByID(ctx, "session-old")
		assert.ErrorIs(t, err, ErrSessionNotFound)

		_, err = dao.FindByID(ctx, "session-live")
		assert.NoError(t, err)
	})
}
