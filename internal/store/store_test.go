package store

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"pantry-sync-backend/internal/db"
)

// A helper function to create a mock database connection.
func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: sqlDB,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestGormStore_SQLShape(t *testing.T) {
	ctx := context.Background()

	t.Run("put upserts on key", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectBegin()
		mock.ExpectExec(`INSERT INTO "kv_entries" .*ON CONFLICT \("key"\) DO UPDATE SET`).
			WithArgs(KeyPantryItems, []byte("[]"), Any{}).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		require.NoError(t, s.Put(ctx, KeyPantryItems, []byte("[]")))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get of a missing key is not an error", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_entries" WHERE key = $1 LIMIT`)).
			WithArgs(KeyFrameID, 1).
			WillReturnRows(sqlmock.NewRows([]string{"key", "value", "updated_at"}))

		v, ok, err := s.Get(ctx, KeyFrameID)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, v)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("get surfaces driver errors", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		s := NewGormStore(gormDB)

		mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "kv_entries"`)).
			WillReturnError(errors.New("connection reset"))

		_, _, err := s.Get(ctx, KeyFrameID)
		assert.Error(t, err)
	})
}

func TestGormStore_SQLite(t *testing.T) {
	ctx := context.Background()
	s := NewGormStore(db.NewTestDB(t))

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, KeyAuthToken, []byte("first")))
	require.NoError(t, s.Put(ctx, KeyAuthToken, []byte("second")))
	require.NoError(t, s.Put(ctx, KeyAuthType, []byte("Bearer")))

	v, ok, err := s.Get(ctx, KeyAuthToken)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("second"), v)

	require.NoError(t, s.Delete(ctx, KeyAuthToken, KeyAuthType, "never-written"))
	_, ok, err = s.Get(ctx, KeyAuthType)
	require.NoError(t, err)
	assert.False(t, ok)

	assert.NoError(t, s.Delete(ctx))
}

// Any is a helper for sqlmock to match any argument.
type Any struct{}

// Match satisfies the sqlmock.Argument interface
func (a Any) Match(v driver.Value) bool {
	return true
}
