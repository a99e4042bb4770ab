package group

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"mealplanner/internal/domain/access"
	groupdomain "mealplanner/internal/domain/group"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	require.NoError(t, err)
	return NewPostgres(gormDB), mock
}

func TestGetRole(t *testing.T) {
	t.Run("member", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE group_uuid = \$1 AND user_uuid = \$2`).
			WithArgs("g1", "u1", 1).
			WillReturnRows(sqlmock.NewRows([]string{"user_uuid", "group_uuid", "role"}).AddRow("u1", "g1", "admin"))

		role, ok, err := repo.GetRole(context.Background(), "g1", "u1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, access.RoleAdmin, role)
	})

	t.Run("not a member", func(t *testing.T) {
		repo, mock := newMockRepo(t)
		mock.ExpectQuery(`SELECT \* FROM "memberships"`).
			WillReturnRows(sqlmock.NewRows([]string{"user_uuid", "group_uuid", "role"}))

		_, ok, err := repo.GetRole(context.Background(), "g1", "u2")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCountAdmins(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships" WHERE group_uuid = \$1 AND role = \$2`).
		WithArgs("g1", "admin").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	count, err := repo.CountAdmins(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}

func TestTransactionRollsBackOnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "groups" WHERE uuid = \$1`).
		WithArgs("g1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM ingredients`).WillReturnError(assert.AnError)
	mock.ExpectRollback()

	err := repo.Transaction(context.Background(), func(tx groupdomain.Repository) error {
		if _, err := tx.DeleteGroup(context.Background(), "g1"); err != nil {
			return err
		}
		return tx.PruneOrphanedResources(context.Background())
	})
	assert.ErrorIs(t, err, assert.AnError)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindUserIDByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery(`SELECT "uuid" FROM "users" WHERE email = \$1`).
		WithArgs("b@example.com", 1).
		WillReturnRows(sqlmock.NewRows([]string{"uuid"}).AddRow("u2"))

	id, ok, err := repo.FindUserIDByEmail(context.Background(), "b@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "u2", id)
}
