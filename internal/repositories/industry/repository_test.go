package industry

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/Gobusters/ectologger"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
)

func setupMockDB(t *testing.T) (sqlmock.Sqlmock, *Repository) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDB.Close() })

	logger := ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
	db := database.NewDatabaseInstance(sqlx.NewDb(mockDB, "sqlmock"), logger)

	return mock, NewRepository(db, logger)
}

func industryRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "slug", "description", "seo", "created_at", "updated_at"}).
		AddRow("3f7e1fb8-18a4-4c51-9112-60bd6b1b32a0", "Technology", "technology", "Software and services.", []byte(`{}`), time.Now(), time.Now())
}

func TestGetBySlug(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM industries WHERE`).
		WithArgs("technology").
		WillReturnRows(industryRow())

	result, err := repo.GetBySlug(context.Background(), "technology")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "Technology", result.Name)
	assert.Equal(t, "technology", result.Slug)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetBySlug_NotFound(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT .+ FROM industries WHERE`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "description", "seo", "created_at", "updated_at"}))

	result, err := repo.GetBySlug(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, result)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsert(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO industries .+ ON CONFLICT \(slug\) DO UPDATE SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM industries WHERE`).
		WithArgs("technology").
		WillReturnRows(industryRow())

	result, err := repo.Upsert(context.Background(), models.Industry{
		Name:        "Technology",
		Slug:        "technology",
		Description: "Software and services.",
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, "technology", result.Slug)
	assert.NotEmpty(t, result.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM industries`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(8))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 8, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteAll(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM industries`).
		WillReturnResult(sqlmock.NewResult(0, 8))

	deleted, err := repo.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}
