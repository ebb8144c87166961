package engagement

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

func TestCreateView(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO article_views`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateView(context.Background(), models.ArticleView{
		ArticleID:   "9a1df0ce-44a2-4c8e-8f0a-0d2f9c15e9c4",
		UserAgent:   "Mozilla/5.0",
		CountryCode: "US",
		ViewedAt:    time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateReaction(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`INSERT INTO reactions`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateReaction(context.Background(), models.Reaction{
		ArticleID: "9a1df0ce-44a2-4c8e-8f0a-0d2f9c15e9c4",
		Kind:      models.ReactionLike,
		CreatedAt: time.Now().UTC(),
	})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM shares`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.Count(context.Background(), SharesTable)
	require.NoError(t, err)
	assert.Equal(t, 12, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCount_UnknownTable(t *testing.T) {
	_, repo := setupMockDB(t)

	_, err := repo.Count(context.Background(), "articles")
	require.Error(t, err)
}

func TestDeleteAll(t *testing.T) {
	mock, repo := setupMockDB(t)

	mock.ExpectExec(`DELETE FROM interactions`).
		WillReturnResult(sqlmock.NewResult(0, 30))

	deleted, err := repo.DeleteAll(context.Background(), InteractionsTable)
	require.NoError(t, err)
	assert.Equal(t, int64(30), deleted)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTables_ResetOrder(t *testing.T) {
	tables := Tables()
	require.NotEmpty(t, tables)

	seen := make(map[string]bool, len(tables))
	for _, table := range tables {
		assert.False(t, seen[table], "duplicate table %q", table)
		seen[table] = true
		require.NoError(t, checkTable(table))
	}
}
