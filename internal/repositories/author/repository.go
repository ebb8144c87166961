package author

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// AuthorRepository defines the interface for author persistence.
type AuthorRepository interface {
	Upsert(ctx context.Context, author models.Author) (*models.Author, error)
	GetByEmail(ctx context.Context, email string) (*models.Author, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements AuthorRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new author repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "authors"

var authorStruct = database.NewStruct(new(models.Author))

// Upsert inserts the author or refreshes the existing row keyed by email.
func (r *Repository) Upsert(ctx context.Context, author models.Author) (*models.Author, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthorRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if author.ID == "" {
		author.ID = uuid.New().String()
	}
	author.CreatedAt = now
	author.UpdatedAt = now

	ib := authorStruct.InsertInto(tableName, author)
	ub := ib.OnConflict("email")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("bio", database.Excluded("bio")),
		ub.Assign("avatar_url", database.Excluded("avatar_url")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"email": author.Email,
		}).Error("failed to upsert author")
		return nil, fmt.Errorf("failed to upsert author: %w", err)
	}

	return r.GetByEmail(ctx, author.Email)
}

// GetByEmail gets an author by email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*models.Author, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthorRepository.GetByEmail")
	defer span.End()

	sb := authorStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("email", email))

	query, args := sb.Build()

	var author models.Author
	err := r.db.GetContext(ctx, &author, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get author by email")
		return nil, fmt.Errorf("failed to get author: %w", err)
	}

	return &author, nil
}

// Count returns the number of author rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthorRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count authors")
		return 0, fmt.Errorf("failed to count authors: %w", err)
	}

	return count, nil
}

// DeleteAll removes every author row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "AuthorRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete authors")
		return 0, fmt.Errorf("failed to delete authors: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
