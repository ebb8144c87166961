package tag

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

// TagRepository defines the interface for tag persistence.
type TagRepository interface {
	Upsert(ctx context.Context, tag models.Tag) (*models.Tag, error)
	GetBySlug(ctx context.Context, slug string) (*models.Tag, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements TagRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new tag repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "tags"

var tagStruct = database.NewStruct(new(models.Tag))

// Upsert inserts the tag or keeps the existing row keyed by slug. The stored
// name keeps its first-seen casing, so the conflict branch only bumps
// updated_at.
func (r *Repository) Upsert(ctx context.Context, tag models.Tag) (*models.Tag, error) {
	ctx, span := tracing.StartSpan(ctx, "TagRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if tag.ID == "" {
		tag.ID = uuid.New().String()
	}
	tag.CreatedAt = now
	tag.UpdatedAt = now

	ib := tagStruct.InsertInto(tableName, tag)
	ub := ib.OnConflict("slug")
	ub.Set(
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"slug": tag.Slug,
		}).Error("failed to upsert tag")
		return nil, fmt.Errorf("failed to upsert tag: %w", err)
	}

	return r.GetBySlug(ctx, tag.Slug)
}

// GetBySlug gets a tag by slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	ctx, span := tracing.StartSpan(ctx, "TagRepository.GetBySlug")
	defer span.End()

	sb := tagStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("slug", slug))

	query, args := sb.Build()

	var tag models.Tag
	err := r.db.GetContext(ctx, &tag, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get tag by slug")
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}

	return &tag, nil
}

// Count returns the number of tag rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "TagRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count tags")
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}

	return count, nil
}

// DeleteAll removes every tag row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "TagRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete tags")
		return 0, fmt.Errorf("failed to delete tags: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
