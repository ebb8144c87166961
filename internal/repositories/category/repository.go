package category

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

// CategoryRepository defines the interface for category persistence.
type CategoryRepository interface {
	Upsert(ctx context.Context, category models.Category) (*models.Category, error)
	GetBySlug(ctx context.Context, slug string) (*models.Category, error)
	Count(ctx context.Context) (int, error)
	ClearParentRefs(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements CategoryRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new category repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "categories"

var categoryStruct = database.NewStruct(new(models.Category))

// Upsert inserts the category or refreshes the existing row keyed by slug.
func (r *Repository) Upsert(ctx context.Context, category models.Category) (*models.Category, error) {
	ctx, span := tracing.StartSpan(ctx, "CategoryRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if category.ID == "" {
		category.ID = uuid.New().String()
	}
	category.CreatedAt = now
	category.UpdatedAt = now

	ib := categoryStruct.InsertInto(tableName, category)
	ub := ib.OnConflict("slug")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("description", database.Excluded("description")),
		ub.Assign("parent_id", database.Excluded("parent_id")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"slug": category.Slug,
		}).Error("failed to upsert category")
		return nil, fmt.Errorf("failed to upsert category: %w", err)
	}

	return r.GetBySlug(ctx, category.Slug)
}

// GetBySlug gets a category by slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	ctx, span := tracing.StartSpan(ctx, "CategoryRepository.GetBySlug")
	defer span.End()

	sb := categoryStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("slug", slug))

	query, args := sb.Build()

	var category models.Category
	err := r.db.GetContext(ctx, &category, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get category by slug")
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &category, nil
}

// Count returns the number of category rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "CategoryRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count categories")
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}

	return count, nil
}

// ClearParentRefs nulls every parent_id so the tree can be deleted in one pass.
func (r *Repository) ClearParentRefs(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "CategoryRepository.ClearParentRefs")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(tableName)
	ub.Set(ub.Assign("parent_id", nil))
	ub.Where(ub.IsNotNull("parent_id"))

	query, args := ub.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to clear category parent refs")
		return fmt.Errorf("failed to clear category parent refs: %w", err)
	}

	return nil
}

// DeleteAll removes every category row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "CategoryRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete categories")
		return 0, fmt.Errorf("failed to delete categories: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
