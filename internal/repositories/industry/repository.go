package industry

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

// IndustryRepository defines the interface for industry persistence.
type IndustryRepository interface {
	Upsert(ctx context.Context, industry models.Industry) (*models.Industry, error)
	GetBySlug(ctx context.Context, slug string) (*models.Industry, error)
	List(ctx context.Context) ([]models.Industry, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements IndustryRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new industry repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "industries"

var industryStruct = database.NewStruct(new(models.Industry))

// Upsert inserts the industry or refreshes the existing row keyed by slug.
func (r *Repository) Upsert(ctx context.Context, industry models.Industry) (*models.Industry, error) {
	ctx, span := tracing.StartSpan(ctx, "IndustryRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if industry.ID == "" {
		industry.ID = uuid.New().String()
	}
	industry.CreatedAt = now
	industry.UpdatedAt = now

	ib := industryStruct.InsertInto(tableName, industry)
	ub := ib.OnConflict("slug")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("description", database.Excluded("description")),
		ub.Assign("seo", database.Excluded("seo")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"slug": industry.Slug,
		}).Error("failed to upsert industry")
		return nil, fmt.Errorf("failed to upsert industry: %w", err)
	}

	return r.GetBySlug(ctx, industry.Slug)
}

// GetBySlug gets an industry by slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Industry, error) {
	ctx, span := tracing.StartSpan(ctx, "IndustryRepository.GetBySlug")
	defer span.End()

	sb := industryStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("slug", slug))

	query, args := sb.Build()

	var industry models.Industry
	err := r.db.GetContext(ctx, &industry, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get industry by slug")
		return nil, fmt.Errorf("failed to get industry: %w", err)
	}

	return &industry, nil
}

// List returns all industries ordered by slug
func (r *Repository) List(ctx context.Context) ([]models.Industry, error) {
	ctx, span := tracing.StartSpan(ctx, "IndustryRepository.List")
	defer span.End()

	sb := industryStruct.SelectFrom(tableName)
	sb.OrderBy("slug")

	query, args := sb.Build()

	var industries []models.Industry
	err := r.db.SelectContext(ctx, &industries, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list industries")
		return nil, fmt.Errorf("failed to list industries: %w", err)
	}

	return industries, nil
}

// Count returns the number of industry rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "IndustryRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count industries")
		return 0, fmt.Errorf("failed to count industries: %w", err)
	}

	return count, nil
}

// DeleteAll removes every industry row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "IndustryRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete industries")
		return 0, fmt.Errorf("failed to delete industries: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
