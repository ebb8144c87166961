package tier

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

// TierRepository defines the interface for subscription tier persistence.
type TierRepository interface {
	Upsert(ctx context.Context, tier models.SubscriptionTier) (*models.SubscriptionTier, error)
	List(ctx context.Context) ([]models.SubscriptionTier, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements TierRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new subscription tier repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "subscription_tiers"

var tierStruct = database.NewStruct(new(models.SubscriptionTier))

// Upsert inserts the tier or refreshes the existing row keyed by slug.
func (r *Repository) Upsert(ctx context.Context, tier models.SubscriptionTier) (*models.SubscriptionTier, error) {
	ctx, span := tracing.StartSpan(ctx, "TierRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if tier.ID == "" {
		tier.ID = uuid.New().String()
	}
	tier.CreatedAt = now
	tier.UpdatedAt = now

	ib := tierStruct.InsertInto(tableName, tier)
	ub := ib.OnConflict("slug")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("monthly_price_usd", database.Excluded("monthly_price_usd")),
		ub.Assign("article_quota", database.Excluded("article_quota")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"slug": tier.Slug,
		}).Error("failed to upsert subscription tier")
		return nil, fmt.Errorf("failed to upsert subscription tier: %w", err)
	}

	return r.getBySlug(ctx, tier.Slug)
}

func (r *Repository) getBySlug(ctx context.Context, slug string) (*models.SubscriptionTier, error) {
	sb := tierStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("slug", slug))

	query, args := sb.Build()

	var tier models.SubscriptionTier
	err := r.db.GetContext(ctx, &tier, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get subscription tier by slug")
		return nil, fmt.Errorf("failed to get subscription tier: %w", err)
	}

	return &tier, nil
}

// List returns all tiers ordered by monthly price
func (r *Repository) List(ctx context.Context) ([]models.SubscriptionTier, error) {
	ctx, span := tracing.StartSpan(ctx, "TierRepository.List")
	defer span.End()

	sb := tierStruct.SelectFrom(tableName)
	sb.OrderBy("monthly_price_usd")

	query, args := sb.Build()

	var tiers []models.SubscriptionTier
	err := r.db.SelectContext(ctx, &tiers, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list subscription tiers")
		return nil, fmt.Errorf("failed to list subscription tiers: %w", err)
	}

	return tiers, nil
}

// Count returns the number of tier rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "TierRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count subscription tiers")
		return 0, fmt.Errorf("failed to count subscription tiers: %w", err)
	}

	return count, nil
}

// DeleteAll removes every tier row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "TierRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete subscription tiers")
		return 0, fmt.Errorf("failed to delete subscription tiers: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
