package subscriber

import (
	"context"
	"fmt"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// SubscriberRepository defines the interface for newsletter subscriber persistence.
type SubscriberRepository interface {
	Upsert(ctx context.Context, subscriber models.Subscriber) error
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements SubscriberRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new subscriber repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "subscribers"

var subscriberStruct = database.NewStruct(new(models.Subscriber))

// Upsert inserts the subscriber keyed by email. Existing signups keep their
// original subscribed_at.
func (r *Repository) Upsert(ctx context.Context, subscriber models.Subscriber) error {
	ctx, span := tracing.StartSpan(ctx, "SubscriberRepository.Upsert")
	defer span.End()

	if subscriber.ID == "" {
		subscriber.ID = uuid.New().String()
	}
	subscriber.CreatedAt = time.Now().UTC()

	ib := subscriberStruct.InsertInto(tableName, subscriber)
	ub := ib.OnConflict("email")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"email": subscriber.Email,
		}).Error("failed to upsert subscriber")
		return fmt.Errorf("failed to upsert subscriber: %w", err)
	}

	return nil
}

// Count returns the number of subscriber rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "SubscriberRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count subscribers")
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}

	return count, nil
}

// DeleteAll removes every subscriber row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "SubscriberRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete subscribers")
		return 0, fmt.Errorf("failed to delete subscribers: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
