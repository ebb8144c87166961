package faq

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

// FAQRepository defines the interface for FAQ persistence.
type FAQRepository interface {
	Create(ctx context.Context, faq models.FAQ) (*models.FAQ, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements FAQRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new FAQ repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "faqs"

var faqStruct = database.NewStruct(new(models.FAQ))

// Create inserts an FAQ row and returns it with its generated ID.
func (r *Repository) Create(ctx context.Context, faq models.FAQ) (*models.FAQ, error) {
	ctx, span := tracing.StartSpan(ctx, "FAQRepository.Create")
	defer span.End()

	if faq.ID == "" {
		faq.ID = uuid.New().String()
	}
	faq.CreatedAt = time.Now().UTC()

	ib := faqStruct.InsertInto(tableName, faq)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"article_id": faq.ArticleID,
		}).Error("failed to create faq")
		return nil, fmt.Errorf("failed to create faq: %w", err)
	}

	return &faq, nil
}

// Count returns the number of FAQ rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "FAQRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count faqs")
		return 0, fmt.Errorf("failed to count faqs: %w", err)
	}

	return count, nil
}

// DeleteAll removes every FAQ row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "FAQRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete faqs")
		return 0, fmt.Errorf("failed to delete faqs: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
