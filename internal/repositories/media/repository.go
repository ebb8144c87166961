package media

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

// MediaRepository defines the interface for media and gallery persistence.
type MediaRepository interface {
	Create(ctx context.Context, media models.Media) (*models.Media, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)

	AttachToGallery(ctx context.Context, link models.ArticleMedia) error
	CountGalleryLinks(ctx context.Context) (int, error)
	DeleteAllGalleryLinks(ctx context.Context) (int64, error)
}

// Repository implements MediaRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new media repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const (
	tableName        = "media"
	galleryTableName = "article_media"
)

var (
	mediaStruct   = database.NewStruct(new(models.Media))
	galleryStruct = database.NewStruct(new(models.ArticleMedia))
)

// Create inserts a media row and returns it with its generated ID.
func (r *Repository) Create(ctx context.Context, media models.Media) (*models.Media, error) {
	ctx, span := tracing.StartSpan(ctx, "MediaRepository.Create")
	defer span.End()

	if media.ID == "" {
		media.ID = uuid.New().String()
	}
	media.CreatedAt = time.Now().UTC()

	ib := mediaStruct.InsertInto(tableName, media)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"type":      media.Type,
			"public_id": media.PublicID,
		}).Error("failed to create media")
		return nil, fmt.Errorf("failed to create media: %w", err)
	}

	return &media, nil
}

// Count returns the number of media rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "MediaRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count media")
		return 0, fmt.Errorf("failed to count media: %w", err)
	}

	return count, nil
}

// DeleteAll removes every media row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "MediaRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete media")
		return 0, fmt.Errorf("failed to delete media: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}

// AttachToGallery links a gallery media row to an article at a position.
func (r *Repository) AttachToGallery(ctx context.Context, link models.ArticleMedia) error {
	ctx, span := tracing.StartSpan(ctx, "MediaRepository.AttachToGallery")
	defer span.End()

	if link.ID == "" {
		link.ID = uuid.New().String()
	}
	link.CreatedAt = time.Now().UTC()

	ib := galleryStruct.InsertInto(galleryTableName, link)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"article_id": link.ArticleID,
			"media_id":   link.MediaID,
		}).Error("failed to attach media to gallery")
		return fmt.Errorf("failed to attach media to gallery: %w", err)
	}

	return nil
}

// CountGalleryLinks returns the number of article gallery links
func (r *Repository) CountGalleryLinks(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "MediaRepository.CountGalleryLinks")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(galleryTableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count gallery links")
		return 0, fmt.Errorf("failed to count gallery links: %w", err)
	}

	return count, nil
}

// DeleteAllGalleryLinks clears the article gallery link table.
func (r *Repository) DeleteAllGalleryLinks(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "MediaRepository.DeleteAllGalleryLinks")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(galleryTableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete gallery links")
		return 0, fmt.Errorf("failed to delete gallery links: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
