package client

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

// ClientRepository defines the interface for client persistence.
type ClientRepository interface {
	Upsert(ctx context.Context, client models.Client) (*models.Client, error)
	GetBySlug(ctx context.Context, slug string) (*models.Client, error)
	List(ctx context.Context) ([]models.Client, error)
	Count(ctx context.Context) (int, error)
	SetBrandMedia(ctx context.Context, id string, logoID, ogID, twitterID *string) error
	ClearParentRefs(ctx context.Context) error
	ClearMediaRefs(ctx context.Context) error
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements ClientRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new client repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "clients"

var clientStruct = database.NewStruct(new(models.Client))

// Upsert inserts the client or refreshes the existing row keyed by slug.
func (r *Repository) Upsert(ctx context.Context, client models.Client) (*models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	client.CreatedAt = now
	client.UpdatedAt = now

	ib := clientStruct.InsertInto(tableName, client)
	ub := ib.OnConflict("slug")
	ub.Set(
		ub.Assign("name", database.Excluded("name")),
		ub.Assign("legal_name", database.Excluded("legal_name")),
		ub.Assign("website", database.Excluded("website")),
		ub.Assign("email", database.Excluded("email")),
		ub.Assign("industry_id", database.Excluded("industry_id")),
		ub.Assign("tier_id", database.Excluded("tier_id")),
		ub.Assign("parent_org_id", database.Excluded("parent_org_id")),
		ub.Assign("seo", database.Excluded("seo")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"slug": client.Slug,
		}).Error("failed to upsert client")
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}

	return r.GetBySlug(ctx, client.Slug)
}

// GetBySlug gets a client by slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.GetBySlug")
	defer span.End()

	sb := clientStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("slug", slug))

	query, args := sb.Build()

	var client models.Client
	err := r.db.GetContext(ctx, &client, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get client by slug")
		return nil, fmt.Errorf("failed to get client: %w", err)
	}

	return &client, nil
}

// List returns all clients ordered by slug
func (r *Repository) List(ctx context.Context) ([]models.Client, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.List")
	defer span.End()

	sb := clientStruct.SelectFrom(tableName)
	sb.OrderBy("slug")

	query, args := sb.Build()

	var clients []models.Client
	err := r.db.SelectContext(ctx, &clients, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

// Count returns the number of client rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count clients")
		return 0, fmt.Errorf("failed to count clients: %w", err)
	}

	return count, nil
}

// SetBrandMedia points the client's logo, OG and Twitter card columns at
// previously created media rows. Nil pointers clear the column.
func (r *Repository) SetBrandMedia(ctx context.Context, id string, logoID, ogID, twitterID *string) error {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.SetBrandMedia")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(tableName)
	ub.Set(
		ub.Assign("logo_media_id", logoID),
		ub.Assign("og_media_id", ogID),
		ub.Assign("twitter_media_id", twitterID),
		ub.Assign("updated_at", time.Now().UTC()),
	)
	ub.Where(ub.Equal("id", id))

	query, args := ub.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"id": id,
		}).Error("failed to set client brand media")
		return fmt.Errorf("failed to set client brand media: %w", err)
	}

	return nil
}

// ClearParentRefs nulls every parent_org_id so clients can be deleted in one pass.
func (r *Repository) ClearParentRefs(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.ClearParentRefs")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(tableName)
	ub.Set(ub.Assign("parent_org_id", nil))
	ub.Where(ub.IsNotNull("parent_org_id"))

	query, args := ub.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to clear client parent refs")
		return fmt.Errorf("failed to clear client parent refs: %w", err)
	}

	return nil
}

// ClearMediaRefs nulls the brand media columns so media rows can be deleted
// without tripping the back-references from clients.
func (r *Repository) ClearMediaRefs(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.ClearMediaRefs")
	defer span.End()

	ub := database.NewUpdateBuilder()
	ub.Update(tableName)
	ub.Set(
		ub.Assign("logo_media_id", nil),
		ub.Assign("og_media_id", nil),
		ub.Assign("twitter_media_id", nil),
	)
	ub.Where("logo_media_id IS NOT NULL OR og_media_id IS NOT NULL OR twitter_media_id IS NOT NULL")

	query, args := ub.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to clear client media refs")
		return fmt.Errorf("failed to clear client media refs: %w", err)
	}

	return nil
}

// DeleteAll removes every client row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ClientRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete clients")
		return 0, fmt.Errorf("failed to delete clients: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
