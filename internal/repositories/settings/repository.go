package settings

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

// SettingsRepository defines the interface for the site settings singleton.
type SettingsRepository interface {
	Upsert(ctx context.Context, settings models.Settings) (*models.Settings, error)
	GetByKey(ctx context.Context, key string) (*models.Settings, error)
	Count(ctx context.Context) (int, error)
	DeleteAll(ctx context.Context) (int64, error)
}

// Repository implements SettingsRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new settings repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const tableName = "settings"

var settingsStruct = database.NewStruct(new(models.Settings))

// Upsert inserts the settings row or refreshes the existing one keyed by key.
func (r *Repository) Upsert(ctx context.Context, settings models.Settings) (*models.Settings, error) {
	ctx, span := tracing.StartSpan(ctx, "SettingsRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if settings.ID == "" {
		settings.ID = uuid.New().String()
	}
	settings.CreatedAt = now
	settings.UpdatedAt = now

	ib := settingsStruct.InsertInto(tableName, settings)
	ub := ib.OnConflict("\"key\"")
	ub.Set(
		ub.Assign("site_name", database.Excluded("site_name")),
		ub.Assign("site_tagline", database.Excluded("site_tagline")),
		ub.Assign("contact_email", database.Excluded("contact_email")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"key": settings.Key,
		}).Error("failed to upsert settings")
		return nil, fmt.Errorf("failed to upsert settings: %w", err)
	}

	return r.GetByKey(ctx, settings.Key)
}

// GetByKey gets the settings row by its key
func (r *Repository) GetByKey(ctx context.Context, key string) (*models.Settings, error) {
	ctx, span := tracing.StartSpan(ctx, "SettingsRepository.GetByKey")
	defer span.End()

	sb := settingsStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("\"key\"", key))

	query, args := sb.Build()

	var settings models.Settings
	err := r.db.GetContext(ctx, &settings, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get settings by key")
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	return &settings, nil
}

// Count returns the number of settings rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "SettingsRepository.Count")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count settings")
		return 0, fmt.Errorf("failed to count settings: %w", err)
	}

	return count, nil
}

// DeleteAll removes the settings row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "SettingsRepository.DeleteAll")
	defer span.End()

	db := database.NewDeleteBuilder()
	db.DeleteFrom(tableName)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to delete settings")
		return 0, fmt.Errorf("failed to delete settings: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
