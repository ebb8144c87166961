package article

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

// ArticleRepository defines the interface for article persistence, including
// the tag, related-article and version link tables.
type ArticleRepository interface {
	Upsert(ctx context.Context, article models.Article) (*models.Article, error)
	GetBySlug(ctx context.Context, slug string) (*models.Article, error)
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status models.ArticleStatus) (int, error)
	DeleteAll(ctx context.Context) (int64, error)

	AttachTag(ctx context.Context, articleID, tagID string) error
	DeleteAllTags(ctx context.Context) (int64, error)
	CountTags(ctx context.Context) (int, error)

	AddRelated(ctx context.Context, articleID, relatedID string) error
	DeleteAllRelated(ctx context.Context) (int64, error)
	CountRelated(ctx context.Context) (int, error)

	AddVersion(ctx context.Context, version models.ArticleVersion) error
	DeleteAllVersions(ctx context.Context) (int64, error)
	CountVersions(ctx context.Context) (int, error)
}

// Repository implements ArticleRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new article repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const (
	tableName         = "articles"
	tagTableName      = "article_tags"
	relatedTableName  = "related_articles"
	versionsTableName = "article_versions"
)

var (
	articleStruct = database.NewStruct(new(models.Article))
	versionStruct = database.NewStruct(new(models.ArticleVersion))
)

// Upsert inserts the article or refreshes the existing row keyed by slug.
func (r *Repository) Upsert(ctx context.Context, article models.Article) (*models.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.Upsert")
	defer span.End()

	now := time.Now().UTC()
	if article.ID == "" {
		article.ID = uuid.New().String()
	}
	article.CreatedAt = now
	article.UpdatedAt = now

	ib := articleStruct.InsertInto(tableName, article)
	ub := ib.OnConflict("slug")
	ub.Set(
		ub.Assign("title", database.Excluded("title")),
		ub.Assign("body", database.Excluded("body")),
		ub.Assign("excerpt", database.Excluded("excerpt")),
		ub.Assign("status", database.Excluded("status")),
		ub.Assign("length", database.Excluded("length")),
		ub.Assign("client_id", database.Excluded("client_id")),
		ub.Assign("category_id", database.Excluded("category_id")),
		ub.Assign("author_id", database.Excluded("author_id")),
		ub.Assign("published_at", database.Excluded("published_at")),
		ub.Assign("updated_at", now),
	)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"slug": article.Slug,
		}).Error("failed to upsert article")
		return nil, fmt.Errorf("failed to upsert article: %w", err)
	}

	return r.GetBySlug(ctx, article.Slug)
}

// GetBySlug gets an article by slug
func (r *Repository) GetBySlug(ctx context.Context, slug string) (*models.Article, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.GetBySlug")
	defer span.End()

	sb := articleStruct.SelectFrom(tableName)
	sb.Where(sb.Equal("slug", slug))

	query, args := sb.Build()

	var article models.Article
	err := r.db.GetContext(ctx, &article, query, args...)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		r.logger.WithContext(ctx).WithError(err).Error("failed to get article by slug")
		return nil, fmt.Errorf("failed to get article: %w", err)
	}

	return &article, nil
}

// Count returns the number of article rows
func (r *Repository) Count(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.Count")
	defer span.End()

	return r.countTable(ctx, tableName)
}

// CountByStatus returns the number of articles in the given publication state
func (r *Repository) CountByStatus(ctx context.Context, status models.ArticleStatus) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.CountByStatus")
	defer span.End()

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(tableName)
	sb.Where(sb.Equal("status", string(status)))

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).Error("failed to count articles by status")
		return 0, fmt.Errorf("failed to count articles by status: %w", err)
	}

	return count, nil
}

// DeleteAll removes every article row and reports how many were deleted.
func (r *Repository) DeleteAll(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.DeleteAll")
	defer span.End()

	return r.deleteTable(ctx, tableName)
}

// AttachTag links a tag to an article. Re-linking the same pair is a no-op.
func (r *Repository) AttachTag(ctx context.Context, articleID, tagID string) error {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.AttachTag")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(tagTableName)
	ib.Cols("article_id", "tag_id")
	ib.Values(articleID, tagID)
	ib.OnConflictDoNothing()

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"article_id": articleID,
			"tag_id":     tagID,
		}).Error("failed to attach tag to article")
		return fmt.Errorf("failed to attach tag to article: %w", err)
	}

	return nil
}

// DeleteAllTags clears the article/tag link table.
func (r *Repository) DeleteAllTags(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.DeleteAllTags")
	defer span.End()

	return r.deleteTable(ctx, tagTableName)
}

// CountTags returns the number of article/tag links
func (r *Repository) CountTags(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.CountTags")
	defer span.End()

	return r.countTable(ctx, tagTableName)
}

// AddRelated links an article to a related article. Duplicate pairs are a no-op.
func (r *Repository) AddRelated(ctx context.Context, articleID, relatedID string) error {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.AddRelated")
	defer span.End()

	ib := database.NewInsertBuilder()
	ib.InsertInto(relatedTableName)
	ib.Cols("id", "article_id", "related_article_id", "created_at")
	ib.Values(uuid.New().String(), articleID, relatedID, time.Now().UTC())
	ib.OnConflictDoNothing()

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"article_id": articleID,
			"related_id": relatedID,
		}).Error("failed to add related article")
		return fmt.Errorf("failed to add related article: %w", err)
	}

	return nil
}

// DeleteAllRelated clears the related-article link table.
func (r *Repository) DeleteAllRelated(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.DeleteAllRelated")
	defer span.End()

	return r.deleteTable(ctx, relatedTableName)
}

// CountRelated returns the number of related-article links
func (r *Repository) CountRelated(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.CountRelated")
	defer span.End()

	return r.countTable(ctx, relatedTableName)
}

// AddVersion appends a body snapshot for an article.
func (r *Repository) AddVersion(ctx context.Context, version models.ArticleVersion) error {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.AddVersion")
	defer span.End()

	if version.ID == "" {
		version.ID = uuid.New().String()
	}
	version.CreatedAt = time.Now().UTC()

	ib := versionStruct.InsertInto(versionsTableName, version)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"article_id": version.ArticleID,
			"version":    version.Version,
		}).Error("failed to add article version")
		return fmt.Errorf("failed to add article version: %w", err)
	}

	return nil
}

// DeleteAllVersions clears the version history table.
func (r *Repository) DeleteAllVersions(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.DeleteAllVersions")
	defer span.End()

	return r.deleteTable(ctx, versionsTableName)
}

// CountVersions returns the number of version snapshots
func (r *Repository) CountVersions(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "ArticleRepository.CountVersions")
	defer span.End()

	return r.countTable(ctx, versionsTableName)
}

func (r *Repository) countTable(ctx context.Context, table string) (int, error) {
	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(table)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to count rows")
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

func (r *Repository) deleteTable(ctx context.Context, table string) (int64, error) {
	db := database.NewDeleteBuilder()
	db.DeleteFrom(table)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to delete rows")
		return 0, fmt.Errorf("failed to delete %s: %w", table, err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
