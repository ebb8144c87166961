package comment

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

// CommentRepository defines the interface for article and client comment
// persistence. Both tables thread replies one level deep via parent_id.
type CommentRepository interface {
	CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error)
	CountComments(ctx context.Context) (int, error)
	ClearCommentParentRefs(ctx context.Context) error
	DeleteAllComments(ctx context.Context) (int64, error)

	CreateClientComment(ctx context.Context, comment models.ClientComment) (*models.ClientComment, error)
	CountClientComments(ctx context.Context) (int, error)
	ClearClientCommentParentRefs(ctx context.Context) error
	DeleteAllClientComments(ctx context.Context) (int64, error)
}

// Repository implements CommentRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new comment repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

const (
	commentTableName       = "comments"
	clientCommentTableName = "client_comments"
)

var (
	commentStruct       = database.NewStruct(new(models.Comment))
	clientCommentStruct = database.NewStruct(new(models.ClientComment))
)

// CreateComment inserts an article comment and returns it with its ID.
func (r *Repository) CreateComment(ctx context.Context, comment models.Comment) (*models.Comment, error) {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.CreateComment")
	defer span.End()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now().UTC()

	ib := commentStruct.InsertInto(commentTableName, comment)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"article_id": comment.ArticleID,
		}).Error("failed to create comment")
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	return &comment, nil
}

// CountComments returns the number of article comment rows
func (r *Repository) CountComments(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.CountComments")
	defer span.End()

	return r.countTable(ctx, commentTableName)
}

// ClearCommentParentRefs nulls reply threading so comments delete in one pass.
func (r *Repository) ClearCommentParentRefs(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.ClearCommentParentRefs")
	defer span.End()

	return r.clearParentRefs(ctx, commentTableName)
}

// DeleteAllComments removes every article comment row.
func (r *Repository) DeleteAllComments(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.DeleteAllComments")
	defer span.End()

	return r.deleteTable(ctx, commentTableName)
}

// CreateClientComment inserts a client profile comment and returns it with its ID.
func (r *Repository) CreateClientComment(ctx context.Context, comment models.ClientComment) (*models.ClientComment, error) {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.CreateClientComment")
	defer span.End()

	if comment.ID == "" {
		comment.ID = uuid.New().String()
	}
	comment.CreatedAt = time.Now().UTC()

	ib := clientCommentStruct.InsertInto(clientCommentTableName, comment)

	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"client_id": comment.ClientID,
		}).Error("failed to create client comment")
		return nil, fmt.Errorf("failed to create client comment: %w", err)
	}

	return &comment, nil
}

// CountClientComments returns the number of client comment rows
func (r *Repository) CountClientComments(ctx context.Context) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.CountClientComments")
	defer span.End()

	return r.countTable(ctx, clientCommentTableName)
}

// ClearClientCommentParentRefs nulls reply threading on client comments.
func (r *Repository) ClearClientCommentParentRefs(ctx context.Context) error {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.ClearClientCommentParentRefs")
	defer span.End()

	return r.clearParentRefs(ctx, clientCommentTableName)
}

// DeleteAllClientComments removes every client comment row.
func (r *Repository) DeleteAllClientComments(ctx context.Context) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "CommentRepository.DeleteAllClientComments")
	defer span.End()

	return r.deleteTable(ctx, clientCommentTableName)
}

func (r *Repository) clearParentRefs(ctx context.Context, table string) error {
	ub := database.NewUpdateBuilder()
	ub.Update(table)
	ub.Set(ub.Assign("parent_id", nil))
	ub.Where(ub.IsNotNull("parent_id"))

	query, args := ub.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to clear comment parent refs")
		return fmt.Errorf("failed to clear parent refs on %s: %w", table, err)
	}

	return nil
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
		}).Error("failed to count comments")
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
		}).Error("failed to delete comments")
		return 0, fmt.Errorf("failed to delete %s: %w", table, err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}
