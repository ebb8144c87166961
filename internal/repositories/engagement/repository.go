package engagement

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"
	"github.com/google/uuid"

	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// Engagement table names, ordered so each can be deleted before anything it
// references. They only point at articles, clients and comments, so among
// themselves any order works.
const (
	ViewsTable        = "article_views"
	ReactionsTable    = "reactions"
	SharesTable       = "shares"
	ConversionsTable  = "conversions"
	CTAClicksTable    = "cta_clicks"
	CampaignsTable    = "campaign_attributions"
	LeadScoresTable   = "lead_scores"
	DurationsTable    = "engagement_durations"
	LinkClicksTable   = "link_clicks"
	InteractionsTable = "interactions"
)

// Tables lists every engagement table in its reset order.
func Tables() []string {
	return []string{
		InteractionsTable,
		LinkClicksTable,
		DurationsTable,
		LeadScoresTable,
		CampaignsTable,
		CTAClicksTable,
		ConversionsTable,
		SharesTable,
		ReactionsTable,
		ViewsTable,
	}
}

// EngagementRepository defines the interface for the analytics tables.
type EngagementRepository interface {
	CreateView(ctx context.Context, view models.ArticleView) error
	CreateReaction(ctx context.Context, reaction models.Reaction) error
	CreateShare(ctx context.Context, share models.Share) error
	CreateConversion(ctx context.Context, conversion models.Conversion) error
	CreateCTAClick(ctx context.Context, click models.CTAClick) error
	CreateCampaignAttribution(ctx context.Context, attribution models.CampaignAttribution) error
	CreateLeadScore(ctx context.Context, score models.LeadScore) error
	CreateDuration(ctx context.Context, duration models.EngagementDuration) error
	CreateLinkClick(ctx context.Context, click models.LinkClick) error
	CreateInteraction(ctx context.Context, interaction models.Interaction) error

	Count(ctx context.Context, table string) (int, error)
	DeleteAll(ctx context.Context, table string) (int64, error)
}

// Repository implements EngagementRepository
type Repository struct {
	db     database.DB
	logger ectologger.Logger
}

// NewRepository creates a new engagement repository
func NewRepository(db database.DB, logger ectologger.Logger) *Repository {
	return &Repository{
		db:     db,
		logger: logger,
	}
}

var (
	viewStruct        = database.NewStruct(new(models.ArticleView))
	reactionStruct    = database.NewStruct(new(models.Reaction))
	shareStruct       = database.NewStruct(new(models.Share))
	conversionStruct  = database.NewStruct(new(models.Conversion))
	ctaClickStruct    = database.NewStruct(new(models.CTAClick))
	campaignStruct    = database.NewStruct(new(models.CampaignAttribution))
	leadScoreStruct   = database.NewStruct(new(models.LeadScore))
	durationStruct    = database.NewStruct(new(models.EngagementDuration))
	linkClickStruct   = database.NewStruct(new(models.LinkClick))
	interactionStruct = database.NewStruct(new(models.Interaction))
)

func (r *Repository) CreateView(ctx context.Context, view models.ArticleView) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateView")
	defer span.End()

	if view.ID == "" {
		view.ID = uuid.New().String()
	}
	return r.insert(ctx, ViewsTable, viewStruct.InsertInto(ViewsTable, view))
}

func (r *Repository) CreateReaction(ctx context.Context, reaction models.Reaction) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateReaction")
	defer span.End()

	if reaction.ID == "" {
		reaction.ID = uuid.New().String()
	}
	return r.insert(ctx, ReactionsTable, reactionStruct.InsertInto(ReactionsTable, reaction))
}

func (r *Repository) CreateShare(ctx context.Context, share models.Share) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateShare")
	defer span.End()

	if share.ID == "" {
		share.ID = uuid.New().String()
	}
	return r.insert(ctx, SharesTable, shareStruct.InsertInto(SharesTable, share))
}

func (r *Repository) CreateConversion(ctx context.Context, conversion models.Conversion) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateConversion")
	defer span.End()

	if conversion.ID == "" {
		conversion.ID = uuid.New().String()
	}
	return r.insert(ctx, ConversionsTable, conversionStruct.InsertInto(ConversionsTable, conversion))
}

func (r *Repository) CreateCTAClick(ctx context.Context, click models.CTAClick) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateCTAClick")
	defer span.End()

	if click.ID == "" {
		click.ID = uuid.New().String()
	}
	return r.insert(ctx, CTAClicksTable, ctaClickStruct.InsertInto(CTAClicksTable, click))
}

func (r *Repository) CreateCampaignAttribution(ctx context.Context, attribution models.CampaignAttribution) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateCampaignAttribution")
	defer span.End()

	if attribution.ID == "" {
		attribution.ID = uuid.New().String()
	}
	return r.insert(ctx, CampaignsTable, campaignStruct.InsertInto(CampaignsTable, attribution))
}

func (r *Repository) CreateLeadScore(ctx context.Context, score models.LeadScore) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateLeadScore")
	defer span.End()

	if score.ID == "" {
		score.ID = uuid.New().String()
	}
	return r.insert(ctx, LeadScoresTable, leadScoreStruct.InsertInto(LeadScoresTable, score))
}

func (r *Repository) CreateDuration(ctx context.Context, duration models.EngagementDuration) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateDuration")
	defer span.End()

	if duration.ID == "" {
		duration.ID = uuid.New().String()
	}
	return r.insert(ctx, DurationsTable, durationStruct.InsertInto(DurationsTable, duration))
}

func (r *Repository) CreateLinkClick(ctx context.Context, click models.LinkClick) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateLinkClick")
	defer span.End()

	if click.ID == "" {
		click.ID = uuid.New().String()
	}
	return r.insert(ctx, LinkClicksTable, linkClickStruct.InsertInto(LinkClicksTable, click))
}

func (r *Repository) CreateInteraction(ctx context.Context, interaction models.Interaction) error {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.CreateInteraction")
	defer span.End()

	if interaction.ID == "" {
		interaction.ID = uuid.New().String()
	}
	return r.insert(ctx, InteractionsTable, interactionStruct.InsertInto(InteractionsTable, interaction))
}

// Count returns the number of rows in one engagement table.
func (r *Repository) Count(ctx context.Context, table string) (int, error) {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.Count")
	defer span.End()

	if err := checkTable(table); err != nil {
		return 0, err
	}

	sb := database.NewSelectBuilder()
	sb.Select("COUNT(*)")
	sb.From(table)

	query, args := sb.Build()

	var count int
	err := r.db.GetContext(ctx, &count, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to count engagement rows")
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}

	return count, nil
}

// DeleteAll clears one engagement table and reports how many rows were deleted.
func (r *Repository) DeleteAll(ctx context.Context, table string) (int64, error) {
	ctx, span := tracing.StartSpan(ctx, "EngagementRepository.DeleteAll")
	defer span.End()

	if err := checkTable(table); err != nil {
		return 0, err
	}

	db := database.NewDeleteBuilder()
	db.DeleteFrom(table)

	query, args := db.Build()

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to delete engagement rows")
		return 0, fmt.Errorf("failed to delete %s: %w", table, err)
	}

	rows, _ := result.RowsAffected()
	return rows, nil
}

func (r *Repository) insert(ctx context.Context, table string, ib *database.InsertBuilder) error {
	query, args := ib.Build()

	_, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"table": table,
		}).Error("failed to insert engagement row")
		return fmt.Errorf("failed to insert into %s: %w", table, err)
	}

	return nil
}

func checkTable(table string) error {
	for _, known := range Tables() {
		if table == known {
			return nil
		}
	}
	return fmt.Errorf("unknown engagement table: %s", table)
}
