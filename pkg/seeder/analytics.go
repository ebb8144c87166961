package seeder

import (
	"context"
	"time"

	"github.com/modonty1-rgb/modonty-sub003/pkg/distribution"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// engagementTime samples a timestamp between the article's publish time (or
// the last 90 days when unknown) and now.
func (st *state) engagementTime(a models.Article) time.Time {
	since := st.now.Add(-90 * 24 * time.Hour)
	if a.PublishedAt != nil && a.PublishedAt.Before(st.now) {
		since = *a.PublishedAt
	}
	window := st.now.Sub(since)
	if window <= 0 {
		return st.now
	}
	return since.Add(time.Duration(st.rng.Int63n(int64(window))))
}

// seedReactions records likes and dislikes on published articles.
func (s *Seeder) seedReactions(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedReactions")
	defer span.End()

	em := st.events.WithStep("analytics")

	published := st.published()
	likes := distribution.ScaleRange(st.opts.Total, 5, 25)
	dislikes := distribution.ScaleRangeFloor(st.opts.Total, 0, 6, 0)

	for i, a := range published {
		for j, kind := range []models.ReactionKind{models.ReactionLike, models.ReactionDislike} {
			count := likes.Sample(st.rng)
			if j == 1 {
				count = dislikes.Sample(st.rng)
			}
			for k := 0; k < count; k++ {
				if err := s.repos.Engagement.CreateReaction(ctx, models.Reaction{
					ArticleID: a.ID,
					Kind:      kind,
					CreatedAt: st.engagementTime(a),
				}); err != nil {
					s.logger.WithContext(ctx).WithError(err).Error("failed to create reaction, skipping")
				}
			}
		}

		progress(em, i+1, len(published), "reactions")
	}

	return nil
}

// seedViews records page views for published articles.
func (s *Seeder) seedViews(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedViews")
	defer span.End()

	em := st.events.WithStep("views")

	published := st.published()
	perArticle := distribution.ScaleRange(st.opts.Total, 20, 80)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateView(ctx, models.ArticleView{
				ArticleID:   a.ID,
				UserAgent:   pick(st.rng, userAgentPool),
				CountryCode: pick(st.rng, countryCodePool),
				ViewedAt:    st.engagementTime(a),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create view, skipping")
			}
		}

		progress(em, i+1, len(published), "views")
	}

	return nil
}

// seedShares records social shares for published articles.
func (s *Seeder) seedShares(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedShares")
	defer span.End()

	em := st.events.WithStep("shares")

	published := st.published()
	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 10, 0)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateShare(ctx, models.Share{
				ArticleID: a.ID,
				Network:   pick(st.rng, shareNetworkPool),
				SharedAt:  st.engagementTime(a),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create share, skipping")
			}
		}

		progress(em, i+1, len(published), "shares")
	}

	return nil
}

// seedConversions records goal completions per client, most attributed to one
// of the client's published articles.
func (s *Seeder) seedConversions(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedConversions")
	defer span.End()

	em := st.events.WithStep("conversions")

	byClient := make(map[string][]models.Article)
	for _, a := range st.published() {
		byClient[a.ClientID] = append(byClient[a.ClientID], a)
	}

	perClient := distribution.ScaleRangeFloor(st.opts.Total, 1, 5, 0)
	for i, c := range st.clients {
		n := perClient.Sample(st.rng)
		for j := 0; j < n; j++ {
			conv := models.Conversion{
				ClientID:    c.ID,
				ValueUSD:    50 + st.rng.Intn(950),
				ConvertedAt: st.now.Add(-time.Duration(st.rng.Int63n(int64(90 * 24 * time.Hour)))),
			}
			if articles := byClient[c.ID]; len(articles) > 0 && st.rng.Intn(4) != 0 {
				a := pick(st.rng, articles)
				conv.ArticleID = &a.ID
			}

			if err := s.repos.Engagement.CreateConversion(ctx, conv); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create conversion, skipping")
			}
		}

		progress(em, i+1, len(st.clients), "conversions")
	}

	return nil
}

// seedCTAClicks records call-to-action clicks on published articles.
func (s *Seeder) seedCTAClicks(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedCTAClicks")
	defer span.End()

	em := st.events.WithStep("cta-clicks")

	published := st.published()
	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 6, 0)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateCTAClick(ctx, models.CTAClick{
				ArticleID: a.ID,
				Label:     pick(st.rng, ctaLabelPool),
				ClickedAt: st.engagementTime(a),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create cta click, skipping")
			}
		}

		progress(em, i+1, len(published), "cta clicks")
	}

	return nil
}

// seedCampaignAttributions ties article traffic to marketing campaigns.
func (s *Seeder) seedCampaignAttributions(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedCampaignAttributions")
	defer span.End()

	em := st.events.WithStep("campaign-attributions")

	published := st.published()
	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 3, 0)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateCampaignAttribution(ctx, models.CampaignAttribution{
				ArticleID:    a.ID,
				Campaign:     pick(st.rng, campaignPool),
				Source:       pick(st.rng, campaignSourcePool),
				Medium:       pick(st.rng, campaignMediumPool),
				AttributedAt: st.engagementTime(a),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create campaign attribution, skipping")
			}
		}

		progress(em, i+1, len(published), "campaign attributions")
	}

	return nil
}

// seedLeadScores snapshots a lead score per client.
func (s *Seeder) seedLeadScores(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedLeadScores")
	defer span.End()

	em := st.events.WithStep("lead-scores")

	perClient := distribution.ScaleRange(st.opts.Total, 1, 3)
	for i, c := range st.clients {
		n := perClient.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateLeadScore(ctx, models.LeadScore{
				ClientID:   c.ID,
				Score:      st.rng.Intn(101),
				CapturedAt: st.now.Add(-time.Duration(j) * 30 * 24 * time.Hour),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create lead score, skipping")
			}
		}

		progress(em, i+1, len(st.clients), "lead scores")
	}

	return nil
}

// seedEngagementDurations records time-on-page samples for published articles.
func (s *Seeder) seedEngagementDurations(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedEngagementDurations")
	defer span.End()

	em := st.events.WithStep("engagement-durations")

	published := st.published()
	perArticle := distribution.ScaleRange(st.opts.Total, 3, 12)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateDuration(ctx, models.EngagementDuration{
				ArticleID: a.ID,
				Seconds:   10 + st.rng.Intn(590),
				SampledAt: st.engagementTime(a),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create engagement duration, skipping")
			}
		}

		progress(em, i+1, len(published), "engagement durations")
	}

	return nil
}

// seedLinkClicks records outbound link clicks from published article bodies.
func (s *Seeder) seedLinkClicks(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedLinkClicks")
	defer span.End()

	em := st.events.WithStep("link-clicks")

	published := st.published()
	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 5, 0)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateLinkClick(ctx, models.LinkClick{
				ArticleID: a.ID,
				TargetURL: pick(st.rng, linkTargetPool),
				ClickedAt: st.engagementTime(a),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create link click, skipping")
			}
		}

		progress(em, i+1, len(published), "link clicks")
	}

	return nil
}

// seedInteractions spreads generic engagement rows across published articles,
// clients and comments.
func (s *Seeder) seedInteractions(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedInteractions")
	defer span.End()

	em := st.events.WithStep("interactions")

	type subject struct {
		kind models.InteractionSubject
		id   string
	}
	var subjects []subject
	for _, a := range st.published() {
		subjects = append(subjects, subject{models.InteractionSubjectArticle, a.ID})
	}
	for _, c := range st.clients {
		subjects = append(subjects, subject{models.InteractionSubjectClient, c.ID})
	}
	for _, c := range st.comments {
		subjects = append(subjects, subject{models.InteractionSubjectComment, c.ID})
	}

	perSubject := distribution.ScaleRangeFloor(st.opts.Total, 0, 3, 0)
	for i, sub := range subjects {
		n := perSubject.Sample(st.rng)
		for j := 0; j < n; j++ {
			if err := s.repos.Engagement.CreateInteraction(ctx, models.Interaction{
				SubjectType: sub.kind,
				SubjectID:   sub.id,
				Kind:        pick(st.rng, interactionKindPool),
				CreatedAt:   st.now.Add(-time.Duration(st.rng.Int63n(int64(60 * 24 * time.Hour)))),
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create interaction, skipping")
			}
		}

		progress(em, i+1, len(subjects), "interactions")
	}

	return nil
}
