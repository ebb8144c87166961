package seeder

import (
	"context"
	"fmt"
	"time"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/distribution"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// seedFAQs resolves question/answer pairs for every published article.
func (s *Seeder) seedFAQs(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedFAQs")
	defer span.End()

	em := st.events.WithStep("faqs")

	published := st.published()
	perArticle := distribution.ScaleRange(st.opts.Total, 2, 4)

	for i, a := range published {
		want := perArticle.Sample(st.rng)
		result, err := st.resolver.Resolve(ctx, content.Request{
			Type:  content.TypeFAQTemplates,
			Brief: st.opts.Brief,
			Topic: a.Title,
			Count: want,
		})
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"article": a.Slug,
			}).Error("failed to resolve faqs, skipping article")
			continue
		}

		for pos, item := range result.Items {
			if _, err := s.repos.FAQs.Create(ctx, models.FAQ{
				ArticleID: a.ID,
				Question:  item.Text,
				Answer:    item.Answer,
				Position:  pos,
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create faq, skipping")
			}
		}

		progress(em, i+1, len(published), "faqs")
	}

	return nil
}

// seedSubscribers creates a scaled batch of newsletter signups.
func (s *Seeder) seedSubscribers(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedSubscribers")
	defer span.End()

	em := st.events.WithStep("subscribers")

	count := distribution.ScaleRange(st.opts.Total, 8, 20).Sample(st.rng)
	for i := 0; i < count; i++ {
		name := commenterNamePool[i%len(commenterNamePool)]
		email := fmt.Sprintf("%s%d@example.com", slugify(name), i+1)

		if err := s.repos.Subscribers.Upsert(ctx, models.Subscriber{
			Email:        email,
			Name:         name,
			SubscribedAt: st.now.Add(-time.Duration(st.rng.Int63n(int64(90 * 24 * time.Hour)))),
		}); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("failed to seed subscriber, skipping")
			continue
		}

		progress(em, i+1, count, "subscribers")
	}

	return nil
}

// seedSettings upserts the site configuration singleton.
func (s *Seeder) seedSettings(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedSettings")
	defer span.End()

	_, err := s.repos.Settings.Upsert(ctx, models.Settings{
		Key:          settingsKey,
		SiteName:     "Modonty",
		SiteTagline:  "Expert content for every client vertical",
		ContactEmail: "contact@modonty.dev",
	})
	if err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	return nil
}

// seedComments attaches reader comments to published articles; some are
// one-level replies to a comment created earlier on the same article.
func (s *Seeder) seedComments(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedComments")
	defer span.End()

	em := st.events.WithStep("comments")

	published := st.published()
	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 4, 0)

	for i, a := range published {
		n := perArticle.Sample(st.rng)
		var local []models.Comment
		for j := 0; j < n; j++ {
			c := models.Comment{
				ArticleID:  a.ID,
				AuthorName: pick(st.rng, commenterNamePool),
				Body:       pick(st.rng, commentBodyPool),
			}
			if len(local) > 0 && st.rng.Intn(3) == 0 {
				parent := pick(st.rng, local)
				c.ParentID = &parent.ID
			}

			created, err := s.repos.Comments.CreateComment(ctx, c)
			if err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create comment, skipping")
				continue
			}
			local = append(local, *created)
		}
		st.comments = append(st.comments, local...)

		progress(em, i+1, len(published), "comments")
	}

	return nil
}

// seedClientComments attaches profile comments to every client.
func (s *Seeder) seedClientComments(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedClientComments")
	defer span.End()

	em := st.events.WithStep("client-comments")

	perClient := distribution.ScaleRangeFloor(st.opts.Total, 0, 3, 0)
	for i, c := range st.clients {
		n := perClient.Sample(st.rng)
		var local []models.ClientComment
		for j := 0; j < n; j++ {
			cc := models.ClientComment{
				ClientID:   c.ID,
				AuthorName: pick(st.rng, commenterNamePool),
				Body:       pick(st.rng, commentBodyPool),
			}
			if len(local) > 0 && st.rng.Intn(4) == 0 {
				parent := pick(st.rng, local)
				cc.ParentID = &parent.ID
			}

			created, err := s.repos.Comments.CreateClientComment(ctx, cc)
			if err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to create client comment, skipping")
				continue
			}
			local = append(local, *created)
		}

		progress(em, i+1, len(st.clients), "client comments")
	}

	return nil
}
