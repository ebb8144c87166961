package seeder

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/distribution"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

var statusBuckets = []distribution.Bucket{
	{Name: string(models.ArticleStatusPublished), Weight: 0.6},
	{Name: string(models.ArticleStatusDraft), Weight: 0.4},
}

var lengthBuckets = []distribution.Bucket{
	{Name: string(models.ArticleLengthShort), Weight: 0.3},
	{Name: string(models.ArticleLengthMedium), Weight: 0.4},
	{Name: string(models.ArticleLengthLong), Weight: 0.3},
}

// seedArticles creates the requested corpus: status split 60/40 published to
// draft, length split 30/40/30, publish timestamps uniform over the last
// twelve months. Clients are assigned round-robin so ownership stays even.
func (s *Seeder) seedArticles(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedArticles")
	defer span.End()

	if len(st.clients) == 0 {
		return ErrNoClients
	}
	if st.author == nil {
		return fmt.Errorf("author singleton is missing")
	}
	if len(st.categories) == 0 {
		return fmt.Errorf("no categories available for articles")
	}

	em := st.events.WithStep("articles")
	total := st.opts.Total

	statuses := distribution.SplitWeighted(total, statusBuckets, st.rng)
	lengths := distribution.SplitWeighted(total, lengthBuckets, st.rng)

	titles := s.resolveTitles(ctx, st, total)

	seenSlugs := make(map[string]bool)
	for i := 0; i < total; i++ {
		title := titles[i]
		slug := slugify(title)
		for n := 2; seenSlugs[slug]; n++ {
			slug = fmt.Sprintf("%s-%d", slugify(title), n)
		}
		seenSlugs[slug] = true

		length := models.ArticleLength(lengths[i])
		body := s.resolveBody(ctx, st, title, length)

		a := models.Article{
			Slug:       slug,
			Title:      title,
			Body:       body,
			Excerpt:    excerpt(body),
			Status:     models.ArticleStatus(statuses[i]),
			Length:     length,
			ClientID:   st.clients[i%len(st.clients)].ID,
			CategoryID: pick(st.rng, st.categories).ID,
			AuthorID:   st.author.ID,
		}
		if a.Status == models.ArticleStatusPublished {
			publishedAt := st.now.Add(-time.Duration(st.rng.Int63n(int64(365 * 24 * time.Hour))))
			a.PublishedAt = &publishedAt
		}

		created, err := s.repos.Articles.Upsert(ctx, a)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"slug": slug,
			}).Error("failed to seed article, skipping")
			continue
		}
		st.articles = append(st.articles, *created)

		progress(em, i+1, total, "articles")
	}

	return nil
}

// resolveTitles asks the chain for the full batch and pads with numbered
// variants when a tier returned fewer than requested.
func (s *Seeder) resolveTitles(ctx context.Context, st *state, total int) []string {
	var titles []string
	result, err := st.resolver.Resolve(ctx, content.Request{
		Type:  content.TypeArticleTitles,
		Brief: st.opts.Brief,
		Count: total,
	})
	if err == nil {
		for _, item := range result.Items {
			titles = append(titles, item.Text)
		}
	} else {
		s.logger.WithContext(ctx).WithError(err).Error("failed to resolve article titles")
	}

	resolved := len(titles)
	for i := 0; len(titles) < total; i++ {
		if resolved == 0 {
			titles = append(titles, fmt.Sprintf("Industry briefing %d", i+1))
			continue
		}
		titles = append(titles, fmt.Sprintf("%s, part %d", titles[i%resolved], i/resolved+2))
	}

	return titles[:total]
}

func (s *Seeder) resolveBody(ctx context.Context, st *state, title string, length models.ArticleLength) string {
	result, err := st.resolver.Resolve(ctx, content.Request{
		Type:   content.TypeArticleBody,
		Brief:  st.opts.Brief,
		Topic:  title,
		Length: content.LengthClass(length),
		Count:  1,
	})
	if err != nil || len(result.Items) == 0 {
		s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
			"title": title,
		}).Error("failed to resolve article body, using minimal text")
		return fmt.Sprintf("%s.\n\nContent pending.", title)
	}
	return result.Items[0].Text
}

func excerpt(body string) string {
	const max = 180
	if len(body) <= max {
		return body
	}
	cut := body[:max]
	for i := len(cut) - 1; i > 0; i-- {
		if cut[i] == ' ' {
			return cut[:i] + "…"
		}
	}
	// No space to break on; back off to a rune boundary so the cut cannot
	// split a multibyte character.
	for len(cut) > 0 {
		r, size := utf8.DecodeLastRuneInString(cut)
		if r != utf8.RuneError || size != 1 {
			break
		}
		cut = cut[:len(cut)-1]
	}
	return cut + "…"
}

// seedArticleTags links each article to a scaled handful of distinct tags.
func (s *Seeder) seedArticleTags(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedArticleTags")
	defer span.End()

	if len(st.tags) == 0 {
		return nil
	}

	em := st.events.WithStep("article-tags")
	perArticle := distribution.ScaleRange(st.opts.Total, 2, 5)

	for i, a := range st.articles {
		n := perArticle.Sample(st.rng)
		if n > len(st.tags) {
			n = len(st.tags)
		}
		for _, idx := range st.rng.Perm(len(st.tags))[:n] {
			if err := s.repos.Articles.AttachTag(ctx, a.ID, st.tags[idx].ID); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to attach tag, skipping")
			}
		}

		progress(em, i+1, len(st.articles), "article tags")
	}

	return nil
}

// seedRelatedArticles links articles within the same category.
func (s *Seeder) seedRelatedArticles(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedRelatedArticles")
	defer span.End()

	em := st.events.WithStep("related-articles")

	byCategory := make(map[string][]models.Article)
	for _, a := range st.articles {
		byCategory[a.CategoryID] = append(byCategory[a.CategoryID], a)
	}

	perArticle := distribution.ScaleRangeFloor(st.opts.Total, 0, 2, 0)
	linked := 0
	for _, group := range byCategory {
		if len(group) < 2 {
			continue
		}
		for i, a := range group {
			n := perArticle.Sample(st.rng)
			for j := 1; j <= n; j++ {
				related := group[(i+j)%len(group)]
				if related.ID == a.ID {
					continue
				}
				if err := s.repos.Articles.AddRelated(ctx, a.ID, related.ID); err != nil {
					s.logger.WithContext(ctx).WithError(err).Error("failed to link related article, skipping")
					continue
				}
				linked++
			}
		}
	}

	em.Info(fmt.Sprintf("linked %d related articles", linked))
	return nil
}

// seedArticleVersions snapshots every article once and revises some a second time.
func (s *Seeder) seedArticleVersions(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedArticleVersions")
	defer span.End()

	em := st.events.WithStep("article-versions")

	for i, a := range st.articles {
		if err := s.repos.Articles.AddVersion(ctx, models.ArticleVersion{
			ArticleID: a.ID,
			Version:   1,
			Title:     a.Title,
			Body:      a.Body,
		}); err != nil {
			s.logger.WithContext(ctx).WithError(err).Error("failed to add article version, skipping")
			continue
		}

		if st.rng.Intn(5) < 2 {
			if err := s.repos.Articles.AddVersion(ctx, models.ArticleVersion{
				ArticleID: a.ID,
				Version:   2,
				Title:     a.Title + " (revised)",
				Body:      a.Body,
			}); err != nil {
				s.logger.WithContext(ctx).WithError(err).Error("failed to add article revision, skipping")
			}
		}

		progress(em, i+1, len(st.articles), "article versions")
	}

	return nil
}
