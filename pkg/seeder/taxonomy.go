package seeder

import (
	"context"
	"fmt"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/distribution"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// seedCategories resolves a category vocabulary and builds an acyclic tree:
// a child's parent is always a category created earlier in this loop.
func (s *Seeder) seedCategories(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedCategories")
	defer span.End()

	em := st.events.WithStep("categories")

	want := distribution.ScaleRange(st.opts.Total, 4, 8).Sample(st.rng)
	result, err := st.resolver.Resolve(ctx, content.Request{
		Type:  content.TypeCategoryVocabulary,
		Brief: st.opts.Brief,
		Count: want,
	})
	if err != nil {
		return fmt.Errorf("failed to resolve category vocabulary: %w", err)
	}

	seen := make(map[string]bool)
	for i, item := range result.Items {
		slug := slugify(item.Text)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		c := models.Category{
			Slug:        slug,
			Name:        item.Text,
			Description: fmt.Sprintf("Articles about %s.", item.Text),
		}
		// Later entries nest under an earlier one about a third of the time.
		if len(st.categories) > 1 && st.rng.Intn(3) == 0 {
			parent := pick(st.rng, st.categories)
			c.ParentID = &parent.ID
		}

		created, err := s.repos.Categories.Upsert(ctx, c)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"slug": slug,
			}).Error("failed to seed category, skipping")
			continue
		}
		st.categories = append(st.categories, *created)

		progress(em, i+1, len(result.Items), "categories")
	}

	if len(st.categories) == 0 {
		return fmt.Errorf("no categories could be created")
	}

	return nil
}

// seedTags merges tag vocabulary from every contributing tier (news, AI,
// static) case-insensitively and upserts one row per distinct name.
func (s *Seeder) seedTags(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedTags")
	defer span.End()

	em := st.events.WithStep("tags")

	want := distribution.ScaleRange(st.opts.Total, 8, 16).Sample(st.rng)
	names := st.resolver.ResolveTagVocabulary(ctx, content.Request{
		Brief: st.opts.Brief,
		Count: want,
	})

	seen := make(map[string]bool)
	for i, name := range names {
		slug := slugify(name)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true

		created, err := s.repos.Tags.Upsert(ctx, models.Tag{
			Slug: slug,
			Name: name,
		})
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"slug": slug,
			}).Error("failed to seed tag, skipping")
			continue
		}
		st.tags = append(st.tags, *created)

		progress(em, i+1, len(names), "tags")
	}

	return nil
}
