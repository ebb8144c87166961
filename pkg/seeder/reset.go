package seeder

import (
	"context"
	"fmt"

	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/engagement"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// resetStep clears one table. clear runs before delete to null the
// self-referencing and cross-aggregate foreign keys that would otherwise block
// the pass. Steps with zero rows skip both.
type resetStep struct {
	name   string
	count  func(ctx context.Context) (int, error)
	clear  []func(ctx context.Context) error
	delete func(ctx context.Context) (int64, error)
}

// reset deletes all generated data in strict reverse dependency order:
// deepest join and tracking tables first, then content, then aggregates.
// Idempotent: a second pass over an empty store finds zero rows everywhere.
func (s *Seeder) reset(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.reset")
	defer span.End()

	em := st.events.WithStep("reset")
	em.Info("resetting existing data")

	for _, step := range s.resetPlan() {
		count, err := step.count(ctx)
		if err != nil {
			return fmt.Errorf("reset: failed to count %s: %w", step.name, err)
		}

		s.logger.WithContext(ctx).WithFields(map[string]any{
			"table": step.name,
			"rows":  count,
		}).Info("reset step")

		if count == 0 {
			continue
		}

		for _, clear := range step.clear {
			if err := clear(ctx); err != nil {
				return fmt.Errorf("reset: failed to clear references on %s: %w", step.name, err)
			}
		}

		deleted, err := step.delete(ctx)
		if err != nil {
			return fmt.Errorf("reset: failed to delete %s: %w", step.name, err)
		}

		em.Info(fmt.Sprintf("deleted %d %s", deleted, step.name))
	}

	em.Success("reset complete")
	return nil
}

func (s *Seeder) resetPlan() []resetStep {
	steps := []resetStep{
		{
			name:   "article-tags",
			count:  s.repos.Articles.CountTags,
			delete: s.repos.Articles.DeleteAllTags,
		},
		{
			name:   "faqs",
			count:  s.repos.FAQs.Count,
			delete: s.repos.FAQs.DeleteAll,
		},
	}

	for _, table := range engagement.Tables() {
		table := table
		steps = append(steps, resetStep{
			name: table,
			count: func(ctx context.Context) (int, error) {
				return s.repos.Engagement.Count(ctx, table)
			},
			delete: func(ctx context.Context) (int64, error) {
				return s.repos.Engagement.DeleteAll(ctx, table)
			},
		})
	}

	steps = append(steps,
		resetStep{
			name:   "article-galleries",
			count:  s.repos.Media.CountGalleryLinks,
			delete: s.repos.Media.DeleteAllGalleryLinks,
		},
		resetStep{
			name:   "article-versions",
			count:  s.repos.Articles.CountVersions,
			delete: s.repos.Articles.DeleteAllVersions,
		},
		resetStep{
			name:   "related-articles",
			count:  s.repos.Articles.CountRelated,
			delete: s.repos.Articles.DeleteAllRelated,
		},
		resetStep{
			name:   "comments",
			count:  s.repos.Comments.CountComments,
			clear:  []func(ctx context.Context) error{s.repos.Comments.ClearCommentParentRefs},
			delete: s.repos.Comments.DeleteAllComments,
		},
		resetStep{
			name:   "client-comments",
			count:  s.repos.Comments.CountClientComments,
			clear:  []func(ctx context.Context) error{s.repos.Comments.ClearClientCommentParentRefs},
			delete: s.repos.Comments.DeleteAllClientComments,
		},
		resetStep{
			name:   "articles",
			count:  s.repos.Articles.Count,
			delete: s.repos.Articles.DeleteAll,
		},
		resetStep{
			name:   "tags",
			count:  s.repos.Tags.Count,
			delete: s.repos.Tags.DeleteAll,
		},
		resetStep{
			name:   "subscribers",
			count:  s.repos.Subscribers.Count,
			delete: s.repos.Subscribers.DeleteAll,
		},
		resetStep{
			name:  "clients",
			count: s.repos.Clients.Count,
			clear: []func(ctx context.Context) error{
				s.repos.Clients.ClearMediaRefs,
				s.repos.Clients.ClearParentRefs,
			},
			delete: s.repos.Clients.DeleteAll,
		},
		resetStep{
			name:   "media",
			count:  s.repos.Media.Count,
			delete: s.repos.Media.DeleteAll,
		},
		resetStep{
			name:   "categories",
			count:  s.repos.Categories.Count,
			clear:  []func(ctx context.Context) error{s.repos.Categories.ClearParentRefs},
			delete: s.repos.Categories.DeleteAll,
		},
		resetStep{
			name:   "authors",
			count:  s.repos.Authors.Count,
			delete: s.repos.Authors.DeleteAll,
		},
		resetStep{
			name:   "industries",
			count:  s.repos.Industries.Count,
			delete: s.repos.Industries.DeleteAll,
		},
		resetStep{
			name:   "settings",
			count:  s.repos.Settings.Count,
			delete: s.repos.Settings.DeleteAll,
		},
		resetStep{
			name:   "subscription-tiers",
			count:  s.repos.Tiers.Count,
			delete: s.repos.Tiers.DeleteAll,
		},
	)

	return steps
}
