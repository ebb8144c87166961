package seeder

import (
	"context"
	"fmt"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
	"github.com/modonty1-rgb/modonty-sub003/pkg/distribution"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// seedTiers upserts the fixed subscription tier configuration.
func (s *Seeder) seedTiers(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedTiers")
	defer span.End()

	for _, fixture := range tierFixtures {
		created, err := s.repos.Tiers.Upsert(ctx, models.SubscriptionTier{
			Slug:            slugify(fixture.name),
			Name:            fixture.name,
			MonthlyPriceUSD: fixture.monthlyUSD,
			ArticleQuota:    fixture.articleQuota,
		})
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"tier": fixture.name,
			}).Error("failed to seed subscription tier, skipping")
			continue
		}
		st.tiers = append(st.tiers, *created)
	}

	return nil
}

// seedIndustries upserts the fixed industry list, resolving each description
// through the content chain.
func (s *Seeder) seedIndustries(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedIndustries")
	defer span.End()

	em := st.events.WithStep("industries")

	for i, fixture := range industryFixtures {
		description := ""
		result, err := st.resolver.Resolve(ctx, content.Request{
			Type:  content.TypeIndustryDescription,
			Brief: st.opts.Brief,
			Topic: fixture.name,
			Count: 1,
		})
		if err == nil && len(result.Items) > 0 {
			description = result.Items[0].Text
		}

		created, err := s.repos.Industries.Upsert(ctx, models.Industry{
			Name:        fixture.name,
			Slug:        slugify(fixture.name),
			Description: description,
			SEO: database.JSONB[models.SEOMeta]{Data: models.SEOMeta{
				Title:       fixture.name + " insights",
				Description: description,
			}},
		})
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"industry": fixture.name,
			}).Error("failed to seed industry, skipping")
			continue
		}
		st.industries = append(st.industries, *created)

		progress(em, i+1, len(industryFixtures), "industries")
	}

	return nil
}

// seedClients creates clients in clients-only phase and reuses existing ones
// in full phase. A full run against an empty store still creates them so
// articles have owners; the run is fatal only if none exist afterwards.
func (s *Seeder) seedClients(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedClients")
	defer span.End()

	em := st.events.WithStep("clients")

	if st.opts.Phase == models.PhaseFull {
		existing, err := s.repos.Clients.List(ctx)
		if err != nil {
			return fmt.Errorf("failed to list existing clients: %w", err)
		}
		if len(existing) > 0 {
			if len(existing) > st.opts.ClientCount {
				existing = existing[:st.opts.ClientCount]
			}
			st.clients = existing
			em.Info(fmt.Sprintf("reusing %d existing clients", len(existing)))
			return nil
		}
	}

	count := st.opts.ClientCount
	tierAssignments := distribution.SplitWeighted(count, []distribution.Bucket{
		{Name: "starter", Weight: 0.5},
		{Name: "growth", Weight: 0.3},
		{Name: "scale", Weight: 0.2},
	}, st.rng)

	tiersBySlug := make(map[string]models.SubscriptionTier, len(st.tiers))
	for _, t := range st.tiers {
		tiersBySlug[t.Slug] = t
	}

	for i := 0; i < count; i++ {
		name := clientNamePool[i%len(clientNamePool)]
		if i >= len(clientNamePool) {
			name = fmt.Sprintf("%s %d", name, i/len(clientNamePool)+1)
		}
		slug := slugify(name)

		c := models.Client{
			Slug:      slug,
			Name:      name,
			LegalName: name + " LLC",
			Website:   fmt.Sprintf("https://www.%s.com", slug),
			Email:     fmt.Sprintf("hello@%s.com", slug),
			SEO: database.JSONB[models.SEOMeta]{Data: models.SEOMeta{
				Title:       name,
				Description: fmt.Sprintf("%s publishes expert content for its market.", name),
			}},
		}

		if len(st.industries) > 0 {
			ind := st.industries[i%len(st.industries)]
			c.IndustryID = &ind.ID
		}
		if t, ok := tiersBySlug[tierAssignments[i]]; ok {
			c.TierID = &t.ID
		}
		// Roughly a fifth of later clients roll up into an earlier organization.
		if len(st.clients) > 0 && st.rng.Intn(5) == 0 {
			parent := pick(st.rng, st.clients)
			c.ParentOrgID = &parent.ID
		}

		created, err := s.repos.Clients.Upsert(ctx, c)
		if err != nil {
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"slug": slug,
			}).Error("failed to seed client, skipping")
			continue
		}
		st.clients = append(st.clients, *created)

		progress(em, i+1, count, "clients")
	}

	if st.opts.Phase == models.PhaseFull && len(st.clients) == 0 {
		return ErrNoClients
	}

	return nil
}

// seedAuthor upserts the editorial author singleton.
func (s *Seeder) seedAuthor(ctx context.Context, st *state) error {
	ctx, span := tracing.StartSpan(ctx, "Seeder.seedAuthor")
	defer span.End()

	created, err := s.repos.Authors.Upsert(ctx, models.Author{
		Email:     authorEmail,
		Name:      "Modonty Editorial",
		Bio:       "In-house editorial team producing client content.",
		AvatarURL: placeholderImageURL("editorial", 256, 256),
	})
	if err != nil {
		return fmt.Errorf("failed to seed author: %w", err)
	}

	st.author = created
	return nil
}
