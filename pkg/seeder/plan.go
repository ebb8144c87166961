package seeder

import "context"

// step is one entry in the seed plan. The plan is an explicit ordered
// sequence; requires names the earlier steps whose output this step reads, so
// the declared order can be asserted against actual data availability.
type step struct {
	name        string
	clientsOnly bool
	requires    []string
	run         func(ctx context.Context, st *state) error
}

// plan returns the fixed seed order. It must not be reordered: every step only
// references rows created by the steps it requires.
func (s *Seeder) plan() []step {
	return []step{
		{name: "subscription-tiers", clientsOnly: true, run: s.seedTiers},
		{name: "industries", clientsOnly: true, run: s.seedIndustries},
		{name: "clients", clientsOnly: true, requires: []string{"subscription-tiers", "industries"}, run: s.seedClients},
		{name: "author", clientsOnly: true, run: s.seedAuthor},
		{name: "categories", run: s.seedCategories},
		{name: "tags", run: s.seedTags},
		{name: "articles", requires: []string{"clients", "author", "categories"}, run: s.seedArticles},
		{name: "article-tags", requires: []string{"articles", "tags"}, run: s.seedArticleTags},
		{name: "media", requires: []string{"clients", "articles"}, run: s.seedMedia},
		{name: "analytics", requires: []string{"articles"}, run: s.seedReactions},
		{name: "faqs", requires: []string{"articles"}, run: s.seedFAQs},
		{name: "related-articles", requires: []string{"articles", "categories"}, run: s.seedRelatedArticles},
		{name: "subscribers", run: s.seedSubscribers},
		{name: "settings", run: s.seedSettings},
		{name: "article-versions", requires: []string{"articles"}, run: s.seedArticleVersions},
		{name: "article-galleries", requires: []string{"articles"}, run: s.seedArticleGalleries},
		{name: "comments", requires: []string{"articles"}, run: s.seedComments},
		{name: "client-comments", requires: []string{"clients"}, run: s.seedClientComments},
		{name: "interactions", requires: []string{"articles", "clients", "comments"}, run: s.seedInteractions},
		{name: "views", requires: []string{"articles"}, run: s.seedViews},
		{name: "shares", requires: []string{"articles"}, run: s.seedShares},
		{name: "conversions", requires: []string{"clients", "articles"}, run: s.seedConversions},
		{name: "cta-clicks", requires: []string{"articles"}, run: s.seedCTAClicks},
		{name: "campaign-attributions", requires: []string{"articles"}, run: s.seedCampaignAttributions},
		{name: "lead-scores", requires: []string{"clients"}, run: s.seedLeadScores},
		{name: "engagement-durations", requires: []string{"articles"}, run: s.seedEngagementDurations},
		{name: "link-clicks", requires: []string{"articles"}, run: s.seedLinkClicks},
	}
}
