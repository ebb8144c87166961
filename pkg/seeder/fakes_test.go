package seeder

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/engagement"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
)

// memData is the shared in-memory store behind the fake repositories. The
// fakes verify referential integrity the way the real schema would: creating
// a row pointing at a missing parent fails.
type memData struct {
	mu sync.Mutex

	tiers          []models.SubscriptionTier
	industries     []models.Industry
	clients        []models.Client
	authors        []models.Author
	categories     []models.Category
	tags           []models.Tag
	articles       []models.Article
	articleTags    map[string]map[string]bool
	related        [][2]string
	versions       []models.ArticleVersion
	media          []models.Media
	gallery        []models.ArticleMedia
	comments       []models.Comment
	clientComments []models.ClientComment
	faqs           []models.FAQ
	subscribers    []models.Subscriber
	settings       []models.Settings
	engagement     map[string]int
}

func newMemData() *memData {
	return &memData{
		articleTags: make(map[string]map[string]bool),
		engagement:  make(map[string]int),
	}
}

func newMemRepos(d *memData) Repositories {
	return Repositories{
		Tiers:       &fakeTierRepo{d: d},
		Industries:  &fakeIndustryRepo{d: d},
		Clients:     &fakeClientRepo{d: d},
		Authors:     &fakeAuthorRepo{d: d},
		Categories:  &fakeCategoryRepo{d: d},
		Tags:        &fakeTagRepo{d: d},
		Articles:    &fakeArticleRepo{d: d},
		Media:       &fakeMediaRepo{d: d},
		Comments:    &fakeCommentRepo{d: d},
		FAQs:        &fakeFAQRepo{d: d},
		Subscribers: &fakeSubscriberRepo{d: d},
		Settings:    &fakeSettingsRepo{d: d},
		Engagement:  &fakeEngagementRepo{d: d},
	}
}

func (d *memData) hasClient(id string) bool {
	for _, c := range d.clients {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (d *memData) hasCategory(id string) bool {
	for _, c := range d.categories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func (d *memData) hasAuthor(id string) bool {
	for _, a := range d.authors {
		if a.ID == id {
			return true
		}
	}
	return false
}

func (d *memData) hasArticle(id string) bool {
	for _, a := range d.articles {
		if a.ID == id {
			return true
		}
	}
	return false
}

type fakeTierRepo struct{ d *memData }

func (f *fakeTierRepo) Upsert(_ context.Context, t models.SubscriptionTier) (*models.SubscriptionTier, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, existing := range f.d.tiers {
		if existing.Slug == t.Slug {
			t.ID = existing.ID
			f.d.tiers[i] = t
			return &t, nil
		}
	}
	t.ID = uuid.New().String()
	f.d.tiers = append(f.d.tiers, t)
	return &t, nil
}

func (f *fakeTierRepo) List(context.Context) ([]models.SubscriptionTier, error) {
	return f.d.tiers, nil
}

func (f *fakeTierRepo) Count(context.Context) (int, error) { return len(f.d.tiers), nil }

func (f *fakeTierRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.tiers)
	f.d.tiers = nil
	return int64(n), nil
}

type fakeIndustryRepo struct{ d *memData }

func (f *fakeIndustryRepo) Upsert(_ context.Context, ind models.Industry) (*models.Industry, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, existing := range f.d.industries {
		if existing.Slug == ind.Slug {
			ind.ID = existing.ID
			f.d.industries[i] = ind
			return &ind, nil
		}
	}
	ind.ID = uuid.New().String()
	f.d.industries = append(f.d.industries, ind)
	return &ind, nil
}

func (f *fakeIndustryRepo) GetBySlug(_ context.Context, slug string) (*models.Industry, error) {
	for _, ind := range f.d.industries {
		if ind.Slug == slug {
			return &ind, nil
		}
	}
	return nil, nil
}

func (f *fakeIndustryRepo) List(context.Context) ([]models.Industry, error) {
	return f.d.industries, nil
}

func (f *fakeIndustryRepo) Count(context.Context) (int, error) { return len(f.d.industries), nil }

func (f *fakeIndustryRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.industries)
	f.d.industries = nil
	return int64(n), nil
}

type fakeClientRepo struct{ d *memData }

func (f *fakeClientRepo) Upsert(_ context.Context, c models.Client) (*models.Client, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, existing := range f.d.clients {
		if existing.Slug == c.Slug {
			c.ID = existing.ID
			f.d.clients[i] = c
			return &c, nil
		}
	}
	c.ID = uuid.New().String()
	f.d.clients = append(f.d.clients, c)
	return &c, nil
}

func (f *fakeClientRepo) GetBySlug(_ context.Context, slug string) (*models.Client, error) {
	for _, c := range f.d.clients {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeClientRepo) List(context.Context) ([]models.Client, error) { return f.d.clients, nil }

func (f *fakeClientRepo) Count(context.Context) (int, error) { return len(f.d.clients), nil }

func (f *fakeClientRepo) SetBrandMedia(_ context.Context, id string, logoID, ogID, twitterID *string) error {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, c := range f.d.clients {
		if c.ID == id {
			f.d.clients[i].LogoMediaID = logoID
			f.d.clients[i].OGMediaID = ogID
			f.d.clients[i].TwitterMediaID = twitterID
			return nil
		}
	}
	return fmt.Errorf("client %s not found", id)
}

func (f *fakeClientRepo) ClearParentRefs(context.Context) error {
	for i := range f.d.clients {
		f.d.clients[i].ParentOrgID = nil
	}
	return nil
}

func (f *fakeClientRepo) ClearMediaRefs(context.Context) error {
	for i := range f.d.clients {
		f.d.clients[i].LogoMediaID = nil
		f.d.clients[i].OGMediaID = nil
		f.d.clients[i].TwitterMediaID = nil
	}
	return nil
}

func (f *fakeClientRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.clients)
	f.d.clients = nil
	return int64(n), nil
}

type fakeAuthorRepo struct{ d *memData }

func (f *fakeAuthorRepo) Upsert(_ context.Context, a models.Author) (*models.Author, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, existing := range f.d.authors {
		if existing.Email == a.Email {
			a.ID = existing.ID
			f.d.authors[i] = a
			return &a, nil
		}
	}
	a.ID = uuid.New().String()
	f.d.authors = append(f.d.authors, a)
	return &a, nil
}

func (f *fakeAuthorRepo) GetByEmail(_ context.Context, email string) (*models.Author, error) {
	for _, a := range f.d.authors {
		if a.Email == email {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeAuthorRepo) Count(context.Context) (int, error) { return len(f.d.authors), nil }

func (f *fakeAuthorRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.authors)
	f.d.authors = nil
	return int64(n), nil
}

type fakeCategoryRepo struct{ d *memData }

func (f *fakeCategoryRepo) Upsert(_ context.Context, c models.Category) (*models.Category, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if c.ParentID != nil && !f.d.hasCategory(*c.ParentID) {
		return nil, fmt.Errorf("parent category %s does not exist", *c.ParentID)
	}
	for i, existing := range f.d.categories {
		if existing.Slug == c.Slug {
			c.ID = existing.ID
			f.d.categories[i] = c
			return &c, nil
		}
	}
	c.ID = uuid.New().String()
	f.d.categories = append(f.d.categories, c)
	return &c, nil
}

func (f *fakeCategoryRepo) GetBySlug(_ context.Context, slug string) (*models.Category, error) {
	for _, c := range f.d.categories {
		if c.Slug == slug {
			return &c, nil
		}
	}
	return nil, nil
}

func (f *fakeCategoryRepo) Count(context.Context) (int, error) { return len(f.d.categories), nil }

func (f *fakeCategoryRepo) ClearParentRefs(context.Context) error {
	for i := range f.d.categories {
		f.d.categories[i].ParentID = nil
	}
	return nil
}

func (f *fakeCategoryRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.categories)
	f.d.categories = nil
	return int64(n), nil
}

type fakeTagRepo struct{ d *memData }

func (f *fakeTagRepo) Upsert(_ context.Context, t models.Tag) (*models.Tag, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for _, existing := range f.d.tags {
		if existing.Slug == t.Slug {
			// First-seen casing wins; conflict keeps the stored name.
			return &existing, nil
		}
	}
	t.ID = uuid.New().String()
	f.d.tags = append(f.d.tags, t)
	return &t, nil
}

func (f *fakeTagRepo) GetBySlug(_ context.Context, slug string) (*models.Tag, error) {
	for _, t := range f.d.tags {
		if t.Slug == slug {
			return &t, nil
		}
	}
	return nil, nil
}

func (f *fakeTagRepo) Count(context.Context) (int, error) { return len(f.d.tags), nil }

func (f *fakeTagRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.tags)
	f.d.tags = nil
	return int64(n), nil
}

type fakeArticleRepo struct{ d *memData }

func (f *fakeArticleRepo) Upsert(_ context.Context, a models.Article) (*models.Article, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if !f.d.hasClient(a.ClientID) {
		return nil, fmt.Errorf("client %s does not exist", a.ClientID)
	}
	if !f.d.hasCategory(a.CategoryID) {
		return nil, fmt.Errorf("category %s does not exist", a.CategoryID)
	}
	if !f.d.hasAuthor(a.AuthorID) {
		return nil, fmt.Errorf("author %s does not exist", a.AuthorID)
	}
	for i, existing := range f.d.articles {
		if existing.Slug == a.Slug {
			a.ID = existing.ID
			f.d.articles[i] = a
			return &a, nil
		}
	}
	a.ID = uuid.New().String()
	f.d.articles = append(f.d.articles, a)
	return &a, nil
}

func (f *fakeArticleRepo) GetBySlug(_ context.Context, slug string) (*models.Article, error) {
	for _, a := range f.d.articles {
		if a.Slug == slug {
			return &a, nil
		}
	}
	return nil, nil
}

func (f *fakeArticleRepo) Count(context.Context) (int, error) { return len(f.d.articles), nil }

func (f *fakeArticleRepo) CountByStatus(_ context.Context, status models.ArticleStatus) (int, error) {
	n := 0
	for _, a := range f.d.articles {
		if a.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeArticleRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.articles)
	f.d.articles = nil
	return int64(n), nil
}

func (f *fakeArticleRepo) AttachTag(_ context.Context, articleID, tagID string) error {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if !f.d.hasArticle(articleID) {
		return fmt.Errorf("article %s does not exist", articleID)
	}
	if f.d.articleTags[articleID] == nil {
		f.d.articleTags[articleID] = make(map[string]bool)
	}
	f.d.articleTags[articleID][tagID] = true
	return nil
}

func (f *fakeArticleRepo) DeleteAllTags(context.Context) (int64, error) {
	n := 0
	for _, tags := range f.d.articleTags {
		n += len(tags)
	}
	f.d.articleTags = make(map[string]map[string]bool)
	return int64(n), nil
}

func (f *fakeArticleRepo) CountTags(context.Context) (int, error) {
	n := 0
	for _, tags := range f.d.articleTags {
		n += len(tags)
	}
	return n, nil
}

func (f *fakeArticleRepo) AddRelated(_ context.Context, articleID, relatedID string) error {
	if !f.d.hasArticle(articleID) || !f.d.hasArticle(relatedID) {
		return fmt.Errorf("related pair references a missing article")
	}
	f.d.related = append(f.d.related, [2]string{articleID, relatedID})
	return nil
}

func (f *fakeArticleRepo) DeleteAllRelated(context.Context) (int64, error) {
	n := len(f.d.related)
	f.d.related = nil
	return int64(n), nil
}

func (f *fakeArticleRepo) CountRelated(context.Context) (int, error) { return len(f.d.related), nil }

func (f *fakeArticleRepo) AddVersion(_ context.Context, v models.ArticleVersion) error {
	if !f.d.hasArticle(v.ArticleID) {
		return fmt.Errorf("article %s does not exist", v.ArticleID)
	}
	f.d.versions = append(f.d.versions, v)
	return nil
}

func (f *fakeArticleRepo) DeleteAllVersions(context.Context) (int64, error) {
	n := len(f.d.versions)
	f.d.versions = nil
	return int64(n), nil
}

func (f *fakeArticleRepo) CountVersions(context.Context) (int, error) {
	return len(f.d.versions), nil
}

type fakeMediaRepo struct{ d *memData }

func (f *fakeMediaRepo) Create(_ context.Context, m models.Media) (*models.Media, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if m.ClientID != nil && !f.d.hasClient(*m.ClientID) {
		return nil, fmt.Errorf("client %s does not exist", *m.ClientID)
	}
	if m.ArticleID != nil && !f.d.hasArticle(*m.ArticleID) {
		return nil, fmt.Errorf("article %s does not exist", *m.ArticleID)
	}
	m.ID = uuid.New().String()
	f.d.media = append(f.d.media, m)
	return &m, nil
}

func (f *fakeMediaRepo) Count(context.Context) (int, error) { return len(f.d.media), nil }

func (f *fakeMediaRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.media)
	f.d.media = nil
	return int64(n), nil
}

func (f *fakeMediaRepo) AttachToGallery(_ context.Context, link models.ArticleMedia) error {
	if !f.d.hasArticle(link.ArticleID) {
		return fmt.Errorf("article %s does not exist", link.ArticleID)
	}
	f.d.gallery = append(f.d.gallery, link)
	return nil
}

func (f *fakeMediaRepo) CountGalleryLinks(context.Context) (int, error) {
	return len(f.d.gallery), nil
}

func (f *fakeMediaRepo) DeleteAllGalleryLinks(context.Context) (int64, error) {
	n := len(f.d.gallery)
	f.d.gallery = nil
	return int64(n), nil
}

type fakeCommentRepo struct{ d *memData }

func (f *fakeCommentRepo) CreateComment(_ context.Context, c models.Comment) (*models.Comment, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if !f.d.hasArticle(c.ArticleID) {
		return nil, fmt.Errorf("article %s does not exist", c.ArticleID)
	}
	c.ID = uuid.New().String()
	f.d.comments = append(f.d.comments, c)
	return &c, nil
}

func (f *fakeCommentRepo) CountComments(context.Context) (int, error) {
	return len(f.d.comments), nil
}

func (f *fakeCommentRepo) ClearCommentParentRefs(context.Context) error {
	for i := range f.d.comments {
		f.d.comments[i].ParentID = nil
	}
	return nil
}

func (f *fakeCommentRepo) DeleteAllComments(context.Context) (int64, error) {
	n := len(f.d.comments)
	f.d.comments = nil
	return int64(n), nil
}

func (f *fakeCommentRepo) CreateClientComment(_ context.Context, c models.ClientComment) (*models.ClientComment, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if !f.d.hasClient(c.ClientID) {
		return nil, fmt.Errorf("client %s does not exist", c.ClientID)
	}
	c.ID = uuid.New().String()
	f.d.clientComments = append(f.d.clientComments, c)
	return &c, nil
}

func (f *fakeCommentRepo) CountClientComments(context.Context) (int, error) {
	return len(f.d.clientComments), nil
}

func (f *fakeCommentRepo) ClearClientCommentParentRefs(context.Context) error {
	for i := range f.d.clientComments {
		f.d.clientComments[i].ParentID = nil
	}
	return nil
}

func (f *fakeCommentRepo) DeleteAllClientComments(context.Context) (int64, error) {
	n := len(f.d.clientComments)
	f.d.clientComments = nil
	return int64(n), nil
}

type fakeFAQRepo struct{ d *memData }

func (f *fakeFAQRepo) Create(_ context.Context, q models.FAQ) (*models.FAQ, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	if !f.d.hasArticle(q.ArticleID) {
		return nil, fmt.Errorf("article %s does not exist", q.ArticleID)
	}
	q.ID = uuid.New().String()
	f.d.faqs = append(f.d.faqs, q)
	return &q, nil
}

func (f *fakeFAQRepo) Count(context.Context) (int, error) { return len(f.d.faqs), nil }

func (f *fakeFAQRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.faqs)
	f.d.faqs = nil
	return int64(n), nil
}

type fakeSubscriberRepo struct{ d *memData }

func (f *fakeSubscriberRepo) Upsert(_ context.Context, s models.Subscriber) error {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, existing := range f.d.subscribers {
		if existing.Email == s.Email {
			s.ID = existing.ID
			f.d.subscribers[i] = s
			return nil
		}
	}
	s.ID = uuid.New().String()
	f.d.subscribers = append(f.d.subscribers, s)
	return nil
}

func (f *fakeSubscriberRepo) Count(context.Context) (int, error) {
	return len(f.d.subscribers), nil
}

func (f *fakeSubscriberRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.subscribers)
	f.d.subscribers = nil
	return int64(n), nil
}

type fakeSettingsRepo struct{ d *memData }

func (f *fakeSettingsRepo) Upsert(_ context.Context, s models.Settings) (*models.Settings, error) {
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	for i, existing := range f.d.settings {
		if existing.Key == s.Key {
			s.ID = existing.ID
			f.d.settings[i] = s
			return &s, nil
		}
	}
	s.ID = uuid.New().String()
	f.d.settings = append(f.d.settings, s)
	return &s, nil
}

func (f *fakeSettingsRepo) GetByKey(_ context.Context, key string) (*models.Settings, error) {
	for _, s := range f.d.settings {
		if s.Key == key {
			return &s, nil
		}
	}
	return nil, nil
}

func (f *fakeSettingsRepo) Count(context.Context) (int, error) { return len(f.d.settings), nil }

func (f *fakeSettingsRepo) DeleteAll(context.Context) (int64, error) {
	n := len(f.d.settings)
	f.d.settings = nil
	return int64(n), nil
}

type fakeEngagementRepo struct{ d *memData }

func (f *fakeEngagementRepo) add(table, refErr string) error {
	if refErr != "" {
		return fmt.Errorf("%s", refErr)
	}
	f.d.mu.Lock()
	defer f.d.mu.Unlock()
	f.d.engagement[table]++
	return nil
}

func (f *fakeEngagementRepo) articleRef(id string) string {
	if !f.d.hasArticle(id) {
		return fmt.Sprintf("article %s does not exist", id)
	}
	return ""
}

func (f *fakeEngagementRepo) clientRef(id string) string {
	if !f.d.hasClient(id) {
		return fmt.Sprintf("client %s does not exist", id)
	}
	return ""
}

func (f *fakeEngagementRepo) CreateView(_ context.Context, v models.ArticleView) error {
	return f.add(engagement.ViewsTable, f.articleRef(v.ArticleID))
}

func (f *fakeEngagementRepo) CreateReaction(_ context.Context, r models.Reaction) error {
	return f.add(engagement.ReactionsTable, f.articleRef(r.ArticleID))
}

func (f *fakeEngagementRepo) CreateShare(_ context.Context, s models.Share) error {
	return f.add(engagement.SharesTable, f.articleRef(s.ArticleID))
}

func (f *fakeEngagementRepo) CreateConversion(_ context.Context, c models.Conversion) error {
	refErr := f.clientRef(c.ClientID)
	if refErr == "" && c.ArticleID != nil {
		refErr = f.articleRef(*c.ArticleID)
	}
	return f.add(engagement.ConversionsTable, refErr)
}

func (f *fakeEngagementRepo) CreateCTAClick(_ context.Context, c models.CTAClick) error {
	return f.add(engagement.CTAClicksTable, f.articleRef(c.ArticleID))
}

func (f *fakeEngagementRepo) CreateCampaignAttribution(_ context.Context, c models.CampaignAttribution) error {
	return f.add(engagement.CampaignsTable, f.articleRef(c.ArticleID))
}

func (f *fakeEngagementRepo) CreateLeadScore(_ context.Context, l models.LeadScore) error {
	return f.add(engagement.LeadScoresTable, f.clientRef(l.ClientID))
}

func (f *fakeEngagementRepo) CreateDuration(_ context.Context, d models.EngagementDuration) error {
	return f.add(engagement.DurationsTable, f.articleRef(d.ArticleID))
}

func (f *fakeEngagementRepo) CreateLinkClick(_ context.Context, l models.LinkClick) error {
	return f.add(engagement.LinkClicksTable, f.articleRef(l.ArticleID))
}

func (f *fakeEngagementRepo) CreateInteraction(_ context.Context, i models.Interaction) error {
	return f.add(engagement.InteractionsTable, "")
}

func (f *fakeEngagementRepo) Count(_ context.Context, table string) (int, error) {
	return f.d.engagement[table], nil
}

func (f *fakeEngagementRepo) DeleteAll(_ context.Context, table string) (int64, error) {
	n := f.d.engagement[table]
	delete(f.d.engagement, table)
	return int64(n), nil
}
