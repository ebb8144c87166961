package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/events"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/redis"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func silentLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

// captureSink records every event so tests can assert on the stream.
type captureSink struct {
	mu     sync.Mutex
	events []events.Event
}

func (c *captureSink) Publish(e events.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = append(c.events, e)
}

func (c *captureSink) byLevel(level events.Level) []events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []events.Event
	for _, e := range c.events {
		if e.Level == level {
			out = append(out, e)
		}
	}
	return out
}

func (c *captureSink) sentinel() *events.Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.events {
		if c.events[i].Done {
			return &c.events[i]
		}
	}
	return nil
}

func newTestSeeder(t *testing.T, d *memData, seed int64) *Seeder {
	t.Helper()
	logger := silentLogger()
	resolver := content.NewResolver(logger, content.NewStaticProvider(rand.New(rand.NewSource(7))))
	cfg := Config{
		AppEnv: "test",
		Rand:   rand.New(rand.NewSource(seed)),
		Now:    func() time.Time { return testNow },
	}
	return New(cfg, newMemRepos(d), resolver, nil, nil, logger)
}

func TestRunFullPhase(t *testing.T) {
	d := newMemData()
	s := newTestSeeder(t, d, 42)
	sink := &captureSink{}

	summary, err := s.Run(context.Background(), models.RunOptions{
		Total: 10,
		Phase: models.PhaseFull,
		Reset: true,
	}, sink)
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.Equal(t, models.PhaseFull, summary.Phase)
	assert.NotEmpty(t, summary.RunID)
	assert.Equal(t, 10, summary.Articles.Total)
	assert.Equal(t, 6, summary.Articles.Published)
	assert.Equal(t, 4, summary.Articles.Draft)
	assert.Equal(t, 5, summary.Clients)
	assert.Len(t, d.articles, 10)

	for _, a := range d.articles {
		switch a.Status {
		case models.ArticleStatusPublished:
			require.NotNil(t, a.PublishedAt, "published article %s missing timestamp", a.Slug)
			assert.True(t, a.PublishedAt.Before(testNow), "published_at must be in the past")
		case models.ArticleStatusDraft:
			assert.Nil(t, a.PublishedAt, "draft article %s must not carry published_at", a.Slug)
		default:
			t.Fatalf("unexpected status %q", a.Status)
		}
		assert.NotEmpty(t, a.ClientID)
		assert.NotEmpty(t, a.CategoryID)
		assert.NotEmpty(t, a.AuthorID)
	}

	// Supporting records exist and reference only created rows (the fakes
	// reject dangling references, so reaching here proves ordering).
	assert.NotEmpty(t, d.tiers)
	assert.NotEmpty(t, d.industries)
	assert.NotEmpty(t, d.categories)
	assert.NotEmpty(t, d.tags)
	assert.NotEmpty(t, d.media)
	assert.NotEmpty(t, d.settings)

	sentinel := sink.sentinel()
	require.NotNil(t, sentinel, "run must end with a done event")
	assert.Equal(t, events.LevelSuccess, sentinel.Level)
}

func TestRunClientsOnlyPhase(t *testing.T) {
	d := newMemData()
	s := newTestSeeder(t, d, 42)

	summary, err := s.Run(context.Background(), models.RunOptions{
		Total:       10,
		ClientCount: 5,
		Phase:       models.PhaseClientsOnly,
	}, events.NopSink{})
	require.NoError(t, err)

	assert.Equal(t, 5, summary.Clients)
	assert.Equal(t, 0, summary.Articles.Total)
	assert.Len(t, d.clients, 5)
	assert.Empty(t, d.articles)
	assert.Empty(t, d.categories)
	assert.Empty(t, d.tags)
	assert.Len(t, d.authors, 1)
	assert.NotEmpty(t, d.tiers)
	assert.NotEmpty(t, d.industries)
}

func TestRunRefusesDisallowedEnvironment(t *testing.T) {
	d := newMemData()
	logger := silentLogger()
	resolver := content.NewResolver(logger, content.NewStaticProvider(rand.New(rand.NewSource(7))))
	s := New(Config{AppEnv: "production"}, newMemRepos(d), resolver, nil, nil, logger)
	sink := &captureSink{}

	summary, err := s.Run(context.Background(), models.RunOptions{Total: 10, Phase: models.PhaseFull}, sink)
	require.Error(t, err)
	assert.Nil(t, summary)
	assert.Empty(t, d.clients)

	sentinel := sink.sentinel()
	require.NotNil(t, sentinel)
	assert.Equal(t, events.LevelError, sentinel.Level)
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, string, time.Duration) (redis.Lock, error) {
	return nil, redis.ErrLockNotAcquired
}

func TestRunReturnsErrRunInProgressWhenLocked(t *testing.T) {
	d := newMemData()
	logger := silentLogger()
	resolver := content.NewResolver(logger, content.NewStaticProvider(rand.New(rand.NewSource(7))))
	cfg := Config{AppEnv: "test", Now: func() time.Time { return testNow }}
	s := New(cfg, newMemRepos(d), resolver, nil, busyLocker{}, logger)

	_, err := s.Run(context.Background(), models.RunOptions{Total: 5, Phase: models.PhaseFull}, events.NopSink{})
	require.ErrorIs(t, err, ErrRunInProgress)
	assert.Empty(t, d.clients)
}

// failingProvider simulates a generation tier that is down for every request.
type failingProvider struct{}

func (failingProvider) Name() string            { return "ai" }
func (failingProvider) Supports(content.Type) bool { return true }

func (failingProvider) Resolve(context.Context, content.Request) (*content.Result, error) {
	return nil, errors.New("model endpoint unavailable")
}

func TestRunDegradesToStaticWhenGenerationFails(t *testing.T) {
	d := newMemData()
	logger := silentLogger()
	resolver := content.NewResolver(logger, failingProvider{}, content.NewStaticProvider(rand.New(rand.NewSource(7))))
	cfg := Config{
		AppEnv: "test",
		Rand:   rand.New(rand.NewSource(42)),
		Now:    func() time.Time { return testNow },
	}
	s := New(cfg, newMemRepos(d), resolver, nil, nil, logger)

	summary, err := s.Run(context.Background(), models.RunOptions{
		Total: 10,
		Phase: models.PhaseFull,
		UseAI: true,
	}, events.NopSink{})
	require.NoError(t, err)
	assert.Equal(t, 10, summary.Articles.Total)
	for _, a := range d.articles {
		assert.NotEmpty(t, a.Title)
		assert.NotEmpty(t, a.Body)
	}
}

func TestRunRejectsEnabledSourceWithoutProvider(t *testing.T) {
	tests := []struct {
		name string
		opts models.RunOptions
	}{
		{name: "ai", opts: models.RunOptions{Total: 10, Phase: models.PhaseFull, UseAI: true}},
		{name: "news", opts: models.RunOptions{Total: 10, Phase: models.PhaseFull, UseNews: true}},
		{name: "images", opts: models.RunOptions{Total: 10, Phase: models.PhaseFull, UseImages: true}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			d := newMemData()
			// Static bank only: no ai, news or image collaborator configured.
			s := newTestSeeder(t, d, 42)
			sink := &captureSink{}

			summary, err := s.Run(context.Background(), tc.opts, sink)
			require.ErrorIs(t, err, ErrSourceUnavailable)
			assert.Contains(t, err.Error(), tc.name)
			assert.Nil(t, summary)
			assert.Empty(t, d.clients)
			assert.Empty(t, d.articles)

			sentinel := sink.sentinel()
			require.NotNil(t, sentinel)
			assert.Equal(t, events.LevelError, sentinel.Level)
		})
	}
}

func TestResetIsIdempotent(t *testing.T) {
	d := newMemData()
	s := newTestSeeder(t, d, 42)

	_, err := s.Run(context.Background(), models.RunOptions{Total: 10, Phase: models.PhaseFull}, events.NopSink{})
	require.NoError(t, err)
	require.NotEmpty(t, d.articles)

	st := &state{opts: models.RunOptions{Phase: models.PhaseFull}, events: events.NewEmitter(events.NopSink{})}
	require.NoError(t, s.reset(context.Background(), st))

	assert.Empty(t, d.articles)
	assert.Empty(t, d.clients)
	assert.Empty(t, d.media)
	assert.Empty(t, d.comments)
	assert.Empty(t, d.tiers)
	assert.Empty(t, d.engagement)

	// A second reset over the empty store is a no-op, not an error.
	require.NoError(t, s.reset(context.Background(), st))
	assert.Empty(t, d.articles)
}

func TestRerunWithoutResetCreatesNoDuplicates(t *testing.T) {
	d := newMemData()

	run := func() {
		s := newTestSeeder(t, d, 42)
		_, err := s.Run(context.Background(), models.RunOptions{Total: 10, Phase: models.PhaseFull}, events.NopSink{})
		require.NoError(t, err)
	}

	run()
	articles := len(d.articles)
	clients := len(d.clients)
	categories := len(d.categories)
	tags := len(d.tags)
	industries := len(d.industries)

	// Same seeds, same natural keys: every write lands on the upsert branch.
	run()
	assert.Equal(t, articles, len(d.articles))
	assert.Equal(t, clients, len(d.clients))
	assert.Equal(t, categories, len(d.categories))
	assert.Equal(t, tags, len(d.tags))
	assert.Equal(t, industries, len(d.industries))
}

// tagProvider returns a fixed vocabulary with duplicate casings.
type tagProvider struct{}

func (tagProvider) Name() string { return "news" }

func (tagProvider) Supports(t content.Type) bool { return t == content.TypeTagVocabulary }

func (tagProvider) Resolve(_ context.Context, req content.Request) (*content.Result, error) {
	return &content.Result{
		Items:  []content.Item{{Text: "SEO"}, {Text: "seo"}, {Text: " SEO "}},
		Source: "news",
	}, nil
}

func TestSeedTagsDeduplicatesCaseInsensitively(t *testing.T) {
	d := newMemData()
	logger := silentLogger()
	resolver := content.NewResolver(logger, tagProvider{})
	cfg := Config{
		AppEnv: "test",
		Rand:   rand.New(rand.NewSource(42)),
		Now:    func() time.Time { return testNow },
	}
	s := New(cfg, newMemRepos(d), resolver, nil, nil, logger)

	st := &state{
		opts:     models.RunOptions{Total: 10, Phase: models.PhaseFull, UseNews: true},
		events:   events.NewEmitter(events.NopSink{}),
		rng:      rand.New(rand.NewSource(42)),
		now:      testNow,
		resolver: resolver,
	}
	require.NoError(t, s.seedTags(context.Background(), st))

	require.Len(t, d.tags, 1)
	assert.Equal(t, "SEO", d.tags[0].Name)
	assert.Equal(t, "seo", d.tags[0].Slug)
}

func TestRunEmitsNoErrorEventsOnCleanStore(t *testing.T) {
	d := newMemData()
	s := newTestSeeder(t, d, 42)
	sink := &captureSink{}

	_, err := s.Run(context.Background(), models.RunOptions{Total: 10, Phase: models.PhaseFull}, sink)
	require.NoError(t, err)
	assert.Empty(t, sink.byLevel(events.LevelError), "clean run must not emit error events")
}

func TestRunAppliesDefaults(t *testing.T) {
	d := newMemData()
	s := newTestSeeder(t, d, 42)

	summary, err := s.Run(context.Background(), models.RunOptions{}, events.NopSink{})
	require.NoError(t, err)
	assert.Equal(t, models.PhaseFull, summary.Phase)
	assert.Equal(t, 10, summary.Articles.Total)
	assert.Equal(t, 5, summary.Clients)
}

func TestRunFullPhaseKeepsExistingClientsOnReset(t *testing.T) {
	d := newMemData()
	s := newTestSeeder(t, d, 42)

	_, err := s.Run(context.Background(), models.RunOptions{
		Total:       10,
		ClientCount: 3,
		Phase:       models.PhaseClientsOnly,
	}, events.NopSink{})
	require.NoError(t, err)
	require.Len(t, d.clients, 3)
	existing := make(map[string]bool, 3)
	for _, c := range d.clients {
		existing[c.ID] = true
	}

	s2 := newTestSeeder(t, d, 43)
	summary, err := s2.Run(context.Background(), models.RunOptions{
		Total: 10,
		Phase: models.PhaseFull,
		Reset: true,
	}, events.NopSink{})
	require.NoError(t, err)

	assert.Equal(t, 3, summary.Clients)
	for _, a := range d.articles {
		assert.True(t, existing[a.ClientID], "article %s must belong to a pre-existing client", a.Slug)
	}
}

func TestSummaryReflectsRequestedTotal(t *testing.T) {
	for _, total := range []int{1, 3, 25} {
		t.Run(fmt.Sprintf("total_%d", total), func(t *testing.T) {
			d := newMemData()
			s := newTestSeeder(t, d, 42)

			summary, err := s.Run(context.Background(), models.RunOptions{Total: total, Phase: models.PhaseFull}, events.NopSink{})
			require.NoError(t, err)
			assert.Equal(t, total, summary.Articles.Total)
			assert.Equal(t, total, summary.Articles.Published+summary.Articles.Draft)
		})
	}
}
