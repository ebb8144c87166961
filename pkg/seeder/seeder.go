// Package seeder drives the deterministic synthetic-dataset pipeline: a
// dependency-ordered reset, per-entity builders and a run orchestrator that
// streams progress events to an injected sink.
package seeder

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/modonty1-rgb/modonty-sub003/internal/clients/image"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/article"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/author"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/category"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/client"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/comment"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/engagement"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/faq"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/industry"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/media"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/settings"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/subscriber"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/tag"
	"github.com/modonty1-rgb/modonty-sub003/internal/repositories/tier"
	"github.com/modonty1-rgb/modonty-sub003/pkg/content"
	"github.com/modonty1-rgb/modonty-sub003/pkg/events"
	"github.com/modonty1-rgb/modonty-sub003/pkg/models"
	"github.com/modonty1-rgb/modonty-sub003/pkg/redis"
	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

const runLockKey = "seed:run"

var (
	// ErrNoClients aborts a full-phase run: articles cannot be attributed
	// without at least one client.
	ErrNoClients = errors.New("no clients exist to attribute articles to")
	// ErrRunInProgress is returned when the run lock is already held.
	ErrRunInProgress = errors.New("another seed run is already in progress")
	// ErrEnvBlocked is returned when the configured environment does not
	// allow seeding.
	ErrEnvBlocked = errors.New("seeding is not allowed in this environment")
	// ErrSourceUnavailable is returned when a run enables a source tier that
	// has no configured provider. Degrading silently would mask a missing
	// credential.
	ErrSourceUnavailable = errors.New("requested content source is not configured")
)

// Repositories bundles the store access the pipeline needs.
type Repositories struct {
	Tiers       tier.TierRepository
	Industries  industry.IndustryRepository
	Clients     client.ClientRepository
	Authors     author.AuthorRepository
	Categories  category.CategoryRepository
	Tags        tag.TagRepository
	Articles    article.ArticleRepository
	Media       media.MediaRepository
	Comments    comment.CommentRepository
	FAQs        faq.FAQRepository
	Subscribers subscriber.SubscriberRepository
	Settings    settings.SettingsRepository
	Engagement  engagement.EngagementRepository
}

// Config carries the orchestrator knobs. Rand and Now are injectable so tests
// can pin bucket assignment and timestamps; nil means real randomness and the
// wall clock.
type Config struct {
	AppEnv  string
	LockTTL time.Duration
	Rand    *rand.Rand
	Now     func() time.Time
}

// Seeder is the pipeline orchestrator.
type Seeder struct {
	cfg      Config
	repos    Repositories
	resolver *content.Resolver
	images   image.Service
	locker   redis.Locker
	logger   ectologger.Logger
	validate *validator.Validate
}

// New creates the seeder. The resolver's provider order is the content
// fallback chain; images may be nil when the image collaborator is disabled.
func New(cfg Config, repos Repositories, resolver *content.Resolver, images image.Service, locker redis.Locker, logger ectologger.Logger) *Seeder {
	if cfg.LockTTL <= 0 {
		cfg.LockTTL = 15 * time.Minute
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if locker == nil {
		locker = redis.NewLocalLocker()
	}

	return &Seeder{
		cfg:      cfg,
		repos:    repos,
		resolver: resolver,
		images:   images,
		locker:   locker,
		logger:   logger,
		validate: validator.New(),
	}
}

var allowedEnvs = map[string]bool{
	"development": true,
	"test":        true,
	"staging":     true,
}

// Run executes one seed run and always returns a summary alongside any fatal
// error. Per-record failures are logged and skipped; only the environment
// gate, the run lock, invalid options and a clientless full phase abort.
func (s *Seeder) Run(ctx context.Context, opts models.RunOptions, sink events.Sink) (*models.Summary, error) {
	ctx, span := tracing.StartSpan(ctx, "Seeder.Run")
	defer span.End()

	emitter := events.NewEmitter(sink)

	if !allowedEnvs[s.cfg.AppEnv] {
		err := errors.Wrapf(ErrEnvBlocked, "environment %q", s.cfg.AppEnv)
		emitter.Fail(err.Error())
		return nil, err
	}

	applyDefaults(&opts)
	if err := s.validate.Struct(opts); err != nil {
		err = errors.Wrap(err, "invalid run options")
		emitter.Fail(err.Error())
		return nil, err
	}
	if err := s.checkSources(opts); err != nil {
		emitter.Fail(err.Error())
		return nil, err
	}

	lock, err := s.locker.Acquire(ctx, runLockKey, s.cfg.LockTTL)
	if err != nil {
		if errors.Is(err, redis.ErrLockNotAcquired) {
			emitter.Fail(ErrRunInProgress.Error())
			return nil, ErrRunInProgress
		}
		err = errors.Wrap(err, "failed to acquire run lock")
		emitter.Fail(err.Error())
		return nil, err
	}
	defer func() {
		if err := lock.Release(context.WithoutCancel(ctx)); err != nil {
			s.logger.WithContext(ctx).WithError(err).Warn("failed to release run lock")
		}
	}()

	rng := s.cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	st := &state{
		runID:  uuid.New().String(),
		opts:   opts,
		events: emitter,
		rng:    rng,
		now:    s.cfg.Now().UTC(),
	}
	// Disabled source tiers are filtered out per run; the static bank always
	// stays so resolution cannot fail outright.
	st.resolver = s.resolver.Restrict(func(name string) bool {
		switch name {
		case "news":
			return opts.UseNews
		case "ai":
			return opts.UseAI
		}
		return true
	})

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id": st.runID,
		"phase":  opts.Phase,
		"total":  opts.Total,
		"reset":  opts.Reset,
	}).Info("starting seed run")
	emitter.Info(fmt.Sprintf("starting %s seed run (total=%d)", opts.Phase, opts.Total))

	if err := s.maybeReset(ctx, st); err != nil {
		emitter.Fail(err.Error())
		return st.summary(), err
	}

	for _, step := range s.plan() {
		if opts.Phase == models.PhaseClientsOnly && !step.clientsOnly {
			continue
		}

		em := emitter.WithStep(step.name)
		em.Info(fmt.Sprintf("seeding %s", step.name))

		if err := step.run(ctx, st); err != nil {
			if errors.Is(err, ErrNoClients) {
				s.logger.WithContext(ctx).WithError(err).Error("seed run aborted")
				emitter.Fail(err.Error())
				return st.summary(), err
			}
			s.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"step": step.name,
			}).Error("seed step failed, continuing with partial data")
			em.Error(fmt.Sprintf("%s failed: %v", step.name, err))
			continue
		}

		em.Success(fmt.Sprintf("%s done", step.name))
	}

	summary := st.summary()
	s.logger.WithContext(ctx).WithFields(map[string]any{
		"run_id":   st.runID,
		"clients":  summary.Clients,
		"articles": summary.Articles.Total,
	}).Info("seed run complete")
	emitter.Complete("seed run complete", summary)

	return summary, nil
}

// checkSources verifies that every explicitly enabled source tier has a
// configured provider. Enabling a tier whose credentials were never set is a
// misconfiguration the run must surface, not fall back from.
func (s *Seeder) checkSources(opts models.RunOptions) error {
	if opts.UseNews && !s.resolver.Has("news") {
		return errors.Wrap(ErrSourceUnavailable, "use_news is set but no news source is configured")
	}
	if opts.UseAI && !s.resolver.Has("ai") {
		return errors.Wrap(ErrSourceUnavailable, "use_ai is set but no AI source is configured")
	}
	if opts.UseImages && s.images == nil {
		return errors.Wrap(ErrSourceUnavailable, "use_images is set but no image service is configured")
	}
	return nil
}

// maybeReset applies the phase rules: a full run never destroys clients that
// an earlier clients-only run produced.
func (s *Seeder) maybeReset(ctx context.Context, st *state) error {
	if !st.opts.Reset {
		return nil
	}

	if st.opts.Phase == models.PhaseFull {
		count, err := s.repos.Clients.Count(ctx)
		if err != nil {
			return errors.Wrap(err, "failed to check for existing clients")
		}
		if count > 0 {
			s.logger.WithContext(ctx).WithFields(map[string]any{
				"clients": count,
			}).Info("reset skipped: existing clients would be destroyed")
			st.events.Info(fmt.Sprintf("reset skipped: %d existing clients are kept", count))
			return nil
		}
	}

	return s.reset(ctx, st)
}

func applyDefaults(opts *models.RunOptions) {
	if opts.Phase == "" {
		opts.Phase = models.PhaseFull
	}
	if opts.Total == 0 {
		opts.Total = 10
	}
	if opts.ClientCount == 0 {
		opts.ClientCount = 5
	}
}

// state accumulates what each builder created so later builders only ever
// reference rows that already exist.
type state struct {
	runID    string
	opts     models.RunOptions
	events   *events.Emitter
	rng      *rand.Rand
	now      time.Time
	resolver *content.Resolver

	tiers      []models.SubscriptionTier
	industries []models.Industry
	clients    []models.Client
	author     *models.Author
	categories []models.Category
	tags       []models.Tag
	articles   []models.Article
	comments   []models.Comment
}

// published returns the articles with status published, creation order kept.
func (st *state) published() []models.Article {
	var out []models.Article
	for _, a := range st.articles {
		if a.Status == models.ArticleStatusPublished {
			out = append(out, a)
		}
	}
	return out
}

func (st *state) summary() *models.Summary {
	published := len(st.published())
	return &models.Summary{
		RunID:      st.runID,
		Phase:      st.opts.Phase,
		Industries: len(st.industries),
		Clients:    len(st.clients),
		Categories: len(st.categories),
		Tags:       len(st.tags),
		Articles: models.ArticleBreakdown{
			Total:     len(st.articles),
			Published: published,
			Draft:     len(st.articles) - published,
		},
	}
}

// progress emits a builder progress line at least every ten processed parents.
func progress(em *events.Emitter, done, total int, what string) {
	if done%10 == 0 || done == total {
		em.Info(fmt.Sprintf("%s: %d/%d", what, done, total))
	}
}
