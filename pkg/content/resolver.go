package content

import (
	"context"
	"fmt"

	"github.com/Gobusters/ectologger"

	"github.com/modonty1-rgb/modonty-sub003/pkg/tracing"
)

// Resolver walks an ordered provider list and returns the first success. The
// static bank is always registered last so resolution cannot fail outright.
type Resolver struct {
	providers []Provider
	logger    ectologger.Logger
}

// NewResolver creates a resolver over the given providers. Order is the tier
// order: earlier providers are tried first.
func NewResolver(logger ectologger.Logger, providers ...Provider) *Resolver {
	return &Resolver{
		providers: providers,
		logger:    logger,
	}
}

// Restrict returns a resolver over the providers whose names pass keep.
// Provider order is preserved, so the fallback chain stays intact.
func (r *Resolver) Restrict(keep func(name string) bool) *Resolver {
	out := make([]Provider, 0, len(r.providers))
	for _, p := range r.providers {
		if keep(p.Name()) {
			out = append(out, p)
		}
	}
	return &Resolver{providers: out, logger: r.logger}
}

// Has reports whether a provider with the given name is registered.
func (r *Resolver) Has(name string) bool {
	for _, p := range r.providers {
		if p.Name() == name {
			return true
		}
	}
	return false
}

// Resolve returns the first provider success for the request. Provider errors
// are logged and swallowed; an error is returned only when no registered
// provider supports the type at all.
func (r *Resolver) Resolve(ctx context.Context, req Request) (*Result, error) {
	ctx, span := tracing.StartSpan(ctx, "content.Resolver.Resolve")
	defer span.End()

	supported := false
	for _, p := range r.providers {
		if !p.Supports(req.Type) {
			continue
		}
		supported = true

		result, err := p.Resolve(ctx, req)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"provider":     p.Name(),
				"content_type": req.Type,
			}).Warn("content provider failed, falling back to next tier")
			continue
		}
		if result == nil || len(result.Items) == 0 {
			r.logger.WithContext(ctx).WithFields(map[string]any{
				"provider":     p.Name(),
				"content_type": req.Type,
			}).Warn("content provider returned nothing, falling back to next tier")
			continue
		}

		result.Source = p.Name()
		return result, nil
	}

	if !supported {
		return nil, fmt.Errorf("no provider registered for content type %q", req.Type)
	}
	return nil, fmt.Errorf("all providers failed for content type %q", req.Type)
}

// ResolveTagVocabulary collects tag names from every supporting tier and
// merges them case-insensitively. Unlike Resolve, contributing tiers are not
// exclusive: a news vocabulary and an AI/static vocabulary are combined.
func (r *Resolver) ResolveTagVocabulary(ctx context.Context, req Request) []string {
	ctx, span := tracing.StartSpan(ctx, "content.Resolver.ResolveTagVocabulary")
	defer span.End()

	req.Type = TypeTagVocabulary

	var groups [][]string
	for _, p := range r.providers {
		if !p.Supports(TypeTagVocabulary) {
			continue
		}

		result, err := p.Resolve(ctx, req)
		if err != nil {
			r.logger.WithContext(ctx).WithError(err).WithFields(map[string]any{
				"provider": p.Name(),
			}).Warn("tag vocabulary provider failed, continuing with remaining tiers")
			continue
		}

		group := make([]string, 0, len(result.Items))
		for _, item := range result.Items {
			group = append(group, item.Text)
			group = append(group, item.Tags...)
		}
		groups = append(groups, group)
	}

	return MergeTags(groups...)
}
