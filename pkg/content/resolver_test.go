package content

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

type stubProvider struct {
	name   string
	types  map[Type]bool
	result *Result
	err    error
	calls  int
}

func (s *stubProvider) Name() string { return s.name }

func (s *stubProvider) Supports(t Type) bool {
	if s.types == nil {
		return true
	}
	return s.types[t]
}

func (s *stubProvider) Resolve(_ context.Context, _ Request) (*Result, error) {
	s.calls++
	return s.result, s.err
}

func TestResolve_FirstSuccessWins(t *testing.T) {
	first := &stubProvider{name: "news", result: &Result{Items: []Item{{Text: "headline"}}}}
	second := &stubProvider{name: "static", result: &Result{Items: []Item{{Text: "template"}}}}

	r := NewResolver(testLogger(), first, second)
	result, err := r.Resolve(context.Background(), Request{Type: TypeArticleTitles, Count: 1})

	require.NoError(t, err)
	assert.Equal(t, "news", result.Source)
	assert.Equal(t, "headline", result.Items[0].Text)
	assert.Zero(t, second.calls)
}

func TestResolve_FallsBackOnError(t *testing.T) {
	failing := &stubProvider{name: "ai", err: errors.New("quota exceeded")}
	static := &stubProvider{name: "static", result: &Result{Items: []Item{{Text: "template"}}}}

	r := NewResolver(testLogger(), failing, static)
	result, err := r.Resolve(context.Background(), Request{Type: TypeArticleBody})

	require.NoError(t, err)
	assert.Equal(t, "static", result.Source)
	assert.Equal(t, 1, failing.calls)
}

func TestResolve_FallsBackOnEmptyResult(t *testing.T) {
	empty := &stubProvider{name: "news", result: &Result{}}
	static := &stubProvider{name: "static", result: &Result{Items: []Item{{Text: "template"}}}}

	r := NewResolver(testLogger(), empty, static)
	result, err := r.Resolve(context.Background(), Request{Type: TypeArticleTitles})

	require.NoError(t, err)
	assert.Equal(t, "static", result.Source)
}

func TestResolve_NoProviderForType(t *testing.T) {
	only := &stubProvider{name: "news", types: map[Type]bool{TypeArticleTitles: true}}

	r := NewResolver(testLogger(), only)
	_, err := r.Resolve(context.Background(), Request{Type: TypeArticleBody})

	assert.Error(t, err)
}

func TestResolveTagVocabulary_MergesTiers(t *testing.T) {
	news := &stubProvider{name: "news", result: &Result{Items: []Item{
		{Text: "SEO", Tags: []string{"Growth"}},
	}}}
	static := &stubProvider{name: "static", result: &Result{Items: []Item{
		{Text: "seo"}, {Text: " SEO "}, {Text: "Analytics"},
	}}}

	r := NewResolver(testLogger(), news, static)
	tags := r.ResolveTagVocabulary(context.Background(), Request{Count: 5})

	assert.Equal(t, []string{"SEO", "Growth", "Analytics"}, tags)
}

func TestMergeTags_CaseInsensitiveFirstSeenCasing(t *testing.T) {
	out := MergeTags([]string{"SEO", "seo", " SEO "})
	assert.Equal(t, []string{"SEO"}, out)
}

func TestStaticProvider_AlwaysYields(t *testing.T) {
	s := NewStaticProvider(rand.New(rand.NewSource(1)))

	for _, ct := range []Type{
		TypeIndustryDescription, TypeCategoryVocabulary, TypeTagVocabulary,
		TypeArticleTitles, TypeArticleBody, TypeFAQTemplates,
	} {
		result, err := s.Resolve(context.Background(), Request{Type: ct, Count: 3, Length: LengthShort})
		require.NoError(t, err, "type %s", ct)
		assert.NotEmpty(t, result.Items, "type %s", ct)
	}
}

func TestStaticProvider_FAQsCarryAnswers(t *testing.T) {
	s := NewStaticProvider(rand.New(rand.NewSource(2)))
	result, err := s.Resolve(context.Background(), Request{Type: TypeFAQTemplates, Count: 4, Topic: "Acme CMS"})

	require.NoError(t, err)
	require.Len(t, result.Items, 4)
	for _, item := range result.Items {
		assert.Contains(t, item.Text, "Acme CMS")
		assert.NotEmpty(t, item.Answer)
	}
}
