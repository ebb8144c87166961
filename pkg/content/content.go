// Package content resolves generated text through an ordered provider chain.
// Each content type has a fixed source order; any provider failure degrades
// silently to the next tier and the static bank at the end can never fail.
package content

import (
	"context"
	"strings"
)

// Type names one kind of resolvable content.
type Type string

const (
	TypeIndustryDescription Type = "industry_description"
	TypeCategoryVocabulary  Type = "category_vocabulary"
	TypeTagVocabulary       Type = "tag_vocabulary"
	TypeArticleTitles       Type = "article_titles"
	TypeArticleBody         Type = "article_body"
	TypeFAQTemplates        Type = "faq_templates"
)

// LengthClass mirrors the article content-length class for body resolution.
type LengthClass string

const (
	LengthShort  LengthClass = "short"
	LengthMedium LengthClass = "medium"
	LengthLong   LengthClass = "long"
)

// Request asks a provider for content of one type.
type Request struct {
	Type     Type
	Language string
	// Brief is optional free text biasing generation toward a domain.
	Brief string
	// Count is how many items are wanted (titles, vocabulary entries, FAQs).
	Count int
	// Topic seeds bodies and FAQs with the owning article's title.
	Topic string
	// Length applies to article bodies only.
	Length LengthClass
}

// Item is one resolved entry. Tags are only populated by sources that carry
// them alongside titles (the news tier); Answer only by FAQ resolution.
type Item struct {
	Text   string
	Tags   []string
	Answer string
}

// Result is the outcome of one resolution.
type Result struct {
	Items  []Item
	Source string
}

// Provider is one tier in the fallback chain.
type Provider interface {
	Name() string
	Supports(t Type) bool
	Resolve(ctx context.Context, req Request) (*Result, error)
}

// MergeTags de-duplicates tag names case-insensitively after trimming,
// preserving first-seen casing and order.
func MergeTags(groups ...[]string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, group := range groups {
		for _, raw := range group {
			name := strings.TrimSpace(raw)
			if name == "" {
				continue
			}
			key := strings.ToLower(name)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, name)
		}
	}
	return out
}
