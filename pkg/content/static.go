package content

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
)

// StaticProvider is the last tier: a built-in template bank keyed by content
// type and length class. It supports every type and never fails.
type StaticProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewStaticProvider creates the static bank tier with an injectable random
// source so tests can pin the output.
func NewStaticProvider(rng *rand.Rand) *StaticProvider {
	return &StaticProvider{rng: rng}
}

func (s *StaticProvider) Name() string { return "static" }

func (s *StaticProvider) Supports(Type) bool { return true }

func (s *StaticProvider) Resolve(_ context.Context, req Request) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := req.Count
	if count < 1 {
		count = 1
	}

	var items []Item
	switch req.Type {
	case TypeIndustryDescription:
		items = []Item{{Text: s.industryDescription(req.Topic)}}
	case TypeCategoryVocabulary:
		items = s.pickNames(categoryBank, count)
	case TypeTagVocabulary:
		items = s.pickNames(tagBank, count)
	case TypeArticleTitles:
		for i := 0; i < count; i++ {
			items = append(items, Item{Text: s.articleTitle(req.Brief)})
		}
	case TypeArticleBody:
		items = []Item{{Text: s.articleBody(req.Length, req.Topic)}}
	case TypeFAQTemplates:
		items = s.faqs(count, req.Topic)
	default:
		return nil, fmt.Errorf("unknown content type %q", req.Type)
	}

	return &Result{Items: items}, nil
}

func (s *StaticProvider) pickNames(bank []string, count int) []Item {
	if count > len(bank) {
		count = len(bank)
	}
	perm := s.rng.Perm(len(bank))
	items := make([]Item, 0, count)
	for _, idx := range perm[:count] {
		items = append(items, Item{Text: bank[idx]})
	}
	return items
}

func (s *StaticProvider) industryDescription(name string) string {
	tmpl := industryDescriptionTemplates[s.rng.Intn(len(industryDescriptionTemplates))]
	if name == "" {
		name = "this industry"
	}
	return fmt.Sprintf(tmpl, name)
}

func (s *StaticProvider) articleTitle(brief string) string {
	tmpl := titleTemplates[s.rng.Intn(len(titleTemplates))]
	topic := topicWords[s.rng.Intn(len(topicWords))]
	if brief != "" {
		topic = brief
	}
	return fmt.Sprintf(tmpl, topic)
}

func (s *StaticProvider) articleBody(length LengthClass, topic string) string {
	paragraphs := 3
	switch length {
	case LengthShort:
		paragraphs = 2
	case LengthMedium:
		paragraphs = 5
	case LengthLong:
		paragraphs = 9
	}

	var sb strings.Builder
	if topic != "" {
		sb.WriteString(fmt.Sprintf("%s\n\n", topic))
	}
	for p := 0; p < paragraphs; p++ {
		sentences := 3 + s.rng.Intn(3)
		for n := 0; n < sentences; n++ {
			sb.WriteString(s.sentence())
			sb.WriteString(" ")
		}
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

func (s *StaticProvider) sentence() string {
	words := 8 + s.rng.Intn(8)
	parts := make([]string, words)
	for i := range parts {
		parts[i] = loremWords[s.rng.Intn(len(loremWords))]
	}
	parts[0] = strings.ToUpper(parts[0][:1]) + parts[0][1:]
	return strings.Join(parts, " ") + "."
}

func (s *StaticProvider) faqs(count int, topic string) []Item {
	if count > len(faqTemplates) {
		count = len(faqTemplates)
	}
	perm := s.rng.Perm(len(faqTemplates))
	items := make([]Item, 0, count)
	if topic == "" {
		topic = "our platform"
	}
	for _, idx := range perm[:count] {
		q := fmt.Sprintf(faqTemplates[idx].question, topic)
		items = append(items, Item{Text: q, Answer: faqTemplates[idx].answer})
	}
	return items
}

var industryDescriptionTemplates = []string{
	"The %s sector covers organizations building and operating products and services in this space, from early-stage ventures to established enterprises.",
	"%s companies serve customers through a mix of digital platforms, professional services and long-term partnerships.",
	"Businesses in %s face rapid change in regulation, technology and customer expectations, driving steady demand for specialist content.",
}

var categoryBank = []string{
	"Industry News", "Product Updates", "How-To Guides", "Case Studies",
	"Opinion", "Research", "Best Practices", "Interviews", "Events",
	"Announcements", "Tutorials", "Market Analysis", "Customer Stories",
	"Engineering", "Design", "Leadership",
}

var tagBank = []string{
	"SEO", "Content Marketing", "Analytics", "Growth", "Strategy",
	"Automation", "Cloud", "Security", "Performance", "Integration",
	"B2B", "SaaS", "Productivity", "Innovation", "Data", "AI",
	"Branding", "Conversion", "Engagement", "Retention",
}

var titleTemplates = []string{
	"How %s Is Changing the Way Teams Work",
	"The Complete Guide to %s",
	"5 Lessons We Learned About %s",
	"Why %s Matters More Than Ever",
	"Getting Started with %s: A Practical Walkthrough",
	"The Future of %s in a Digital-First World",
	"What Nobody Tells You About %s",
}

var topicWords = []string{
	"content strategy", "customer engagement", "marketing automation",
	"data-driven publishing", "brand storytelling", "audience growth",
	"editorial workflows", "search optimization", "lead generation",
}

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur", "adipiscing",
	"elit", "sed", "do", "eiusmod", "tempor", "incididunt", "ut", "labore",
	"et", "dolore", "magna", "aliqua", "enim", "ad", "minim", "veniam",
	"quis", "nostrud", "exercitation", "ullamco", "laboris", "nisi",
	"aliquip", "ex", "ea", "commodo", "consequat", "product", "service",
	"platform", "digital", "cloud", "data", "system", "network", "security",
	"performance", "solution", "integration", "analytics", "automation",
	"infrastructure", "management", "enterprise", "scalable", "reliable",
	"efficient", "innovative", "modern", "customer", "market", "growth",
	"development", "technology", "software", "strategic", "professional",
}

var faqTemplates = []struct {
	question string
	answer   string
}{
	{"What is %s and who is it for?", "It is designed for teams of any size that need a reliable way to plan, publish and measure content."},
	{"How long does it take to see results with %s?", "Most teams see measurable improvements within the first quarter of consistent use."},
	{"Does %s integrate with existing tools?", "Yes, it connects to the most common analytics, CRM and publishing tools out of the box."},
	{"Is %s suitable for regulated industries?", "It supports review workflows and audit trails that regulated teams rely on."},
	{"How is pricing structured for %s?", "Pricing scales with usage, with a flat tier for small teams and volume discounts above that."},
	{"Can I migrate existing content into %s?", "Bulk import is supported, and structured content keeps its categories, tags and authorship."},
	{"What support options come with %s?", "All plans include email support; higher tiers add a dedicated success manager."},
	{"How does %s handle multiple brands or clients?", "Workspaces keep each brand's content, media and analytics separate while sharing one login."},
}
