package seeder

import (
	"fmt"
	"math/rand"
	"net/url"
	"strings"
	"unicode"
)

// slugify lowercases, strips non-alphanumerics and joins words with hyphens.
func slugify(s string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastHyphen = false
		case !lastHyphen:
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}

// pick returns a random element of the slice.
func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.Intn(len(items))]
}

const (
	authorEmail = "editorial@modonty.dev"
	settingsKey = "site"
)

type industryFixture struct {
	name string
}

var industryFixtures = []industryFixture{
	{name: "Technology"},
	{name: "Healthcare"},
	{name: "Finance"},
	{name: "Retail"},
	{name: "Education"},
	{name: "Real Estate"},
	{name: "Hospitality"},
	{name: "Manufacturing"},
}

type tierFixture struct {
	name         string
	monthlyUSD   int
	articleQuota int
}

var tierFixtures = []tierFixture{
	{name: "Starter", monthlyUSD: 49, articleQuota: 10},
	{name: "Growth", monthlyUSD: 199, articleQuota: 50},
	{name: "Scale", monthlyUSD: 499, articleQuota: 200},
}

var clientNamePool = []string{
	"Northwind Labs", "Bluepeak Systems", "Harborline Group", "Veldt Analytics",
	"Copperleaf Media", "Stonebridge Digital", "Lumen Forge", "Atlas Verge",
	"Brightwater Partners", "Cindercrest Studio", "Driftline Commerce",
	"Emberworks Collective", "Foxglove Trading", "Graniteview Holdings",
	"Hollowpine Ventures", "Ironquill Press", "Juniper Gate", "Kestrel Point",
	"Larkfield Supply", "Mosswood Interactive", "Nightharbor Logistics",
	"Oakenshield Consulting", "Pinewheel Software", "Quartzline Health",
}

var commenterNamePool = []string{
	"Avery Collins", "Jordan Blake", "Riley Norwood", "Casey Tran",
	"Morgan Ellis", "Sam Whitaker", "Taylor Finch", "Quinn Harper",
	"Jamie Aldrich", "Drew Mercer",
}

var commentBodyPool = []string{
	"Really useful breakdown, thanks for sharing.",
	"We ran into exactly this last quarter.",
	"Would love a follow-up that goes deeper on the data side.",
	"Bookmarked. The checklist at the end is gold.",
	"Not sure I agree with the second point, but well argued.",
	"This clarified a lot for our team.",
	"Great overview for anyone starting out.",
}

var shareNetworkPool = []string{"linkedin", "x", "facebook", "reddit", "email"}

var ctaLabelPool = []string{
	"Book a demo", "Download the guide", "Start free trial",
	"Talk to sales", "Subscribe to updates",
}

var campaignPool = []string{"spring-launch", "evergreen-seo", "q4-push", "newsletter-cross"}
var campaignSourcePool = []string{"google", "newsletter", "linkedin", "partner"}
var campaignMediumPool = []string{"cpc", "email", "social", "referral"}

var interactionKindPool = []string{"bookmark", "follow", "report", "upvote"}

var countryCodePool = []string{"US", "GB", "DE", "FR", "NL", "CA", "AU", "IN", "BR", "JP"}

var userAgentPool = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) Chrome/124.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 14_4) Safari/605.1.15",
	"Mozilla/5.0 (X11; Linux x86_64) Firefox/125.0",
	"Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) Mobile/15E148",
}

var linkTargetPool = []string{
	"https://example.com/pricing",
	"https://example.com/case-studies",
	"https://example.com/docs",
	"https://example.com/blog",
}

// sourceImageURL is the candidate image the pipeline tries to validate and
// upload before falling back to alternatives.
func sourceImageURL(term string, width, height int) string {
	return fmt.Sprintf("https://picsum.photos/seed/%s/%d/%d", slugify(term), width, height)
}

// placeholderImageURL is the last-resort delivery URL when every image step failed.
func placeholderImageURL(term string, width, height int) string {
	return fmt.Sprintf("https://placehold.co/%dx%d?text=%s", width, height, url.QueryEscape(term))
}
