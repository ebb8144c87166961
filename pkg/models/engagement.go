package models

import "time"

// ArticleView is a single recorded page view of a published article.
type ArticleView struct {
	ID          string    `json:"id" db:"id"`
	ArticleID   string    `json:"article_id" db:"article_id"`
	UserAgent   string    `json:"user_agent" db:"user_agent"`
	CountryCode string    `json:"country_code" db:"country_code"`
	ViewedAt    time.Time `json:"viewed_at" db:"viewed_at"`
}

// ReactionKind distinguishes likes from dislikes.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// Reaction is a like or dislike on a published article.
type Reaction struct {
	ID        string       `json:"id" db:"id"`
	ArticleID string       `json:"article_id" db:"article_id"`
	Kind      ReactionKind `json:"kind" db:"kind"`
	CreatedAt time.Time    `json:"created_at" db:"created_at"`
}

// Share records an article shared to a social network.
type Share struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Network   string    `json:"network" db:"network"`
	SharedAt  time.Time `json:"shared_at" db:"shared_at"`
}

// Conversion is a goal completion attributed to a client, optionally via an article.
type Conversion struct {
	ID          string    `json:"id" db:"id"`
	ClientID    string    `json:"client_id" db:"client_id"`
	ArticleID   *string   `json:"article_id,omitempty" db:"article_id"`
	ValueUSD    int       `json:"value_usd" db:"value_usd"`
	ConvertedAt time.Time `json:"converted_at" db:"converted_at"`
}

// CTAClick records a call-to-action click inside an article.
type CTAClick struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Label     string    `json:"label" db:"label"`
	ClickedAt time.Time `json:"clicked_at" db:"clicked_at"`
}

// CampaignAttribution ties article traffic to a marketing campaign.
type CampaignAttribution struct {
	ID           string    `json:"id" db:"id"`
	ArticleID    string    `json:"article_id" db:"article_id"`
	Campaign     string    `json:"campaign" db:"campaign"`
	Source       string    `json:"source" db:"source"`
	Medium       string    `json:"medium" db:"medium"`
	AttributedAt time.Time `json:"attributed_at" db:"attributed_at"`
}

// LeadScore is a point-in-time lead-scoring snapshot for a client.
type LeadScore struct {
	ID         string    `json:"id" db:"id"`
	ClientID   string    `json:"client_id" db:"client_id"`
	Score      int       `json:"score" db:"score"`
	CapturedAt time.Time `json:"captured_at" db:"captured_at"`
}

// EngagementDuration is one time-on-page sample for a published article.
type EngagementDuration struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Seconds   int       `json:"seconds" db:"seconds"`
	SampledAt time.Time `json:"sampled_at" db:"sampled_at"`
}

// LinkClick records an outbound link click from an article body.
type LinkClick struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	TargetURL string    `json:"target_url" db:"target_url"`
	ClickedAt time.Time `json:"clicked_at" db:"clicked_at"`
}

// InteractionSubject names what an interaction row is attached to.
type InteractionSubject string

const (
	InteractionSubjectArticle InteractionSubject = "article"
	InteractionSubjectClient  InteractionSubject = "client"
	InteractionSubjectComment InteractionSubject = "comment"
)

// Interaction is a generic engagement row against an article, client or comment.
type Interaction struct {
	ID          string             `json:"id" db:"id"`
	SubjectType InteractionSubject `json:"subject_type" db:"subject_type"`
	SubjectID   string             `json:"subject_id" db:"subject_id"`
	Kind        string             `json:"kind" db:"kind"`
	CreatedAt   time.Time          `json:"created_at" db:"created_at"`
}
