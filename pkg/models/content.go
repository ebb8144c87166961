package models

import "time"

// Author is the editorial singleton identified by a fixed email.
type Author struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Name      string    `json:"name" db:"name"`
	Bio       string    `json:"bio" db:"bio"`
	AvatarURL string    `json:"avatar_url" db:"avatar_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Category is a node in the category tree. ParentID must name a category
// created earlier; the tree is acyclic.
type Category struct {
	ID          string    `json:"id" db:"id"`
	Slug        string    `json:"slug" db:"slug"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	ParentID    *string   `json:"parent_id,omitempty" db:"parent_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Tag is a content tag; slug is the case-insensitive identity, name keeps the
// first-seen casing.
type Tag struct {
	ID        string    `json:"id" db:"id"`
	Slug      string    `json:"slug" db:"slug"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ArticleStatus is the publication state of an article.
type ArticleStatus string

const (
	ArticleStatusPublished ArticleStatus = "published"
	ArticleStatusDraft     ArticleStatus = "draft"
)

// ArticleLength classifies body size.
type ArticleLength string

const (
	ArticleLengthShort  ArticleLength = "short"
	ArticleLengthMedium ArticleLength = "medium"
	ArticleLengthLong   ArticleLength = "long"
)

// Article belongs to exactly one client, category and author. PublishedAt is
// set only for published articles.
type Article struct {
	ID          string        `json:"id" db:"id"`
	Slug        string        `json:"slug" db:"slug"`
	Title       string        `json:"title" db:"title"`
	Body        string        `json:"body" db:"body"`
	Excerpt     string        `json:"excerpt" db:"excerpt"`
	Status      ArticleStatus `json:"status" db:"status"`
	Length      ArticleLength `json:"length" db:"length"`
	ClientID    string        `json:"client_id" db:"client_id"`
	CategoryID  string        `json:"category_id" db:"category_id"`
	AuthorID    string        `json:"author_id" db:"author_id"`
	PublishedAt *time.Time    `json:"published_at,omitempty" db:"published_at"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// ArticleVersion is a point-in-time snapshot of an article body.
type ArticleVersion struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Version   int       `json:"version" db:"version"`
	Title     string    `json:"title" db:"title"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// FAQ is a question/answer pair attached to an article.
type FAQ struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	Question  string    `json:"question" db:"question"`
	Answer    string    `json:"answer" db:"answer"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Subscriber is a newsletter signup.
type Subscriber struct {
	ID           string    `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Name         string    `json:"name" db:"name"`
	SubscribedAt time.Time `json:"subscribed_at" db:"subscribed_at"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Settings is the site-wide configuration singleton, keyed by a fixed key.
type Settings struct {
	ID           string    `json:"id" db:"id"`
	Key          string    `json:"key" db:"key"`
	SiteName     string    `json:"site_name" db:"site_name"`
	SiteTagline  string    `json:"site_tagline" db:"site_tagline"`
	ContactEmail string    `json:"contact_email" db:"contact_email"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
