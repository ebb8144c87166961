package models

import "time"

// MediaType classifies what a media asset is used for.
type MediaType string

const (
	MediaTypeLogo         MediaType = "logo"
	MediaTypeOGImage      MediaType = "og_image"
	MediaTypeTwitterImage MediaType = "twitter_image"
	MediaTypePostImage    MediaType = "post_image"
	MediaTypeGallery      MediaType = "gallery"
)

// Media is a stored image asset with its delivery URL.
type Media struct {
	ID        string    `json:"id" db:"id"`
	Type      MediaType `json:"type" db:"type"`
	PublicID  string    `json:"public_id" db:"public_id"`
	URL       string    `json:"url" db:"url"`
	AltText   string    `json:"alt_text" db:"alt_text"`
	ClientID  *string   `json:"client_id,omitempty" db:"client_id"`
	ArticleID *string   `json:"article_id,omitempty" db:"article_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ArticleMedia links a gallery media row to an article with an ordering.
type ArticleMedia struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	MediaID   string    `json:"media_id" db:"media_id"`
	Position  int       `json:"position" db:"position"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// Comment is a reader comment on an article, threaded one level via ParentID.
type Comment struct {
	ID        string    `json:"id" db:"id"`
	ArticleID string    `json:"article_id" db:"article_id"`
	ParentID  *string   `json:"parent_id,omitempty" db:"parent_id"`
	AuthorName string   `json:"author_name" db:"author_name"`
	Body      string    `json:"body" db:"body"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// ClientComment is a comment left on a client profile, threaded one level.
type ClientComment struct {
	ID         string    `json:"id" db:"id"`
	ClientID   string    `json:"client_id" db:"client_id"`
	ParentID   *string   `json:"parent_id,omitempty" db:"parent_id"`
	AuthorName string    `json:"author_name" db:"author_name"`
	Body       string    `json:"body" db:"body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
