package models

import (
	"time"

	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
)

// Client is a customer organization that owns articles.
type Client struct {
	ID           string                  `json:"id" db:"id"`
	Slug         string                  `json:"slug" db:"slug" validate:"required"`
	Name         string                  `json:"name" db:"name" validate:"required"`
	LegalName    string                  `json:"legal_name" db:"legal_name"`
	Website      string                  `json:"website" db:"website"`
	Email        string                  `json:"email" db:"email"`
	IndustryID   *string                 `json:"industry_id,omitempty" db:"industry_id"`
	TierID       *string                 `json:"tier_id,omitempty" db:"tier_id"`
	ParentOrgID  *string                 `json:"parent_org_id,omitempty" db:"parent_org_id"`
	LogoMediaID  *string                 `json:"logo_media_id,omitempty" db:"logo_media_id"`
	OGMediaID    *string                 `json:"og_media_id,omitempty" db:"og_media_id"`
	TwitterMediaID *string               `json:"twitter_media_id,omitempty" db:"twitter_media_id"`
	SEO          database.JSONB[SEOMeta] `json:"seo" db:"seo"`
	CreatedAt    time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time               `json:"updated_at" db:"updated_at"`
}

// SubscriptionTier is a billing tier configuration row.
type SubscriptionTier struct {
	ID              string    `json:"id" db:"id"`
	Slug            string    `json:"slug" db:"slug"`
	Name            string    `json:"name" db:"name"`
	MonthlyPriceUSD int       `json:"monthly_price_usd" db:"monthly_price_usd"`
	ArticleQuota    int       `json:"article_quota" db:"article_quota"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}
