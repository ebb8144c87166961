package models

import (
	"time"

	"github.com/modonty1-rgb/modonty-sub003/pkg/database"
)

// SEOMeta is the SEO metadata block carried by industries and clients.
type SEOMeta struct {
	Title       string   `json:"title,omitempty"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords,omitempty"`
}

// Industry is a business vertical referenced by clients.
type Industry struct {
	ID          string                  `json:"id" db:"id"`
	Name        string                  `json:"name" db:"name" validate:"required"`
	Slug        string                  `json:"slug" db:"slug" validate:"required"`
	Description string                  `json:"description" db:"description"`
	SEO         database.JSONB[SEOMeta] `json:"seo" db:"seo"`
	CreatedAt   time.Time               `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time               `json:"updated_at" db:"updated_at"`
}
