package models

// Phase selects which subset of the pipeline runs.
type Phase string

const (
	// PhaseClientsOnly seeds tiers, industries, clients and the author, then stops.
	PhaseClientsOnly Phase = "clients-only"
	// PhaseFull runs the whole pipeline.
	PhaseFull Phase = "full"
)

// RunOptions carries the knobs for one seed run.
type RunOptions struct {
	// Total is the requested article count (the corpus size driving
	// proportional scaling).
	Total int `json:"total" validate:"required,min=1"`
	// ClientCount overrides how many clients to create in clients-only phase.
	ClientCount int    `json:"client_count,omitempty" validate:"omitempty,min=1"`
	Phase       Phase  `json:"phase" validate:"required,oneof=clients-only full"`
	Reset       bool   `json:"reset"`
	UseAI       bool   `json:"use_ai"`
	UseNews     bool   `json:"use_news"`
	UseImages   bool   `json:"use_images"`
	// Brief is optional free text biasing generated content toward a domain.
	Brief string `json:"brief,omitempty"`
}

// ArticleBreakdown is the status split of created articles.
type ArticleBreakdown struct {
	Total     int `json:"total"`
	Published int `json:"published"`
	Draft     int `json:"draft"`
}

// Summary is the result of a seed run. Partial failures still produce one.
type Summary struct {
	RunID      string           `json:"run_id"`
	Phase      Phase            `json:"phase"`
	Industries int              `json:"industries"`
	Clients    int              `json:"clients"`
	Categories int              `json:"categories"`
	Tags       int              `json:"tags"`
	Articles   ArticleBreakdown `json:"articles"`
}
