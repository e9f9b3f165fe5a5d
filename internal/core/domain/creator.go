package domain

import "time"

// Well-known identity of the placeholder creator. The slug carries a
// unique index in the store, which is what makes concurrent find-or-create
// safe across processes.
const (
	PlaceholderSlug = "slot-vago-placeholder"
	PlaceholderName = "Slot Vago"
)

// Creator is a content creator that can occupy campaign slots. The
// placeholder creator is a regular row flagged with IsPlaceholder so that
// listing and reporting paths can exclude it.
type Creator struct {
	ID            int64
	Name          string
	Slug          string // unique, only set for system creators
	IsPlaceholder bool
	IsActive      bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
