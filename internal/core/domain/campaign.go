package domain

import "time"

// Campaign represents one marketing engagement for a business in one
// calendar month. DeclaredSlotCount is the number of creator slots the
// business contracted for; the allocation engine keeps it equal to the
// number of non-removed slot rows.
type Campaign struct {
	ID                int64
	BusinessID        int64
	BusinessName      string
	Month             string
	Title             string
	Status            string // free-form pipeline stage
	DeclaredSlotCount int
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CampaignRef identifies a campaign either by its id or by the legacy
// (business name, month) pair. ByID reports which form resolution should
// use when both happen to be set.
type CampaignRef struct {
	CampaignID   int64
	BusinessName string
	Month        string
}

// ByID reports whether the reference carries an explicit campaign id.
func (r CampaignRef) ByID() bool { return r.CampaignID > 0 }

// Valid reports whether the reference carries enough information to be
// resolved at all.
func (r CampaignRef) Valid() bool {
	return r.ByID() || (r.BusinessName != "" && r.Month != "")
}
