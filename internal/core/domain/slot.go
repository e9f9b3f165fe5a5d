package domain

import (
	"encoding/json"
	"time"
)

// SlotStatus is the lifecycle state of a slot row. Removed rows are kept
// forever; a removed slot is terminal and a new assignment mints a new row.
type SlotStatus string

const (
	SlotActive  SlotStatus = "active"
	SlotRemoved SlotStatus = "removed"
)

// DefaultRole is assigned to slots minted by the engine.
const DefaultRole = "primary"

// Slot binds a campaign to one occupant. An empty slot references the
// placeholder creator rather than being absent, so slot count is always a
// plain row count. Deliverables and PerformanceData are opaque to the
// engine and must survive swaps byte for byte.
type Slot struct {
	ID              int64
	CampaignID      int64
	CreatorID       int64
	CreatorName     string // joined occupant display name
	IsPlaceholder   bool   // joined from the occupant
	Status          SlotStatus
	Role            string
	Deliverables    json.RawMessage
	PerformanceData json.RawMessage
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// DefaultDeliverables returns the initial delivery-tracking payload for a
// freshly minted slot. The engine never interprets these fields again.
func DefaultDeliverables() json.RawMessage {
	return json.RawMessage(`{"briefing_sent":false,"visit_confirmed":false,"video_approved":false,"video_posted":false}`)
}

// EmptyPerformanceData returns the zeroed metrics payload for a new slot.
func EmptyPerformanceData() json.RawMessage {
	return json.RawMessage(`{}`)
}

// SlotSelector identifies one slot within a campaign, either by explicit
// slot id or by the occupant's display name (legacy surface). Name lookups
// only ever match active slots; ids may match removed rows so removal can
// stay idempotent.
type SlotSelector struct {
	SlotID      int64
	CreatorName string
}

// ByID reports whether the selector carries an explicit slot id.
func (s SlotSelector) ByID() bool { return s.SlotID > 0 }

// Valid reports whether the selector identifies anything at all.
func (s SlotSelector) Valid() bool { return s.ByID() || s.CreatorName != "" }
