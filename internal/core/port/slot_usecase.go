package port

import (
	"context"

	"creator-crm/internal/core/domain"
)

// BulkOp names a bulk operation for the CanPerform predicate.
type BulkOp string

const (
	BulkOpAdd    BulkOp = "add"
	BulkOpRemove BulkOp = "remove"
	BulkOpSwap   BulkOp = "swap"
)

// SlotUseCase is the primary port into the slot allocation engine. Single
// operations resolve their target once and then run an id-based primitive;
// bulk operations map the same primitives over a selection with per-item,
// stop-on-first-failure semantics.
type SlotUseCase interface {
	// AddSlot grows the campaign by one placeholder-occupied slot, keeping
	// the declared count and the row count in step. On a failed slot insert
	// the count bump is compensated best effort before the error returns.
	AddSlot(ctx context.Context, ref domain.CampaignRef, actor string) (*SlotAddResult, error)

	// RemoveSlot soft-deletes the selected slot. The declared count is never
	// decremented: removing a creator frees the slot, it does not shrink the
	// contract. Removing an already removed slot is a no-op success.
	RemoveSlot(ctx context.Context, ref domain.CampaignRef, sel domain.SlotSelector, actor string) (*SlotRemoveResult, error)

	// SwapSlot replaces the occupant of the selected active slot. The target
	// creator must exist; the placeholder is only a legal target when
	// allowEmpty is set (explicit swap back to empty).
	SwapSlot(ctx context.Context, ref domain.CampaignRef, sel domain.SlotSelector, newCreatorID int64, allowEmpty bool, actor string) (*SlotSwapResult, error)

	// CanPerform reports whether an operation makes sense for the given
	// selection. Pure; no store access.
	CanPerform(op BulkOp, selection []domain.Slot) bool

	// BulkAdd assigns creators onto placeholder-occupied slots, creator i
	// onto selection i. Mismatched lengths are a validation error.
	BulkAdd(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, creatorIDs []int64, actor string) (*BulkResult, error)
	// BulkRemove soft-deletes the selected occupied slots; placeholder
	// occupants in the selection are skipped, not errors.
	BulkRemove(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, actor string) (*BulkResult, error)
	// BulkSwap replaces occupants pairwise regardless of current occupancy.
	BulkSwap(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, creatorIDs []int64, allowEmpty bool, actor string) (*BulkResult, error)

	// GetCampaign resolves a campaign for caller-driven recovery flows.
	GetCampaign(ctx context.Context, ref domain.CampaignRef) (*domain.Campaign, error)
	// ListSlots returns the campaign's slots, active only by default.
	ListSlots(ctx context.Context, ref domain.CampaignRef, includeRemoved bool) ([]domain.Slot, error)
}

// SlotAddResult reports a completed AddSlot, including the active-row counts
// before and after so legacy callers can display them.
type SlotAddResult struct {
	CampaignID        int64
	OldDeclaredCount  int
	NewDeclaredCount  int
	NewSlotID         int64
	ActiveSlotsBefore int
	ActiveSlotsAfter  int
}

// SlotRemoveResult reports a completed (or idempotently skipped) removal.
type SlotRemoveResult struct {
	CampaignID     int64
	SlotID         int64
	CreatorID      int64
	AlreadyRemoved bool
}

// SlotSwapResult reports a completed occupant swap.
type SlotSwapResult struct {
	CampaignID   int64
	SlotID       int64
	OldCreatorID int64
	NewCreatorID int64
}

// BulkFailure is one failed item of a bulk operation. SlotID is zero when
// the selector itself did not resolve; Selector then carries what the caller
// sent.
type BulkFailure struct {
	SlotID   int64  `json:"slotId"`
	Selector string `json:"selector,omitempty"`
	Error    string `json:"error"`
}

// BulkResult aggregates per-item outcomes. Partial failure is data, not an
// error: callers re-target the failed or skipped subset. Skipped holds both
// deliberately skipped items (placeholder occupants in a remove) and the
// unattempted tail after the first failure.
type BulkResult struct {
	Succeeded []int64       `json:"succeeded"`
	Failed    []BulkFailure `json:"failed"`
	Skipped   []int64       `json:"skipped"`
}
