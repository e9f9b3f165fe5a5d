package port

import (
	"context"

	"creator-crm/internal/core/domain"
)

// SlotRepository is the persistence port for campaigns, slots and creators.
// It is an outbound port in hexagonal architecture. Implementations must be
// concurrency-safe; the only concurrency primitives the engine relies on are
// the conditional count update and the unique constraint behind placeholder
// creation.
type SlotRepository interface {
	// ResolveCampaign resolves a campaign by id or by (business, month).
	// Returns ErrCampaignNotFound when the reference matches nothing.
	ResolveCampaign(ctx context.Context, ref domain.CampaignRef) (*domain.Campaign, error)

	// IncrementDeclaredCount atomically bumps the campaign's declared slot
	// count by one and returns the new value. The increment must be a single
	// conditional update so concurrent adds cannot lose a write.
	IncrementDeclaredCount(ctx context.Context, campaignID int64) (int, error)
	// DecrementDeclaredCount is the compensating write for a failed add. It
	// never drives the count below zero. Returns the new value.
	DecrementDeclaredCount(ctx context.Context, campaignID int64) (int, error)

	// CountActiveSlots returns the number of non-removed slot rows.
	CountActiveSlots(ctx context.Context, campaignID int64) (int, error)
	// InsertSlot stores a new slot row and returns its id.
	InsertSlot(ctx context.Context, slot *domain.Slot) (int64, error)
	// ListSlots returns the campaign's slots joined with occupant identity,
	// active only unless includeRemoved is set, ordered by id.
	ListSlots(ctx context.Context, campaignID int64, includeRemoved bool) ([]domain.Slot, error)
	// FindSlot resolves a selector within a campaign. Id selectors match any
	// status; name selectors match active slots only. Returns ErrSlotNotFound
	// when nothing matches.
	FindSlot(ctx context.Context, campaignID int64, sel domain.SlotSelector) (*domain.Slot, error)
	// MarkSlotRemoved flips an active slot to removed. Flipping an already
	// removed slot is a no-op, never an error. The row is never deleted.
	MarkSlotRemoved(ctx context.Context, slotID int64) error
	// SwapSlotCreator updates the occupant of an active slot, touching no
	// other column. Returns ErrSlotNotFound when the slot is missing or
	// already removed.
	SwapSlotCreator(ctx context.Context, slotID, creatorID int64) error

	// GetCreator returns a creator by id or ErrCreatorNotFound.
	GetCreator(ctx context.Context, id int64) (*domain.Creator, error)
	// ResolveOrCreatePlaceholder returns the id of the sentinel creator,
	// creating it on first use. Safe under concurrent callers: the loser of a
	// creation race re-reads the winner's row.
	ResolveOrCreatePlaceholder(ctx context.Context) (int64, error)
}

// AuditSink appends immutable mutation records. Record failures must never
// gate the mutation that produced the entry; callers log and move on.
type AuditSink interface {
	Record(ctx context.Context, entry domain.AuditEntry) error
}
