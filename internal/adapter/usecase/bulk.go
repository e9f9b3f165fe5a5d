package usecase

import (
	"context"
	"errors"
	"fmt"

	"creator-crm/internal/core/domain"
	"creator-crm/internal/core/port"
)

// The bulk coordinator maps the single-slot primitives over a selection.
// Selectors are resolved up front so the primitives stay id-based; mutations
// run sequentially and stop at the first store failure, with the unattempted
// tail reported as skipped. No cross-slot rollback: each row's mutation is
// atomic on its own and a partially applied bulk is recoverable by the
// caller re-targeting the failed subset.

type bulkItem struct {
	idx  int
	slot *domain.Slot
}

// CanPerform reports whether an operation makes sense for the selection:
// add needs a non-empty, fully-placeholder selection; remove and swap need
// at least one slot occupied by a real creator.
func (s *SlotService) CanPerform(op port.BulkOp, selection []domain.Slot) bool {
	switch op {
	case port.BulkOpAdd:
		if len(selection) == 0 {
			return false
		}
		for _, sl := range selection {
			if !sl.IsPlaceholder {
				return false
			}
		}
		return true
	case port.BulkOpRemove, port.BulkOpSwap:
		for _, sl := range selection {
			if !sl.IsPlaceholder {
				return true
			}
		}
	}
	return false
}

// BulkAdd assigns creator i onto selected slot i via the swap primitive.
// Every selected slot must currently hold the placeholder.
func (s *SlotService) BulkAdd(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, creatorIDs []int64, actor string) (*port.BulkResult, error) {
	actor = normalizeActor(actor)
	if err := validatePairing(selection, creatorIDs); err != nil {
		return nil, err
	}
	camp, items, res, err := s.prepare(ctx, ref, selection)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if !it.slot.IsPlaceholder {
			return nil, &port.ValidationError{
				Field:  "selection",
				Reason: fmt.Sprintf("slot %d is already occupied; add requires empty slots", it.slot.ID),
			}
		}
	}
	s.applyPairwise(ctx, camp, items, creatorIDs, false, actor, res)
	return res, nil
}

// BulkRemove soft-deletes the selected occupied slots. Placeholder-occupied
// slots in the selection are skipped rather than failed.
func (s *SlotService) BulkRemove(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, actor string) (*port.BulkResult, error) {
	actor = normalizeActor(actor)
	if len(selection) == 0 {
		return nil, &port.ValidationError{Field: "selection", Reason: "selection is empty"}
	}
	camp, items, res, err := s.prepare(ctx, ref, selection)
	if err != nil {
		return nil, err
	}
	if !s.CanPerform(port.BulkOpRemove, slotsOf(items)) {
		return nil, &port.ValidationError{Field: "selection", Reason: "remove requires at least one occupied slot"}
	}
	failed := false
	for _, it := range items {
		if failed || it.slot.IsPlaceholder {
			res.Skipped = append(res.Skipped, it.slot.ID)
			continue
		}
		if _, err := s.applyRemove(ctx, camp, it.slot, actor); err != nil {
			res.Failed = append(res.Failed, port.BulkFailure{SlotID: it.slot.ID, Error: err.Error()})
			failed = true
			continue
		}
		res.Succeeded = append(res.Succeeded, it.slot.ID)
	}
	return res, nil
}

// BulkSwap replaces occupants pairwise; source occupancy may be any
// creator, but a fully-empty selection belongs to BulkAdd instead.
func (s *SlotService) BulkSwap(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, creatorIDs []int64, allowEmpty bool, actor string) (*port.BulkResult, error) {
	actor = normalizeActor(actor)
	if err := validatePairing(selection, creatorIDs); err != nil {
		return nil, err
	}
	camp, items, res, err := s.prepare(ctx, ref, selection)
	if err != nil {
		return nil, err
	}
	if len(items) > 0 && !s.CanPerform(port.BulkOpSwap, slotsOf(items)) {
		return nil, &port.ValidationError{Field: "selection", Reason: "swap requires at least one occupied slot"}
	}
	s.applyPairwise(ctx, camp, items, creatorIDs, allowEmpty, actor, res)
	return res, nil
}

// prepare resolves the campaign and the selection. Selectors that resolve
// to nothing become per-item failures; a store failure during resolution
// aborts the whole operation before any mutation.
func (s *SlotService) prepare(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector) (*domain.Campaign, []bulkItem, *port.BulkResult, error) {
	camp, err := s.resolveCampaign(ctx, ref)
	if err != nil {
		return nil, nil, nil, err
	}
	res := &port.BulkResult{
		Succeeded: []int64{},
		Failed:    []port.BulkFailure{},
		Skipped:   []int64{},
	}
	items := make([]bulkItem, 0, len(selection))
	for i, sel := range selection {
		if !sel.Valid() {
			res.Failed = append(res.Failed, port.BulkFailure{Error: "slot id or creator name required"})
			continue
		}
		slot, err := s.repo.FindSlot(ctx, camp.ID, sel)
		if err != nil {
			if errors.Is(err, port.ErrSlotNotFound) {
				res.Failed = append(res.Failed, port.BulkFailure{
					SlotID:   sel.SlotID,
					Selector: selectorString(sel),
					Error:    port.ErrSlotNotFound.Error(),
				})
				continue
			}
			return nil, nil, nil, &port.StoreError{Op: "resolve selection", Err: err}
		}
		items = append(items, bulkItem{idx: i, slot: slot})
	}
	return camp, items, res, nil
}

func (s *SlotService) applyPairwise(ctx context.Context, camp *domain.Campaign, items []bulkItem, creatorIDs []int64, allowEmpty bool, actor string, res *port.BulkResult) {
	failed := false
	for _, it := range items {
		if failed {
			res.Skipped = append(res.Skipped, it.slot.ID)
			continue
		}
		if _, err := s.applySwap(ctx, camp, it.slot, creatorIDs[it.idx], allowEmpty, actor); err != nil {
			res.Failed = append(res.Failed, port.BulkFailure{SlotID: it.slot.ID, Error: err.Error()})
			failed = true
			continue
		}
		res.Succeeded = append(res.Succeeded, it.slot.ID)
	}
}

func validatePairing(selection []domain.SlotSelector, creatorIDs []int64) error {
	if len(selection) == 0 {
		return &port.ValidationError{Field: "selection", Reason: "selection is empty"}
	}
	if len(creatorIDs) != len(selection) {
		return &port.ValidationError{Field: "creatorIds", Reason: "must have one creator per selected slot"}
	}
	return nil
}

func slotsOf(items []bulkItem) []domain.Slot {
	slots := make([]domain.Slot, 0, len(items))
	for _, it := range items {
		slots = append(slots, *it.slot)
	}
	return slots
}

func selectorString(sel domain.SlotSelector) string {
	if sel.ByID() {
		return fmt.Sprintf("slot:%d", sel.SlotID)
	}
	return "creator:" + sel.CreatorName
}
