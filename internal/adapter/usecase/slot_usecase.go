package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"creator-crm/internal/core/domain"
	"creator-crm/internal/core/port"
	"creator-crm/internal/metrics"
)

// SlotService implements the slot allocation engine behind port.SlotUseCase.
// It keeps a campaign's declared slot count equal to its non-removed slot
// rows: AddSlot bumps the count then mints a placeholder-occupied row and
// compensates the bump when the insert fails; RemoveSlot soft-deletes
// without touching the count; SwapSlot replaces the occupant only. Every
// committed mutation is reported to the audit sink best effort.
type SlotService struct {
	repo    port.SlotRepository
	audit   port.AuditSink
	logger  *slog.Logger
	metrics *metrics.Metrics
}

// NewSlotService creates the engine. Logger may be nil; metrics may be nil.
func NewSlotService(repo port.SlotRepository, audit port.AuditSink, logger *slog.Logger, m *metrics.Metrics) *SlotService {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlotService{repo: repo, audit: audit, logger: logger, metrics: m}
}

// AddSlot grows the campaign by one slot. Order matters here: the declared
// count is bumped first with a single conditional update, then the
// placeholder is resolved and the row inserted. If either later step fails
// the count bump is compensated with a best-effort decrement before the
// error returns, so the invariant holds after the call either way.
func (s *SlotService) AddSlot(ctx context.Context, ref domain.CampaignRef, actor string) (*port.SlotAddResult, error) {
	const op = "add_slot"
	actor = normalizeActor(actor)

	camp, err := s.resolveCampaign(ctx, ref)
	if err != nil {
		return nil, s.fail(op, err)
	}

	before, err := s.repo.CountActiveSlots(ctx, camp.ID)
	if err != nil {
		return nil, s.fail(op, &port.StoreError{Op: "count slots", Err: err})
	}

	newCount, err := s.repo.IncrementDeclaredCount(ctx, camp.ID)
	if err != nil {
		if errors.Is(err, port.ErrCampaignNotFound) {
			return nil, s.fail(op, err)
		}
		return nil, s.fail(op, &port.StoreError{Op: "increment declared count", Err: err})
	}
	oldCount := newCount - 1

	placeholderID, err := s.repo.ResolveOrCreatePlaceholder(ctx)
	if err != nil {
		s.compensateCount(ctx, camp.ID)
		return nil, s.fail(op, &port.StoreError{Op: "resolve placeholder", Err: err})
	}

	slot := &domain.Slot{
		CampaignID:      camp.ID,
		CreatorID:       placeholderID,
		Status:          domain.SlotActive,
		Role:            domain.DefaultRole,
		Deliverables:    domain.DefaultDeliverables(),
		PerformanceData: domain.EmptyPerformanceData(),
	}
	slotID, err := s.repo.InsertSlot(ctx, slot)
	if err != nil {
		s.compensateCount(ctx, camp.ID)
		return nil, s.fail(op, &port.StoreError{Op: "insert slot", Err: err})
	}

	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "campaign",
		EntityID:   strconv.FormatInt(camp.ID, 10),
		Action:     domain.AuditAddSlot,
		UserEmail:  actor,
		OldValue:   strconv.Itoa(oldCount),
		NewValue:   strconv.Itoa(newCount),
		Details: map[string]any{
			"slot_id":  slotID,
			"business": camp.BusinessName,
			"month":    camp.Month,
		},
	})
	s.metrics.ObserveSlotOp(op, "ok")

	return &port.SlotAddResult{
		CampaignID:        camp.ID,
		OldDeclaredCount:  oldCount,
		NewDeclaredCount:  newCount,
		NewSlotID:         slotID,
		ActiveSlotsBefore: before,
		ActiveSlotsAfter:  before + 1,
	}, nil
}

// RemoveSlot soft-deletes the selected slot. Removing a slot that is
// already removed is a no-op success.
func (s *SlotService) RemoveSlot(ctx context.Context, ref domain.CampaignRef, sel domain.SlotSelector, actor string) (*port.SlotRemoveResult, error) {
	actor = normalizeActor(actor)
	camp, err := s.resolveCampaign(ctx, ref)
	if err != nil {
		return nil, err
	}
	slot, err := s.findSlot(ctx, camp.ID, sel)
	if err != nil {
		return nil, err
	}
	return s.applyRemove(ctx, camp, slot, actor)
}

// SwapSlot replaces the occupant of the selected active slot.
func (s *SlotService) SwapSlot(ctx context.Context, ref domain.CampaignRef, sel domain.SlotSelector, newCreatorID int64, allowEmpty bool, actor string) (*port.SlotSwapResult, error) {
	actor = normalizeActor(actor)
	camp, err := s.resolveCampaign(ctx, ref)
	if err != nil {
		return nil, err
	}
	slot, err := s.findSlot(ctx, camp.ID, sel)
	if err != nil {
		return nil, err
	}
	return s.applySwap(ctx, camp, slot, newCreatorID, allowEmpty, actor)
}

// GetCampaign resolves a campaign so callers can re-read state before
// retrying an ambiguous add.
func (s *SlotService) GetCampaign(ctx context.Context, ref domain.CampaignRef) (*domain.Campaign, error) {
	return s.resolveCampaign(ctx, ref)
}

// ListSlots returns the campaign's slots, active only unless asked.
func (s *SlotService) ListSlots(ctx context.Context, ref domain.CampaignRef, includeRemoved bool) ([]domain.Slot, error) {
	camp, err := s.resolveCampaign(ctx, ref)
	if err != nil {
		return nil, err
	}
	slots, err := s.repo.ListSlots(ctx, camp.ID, includeRemoved)
	if err != nil {
		return nil, &port.StoreError{Op: "list slots", Err: err}
	}
	return slots, nil
}

// applyRemove is the id-based removal primitive shared by the single and
// bulk paths. The slot row is never deleted, only flagged, and the declared
// count stays put: freeing a slot does not shrink the contract.
func (s *SlotService) applyRemove(ctx context.Context, camp *domain.Campaign, slot *domain.Slot, actor string) (*port.SlotRemoveResult, error) {
	const op = "remove_slot"
	if slot.Status == domain.SlotRemoved {
		s.metrics.ObserveSlotOp(op, "ok")
		return &port.SlotRemoveResult{CampaignID: camp.ID, SlotID: slot.ID, CreatorID: slot.CreatorID, AlreadyRemoved: true}, nil
	}
	if err := s.repo.MarkSlotRemoved(ctx, slot.ID); err != nil {
		return nil, s.fail(op, &port.StoreError{Op: "mark slot removed", Err: err})
	}
	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "campaign_slot",
		EntityID:   strconv.FormatInt(slot.ID, 10),
		Action:     domain.AuditRemoveSlot,
		UserEmail:  actor,
		OldValue:   string(domain.SlotActive),
		NewValue:   string(domain.SlotRemoved),
		Details: map[string]any{
			"campaign_id":  camp.ID,
			"creator_id":   slot.CreatorID,
			"creator_name": slot.CreatorName,
		},
	})
	s.metrics.ObserveSlotOp(op, "ok")
	return &port.SlotRemoveResult{CampaignID: camp.ID, SlotID: slot.ID, CreatorID: slot.CreatorID}, nil
}

// applySwap is the id-based swap primitive shared by the single and bulk
// paths. Only creator_id changes; deliverables and performance data ride
// along untouched. A removed slot is terminal and cannot be swapped.
func (s *SlotService) applySwap(ctx context.Context, camp *domain.Campaign, slot *domain.Slot, newCreatorID int64, allowEmpty bool, actor string) (*port.SlotSwapResult, error) {
	const op = "swap_slot"
	if slot.Status == domain.SlotRemoved {
		return nil, s.fail(op, port.ErrSlotNotFound)
	}
	creator, err := s.repo.GetCreator(ctx, newCreatorID)
	if err != nil {
		if errors.Is(err, port.ErrCreatorNotFound) {
			return nil, s.fail(op, err)
		}
		return nil, s.fail(op, &port.StoreError{Op: "get creator", Err: err})
	}
	if creator.IsPlaceholder && !allowEmpty {
		return nil, s.fail(op, &port.ValidationError{Field: "creatorId", Reason: "swapping back to empty must be requested explicitly"})
	}
	if err := s.repo.SwapSlotCreator(ctx, slot.ID, creator.ID); err != nil {
		if errors.Is(err, port.ErrSlotNotFound) {
			return nil, s.fail(op, err)
		}
		return nil, s.fail(op, &port.StoreError{Op: "swap slot creator", Err: err})
	}
	s.recordAudit(ctx, domain.AuditEntry{
		EntityType: "campaign_slot",
		EntityID:   strconv.FormatInt(slot.ID, 10),
		Action:     domain.AuditSwapSlot,
		UserEmail:  actor,
		OldValue:   strconv.FormatInt(slot.CreatorID, 10),
		NewValue:   strconv.FormatInt(creator.ID, 10),
		Details: map[string]any{
			"campaign_id":      camp.ID,
			"old_creator_name": slot.CreatorName,
			"new_creator_name": creator.Name,
		},
	})
	s.metrics.ObserveSlotOp(op, "ok")
	return &port.SlotSwapResult{CampaignID: camp.ID, SlotID: slot.ID, OldCreatorID: slot.CreatorID, NewCreatorID: creator.ID}, nil
}

func (s *SlotService) resolveCampaign(ctx context.Context, ref domain.CampaignRef) (*domain.Campaign, error) {
	if !ref.Valid() {
		return nil, &port.ValidationError{Field: "campaign", Reason: "campaign id or business name and month required"}
	}
	camp, err := s.repo.ResolveCampaign(ctx, ref)
	if err != nil {
		if errors.Is(err, port.ErrCampaignNotFound) {
			return nil, err
		}
		return nil, &port.StoreError{Op: "resolve campaign", Err: err}
	}
	return camp, nil
}

func (s *SlotService) findSlot(ctx context.Context, campaignID int64, sel domain.SlotSelector) (*domain.Slot, error) {
	if !sel.Valid() {
		return nil, &port.ValidationError{Field: "slot", Reason: "slot id or creator name required"}
	}
	slot, err := s.repo.FindSlot(ctx, campaignID, sel)
	if err != nil {
		if errors.Is(err, port.ErrSlotNotFound) {
			return nil, err
		}
		return nil, &port.StoreError{Op: "find slot", Err: err}
	}
	return slot, nil
}

// compensateCount is the best-effort rollback of an add's count bump. Its
// own failure is logged, never returned over the original error.
func (s *SlotService) compensateCount(ctx context.Context, campaignID int64) {
	if _, err := s.repo.DecrementDeclaredCount(ctx, campaignID); err != nil {
		s.logger.Warn("compensating count decrement failed",
			slog.Int64("campaign_id", campaignID),
			slog.Any("error", err))
	}
}

// recordAudit writes one audit entry best effort. Failures are counted and
// logged but never surfaced to the caller.
func (s *SlotService) recordAudit(ctx context.Context, entry domain.AuditEntry) {
	if s.audit == nil {
		return
	}
	entry.EventID = uuid.NewString()
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	if entry.UserEmail == "" {
		entry.UserEmail = domain.SystemActor
	}
	if err := s.audit.Record(ctx, entry); err != nil {
		s.metrics.ObserveAuditFailure()
		s.logger.Warn("audit write failed",
			slog.String("action", string(entry.Action)),
			slog.String("entity_id", entry.EntityID),
			slog.Any("error", err))
	}
}

func (s *SlotService) fail(op string, err error) error {
	s.metrics.ObserveSlotOp(op, "error")
	return err
}

func normalizeActor(actor string) string {
	actor = strings.TrimSpace(actor)
	if actor == "" {
		return domain.SystemActor
	}
	return actor
}
