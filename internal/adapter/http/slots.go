package httpadapter

import (
	"net/http"

	"creator-crm/internal/core/domain"
)

// campaignRefRequest is the campaign identification every mutation accepts:
// either an explicit campaignId or the legacy businessName+month pair.
type campaignRefRequest struct {
	CampaignID   int64  `json:"campaignId"`
	BusinessName string `json:"businessName"`
	Month        string `json:"month"`
	UserEmail    string `json:"userEmail"`
}

func (r campaignRefRequest) ref() domain.CampaignRef {
	return domain.CampaignRef{
		CampaignID:   r.CampaignID,
		BusinessName: r.BusinessName,
		Month:        r.Month,
	}
}

type slotSelectorRequest struct {
	SlotID      int64  `json:"slotId"`
	CreatorName string `json:"creatorName"`
}

func selectors(reqs []slotSelectorRequest) []domain.SlotSelector {
	sels := make([]domain.SlotSelector, 0, len(reqs))
	for _, s := range reqs {
		sels = append(sels, domain.SlotSelector{SlotID: s.SlotID, CreatorName: s.CreatorName})
	}
	return sels
}

// addSlotData keeps the field names of the legacy dashboard surface.
type addSlotData struct {
	CampaignID    int64 `json:"campaignId"`
	OldQuantidade int   `json:"oldQuantidade"`
	NewQuantidade int   `json:"newQuantidade"`
	NewSlotID     int64 `json:"newSlotId"`
	SlotsAntes    int   `json:"slotsAntes"`
	SlotsDepois   int   `json:"slotsDepois"`
}

// handleAddSlot grows a campaign by one empty slot.
func (h *Handler) handleAddSlot(w http.ResponseWriter, r *http.Request) {
	var req campaignRefRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.AddSlot(r.Context(), req.ref(), req.UserEmail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Message: "slot added",
		Data: addSlotData{
			CampaignID:    res.CampaignID,
			OldQuantidade: res.OldDeclaredCount,
			NewQuantidade: res.NewDeclaredCount,
			NewSlotID:     res.NewSlotID,
			SlotsAntes:    res.ActiveSlotsBefore,
			SlotsDepois:   res.ActiveSlotsAfter,
		},
	})
}

type removeSlotsRequest struct {
	campaignRefRequest
	Slots []slotSelectorRequest `json:"slots"`
}

// handleRemoveSlots soft-deletes the selected slots, one or many. Partial
// failure is reported as data with HTTP 200.
func (h *Handler) handleRemoveSlots(w http.ResponseWriter, r *http.Request) {
	var req removeSlotsRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.BulkRemove(r.Context(), req.ref(), selectors(req.Slots), req.UserEmail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{
		Success: true,
		Action:  "soft_delete",
		Note:    "slots are retained and flagged as removed; no rows were deleted",
		Data:    res,
	})
}

type swapSlotsRequest struct {
	campaignRefRequest
	Selection  []slotSelectorRequest `json:"selection"`
	CreatorIDs []int64               `json:"creatorIds"`
	AllowEmpty bool                  `json:"allowEmpty"`
}

// handleSwapSlots reassigns occupants pairwise across the selection.
func (h *Handler) handleSwapSlots(w http.ResponseWriter, r *http.Request) {
	var req swapSlotsRequest
	if !h.decode(w, r, &req) {
		return
	}
	res, err := h.svc.BulkSwap(r.Context(), req.ref(), selectors(req.Selection), req.CreatorIDs, req.AllowEmpty, req.UserEmail)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: res})
}
