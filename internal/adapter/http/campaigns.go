package httpadapter

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"creator-crm/internal/core/domain"
)

type campaignData struct {
	ID                int64  `json:"id"`
	BusinessName      string `json:"businessName"`
	Month             string `json:"month"`
	Title             string `json:"title"`
	Status            string `json:"status"`
	DeclaredSlotCount int    `json:"declaredSlotCount"`
}

type slotData struct {
	ID              int64           `json:"id"`
	CampaignID      int64           `json:"campaignId"`
	CreatorID       int64           `json:"creatorId"`
	CreatorName     string          `json:"creatorName"`
	IsPlaceholder   bool            `json:"isPlaceholder"`
	Status          string          `json:"status"`
	Role            string          `json:"role"`
	Deliverables    json.RawMessage `json:"deliverables"`
	PerformanceData json.RawMessage `json:"performanceData"`
}

// handleCampaignLookup resolves a campaign by business and month so callers
// can re-read declared counts before retrying an ambiguous add.
func (h *Handler) handleCampaignLookup(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ref := domain.CampaignRef{BusinessName: q.Get("business"), Month: q.Get("month")}
	camp, err := h.svc.GetCampaign(r.Context(), ref)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: campaignData{
		ID:                camp.ID,
		BusinessName:      camp.BusinessName,
		Month:             camp.Month,
		Title:             camp.Title,
		Status:            camp.Status,
		DeclaredSlotCount: camp.DeclaredSlotCount,
	}})
}

// handleListSlots returns a campaign's slots. Removed rows are hidden
// unless include_removed=true is passed.
func (h *Handler) handleListSlots(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "campaignID"), 10, 64)
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, envelope{Success: false, Error: "invalid campaign id"})
		return
	}
	includeRemoved := r.URL.Query().Get("include_removed") == "true"

	slots, err := h.svc.ListSlots(r.Context(), domain.CampaignRef{CampaignID: id}, includeRemoved)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	out := make([]slotData, 0, len(slots))
	for _, s := range slots {
		out = append(out, slotData{
			ID:              s.ID,
			CampaignID:      s.CampaignID,
			CreatorID:       s.CreatorID,
			CreatorName:     s.CreatorName,
			IsPlaceholder:   s.IsPlaceholder,
			Status:          string(s.Status),
			Role:            s.Role,
			Deliverables:    s.Deliverables,
			PerformanceData: s.PerformanceData,
		})
	}
	h.writeJSON(w, http.StatusOK, envelope{Success: true, Data: out})
}
