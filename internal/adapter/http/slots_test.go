package httpadapter

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"creator-crm/internal/core/domain"
	"creator-crm/internal/core/port"
)

// stubUseCase implements port.SlotUseCase with overridable functions.
type stubUseCase struct {
	addSlot    func(ctx context.Context, ref domain.CampaignRef, actor string) (*port.SlotAddResult, error)
	bulkRemove func(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, actor string) (*port.BulkResult, error)
	bulkSwap   func(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, creatorIDs []int64, allowEmpty bool, actor string) (*port.BulkResult, error)
	listSlots  func(ctx context.Context, ref domain.CampaignRef, includeRemoved bool) ([]domain.Slot, error)
}

func (s *stubUseCase) AddSlot(ctx context.Context, ref domain.CampaignRef, actor string) (*port.SlotAddResult, error) {
	return s.addSlot(ctx, ref, actor)
}

func (s *stubUseCase) RemoveSlot(context.Context, domain.CampaignRef, domain.SlotSelector, string) (*port.SlotRemoveResult, error) {
	return nil, nil
}

func (s *stubUseCase) SwapSlot(context.Context, domain.CampaignRef, domain.SlotSelector, int64, bool, string) (*port.SlotSwapResult, error) {
	return nil, nil
}

func (s *stubUseCase) CanPerform(port.BulkOp, []domain.Slot) bool { return true }

func (s *stubUseCase) BulkAdd(context.Context, domain.CampaignRef, []domain.SlotSelector, []int64, string) (*port.BulkResult, error) {
	return nil, nil
}

func (s *stubUseCase) BulkRemove(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, actor string) (*port.BulkResult, error) {
	return s.bulkRemove(ctx, ref, selection, actor)
}

func (s *stubUseCase) BulkSwap(ctx context.Context, ref domain.CampaignRef, selection []domain.SlotSelector, creatorIDs []int64, allowEmpty bool, actor string) (*port.BulkResult, error) {
	return s.bulkSwap(ctx, ref, selection, creatorIDs, allowEmpty, actor)
}

func (s *stubUseCase) GetCampaign(context.Context, domain.CampaignRef) (*domain.Campaign, error) {
	return nil, port.ErrCampaignNotFound
}

func (s *stubUseCase) ListSlots(ctx context.Context, ref domain.CampaignRef, includeRemoved bool) ([]domain.Slot, error) {
	return s.listSlots(ctx, ref, includeRemoved)
}

func newTestHandler(stub *stubUseCase) *Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewHandler(stub, logger, nil)
}

func TestAddSlotKeepsLegacyFieldNames(t *testing.T) {
	stub := &stubUseCase{
		addSlot: func(_ context.Context, ref domain.CampaignRef, actor string) (*port.SlotAddResult, error) {
			require.Equal(t, "Acme Burgers", ref.BusinessName)
			require.Equal(t, "Agosto", ref.Month)
			require.Equal(t, "staff@acme.test", actor)
			return &port.SlotAddResult{
				CampaignID: 7, OldDeclaredCount: 2, NewDeclaredCount: 3,
				NewSlotID: 41, ActiveSlotsBefore: 2, ActiveSlotsAfter: 3,
			}, nil
		},
	}
	h := newTestHandler(stub)

	body := `{"businessName":"Acme Burgers","month":"Agosto","userEmail":"staff@acme.test"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/add", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success bool           `json:"success"`
		Data    map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, float64(7), resp.Data["campaignId"])
	require.Equal(t, float64(2), resp.Data["oldQuantidade"])
	require.Equal(t, float64(3), resp.Data["newQuantidade"])
	require.Equal(t, float64(41), resp.Data["newSlotId"])
	require.Equal(t, float64(2), resp.Data["slotsAntes"])
	require.Equal(t, float64(3), resp.Data["slotsDepois"])
}

func TestAddSlotMapsCampaignNotFound(t *testing.T) {
	stub := &stubUseCase{
		addSlot: func(context.Context, domain.CampaignRef, string) (*port.SlotAddResult, error) {
			return nil, port.ErrCampaignNotFound
		},
	}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/add", strings.NewReader(`{"campaignId":99}`))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Equal(t, "campaign not found", resp.Error)
}

func TestRemoveSlotsReportsSoftDelete(t *testing.T) {
	stub := &stubUseCase{
		bulkRemove: func(_ context.Context, _ domain.CampaignRef, selection []domain.SlotSelector, _ string) (*port.BulkResult, error) {
			require.Len(t, selection, 2)
			require.Equal(t, int64(11), selection[0].SlotID)
			require.Equal(t, "Ana Beatriz", selection[1].CreatorName)
			return &port.BulkResult{Succeeded: []int64{11, 12}, Failed: []port.BulkFailure{}, Skipped: []int64{}}, nil
		},
	}
	h := newTestHandler(stub)

	body := `{"campaignId":7,"slots":[{"slotId":11},{"creatorName":"Ana Beatriz"}],"userEmail":"staff@acme.test"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/remove", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Equal(t, "soft_delete", resp.Action)
	require.Contains(t, resp.Note, "no rows were deleted")
}

func TestSwapSlotsMapsValidationError(t *testing.T) {
	stub := &stubUseCase{
		bulkSwap: func(context.Context, domain.CampaignRef, []domain.SlotSelector, []int64, bool, string) (*port.BulkResult, error) {
			return nil, &port.ValidationError{Field: "creatorIds", Reason: "must have one creator per selected slot"}
		},
	}
	h := newTestHandler(stub)

	body := `{"campaignId":7,"selection":[{"slotId":11}],"creatorIds":[1,2]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/swap", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.False(t, resp.Success)
	require.Contains(t, resp.Error, "creatorIds")
}

func TestListSlotsPassesIncludeRemoved(t *testing.T) {
	stub := &stubUseCase{
		listSlots: func(_ context.Context, ref domain.CampaignRef, includeRemoved bool) ([]domain.Slot, error) {
			require.Equal(t, int64(7), ref.CampaignID)
			require.True(t, includeRemoved)
			return []domain.Slot{{ID: 1, CampaignID: 7, Status: domain.SlotRemoved}}, nil
		},
	}
	h := newTestHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/campaigns/7/slots?include_removed=true", nil)
	rec := httptest.NewRecorder()
	h.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Success bool             `json:"success"`
		Data    []map[string]any `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	require.Len(t, resp.Data, 1)
	require.Equal(t, "removed", resp.Data[0]["status"])
}
