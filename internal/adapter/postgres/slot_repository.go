package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"creator-crm/internal/core/domain"
	"creator-crm/internal/core/port"
)

// SlotRepository implements port.SlotRepository using pgxpool for
// PostgreSQL. Per-row atomic updates plus the unique index on the
// placeholder slug are the only concurrency control the engine needs, so no
// explicit transactions appear here.
type SlotRepository struct {
	pool *pgxpool.Pool
}

// NewSlotRepository returns a new repository instance.
func NewSlotRepository(pool *pgxpool.Pool) *SlotRepository {
	return &SlotRepository{pool: pool}
}

const campaignColumns = `
        c.id,
        c.business_id,
        b.name,
        c.month,
        c.title,
        c.status,
        c.declared_slot_count,
        c.created_at,
        c.updated_at`

// ResolveCampaign resolves by id or by the legacy (business, month) pair.
// The unique key on (business_id, month) guarantees at most one match for
// the legacy form.
func (r *SlotRepository) ResolveCampaign(ctx context.Context, ref domain.CampaignRef) (*domain.Campaign, error) {
	query := `SELECT` + campaignColumns + `
        FROM campaigns c
        JOIN businesses b ON b.id = c.business_id `
	var row pgx.Row
	if ref.ByID() {
		row = r.pool.QueryRow(ctx, query+`WHERE c.id = $1`, ref.CampaignID)
	} else {
		row = r.pool.QueryRow(ctx, query+`WHERE lower(b.name) = lower($1) AND c.month = $2`,
			ref.BusinessName, ref.Month)
	}
	var c domain.Campaign
	err := row.Scan(&c.ID, &c.BusinessID, &c.BusinessName, &c.Month, &c.Title, &c.Status,
		&c.DeclaredSlotCount, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCampaignNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// IncrementDeclaredCount bumps the count in a single conditional update so
// two concurrent adds both land (no read-then-write window).
func (r *SlotRepository) IncrementDeclaredCount(ctx context.Context, campaignID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`UPDATE campaigns
         SET declared_slot_count = declared_slot_count + 1, updated_at = now()
         WHERE id = $1
         RETURNING declared_slot_count`, campaignID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, port.ErrCampaignNotFound
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// DecrementDeclaredCount is the compensating write for a failed add. It is
// clamped at zero in case the campaign was mutated in between.
func (r *SlotRepository) DecrementDeclaredCount(ctx context.Context, campaignID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`UPDATE campaigns
         SET declared_slot_count = GREATEST(declared_slot_count - 1, 0), updated_at = now()
         WHERE id = $1
         RETURNING declared_slot_count`, campaignID).Scan(&count)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, port.ErrCampaignNotFound
	}
	if err != nil {
		return 0, err
	}
	return count, nil
}

// CountActiveSlots counts non-removed slot rows for a campaign.
func (r *SlotRepository) CountActiveSlots(ctx context.Context, campaignID int64) (int, error) {
	var count int
	err := r.pool.QueryRow(ctx,
		`SELECT count(*) FROM campaign_slots WHERE campaign_id = $1 AND status = 'active'`,
		campaignID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// InsertSlot stores a new slot row and returns its id.
func (r *SlotRepository) InsertSlot(ctx context.Context, slot *domain.Slot) (int64, error) {
	now := time.Now().UTC()
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO campaign_slots
             (campaign_id, creator_id, status, role, deliverables, performance_data, created_at, updated_at)
         VALUES ($1,$2,$3,$4,$5,$6,$7,$7)
         RETURNING id`,
		slot.CampaignID, slot.CreatorID, string(slot.Status), slot.Role,
		slot.Deliverables, slot.PerformanceData, now).Scan(&id)
	if err != nil {
		return 0, err
	}
	slot.ID = id
	slot.CreatedAt = now
	slot.UpdatedAt = now
	return id, nil
}

const slotColumns = `
        s.id,
        s.campaign_id,
        s.creator_id,
        cr.name,
        cr.is_placeholder,
        s.status,
        s.role,
        s.deliverables,
        s.performance_data,
        s.created_at,
        s.updated_at`

func scanSlot(row pgx.Row) (domain.Slot, error) {
	var (
		s      domain.Slot
		status string
	)
	err := row.Scan(&s.ID, &s.CampaignID, &s.CreatorID, &s.CreatorName, &s.IsPlaceholder,
		&status, &s.Role, &s.Deliverables, &s.PerformanceData, &s.CreatedAt, &s.UpdatedAt)
	s.Status = domain.SlotStatus(status)
	return s, err
}

// ListSlots returns the campaign's slots with occupant identity joined in.
func (r *SlotRepository) ListSlots(ctx context.Context, campaignID int64, includeRemoved bool) ([]domain.Slot, error) {
	query := `SELECT` + slotColumns + `
        FROM campaign_slots s
        JOIN creators cr ON cr.id = s.creator_id
        WHERE s.campaign_id = $1`
	if !includeRemoved {
		query += ` AND s.status = 'active'`
	}
	query += ` ORDER BY s.id`
	rows, err := r.pool.Query(ctx, query, campaignID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Slot, error) {
		return scanSlot(row)
	})
}

// FindSlot resolves a selector. Id selectors match any status so removal
// stays idempotent; name selectors only ever see active occupants.
func (r *SlotRepository) FindSlot(ctx context.Context, campaignID int64, sel domain.SlotSelector) (*domain.Slot, error) {
	query := `SELECT` + slotColumns + `
        FROM campaign_slots s
        JOIN creators cr ON cr.id = s.creator_id `
	var row pgx.Row
	if sel.ByID() {
		row = r.pool.QueryRow(ctx, query+`WHERE s.id = $1 AND s.campaign_id = $2`,
			sel.SlotID, campaignID)
	} else {
		row = r.pool.QueryRow(ctx, query+
			`WHERE s.campaign_id = $1 AND s.status = 'active' AND lower(cr.name) = lower($2)
             ORDER BY s.id LIMIT 1`,
			campaignID, sel.CreatorName)
	}
	slot, err := scanSlot(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrSlotNotFound
	}
	if err != nil {
		return nil, err
	}
	return &slot, nil
}

// MarkSlotRemoved flips an active slot to removed. Zero rows affected means
// the slot was already removed, which is fine.
func (r *SlotRepository) MarkSlotRemoved(ctx context.Context, slotID int64) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE campaign_slots SET status = 'removed', updated_at = now()
         WHERE id = $1 AND status = 'active'`, slotID)
	return err
}

// SwapSlotCreator updates only creator_id (and updated_at) on an active
// slot; deliverables and performance data are untouched.
func (r *SlotRepository) SwapSlotCreator(ctx context.Context, slotID, creatorID int64) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE campaign_slots SET creator_id = $2, updated_at = now()
         WHERE id = $1 AND status = 'active'`, slotID, creatorID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return port.ErrSlotNotFound
	}
	return nil
}

// GetCreator returns a creator by id.
func (r *SlotRepository) GetCreator(ctx context.Context, id int64) (*domain.Creator, error) {
	var c domain.Creator
	err := r.pool.QueryRow(ctx,
		`SELECT id, name, COALESCE(slug, ''), is_placeholder, is_active, created_at, updated_at
         FROM creators WHERE id = $1`, id).
		Scan(&c.ID, &c.Name, &c.Slug, &c.IsPlaceholder, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, port.ErrCreatorNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ResolveOrCreatePlaceholder finds or creates the sentinel creator. The
// unique index on slug arbitrates concurrent creation: the loser's insert
// returns no row and the follow-up select reads the winner's.
func (r *SlotRepository) ResolveOrCreatePlaceholder(ctx context.Context) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO creators (name, slug, is_placeholder, is_active, created_at, updated_at)
         VALUES ($1, $2, true, true, now(), now())
         ON CONFLICT (slug) DO NOTHING
         RETURNING id`,
		domain.PlaceholderName, domain.PlaceholderSlug).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, err
	}
	err = r.pool.QueryRow(ctx,
		`SELECT id FROM creators WHERE slug = $1`, domain.PlaceholderSlug).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}
