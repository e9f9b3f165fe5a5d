package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"creator-crm/internal/core/domain"
)

// Seed inserts demo CRM data: a handful of businesses with one campaign
// each, a roster of creators, the placeholder creator, and slot rows that
// already satisfy the declared-count invariant.
func Seed(ctx context.Context, db *pgxpool.Pool) error {
	// placeholder creator, same find-or-create the engine performs
	var placeholderID int64
	err := db.QueryRow(ctx, `INSERT INTO creators (name, slug, is_placeholder, is_active)
VALUES ($1, $2, true, true) ON CONFLICT (slug) DO UPDATE SET name = EXCLUDED.name
RETURNING id`, domain.PlaceholderName, domain.PlaceholderSlug).Scan(&placeholderID)
	if err != nil {
		return err
	}

	creatorNames := []string{
		"Ana Beatriz", "Carla Mendes", "Diego Rocha", "Fernanda Lima",
		"Gustavo Reis", "Juliana Prado", "Marcos Vieira", "Paula Castro",
	}
	creatorIDs := make([]int64, 0, len(creatorNames))
	for _, name := range creatorNames {
		var id int64
		err = db.QueryRow(ctx, `INSERT INTO creators (name, is_placeholder, is_active)
VALUES ($1, false, true) RETURNING id`, name).Scan(&id)
		if err != nil {
			return err
		}
		creatorIDs = append(creatorIDs, id)
	}

	businesses := []string{"Acme Burgers", "Bloom Cafe", "Vila Fit Studio"}
	months := []string{"Julho", "Agosto", "Setembro"}
	for i, name := range businesses {
		var bizID int64
		err = db.QueryRow(ctx, `INSERT INTO businesses (name) VALUES ($1)
ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name RETURNING id`, name).Scan(&bizID)
		if err != nil {
			return err
		}

		slotCount := 2 + i
		var campID int64
		err = db.QueryRow(ctx, `INSERT INTO campaigns
    (business_id, month, title, status, declared_slot_count)
VALUES ($1, $2, $3, 'briefing', $4)
ON CONFLICT (business_id, month) DO UPDATE SET title = EXCLUDED.title
RETURNING id`,
			bizID, months[i], fmt.Sprintf("%s — %s", name, months[i]), slotCount).Scan(&campID)
		if err != nil {
			return err
		}

		// slots: first one occupied by a real creator, the rest placeholder
		for j := 0; j < slotCount; j++ {
			occupant := placeholderID
			if j == 0 {
				occupant = creatorIDs[(i*3+j)%len(creatorIDs)]
			}
			_, err = db.Exec(ctx, `INSERT INTO campaign_slots
    (campaign_id, creator_id, status, role, deliverables, performance_data)
VALUES ($1, $2, 'active', 'primary',
    '{"briefing_sent":false,"visit_confirmed":false,"video_approved":false,"video_posted":false}', '{}')`,
				campID, occupant)
			if err != nil {
				return err
			}
		}

		_, err = db.Exec(ctx, `INSERT INTO audit_log
    (event_id, entity_type, entity_id, action, user_email, old_value, new_value, details)
VALUES ($1, 'campaign', $2, 'create', $3, '', $4, '{"source":"seed"}')`,
			uuid.NewString(), fmt.Sprintf("%d", campID), domain.SystemActor,
			fmt.Sprintf("%d", slotCount))
		if err != nil {
			return err
		}
	}
	return nil
}
