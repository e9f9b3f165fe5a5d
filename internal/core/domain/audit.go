package domain

import "time"

// SystemActor is recorded when a caller does not identify itself.
const SystemActor = "system@internal"

// AuditAction names the mutation an audit entry describes.
type AuditAction string

const (
	AuditAddSlot    AuditAction = "add_slot"
	AuditRemoveSlot AuditAction = "remove_slot"
	AuditSwapSlot   AuditAction = "swap_slot"
)

// AuditEntry is one immutable record of a committed mutation. Entries are
// append-only and written best effort; they never gate the mutation that
// produced them.
type AuditEntry struct {
	EventID    string
	EntityType string
	EntityID   string
	Action     AuditAction
	UserEmail  string
	OldValue   string
	NewValue   string
	Details    map[string]any
	CreatedAt  time.Time
}
