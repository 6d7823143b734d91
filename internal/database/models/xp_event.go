package models

import (
	"time"

	"github.com/uptrace/bun"
)

// XPEvent is one row of the append-only gamification ledger.
type XPEvent struct {
	bun.BaseModel `bun:"table:xp_events,alias:xe"`

	ID     int64  `bun:"id,pk,autoincrement"`
	UserID string `bun:"user_id,notnull"`
	Amount int64  `bun:"amount,notnull"`
	Reason string `bun:"reason,notnull"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
