package models

import (
	"time"

	"github.com/uptrace/bun"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       string `bun:"id,pk"`
	Username string `bun:"username,notnull"`
	Email    string `bun:"email"`

	XP   int64  `bun:"xp,notnull,default:0"`
	Tier string `bun:"tier,notnull,default:'bronze'"`

	IsAdmin bool `bun:"is_admin,notnull,default:false"`

	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}
