package student

import (
	"strings"

	"github.com/uptrace/bun"
)

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID       int64  `bun:"student_id,pk,autoincrement" json:"student_id"`
	Name     string `bun:"name,notnull" json:"name"`
	Email    string `bun:"email,unique,notnull" json:"email"`
	Password string `bun:"password,notnull" json:"-"` // bcrypt hash, never serialized
}

// NormalizeEmail is applied before every store and lookup so identity is case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
