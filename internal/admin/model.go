package admin

import "github.com/uptrace/bun"

// Admin accounts are provisioned from the CLI; the web app only reads them.
type Admin struct {
	bun.BaseModel `bun:"table:admins,alias:a"`

	ID       int64  `bun:"id,pk,autoincrement" json:"id"`
	Username string `bun:"username,unique,notnull" json:"username"`
	Password string `bun:"password,notnull" json:"-"` // bcrypt hash
}
