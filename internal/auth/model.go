package auth

// Role of an authenticated principal.
type Role string

const (
	RoleStudent Role = "student"
	RoleAdmin   Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// Identity is what a session carries about its principal. It never holds password material.
type Identity struct {
	Role     Role   `json:"role"`
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Username string `json:"username,omitempty"`
}

// RegisterRequest is the request body for registration
type RegisterRequest struct {
	Name     string `json:"name" form:"name" validate:"required,storedtext,max=100"`
	Email    string `json:"email" form:"email" validate:"required,storedtext,email,max=254"`
	Password string `json:"password" form:"password" validate:"required,storedtext,min=4,max=72"`
}

// LoginRequest is the request body for student login
type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// AdminLoginRequest is the request body for admin login
type AdminLoginRequest struct {
	Username string `json:"username" form:"username" binding:"required"`
	Password string `json:"password" form:"password" binding:"required"`
}

// SessionResponse is returned by both login endpoints.
type SessionResponse struct {
	Identity  *Identity `json:"identity"`
	ExpiresAt int64     `json:"expires_at"`
}
