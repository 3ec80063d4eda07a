package auth

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"feedback-service/common/httputil"

	"github.com/gin-gonic/gin"
)

type contextKey string

// IdentityKey is the context key for the authenticated Identity
const IdentityKey contextKey = "identity"

// CookieName returns the session cookie that carries a role's token.
func CookieName(role Role) string {
	return string(role) + "_token"
}

// CookieOptions controls session cookie attributes.
type CookieOptions struct {
	Env string
	// SingleRole clears the other role's cookie on login.
	SingleRole bool
}

func (o CookieOptions) secure() bool {
	// Secure cookies require HTTPS - enable for production environments
	return o.Env == "production" || o.Env == "prod" || o.Env == "gcp-gke"
}

func (o CookieOptions) sameSite() http.SameSite {
	if o.Env == "development" || o.Env == "local" || o.Env == "unittest" {
		return http.SameSiteLaxMode // Allow testing from Postman
	}
	return http.SameSiteStrictMode
}

// SetAuthCookie stores the token in an HttpOnly cookie scoped to the role.
func SetAuthCookie(c *gin.Context, opts CookieOptions, role Role, token string, ttl time.Duration) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName(role),
		Value:    token,
		HttpOnly: true,
		Secure:   opts.secure(),
		SameSite: opts.sameSite(),
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
	})
}

// ClearAuthCookie removes the role's cookie
func ClearAuthCookie(c *gin.Context, opts CookieOptions, role Role) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     CookieName(role),
		Value:    "",
		HttpOnly: true,
		Secure:   opts.secure(),
		SameSite: opts.sameSite(),
		Path:     "/",
		MaxAge:   -1, // Delete cookie
	})
}

// RequireRole validates the role's cookie and puts the Identity on the request context.
func RequireRole(tokens *TokenIssuer, role Role, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Request.Cookie(CookieName(role))
		if err != nil || cookie.Value == "" {
			logger.Warn("no auth cookie found", "path", c.Request.URL.Path, "role", role)
			httputil.RespondWithError(c, http.StatusUnauthorized, "Please log in to continue.")
			return
		}

		id, err := tokens.Parse(cookie.Value)
		if err != nil || id.Role != role {
			logger.Warn("invalid token", "path", c.Request.URL.Path, "role", role, "error", err)
			httputil.RespondWithError(c, http.StatusUnauthorized, "Please log in to continue.")
			return
		}

		c.Set(string(IdentityKey), id)
		c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), id))
		c.Next()
	}
}

func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// IdentityFromContext extracts the Identity placed by RequireRole
func IdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*Identity)
	return id, ok && id != nil
}
