package models

import "github.com/golang-jwt/jwt/v5"

// Editorial roles carried in the token's app_metadata
const (
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// EditorClaims represents the JWT claims issued by Supabase Auth for
// newsroom staff. The editorial role lives in app_metadata, which only
// the service role can write.
// See: https://supabase.com/docs/guides/auth/jwts
type EditorClaims struct {
	jwt.RegisteredClaims                // Standard JWT claims (sub, iss, aud, exp, iat, etc.)
	Email                string         `json:"email"`
	Role                 string         `json:"role"` // "authenticated" or "anon"
	AppMetadata          map[string]any `json:"app_metadata"`
	SessionID            string         `json:"session_id"`
}

// GetUserID returns the user ID from the JWT subject claim.
func (c *EditorClaims) GetUserID() string {
	return c.Subject
}

// EditorialRole returns app_metadata.editorial_role, or "" when absent
func (c *EditorClaims) EditorialRole() string {
	role, _ := c.AppMetadata["editorial_role"].(string)
	return role
}

// IsStaff reports whether the token belongs to an editor or an admin
func (c *EditorClaims) IsStaff() bool {
	switch c.EditorialRole() {
	case RoleEditor, RoleAdmin:
		return true
	}
	return false
}
