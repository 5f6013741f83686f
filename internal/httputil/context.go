package httputil

import (
	"context"
	"net/http"
)

// Context key type to avoid collisions
type contextKey string

const (
	userIDKey contextKey = "userID"
	roleKey   contextKey = "editorialRole"
	traceKey  contextKey = "requestTrace"
)

// RequestTrace is shared by outer middleware and the handlers below it.
// Inner layers derive new requests, so values they learn are copied here.
type RequestTrace struct {
	UserID        string
	EditorialRole string
}

// WithRequestTrace attaches an empty trace to the request
func WithRequestTrace(r *http.Request) (*http.Request, *RequestTrace) {
	trace := &RequestTrace{}
	return r.WithContext(context.WithValue(r.Context(), traceKey, trace)), trace
}

// WithEditor adds the authenticated editor's ID and role to the request
// context and records them on the request trace, if any
func WithEditor(r *http.Request, userID, role string) *http.Request {
	if trace, ok := r.Context().Value(traceKey).(*RequestTrace); ok {
		trace.UserID = userID
		trace.EditorialRole = role
	}
	ctx := context.WithValue(r.Context(), userIDKey, userID)
	ctx = context.WithValue(ctx, roleKey, role)
	return r.WithContext(ctx)
}

// GetUserID retrieves userID from context, returns empty string if not found
func GetUserID(r *http.Request) string {
	userID, _ := r.Context().Value(userIDKey).(string)
	return userID
}

// GetEditorialRole retrieves the editorial role from context
func GetEditorialRole(r *http.Request) string {
	role, _ := r.Context().Value(roleKey).(string)
	return role
}
