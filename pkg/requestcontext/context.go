// Package requestcontext provides HTTP-independent context accessors for
// request-scoped values.
//
// Middleware sets the values; services read them without importing net/http:
//
//	caller := requestcontext.Caller(ctx)
//	requestID := requestcontext.RequestID(ctx)
//	now := requestcontext.Now(ctx)
//
// Tests inject values directly:
//
//	ctx = requestcontext.WithCaller(ctx, requestcontext.Principal{UserID: uid, Role: requestcontext.RoleUser})
//	ctx = requestcontext.WithTime(ctx, fixedTime)
package requestcontext

import (
	"context"
	"time"

	id "propaudit/pkg/domain"
)

// Role is the authorisation role carried in access tokens.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// IsValid reports whether r is a known role.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID id.UserID
	Email  id.Email
	Role   Role
}

// IsAdmin reports whether the caller may act on other tenants' data.
func (p Principal) IsAdmin() bool {
	return p.Role == RoleAdmin
}

// CanAccessUser reports whether the caller owns userID or is an admin.
func (p Principal) CanAccessUser(userID id.UserID) bool {
	return p.IsAdmin() || (!p.UserID.IsNil() && p.UserID == userID)
}

// CanAccessEmail reports whether the caller owns email or is an admin.
func (p Principal) CanAccessEmail(email id.Email) bool {
	return p.IsAdmin() || (p.Email != "" && p.Email == email)
}

type (
	callerKey      struct{}
	requestIDKey   struct{}
	requestTimeKey struct{}
)

var (
	ContextKeyCaller      = callerKey{}
	ContextKeyRequestID   = requestIDKey{}
	ContextKeyRequestTime = requestTimeKey{}
)

// Caller returns the authenticated principal, or the zero value when the
// request is anonymous.
func Caller(ctx context.Context) Principal {
	if p, ok := ctx.Value(ContextKeyCaller).(Principal); ok {
		return p
	}
	return Principal{}
}

// WithCaller injects the authenticated principal.
func WithCaller(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ContextKeyCaller, p)
}

// UserID is shorthand for Caller(ctx).UserID.
func UserID(ctx context.Context) id.UserID {
	return Caller(ctx).UserID
}

// RequestID retrieves the request ID from the context.
func RequestID(ctx context.Context) string {
	if reqID, ok := ctx.Value(ContextKeyRequestID).(string); ok {
		return reqID
	}
	return ""
}

// WithRequestID injects a request ID into the context.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

// Now retrieves the request-scoped time, falling back to time.Now() outside
// HTTP requests.
func Now(ctx context.Context) time.Time {
	if t, ok := ctx.Value(ContextKeyRequestTime).(time.Time); ok {
		return t
	}
	return time.Now()
}

// WithTime injects a fixed time, mostly for tests.
func WithTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, ContextKeyRequestTime, t)
}
