package testutil

import (
	"net/http"

	"propaudit/pkg/requestcontext"
)

// WithCaller attaches an authenticated principal to the request, the way the
// auth middleware does, for handler tests that skip the middleware.
func WithCaller(req *http.Request, caller requestcontext.Principal) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// WithBearer sets the Authorization header for tests that run the full router.
func WithBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}
