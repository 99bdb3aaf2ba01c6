package client

import (
	"context"
	"net/http"
)

type skipAuthKey struct{}

// WithoutAuth marks a request context so the bearer transport leaves the
// request untouched. Third-party geocoding calls use this — they must never
// see the session token.
func WithoutAuth(ctx context.Context) context.Context {
	return context.WithValue(ctx, skipAuthKey{}, true)
}

// TokenSource provides the current bearer token, or "" when logged out.
type TokenSource interface {
	Token() string
}

// BearerTransport is an http.RoundTripper that attaches
// "Authorization: Bearer <token>" to outgoing requests when a token is
// present and the request is not flagged with WithoutAuth.
type BearerTransport struct {
	Tokens TokenSource
	Base   http.RoundTripper
}

// NewHTTPClient returns an *http.Client wired with a BearerTransport over the
// default transport.
func NewHTTPClient(tokens TokenSource) *http.Client {
	return &http.Client{Transport: &BearerTransport{Tokens: tokens}}
}

func (t *BearerTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}

	if skip, _ := req.Context().Value(skipAuthKey{}).(bool); skip {
		return base.RoundTrip(req)
	}

	token := ""
	if t.Tokens != nil {
		token = t.Tokens.Token()
	}
	if token == "" {
		return base.RoundTrip(req)
	}

	// Per RoundTripper contract the request must not be mutated in place.
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+token)
	return base.RoundTrip(clone)
}
