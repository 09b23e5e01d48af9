package watchdog

import (
	"net/http"
	"strings"
)

// TokenResolver extracts the session token from an incoming request. The
// watchdog only observes tokens, it never issues them, so there is no
// write side.
type TokenResolver interface {
	Resolve(r *http.Request) (string, error)
}

// CookieResolver reads the session token from a request cookie.
type CookieResolver struct {
	name string
}

// NewCookieResolver creates a cookie-based resolver. An empty name falls
// back to DefaultCookieName.
func NewCookieResolver(name string) *CookieResolver {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieResolver{name: name}
}

// Resolve extracts the session token from the cookie.
func (c *CookieResolver) Resolve(r *http.Request) (string, error) {
	cookie, err := r.Cookie(c.name)
	if err != nil || cookie.Value == "" {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}

// HeaderResolver reads the session token from a request header.
type HeaderResolver struct {
	headerName string
	prefix     string
}

// HeaderResolverOption is a functional option for HeaderResolver.
type HeaderResolverOption func(*HeaderResolver)

// WithHeaderPrefix sets the prefix stripped from the header value.
func WithHeaderPrefix(prefix string) HeaderResolverOption {
	return func(h *HeaderResolver) {
		h.prefix = prefix
	}
}

// NewHeaderResolver creates a header-based resolver. An empty name falls
// back to the Authorization header with a "Bearer " prefix.
func NewHeaderResolver(headerName string, opts ...HeaderResolverOption) *HeaderResolver {
	h := &HeaderResolver{
		headerName: headerName,
		prefix:     "Bearer ",
	}
	if h.headerName == "" {
		h.headerName = "Authorization"
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Resolve extracts the session token from the header.
func (h *HeaderResolver) Resolve(r *http.Request) (string, error) {
	value := r.Header.Get(h.headerName)
	if value == "" {
		return "", ErrNoToken
	}

	if h.prefix != "" && strings.HasPrefix(value, h.prefix) {
		value = strings.TrimPrefix(value, h.prefix)
	}

	if value == "" {
		return "", ErrNoToken
	}
	return value, nil
}

// CompositeResolver tries multiple resolvers in order.
type CompositeResolver struct {
	resolvers []TokenResolver
}

// NewCompositeResolver creates a resolver that returns the first token any
// of the given resolvers finds.
func NewCompositeResolver(resolvers ...TokenResolver) *CompositeResolver {
	return &CompositeResolver{resolvers: resolvers}
}

// Resolve extracts the session token from the first successful resolver.
func (c *CompositeResolver) Resolve(r *http.Request) (string, error) {
	for _, resolver := range c.resolvers {
		token, err := resolver.Resolve(r)
		if err == nil && token != "" {
			return token, nil
		}
	}
	return "", ErrNoToken
}

var (
	_ TokenResolver = (*CookieResolver)(nil)
	_ TokenResolver = (*HeaderResolver)(nil)
	_ TokenResolver = (*CompositeResolver)(nil)
)
