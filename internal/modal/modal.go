// Package modal controls the lead-capture overlay for one page render.
package modal

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"sync"
)

// QueryKey and QueryOpen are the request parameter that opens the overlay.
const (
	QueryKey  = "contact"
	QueryOpen = "open"
)

// ErrOutsideProvider is returned when a controller is requested from a
// context that never went through Middleware.
var ErrOutsideProvider = errors.New("modal: controller used outside of modal.Middleware")

// Controller is a single visibility flag.
type Controller struct {
	mu   sync.Mutex
	open bool
}

// New returns a closed controller.
func New() *Controller {
	return &Controller{}
}

func (c *Controller) IsOpen() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.open
}

func (c *Controller) Open() {
	c.mu.Lock()
	c.open = true
	c.mu.Unlock()
}

func (c *Controller) Close() {
	c.mu.Lock()
	c.open = false
	c.mu.Unlock()
}

type ctxKey struct{}

// WithController returns a context carrying c.
func WithController(ctx context.Context, c *Controller) context.Context {
	return context.WithValue(ctx, ctxKey{}, c)
}

// From returns the controller installed in ctx.
func From(ctx context.Context) (*Controller, error) {
	c, ok := ctx.Value(ctxKey{}).(*Controller)
	if !ok || c == nil {
		return nil, ErrOutsideProvider
	}
	return c, nil
}

// MustFrom is From that panics with ErrOutsideProvider.
func MustFrom(ctx context.Context) *Controller {
	c, err := From(ctx)
	if err != nil {
		panic(err)
	}
	return c
}

// Middleware installs a fresh controller per request, open when the request
// asks for it with ?contact=open.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c := New()
		if r.URL.Query().Get(QueryKey) == QueryOpen {
			c.Open()
		}
		next.ServeHTTP(w, r.WithContext(WithController(r.Context(), c)))
	})
}

// OpenURL returns u with the overlay open.
func OpenURL(u *url.URL) string {
	q := u.Query()
	q.Set(QueryKey, QueryOpen)
	return u.Path + "?" + q.Encode()
}

// CloseURL returns u with the overlay parameter removed.
func CloseURL(u *url.URL) string {
	q := u.Query()
	q.Del(QueryKey)
	if len(q) == 0 {
		return u.Path
	}
	return u.Path + "?" + q.Encode()
}
