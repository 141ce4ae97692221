// Package server wires the handlers into the application's HTTP routes.
package server

import (
	"net/http"
	"strings"

	"github.com/contactbook/backend/internal/handler"
	"github.com/contactbook/backend/internal/view"
	"github.com/contactbook/backend/pkg/session"
)

// Deps are the collaborators the routes are built from.
type Deps struct {
	Health   *handler.Handler
	Pages    *handler.PageHandler
	Contacts *handler.ContactHandler
	Sessions *session.Store
	Metrics  *handler.Metrics

	// RateLimiter is optional; nil disables rate limiting.
	RateLimiter *handler.RateLimiter
}

// New returns the root handler: the route table wrapped in the middleware
// chain.
func New(d Deps) http.Handler {
	mux := http.NewServeMux()

	handle := func(pattern string, h http.HandlerFunc) {
		method, route, _ := strings.Cut(pattern, " ")
		mux.Handle(pattern, d.Metrics.Instrument(method, route, h))
	}

	handle("GET /{$}", d.Pages.Home)
	handle("GET /about", d.Pages.About)

	handle("GET /contact", d.Contacts.List)
	handle("GET /contact/add", d.Contacts.AddForm)
	handle("POST /contact", d.Contacts.Create)
	handle("GET /contact/edit/{id}", d.Contacts.EditForm)
	handle("PUT /contact/{id}", d.Contacts.Update)
	handle("GET /contact/{id}", d.Contacts.Detail)
	handle("DELETE /contact/{id}", d.Contacts.Delete)

	handle("GET /healthz", d.Health.Health)
	mux.HandleFunc("GET /metrics", d.Metrics.Handler)

	// 静的ファイル (css など)
	mux.Handle("GET /", view.StaticHandler())

	var h http.Handler = mux
	h = d.Sessions.Middleware(h)
	if d.RateLimiter != nil {
		h = d.RateLimiter.Middleware(h)
	}
	h = handler.SecurityHeaders(h)
	h = handler.RequestLogger(h)
	// 外側で書き換えるのでログ・メトリクスにも実際のメソッドが出る
	h = handler.MethodOverride(h)
	return h
}
