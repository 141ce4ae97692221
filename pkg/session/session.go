// Package session keeps per-client state in an HMAC-signed cookie.
// The only state the application stores is flash messages: one-shot strings
// set before a redirect and read on the next rendered page.
package session

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// CookieName is the name of the session cookie.
const CookieName = "contactbook_session"

// Session is the state of one client for the duration of a request.
// It is not safe for concurrent use; each request gets its own copy.
type Session struct {
	flashes map[string][]string
	dirty   bool
}

func newSession() *Session {
	return &Session{flashes: make(map[string][]string)}
}

// AddFlash queues msg under category for the next request.
func (s *Session) AddFlash(category, msg string) {
	s.flashes[category] = append(s.flashes[category], msg)
	s.dirty = true
}

// Flashes returns the pending messages of category and clears them.
func (s *Session) Flashes(category string) []string {
	msgs, ok := s.flashes[category]
	if !ok {
		return nil
	}
	delete(s.flashes, category)
	s.dirty = true
	return msgs
}

// Empty reports whether no flash is pending.
func (s *Session) Empty() bool { return len(s.flashes) == 0 }

// payload is the signed cookie content.
type payload struct {
	Flashes map[string][]string `json:"f,omitempty"`
	Expires int64               `json:"exp"`
}

// Options configures the session cookie.
type Options struct {
	MaxAge time.Duration
	Secure bool
}

// Store encodes sessions into signed cookies and decodes them back.
type Store struct {
	secret []byte
	opts   Options
	now    func() time.Time
}

// NewStore creates a Store signing with secret.
func NewStore(secret string, opts Options) *Store {
	if opts.MaxAge <= 0 {
		opts.MaxAge = time.Hour
	}
	return &Store{secret: SecretBytes(secret), opts: opts, now: time.Now}
}

// Load returns the session carried by r. A missing, tampered or expired
// cookie yields a fresh empty session.
func (st *Store) Load(r *http.Request) *Session {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return newSession()
	}
	raw, err := VerifyToken(c.Value, st.secret)
	if err != nil {
		slog.Debug("session cookie rejected", "error", err)
		return newSession()
	}
	var p payload
	if err := json.Unmarshal(raw, &p); err != nil {
		return newSession()
	}
	if st.now().Unix() > p.Expires {
		return newSession()
	}
	s := newSession()
	for k, v := range p.Flashes {
		s.flashes[k] = v
	}
	return s
}

// Cookie encodes s. An empty session produces a deleting cookie.
func (st *Store) Cookie(s *Session) (*http.Cookie, error) {
	c := &http.Cookie{
		Name:     CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   st.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
	if s.Empty() {
		c.MaxAge = -1
		return c, nil
	}

	raw, err := json.Marshal(payload{
		Flashes: s.flashes,
		Expires: st.now().Add(st.opts.MaxAge).Unix(),
	})
	if err != nil {
		return nil, err
	}
	c.Value = CreateToken(raw, st.secret)
	c.MaxAge = int(st.opts.MaxAge.Seconds())
	return c, nil
}

type contextKey struct{}

// WithSession returns a copy of ctx carrying s.
func WithSession(ctx context.Context, s *Session) context.Context {
	return context.WithValue(ctx, contextKey{}, s)
}

// FromContext returns the session stored by Middleware.
func FromContext(ctx context.Context) (*Session, bool) {
	s, ok := ctx.Value(contextKey{}).(*Session)
	return s, ok
}

// Middleware loads the session for every request and writes the cookie back
// when a handler changed it, just before the response header goes out.
func (st *Store) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := st.Load(r)
		cw := &cookieWriter{ResponseWriter: w, store: st, session: s}
		next.ServeHTTP(cw, r.WithContext(WithSession(r.Context(), s)))
		cw.commit()
	})
}

// cookieWriter sets the session cookie on the first header write.
type cookieWriter struct {
	http.ResponseWriter
	store     *Store
	session   *Session
	committed bool
}

func (w *cookieWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	if !w.session.dirty {
		return
	}
	c, err := w.store.Cookie(w.session)
	if err != nil {
		slog.Error("encode session cookie", "error", err)
		return
	}
	http.SetCookie(w.ResponseWriter, c)
}

func (w *cookieWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *cookieWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

// Unwrap returns the underlying ResponseWriter for http.ResponseController.
func (w *cookieWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
