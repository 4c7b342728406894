// Package http is the application's outer surface: a JSON API over the
// session manager, the record store and the report views. Handlers stay
// thin; all document logic lives below them.
package http

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"fintrack/internal/cache"
	"fintrack/internal/ledger"
	"fintrack/internal/middleware/ratelimit"
	"fintrack/internal/middleware/security"
	"fintrack/internal/middleware/trace"
	"fintrack/internal/session"
)

type Server struct {
	http.Server

	sessions *session.Manager
	records  *ledger.Store

	limiter   *ratelimit.Limiter
	dashCache *cache.LRU[DashboardView]
	caches    *cache.Manager

	shutdownOnce sync.Once
}

// Options tune the server's cache; zero values pick defaults.
type Options struct {
	CacheSize int
	CacheTTL  time.Duration
}

func NewServer(addr string, sessions *session.Manager, records *ledger.Store, opts Options) *Server {
	if opts.CacheSize <= 0 {
		opts.CacheSize = 128
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 30 * time.Second
	}

	s := &Server{
		sessions:  sessions,
		records:   records,
		limiter:   ratelimit.NewLimiter(ratelimit.DefaultConfig()),
		dashCache: cache.NewLRU[DashboardView](opts.CacheSize, opts.CacheTTL),
		caches:    cache.NewManager(),
	}
	s.caches.Register(s.dashCache)
	s.caches.StartCleanup(10 * time.Minute)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)

	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)
	mux.HandleFunc("POST /api/auth/logout", s.handleLogout)
	mux.HandleFunc("GET /api/auth/me", s.handleMe)

	mux.HandleFunc("GET /api/revenues", s.handleListRevenues)
	mux.HandleFunc("POST /api/revenues", s.handleCreateRevenue)
	mux.HandleFunc("PATCH /api/revenues/{id}", s.handleUpdateRevenue)
	mux.HandleFunc("DELETE /api/revenues/{id}", s.handleDeleteRevenue)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("PATCH /api/expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /api/expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /api/future-expenses", s.handleListFutureExpenses)
	mux.HandleFunc("POST /api/future-expenses", s.handleCreateFutureExpense)
	mux.HandleFunc("PATCH /api/future-expenses/{id}", s.handleUpdateFutureExpense)
	mux.HandleFunc("DELETE /api/future-expenses/{id}", s.handleDeleteFutureExpense)

	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports", s.handleReport)

	traced := trace.NewMiddleware(clientIP)
	headers := security.NewHeadersMiddleware(security.DefaultHeadersConfig())

	var handler http.Handler = mux
	handler = s.rateLimitMiddleware(handler)
	handler = headers.Middleware(handler)
	handler = traced.Middleware(handler)

	s.Addr = addr
	s.Handler = handler
	return s
}

// Shutdown stops the background goroutines, then the listener.
func (s *Server) Shutdown(ctx context.Context) error {
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		s.caches.Stop()
	})
	return s.Server.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow(clientIP(r)) {
			writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// clientIP prefers the forwarded header so the limiter still works
// behind a local reverse proxy.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i > 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
