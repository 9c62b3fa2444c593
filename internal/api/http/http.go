// Package httpapi wires the chi router and owns the HTTP server
// lifecycle.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/exp/slog"

	"github.com/jekabolt/storefront-insights/internal/apisrv/auth"
	"github.com/jekabolt/storefront-insights/internal/apisrv/dashboard"
	"github.com/jekabolt/storefront-insights/internal/middleware"
	"github.com/jekabolt/storefront-insights/internal/ratelimit"
)

const (
	loginRateWindow = time.Minute
	loginRateMax    = 10
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs           *http.Server
	c            *Config
	loginLimiter *ratelimit.Limiter
	done         chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:            config,
		loginLimiter: ratelimit.NewLimiter(loginRateWindow, loginRateMax),
		done:         make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(authSrv *auth.Server, dashSrv *dashboard.Server) http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(r *http.Request, origin string) bool {
			return isOriginAllowed(origin, s.c.AllowedOrigins)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.ClientIdentifier)
	r.Use(middleware.RequestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/api", func(r chi.Router) {
		r.With(s.loginLimiter.Middleware).Post("/auth/login", authSrv.Login)

		r.Group(func(r chi.Router) {
			r.Use(authSrv.WithAuth)

			r.Get("/products", dashSrv.Products)
			r.Get("/orders", dashSrv.Orders)
			r.Get("/orders/export", dashSrv.ExportOrders)

			r.Group(func(r chi.Router) {
				r.Use(auth.RequireRole(auth.RoleAdmin))

				r.Post("/auth/token", authSrv.CustomerToken)
				r.Get("/analytics", dashSrv.Analytics)
				r.Get("/analytics/heatmap", dashSrv.Heatmap)
				r.Get("/analytics/trend", dashSrv.Trend)
				r.Post("/refresh", dashSrv.Refresh)
			})
		})
	})

	return r
}

// Start starts the server
func (s *Server) Start(ctx context.Context, authSrv *auth.Server, dashSrv *dashboard.Server) error {
	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:    listenerAddr,
		Handler: s.router(authSrv, dashSrv),
	}

	go func() {
		defer close(s.done)
		slog.Default().Info(fmt.Sprintf("storefront-insights new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().Info("http server returned")
		} else {
			slog.Default().Error("http server exited with an error", "err", err.Error())
		}
	}()
	return nil
}

// Stop shuts the server down, letting in-flight requests finish.
func (s *Server) Stop(ctx context.Context) error {
	s.loginLimiter.Stop()
	if s.hs == nil {
		return nil
	}
	return s.hs.Shutdown(ctx)
}

func isOriginAllowed(origin string, allowedOrigins []string) bool {
	// Always allow localhost origins
	if strings.HasPrefix(origin, "http://localhost:") || strings.HasPrefix(origin, "https://localhost:") {
		return true
	}
	for _, allowedOrigin := range allowedOrigins {
		if origin == allowedOrigin {
			return true
		}
	}
	return false
}
