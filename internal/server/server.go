package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/nikolayk812/vespa-storefront/internal/catalog"
	"github.com/nikolayk812/vespa-storefront/internal/checkout"
	"github.com/nikolayk812/vespa-storefront/internal/colormatch"
	"github.com/nikolayk812/vespa-storefront/internal/session"
	"github.com/sirupsen/logrus"
)

// OwnerHeader carries the opaque visitor identifier.
const OwnerHeader = "X-Owner-ID"

// Config holds server configuration.
type Config struct {
	Port     int
	AllowAll bool // allow all CORS origins (dev mode)
}

// Server exposes the storefront over HTTP.
type Server struct {
	cfg        Config
	catalog    *catalog.Catalog
	matcher    *colormatch.Matcher
	sessions   *session.Registry
	checkout   *checkout.Service
	log        logrus.FieldLogger
	router     chi.Router
	httpServer *http.Server
}

func New(cfg Config, cat *catalog.Catalog, sessions *session.Registry, checkoutSvc *checkout.Service, log logrus.FieldLogger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}

	s := &Server{
		cfg:      cfg,
		catalog:  cat,
		matcher:  colormatch.NewMatcher(cat.Products()),
		sessions: sessions,
		checkout: checkoutSvc,
		log:      log,
	}

	s.router = s.buildRouter()
	return s
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", OwnerHeader},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/products", s.handleListProducts)
		r.Get("/products/featured", s.handleFeatured)
		r.Get("/products/{slug}", s.handleGetProduct)
		r.Get("/filters", s.handleFilters)
		r.Get("/color-match", s.handleColorMatch)

		r.Group(func(r chi.Router) {
			r.Use(s.withSession)

			r.Route("/cart", func(r chi.Router) {
				r.Get("/", s.handleGetCart)
				r.Delete("/", s.handleClearCart)
				r.Post("/items", s.handleAddCartItem)
				r.Put("/items/{slug}", s.handleUpdateCartItem)
				r.Put("/items/{slug}/color", s.handleSetCartItemColor)
				r.Delete("/items/{slug}", s.handleRemoveCartItem)
			})

			r.Route("/wishlist", func(r chi.Router) {
				r.Get("/", s.handleGetWishlist)
				r.Delete("/", s.handleClearWishlist)
				r.Post("/items", s.handleAddWishlistItem)
				r.Post("/items/{slug}/toggle", s.handleToggleWishlistItem)
				r.Delete("/items/{slug}", s.handleRemoveWishlistItem)
			})

			r.Post("/checkout", s.handleCheckout)
		})
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.WithField("addr", addr).Info("storefront listening")
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("httpServer.ListenAndServe: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

func requestLogger(log logrus.FieldLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.WithFields(logrus.Fields{
				"request_id": middleware.GetReqID(r.Context()),
				"method":     r.Method,
				"path":       r.URL.Path,
				"status":     ww.Status(),
				"duration":   time.Since(start).String(),
			}).Debug("request")
		})
	}
}
