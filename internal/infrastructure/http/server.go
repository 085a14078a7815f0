package http

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/mrops-br/catalog-api/internal/infrastructure/config"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/handler"
	"github.com/mrops-br/catalog-api/internal/infrastructure/http/middleware"
	"github.com/mrops-br/catalog-api/internal/infrastructure/telemetry"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

const meterName = "catalog-api"

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	config         *config.ServerConfig
	productHandler *handler.ProductHandler
	viewHandler    *handler.ViewHandler
	logger         *slog.Logger
	telemetry      *telemetry.Telemetry
	httpServer     *http.Server
}

// NewServer creates a new HTTP server
func NewServer(
	cfg *config.ServerConfig,
	productHandler *handler.ProductHandler,
	viewHandler *handler.ViewHandler,
	telem *telemetry.Telemetry,
) *Server {
	s := &Server{
		router:         chi.NewRouter(),
		config:         cfg,
		productHandler: productHandler,
		viewHandler:    viewHandler,
		logger:         telem.Logger,
		telemetry:      telem,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:    net.JoinHostPort(cfg.Host, cfg.Port),
		Handler: s.Handler(),
	}

	return s
}

// setupMiddleware configures the middleware chain
func (s *Server) setupMiddleware() {
	meter := s.telemetry.MeterProvider.Meter(meterName)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(middleware.StructuredLogger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	if s.config.RateLimit > 0 {
		s.router.Use(middleware.RateLimit(middleware.NewRateLimiter(s.config.RateLimit, s.config.RateBurst), s.logger))
	}
	s.router.Use(middleware.HTTPRouteContext())
	s.router.Use(middleware.ActiveRequestsMiddleware(meter))
	s.router.Use(middleware.DurationMillisecondsMiddleware(meter))
}

// setupRoutes configures the API routes
func (s *Server) setupRoutes() {
	s.router.Route("/products", func(r chi.Router) {
		r.Get("/", s.productHandler.ListProducts)
		r.Post("/", s.productHandler.CreateProduct)
		r.Get("/all", s.productHandler.ListAllProducts)
		r.Get("/{id}", s.productHandler.GetProduct)
		r.Put("/{id}", s.productHandler.UpdateProduct)
		r.Delete("/{id}", s.productHandler.DeleteProduct)
	})

	s.router.Route("/view", func(r chi.Router) {
		r.Put("/search", s.viewHandler.SetSearch)
		r.Delete("/search", s.viewHandler.ClearSearch)
		r.Put("/page", s.viewHandler.SetPage)
		r.Put("/mode", s.viewHandler.SetMode)
	})

	s.router.Get("/categories", s.productHandler.ListCategories)

	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	// Prometheus scrape of the OpenTelemetry metrics
	s.router.Get("/metrics", promhttp.Handler().ServeHTTP)
}

// Handler returns the router wrapped with otelhttp for HTTP spans and metrics
func (s *Server) Handler() http.Handler {
	return otelhttp.NewHandler(s.router, "http-server",
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			return fmt.Sprintf("%s %s", r.Method, r.URL.Path)
		}),
		otelhttp.WithTracerProvider(s.telemetry.TracerProvider),
		otelhttp.WithMeterProvider(s.telemetry.MeterProvider),
		otelhttp.WithMetricAttributesFn(func(r *http.Request) []attribute.KeyValue {
			route := r.URL.Path
			if rctx := chi.RouteContext(r.Context()); rctx != nil {
				if pattern := rctx.RoutePattern(); pattern != "" {
					route = pattern
				}
			}
			return []attribute.KeyValue{attribute.String("http.route", route)}
		}),
	)
}

// Start serves until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server",
		slog.String("address", s.httpServer.Addr),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "http server")
	}
	return nil
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return errors.Wrap(s.httpServer.Shutdown(ctx), "http server shutdown")
}
