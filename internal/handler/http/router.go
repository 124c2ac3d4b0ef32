package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/auth"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/domain"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/internal/service"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/health"
	"github.com/saivamshimuriki/realtor-platform-saivamshim-backend/pkg/middleware"
)

// NewRouter creates a chi router with all realty API routes registered.
func NewRouter(
	authService *service.AuthService,
	propertyService *service.PropertyService,
	userService *service.UserService,
	jwtManager *auth.JWTManager,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("realty"))

	// Health and metrics endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	// Bridge the JWT manager into the middleware's validator shape.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := jwtManager.Validate(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			UserID:   claims.UserID,
			Username: claims.Username,
			Role:     claims.Role,
		}, nil
	}

	authHandler := NewAuthHandler(authService, logger)
	propertyHandler := NewPropertyHandler(propertyService, logger)
	userHandler := NewUserHandler(userService, logger)

	// Auth endpoints (public)
	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", authHandler.Register)
		r.Post("/login", authHandler.Login)
	})

	r.Route("/api/properties", func(r chi.Router) {
		// Reads tolerate anonymous callers; a bad token degrades to guest.
		r.Group(func(r chi.Router) {
			r.Use(middleware.OptionalAuth(tokenValidator))

			r.Get("/", propertyHandler.List)
			r.Get("/{id}", propertyHandler.Get)
		})

		// Writes require a verified identity.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokenValidator))

			r.With(middleware.RequireRole(domain.RoleOwner)).Post("/", propertyHandler.Create)
			r.Put("/{id}", propertyHandler.Update)
			r.Delete("/{id}", propertyHandler.Delete)
		})
	})

	// User directory (admin only)
	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth(tokenValidator))
		r.Use(middleware.RequireRole(domain.RoleAdmin))

		r.Get("/", userHandler.List)
		r.Get("/{id}", userHandler.Get)
	})

	return r
}
