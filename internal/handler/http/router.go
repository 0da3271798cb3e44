package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rotaworks/rota-backend-go/internal/domain/user"
	"github.com/rotaworks/rota-backend-go/internal/handler/http/middleware"
	"github.com/rotaworks/rota-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	shiftHandler ShiftHandler,
	userHandler UserHandler,
	reportHandler ReportHandler,
	rateLimiter func(http.Handler) http.Handler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "rota-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
			r.Route("/oauth/callback", func(r chi.Router) {
				r.Get("/google", authHandler.OAuthCallbackGoogle)
			})

			r.Route("/login", func(r chi.Router) {
				r.With(rateLimiter).Post("/", authHandler.Login)
				r.Route("/oauth", func(r chi.Router) {
					r.Get("/google", authHandler.LoginWithGoogle)
				})
			})

		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/users", func(r chi.Router) {
				r.With(middleware.RequirePermission(user.PermissionUserViewAll)).Get("/", userHandler.List)
				r.Get("/me", userHandler.Me)
			})

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/my", shiftHandler.MyShifts)

				// Rota management
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftManage))
					r.Post("/", shiftHandler.Create)
					r.Post("/batch", shiftHandler.BatchReconcile)
					r.Put("/{id}", shiftHandler.Update)
					r.Delete("/{id}", shiftHandler.Delete)
					r.Post("/{id}/cancel", shiftHandler.Cancel)
				})

				r.With(middleware.RequirePermission(user.PermissionShiftViewAll)).Get("/", shiftHandler.List)

				// Admin or assignee, checked in the handler
				r.Get("/{id}", shiftHandler.Get)

				// Worker clock actions
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionShiftClock))
					r.With(rateLimiter).Post("/{id}/clock-in", shiftHandler.ClockIn)
					r.With(rateLimiter).Post("/{id}/clock-out", shiftHandler.ClockOut)
				})
			})

			r.Route("/reports", func(r chi.Router) {
				r.Use(middleware.RequirePermission(user.PermissionReportsView))
				r.Get("/rota", reportHandler.GenerateRotaReport)
				r.Get("/rota/files/{fileName}", reportHandler.DownloadRotaReport)
			})
		})
	})
	return r
}
