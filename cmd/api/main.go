package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rotaworks/rota-backend-go/internal/config"
	appHTTP "github.com/rotaworks/rota-backend-go/internal/handler/http"
	"github.com/rotaworks/rota-backend-go/internal/handler/http/middleware"
	"github.com/rotaworks/rota-backend-go/internal/pkg/cron"
	"github.com/rotaworks/rota-backend-go/internal/pkg/database"
	"github.com/rotaworks/rota-backend-go/internal/pkg/email"
	"github.com/rotaworks/rota-backend-go/internal/pkg/events"
	"github.com/rotaworks/rota-backend-go/internal/pkg/jwt"
	"github.com/rotaworks/rota-backend-go/internal/pkg/oauth"
	"github.com/rotaworks/rota-backend-go/internal/pkg/redisclient"
	"github.com/rotaworks/rota-backend-go/internal/pkg/storage"
	"github.com/rotaworks/rota-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/rotaworks/rota-backend-go/internal/service/auth"
	locationService "github.com/rotaworks/rota-backend-go/internal/service/location"
	reportService "github.com/rotaworks/rota-backend-go/internal/service/report"
	shiftService "github.com/rotaworks/rota-backend-go/internal/service/shift"
	userService "github.com/rotaworks/rota-backend-go/internal/service/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn, int32(cfg.Database.MaxConns), int32(cfg.Database.MinConns))
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	if err := database.Migrate(context.Background(), db, "migrations"); err != nil {
		log.Fatal("Migrations failed:", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	locationRepo := postgresql.NewLocationRepository(db)
	shiftRepo := postgresql.NewShiftRepository(db)
	JWTRepository := postgresql.NewJWTRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	GoogleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	emailService, err := email.NewEmailService(cfg.SMTP)
	if err != nil {
		log.Fatal("Failed to initialize email service:", err)
	}

	publisher := events.NewNopPublisher()
	if cfg.AMQP.URL != "" {
		publisher, err = events.NewPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.Fatal("Failed to connect to message broker:", err)
		}
	}
	defer publisher.Close()

	// Nil when Redis is not configured, which disables rate limiting.
	redisClient := redisclient.New(cfg.Redis)

	fileStorage, err := storage.NewLocalStorage(cfg.Storage.Dir)
	if err != nil {
		log.Fatal("Failed to initialize local storage:", err)
	}

	locationSvc := locationService.NewLocationService(locationRepo)
	shiftSvc := shiftService.NewShiftService(
		shiftRepo,
		userRepo,
		locationSvc,
		emailService,
		publisher,
		cfg.Shift.EarlyClockInBuffer,
		cfg.Shift.MinimumClockOutBuffer,
	)
	authSvc := serviceAuth.NewAuthService(db, userRepo, JWTService, JWTRepository)
	userSvc := userService.NewUserService(userRepo)
	reportSvc := reportService.NewReportService(shiftRepo, fileStorage)

	scheduler := cron.NewScheduler()
	scheduler.AddJob("refresh-token-purge", 24*time.Hour, cron.RefreshTokenPurge(JWTRepository))
	scheduler.Start()
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(JWTService, authSvc, GoogleService, cfg.App.FrontendURL)
	shiftHandler := appHTTP.NewShiftHandler(shiftSvc)
	userHandler := appHTTP.NewUserHandler(userSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)
	rateLimiter := middleware.RateLimit(cfg.RateLimit, redisClient)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		shiftHandler,
		userHandler,
		reportHandler,
		rateLimiter,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
