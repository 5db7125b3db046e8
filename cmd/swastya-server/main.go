package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/Jashwanth-0624/SwastyaConnect/internal/config"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/abdm"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/alert"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/analytics"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/consent"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/document"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/emergency"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/interaction"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/outreach"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/patient"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/summary"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/domain/telemed"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ai"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/auth"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/db"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/middleware"
	"github.com/Jashwanth-0624/SwastyaConnect/internal/platform/ws"
)

const version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "swastya-server",
		Short: "SwastyaConnect hospital data API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			count, err := migrator.Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			migrator := db.NewMigrator(pool, dir)
			statuses, err := migrator.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			fmt.Println("---------- ---------------------------------------- ---------- --------------------")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("ENV") == "development" {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	if cfg.IsDev() {
		e.Use(auth.DevAuthMiddleware())
	} else {
		e.Use(auth.JWTMiddleware([]byte(cfg.JWTSigningKey)))
	}

	apiV1 := e.Group("/api/v1")

	rateLimitCfg := middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
	}
	if rateLimitCfg.RequestsPerSecond <= 0 {
		rateLimitCfg = middleware.DefaultRateLimitConfig()
	}
	apiV1.Use(middleware.RateLimit(rateLimitCfg))

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"status":  "ok",
			"version": version,
		})
	})
	e.GET("/health/db", db.HealthHandler(pool))

	// WebSocket hub for realtime alert delivery
	hub := ws.NewHub(logger)
	wsHandler := ws.NewHandler(hub)
	wsHandler.RegisterRoutes(e.Group(""))

	// Model invocation client shared by the AI-backed services
	model := ai.NewClient(ai.Config{
		BaseURL: cfg.AIBaseURL,
		APIKey:  cfg.AIAPIKey,
		Timeout: cfg.AIRequestTimeout(),
	})

	// Domain services
	patientRepo := patient.NewPatientRepoPG(pool)
	patientSvc := patient.NewService(patientRepo)
	patient.NewHandler(patientSvc).RegisterRoutes(apiV1)

	alertSvc := alert.NewService(alert.NewAlertRepoPG(pool), hub)
	alert.NewHandler(alertSvc).RegisterRoutes(apiV1)

	summarySvc := summary.NewService(summary.NewSummaryRepoPG(pool), patientRepo, model)
	summary.NewHandler(summarySvc).RegisterRoutes(apiV1)

	interactionSvc := interaction.NewService(interaction.NewInteractionRepoPG(pool), patientRepo, model)
	interaction.NewHandler(interactionSvc).RegisterRoutes(apiV1)

	documentSvc := document.NewService(document.NewDocumentRepoPG(pool), model)
	document.NewHandler(documentSvc).RegisterRoutes(apiV1)

	emergencySvc := emergency.NewService(emergency.NewEmergencyRepoPG(pool), patientRepo)
	emergency.NewHandler(emergencySvc).RegisterRoutes(apiV1)

	telemedSvc := telemed.NewService(telemed.NewSessionRepoPG(pool))
	telemed.NewHandler(telemedSvc).RegisterRoutes(apiV1)

	abdmSvc := abdm.NewService(abdm.NewABDMRepoPG(pool))
	abdm.NewHandler(abdmSvc).RegisterRoutes(apiV1)

	consentSvc := consent.NewService(consent.NewConsentRepoPG(pool))
	consent.NewHandler(consentSvc).RegisterRoutes(apiV1)

	analyticsSvc := analytics.NewService(analytics.NewAnalyticsRepoPG(pool), patientRepo, model)
	analytics.NewHandler(analyticsSvc).RegisterRoutes(apiV1)

	outreachSvc := outreach.NewService(outreach.NewDemoRequestRepoPG(pool), outreach.NewFeatureInterestRepoPG(pool))
	outreach.NewHandler(outreachSvc).RegisterRoutes(apiV1)

	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Msg("starting server")
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server shutdown failed")
	}
	logger.Info().Msg("server stopped")
	return nil
}
