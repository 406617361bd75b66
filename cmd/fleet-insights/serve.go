package main

import (
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ukydev/fleet-insights/internal/auth"
	"github.com/ukydev/fleet-insights/internal/handlers"
	"github.com/ukydev/fleet-insights/internal/middleware"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the report catalog over HTTP",
	Long:  `Loads the dataset once, then serves every report as JSON under /api/reports. Login at /api/login with a configured user to obtain a token.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	records, err := loadDataset(cmd.Context(), cfg)
	if err != nil {
		return fmt.Errorf("loading dataset: %w", err)
	}
	log.WithField("vehicle_count", len(records)).Info("Dataset loaded")

	authService, err := auth.NewService()
	if err != nil {
		return fmt.Errorf("creating auth service: %w", err)
	}

	authHandler := handlers.NewAuthHandler(authService, cfg)
	reportHandler := handlers.NewReportHandler(records)
	authMw := middleware.NewAuthMiddleware(authService)
	rateMw := middleware.NewRateLimitMiddleware()

	mux := http.NewServeMux()
	mux.Handle("/api/login", rateMw.RateLimit(10, 60)(http.HandlerFunc(authHandler.Login)))
	mux.HandleFunc("/health", reportHandler.Health)
	mux.Handle("/api/reports", authMw.RequirePermission("view_reports")(http.HandlerFunc(reportHandler.List)))
	mux.Handle("/api/reports/", authMw.RequirePermission("view_reports")(http.HandlerFunc(reportHandler.Run)))

	addr := ":" + cfg.GetHTTPPort()
	log.WithField("addr", addr).Info("HTTP server listening")
	return http.ListenAndServe(addr, authMw.Authenticate(mux))
}
