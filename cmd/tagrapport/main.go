package main

import (
	"log"

	"github.com/tagrapport/tagrapport/internal/config"
	"github.com/tagrapport/tagrapport/internal/db"
	"github.com/tagrapport/tagrapport/internal/filestore/local"
	"github.com/tagrapport/tagrapport/internal/logging"
	"github.com/tagrapport/tagrapport/internal/service"
	"github.com/tagrapport/tagrapport/internal/web"
)

func main() {
	cfg := config.Load()

	logger, cleanup, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.DevMode)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer cleanup()

	if cfg.TokenSecret == "" {
		logger.Error("TOKEN_SECRET is required")
		return
	}

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		return
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", "error", err)
		}
	}()

	files, err := local.NewLocalStore(cfg.UploadPath)
	if err != nil {
		logger.Error("failed to initialize upload store", "error", err)
		return
	}

	authService := service.NewAuthService(database, cfg.TokenSecret, cfg.TokenTTL, logger)
	companyService := service.NewCompanyService(database)
	reportService := service.NewReportService(database, files, logger)

	server := web.NewServer(authService, companyService, reportService, files, logger, cfg.DevMode)

	if err := server.ListenAndServe(cfg.ListenAddr); err != nil {
		logger.Error("server error", "error", err)
	}
}
