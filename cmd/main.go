package main

import (
	"context"
	"fmt"
	"os"

	"github.com/samjsmart/gig-int-garden-api/internal/app"
	redisclient "github.com/samjsmart/gig-int-garden-api/internal/clients/redis"
	"github.com/samjsmart/gig-int-garden-api/internal/clients/sendgrid"
	"github.com/samjsmart/gig-int-garden-api/internal/clients/sheets"
	"github.com/samjsmart/gig-int-garden-api/internal/clients/slack"
	"github.com/samjsmart/gig-int-garden-api/internal/data/db"
	registrationrepo "github.com/samjsmart/gig-int-garden-api/internal/data/repos/registration"
	httpServer "github.com/samjsmart/gig-int-garden-api/internal/http"
	httpH "github.com/samjsmart/gig-int-garden-api/internal/http/handlers"
	"github.com/samjsmart/gig-int-garden-api/internal/platform/logger"
	"github.com/samjsmart/gig-int-garden-api/internal/services"
)

func main() {
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}

	// Postgres
	postgresService, err := db.NewPostgresService(log, db.PostgresConfig{
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		Name:     cfg.Postgres.Name,
	})
	if err != nil {
		log.Fatal("Postgres init failed", "error", err)
	}
	if err := postgresService.AutoMigrateAll(); err != nil {
		log.Fatal("Postgres auto migration failed", "error", err)
	}
	thePG := postgresService.DB()

	// Repos
	registrationRepo := registrationrepo.NewRegistrationRepo(thePG, log)

	// Clients
	sheetsService, err := sheets.NewService(context.Background(), sheets.ClientOptionsFromEnv()...)
	if err != nil {
		log.Fatal("Could not init Sheets service", "error", err)
	}
	mirrorClient, err := sheets.New(log, sheets.ConfigFromEnv(), sheetsService)
	if err != nil {
		log.Fatal("Could not init Sheets client", "error", err)
	}
	slackClient, err := slack.NewFromEnv(log)
	if err != nil {
		log.Fatal("Could not init Slack client", "error", err)
	}
	sendgridClient, err := sendgrid.NewFromEnv(log)
	if err != nil {
		log.Fatal("Could not init SendGrid client", "error", err)
	}

	var locker redisclient.Locker
	if os.Getenv("REDIS_ADDR") != "" {
		locker, err = redisclient.NewLocker(log)
		if err != nil {
			log.Fatal("Could not init Redis locker", "error", err)
		}
		defer locker.Close()
	} else {
		log.Warn("REDIS_ADDR not set, submissions are not serialized per email")
	}

	// Services
	intakeService := services.NewIntakeService(
		thePG,
		log,
		registrationRepo,
		mirrorClient,
		slackClient,
		sendgridClient,
		locker,
		services.IntakeConfig{
			AdultPrice:  cfg.AdultPrice,
			ChildPrice:  cfg.ChildPrice,
			MailSubject: cfg.MailSubject,
		},
	)

	// HTTP
	submitHandler := httpH.NewSubmitHandler(intakeService, httpH.SubmitConfig{
		Mode:       httpH.ResponseMode(cfg.ResponseMode),
		SiteOrigin: cfg.SiteOrigin,
	})
	server := httpServer.NewServer(httpServer.RouterConfig{
		Log:            log,
		AllowedOrigins: cfg.AllowedOrigins,
		SubmitHandler:  submitHandler,
		HealthHandler:  httpH.NewHealthHandler(),
	})

	log.Info("Starting server", "addr", cfg.HTTPAddr, "response_mode", cfg.ResponseMode)
	if err := server.Run(cfg.HTTPAddr); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
