package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/portfolio-api/internal/config"
	"github.com/portfolio-api/internal/infrastructure/cms"
	"github.com/portfolio-api/internal/infrastructure/dynamo"
	s3infra "github.com/portfolio-api/internal/infrastructure/s3"
	"github.com/portfolio-api/internal/infrastructure/ses"
	"github.com/portfolio-api/internal/infrastructure/sns"
	transporthttp "github.com/portfolio-api/internal/transport/http"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading from environment")
	}

	cfg := config.Load()

	if cfg.ResumeSigningSecret == "" {
		log.Fatal("RESUME_SIGNING_SECRET is required")
	}
	if cfg.SESSender == "" {
		log.Fatal("SES_SENDER is required")
	}

	// Bootstrap DynamoDB tables (creates them if they don't exist).
	dynamoClient := dynamo.NewClient(cfg)
	dynamo.Bootstrap(context.Background(), dynamoClient, cfg.DynamoTables)

	// S3 asset store.
	s3Client := s3infra.NewClient(cfg)
	assetStore := s3infra.NewStore(s3Client, cfg.S3BucketName)

	// SES mailer.
	mailer := ses.NewMailer(cfg)

	// SNS lead notifier (optional — graceful fallback).
	var leadNotifier sns.LeadNotifier
	if n, err := sns.NewNotifier(cfg); err == nil {
		leadNotifier = n
	} else {
		log.Printf("WARN: lead notifier not available: %v", err)
	}

	deps := &transporthttp.Deps{
		RequestRepo:  dynamo.NewResumeRequestRepo(dynamoClient, cfg.DynamoTables.ResumeRequests, cfg.ResumeMaxDownloads),
		AssetStore:   assetStore,
		Mailer:       mailer,
		LeadNotifier: leadNotifier,
		CMSClient:    cms.NewClient(cfg),
	}

	router := transporthttp.NewRouter(cfg, deps)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.AppPort),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on :%s (env=%s)", cfg.AppPort, cfg.AppEnv)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}
