package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/config"
	"github.com/Dosada05/swiss-tournament/db"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
)

const dbConnectTimeout = 5 * time.Second

type backend struct {
	gateway repositories.Gateway
	ping    func(ctx context.Context) error
	close   func()
}

func openBackend(cfg *config.Config, logger *slog.Logger) (*backend, error) {
	if cfg.StorageDriver == config.StorageDriverMemory {
		logger.Warn("using in-memory storage, records are lost on exit")
		return &backend{gateway: repositories.NewMemoryGateway(), close: func() {}}, nil
	}

	conn, err := openDatabase(cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("database connection established")

	return &backend{
		gateway: repositories.NewPostgresGateway(conn),
		ping:    conn.PingContext,
		close: func() {
			if err := conn.Close(); err != nil {
				logger.Error("failed to close database connection", slog.Any("error", err))
			} else {
				logger.Info("database connection closed")
			}
		},
	}, nil
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	if err := cfg.RequireDatabase(); err != nil {
		return nil, err
	}
	conn, err := db.Connect(cfg.DatabaseURL, dbConnectTimeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return conn, nil
}

// openUploader returns nil when R2 is not configured; exports then report
// themselves unavailable.
func openUploader(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.FileUploader, error) {
	if !cfg.R2Enabled() {
		logger.Info("Cloudflare R2 not configured, standings export disabled")
		return nil, nil
	}
	uploader, err := storage.NewCloudflareR2Uploader(ctx, storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Cloudflare R2 uploader: %w", err)
	}
	logger.Info("Cloudflare R2 uploader initialized")
	return uploader, nil
}
