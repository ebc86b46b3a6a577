package server

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Monesha-B/nexus-job-platform/internal/auth"
	"github.com/Monesha-B/nexus-job-platform/internal/config"
	"github.com/Monesha-B/nexus-job-platform/internal/controller/resume"
	"github.com/Monesha-B/nexus-job-platform/internal/database"
	"github.com/Monesha-B/nexus-job-platform/internal/matcher"
	"github.com/Monesha-B/nexus-job-platform/internal/utilities"
)

// MyServer holds the dependencies shared by every route.
type MyServer struct {
	DB      *database.DBinstanceStruct
	Config  *config.Config
	Logger  *slog.Logger
	Redis   *redis.Client
	Advisor matcher.Advisor
	Storage resume.StorageClient
}

// NewServer wires the database, optional Redis and resume storage, and the
// match advisor, and returns the HTTP server plus a cleanup function.
func NewServer(cfg *config.Config) (*http.Server, func(), error) {
	logger := utilities.SetupLogger(cfg.Server.ParseLevel())
	auth.Configure(cfg.Auth.SecretKey, cfg.Auth.TokenTTL)

	db, err := database.NewDBInstance(database.ConfigFrom(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("database failed to initialize: %w", err)
	}

	rdb, err := database.NewRedisClient(cfg.Redis.URL)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	s := &MyServer{
		DB:      db,
		Config:  cfg,
		Logger:  logger,
		Redis:   rdb,
		Advisor: matcher.New(cfg.AI, rdb),
	}

	var gcs *resume.CloudStorageClient
	if cfg.Storage.GCSBucket != "" {
		gcs, err = resume.NewCloudStorageClient(cfg.Storage.GCSBucket)
		if err != nil {
			s.close(nil)
			return nil, nil, fmt.Errorf("cloud storage failed to initialize: %w", err)
		}
		s.Storage = gcs
		slog.Info("resume files stored in cloud storage", slog.String("bucket", cfg.Storage.GCSBucket))
	} else {
		slog.Info("cloud storage disabled, resume files stored in database")
	}

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.AI.Timeout + 30*time.Second,
	}

	return server, func() { s.close(gcs) }, nil
}

func (s *MyServer) close(gcs *resume.CloudStorageClient) {
	if gcs != nil {
		if err := gcs.Close(); err != nil {
			slog.Warn("failed to close cloud storage client", slog.Any("error", err))
		}
	}
	if s.Redis != nil {
		if err := s.Redis.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.Any("error", err))
		}
	}
	if err := s.DB.Close(); err != nil {
		slog.Warn("failed to close database", slog.Any("error", err))
	}
}
