package services

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"ottpulse/internal/config"
	"ottpulse/internal/dataprocessing"
	"ottpulse/internal/infrastructure"
)

// HealthService reports process liveness and catalog source availability.
type HealthService struct {
	version   string
	config    *config.Config
	catalog   *CatalogService
	startTime time.Time
	logger    *slog.Logger
}

// HealthStatus is the health check response body.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Version   string                 `json:"version"`
	Runtime   map[string]interface{} `json:"runtime,omitempty"`
	Sources   []SourceHealth         `json:"sources,omitempty"`
}

// SourceHealth reports whether one catalog source file is readable.
type SourceHealth struct {
	ID        string `json:"id"`
	Platform  string `json:"platform"`
	Path      string `json:"path"`
	Available bool   `json:"available"`
}

// NewHealthService creates a health service with injected dependencies.
func NewHealthService(version string, cfg *config.Config, catalog *CatalogService, logger *slog.Logger) *HealthService {
	if logger == nil {
		logger = slog.Default()
	}
	logger = infrastructure.WithComponent(logger, "health-service")

	logger.Info("HealthService initialized",
		slog.String("version", version))

	return &HealthService{
		version:   version,
		config:    cfg,
		catalog:   catalog,
		startTime: time.Now(),
		logger:    logger,
	}
}

// Check builds the current health status. Missing source files degrade the
// status but never fail the check; ingestion absorbs them the same way.
func (s *HealthService) Check(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   s.version,
		Runtime: map[string]interface{}{
			"uptime_seconds": time.Since(s.startTime).Seconds(),
			"go_version":     runtime.Version(),
			"goroutines":     runtime.NumGoroutine(),
			"os":             runtime.GOOS,
			"arch":           runtime.GOARCH,
		},
	}

	available := 0
	for _, spec := range dataprocessing.Sources() {
		path := s.config.SourcePath(string(spec.ID), spec.File)
		_, err := os.Stat(path)
		if err == nil {
			available++
		}
		status.Sources = append(status.Sources, SourceHealth{
			ID:        string(spec.ID),
			Platform:  string(spec.Platform),
			Path:      path,
			Available: err == nil,
		})
	}

	switch {
	case available == 0:
		status.Status = "unhealthy"
	case available < len(status.Sources):
		status.Status = "degraded"
	}

	s.logger.DebugContext(ctx, "health check completed",
		slog.String("status", status.Status),
		slog.Int("sources_available", available))

	return status
}
