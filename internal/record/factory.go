package record

import (
	"context"
	"fmt"
	"strings"

	"hotelres/internal/infra/record/fs"
	"hotelres/internal/infra/record/memory"
	"hotelres/internal/infra/record/postgres"
	"hotelres/internal/infra/record/s3"
	"hotelres/internal/infra/record/sqlite"
	"hotelres/internal/record/core"
)

// Config selects and parameterises a backend.
type Config struct {
	Driver      core.Driver
	DataDir     string
	SQLitePath  string
	PostgresDSN string
	S3          s3.Config
	// Breaker wraps remote drivers (postgres, s3) in a circuit breaker.
	Breaker bool
	Logger  Logger
}

// ParseDriver resolves a driver name; empty selects the filesystem driver.
func ParseDriver(name string) (core.Driver, error) {
	switch d := core.Driver(strings.ToLower(strings.TrimSpace(name))); d {
	case "":
		return core.DriverFilesystem, nil
	case core.DriverFilesystem, core.DriverMemory, core.DriverSQLite, core.DriverPostgres, core.DriverS3:
		return d, nil
	default:
		return "", fmt.Errorf("unknown record driver %q", name)
	}
}

// Open constructs the backend named by cfg.Driver (default fs).
func Open(ctx context.Context, cfg Config) (core.Backend, error) {
	driver := cfg.Driver
	if driver == "" {
		driver = core.DriverFilesystem
	}
	var (
		backend core.Backend
		err     error
		remote  bool
	)
	switch driver {
	case core.DriverFilesystem:
		backend, err = fs.New(cfg.DataDir)
	case core.DriverMemory:
		backend = memory.New()
	case core.DriverSQLite:
		backend, err = sqlite.New(cfg.SQLitePath)
	case core.DriverPostgres:
		backend, err = postgres.New(ctx, cfg.PostgresDSN)
		remote = true
	case core.DriverS3:
		backend, err = s3.New(ctx, cfg.S3)
		remote = true
	default:
		return nil, fmt.Errorf("unknown record driver %q", driver)
	}
	if err != nil {
		return nil, err
	}
	if remote && cfg.Breaker {
		backend = WithBreaker(backend, BreakerSettings{Logger: cfg.Logger})
	}
	return backend, nil
}

// Close releases backends that hold resources (database handles).
func Close(backend core.Backend) error {
	if c, ok := backend.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
