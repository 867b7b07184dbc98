// Package config assembles runtime configuration from HOTELRES_* environment
// variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"hotelres/internal/infra/record/s3"
	"hotelres/internal/logging"
	"hotelres/internal/record"
	"hotelres/internal/record/core"
)

const (
	defaultDataDir    = "./data"
	defaultListenAddr = ":8080"
)

// Config is the full runtime configuration.
type Config struct {
	Storage         record.Config
	Log             logging.Config
	ListenAddr      string
	MetricsTextfile string
	// JaegerEndpoint enables span export to a Jaeger collector when set.
	JaegerEndpoint string
}

// Getenv looks up a variable; os.Getenv in production, a map in tests.
type Getenv func(string) string

// FromEnv reads the process environment.
func FromEnv() (Config, error) { return Load(os.Getenv) }

// Load builds a Config from getenv, applying defaults.
func Load(getenv Getenv) (Config, error) {
	driver, err := record.ParseDriver(getenv("HOTELRES_STORAGE_DRIVER"))
	if err != nil {
		return Config{}, err
	}
	dataDir := orDefault(getenv("HOTELRES_DATA_DIR"), defaultDataDir)
	remote := driver == core.DriverPostgres || driver == core.DriverS3
	breaker, err := parseBool(getenv("HOTELRES_BREAKER"), remote)
	if err != nil {
		return Config{}, fmt.Errorf("HOTELRES_BREAKER: %w", err)
	}
	pathStyle, err := parseBool(getenv("HOTELRES_S3_PATH_STYLE"), false)
	if err != nil {
		return Config{}, fmt.Errorf("HOTELRES_S3_PATH_STYLE: %w", err)
	}
	cfg := Config{
		Storage: record.Config{
			Driver:      driver,
			DataDir:     dataDir,
			SQLitePath:  orDefault(getenv("HOTELRES_SQLITE_PATH"), filepath.Join(dataDir, "hotelres.db")),
			PostgresDSN: getenv("HOTELRES_POSTGRES_DSN"),
			S3: s3.Config{
				Bucket:          getenv("HOTELRES_S3_BUCKET"),
				Region:          getenv("HOTELRES_S3_REGION"),
				Endpoint:        getenv("HOTELRES_S3_ENDPOINT"),
				Prefix:          getenv("HOTELRES_S3_PREFIX"),
				PathStyle:       pathStyle,
				AccessKeyID:     getenv("AWS_ACCESS_KEY_ID"),
				SecretAccessKey: getenv("AWS_SECRET_ACCESS_KEY"),
				SessionToken:    getenv("AWS_SESSION_TOKEN"),
			},
			Breaker: breaker,
		},
		Log: logging.Config{
			Level:  orDefault(getenv("HOTELRES_LOG_LEVEL"), "info"),
			Format: orDefault(getenv("HOTELRES_LOG_FORMAT"), "text"),
			File:   getenv("HOTELRES_LOG_FILE"),
		},
		ListenAddr:      orDefault(getenv("HOTELRES_LISTEN_ADDR"), defaultListenAddr),
		MetricsTextfile: getenv("HOTELRES_METRICS_TEXTFILE"),
		JaegerEndpoint:  getenv("HOTELRES_JAEGER_ENDPOINT"),
	}
	if driver == core.DriverS3 && cfg.Storage.S3.Bucket == "" {
		return Config{}, fmt.Errorf("HOTELRES_S3_BUCKET required for s3 driver")
	}
	return cfg, nil
}

// Overrides carries command-line values that win over the environment.
type Overrides struct {
	Driver   string
	DataDir  string
	LogLevel string
}

// Apply merges non-empty overrides into cfg.
func (c *Config) Apply(o Overrides) error {
	if o.Driver != "" {
		driver, err := record.ParseDriver(o.Driver)
		if err != nil {
			return err
		}
		c.Storage.Driver = driver
	}
	if o.DataDir != "" {
		if c.Storage.SQLitePath == filepath.Join(c.Storage.DataDir, "hotelres.db") {
			c.Storage.SQLitePath = filepath.Join(o.DataDir, "hotelres.db")
		}
		c.Storage.DataDir = o.DataDir
	}
	if o.LogLevel != "" {
		c.Log.Level = o.LogLevel
	}
	return nil
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func parseBool(v string, def bool) (bool, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return strconv.ParseBool(v)
}
