package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Archive backends
const (
	BackendHTTP  = "http"
	BackendS3    = "s3"
	BackendMinio = "minio"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Archive  ArchiveConfig
	AWS      AWSConfig
	Lookup   LookupConfig
}

// DatabaseConfig holds database configuration. An empty URL keeps the
// lookup log in memory.
type DatabaseConfig struct {
	URL string
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

// ArchiveConfig selects where correction documents come from
type ArchiveConfig struct {
	Root        string
	Backend     string
	Prefix      string
	CatalogFile string
}

// AWSConfig holds S3/MinIO configuration for the archive mirror
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
	UseSSL          bool
}

// LookupConfig holds correction request limits
type LookupConfig struct {
	BatchConcurrency int
	ListLimit        int
}

var keys = []string{
	"DATABASE_URL",
	"PORT",
	"ENVIRONMENT",
	"ALLOWED_ORIGINS",
	"ARCHIVE_ROOT",
	"ARCHIVE_BACKEND",
	"ARCHIVE_PREFIX",
	"CATALOG_FILE",
	"AWS_REGION",
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"S3_BUCKET",
	"S3_ENDPOINT",
	"MINIO_USE_SSL",
	"BATCH_CONCURRENCY",
	"LOOKUP_LIST_LIMIT",
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENVIRONMENT", "dev")
	v.SetDefault("ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")
	v.SetDefault("ARCHIVE_ROOT", "https://raw.githubusercontent.com/jaakkopasanen/AutoEq/master/results")
	v.SetDefault("ARCHIVE_BACKEND", BackendHTTP)
	v.SetDefault("ARCHIVE_PREFIX", "")
	v.SetDefault("CATALOG_FILE", "")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("S3_BUCKET", "autoeq-archive")
	v.SetDefault("S3_ENDPOINT", "")
	v.SetDefault("MINIO_USE_SSL", false)
	v.SetDefault("BATCH_CONCURRENCY", 4)
	v.SetDefault("LOOKUP_LIST_LIMIT", 50)

	// Environment variables override .env file values
	v.AutomaticEnv()
	for _, key := range keys {
		_ = v.BindEnv(key)
	}

	// Read from .env files based on environment
	env := v.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev"
	}
	v.SetConfigName(".env." + env)
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read .env.%s: %w", env, err)
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	var config Config
	config.Database.URL = v.GetString("DATABASE_URL")
	config.Server.Port = v.GetString("PORT")
	config.Server.Env = v.GetString("ENVIRONMENT")
	config.Server.AllowedOrigins = splitList(v.GetString("ALLOWED_ORIGINS"))
	config.Archive.Root = v.GetString("ARCHIVE_ROOT")
	config.Archive.Backend = strings.ToLower(v.GetString("ARCHIVE_BACKEND"))
	config.Archive.Prefix = v.GetString("ARCHIVE_PREFIX")
	config.Archive.CatalogFile = v.GetString("CATALOG_FILE")
	config.AWS.Region = v.GetString("AWS_REGION")
	config.AWS.AccessKeyID = v.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = v.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = v.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = v.GetString("S3_ENDPOINT")
	config.AWS.UseSSL = v.GetBool("MINIO_USE_SSL")
	config.Lookup.BatchConcurrency = v.GetInt("BATCH_CONCURRENCY")
	config.Lookup.ListLimit = v.GetInt("LOOKUP_LIST_LIMIT")

	switch config.Archive.Backend {
	case BackendHTTP, BackendS3, BackendMinio:
	default:
		return nil, fmt.Errorf("unsupported ARCHIVE_BACKEND %q (want http, s3 or minio)", config.Archive.Backend)
	}
	if config.Lookup.BatchConcurrency <= 0 {
		return nil, fmt.Errorf("BATCH_CONCURRENCY must be positive, got %d", config.Lookup.BatchConcurrency)
	}

	log.Debug().
		Str("environment", config.Server.Env).
		Str("archive_backend", config.Archive.Backend).
		Str("archive_root", config.Archive.Root).
		Bool("database", config.Database.URL != "").
		Int("origin_count", len(config.Server.AllowedOrigins)).
		Msg("Configuration loaded")

	return &config, nil
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
