// Package bootstrap builds the runtime components selected by Config
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/RMahshie/soundmax/internal/catalog"
	"github.com/RMahshie/soundmax/internal/config"
	"github.com/RMahshie/soundmax/internal/fetcher"
	"github.com/RMahshie/soundmax/internal/repository"
	"github.com/RMahshie/soundmax/internal/repository/memory"
	"github.com/RMahshie/soundmax/internal/repository/postgres"
	"github.com/RMahshie/soundmax/internal/storage"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

// NewObjectStore creates the mirror store for the s3 and minio backends
func NewObjectStore(ctx context.Context, cfg *config.Config) (storage.ObjectStore, error) {
	switch cfg.Archive.Backend {
	case config.BackendS3:
		return storage.NewS3Store(ctx, storage.S3Config{
			Bucket:    cfg.AWS.S3Bucket,
			Endpoint:  cfg.AWS.S3Endpoint,
			Region:    cfg.AWS.Region,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
		})
	case config.BackendMinio:
		store, err := storage.NewMinioStore(storage.MinioConfig{
			Endpoint:  cfg.AWS.S3Endpoint,
			Bucket:    cfg.AWS.S3Bucket,
			AccessKey: cfg.AWS.AccessKeyID,
			SecretKey: cfg.AWS.SecretAccessKey,
			UseSSL:    cfg.AWS.UseSSL,
		})
		if err != nil {
			return nil, err
		}
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("archive backend %q has no object store", cfg.Archive.Backend)
	}
}

// NewFetcher returns the document fetcher for the configured backend
func NewFetcher(ctx context.Context, cfg *config.Config) (fetcher.Fetcher, error) {
	if cfg.Archive.Backend == config.BackendHTTP {
		log.Info().Str("archive_root", cfg.Archive.Root).Msg("Fetching correction documents over HTTP")
		return fetcher.NewHTTPFetcher(nil), nil
	}

	store, err := NewObjectStore(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create object store: %w", err)
	}

	log.Info().
		Str("backend", cfg.Archive.Backend).
		Str("bucket", cfg.AWS.S3Bucket).
		Str("prefix", cfg.Archive.Prefix).
		Msg("Fetching correction documents from archive mirror")
	return fetcher.NewArchiveFetcher(store, cfg.Archive.Root, cfg.Archive.Prefix), nil
}

// NewLookupRepository opens PostgreSQL when DATABASE_URL is set and falls
// back to an in-memory log otherwise. The returned close func is never nil.
func NewLookupRepository(ctx context.Context, cfg *config.Config) (repository.LookupRepository, func() error, error) {
	if cfg.Database.URL == "" {
		log.Info().Msg("DATABASE_URL not set, keeping lookup log in memory")
		return memory.NewLookupRepository(), func() error { return nil }, nil
	}

	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := postgres.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, nil, err
	}

	log.Info().Msg("Lookup log stored in PostgreSQL")
	return postgres.NewPostgresLookupRepository(db), db.Close, nil
}

// NewCatalog loads CATALOG_FILE when set, else the built-in catalog
func NewCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	if cfg.Archive.CatalogFile == "" {
		return catalog.Default(), nil
	}
	return catalog.LoadFile(cfg.Archive.CatalogFile)
}
