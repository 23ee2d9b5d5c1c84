package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"sort"

	"github.com/RMahshie/soundmax/internal/repository"
	"github.com/RMahshie/soundmax/migrations"
	"github.com/RMahshie/soundmax/pkg/models"
	"github.com/google/uuid"
)

// PostgresLookupRepository implements LookupRepository for PostgreSQL
type PostgresLookupRepository struct {
	db *sql.DB
}

// NewPostgresLookupRepository creates a new PostgreSQL lookup repository
func NewPostgresLookupRepository(db *sql.DB) repository.LookupRepository {
	return &PostgresLookupRepository{db: db}
}

// Migrate applies the embedded schema files in order
func Migrate(ctx context.Context, db *sql.DB) error {
	files, err := fs.Glob(migrations.FS, "*.up.sql")
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	sort.Strings(files)

	for _, name := range files {
		stmt, err := fs.ReadFile(migrations.FS, name)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", name, err)
		}
		if _, err := db.ExecContext(ctx, string(stmt)); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", name, err)
		}
	}
	return nil
}

// Create inserts a new lookup record
func (r *PostgresLookupRepository) Create(ctx context.Context, lookup *models.Lookup) error {
	var bands []byte
	if lookup.Bands != nil {
		var err error
		bands, err = json.Marshal(lookup.Bands)
		if err != nil {
			return fmt.Errorf("failed to marshal bands: %w", err)
		}
	}

	query := `
		INSERT INTO lookups (id, name, source, category, locator, status, error_kind, error_message, bands, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.ExecContext(ctx, query,
		lookup.ID,
		lookup.Name,
		lookup.Source,
		string(lookup.Category),
		lookup.Locator,
		lookup.Status,
		lookup.ErrorKind,
		lookup.ErrorMessage,
		nullableJSON(bands),
		lookup.CreatedAt)

	return err
}

// GetByID retrieves a lookup by ID
func (r *PostgresLookupRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Lookup, error) {
	query := `
		SELECT id, name, source, category, locator, status, error_kind, error_message, bands, created_at
		FROM lookups
		WHERE id = $1`

	lookup, err := scanLookup(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrLookupNotFound
	}
	return lookup, err
}

// ListRecent retrieves up to limit lookups, newest first
func (r *PostgresLookupRepository) ListRecent(ctx context.Context, limit int) ([]*models.Lookup, error) {
	query := `
		SELECT id, name, source, category, locator, status, error_kind, error_message, bands, created_at
		FROM lookups
		ORDER BY created_at DESC
		LIMIT $1`

	// LIMIT NULL means no limit
	var lim any
	if limit > 0 {
		lim = limit
	}

	rows, err := r.db.QueryContext(ctx, query, lim)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var lookups []*models.Lookup
	for rows.Next() {
		lookup, err := scanLookup(rows)
		if err != nil {
			return nil, err
		}
		lookups = append(lookups, lookup)
	}

	return lookups, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLookup(row rowScanner) (*models.Lookup, error) {
	var lookup models.Lookup
	var category string
	var errorKind, errorMsg, bands sql.NullString

	err := row.Scan(
		&lookup.ID,
		&lookup.Name,
		&lookup.Source,
		&category,
		&lookup.Locator,
		&lookup.Status,
		&errorKind,
		&errorMsg,
		&bands,
		&lookup.CreatedAt)
	if err != nil {
		return nil, err
	}

	lookup.Category = models.Category(category)
	if errorKind.Valid {
		lookup.ErrorKind = &errorKind.String
	}
	if errorMsg.Valid {
		lookup.ErrorMessage = &errorMsg.String
	}
	if bands.Valid {
		var profile models.BandProfile
		if err := json.Unmarshal([]byte(bands.String), &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bands: %w", err)
		}
		lookup.Bands = &profile
	}

	return &lookup, nil
}

func nullableJSON(b []byte) any {
	if b == nil {
		return nil
	}
	return string(b)
}
