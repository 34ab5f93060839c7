package cart

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "modernc.org/sqlite"

	"github.com/germanaqua/Psychovoystore/internal/domain"
)

// SQLiteRepository persists each owner's cart as a single JSON payload,
// mirroring the one-key localStorage contract of the web client.
type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) RunMigrations(migrationsPath string) error {
	driver, err := sqlite.WithInstance(r.db, &sqlite.Config{})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsPath),
		"sqlite",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}

	return nil
}

func (r *SQLiteRepository) Load(ctx context.Context, ownerID string) (*domain.Cart, error) {
	query := `
		SELECT payload, created_at, updated_at
		FROM carts
		WHERE owner_id = $1
	`

	var payload string
	var createdAt, updatedAt time.Time
	err := r.db.QueryRowContext(ctx, query, ownerID).Scan(&payload, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCartNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cart: %w", err)
	}

	var items []domain.CartItem
	if err := json.Unmarshal([]byte(payload), &items); err != nil {
		return nil, fmt.Errorf("corrupt cart payload: %w", err)
	}

	return &domain.Cart{
		OwnerID:   ownerID,
		Items:     items,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

func (r *SQLiteRepository) Save(ctx context.Context, cart *domain.Cart) error {
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now

	payload, err := json.Marshal(cart.Items)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	query := `
		INSERT INTO carts (owner_id, payload, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id) DO UPDATE SET
			payload = excluded.payload,
			updated_at = excluded.updated_at
	`

	if _, err := r.db.ExecContext(ctx, query, cart.OwnerID, string(payload), cart.CreatedAt, cart.UpdatedAt); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Delete removes the durable record entirely, not just an empty item list.
func (r *SQLiteRepository) Delete(ctx context.Context, ownerID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM carts WHERE owner_id = $1`, ownerID); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
