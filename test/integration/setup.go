package integration

import (
	"context"
	"fmt"
	"testing"
	"time"

	"workshop-bridge/internal/config"
	"workshop-bridge/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestDB represents a test database instance.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	ConnStr   string
}

// SetupTestDB creates a PostgreSQL test container and connection pool.
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	// Create PostgreSQL container
	postgresContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		t.Fatalf("failed to start postgres container: %v", err)
	}

	// Get connection string
	connStr, err := postgresContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %v", err)
	}

	// Create connection pool
	dbConfig := config.DatabaseConfig{
		MaxConnections:  10,
		MinConnections:  2,
		MaxConnLifetime: 300,
	}

	logger := zerolog.Nop()
	pool, err := database.NewPool(ctx, connStr, dbConfig, logger)
	if err != nil {
		t.Fatalf("failed to create connection pool: %v", err)
	}

	// Create schema
	createSchema(t, pool)

	t.Cleanup(func() {
		pool.Close()
		if err := postgresContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	return &TestDB{
		Container: postgresContainer,
		Pool:      pool,
		ConnStr:   connStr,
	}
}

// createSchema creates the database schema for testing.
func createSchema(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	schema := `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL UNIQUE,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50),
			role VARCHAR(50) NOT NULL DEFAULT 'cliente',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS pending_users (
			id UUID PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			full_name VARCHAR(255) NOT NULL DEFAULT '',
			phone VARCHAR(50),
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS coupons (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			code VARCHAR(50) NOT NULL UNIQUE,
			discount_type VARCHAR(20) NOT NULL,
			discount_value DECIMAL(10, 2) NOT NULL,
			max_discount_amount DECIMAL(10, 2),
			min_order_amount DECIMAL(10, 2),
			usage_limit INTEGER,
			usage_limit_per_user INTEGER,
			usage_count INTEGER NOT NULL DEFAULT 0,
			start_date TIMESTAMPTZ NOT NULL DEFAULT now(),
			end_date TIMESTAMPTZ,
			is_active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS workshops (
			id UUID PRIMARY KEY,
			slug VARCHAR(255) NOT NULL UNIQUE,
			name VARCHAR(255) NOT NULL,
			description TEXT,
			price DECIMAL(10, 2) NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS workshop_sessions (
			id UUID PRIMARY KEY,
			workshop_id UUID NOT NULL REFERENCES workshops(id) ON DELETE CASCADE,
			date TIMESTAMPTZ NOT NULL,
			available_spots INTEGER NOT NULL DEFAULT 0,
			active BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS events (
			id UUID PRIMARY KEY,
			title VARCHAR(255) NOT NULL,
			workshop_id UUID REFERENCES workshops(id),
			start_date TIMESTAMPTZ NOT NULL,
			end_date TIMESTAMPTZ,
			is_public BOOLEAN NOT NULL DEFAULT true,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS orders (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			workshop_id UUID NOT NULL REFERENCES workshops(id),
			session_id UUID REFERENCES workshop_sessions(id),
			payment_method VARCHAR(50) NOT NULL,
			payment_id VARCHAR(255),
			amount DECIMAL(10, 2) NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'pending',
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE TABLE IF NOT EXISTS testimonials (
			id UUID PRIMARY KEY,
			user_id UUID NOT NULL REFERENCES users(id),
			workshop_id UUID NOT NULL REFERENCES workshops(id),
			content TEXT NOT NULL,
			position VARCHAR(255),
			company VARCHAR(255),
			rating INTEGER NOT NULL DEFAULT 5,
			is_approved BOOLEAN NOT NULL DEFAULT false,
			is_featured BOOLEAN NOT NULL DEFAULT false,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);

		CREATE INDEX IF NOT EXISTS idx_coupons_code ON coupons(code);
		CREATE INDEX IF NOT EXISTS idx_sessions_workshop_id ON workshop_sessions(workshop_id);
		CREATE INDEX IF NOT EXISTS idx_orders_user_id ON orders(user_id);
	`

	_, err := pool.Exec(ctx, schema)
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}
}

// SeedCoupon inserts one coupon and returns its ID.
func SeedCoupon(t *testing.T, pool *pgxpool.Pool, code string, usageLimit *int) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO coupons (id, name, code, discount_type, discount_value, usage_limit, start_date, is_active)
		VALUES ($1, $2, $3, 'percentage', 10, $4, now() - interval '1 day', true)`,
		id, "Seeded "+code, code, usageLimit,
	)
	if err != nil {
		t.Fatalf("failed to seed coupon %s: %v", code, err)
	}

	return id
}

// SeedWorkshop inserts one workshop with a single session and returns
// both IDs.
func SeedWorkshop(t *testing.T, pool *pgxpool.Pool, slug string, spots int) (uuid.UUID, uuid.UUID) {
	t.Helper()

	ctx := context.Background()
	workshopID := uuid.New()
	sessionID := uuid.New()

	_, err := pool.Exec(ctx, `
		INSERT INTO workshops (id, slug, name, price, active)
		VALUES ($1, $2, $3, 100, true)`,
		workshopID, slug, "Workshop "+slug,
	)
	if err != nil {
		t.Fatalf("failed to seed workshop %s: %v", slug, err)
	}

	_, err = pool.Exec(ctx, `
		INSERT INTO workshop_sessions (id, workshop_id, date, available_spots, active)
		VALUES ($1, $2, now() + interval '7 days', $3, true)`,
		sessionID, workshopID, spots,
	)
	if err != nil {
		t.Fatalf("failed to seed session for %s: %v", slug, err)
	}

	return workshopID, sessionID
}

// SeedUser inserts one user row and returns its ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool, email, role string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := pool.Exec(context.Background(), `
		INSERT INTO users (id, email, full_name, role)
		VALUES ($1, $2, $3, $4)`,
		id, email, "Seeded User", role,
	)
	if err != nil {
		t.Fatalf("failed to seed user %s: %v", email, err)
	}

	return id
}

// CleanupDB cleans all data from test tables.
func CleanupDB(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()

	tables := []string{"testimonials", "orders", "events", "workshop_sessions", "workshops", "coupons", "pending_users", "users"}
	for _, table := range tables {
		_, err := pool.Exec(ctx, fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}
}
