// Package postgres implements the repositories on PostgreSQL.
package postgres

import (
	"database/sql"
	"embed"
	"fmt"

	"postlikes/app/repositories"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store is a repositories.Store backed by a PostgreSQL database.
type Store struct {
	db    *sql.DB
	posts *postgresPostRepo
	users *postgresUserRepo
}

// Open connects to dsn and verifies the connection.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an existing connection pool.
func NewStore(db *sql.DB) *Store {
	return &Store{
		db:    db,
		posts: &postgresPostRepo{db: db},
		users: &postgresUserRepo{db: db},
	}
}

// Migrate applies all pending schema migrations.
func (s *Store) Migrate() error {
	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Up(s.db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Posts() repositories.PostRepository { return s.posts }

func (s *Store) Users() repositories.UserRepository { return s.users }

func (s *Store) Close() error { return s.db.Close() }
