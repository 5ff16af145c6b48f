package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	condomodels "condogov/internal/condo/models"
	"condogov/internal/profile/models"
)

// PostgresStore persists profiles in PostgreSQL. This store is pure I/O;
// validation and authorization belong to the service layer.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgres constructs a PostgreSQL-backed profile store.
func NewPostgres(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// EnsureSchema creates the profiles table when missing. The deployment
// has a single writer, so idempotent DDL at startup replaces a migration
// tool.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	ddl := `
		CREATE TABLE IF NOT EXISTS resident_profiles (
			wallet TEXT PRIMARY KEY,
			name   TEXT NOT NULL,
			phone  TEXT NOT NULL DEFAULT '',
			email  TEXT NOT NULL DEFAULT ''
		)
	`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure profile schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, record models.Record) error {
	query := `
		INSERT INTO resident_profiles (wallet, name, phone, email)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (wallet) DO NOTHING
	`
	result, err := s.db.ExecContext(ctx, query,
		record.Wallet.Normalized().String(), record.Name, record.Phone, record.Email)
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	if rows == 0 {
		return ErrDuplicate
	}
	return nil
}

func (s *PostgresStore) Find(ctx context.Context, wallet condomodels.Address) (models.Record, error) {
	query := `
		SELECT wallet, name, phone, email
		FROM resident_profiles
		WHERE wallet = $1
	`
	record, err := scanRecord(s.db.QueryRowContext(ctx, query, wallet.Normalized().String()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Record{}, ErrNotFound
		}
		return models.Record{}, fmt.Errorf("find profile: %w", err)
	}
	return record, nil
}

func (s *PostgresStore) Update(ctx context.Context, record models.Record) error {
	query := `
		UPDATE resident_profiles
		SET name = $2, phone = $3, email = $4
		WHERE wallet = $1
	`
	result, err := s.db.ExecContext(ctx, query,
		record.Wallet.Normalized().String(), record.Name, record.Phone, record.Email)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, wallet condomodels.Address) error {
	query := `DELETE FROM resident_profiles WHERE wallet = $1`
	result, err := s.db.ExecContext(ctx, query, wallet.Normalized().String())
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(row *sql.Row) (models.Record, error) {
	var record models.Record
	var wallet string
	if err := row.Scan(&wallet, &record.Name, &record.Phone, &record.Email); err != nil {
		return models.Record{}, err
	}
	record.Wallet = condomodels.Address(wallet)
	return record, nil
}
