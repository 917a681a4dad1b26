package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/merlin-client/internal/logger"
)

type localStorageRepository struct {
	*DB
	logger *logger.Logger
	now    func() time.Time
}

// NewLocalStorage returns a [LocalStorage] backed by the client_storage table.
func NewLocalStorage(db *DB, logger *logger.Logger) LocalStorage {
	return &localStorageRepository{
		DB:     db,
		logger: logger,
		now:    time.Now,
	}
}

func (l *localStorageRepository) Get(ctx context.Context, key string) (string, error) {
	log := logger.FromContext(ctx)

	if key == "" {
		return "", ErrEmptyKey
	}

	query, args, err := buildSelectValueQuery(key)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var value string
	err = l.DB.QueryRowContext(ctx, query, args...).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrKeyNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "localStorageRepository.Get").
			Str("key", key).
			Msg("failed to read storage value")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return value, nil
}

func (l *localStorageRepository) Set(ctx context.Context, key, value string) error {
	log := logger.FromContext(ctx)

	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildUpsertValueQuery(key, value, l.now().UTC())
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localStorageRepository.Set").
			Str("key", key).
			Msg("failed to upsert storage value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (l *localStorageRepository) Remove(ctx context.Context, key string) error {
	log := logger.FromContext(ctx)

	if key == "" {
		return ErrEmptyKey
	}

	query, args, err := buildDeleteValueQuery(key)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = l.DB.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "localStorageRepository.Remove").
			Str("key", key).
			Msg("failed to delete storage value")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}
