package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/mealfinder/pkg/domain"
)

// PreferenceRepository persists per-client preference values
type PreferenceRepository struct {
	db *sqlx.DB
}

// preferenceSQL is a single stored preference row
type preferenceSQL struct {
	Key   string `db:"key"`
	Value string `db:"value"`
}

// NewPreferenceRepository creates a new preference repository
func NewPreferenceRepository(db *sqlx.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// GetPreferences returns the stored preferences of a client with defaults for anything missing
func (r *PreferenceRepository) GetPreferences(ctx context.Context, clientID string) (domain.Preferences, error) {
	var rows []preferenceSQL
	err := r.db.SelectContext(ctx, &rows,
		"SELECT key, value FROM preferences WHERE client_id = ?", clientID)
	if err != nil {
		return domain.Preferences{}, fmt.Errorf("get preferences: %w", err)
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	return domain.PreferencesFromMap(values), nil
}

// SetPreference stores a single preference value immediately, replacing the previous one
func (r *PreferenceRepository) SetPreference(ctx context.Context, clientID, key, value string) error {
	if !domain.IsPreferenceKey(key) {
		return fmt.Errorf("unknown preference key %q", key)
	}

	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	return retrier.Do(ctx, func() error {
		query := `
			INSERT INTO preferences (client_id, key, value, updated_at) VALUES (?, ?, ?, datetime('now'))
			ON CONFLICT(client_id, key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
		`
		if _, err := r.db.ExecContext(ctx, query, clientID, key, value); err != nil {
			if isLockError(err) {
				return err // retry
			}
			return &criticalError{err: fmt.Errorf("set preference %s: %w", key, err)}
		}
		return nil
	}, errCritical)
}
