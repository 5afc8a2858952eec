package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Change records one edit to a tracked field: what changed, the before and
// after values, and the role of whoever made the edit. The actor is always
// passed in explicitly by the caller.
type Change struct {
	ID        int64     `json:"id"`
	Field     string    `json:"field"`
	OldValue  string    `json:"oldValue"`
	NewValue  string    `json:"newValue"`
	ActorRole string    `json:"actorRole"`
	ChangedAt time.Time `json:"changedAt"`
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

// Record writes a change entry when the value actually changed.
func (s *Store) Record(ctx context.Context, actorRole, field, oldValue, newValue string) error {
	if oldValue == newValue {
		return nil
	}
	_, err := s.DB.Exec(ctx, `
    INSERT INTO change_log (field, old_value, new_value, actor_role, changed_at)
    VALUES ($1,$2,$3,$4,$5)
  `, field, oldValue, newValue, actorRole, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("record change: %w", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]Change, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, field, old_value, new_value, actor_role, changed_at
    FROM change_log
    ORDER BY changed_at DESC, id DESC
  `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var changes []Change
	for rows.Next() {
		var change Change
		if err := rows.Scan(&change.ID, &change.Field, &change.OldValue, &change.NewValue, &change.ActorRole, &change.ChangedAt); err != nil {
			return nil, err
		}
		changes = append(changes, change)
	}
	return changes, rows.Err()
}
