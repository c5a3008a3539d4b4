package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ecarvalho/aulaplan/internal/plan"
)

// LessonRepo is durable storage for the lesson collection.
type LessonRepo interface {
	// Load returns the stored collection. Missing or corrupt state yields
	// an empty collection; corruption is logged, never fatal.
	Load(ctx context.Context) (plan.Collection, error)

	// Save overwrites the stored collection. Idempotent.
	Save(ctx context.Context, c plan.Collection) error
}

type lessonRepo struct {
	db *sql.DB
}

func (r *lessonRepo) Load(ctx context.Context) (plan.Collection, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM lesson_collection WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return plan.Collection{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	var c plan.Collection
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		fmt.Fprintf(os.Stderr, "warning: stored lesson collection is corrupt, starting empty: %v\n", err)
		return plan.Collection{}, nil
	}
	return c, nil
}

func (r *lessonRepo) Save(ctx context.Context, c plan.Collection) error {
	if c == nil {
		c = plan.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal collection: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO lesson_collection (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT (id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("save collection: %w", err)
	}
	return nil
}
