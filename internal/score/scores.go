package score

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// ScoreRepository provides persistence operations for scores.
type ScoreRepository struct {
	db *sql.DB
}

// Scores returns the score repository for this store.
func (s *Store) Scores() *ScoreRepository {
	return &ScoreRepository{db: s.db}
}

// Add inserts a finished run's score.
func (r *ScoreRepository) Add(value int) error {
	_, err := r.db.Exec(
		`INSERT INTO scores (id, value, created_at) VALUES (?, ?, ?)`,
		uuid.NewString(), value, time.Now(),
	)
	return err
}

// Top returns up to n scores, best first.
func (r *ScoreRepository) Top(n int) ([]int, error) {
	rows, err := r.db.Query(
		`SELECT value FROM scores ORDER BY value DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var scores []int
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		scores = append(scores, v)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return scores, nil
}
