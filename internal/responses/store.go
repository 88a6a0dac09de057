package responses

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/adaptlearn/backend/internal/models"
)

var ErrAlreadyAnswered = errors.New("item already answered")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// RecordResponse appends one response to the learner's history. Each
// learner answers each item at most once.
func (s *Store) RecordResponse(rec models.ResponseRecord) (*models.ResponseRecord, error) {
	var saved models.ResponseRecord
	err := s.db.QueryRow(
		`INSERT INTO responses (learner_id, item_id, subject, difficulty, correct, response_time_seconds)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, learner_id, item_id, subject, difficulty, correct, response_time_seconds, answered_at`,
		rec.LearnerID, rec.ItemID, rec.Subject, rec.Difficulty, rec.Correct, rec.ResponseTimeSeconds,
	).Scan(&saved.ID, &saved.LearnerID, &saved.ItemID, &saved.Subject, &saved.Difficulty,
		&saved.Correct, &saved.ResponseTimeSeconds, &saved.AnsweredAt)
	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			return nil, ErrAlreadyAnswered
		}
		return nil, fmt.Errorf("record response: %w", err)
	}
	return &saved, nil
}

// GetHistory returns a learner's full response sequence in answer order,
// optionally filtered to one subject. The assessment core depends on the
// ascending order.
func (s *Store) GetHistory(learnerID int64, subject *models.Subject) ([]models.ResponseRecord, error) {
	var rows *sql.Rows
	var err error

	selectCols := `id, learner_id, item_id, subject, difficulty, correct, response_time_seconds, answered_at`

	if subject != nil {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM responses WHERE learner_id = $1 AND subject = $2 ORDER BY answered_at ASC, id ASC`, selectCols),
			learnerID, *subject,
		)
	} else {
		rows, err = s.db.Query(
			fmt.Sprintf(`SELECT %s FROM responses WHERE learner_id = $1 ORDER BY answered_at ASC, id ASC`, selectCols),
			learnerID,
		)
	}
	if err != nil {
		return nil, fmt.Errorf("get history: %w", err)
	}
	defer rows.Close()

	return scanResponses(rows)
}

// GetHistoryPage returns recent-first pages for the history endpoint.
func (s *Store) GetHistoryPage(learnerID int64, subject *models.Subject, limit, offset int) ([]models.ResponseRecord, int, error) {
	where := "WHERE learner_id = $1"
	args := []interface{}{learnerID}
	paramIdx := 2

	if subject != nil {
		where += fmt.Sprintf(" AND subject = $%d", paramIdx)
		args = append(args, *subject)
		paramIdx++
	}

	var total int
	if err := s.db.QueryRow(
		fmt.Sprintf(`SELECT COUNT(*) FROM responses %s`, where), args...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count history: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, learner_id, item_id, subject, difficulty, correct, response_time_seconds, answered_at
		 FROM responses %s ORDER BY answered_at DESC, id DESC LIMIT $%d OFFSET $%d`,
		where, paramIdx, paramIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("get history page: %w", err)
	}
	defer rows.Close()

	records, err := scanResponses(rows)
	if err != nil {
		return nil, 0, err
	}
	return records, total, nil
}

// GetAnsweredSubjects lists the subjects a learner has responses in.
func (s *Store) GetAnsweredSubjects(learnerID int64) ([]models.Subject, error) {
	rows, err := s.db.Query(
		`SELECT DISTINCT subject FROM responses WHERE learner_id = $1 ORDER BY subject`,
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("get answered subjects: %w", err)
	}
	defer rows.Close()

	var subjects []models.Subject
	for rows.Next() {
		var subj models.Subject
		if err := rows.Scan(&subj); err != nil {
			return nil, err
		}
		subjects = append(subjects, subj)
	}
	return subjects, rows.Err()
}

func (s *Store) SaveAbilitySnapshot(est models.AbilityEstimate, subject *models.Subject) error {
	_, err := s.db.Exec(
		`INSERT INTO ability_snapshots (learner_id, subject, theta, standard_error, sample_size, computed_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		est.LearnerID, subject, est.Theta, est.StandardError, est.SampleSize, est.ComputedAt,
	)
	if err != nil {
		return fmt.Errorf("save ability snapshot: %w", err)
	}
	return nil
}

func scanResponses(rows *sql.Rows) ([]models.ResponseRecord, error) {
	var records []models.ResponseRecord
	for rows.Next() {
		var r models.ResponseRecord
		if err := rows.Scan(&r.ID, &r.LearnerID, &r.ItemID, &r.Subject, &r.Difficulty,
			&r.Correct, &r.ResponseTimeSeconds, &r.AnsweredAt); err != nil {
			return nil, fmt.Errorf("scan response: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}
