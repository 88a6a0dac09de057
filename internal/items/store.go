package items

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/adaptlearn/backend/internal/generator"
	"github.com/adaptlearn/backend/internal/models"
)

var ErrItemNotFound = errors.New("item not found")

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// ── Item CRUD ───────────────────────────────────────────

func (s *Store) CreateItem(item models.Item) (*models.Item, error) {
	choicesJSON, err := json.Marshal(item.Choices)
	if err != nil {
		return nil, fmt.Errorf("marshal choices: %w", err)
	}

	var created models.Item
	var createdChoices []byte
	err = s.db.QueryRow(
		`INSERT INTO items (subject, difficulty, stem, choices, correct_choice_id,
		                    explanation, discrimination, guessing, source)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, subject, difficulty, stem, choices, correct_choice_id,
		           explanation, discrimination, guessing, source, created_at`,
		item.Subject, item.Difficulty, item.Stem, choicesJSON, item.CorrectChoiceID,
		item.Explanation, item.Discrimination, item.Guessing, item.Source,
	).Scan(&created.ID, &created.Subject, &created.Difficulty, &created.Stem,
		&createdChoices, &created.CorrectChoiceID, &created.Explanation,
		&created.Discrimination, &created.Guessing, &created.Source, &created.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}

	if err := json.Unmarshal(createdChoices, &created.Choices); err != nil {
		return nil, fmt.Errorf("unmarshal choices: %w", err)
	}
	return &created, nil
}

func (s *Store) GetItem(itemID int64) (*models.Item, error) {
	var item models.Item
	var choicesJSON []byte
	err := s.db.QueryRow(
		`SELECT id, subject, difficulty, stem, choices, correct_choice_id,
		        explanation, discrimination, guessing, source, created_at
		 FROM items WHERE id = $1`,
		itemID,
	).Scan(&item.ID, &item.Subject, &item.Difficulty, &item.Stem, &choicesJSON,
		&item.CorrectChoiceID, &item.Explanation, &item.Discrimination,
		&item.Guessing, &item.Source, &item.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}

	if err := json.Unmarshal(choicesJSON, &item.Choices); err != nil {
		return nil, fmt.Errorf("unmarshal choices: %w", err)
	}
	return &item, nil
}

func (s *Store) ListItems(subject *models.Subject, difficulty *models.Difficulty, limit, offset int) ([]models.Item, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	paramIdx := 1

	if subject != nil {
		where += fmt.Sprintf(" AND subject = $%d", paramIdx)
		args = append(args, *subject)
		paramIdx++
	}
	if difficulty != nil {
		where += fmt.Sprintf(" AND difficulty = $%d", paramIdx)
		args = append(args, *difficulty)
		paramIdx++
	}

	var total int
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM items %s`, where)
	if err := s.db.QueryRow(countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT id, subject, difficulty, stem, choices, correct_choice_id,
		        explanation, discrimination, guessing, source, created_at
		 FROM items %s ORDER BY id LIMIT $%d OFFSET $%d`,
		where, paramIdx, paramIdx+1)
	args = append(args, limit, offset)

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []models.Item
	for rows.Next() {
		var item models.Item
		var choicesJSON []byte
		if err := rows.Scan(&item.ID, &item.Subject, &item.Difficulty, &item.Stem,
			&choicesJSON, &item.CorrectChoiceID, &item.Explanation,
			&item.Discrimination, &item.Guessing, &item.Source, &item.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		if err := json.Unmarshal(choicesJSON, &item.Choices); err != nil {
			return nil, 0, fmt.Errorf("unmarshal choices: %w", err)
		}
		items = append(items, item)
	}
	return items, total, rows.Err()
}

// ── Candidate Pools for Selection ───────────────────────

func (s *Store) GetCandidateParameters(subject models.Subject) ([]models.ItemParameters, error) {
	rows, err := s.db.Query(
		`SELECT id, subject, difficulty, discrimination, guessing
		 FROM items WHERE subject = $1 ORDER BY id`,
		subject,
	)
	if err != nil {
		return nil, fmt.Errorf("get candidate parameters: %w", err)
	}
	defer rows.Close()

	var params []models.ItemParameters
	for rows.Next() {
		var p models.ItemParameters
		if err := rows.Scan(&p.ItemID, &p.Subject, &p.Difficulty, &p.Discrimination, &p.Guessing); err != nil {
			return nil, fmt.Errorf("scan candidate: %w", err)
		}
		params = append(params, p)
	}
	return params, rows.Err()
}

func (s *Store) GetAnsweredItemIDs(learnerID int64, subject models.Subject) (map[int64]bool, error) {
	rows, err := s.db.Query(
		`SELECT item_id FROM responses WHERE learner_id = $1 AND subject = $2`,
		learnerID, subject,
	)
	if err != nil {
		return nil, fmt.Errorf("get answered item ids: %w", err)
	}
	defer rows.Close()

	answered := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		answered[id] = true
	}
	return answered, rows.Err()
}

// CountUnansweredForLearner counts items in a subject+difficulty bucket the
// learner has not yet answered. Used to detect when an active learner is
// running low on fresh items.
func (s *Store) CountUnansweredForLearner(learnerID int64, subject models.Subject, difficulty models.Difficulty) (int, error) {
	var count int
	err := s.db.QueryRow(
		`SELECT COUNT(*)
		 FROM items i
		 LEFT JOIN responses r ON r.item_id = i.id AND r.learner_id = $1
		 WHERE i.subject = $2 AND i.difficulty = $3 AND r.id IS NULL`,
		learnerID, subject, difficulty,
	).Scan(&count)
	return count, err
}

// ── Generated Item Storage ──────────────────────────────

func (s *Store) SaveGeneratedItems(ctx context.Context, subject models.Subject, difficulty models.Difficulty, generated []generator.GeneratedItem) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	saved := 0
	for _, gi := range generated {
		choices := make([]models.ItemChoice, 0, len(gi.Choices))
		for _, c := range gi.Choices {
			choices = append(choices, models.ItemChoice{ChoiceID: c.ID, ChoiceText: c.Text})
		}
		choicesJSON, err := json.Marshal(choices)
		if err != nil {
			return 0, fmt.Errorf("marshal generated choices: %w", err)
		}

		_, err = tx.Exec(
			`INSERT INTO items (subject, difficulty, stem, choices, correct_choice_id,
			                    explanation, discrimination, guessing, source)
			 VALUES ($1, $2, $3, $4, $5, $6, 1.0, 0.25, 'generated')`,
			subject, difficulty, gi.Stem, choicesJSON, gi.CorrectChoiceID, gi.Explanation,
		)
		if err != nil {
			return 0, fmt.Errorf("insert generated item: %w", err)
		}
		saved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit generated items: %w", err)
	}
	return saved, nil
}

// ── Generation Queue ────────────────────────────────────

func (s *Store) UpsertGenerationQueue(subject models.Subject, difficulty models.Difficulty, needed int) error {
	_, err := s.db.Exec(
		`INSERT INTO generation_queue (subject, difficulty, items_needed)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (subject, difficulty) WHERE status = 'pending' DO NOTHING`,
		subject, difficulty, needed,
	)
	return err
}

func (s *Store) GetPendingGenerations(limit int) ([]models.GenerationTask, error) {
	rows, err := s.db.Query(
		`SELECT id, subject, difficulty, items_needed, status, error_message, created_at, completed_at
		 FROM generation_queue
		 WHERE status = 'pending'
		 ORDER BY created_at ASC
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("get pending generations: %w", err)
	}
	defer rows.Close()

	var tasks []models.GenerationTask
	for rows.Next() {
		var t models.GenerationTask
		if err := rows.Scan(&t.ID, &t.Subject, &t.Difficulty, &t.ItemsNeeded,
			&t.Status, &t.ErrorMessage, &t.CreatedAt, &t.CompletedAt); err != nil {
			return nil, fmt.Errorf("scan generation task: %w", err)
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (s *Store) UpdateGenerationStatus(id int64, status string, errMsg *string) error {
	if status == "completed" || status == "failed" {
		_, err := s.db.Exec(
			`UPDATE generation_queue SET status = $1, error_message = $2, completed_at = NOW() WHERE id = $3`,
			status, errMsg, id,
		)
		return err
	}
	_, err := s.db.Exec(
		`UPDATE generation_queue SET status = $1 WHERE id = $2`,
		status, id,
	)
	return err
}
