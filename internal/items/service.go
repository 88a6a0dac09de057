package items

import (
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/adaptlearn/backend/internal/generator"
	"github.com/adaptlearn/backend/internal/models"
)

const (
	defaultDiscrimination = 1.0
	defaultGuessing       = 0.25
	generationBatchSize   = 4
)

type Service struct {
	store          *Store
	generator      *generator.Generator
	autoGenEnabled bool
	minUnanswered  int
}

func NewService(store *Store, gen *generator.Generator) *Service {
	autoGenEnabled := os.Getenv("AUTO_GEN_ENABLED") != "false"

	// Minimum unanswered items per bucket before triggering generation
	minUnanswered := 4
	if v := os.Getenv("AUTO_GEN_MIN_UNANSWERED"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			minUnanswered = n
		}
	}

	log.Printf("Items service: autoGen=%v minUnanswered=%d", autoGenEnabled, minUnanswered)

	return &Service{
		store:          store,
		generator:      gen,
		autoGenEnabled: autoGenEnabled,
		minUnanswered:  minUnanswered,
	}
}

// ── Item Authoring ──────────────────────────────────────

func (s *Service) CreateItem(req models.CreateItemRequest) (*models.Item, error) {
	if err := validateCreateItem(req); err != nil {
		return nil, err
	}

	item := models.Item{
		Subject:         req.Subject,
		Difficulty:      req.Difficulty,
		Stem:            req.Stem,
		Choices:         req.Choices,
		CorrectChoiceID: req.CorrectChoiceID,
		Explanation:     req.Explanation,
		Discrimination:  defaultDiscrimination,
		Guessing:        defaultGuessing,
		Source:          "authored",
	}
	if req.Discrimination != nil {
		item.Discrimination = *req.Discrimination
	}
	if req.Guessing != nil {
		item.Guessing = *req.Guessing
	}

	return s.store.CreateItem(item)
}

var expectedChoiceIDs = []string{"A", "B", "C", "D"}

func validateCreateItem(req models.CreateItemRequest) error {
	if !models.ValidSubjects[req.Subject] {
		return fmt.Errorf("invalid subject %q", req.Subject)
	}
	if !models.ValidDifficulties[req.Difficulty] {
		return fmt.Errorf("invalid difficulty %q", req.Difficulty)
	}
	if req.Stem == "" {
		return fmt.Errorf("empty stem")
	}
	if len(req.Choices) != 4 {
		return fmt.Errorf("expected 4 choices, got %d", len(req.Choices))
	}
	correctFound := false
	for i, c := range req.Choices {
		if c.ChoiceID != expectedChoiceIDs[i] {
			return fmt.Errorf("choice %d has id %q, expected %q", i+1, c.ChoiceID, expectedChoiceIDs[i])
		}
		if c.ChoiceText == "" {
			return fmt.Errorf("choice %s has empty text", c.ChoiceID)
		}
		if c.ChoiceID == req.CorrectChoiceID {
			correctFound = true
		}
	}
	if !correctFound {
		return fmt.Errorf("correct_choice_id %q does not match any choice", req.CorrectChoiceID)
	}
	if req.Discrimination != nil && *req.Discrimination <= 0 {
		return fmt.Errorf("discrimination must be positive")
	}
	if req.Guessing != nil && (*req.Guessing < 0 || *req.Guessing >= 1) {
		return fmt.Errorf("guessing must be in [0, 1)")
	}
	return nil
}

// ── Item Access ─────────────────────────────────────────

func (s *Service) GetItem(itemID int64) (*models.Item, error) {
	return s.store.GetItem(itemID)
}

func (s *Service) ListItems(subject *models.Subject, difficulty *models.Difficulty, page, pageSize int) (*models.ItemListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	items, total, err := s.store.ListItems(subject, difficulty, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []models.Item{}
	}
	return &models.ItemListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

// CandidatesForLearner returns the selectable parameter pool for a subject
// plus the set of item IDs the learner has already answered.
func (s *Service) CandidatesForLearner(learnerID int64, subject models.Subject) ([]models.ItemParameters, map[int64]bool, error) {
	candidates, err := s.store.GetCandidateParameters(subject)
	if err != nil {
		return nil, nil, err
	}
	answered, err := s.store.GetAnsweredItemIDs(learnerID, subject)
	if err != nil {
		return nil, nil, err
	}
	return candidates, answered, nil
}

// ── Inventory & Background Generation ───────────────────

// EnsureInventory queues generation when a learner's unanswered pool for a
// bucket drops below the threshold. Called asynchronously after answers.
func (s *Service) EnsureInventory(learnerID int64, subject models.Subject, difficulty models.Difficulty) {
	if !s.autoGenEnabled {
		return
	}

	unanswered, err := s.store.CountUnansweredForLearner(learnerID, subject, difficulty)
	if err != nil {
		log.Printf("[inventory] count error for learner=%d subject=%s difficulty=%s: %v",
			learnerID, subject, difficulty, err)
		return
	}

	if unanswered >= s.minUnanswered {
		return
	}

	log.Printf("[inventory] learner=%d low on %s/%s: unanswered=%d threshold=%d, queueing generation",
		learnerID, subject, difficulty, unanswered, s.minUnanswered)

	if err := s.store.UpsertGenerationQueue(subject, difficulty, generationBatchSize); err != nil {
		log.Printf("[inventory] queue error: %v", err)
	}
}

func (s *Service) StartGenerationWorker(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	log.Println("[gen-worker] Background generation worker started")

	for {
		select {
		case <-ctx.Done():
			log.Println("[gen-worker] Shutting down")
			return
		case <-ticker.C:
			s.processGenerationQueue(ctx)
		}
	}
}

func (s *Service) processGenerationQueue(ctx context.Context) {
	tasks, err := s.store.GetPendingGenerations(5)
	if err != nil {
		log.Printf("[gen-worker] error fetching queue: %v", err)
		return
	}

	for _, task := range tasks {
		s.store.UpdateGenerationStatus(task.ID, "generating", nil)

		generated, _, err := s.generator.GenerateItems(ctx, task.Subject, task.Difficulty, task.ItemsNeeded)
		if err != nil {
			errMsg := err.Error()
			s.store.UpdateGenerationStatus(task.ID, "failed", &errMsg)
			log.Printf("[gen-worker] failed: subject=%s difficulty=%s err=%v",
				task.Subject, task.Difficulty, err)
			continue
		}

		saved, err := s.store.SaveGeneratedItems(ctx, task.Subject, task.Difficulty, generated)
		if err != nil {
			errMsg := err.Error()
			s.store.UpdateGenerationStatus(task.ID, "failed", &errMsg)
			log.Printf("[gen-worker] save failed: subject=%s difficulty=%s err=%v",
				task.Subject, task.Difficulty, err)
			continue
		}

		s.store.UpdateGenerationStatus(task.ID, "completed", nil)
		log.Printf("[gen-worker] completed: subject=%s difficulty=%s saved=%d model=%s",
			task.Subject, task.Difficulty, saved, s.generator.ModelName())
	}
}
