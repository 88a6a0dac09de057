package responses

import (
	"context"
	"errors"
	"log"

	"github.com/adaptlearn/backend/internal/assessment"
	"github.com/adaptlearn/backend/internal/items"
	"github.com/adaptlearn/backend/internal/models"
)

// Blockage analysis runs every blockageCheckInterval responses rather than
// on every answer.
const blockageCheckInterval = 5

// Window of recent same-difficulty responses used as the observed score
// when adapting difficulty.
const recentScoreWindow = 10

type Service struct {
	store *Store
	items *items.Service
}

func NewService(store *Store, itemsService *items.Service) *Service {
	return &Service{store: store, items: itemsService}
}

// ── Answer Submission ───────────────────────────────────

// SubmitAnswer records a response and runs the full adaptive loop: ability
// re-estimation, difficulty adaptation, next-item selection, and periodic
// blockage analysis.
func (s *Service) SubmitAnswer(ctx context.Context, learnerID, itemID int64, req models.SubmitAnswerRequest) (*models.SubmitAnswerResponse, error) {
	item, err := s.items.GetItem(itemID)
	if err != nil {
		return nil, err
	}

	correct := item.CorrectChoiceID == req.SelectedChoiceID

	_, err = s.store.RecordResponse(models.ResponseRecord{
		LearnerID:           learnerID,
		ItemID:              itemID,
		Subject:             item.Subject,
		Difficulty:          item.Difficulty,
		Correct:             correct,
		ResponseTimeSeconds: req.ResponseTimeSeconds,
	})
	if err != nil {
		return nil, err
	}

	resp := &models.SubmitAnswerResponse{
		Correct:         correct,
		CorrectChoiceID: item.CorrectChoiceID,
		Explanation:     item.Explanation,
	}

	history, err := s.store.GetHistory(learnerID, &item.Subject)
	if err != nil {
		log.Printf("WARN: failed to load history for learner %d: %v", learnerID, err)
		return resp, nil
	}

	estimate := assessment.EstimateAbility(history)
	estimate.LearnerID = learnerID
	resp.Ability = &estimate

	if err := s.store.SaveAbilitySnapshot(estimate, &item.Subject); err != nil {
		log.Printf("WARN: failed to save ability snapshot: %v", err)
	}

	actualScore := recentScoreAtDifficulty(history, item.Difficulty)
	transition := assessment.AdaptDifficulty(item.Difficulty, estimate.Theta, actualScore, len(history))
	resp.Difficulty = &transition

	if next, prediction, err := s.selectNext(learnerID, item.Subject, estimate.Theta); err != nil {
		if !errors.Is(err, assessment.ErrNoItemAvailable) {
			log.Printf("WARN: next item selection failed: %v", err)
		}
	} else {
		resp.NextItem = next
		resp.NextPrediction = prediction
	}

	if len(history) > 0 && len(history)%blockageCheckInterval == 0 {
		report := assessment.DetectBlockages(history)
		if len(report.Patterns) > 0 {
			resp.Blockage = &report
		}
	}

	// Keep the pool stocked at the difficulty the learner is heading to.
	go s.items.EnsureInventory(learnerID, item.Subject, transition.New)

	return resp, nil
}

// recentScoreAtDifficulty is the learner's observed score (0-100) over
// their recent responses at one difficulty level.
func recentScoreAtDifficulty(history []models.ResponseRecord, difficulty models.Difficulty) float64 {
	correct := 0
	total := 0
	for i := len(history) - 1; i >= 0 && total < recentScoreWindow; i-- {
		if history[i].Difficulty != difficulty {
			continue
		}
		total++
		if history[i].Correct {
			correct++
		}
	}
	if total == 0 {
		return 50.0
	}
	return 100.0 * float64(correct) / float64(total)
}

func (s *Service) selectNext(learnerID int64, subject models.Subject, theta float64) (*models.ServingItem, *models.PredictionResult, error) {
	candidates, answered, err := s.items.CandidatesForLearner(learnerID, subject)
	if err != nil {
		return nil, nil, err
	}

	selected, err := assessment.SelectNextItem(theta, candidates, answered)
	if err != nil {
		return nil, nil, err
	}

	item, err := s.items.GetItem(selected.ItemID)
	if err != nil {
		return nil, nil, err
	}

	serving := item.ToServing()
	prediction := assessment.PredictItemPerformance(theta, *selected)
	return &serving, &prediction, nil
}

// ── Ability ─────────────────────────────────────────────

func (s *Service) GetAbility(learnerID int64) (*models.AbilityResponse, error) {
	fullHistory, err := s.store.GetHistory(learnerID, nil)
	if err != nil {
		return nil, err
	}

	overall := assessment.EstimateAbility(fullHistory)
	overall.LearnerID = learnerID

	resp := &models.AbilityResponse{
		Overall:   &overall,
		BySubject: make(map[models.Subject]models.AbilityEstimate),
	}

	subjects, err := s.store.GetAnsweredSubjects(learnerID)
	if err != nil {
		return nil, err
	}

	for _, subject := range subjects {
		subjHistory, err := s.store.GetHistory(learnerID, &subject)
		if err != nil {
			return nil, err
		}
		est := assessment.EstimateAbility(subjHistory)
		est.LearnerID = learnerID
		resp.BySubject[subject] = est
	}

	return resp, nil
}

// ── Next Item ───────────────────────────────────────────

func (s *Service) NextItem(learnerID int64, subject models.Subject) (*models.NextItemResponse, error) {
	history, err := s.store.GetHistory(learnerID, &subject)
	if err != nil {
		return nil, err
	}

	estimate := assessment.EstimateAbility(history)

	serving, prediction, err := s.selectNext(learnerID, subject, estimate.Theta)
	if err != nil {
		if errors.Is(err, assessment.ErrNoItemAvailable) {
			// Restock asynchronously so a retry can succeed.
			go s.items.EnsureInventory(learnerID, subject, assessment.FromNumeric(estimate.Theta))
		}
		return nil, err
	}

	return &models.NextItemResponse{
		Item:       *serving,
		Prediction: *prediction,
	}, nil
}

// ── Blockage Analysis ───────────────────────────────────

func (s *Service) AnalyzeBlockages(learnerID int64, subject *models.Subject) (*models.BlockageReport, error) {
	history, err := s.store.GetHistory(learnerID, subject)
	if err != nil {
		return nil, err
	}
	report := assessment.DetectBlockages(history)
	return &report, nil
}

// ── History ─────────────────────────────────────────────

func (s *Service) GetHistory(learnerID int64, subject *models.Subject, page, pageSize int) (*models.HistoryListResponse, error) {
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	if pageSize > 100 {
		pageSize = 100
	}

	records, total, err := s.store.GetHistoryPage(learnerID, subject, pageSize, (page-1)*pageSize)
	if err != nil {
		return nil, err
	}
	if records == nil {
		records = []models.ResponseRecord{}
	}
	return &models.HistoryListResponse{
		Responses: records,
		Total:     total,
		Page:      page,
		PageSize:  pageSize,
	}, nil
}
