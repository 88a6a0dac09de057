package responses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/adaptlearn/backend/internal/assessment"
	"github.com/adaptlearn/backend/internal/items"
	"github.com/adaptlearn/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := r.Context().Value("learner_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	itemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid item id"})
		return
	}

	var req models.SubmitAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.SelectedChoiceID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "selected_choice_id is required"})
		return
	}
	if req.ResponseTimeSeconds < 0 {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "response_time_seconds must be non-negative"})
		return
	}

	resp, err := h.service.SubmitAnswer(r.Context(), learnerID, itemID, req)
	if err != nil {
		switch {
		case errors.Is(err, items.ErrItemNotFound):
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Item not found"})
		case errors.Is(err, ErrAlreadyAnswered):
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Item already answered", Code: "already_answered"})
		default:
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answer"})
		}
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetAbility(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := r.Context().Value("learner_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	resp, err := h.service.GetAbility(learnerID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to compute ability"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) NextItem(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := r.Context().Value("learner_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	subject := models.Subject(r.URL.Query().Get("subject"))
	if !models.ValidSubjects[subject] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Valid subject query parameter is required"})
		return
	}

	resp, err := h.service.NextItem(learnerID, subject)
	if err != nil {
		if errors.Is(err, assessment.ErrNoItemAvailable) {
			writeJSON(w, http.StatusNotFound, models.ErrorResponse{
				Error: "No unanswered items available for this subject",
				Code:  "no_item_available",
			})
			return
		}
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to select next item"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetBlockages(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := r.Context().Value("learner_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	var subject *models.Subject
	if v := r.URL.Query().Get("subject"); v != "" {
		s := models.Subject(v)
		if !models.ValidSubjects[s] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
			return
		}
		subject = &s
	}

	report, err := h.service.AnalyzeBlockages(learnerID, subject)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to analyze blockages"})
		return
	}

	writeJSON(w, http.StatusOK, report)
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	learnerID, ok := r.Context().Value("learner_id").(int64)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Authentication required"})
		return
	}

	q := r.URL.Query()

	var subject *models.Subject
	if v := q.Get("subject"); v != "" {
		s := models.Subject(v)
		if !models.ValidSubjects[s] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid subject"})
			return
		}
		subject = &s
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	resp, err := h.service.GetHistory(learnerID, subject, page, pageSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch history"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
