package items

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/adaptlearn/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req models.CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	item, err := h.service.CreateItem(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusCreated, item)
}

func (h *Handler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid item id"})
		return
	}

	item, err := h.service.GetItem(itemID)
	if err == ErrItemNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Item not found"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to fetch item"})
		return
	}

	writeJSON(w, http.StatusOK, item)
}

func (h *Handler) ListItems(w http.ResponseWriter, r *http.Request) {
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

	var difficulty *models.Difficulty
	if v := q.Get("difficulty"); v != "" {
		d := models.Difficulty(v)
		if !models.ValidDifficulties[d] {
			writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid difficulty"})
			return
		}
		difficulty = &d
	}

	page, _ := strconv.Atoi(q.Get("page"))
	pageSize, _ := strconv.Atoi(q.Get("page_size"))

	resp, err := h.service.ListItems(subject, difficulty, page, pageSize)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to list items"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
