package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/runger/shifu/internal/practice"
	"github.com/runger/shifu/internal/recommend"
	"github.com/runger/shifu/internal/stats"
	"github.com/runger/shifu/internal/storage"
)

// usernameHeader identifies the practicing user. The value is an
// opaque identifier trusted as given.
const usernameHeader = "username"

// ErrorResponse is the error envelope returned on every failure.
type ErrorResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// RecordAttemptRequest is the request body for POST /api/v0/attempts.
type RecordAttemptRequest struct {
	Syllable  string `json:"syllable"`
	Correct   bool   `json:"correct"`
	Timestamp int64  `json:"timestamp,omitempty"` // unix ms; 0 = server clock
}

// RecordAttemptResponse acknowledges a recorded attempt.
type RecordAttemptResponse struct {
	Result  string `json:"result"`
	Message string `json:"message"`
}

// ListAttemptsResponse is the response for GET /api/v0/attempts.
type ListAttemptsResponse struct {
	Result   string                  `json:"result"`
	Count    int                     `json:"count"`
	Attempts []storage.AttemptRecord `json:"attempts"`
}

// RecommendationResponse is the response for GET /api/v0/recommendation.
type RecommendationResponse struct {
	Result         string                   `json:"result"`
	Stats          []stats.SyllableStat     `json:"stats"`
	Recommendation recommend.Recommendation `json:"recommendation"`
}

// HandleHello handles GET /api/v0/hello.
func (h *Handler) HandleHello(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"result": "你好"})
}

// HandleListAttempts handles GET /api/v0/attempts. It returns every
// record in the store without aggregation.
func (h *Handler) HandleListAttempts(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get(usernameHeader) == "" {
		h.writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	records, err := h.store.ListAllAttempts(r.Context())
	if err != nil {
		h.logger.Error("failed to list attempts", "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to retrieve attempt records")
		return
	}

	if records == nil {
		records = []storage.AttemptRecord{}
	}
	h.writeJSON(w, http.StatusOK, ListAttemptsResponse{
		Result:   "success",
		Count:    len(records),
		Attempts: records,
	})
}

// HandleRecordAttempt handles POST /api/v0/attempts. It requires a
// username header and a JSON body with the syllable and outcome.
// Returns 201 when a new record was created, 200 when an existing
// record was incremented.
func (h *Handler) HandleRecordAttempt(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		h.writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	var req RecordAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid JSON request body")
		return
	}

	var ts time.Time
	if req.Timestamp > 0 {
		ts = time.UnixMilli(req.Timestamp)
	}

	ack, err := h.service.RecordAttempt(r.Context(), username, req.Syllable, req.Correct, ts)
	if err != nil {
		if errors.Is(err, practice.ErrInvalidInput) {
			h.writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Error("failed to record attempt", "user_id", username, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to record attempt")
		return
	}

	status := http.StatusOK
	message := "attempt recorded"
	if ack.Created {
		status = http.StatusCreated
		message = "attempt record created"
	}
	h.writeJSON(w, status, RecordAttemptResponse{Result: "success", Message: message})
}

// HandleRecommendation handles GET /api/v0/recommendation. It
// aggregates the user's accuracy stats and asks the completion
// backend for the next syllable to practice.
func (h *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get(usernameHeader)
	if username == "" {
		h.writeError(w, http.StatusBadRequest, "username is required")
		return
	}

	history, err := h.aggregator.Collect(r.Context(), username)
	if err != nil {
		h.logger.Error("failed to aggregate stats", "user_id", username, "error", err)
		h.writeError(w, http.StatusInternalServerError, "failed to load practice stats")
		return
	}

	if history == nil {
		history = []stats.SyllableStat{}
	}

	rec, err := h.recommender.Recommend(r.Context(), history)
	if err != nil {
		h.logger.Error("recommendation failed", "user_id", username, "error", err)
		h.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	h.writeJSON(w, http.StatusOK, RecommendationResponse{
		Result:         "success",
		Stats:          history,
		Recommendation: *rec,
	})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to write response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, ErrorResponse{Result: "error", Message: message})
}
