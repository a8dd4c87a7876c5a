package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"academy-quiz-service/internal/app"
	"academy-quiz-service/internal/domain"
)

// APIHandler exposes the setup-time use cases over JSON: account access and
// quiz creation. The live session itself is driven over the websocket.
type APIHandler struct {
	service *app.QuizService
}

func NewAPIHandler(service *app.QuizService) *APIHandler {
	return &APIHandler{service: service}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type startQuizRequest struct {
	UserID     string `json:"userId"`
	Department string `json:"department"`
	Difficulty string `json:"difficulty"`
	TimeLimit  int    `json:"timeLimit"`
}

type sessionResponse struct {
	SessionID      string `json:"sessionId"`
	TotalQuestions int    `json:"totalQuestions"`
	TimeLimit      int    `json:"timeLimit"`
}

func (h *APIHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "missing username, email, or password", http.StatusBadRequest)
		return
	}
	user, err := h.service.Register(r.Context(), req.Username, req.Email, req.Password)
	if errors.Is(err, domain.ErrUserExists) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	if err != nil {
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *APIHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if errors.Is(err, domain.ErrAuthFailed) {
		http.Error(w, err.Error(), http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *APIHandler) StartQuiz(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.UserID == "" {
		http.Error(w, "missing userId", http.StatusBadRequest)
		return
	}
	session, err := h.service.StartQuiz(r.Context(), req.UserID, domain.QuizSettings{
		Department: req.Department,
		Difficulty: req.Difficulty,
		TimeLimit:  req.TimeLimit,
	})
	if errors.Is(err, domain.ErrContentNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if errors.Is(err, domain.ErrInvalidTimeLimit) {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, "failed to start quiz", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID:      session.ID(),
		TotalQuestions: len(session.Questions()),
		TimeLimit:      session.Settings().TimeLimit,
	})
}

func (h *APIHandler) Retake(w http.ResponseWriter, r *http.Request) {
	var req startQuizRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	session, err := h.service.Retake(r.Context(), req.UserID)
	if errors.Is(err, domain.ErrSessionNotFound) {
		http.Error(w, err.Error(), http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "failed to retake quiz", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, sessionResponse{
		SessionID:      session.ID(),
		TotalQuestions: len(session.Questions()),
		TimeLimit:      session.Settings().TimeLimit,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
