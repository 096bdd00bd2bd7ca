package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/model"
	"github.com/taskcore/task-tracker-api/internal/service"
	"github.com/taskcore/task-tracker-api/pkg/respond"
)

type AuthHandler struct {
	service *service.AuthService
	logger  *zap.Logger
}

func NewAuthHandler(srv *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{service: srv, logger: logger}
}

type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

type loginResponse struct {
	Token string           `json:"token"`
	User  model.PublicUser `json:"user"`
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf("invalid json: %v", err), nil)
		return
	}

	user, err := h.service.Register(r.Context(), req.Username, req.Password, req.Role)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.Success(w, r, http.StatusCreated, "User registered", user)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf("invalid json: %v", err), nil)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.Success(w, r, http.StatusOK, "Logged in", loginResponse{Token: token, User: user})
}
