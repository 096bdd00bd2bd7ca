package handler

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/model"
	"github.com/taskcore/task-tracker-api/internal/service"
	"github.com/taskcore/task-tracker-api/pkg/respond"
)

type ProjectHandler struct {
	service *service.ProjectService
	logger  *zap.Logger
}

func NewProjectHandler(srv *service.ProjectService, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{service: srv, logger: logger}
}

type createProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "empty request body", nil)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf("invalid json: %v", err), nil)
		return
	}

	project, err := h.service.Create(r.Context(), model.ProjectDraft{
		Name:        req.Name,
		Description: req.Description,
	}, actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/projects/%s", project.ID))
	respond.Success(w, r, http.StatusCreated, "Project created", project)
}

func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.service.List(r.Context(), actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if projects == nil {
		projects = []model.Project{}
	}
	respond.Success(w, r, http.StatusOK, "OK", projects)
}

func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.Success(w, r, http.StatusOK, "OK", project)
}

func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeProjectPatch(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid json", nil)
		return
	}

	project, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch, actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.Success(w, r, http.StatusOK, "Project updated", project)
}

func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actingUserID(r)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeProjectPatch(r *http.Request) (model.ProjectPatch, error) {
	if r.ContentLength == 0 {
		return model.ProjectPatch{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return model.ProjectPatch{}, err
	}

	var p model.ProjectPatch
	if v, ok := raw["name"]; ok {
		p.NameSet = true
		if !isJSONNull(v) {
			if err := json.Unmarshal(v, &p.Name); err != nil {
				return model.ProjectPatch{}, err
			}
		}
	}
	if v, ok := raw["description"]; ok {
		p.DescriptionSet = true
		if !isJSONNull(v) {
			if err := json.Unmarshal(v, &p.Description); err != nil {
				return model.ProjectPatch{}, err
			}
		}
	}
	return p, nil
}
