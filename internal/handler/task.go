package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/taskcore/task-tracker-api/internal/model"
	"github.com/taskcore/task-tracker-api/internal/service"
	"github.com/taskcore/task-tracker-api/pkg/respond"
)

type TaskHandler struct {
	service *service.TaskService
	logger  *zap.Logger
}

func NewTaskHandler(srv *service.TaskService, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: srv, logger: logger}
}

type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	DueDate     *string `json:"dueDate"`
}

func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.ContentLength == 0 {
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "empty request body", nil)
		return
	}

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.Error("failed to decode json", zap.Error(err))
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", fmt.Sprintf("invalid json: %v", err), nil)
		return
	}

	task, err := h.service.Create(r.Context(), model.TaskDraft{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		DueDate:     req.DueDate,
	}, actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/api/tasks/%s", task.ID))
	respond.Success(w, r, http.StatusCreated, "Task created", task)
}

func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.service.List(r.Context(), actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if tasks == nil {
		tasks = []model.Task{}
	}
	respond.Success(w, r, http.StatusOK, "OK", tasks)
}

func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	task, err := h.service.Get(r.Context(), chi.URLParam(r, "id"), actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.Success(w, r, http.StatusOK, "OK", task)
}

func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	patch, err := decodeTaskPatch(r)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "BAD_REQUEST", "invalid json", nil)
		return
	}

	task, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), patch, actingUserID(r))
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	respond.Success(w, r, http.StatusOK, "Task updated", task)
}

func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), chi.URLParam(r, "id"), actingUserID(r)); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decodeTaskPatch builds an explicit patch from the raw body so that an
// absent field, an explicit null and a set value stay distinguishable.
// {} and an empty body are both a legal empty patch. A null title or status
// is carried into the patch rather than rejected here, so the service can
// run its existence and ownership checks before judging the payload.
func decodeTaskPatch(r *http.Request) (model.TaskPatch, error) {
	if r.ContentLength == 0 {
		return model.TaskPatch{}, nil
	}
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		return model.TaskPatch{}, err
	}

	var p model.TaskPatch
	if v, ok := raw["title"]; ok {
		p.TitleSet = true
		if !isJSONNull(v) {
			if err := json.Unmarshal(v, &p.Title); err != nil {
				return model.TaskPatch{}, err
			}
		}
	}
	if v, ok := raw["description"]; ok {
		p.DescriptionSet = true
		if !isJSONNull(v) {
			if err := json.Unmarshal(v, &p.Description); err != nil {
				return model.TaskPatch{}, err
			}
		}
	}
	if v, ok := raw["status"]; ok {
		p.StatusSet = true
		if !isJSONNull(v) {
			if err := json.Unmarshal(v, &p.Status); err != nil {
				return model.TaskPatch{}, err
			}
		}
	}
	if v, ok := raw["dueDate"]; ok {
		p.DueDateSet = true
		if !isJSONNull(v) {
			if err := json.Unmarshal(v, &p.DueDate); err != nil {
				return model.TaskPatch{}, err
			}
		}
	}
	return p, nil
}

func isJSONNull(value json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(value), []byte("null"))
}
