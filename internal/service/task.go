package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/taskcore/task-tracker-api/internal/model"
	"github.com/taskcore/task-tracker-api/internal/repo"
	"github.com/taskcore/task-tracker-api/internal/validation"
)

// TaskService orchestrates identity lookup, validation and the task store.
// The acting user is always an explicit argument; nothing is inferred from
// ambient state.
type TaskService struct {
	tasks repo.TaskRepository
	users repo.UserRepository
	now   func() time.Time
}

func NewTaskService(tasks repo.TaskRepository, users repo.UserRepository) *TaskService {
	return &TaskService{tasks: tasks, users: users, now: time.Now}
}

func (s *TaskService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *TaskService) Create(ctx context.Context, d model.TaskDraft, userID string) (model.Task, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return model.Task{}, err
	}
	if vs := validation.ValidateTaskCreate(d); len(vs) > 0 {
		return model.Task{}, newValidationError(vs)
	}

	now := s.now()
	t := model.Task{
		Title:     strings.TrimSpace(d.Title),
		Status:    model.StatusPending,
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d.Description != nil {
		if trimmed := strings.TrimSpace(*d.Description); trimmed != "" {
			t.Description = &trimmed
		}
	}
	if d.Status != nil {
		t.Status = model.TaskStatus(*d.Status)
	}
	if d.DueDate != nil {
		due, err := validation.ParseDate(*d.DueDate)
		if err != nil {
			// Unreachable after validation; kept so a bad caller cannot
			// store garbage.
			return model.Task{}, newValidationError([]validation.Violation{
				{Field: "dueDate", Code: "INVALID_DUE_DATE", Message: "due date must be a valid date"},
			})
		}
		t.DueDate = &due
	}

	return s.tasks.Create(ctx, t)
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.tasks.ListByCreator(ctx, userID)
}

// Get returns the task only to its owner. Existence is checked before
// ownership, so an unknown id is always ErrTaskNotFound.
func (s *TaskService) Get(ctx context.Context, taskID, userID string) (model.Task, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, err
	}
	if t.CreatedBy != userID {
		return model.Task{}, ErrAccessDenied
	}
	return t, nil
}

// Update applies the supplied fields to the stored record. Ownership is
// checked before field validation, so a non-owner never learns whether
// their payload was valid. The whole read-check-merge-write runs inside the
// store's atomic Update, so a concurrent patch of the same task cannot be
// lost.
func (s *TaskService) Update(ctx context.Context, taskID string, p model.TaskPatch, userID string) (model.Task, error) {
	updated, err := s.tasks.Update(ctx, taskID, func(t model.Task) (model.Task, error) {
		if t.CreatedBy != userID {
			return model.Task{}, ErrAccessDenied
		}
		if vs := validation.ValidateTaskUpdate(p); len(vs) > 0 {
			return model.Task{}, newValidationError(vs)
		}

		if p.Title != nil {
			t.Title = strings.TrimSpace(*p.Title)
		}
		if p.DescriptionSet {
			if p.Description == nil {
				t.Description = nil
			} else {
				trimmed := strings.TrimSpace(*p.Description)
				t.Description = &trimmed
			}
		}
		if p.Status != nil {
			t.Status = model.TaskStatus(*p.Status)
		}
		if p.DueDateSet {
			if p.DueDate == nil {
				t.DueDate = nil
			} else {
				due, err := validation.ParseDate(*p.DueDate)
				if err != nil {
					return model.Task{}, newValidationError([]validation.Violation{
						{Field: "dueDate", Code: "INVALID_DUE_DATE", Message: "due date must be a valid date"},
					})
				}
				t.DueDate = &due
			}
		}
		t.UpdatedAt = s.now()
		return t, nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Task{}, ErrTaskNotFound
		}
		return model.Task{}, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, taskID, userID string) error {
	if _, err := s.Get(ctx, taskID, userID); err != nil {
		return err
	}
	if err := s.tasks.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return ErrTaskNotFound
		}
		return err
	}
	return nil
}
