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

// ProjectService is the structural sibling of TaskService: same ownership
// protocol, minus status and due-date handling.
type ProjectService struct {
	projects repo.ProjectRepository
	users    repo.UserRepository
	now      func() time.Time
}

func NewProjectService(projects repo.ProjectRepository, users repo.UserRepository) *ProjectService {
	return &ProjectService{projects: projects, users: users, now: time.Now}
}

func (s *ProjectService) requireUser(ctx context.Context, userID string) error {
	if _, err := s.users.FindByID(ctx, userID); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

func (s *ProjectService) Create(ctx context.Context, d model.ProjectDraft, userID string) (model.Project, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return model.Project{}, err
	}
	if vs := validation.ValidateProjectCreate(d); len(vs) > 0 {
		return model.Project{}, newValidationError(vs)
	}

	now := s.now()
	p := model.Project{
		Name:      strings.TrimSpace(d.Name),
		CreatedBy: userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if d.Description != nil {
		p.Description = strings.TrimSpace(*d.Description)
	}

	return s.projects.Create(ctx, p)
}

func (s *ProjectService) List(ctx context.Context, userID string) ([]model.Project, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.projects.ListByCreator(ctx, userID)
}

func (s *ProjectService) Get(ctx context.Context, projectID, userID string) (model.Project, error) {
	p, err := s.projects.Get(ctx, projectID)
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Project{}, ErrProjectNotFound
		}
		return model.Project{}, err
	}
	if p.CreatedBy != userID {
		return model.Project{}, ErrAccessDenied
	}
	return p, nil
}

// Update merges the patch inside the store's atomic Update, same protocol as
// tasks: existence first, then ownership, then validation.
func (s *ProjectService) Update(ctx context.Context, projectID string, patch model.ProjectPatch, userID string) (model.Project, error) {
	updated, err := s.projects.Update(ctx, projectID, func(p model.Project) (model.Project, error) {
		if p.CreatedBy != userID {
			return model.Project{}, ErrAccessDenied
		}
		if vs := validation.ValidateProjectUpdate(patch); len(vs) > 0 {
			return model.Project{}, newValidationError(vs)
		}

		if patch.Name != nil {
			p.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.DescriptionSet {
			if patch.Description == nil {
				p.Description = ""
			} else {
				p.Description = strings.TrimSpace(*patch.Description)
			}
		}
		p.UpdatedAt = s.now()
		return p, nil
	})
	if err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return model.Project{}, ErrProjectNotFound
		}
		return model.Project{}, err
	}
	return updated, nil
}

func (s *ProjectService) Delete(ctx context.Context, projectID, userID string) error {
	if _, err := s.Get(ctx, projectID, userID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, projectID); err != nil {
		if errors.Is(err, repo.ErrorNotFound) {
			return ErrProjectNotFound
		}
		return err
	}
	return nil
}
