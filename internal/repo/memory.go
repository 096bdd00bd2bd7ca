package repo

import (
	"context"
	"sync"
	"time"

	"github.com/taskcore/task-tracker-api/internal/model"
)

// MemoryTaskRepo is the volatile reference store. Durable backends implement
// the same port (see postgres.go).
type MemoryTaskRepo struct {
	col *Collection[model.Task]
}

func NewMemoryTaskRepo() *MemoryTaskRepo {
	return &MemoryTaskRepo{col: NewCollection[model.Task]()}
}

func (r *MemoryTaskRepo) Create(_ context.Context, t model.Task) (model.Task, error) {
	t.ID = r.col.NextID()
	r.col.Insert(t.ID, t)
	return t, nil
}

func (r *MemoryTaskRepo) Get(_ context.Context, id string) (model.Task, error) {
	t, ok := r.col.FindByID(id)
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	return t, nil
}

func (r *MemoryTaskRepo) ListByCreator(_ context.Context, userID string) ([]model.Task, error) {
	return r.col.Find(func(t model.Task) bool { return t.CreatedBy == userID }), nil
}

func (r *MemoryTaskRepo) ListDueBefore(_ context.Context, deadline time.Time) ([]model.Task, error) {
	return r.col.Find(func(t model.Task) bool {
		return t.DueDate != nil && t.DueDate.Before(deadline) && t.Status != model.StatusCompleted
	}), nil
}

func (r *MemoryTaskRepo) Update(_ context.Context, id string, mutate func(model.Task) (model.Task, error)) (model.Task, error) {
	t, ok, err := r.col.Mutate(id, mutate)
	if !ok {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

func (r *MemoryTaskRepo) Delete(_ context.Context, id string) error {
	if !r.col.Remove(id) {
		return ErrorNotFound
	}
	return nil
}

type MemoryProjectRepo struct {
	col *Collection[model.Project]
}

func NewMemoryProjectRepo() *MemoryProjectRepo {
	return &MemoryProjectRepo{col: NewCollection[model.Project]()}
}

func (r *MemoryProjectRepo) Create(_ context.Context, p model.Project) (model.Project, error) {
	p.ID = r.col.NextID()
	r.col.Insert(p.ID, p)
	return p, nil
}

func (r *MemoryProjectRepo) Get(_ context.Context, id string) (model.Project, error) {
	p, ok := r.col.FindByID(id)
	if !ok {
		return model.Project{}, ErrorNotFound
	}
	return p, nil
}

func (r *MemoryProjectRepo) ListByCreator(_ context.Context, userID string) ([]model.Project, error) {
	return r.col.Find(func(p model.Project) bool { return p.CreatedBy == userID }), nil
}

func (r *MemoryProjectRepo) Update(_ context.Context, id string, mutate func(model.Project) (model.Project, error)) (model.Project, error) {
	p, ok, err := r.col.Mutate(id, mutate)
	if !ok {
		return model.Project{}, ErrorNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	return p, nil
}

func (r *MemoryProjectRepo) Delete(_ context.Context, id string) error {
	if !r.col.Remove(id) {
		return ErrorNotFound
	}
	return nil
}

type MemoryUserRepo struct {
	// mu makes the uniqueness check and the insert one critical section, the
	// in-memory counterpart of the unique index the durable store relies on.
	mu  sync.Mutex
	col *Collection[model.User]
}

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{col: NewCollection[model.User]()}
}

func (r *MemoryUserRepo) Create(_ context.Context, u model.User) (model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	taken := r.col.Find(func(existing model.User) bool { return existing.Username == u.Username })
	if len(taken) > 0 {
		return model.User{}, ErrorConflict
	}
	u.ID = r.col.NextID()
	r.col.Insert(u.ID, u)
	return u, nil
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id string) (model.User, error) {
	u, ok := r.col.FindByID(id)
	if !ok {
		return model.User{}, ErrorNotFound
	}
	return u, nil
}

func (r *MemoryUserRepo) FindByUsername(_ context.Context, username string) (model.User, error) {
	matches := r.col.Find(func(u model.User) bool { return u.Username == username })
	if len(matches) == 0 {
		return model.User{}, ErrorNotFound
	}
	return matches[0], nil
}
