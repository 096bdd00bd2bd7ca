package repo

import (
	"context"
	"time"

	"github.com/taskcore/task-tracker-api/internal/model"
)

// TaskRepository is the storage port for tasks. Create assigns the next
// sequence id. Update runs mutate against the current record and stores the
// result as one atomic step: the record cannot change between the read and
// the write, and an error from mutate aborts the write and is returned
// unchanged.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id string) (model.Task, error)
	ListByCreator(ctx context.Context, userID string) ([]model.Task, error)
	ListDueBefore(ctx context.Context, deadline time.Time) ([]model.Task, error)
	Update(ctx context.Context, id string, mutate func(model.Task) (model.Task, error)) (model.Task, error)
	Delete(ctx context.Context, id string) error
}

type ProjectRepository interface {
	Create(ctx context.Context, p model.Project) (model.Project, error)
	Get(ctx context.Context, id string) (model.Project, error)
	ListByCreator(ctx context.Context, userID string) ([]model.Project, error)
	Update(ctx context.Context, id string, mutate func(model.Project) (model.Project, error)) (model.Project, error)
	Delete(ctx context.Context, id string) error
}

type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
}
