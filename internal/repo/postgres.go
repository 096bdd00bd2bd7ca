package repo

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskcore/task-tracker-api/internal/model"
)

// PostgresTaskRepo is the durable variant of the task store. Ids come from a
// BIGSERIAL sequence and are normalized to strings at this boundary.
type PostgresTaskRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresTaskRepo(pool *pgxpool.Pool) *PostgresTaskRepo {
	return &PostgresTaskRepo{pool: pool}
}

func parseID(id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		// Ids this store never minted cannot match a row.
		return 0, ErrorNotFound
	}
	return n, nil
}

func (r *PostgresTaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, due_date, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`, t.Title, t.Description, t.Status, t.DueDate, t.CreatedBy, t.CreatedAt, t.UpdatedAt).Scan(&id)
	if err != nil {
		return model.Task{}, err
	}
	t.ID = strconv.FormatInt(id, 10)
	return t, nil
}

func (r *PostgresTaskRepo) Get(ctx context.Context, id string) (model.Task, error) {
	n, err := parseID(id)
	if err != nil {
		return model.Task{}, err
	}
	var t model.Task
	err = r.pool.QueryRow(ctx, `
		SELECT title, description, status, due_date, created_by, created_at, updated_at
		FROM tasks
		WHERE id = $1
	`, n).Scan(&t.Title, &t.Description, &t.Status, &t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	t.ID = id
	return t, nil
}

func scanTasks(rows pgx.Rows) ([]model.Task, error) {
	defer rows.Close()
	var tasks []model.Task
	for rows.Next() {
		var (
			t  model.Task
			id int64
		)
		if err := rows.Scan(&id, &t.Title, &t.Description, &t.Status, &t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, err
		}
		t.ID = strconv.FormatInt(id, 10)
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *PostgresTaskRepo) ListByCreator(ctx context.Context, userID string) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, status, due_date, created_by, created_at, updated_at
		FROM tasks
		WHERE created_by = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

func (r *PostgresTaskRepo) ListDueBefore(ctx context.Context, deadline time.Time) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, status, due_date, created_by, created_at, updated_at
		FROM tasks
		WHERE due_date IS NOT NULL AND due_date < $1 AND status <> 'completed'
		ORDER BY id
	`, deadline)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows)
}

// Update locks the row for the duration of the read-modify-write, so two
// concurrent mutations of the same task serialize instead of clobbering each
// other's columns.
func (r *PostgresTaskRepo) Update(ctx context.Context, id string, mutate func(model.Task) (model.Task, error)) (model.Task, error) {
	n, err := parseID(id)
	if err != nil {
		return model.Task{}, err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Task{}, err
	}
	defer tx.Rollback(ctx)

	var t model.Task
	err = tx.QueryRow(ctx, `
		SELECT title, description, status, due_date, created_by, created_at, updated_at
		FROM tasks
		WHERE id = $1
		FOR UPDATE
	`, n).Scan(&t.Title, &t.Description, &t.Status, &t.DueDate, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Task{}, ErrorNotFound
	}
	if err != nil {
		return model.Task{}, err
	}
	t.ID = id

	updated, err := mutate(t)
	if err != nil {
		return model.Task{}, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, due_date = $5, updated_at = $6
		WHERE id = $1
	`, n, updated.Title, updated.Description, updated.Status, updated.DueDate, updated.UpdatedAt); err != nil {
		return model.Task{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Task{}, err
	}
	return updated, nil
}

func (r *PostgresTaskRepo) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", n)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

type PostgresProjectRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresProjectRepo(pool *pgxpool.Pool) *PostgresProjectRepo {
	return &PostgresProjectRepo{pool: pool}
}

func (r *PostgresProjectRepo) Create(ctx context.Context, p model.Project) (model.Project, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO projects (name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`, p.Name, p.Description, p.CreatedBy, p.CreatedAt, p.UpdatedAt).Scan(&id)
	if err != nil {
		return model.Project{}, err
	}
	p.ID = strconv.FormatInt(id, 10)
	return p, nil
}

func (r *PostgresProjectRepo) Get(ctx context.Context, id string) (model.Project, error) {
	n, err := parseID(id)
	if err != nil {
		return model.Project{}, err
	}
	var p model.Project
	err = r.pool.QueryRow(ctx, `
		SELECT name, description, created_by, created_at, updated_at
		FROM projects
		WHERE id = $1
	`, n).Scan(&p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Project{}, ErrorNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	p.ID = id
	return p, nil
}

func (r *PostgresProjectRepo) ListByCreator(ctx context.Context, userID string) ([]model.Project, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, description, created_by, created_at, updated_at
		FROM projects
		WHERE created_by = $1
		ORDER BY id
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var projects []model.Project
	for rows.Next() {
		var (
			p  model.Project
			id int64
		)
		if err := rows.Scan(&id, &p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.ID = strconv.FormatInt(id, 10)
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (r *PostgresProjectRepo) Update(ctx context.Context, id string, mutate func(model.Project) (model.Project, error)) (model.Project, error) {
	n, err := parseID(id)
	if err != nil {
		return model.Project{}, err
	}
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return model.Project{}, err
	}
	defer tx.Rollback(ctx)

	var p model.Project
	err = tx.QueryRow(ctx, `
		SELECT name, description, created_by, created_at, updated_at
		FROM projects
		WHERE id = $1
		FOR UPDATE
	`, n).Scan(&p.Name, &p.Description, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err == pgx.ErrNoRows {
		return model.Project{}, ErrorNotFound
	}
	if err != nil {
		return model.Project{}, err
	}
	p.ID = id

	updated, err := mutate(p)
	if err != nil {
		return model.Project{}, err
	}
	if _, err := tx.Exec(ctx, `
		UPDATE projects
		SET name = $2, description = $3, updated_at = $4
		WHERE id = $1
	`, n, updated.Name, updated.Description, updated.UpdatedAt); err != nil {
		return model.Project{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return model.Project{}, err
	}
	return updated, nil
}

func (r *PostgresProjectRepo) Delete(ctx context.Context, id string) error {
	n, err := parseID(id)
	if err != nil {
		return err
	}
	cmd, err := r.pool.Exec(ctx, "DELETE FROM projects WHERE id = $1", n)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

type PostgresUserRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresUserRepo(pool *pgxpool.Pool) *PostgresUserRepo {
	return &PostgresUserRepo{pool: pool}
}

func (r *PostgresUserRepo) Create(ctx context.Context, u model.User) (model.User, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (username, role, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id
	`, u.Username, u.Role, u.PasswordHash).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.User{}, ErrorConflict
		}
		return model.User{}, err
	}
	u.ID = strconv.FormatInt(id, 10)
	return u, nil
}

func (r *PostgresUserRepo) FindByID(ctx context.Context, id string) (model.User, error) {
	n, err := parseID(id)
	if err != nil {
		return model.User{}, err
	}
	var u model.User
	err = r.pool.QueryRow(ctx, `
		SELECT username, role, password_hash FROM users WHERE id = $1
	`, n).Scan(&u.Username, &u.Role, &u.PasswordHash)
	if err == pgx.ErrNoRows {
		return model.User{}, ErrorNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.ID = id
	return u, nil
}

func (r *PostgresUserRepo) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var (
		u  model.User
		id int64
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, username, role, password_hash FROM users WHERE username = $1
	`, username).Scan(&id, &u.Username, &u.Role, &u.PasswordHash)
	if err == pgx.ErrNoRows {
		return model.User{}, ErrorNotFound
	}
	if err != nil {
		return model.User{}, err
	}
	u.ID = strconv.FormatInt(id, 10)
	return u, nil
}
