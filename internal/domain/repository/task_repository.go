package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"taskboard/internal/common"
	"taskboard/internal/domain/model"
	"taskboard/internal/platform/database"
)

type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	FindByCode(ctx context.Context, code string) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Search(ctx context.Context, query string) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, code string) error
}

var taskColumns = []string{"code", "name", "description", "created_at", "updated_at"}

type sqlTaskRepository struct {
	db *database.DB
}

func NewTaskRepository(db *database.DB) TaskRepository {
	return &sqlTaskRepository{db: db}
}

// Create inserts task. A duplicate code is rejected by the primary key and
// reported as common.ErrConflict.
func (r *sqlTaskRepository) Create(ctx context.Context, t *model.Task) error {
	query, args, err := r.db.Builder.
		Insert("tasks").
		Columns(taskColumns...).
		Values(t.Code, t.Name, t.Description, t.CreatedAt, t.UpdatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlTaskRepository.Create: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("task with code %q already exists: %w", t.Code, common.ErrConflict)
		}
		return fmt.Errorf("sqlTaskRepository.Create: %w", err)
	}
	return nil
}

func (r *sqlTaskRepository) FindByCode(ctx context.Context, code string) (*model.Task, error) {
	query, args, err := r.db.Builder.
		Select(taskColumns...).
		From("tasks").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("sqlTaskRepository.FindByCode: %w", err)
	}

	task := &model.Task{}
	if err := r.db.GetContext(ctx, task, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("task %q: %w", code, common.ErrNotFound)
		}
		return nil, fmt.Errorf("sqlTaskRepository.FindByCode: %w", err)
	}
	return task, nil
}

// List returns every task, newest first.
func (r *sqlTaskRepository) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := r.selectTasks(ctx, r.orderedSelect())
	if err != nil {
		return nil, fmt.Errorf("sqlTaskRepository.List: %w", err)
	}
	return tasks, nil
}

// Search returns tasks whose name or description contains query, ignoring
// case. An empty query matches every task.
func (r *sqlTaskRepository) Search(ctx context.Context, query string) ([]model.Task, error) {
	stmt := r.orderedSelect()
	if query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		stmt = stmt.Where(squirrel.Or{
			squirrel.Expr(`LOWER(name) LIKE ? ESCAPE '\'`, pattern),
			squirrel.Expr(`LOWER(description) LIKE ? ESCAPE '\'`, pattern),
		})
	}

	tasks, err := r.selectTasks(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("sqlTaskRepository.Search: %w", err)
	}
	return tasks, nil
}

// Update writes name, description and updated_at. Code and created_at are
// never touched.
func (r *sqlTaskRepository) Update(ctx context.Context, t *model.Task) error {
	query, args, err := r.db.Builder.
		Update("tasks").
		Set("name", t.Name).
		Set("description", t.Description).
		Set("updated_at", t.UpdatedAt).
		Where(squirrel.Eq{"code": t.Code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlTaskRepository.Update: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlTaskRepository.Update: %w", err)
	}
	return expectOneRow(res, t.Code)
}

func (r *sqlTaskRepository) Delete(ctx context.Context, code string) error {
	query, args, err := r.db.Builder.
		Delete("tasks").
		Where(squirrel.Eq{"code": code}).
		ToSql()
	if err != nil {
		return fmt.Errorf("sqlTaskRepository.Delete: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("sqlTaskRepository.Delete: %w", err)
	}
	return expectOneRow(res, code)
}

func (r *sqlTaskRepository) orderedSelect() squirrel.SelectBuilder {
	return r.db.Builder.
		Select(taskColumns...).
		From("tasks").
		OrderBy("created_at DESC", "code")
}

func (r *sqlTaskRepository) selectTasks(ctx context.Context, stmt squirrel.SelectBuilder) ([]model.Task, error) {
	query, args, err := stmt.ToSql()
	if err != nil {
		return nil, err
	}

	tasks := []model.Task{}
	if err := r.db.SelectContext(ctx, &tasks, query, args...); err != nil {
		return nil, err
	}
	return tasks, nil
}

func expectOneRow(res sql.Result, code string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("task %q: %w", code, common.ErrNotFound)
	}
	return nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
