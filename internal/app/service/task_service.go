package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"taskboard/internal/app/events"
	"taskboard/internal/domain/model"
	"taskboard/internal/domain/repository"
)

// TaskService is the single task capability shared by the JSON API and the
// HTML web views.
type TaskService struct {
	taskRepo  repository.TaskRepository
	publisher events.Publisher
	logger    zerolog.Logger
	now       func() time.Time
}

func NewTaskService(taskRepo repository.TaskRepository, publisher events.Publisher, logger zerolog.Logger) *TaskService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &TaskService{
		taskRepo:  taskRepo,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns all tasks, newest first.
func (s *TaskService) List(ctx context.Context) ([]model.Task, error) {
	tasks, err := s.taskRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, code string) (*model.Task, error) {
	return s.taskRepo.FindByCode(ctx, code)
}

// Search matches q against name and description without regard to case.
func (s *TaskService) Search(ctx context.Context, q string) ([]model.Task, error) {
	tasks, err := s.taskRepo.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to search tasks: %w", err)
	}
	return tasks, nil
}

func (s *TaskService) Create(ctx context.Context, actor string, in TaskInput) (*model.Task, error) {
	in = in.normalize()
	if err := in.validateCreate(); err != nil {
		return nil, err
	}

	now := s.timestamp()
	task := &model.Task{
		Code:      *in.Code,
		Name:      *in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.Description != nil {
		task.Description = *in.Description
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Info().
		Str("code", task.Code).
		Str("actor", actor).
		Msg("created task")
	s.publish(ctx, model.TaskCreated, task.Code, actor, now)
	return task, nil
}

// Update applies name and description to the task identified by code. Any
// code in the input is ignored. With partial set, absent fields keep their
// stored values; otherwise name is required.
func (s *TaskService) Update(ctx context.Context, actor, code string, in TaskInput, partial bool) (*model.Task, error) {
	task, err := s.taskRepo.FindByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	in = in.normalize()
	if err := in.validateUpdate(partial); err != nil {
		return nil, err
	}

	if in.Name != nil {
		task.Name = *in.Name
	}
	if in.Description != nil {
		task.Description = *in.Description
	}

	// updated_at must move forward even when the clock has not.
	now := s.timestamp()
	if !now.After(task.UpdatedAt) {
		now = task.UpdatedAt.Add(time.Microsecond)
	}
	task.UpdatedAt = now

	if err := s.taskRepo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}

	s.logger.Info().
		Str("code", task.Code).
		Str("actor", actor).
		Msg("updated task")
	s.publish(ctx, model.TaskUpdated, task.Code, actor, now)
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, actor, code string) error {
	if err := s.taskRepo.Delete(ctx, code); err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Info().
		Str("code", code).
		Str("actor", actor).
		Msg("deleted task")
	s.publish(ctx, model.TaskDeleted, code, actor, s.timestamp())
	return nil
}

func (s *TaskService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Microsecond)
}

// publish never fails the caller: the store change is already committed.
func (s *TaskService) publish(ctx context.Context, typ model.TaskEventType, code, actor string, at time.Time) {
	event := model.TaskEvent{Type: typ, Code: code, Actor: actor, OccurredAt: at}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Warn().
			Err(err).
			Str("code", code).
			Str("event", string(typ)).
			Msg("failed to publish task event")
	}
}
