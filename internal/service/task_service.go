package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"taskapi/internal/cache"
	"taskapi/internal/errors"
	"taskapi/internal/model"
	"taskapi/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskUpdate carries the replacement fields for a task update. A nil field
// was absent from the payload and leaves the stored value unchanged; a
// non-nil field is applied even when it holds the zero value.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *model.TaskStatus
}

// TaskService exposes task operations. Mutations are owner-restricted;
// reads are open to any authenticated user.
type TaskService interface {
	CreateTask(ctx context.Context, owner *model.User, title, description string, status model.TaskStatus) (*model.Task, error)
	GetTask(ctx context.Context, id uint) (*model.Task, error)
	ListTasks(ctx context.Context, offset, limit int) ([]model.Task, error)
	ListUserTasks(ctx context.Context, ownerID uint, offset, limit int) ([]model.Task, error)
	FilterTasksByStatus(ctx context.Context, status model.TaskStatus, ownerID uint, offset, limit int) ([]model.Task, error)
	UpdateTask(ctx context.Context, actor *model.User, id uint, update TaskUpdate) (*model.Task, error)
	CompleteTask(ctx context.Context, actor *model.User, id uint) (*model.Task, error)
	DeleteTask(ctx context.Context, actor *model.User, id uint) error
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{
		repo:  repo,
		cache: cache,
	}
}

func (s *taskService) cacheKey(id uint) string {
	return fmt.Sprintf("task:%d", id)
}

// CreateTask creates a task owned by the calling user. An empty status
// defaults to New.
func (s *taskService) CreateTask(ctx context.Context, owner *model.User, title, description string, status model.TaskStatus) (*model.Task, error) {
	if status == "" {
		status = model.TaskStatusNew
	}
	if !status.Valid() {
		return nil, errors.ErrInvalidStatus
	}

	task := &model.Task{
		Title:       title,
		Description: description,
		Status:      status,
		OwnerID:     owner.ID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// GetTask retrieves a task by ID with caching.
func (s *taskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, taskCacheTTL)
	}
	return task, nil
}

func (s *taskService) ListTasks(ctx context.Context, offset, limit int) ([]model.Task, error) {
	return s.repo.List(ctx, offset, limit)
}

func (s *taskService) ListUserTasks(ctx context.Context, ownerID uint, offset, limit int) ([]model.Task, error) {
	return s.repo.ListByOwner(ctx, ownerID, offset, limit)
}

// FilterTasksByStatus returns tasks in the given status regardless of owner;
// a non-zero ownerID narrows to one owner.
func (s *taskService) FilterTasksByStatus(ctx context.Context, status model.TaskStatus, ownerID uint, offset, limit int) ([]model.Task, error) {
	if !status.Valid() {
		return nil, errors.ErrInvalidStatus
	}
	return s.repo.ListByStatus(ctx, status, ownerID, offset, limit)
}

// UpdateTask applies a partial update to a task owned by actor.
func (s *taskService) UpdateTask(ctx context.Context, actor *model.User, id uint, update TaskUpdate) (*model.Task, error) {
	task, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if update.Title != nil {
		task.Title = *update.Title
	}
	if update.Description != nil {
		task.Description = *update.Description
	}
	if update.Status != nil {
		if !update.Status.Valid() {
			return nil, errors.ErrInvalidStatus
		}
		task.Status = *update.Status
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return task, nil
}

// CompleteTask transitions a task owned by actor to Completed.
func (s *taskService) CompleteTask(ctx context.Context, actor *model.User, id uint) (*model.Task, error) {
	task, err := s.loadOwned(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	task.Status = model.TaskStatusCompleted
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return task, nil
}

// DeleteTask removes a task owned by actor. Deleting an already deleted
// task reports not found.
func (s *taskService) DeleteTask(ctx context.Context, actor *model.User, id uint) error {
	if _, err := s.loadOwned(ctx, actor, id); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return nil
}

// loadOwned fetches a task for mutation. Existence is checked before
// ownership: a non-owner probing a missing ID sees not found, not forbidden.
func (s *taskService) loadOwned(ctx context.Context, actor *model.User, id uint) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, err
	}

	if task.OwnerID != actor.ID {
		return nil, errors.ErrNotTaskOwner
	}

	return task, nil
}
