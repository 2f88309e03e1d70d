package repository

import (
	"context"

	"gorm.io/gorm"

	"taskapi/internal/model"
)

// TaskRepository defines task persistence operations. Each write touches a
// single record; atomicity is the database's.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context, offset, limit int) ([]model.Task, error)
	ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Task, error)
	ListByStatus(ctx context.Context, status model.TaskStatus, ownerID uint, offset, limit int) ([]model.Task, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository builds a GORM-backed repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *taskRepository) Update(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

func (r *taskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Task{}, id).Error
}

func (r *taskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).First(&task, id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *taskRepository) List(ctx context.Context, offset, limit int) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// ListByStatus filters tasks by status; a non-zero ownerID narrows the
// result to that owner's tasks.
func (r *taskRepository) ListByStatus(ctx context.Context, status model.TaskStatus, ownerID uint, offset, limit int) ([]model.Task, error) {
	query := r.db.WithContext(ctx).Where("status = ?", status)
	if ownerID != 0 {
		query = query.Where("owner_id = ?", ownerID)
	}

	var tasks []model.Task
	if err := query.Offset(offset).Limit(limit).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}
