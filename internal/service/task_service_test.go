package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskapi/internal/errors"
	"taskapi/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uint) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) List(ctx context.Context, offset, limit int) ([]model.Task, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByStatus(ctx context.Context, status model.TaskStatus, ownerID uint, offset, limit int) ([]model.Task, error) {
	args := m.Called(ctx, status, ownerID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

var (
	owner = &model.User{ID: 1, Username: "owner"}
	other = &model.User{ID: 2, Username: "other"}
)

func strPtr(s string) *string { return &s }

func statusPtr(s model.TaskStatus) *model.TaskStatus { return &s }

func TestTaskService_CreateTask(t *testing.T) {
	tests := []struct {
		name          string
		status        model.TaskStatus
		wantStatus    model.TaskStatus
		expectedError error
	}{
		{name: "explicit status", status: model.TaskStatusInProgress, wantStatus: model.TaskStatusInProgress},
		{name: "empty status defaults to New", status: "", wantStatus: model.TaskStatusNew},
		{name: "unknown status rejected", status: "Done", expectedError: errors.ErrInvalidStatus},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			if tt.expectedError == nil {
				mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			}

			service := NewTaskService(mockRepo, nil)
			task, err := service.CreateTask(context.Background(), owner, "Buy milk", "", tt.status)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantStatus, task.Status)
				assert.Equal(t, owner.ID, task.OwnerID)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_UpdateTask_Authorization(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:  "owner may update",
			actor: owner,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, Title: "Task", OwnerID: owner.ID}, nil)
				m.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)
			},
		},
		{
			name:  "non-owner is forbidden",
			actor: other,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, Title: "Task", OwnerID: owner.ID}, nil)
			},
			expectedError: errors.ErrNotTaskOwner,
		},
		{
			name:  "missing task reported before ownership",
			actor: other,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			task, err := service.UpdateTask(context.Background(), tt.actor, 10, TaskUpdate{Title: strPtr("Updated")})

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, task)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Updated", task.Title)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_UpdateTask_PartialFields(t *testing.T) {
	stored := &model.Task{
		ID:          10,
		Title:       "Buy milk",
		Description: "Two liters",
		Status:      model.TaskStatusNew,
		OwnerID:     owner.ID,
	}

	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(stored, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockRepo, nil)

	// absent title unchanged, present empty description clears the field
	task, err := service.UpdateTask(context.Background(), owner, 10, TaskUpdate{
		Description: strPtr(""),
		Status:      statusPtr(model.TaskStatusInProgress),
	})

	assert.NoError(t, err)
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, "", task.Description)
	assert.Equal(t, model.TaskStatusInProgress, task.Status)
}

func TestTaskService_UpdateTask_InvalidStatus(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, OwnerID: owner.ID}, nil)

	service := NewTaskService(mockRepo, nil)
	_, err := service.UpdateTask(context.Background(), owner, 10, TaskUpdate{Status: statusPtr("Done")})

	assert.Equal(t, errors.ErrInvalidStatus, err)
}

func TestTaskService_CompleteTask(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, Status: model.TaskStatusInProgress, OwnerID: owner.ID}, nil)
	mockRepo.On("Update", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

	service := NewTaskService(mockRepo, nil)
	task, err := service.CompleteTask(context.Background(), owner, 10)

	assert.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, task.Status)
}

func TestTaskService_CompleteTask_NonOwner(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, OwnerID: owner.ID}, nil)

	service := NewTaskService(mockRepo, nil)
	_, err := service.CompleteTask(context.Background(), other, 10)

	assert.Equal(t, errors.ErrNotTaskOwner, err)
}

func TestTaskService_DeleteTask(t *testing.T) {
	tests := []struct {
		name          string
		actor         *model.User
		setupMock     func(*MockTaskRepository)
		expectedError error
	}{
		{
			name:  "owner may delete",
			actor: owner,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, OwnerID: owner.ID}, nil)
				m.On("Delete", mock.Anything, uint(10)).Return(nil)
			},
		},
		{
			name:  "non-owner is forbidden",
			actor: other,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(&model.Task{ID: 10, OwnerID: owner.ID}, nil)
			},
			expectedError: errors.ErrNotTaskOwner,
		},
		{
			name:  "already deleted reports not found",
			actor: owner,
			setupMock: func(m *MockTaskRepository) {
				m.On("FindByID", mock.Anything, uint(10)).Return(nil, gorm.ErrRecordNotFound)
			},
			expectedError: errors.ErrTaskNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockTaskRepository)
			tt.setupMock(mockRepo)

			service := NewTaskService(mockRepo, nil)
			err := service.DeleteTask(context.Background(), tt.actor, 10)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
			} else {
				assert.NoError(t, err)
			}

			mockRepo.AssertExpectations(t)
		})
	}
}

func TestTaskService_FilterTasksByStatus(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByStatus", mock.Anything, model.TaskStatusNew, uint(0), 0, 10).Return([]model.Task{
		{ID: 1, Title: "Task 1", Status: model.TaskStatusNew, OwnerID: 1},
		{ID: 3, Title: "Task 3", Status: model.TaskStatusNew, OwnerID: 2},
	}, nil)

	service := NewTaskService(mockRepo, nil)
	tasks, err := service.FilterTasksByStatus(context.Background(), model.TaskStatusNew, 0, 0, 10)

	assert.NoError(t, err)
	assert.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, model.TaskStatusNew, task.Status)
	}
}

func TestTaskService_FilterTasksByStatus_Invalid(t *testing.T) {
	service := NewTaskService(new(MockTaskRepository), nil)
	_, err := service.FilterTasksByStatus(context.Background(), "Done", 0, 0, 10)

	assert.Equal(t, errors.ErrInvalidStatus, err)
}

func TestTaskService_GetTask_NotFound(t *testing.T) {
	mockRepo := new(MockTaskRepository)
	mockRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewTaskService(mockRepo, nil)
	_, err := service.GetTask(context.Background(), 99)

	assert.Equal(t, errors.ErrTaskNotFound, err)
}
