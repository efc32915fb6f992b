package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/justtry/crm/internal/entity"
)

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) List(ctx context.Context, assignedTo string) ([]*entity.Task, error) {
	args := m.Called(ctx, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Task), args.Error(1)
}

func TestWorkerHandleCreatesFollowUpTask(t *testing.T) {
	var created *entity.Task
	mockTasks := new(MockTaskRepository)
	mockTasks.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Task)
	}).Return(nil)

	w := NewWorker(nil, mockTasks)

	err := w.handle(context.Background(), FollowUpPayload{
		LeadID:     "lead-1",
		LeadName:   "Ravi Kumar",
		AssignedTo: "user-sales",
		Status:     "Approved",
	})

	assert.NoError(t, err)
	assert.Equal(t, "lead-1", created.LeadID)
	assert.Equal(t, "user-sales", created.AssignedTo)
	assert.Equal(t, entity.TaskOpen, created.Status)
	assert.Contains(t, created.Title, "Ravi Kumar")
	assert.WithinDuration(t, time.Now().Add(followUpDue), created.DueDate, time.Minute)
}

func TestWorkerHandleDefaultsAssigneeToSystem(t *testing.T) {
	var created *entity.Task
	mockTasks := new(MockTaskRepository)
	mockTasks.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entity.Task)
	}).Return(nil)

	w := NewWorker(nil, mockTasks)

	err := w.handle(context.Background(), FollowUpPayload{LeadID: "lead-2", LeadName: "Asha"})

	assert.NoError(t, err)
	assert.Equal(t, entity.SystemUserID, created.AssignedTo)
}
