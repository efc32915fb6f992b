package entity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TaskOpen = "open"
	TaskDone = "done"
)

// Task is a follow-up item created by the queue worker after an approval,
// reminding the assigned agent to call the customer.
type Task struct {
	ID         string    `json:"id"`
	LeadID     string    `json:"lead_id"`
	Title      string    `json:"title"`
	Details    string    `json:"details,omitempty"`
	AssignedTo string    `json:"assigned_to"`
	DueDate    time.Time `json:"due_date"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, t *Task) error
	List(ctx context.Context, assignedTo string) ([]*Task, error)
}

func NewFollowUpTask(leadID, leadName, assignedTo string, due time.Time) *Task {
	return &Task{
		ID:         uuid.New().String(),
		LeadID:     leadID,
		Title:      "Follow up with " + leadName,
		Details:    "Post-approval follow-up call",
		AssignedTo: assignedTo,
		DueDate:    due,
		Status:     TaskOpen,
		CreatedAt:  time.Now(),
	}
}
