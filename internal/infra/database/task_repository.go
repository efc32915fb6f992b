package database

import (
	"context"
	"database/sql"

	"github.com/justtry/crm/internal/entity"
)

type TaskRepository struct {
	DB *sql.DB
}

func NewTaskRepository(db *sql.DB) *TaskRepository {
	return &TaskRepository{DB: db}
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	query := `
		INSERT INTO tasks (id, lead_id, title, details, assigned_to, due_date, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.DB.ExecContext(ctx, query,
		t.ID, t.LeadID, t.Title, t.Details, t.AssignedTo, t.DueDate, t.Status, t.CreatedAt,
	)
	return err
}

func (r *TaskRepository) List(ctx context.Context, assignedTo string) ([]*entity.Task, error) {
	query := `SELECT id, lead_id, title, details, assigned_to, due_date, status, created_at FROM tasks`
	var args []interface{}
	if assignedTo != "" {
		query += ` WHERE assigned_to = $1`
		args = append(args, assignedTo)
	}
	query += ` ORDER BY due_date`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tasks []*entity.Task
	for rows.Next() {
		var t entity.Task
		if err := rows.Scan(&t.ID, &t.LeadID, &t.Title, &t.Details, &t.AssignedTo, &t.DueDate, &t.Status, &t.CreatedAt); err != nil {
			return nil, err
		}
		tasks = append(tasks, &t)
	}
	return tasks, rows.Err()
}
