package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/justtry/crm/internal/entity"
)

type UserRepository struct {
	DB *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{DB: db}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	query := `
		INSERT INTO users (id, name, email, role, avatar, service_types, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.DB.ExecContext(ctx, query,
		u.ID, u.Name, u.Email, string(u.Role), u.Avatar,
		pq.Array(serviceTypeStrings(u.ServiceTypes)), u.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return err
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg interface{}) (*entity.User, error) {
	query := `SELECT id, name, email, role, avatar, service_types, created_at FROM users ` + where

	var u entity.User
	var role string
	var serviceTypes pq.StringArray

	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&u.ID, &u.Name, &u.Email, &role, &u.Avatar, &serviceTypes, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, entity.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	u.Role = entity.Role(role)
	for _, s := range serviceTypes {
		u.ServiceTypes = append(u.ServiceTypes, entity.ServiceType(s))
	}
	return &u, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*entity.User, error) {
	query := `SELECT id, name, email, role, avatar, service_types, created_at FROM users ORDER BY created_at`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*entity.User
	for rows.Next() {
		var u entity.User
		var role string
		var serviceTypes pq.StringArray
		if err := rows.Scan(&u.ID, &u.Name, &u.Email, &role, &u.Avatar, &serviceTypes, &u.CreatedAt); err != nil {
			return nil, err
		}
		u.Role = entity.Role(role)
		for _, s := range serviceTypes {
			u.ServiceTypes = append(u.ServiceTypes, entity.ServiceType(s))
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

func serviceTypeStrings(types []entity.ServiceType) []string {
	out := make([]string, len(types))
	for i, t := range types {
		out[i] = string(t)
	}
	return out
}
