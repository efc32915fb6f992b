package entity

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleSales      Role = "sales"
	RoleBackOffice Role = "back-office"
	RoleAdmin      Role = "admin"
)

func (r Role) Valid() bool {
	return r == RoleSales || r == RoleBackOffice || r == RoleAdmin
}

// CanChangeStatus is deliberately permissive: every authenticated role may move
// any visible lead. The system has no hard isolation requirement.
func (r Role) CanChangeStatus() bool {
	return r.Valid()
}

// CanVerify covers the back-office actions: bank verification, disbursement.
func (r Role) CanVerify() bool {
	return r == RoleBackOffice || r == RoleAdmin
}

type User struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	Role         Role          `json:"role"`
	Avatar       string        `json:"avatar,omitempty"`
	ServiceTypes []ServiceType `json:"serviceTypes,omitempty"` // back-office visibility filter
	CreatedAt    time.Time     `json:"created_at"`
}

type UserRepositoryInterface interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	List(ctx context.Context) ([]*User, error)
}

func NewUser(name, email string, role Role, serviceTypes []ServiceType) (*User, error) {
	if name == "" {
		return nil, errors.New("name is required")
	}
	if email == "" {
		return nil, errors.New("email is required")
	}
	if !role.Valid() {
		return nil, errors.New("invalid role")
	}
	return &User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		Role:         role,
		ServiceTypes: serviceTypes,
		CreatedAt:    time.Now(),
	}, nil
}
