package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/http/middleware"
)

const tokenTTL = 24 * time.Hour

type UserHandler struct {
	UserRepo entity.UserRepositoryInterface
	Auth     *middleware.Auth
}

func NewUserHandler(userRepo entity.UserRepositoryInterface, auth *middleware.Auth) *UserHandler {
	return &UserHandler{UserRepo: userRepo, Auth: auth}
}

type loginInput struct {
	Email string `json:"email"`
}

type loginOutput struct {
	Token string       `json:"token"`
	User  *entity.User `json:"user"`
}

// Login issues a JWT for a known user. There is no password store; identity is
// the registered email, matching the role-based login of the original product.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "email is required"})
		return
	}

	user, err := h.UserRepo.FindByEmail(r.Context(), input.Email)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "unknown user"})
		return
	}

	token, err := h.Auth.GenerateToken(user, tokenTTL)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to issue token"})
		return
	}
	writeJSON(w, http.StatusOK, loginOutput{Token: token, User: user})
}

type createUserInput struct {
	Name         string   `json:"name"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	ServiceTypes []string `json:"serviceTypes"`
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input createUserInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	var serviceTypes []entity.ServiceType
	for _, s := range input.ServiceTypes {
		serviceTypes = append(serviceTypes, entity.ServiceType(s))
	}

	user, err := entity.NewUser(input.Name, input.Email, entity.Role(input.Role), serviceTypes)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "VALIDATION_ERROR"})
		return
	}

	if err := h.UserRepo.Create(r.Context(), user); err != nil {
		if err == entity.ErrEmailAlreadyExists {
			writeJSON(w, http.StatusConflict, errorResponse{Error: "email already registered", Code: "CONFLICT"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to create user"})
		return
	}
	writeJSON(w, http.StatusCreated, user)
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.UserRepo.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list users"})
		return
	}
	if users == nil {
		users = []*entity.User{}
	}
	writeJSON(w, http.StatusOK, users)
}
