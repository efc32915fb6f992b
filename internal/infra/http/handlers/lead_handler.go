package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/http/middleware"
	"github.com/justtry/crm/internal/usecase"
)

type LeadHandler struct {
	CreateLeadUC *usecase.CreateLeadUseCase
	AssignLeadUC *usecase.AssignLeadUseCase
	LeadRepo     entity.LeadRepositoryInterface
	UserRepo     entity.UserRepositoryInterface
}

func NewLeadHandler(
	createUC *usecase.CreateLeadUseCase,
	assignUC *usecase.AssignLeadUseCase,
	leadRepo entity.LeadRepositoryInterface,
	userRepo entity.UserRepositoryInterface,
) *LeadHandler {
	return &LeadHandler{
		CreateLeadUC: createUC,
		AssignLeadUC: assignUC,
		LeadRepo:     leadRepo,
		UserRepo:     userRepo,
	}
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreateLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	input.Actor = actorFrom(r)

	lead, err := h.CreateLeadUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, lead)
}

// List applies role visibility: sales see their own leads, back-office see
// their service types, admin sees everything.
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	var filter entity.LeadFilter
	switch user.Role {
	case entity.RoleSales:
		filter.AssignedTo = user.ID
	case entity.RoleBackOffice:
		full, err := h.UserRepo.GetByID(r.Context(), user.ID)
		if err != nil {
			log.Warn().Str("user_id", user.ID).Err(err).Msg("visibility lookup failed, listing nothing")
			writeJSON(w, http.StatusOK, []*entity.Lead{})
			return
		}
		filter.ServiceTypes = full.ServiceTypes
	}

	leads, err := h.LeadRepo.List(r.Context(), filter)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list leads"})
		return
	}
	if leads == nil {
		leads = []*entity.Lead{}
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.LeadRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if err == entity.ErrLeadNotFound {
			writeJSON(w, http.StatusNotFound, errorResponse{Error: "lead not found", Code: "LEAD_NOT_FOUND"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to load lead"})
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Assign(w http.ResponseWriter, r *http.Request) {
	var input usecase.AssignLeadInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")
	input.Actor = actorFrom(r)

	lead, err := h.AssignLeadUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) AddDocument(w http.ResponseWriter, r *http.Request) {
	var doc entity.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	if doc.Name == "" || doc.URL == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "name and url are required", Code: "VALIDATION_ERROR"})
		return
	}

	lead, err := h.LeadRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapRepoErr(err))
		return
	}
	lead.AddDocument(doc)
	if err := h.LeadRepo.Save(r.Context(), lead); err != nil {
		writeError(w, mapRepoErr(err))
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) RemoveDocument(w http.ResponseWriter, r *http.Request) {
	lead, err := h.LeadRepo.GetByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, mapRepoErr(err))
		return
	}
	if !lead.RemoveDocument(chi.URLParam(r, "name")) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "document not found"})
		return
	}
	if err := h.LeadRepo.Save(r.Context(), lead); err != nil {
		writeError(w, mapRepoErr(err))
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func actorFrom(r *http.Request) usecase.Actor {
	user, _ := middleware.UserFromContext(r.Context())
	return usecase.Actor{ID: user.ID, Name: user.Name, Role: user.Role}
}

func mapRepoErr(err error) error {
	switch err {
	case entity.ErrLeadNotFound:
		return &usecase.DomainError{Code: "LEAD_NOT_FOUND", Message: "lead not found"}
	case entity.ErrVersionConflict:
		return &usecase.DomainError{Code: "CONFLICT", Message: "lead was modified concurrently, reload and retry"}
	default:
		return &usecase.TechnicalError{Code: "DATABASE_ERROR", Message: "failed to persist lead"}
	}
}
