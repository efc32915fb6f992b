package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/justtry/crm/internal/infra/http/middleware"
	"github.com/justtry/crm/internal/usecase"
)

// WorkflowHandler exposes the status pipeline: status changes, credit checks
// and agent-authored emails.
type WorkflowHandler struct {
	ChangeStatusUC *usecase.ChangeStatusUseCase
	CreditCheckUC  *usecase.RecordCreditCheckUseCase
	CustomEmailUC  *usecase.SendCustomEmailUseCase
}

func NewWorkflowHandler(
	changeStatusUC *usecase.ChangeStatusUseCase,
	creditCheckUC *usecase.RecordCreditCheckUseCase,
	customEmailUC *usecase.SendCustomEmailUseCase,
) *WorkflowHandler {
	return &WorkflowHandler{
		ChangeStatusUC: changeStatusUC,
		CreditCheckUC:  creditCheckUC,
		CustomEmailUC:  customEmailUC,
	}
}

func (h *WorkflowHandler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	var input usecase.ChangeStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")
	input.Actor = actorFrom(r)

	output, err := h.ChangeStatusUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordStatusChange(string(output.Lead.ServiceType), output.Lead.Status)
	for _, warning := range output.Warnings {
		middleware.RecordNotificationFailure(channelFromWarning(warning))
	}

	writeJSON(w, http.StatusOK, output)
}

func (h *WorkflowHandler) CreditCheck(w http.ResponseWriter, r *http.Request) {
	var request usecase.CreditCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}

	lead, err := h.CreditCheckUC.Execute(r.Context(), usecase.CreditCheckInput{
		LeadID:  chi.URLParam(r, "id"),
		Request: request,
		Actor:   actorFrom(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *WorkflowHandler) SendEmail(w http.ResponseWriter, r *http.Request) {
	var input usecase.CustomEmailInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")
	input.Actor = actorFrom(r)

	lead, err := h.CustomEmailUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

// channelFromWarning classifies a dispatch warning for the failure counter.
// Warnings are prose for the UI, so this stays a substring check.
func channelFromWarning(warning string) string {
	switch {
	case strings.Contains(warning, "call"):
		return "call"
	case strings.Contains(warning, "email"):
		return "email"
	case strings.Contains(warning, "follow-up"):
		return "queue"
	default:
		return "unknown"
	}
}
