package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justtry/crm/internal/infra/http/middleware"
	"github.com/justtry/crm/internal/usecase"
)

// DisbursementHandler covers the payout path: submitting bank details,
// verifying them, and firing the transfer. Verify and Disburse sit behind the
// back-office role guard in the router.
type DisbursementHandler struct {
	DisburseUC *usecase.DisburseUseCase
	SubmitUC   *usecase.SubmitBankDetailsUseCase
	VerifyUC   *usecase.VerifyBankDetailsUseCase
}

func NewDisbursementHandler(
	disburseUC *usecase.DisburseUseCase,
	submitUC *usecase.SubmitBankDetailsUseCase,
	verifyUC *usecase.VerifyBankDetailsUseCase,
) *DisbursementHandler {
	return &DisbursementHandler{
		DisburseUC: disburseUC,
		SubmitUC:   submitUC,
		VerifyUC:   verifyUC,
	}
}

func (h *DisbursementHandler) Disburse(w http.ResponseWriter, r *http.Request) {
	output, err := h.DisburseUC.Execute(r.Context(), usecase.DisburseInput{
		LeadID: chi.URLParam(r, "id"),
		Actor:  actorFrom(r),
	})
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordDisbursement(output.Disbursement.Status)

	writeJSON(w, http.StatusOK, output)
}

func (h *DisbursementHandler) SubmitBankDetails(w http.ResponseWriter, r *http.Request) {
	var input usecase.BankDetailsInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON: " + err.Error()})
		return
	}
	input.LeadID = chi.URLParam(r, "id")
	input.Actor = actorFrom(r)

	lead, err := h.SubmitUC.Execute(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *DisbursementHandler) VerifyBankDetails(w http.ResponseWriter, r *http.Request) {
	lead, err := h.VerifyUC.Execute(r.Context(), chi.URLParam(r, "id"), actorFrom(r))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}
