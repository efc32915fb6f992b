package handlers

import (
	"net/http"

	"github.com/justtry/crm/internal/entity"
	"github.com/justtry/crm/internal/infra/http/middleware"
)

type TaskHandler struct {
	TaskRepo entity.TaskRepositoryInterface
}

func NewTaskHandler(taskRepo entity.TaskRepositoryInterface) *TaskHandler {
	return &TaskHandler{TaskRepo: taskRepo}
}

// List returns the caller's open follow-ups; admin sees everyone's.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFromContext(r.Context())

	assignedTo := user.ID
	if user.Role == entity.RoleAdmin {
		assignedTo = ""
	}

	tasks, err := h.TaskRepo.List(r.Context(), assignedTo)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to list tasks"})
		return
	}
	if tasks == nil {
		tasks = []*entity.Task{}
	}
	writeJSON(w, http.StatusOK, tasks)
}
