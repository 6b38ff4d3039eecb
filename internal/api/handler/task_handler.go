package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"taskboard/internal/api/middleware"
	"taskboard/internal/app/service"
	"taskboard/internal/common"
)

type TaskHandler struct {
	taskService *service.TaskService
	logger      zerolog.Logger
}

func NewTaskHandler(ts *service.TaskService, logger zerolog.Logger) *TaskHandler {
	return &TaskHandler{taskService: ts, logger: logger}
}

func (h *TaskHandler) RegisterRoutes(r chi.Router) {
	h.RegisterCRUDRoutes(r)
	r.Get("/search", h.searchTasks) // GET /tasks/search?q=milk
}

// RegisterCRUDRoutes mounts list/create and retrieve/update/delete without search.
func (h *TaskHandler) RegisterCRUDRoutes(r chi.Router) {
	r.Get("/", h.listTasks)
	r.Post("/", h.createTask)
	r.Get("/{code}", h.getTask)
	r.Put("/{code}", h.replaceTask)
	r.Patch("/{code}", h.patchTask)
	r.Delete("/{code}", h.deleteTask)
}

func (h *TaskHandler) listTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) createTask(w http.ResponseWriter, r *http.Request) {
	var in service.TaskInput
	if !h.decode(w, r, &in) {
		return
	}

	task, err := h.taskService.Create(r.Context(), actor(r), in)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, task)
}

func (h *TaskHandler) getTask(w http.ResponseWriter, r *http.Request) {
	task, err := h.taskService.Get(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) replaceTask(w http.ResponseWriter, r *http.Request) {
	h.updateTask(w, r, false)
}

func (h *TaskHandler) patchTask(w http.ResponseWriter, r *http.Request) {
	h.updateTask(w, r, true)
}

func (h *TaskHandler) updateTask(w http.ResponseWriter, r *http.Request, partial bool) {
	var in service.TaskInput
	if !h.decode(w, r, &in) {
		return
	}

	task, err := h.taskService.Update(r.Context(), actor(r), chi.URLParam(r, "code"), in, partial)
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), actor(r), chi.URLParam(r, "code")); err != nil {
		h.respondError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *TaskHandler) searchTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.taskService.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.respondError(w, r, err)
		return
	}
	common.RespondWithJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		common.RespondWithErrorDetails(w, http.StatusBadRequest, "Invalid request payload", err.Error())
		return false
	}
	return true
}

func (h *TaskHandler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	if common.HTTPStatusFromError(err) == http.StatusInternalServerError {
		h.logger.Error().
			Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("task request failed")
	}
	common.RespondWithDomainError(w, err)
}

func actor(r *http.Request) string {
	if user, ok := middleware.GetUserFromContext(r.Context()); ok {
		return user.Username
	}
	return ""
}
