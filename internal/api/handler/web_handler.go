package handler

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"taskboard/internal/app/service"
	"taskboard/internal/common"
	"taskboard/internal/domain/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/tasks.html"))

const webActor = "web"

// WebHandler serves the unauthenticated HTML interface. Outcomes are
// reported through redirect query flags, never JSON.
type WebHandler struct {
	taskService *service.TaskService
	logger      zerolog.Logger
}

func NewWebHandler(ts *service.TaskService, logger zerolog.Logger) *WebHandler {
	return &WebHandler{taskService: ts, logger: logger}
}

func (h *WebHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Post("/registrarTarea", h.registerTask)
	r.Get("/registrarTarea", h.redirectHome)
	r.Get("/eliminarTarea/{code}", h.deleteTask)
}

type homePage struct {
	Tasks   []model.Task
	Success bool
	Error   bool
	Message string
	Editing *model.Task
}

func (h *WebHandler) home(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	page := homePage{
		Success: query.Get("success") == "1",
		Error:   query.Get("error") == "1",
		Message: query.Get("message"),
	}

	status := http.StatusOK
	tasks, err := h.taskService.List(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list tasks for home page")
		status = http.StatusInternalServerError
		page.Error = true
		page.Message = "Could not load tasks"
	}
	page.Tasks = tasks

	if code := query.Get("edit"); code != "" && err == nil {
		if task, err := h.taskService.Get(r.Context(), code); err == nil {
			page.Editing = task
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTemplate.Execute(w, page); err != nil {
		h.logger.Error().Err(err).Msg("failed to render home page")
	}
}

func (h *WebHandler) registerTask(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.redirectError(w, r, "Invalid form submission")
		return
	}

	code := r.PostFormValue("txtCodigo")
	name := r.PostFormValue("txtNombre")
	description := r.PostFormValue("txtDescripcion")
	in := service.TaskInput{Name: &name, Description: &description}

	var err error
	if isTruthy(r.PostFormValue("modoEdicion")) {
		_, err = h.taskService.Update(r.Context(), webActor, code, in, false)
	} else {
		in.Code = &code
		_, err = h.taskService.Create(r.Context(), webActor, in)
	}

	if err != nil {
		h.redirectError(w, r, h.messageFor(err))
		return
	}
	http.Redirect(w, r, "/?success=1", http.StatusFound)
}

func (h *WebHandler) deleteTask(w http.ResponseWriter, r *http.Request) {
	if err := h.taskService.Delete(r.Context(), webActor, chi.URLParam(r, "code")); err != nil {
		h.redirectError(w, r, h.messageFor(err))
		return
	}
	http.Redirect(w, r, "/?success=1", http.StatusFound)
}

func (h *WebHandler) redirectHome(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *WebHandler) redirectError(w http.ResponseWriter, r *http.Request, message string) {
	q := url.Values{}
	q.Set("error", "1")
	q.Set("message", message)
	http.Redirect(w, r, "/?"+q.Encode(), http.StatusFound)
}

func (h *WebHandler) messageFor(err error) string {
	var verr *common.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Error()
	case errors.Is(err, common.ErrNotFound):
		return "Task not found"
	case errors.Is(err, common.ErrConflict):
		return "Code already exists"
	default:
		h.logger.Error().Err(err).Msg("web task request failed")
		return err.Error()
	}
}

func isTruthy(v string) bool {
	if v == "on" {
		return true
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
