package transport

import (
	"errors"
	"net/http"
	"strconv"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/form"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/repository"
	"catalog-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type usersView struct {
	Users  []domain.User
	Term   string
	EditID int
}

// UserHandler serves the mock users page
type UserHandler struct {
	userService service.UserService
	renderer    *Renderer
	logger      *zap.Logger
}

func NewUserHandler(userService service.UserService, renderer *Renderer, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		renderer:    renderer,
		logger:      logger,
	}
}

// RegisterRoutes registers the users routes on an already guarded router
func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Route("/users", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Post("/{id}", h.Update)
		r.Post("/{id}/delete", h.Delete)
	})
}

// List renders the users matching ?q=. ?edit={id} opens that row for editing.
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, http.StatusOK, nil)
}

func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	in, ok := h.parseInput(w, r)
	if !ok {
		return
	}

	if _, err := h.userService.Create(r.Context(), in); err != nil {
		h.logger.Error("Failed to create user", zap.Error(err))
		h.renderList(w, r, http.StatusInternalServerError, errorFlash("Error: "+err.Error()))
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	in, ok := h.parseInput(w, r)
	if !ok {
		return
	}

	if _, err := h.userService.Update(r.Context(), id, in); err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.userService.Delete(r.Context(), id); err != nil {
		h.respondWithStoreError(w, r, err)
		return
	}

	http.Redirect(w, r, "/users", http.StatusSeeOther)
}

func (h *UserHandler) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.NotFound(w, r)
		return 0, false
	}
	return id, true
}

func (h *UserHandler) parseInput(w http.ResponseWriter, r *http.Request) (form.UserInput, bool) {
	if err := r.ParseForm(); err != nil {
		h.renderList(w, r, http.StatusBadRequest, errorFlash("Error: invalid form"))
		return form.UserInput{}, false
	}

	in := form.UserFromValues(r.PostForm)
	if err := middleware.ValidateRequest(in); err != nil {
		h.renderList(w, r, http.StatusUnprocessableEntity, errorFlash("Error: "+middleware.ValidationMessage(err)))
		return form.UserInput{}, false
	}
	return in, true
}

func (h *UserHandler) respondWithStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repository.ErrUserNotFound) {
		http.NotFound(w, r)
		return
	}

	h.logger.Error("User store failed", zap.Error(err))
	h.renderList(w, r, http.StatusInternalServerError, errorFlash("Error: "+err.Error()))
}

func (h *UserHandler) renderList(w http.ResponseWriter, r *http.Request, status int, flash *Flash) {
	term := r.URL.Query().Get("q")

	users, err := h.userService.List(r.Context(), term)
	if err != nil {
		h.logger.Error("Failed to list users", zap.Error(err))
	}

	view := usersView{Users: users, Term: term}
	if raw := r.URL.Query().Get("edit"); raw != "" {
		if id, err := strconv.Atoi(raw); err == nil {
			view.EditID = id
		}
	}

	h.renderer.Render(w, r, status, PageUsers, Page{Title: "Users", Nav: "users", Flash: flash, Data: view})
}
