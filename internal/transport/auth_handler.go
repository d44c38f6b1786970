package transport

import (
	"net/http"

	"catalog-admin/internal/form"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/service"
	"catalog-admin/internal/tokenstore"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// MsgLoginFailed is the only feedback a failed login gets
const MsgLoginFailed = "Login failed. Please check your credentials."

// AuthHandler handles operator login and logout
type AuthHandler struct {
	authService service.AuthService
	store       tokenstore.Store
	renderer    *Renderer
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, store tokenstore.Store, renderer *Renderer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		store:       store,
		renderer:    renderer,
		logger:      logger,
	}
}

// RegisterRoutes registers the login and logout routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.RedirectIfAuthenticated)
		r.Get(middleware.LoginPath, h.ShowLogin)
		r.Post(middleware.LoginPath, h.Login)
	})
	r.Post("/logout", h.Logout)
}

func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	h.renderer.Render(w, r, http.StatusOK, PageLogin, Page{Title: "Login", Data: form.LoginInput{}})
}

// Login exchanges the posted credentials for a token, stores it and sends
// the operator to the catalog
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.renderer.Render(w, r, http.StatusBadRequest, PageLogin, Page{Title: "Login", Flash: errorFlash(MsgLoginFailed), Data: form.LoginInput{}})
		return
	}

	in := form.LoginFromValues(r.PostForm)
	view := form.LoginInput{Email: in.Email}

	if err := middleware.ValidateRequest(in); err != nil {
		h.logger.Debug("Login validation failed", zap.Error(err))
		h.renderer.Render(w, r, http.StatusUnprocessableEntity, PageLogin, Page{Title: "Login", Flash: errorFlash(middleware.ValidationMessage(err)), Data: view})
		return
	}

	session, err := h.authService.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		h.renderer.Render(w, r, http.StatusUnauthorized, PageLogin, Page{Title: "Login", Flash: errorFlash(MsgLoginFailed), Data: view})
		return
	}

	if err := h.store.Set(w, r, session.Token); err != nil {
		h.logger.Error("Failed to persist token", zap.Error(err))
		h.renderer.Render(w, r, http.StatusInternalServerError, PageLogin, Page{Title: "Login", Flash: errorFlash(MsgLoginFailed), Data: view})
		return
	}

	http.Redirect(w, r, middleware.CatalogPath, http.StatusSeeOther)
}

// Logout forgets the stored token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Clear(w, r); err != nil {
		h.logger.Warn("Failed to clear token store", zap.Error(err))
	}
	http.Redirect(w, r, middleware.LoginPath, http.StatusSeeOther)
}
