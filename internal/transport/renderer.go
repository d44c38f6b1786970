package transport

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/form"
	"catalog-admin/internal/service"

	"go.uber.org/zap"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Page names
const (
	PageLogin       = "login.html"
	PageProducts    = "products.html"
	PageProductForm = "product_form.html"
	PageUsers       = "users.html"
)

// Flash is the one-line banner shown above a page
type Flash struct {
	Kind string
	Text string
}

func successFlash(text string) *Flash { return &Flash{Kind: "success", Text: text} }
func errorFlash(text string) *Flash   { return &Flash{Kind: "error", Text: text} }

// Page is what every template receives
type Page struct {
	Title   string
	Nav     string
	Session domain.Session
	Flash   *Flash
	Data    any
}

// Renderer executes the embedded page templates inside the shared layout
type Renderer struct {
	pages  map[string]*template.Template
	logger *zap.Logger
}

func NewRenderer(assets service.AssetResolver, logger *zap.Logger) (*Renderer, error) {
	funcs := template.FuncMap{
		"asset":    assets.Resolve,
		"dateOnly": form.DateInput,
		"roles":    func() []domain.Role { return domain.Roles },
		"statuses": func() []domain.Status { return domain.Statuses },
	}

	pages := make(map[string]*template.Template)
	for _, page := range []string{PageLogin, PageProducts, PageProductForm, PageUsers} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	return &Renderer{pages: pages, logger: logger}, nil
}

// Render writes page with status. Nothing is written once the request
// context is done, so a view the operator navigated away from is discarded.
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, status int, name string, page Page) {
	if r.Context().Err() != nil {
		return
	}

	tmpl, ok := rn.pages[name]
	if !ok {
		panic(fmt.Sprintf("unknown page template %q", name))
	}

	if session, ok := domain.SessionFromContext(r.Context()); ok {
		page.Session = session
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", page); err != nil {
		rn.logger.Error("Failed to render template", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
