package transport

import (
	"errors"
	"fmt"
	"html/template"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/form"
	"catalog-admin/internal/middleware"
	"catalog-admin/internal/service"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

const (
	MsgProductAdded       = "Product added successfully!"
	MsgProductUpdated     = "Product updated successfully!"
	MsgProductFetchFailed = "Failed to fetch product data. Please try again."

	maxUploadMemory = 32 << 20
)

type fieldGroup struct {
	Title  string
	Fields []form.Field
}

// sizeRegion is one block of size checkboxes. The options come from the
// form, which adds any stored size the catalog lacks.
type sizeRegion struct {
	Name  string
	Label string
}

var (
	productFieldGroups = []fieldGroup{
		{"Basic Information", form.BasicFields},
		{"Product Descriptions", form.DescriptionFields},
		{"Pricing & Stock", form.PricingFields},
		{"Product Variants", form.VariantFields},
		{"Fashion Details", form.FashionFields},
	}

	sizeRegions = []sizeRegion{
		{domain.RegionIndian, "Indian Sizes"},
		{domain.RegionPakistan, "Pakistan Sizes"},
	}
)

type productFormView struct {
	Action   string
	Submit   string
	Form     *form.ProductForm
	Groups   []fieldGroup
	Regions  []sizeRegion
	Previews []template.URL
}

// ProductHandler serves the catalog list and the add and edit forms
type ProductHandler struct {
	catalogService service.CatalogService
	renderer       *Renderer
	logger         *zap.Logger
}

func NewProductHandler(catalogService service.CatalogService, renderer *Renderer, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		catalogService: catalogService,
		renderer:       renderer,
		logger:         logger,
	}
}

// RegisterRoutes registers the catalog routes on an already guarded router
func (h *ProductHandler) RegisterRoutes(r chi.Router) {
	r.Route("/products", func(r chi.Router) {
		r.Get("/", h.List)
		r.Get("/new", h.NewForm)
		r.Post("/new", h.Create)
		r.Get("/{id}/edit", h.EditForm)
		r.Post("/{id}/edit", h.Update)
	})
}

// List renders the full collection filtered by ?q=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalogService.List(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Debug("Rendering empty product list", zap.Error(err))
	}

	h.renderer.Render(w, r, http.StatusOK, PageProducts, Page{Title: "Products", Nav: "products", Data: list})
}

func (h *ProductHandler) NewForm(w http.ResponseWriter, r *http.Request) {
	f := form.NewProductForm(form.ModeAdd)
	h.renderForm(w, r, http.StatusOK, f, nil)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	f := form.NewProductForm(form.ModeAdd)
	if flash := h.bind(r, f); flash != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, f, flash)
		return
	}

	if err := h.catalogService.Create(r.Context(), f.ToProduct(), f.Uploads); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, f, errorFlash("Error: "+err.Error()))
		return
	}

	f.Reset()
	h.renderForm(w, r, http.StatusOK, f, successFlash(MsgProductAdded))
}

// EditForm seeds the edit form from the remote product. A failed fetch
// leaves the form empty.
func (h *ProductHandler) EditForm(w http.ResponseWriter, r *http.Request) {
	f := form.NewProductForm(form.ModeEdit)

	product, err := h.catalogService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.renderForm(w, r, http.StatusOK, f, errorFlash(MsgProductFetchFailed))
		return
	}

	f.Seed(product)
	h.renderForm(w, r, http.StatusOK, f, nil)
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	f := form.NewProductForm(form.ModeEdit)
	f.Product.ID = id
	if flash := h.bind(r, f); flash != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, f, flash)
		return
	}

	if err := h.catalogService.Update(r.Context(), id, f.ToProduct(), f.Uploads); err != nil {
		h.renderForm(w, r, http.StatusUnprocessableEntity, f, errorFlash("Error: "+err.Error()))
		return
	}

	f.Reset()
	h.renderForm(w, r, http.StatusOK, f, successFlash(MsgProductUpdated))
}

// bind applies the posted form and staged files to f and validates the
// result. A non-nil flash means the product must not be submitted.
func (h *ProductHandler) bind(r *http.Request, f *form.ProductForm) *Flash {
	values, uploads, err := parseProductPost(r)
	if err != nil {
		h.logger.Debug("Failed to parse product form", zap.Error(err))
		return errorFlash("Error: " + err.Error())
	}

	if err := f.Apply(values); err != nil {
		return errorFlash("Error: " + err.Error())
	}

	if len(uploads) > 0 {
		if err := f.StageImages(uploads); err != nil {
			return errorFlash("Error: " + err.Error())
		}
	}

	if err := middleware.ValidateRequest(f.Rules()); err != nil {
		return errorFlash("Error: " + middleware.ValidationMessage(err))
	}
	return nil
}

func (h *ProductHandler) renderForm(w http.ResponseWriter, r *http.Request, status int, f *form.ProductForm, flash *Flash) {
	view := productFormView{
		Form:    f,
		Groups:  productFieldGroups,
		Regions: sizeRegions,
	}
	for _, p := range f.Previews {
		view.Previews = append(view.Previews, template.URL(p))
	}

	title, nav := "Add New Product", "add"
	view.Action, view.Submit = "/products/new", "Add Product"
	if f.Mode == form.ModeEdit {
		title, nav = "Edit Product", "products"
		view.Action = "/products/" + url.PathEscape(chi.URLParam(r, "id")) + "/edit"
		view.Submit = "Update Product"
	}

	h.renderer.Render(w, r, status, PageProductForm, Page{Title: title, Nav: nav, Flash: flash, Data: view})
}

// parseProductPost reads a multipart or urlencoded product post. Empty file
// parts, which browsers send when no file was chosen, are skipped.
func parseProductPost(r *http.Request) (url.Values, []domain.Upload, error) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		if !errors.Is(err, http.ErrNotMultipart) {
			return nil, nil, fmt.Errorf("invalid form: %w", err)
		}
		if err := r.ParseForm(); err != nil {
			return nil, nil, fmt.Errorf("invalid form: %w", err)
		}
		return r.PostForm, nil, nil
	}

	var uploads []domain.Upload
	for _, fh := range r.MultipartForm.File["images"] {
		if fh.Filename == "" || fh.Size == 0 {
			continue
		}
		upload, err := readUpload(fh)
		if err != nil {
			return nil, nil, err
		}
		uploads = append(uploads, upload)
	}

	return url.Values(r.MultipartForm.Value), uploads, nil
}

func readUpload(fh *multipart.FileHeader) (domain.Upload, error) {
	file, err := fh.Open()
	if err != nil {
		return domain.Upload{}, fmt.Errorf("failed to open %s: %w", fh.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.Upload{}, fmt.Errorf("failed to read %s: %w", fh.Filename, err)
	}

	return domain.Upload{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
