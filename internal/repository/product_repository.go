package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"catalog-admin/internal/apiclient"
	"catalog-admin/internal/domain"
)

// ProductRepository reads and writes products through the remote catalog API.
// The remote API is the system of record; nothing is cached here.
type ProductRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	FindByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product, uploads []domain.Upload) error
	Update(ctx context.Context, id string, product *domain.Product, uploads []domain.Upload) error
}

type productRepository struct {
	client *apiclient.Client
}

// NewProductRepository creates a product repository backed by the remote API
func NewProductRepository(client *apiclient.Client) ProductRepository {
	return &productRepository{client: client}
}

type productListResponse struct {
	Data []domain.Product `json:"data"`
}

type productResponse struct {
	Data *domain.Product `json:"data"`
}

type mutationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// List fetches the full collection; there is no server-side paging or filtering
func (r *productRepository) List(ctx context.Context) ([]domain.Product, error) {
	var resp productListResponse
	if err := r.client.DoJSON(ctx, http.MethodGet, "products", nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	if resp.Data == nil {
		return []domain.Product{}, nil
	}
	return resp.Data, nil
}

func (r *productRepository) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	var resp productResponse
	if err := r.client.DoJSON(ctx, http.MethodGet, "products/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}

	if resp.Data == nil {
		return nil, fmt.Errorf("failed to find product by ID: %w", apiclient.Rejected(http.StatusOK, "product not found"))
	}
	return resp.Data, nil
}

func (r *productRepository) Create(ctx context.Context, product *domain.Product, uploads []domain.Upload) error {
	return r.submit(ctx, http.MethodPost, "products/add", product, uploads)
}

func (r *productRepository) Update(ctx context.Context, id string, product *domain.Product, uploads []domain.Upload) error {
	return r.submit(ctx, http.MethodPut, "products/"+url.PathEscape(id)+"/edit", product, uploads)
}

func (r *productRepository) submit(ctx context.Context, method, path string, product *domain.Product, uploads []domain.Upload) error {
	form, err := EncodeProduct(product, uploads)
	if err != nil {
		return err
	}

	var resp mutationResponse
	if err := r.client.DoMultipart(ctx, method, path, form, &resp); err != nil {
		return err
	}

	if !resp.Success {
		return apiclient.Rejected(http.StatusOK, resp.Message)
	}
	return nil
}
