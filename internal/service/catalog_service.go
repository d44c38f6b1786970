package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/repository"

	"go.uber.org/zap"
)

// CatalogService backs the product list and the product forms
type CatalogService interface {
	List(ctx context.Context, term string) (*ProductList, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, product *domain.Product, uploads []domain.Upload) error
	Update(ctx context.Context, id string, product *domain.Product, uploads []domain.Upload) error
}

// ProductList is the filtered view of the full collection
type ProductList struct {
	Products []domain.Product
	Term     string
	Total    int
}

type catalogService struct {
	productRepo repository.ProductRepository
	logger      *zap.Logger
}

func NewCatalogService(productRepo repository.ProductRepository, logger *zap.Logger) CatalogService {
	return &catalogService{productRepo: productRepo, logger: logger}
}

// List fetches the whole collection and filters it in process. A failed
// fetch yields an empty list alongside ErrFetchFailed.
func (s *catalogService) List(ctx context.Context, term string) (*ProductList, error) {
	products, err := s.productRepo.List(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("Failed to fetch products", zap.Error(err))
		}
		return &ProductList{Products: []domain.Product{}, Term: term}, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}

	return &ProductList{
		Products: Filter(products, term),
		Term:     term,
		Total:    len(products),
	}, nil
}

func (s *catalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			s.logger.Warn("Failed to fetch product", zap.String("id", id), zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %w", ErrFetchFailed, err)
	}
	return product, nil
}

func (s *catalogService) Create(ctx context.Context, product *domain.Product, uploads []domain.Upload) error {
	if err := s.productRepo.Create(ctx, product, uploads); err != nil {
		s.logger.Warn("Failed to add product", zap.String("sku", product.SKU), zap.Error(err))
		return &SubmitError{Err: err}
	}

	s.logger.Info("Product added", zap.String("sku", product.SKU), zap.Int("images", len(uploads)))
	return nil
}

func (s *catalogService) Update(ctx context.Context, id string, product *domain.Product, uploads []domain.Upload) error {
	if err := s.productRepo.Update(ctx, id, product, uploads); err != nil {
		s.logger.Warn("Failed to update product", zap.String("id", id), zap.Error(err))
		return &SubmitError{Err: err}
	}

	s.logger.Info("Product updated", zap.String("id", id), zap.Int("images", len(uploads)))
	return nil
}

// Filter keeps the products whose name contains term, ignoring case. An
// empty term returns products unchanged. Order is preserved.
func Filter(products []domain.Product, term string) []domain.Product {
	if term == "" {
		return products
	}

	needle := strings.ToLower(term)
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.ProductName), needle) {
			out = append(out, p)
		}
	}
	return out
}
