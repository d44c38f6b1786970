package transport

import (
	"context"
	"errors"
	"sync"
	"testing"

	"catalog-admin/internal/domain"
	"catalog-admin/internal/service"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// Mock services for testing
type mockAuthService struct {
	token string
	err   error
	calls int
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (domain.Session, error) {
	m.calls++
	if m.err != nil {
		return domain.Session{}, m.err
	}
	return domain.NewSession(m.token), nil
}

type mockCatalogService struct {
	mu       sync.Mutex
	products []domain.Product
	listErr  error
	getErr   error
	submit   error
	created  []*domain.Product
	updated  map[string]*domain.Product
	uploads  []domain.Upload
	requests int
}

func (m *mockCatalogService) List(ctx context.Context, term string) (*service.ProductList, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++

	if m.listErr != nil {
		return &service.ProductList{Products: []domain.Product{}, Term: term}, m.listErr
	}
	return &service.ProductList{Products: service.Filter(m.products, term), Term: term, Total: len(m.products)}, nil
}

func (m *mockCatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++

	if m.getErr != nil {
		return nil, m.getErr
	}
	for i := range m.products {
		if m.products[i].ID == id {
			p := m.products[i]
			return &p, nil
		}
	}
	return nil, errors.New("request failed with status code 404")
}

func (m *mockCatalogService) Create(ctx context.Context, product *domain.Product, uploads []domain.Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++

	if m.submit != nil {
		return &service.SubmitError{Err: m.submit}
	}
	m.created = append(m.created, product)
	m.uploads = uploads
	return nil
}

func (m *mockCatalogService) Update(ctx context.Context, id string, product *domain.Product, uploads []domain.Upload) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests++

	if m.submit != nil {
		return &service.SubmitError{Err: m.submit}
	}
	if m.updated == nil {
		m.updated = make(map[string]*domain.Product)
	}
	m.updated[id] = product
	m.uploads = uploads
	return nil
}

func newTestRenderer(t *testing.T) *Renderer {
	t.Helper()

	renderer, err := NewRenderer(service.NewAssetResolver("http://assets.test", "/src"), zap.NewNop())
	require.NoError(t, err)
	return renderer
}

func cancelledContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return ctx
}

// pngBytes is enough of a PNG for content sniffing
var pngBytes = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00\x1f\x15\xc4\x89")
