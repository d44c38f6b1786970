package apiclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"catalog-admin/internal/domain"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/api/", 5*time.Second, zap.NewNop())
}

func TestProperty_BearerTokenIsSessionToken(t *testing.T) {
	properties := gopter.NewProperties(nil)

	var seen string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		seen = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusOK)
	})

	properties.Property("requests carry exactly the session token", prop.ForAll(
		func(token string) bool {
			ctx := domain.WithSession(context.Background(), domain.NewSession(token))
			if err := client.DoJSON(ctx, http.MethodGet, "/products", nil, nil); err != nil {
				return false
			}
			return seen == "Bearer "+token
		},
		gen.Identifier(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestDoJSON_NoSessionNoAuthorization(t *testing.T) {
	var header string
	var path string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		header = r.Header.Get("Authorization")
		path = r.URL.Path
		w.Write([]byte(`{"token":"T1"}`))
	})

	var out struct {
		Token string `json:"token"`
	}
	err := client.DoJSON(context.Background(), http.MethodPost, "auth/login",
		map[string]string{"email": "a@b.com", "password": "x"}, &out)

	require.NoError(t, err)
	assert.Empty(t, header)
	assert.Equal(t, "/api/auth/login", path)
	assert.Equal(t, "T1", out.Token)
}

func TestDoJSON_NonSuccessStatusIsError(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		message string
	}{
		{"message field", http.StatusBadRequest, `{"success":false,"message":"SKU already exists"}`, "SKU already exists"},
		{"error field", http.StatusUnauthorized, `{"error":"jwt expired"}`, "jwt expired"},
		{"no body", http.StatusInternalServerError, ``, "request failed with status code 500"},
		{"html body", http.StatusBadGateway, `<html>bad gateway</html>`, "request failed with status code 502"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				io.WriteString(w, tt.body)
			})

			err := client.DoJSON(context.Background(), http.MethodGet, "/products", nil, nil)

			var apiErr *Error
			require.True(t, errors.As(err, &apiErr))
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.message, apiErr.Error())
			assert.Equal(t, tt.status, StatusCode(err))
		})
	}
}

func TestDoJSON_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	client := NewClient(srv.URL, time.Second, zap.NewNop())

	err := client.DoJSON(context.Background(), http.MethodGet, "/products", nil, nil)

	require.Error(t, err)
	assert.Equal(t, 0, StatusCode(err))
}

func TestDoJSON_CancelledContext(t *testing.T) {
	release := make(chan struct{})
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.DoJSON(ctx, http.MethodGet, "/products", nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDoMultipart_SendsParts(t *testing.T) {
	var got struct {
		contentType string
		sku         string
		images      []string
		files       int
		auth        string
	}
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		got.contentType = r.Header.Get("Content-Type")
		got.sku = r.FormValue("sku")
		got.images = r.MultipartForm.Value["images"]
		got.files = len(r.MultipartForm.File["images"])
		got.auth = r.Header.Get("Authorization")
		w.Write([]byte(`{"success":true,"message":"ok"}`))
	})

	form := NewForm()
	form.AddField("sku", "SKU-1")
	form.AddFile("images", "a.png", "image/png", []byte("png-bytes"))
	form.AddFile("images", "b.png", "", []byte("more"))

	ctx := domain.WithSession(context.Background(), domain.NewSession("T2"))
	var out struct {
		Success bool `json:"success"`
	}
	require.NoError(t, client.DoMultipart(ctx, http.MethodPost, "/products/add", form, &out))

	assert.True(t, out.Success)
	assert.Contains(t, got.contentType, "multipart/form-data")
	assert.Equal(t, "SKU-1", got.sku)
	assert.Empty(t, got.images)
	assert.Equal(t, 2, got.files)
	assert.Equal(t, "Bearer T2", got.auth)
}
