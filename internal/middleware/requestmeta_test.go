package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/serroba/shorty/internal/handlers"
	"github.com/serroba/shorty/internal/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testOutput struct {
	Body string `json:"body"`
}

func setupTestAPI(t *testing.T) (*chi.Mux, chan handlers.RequestMeta) {
	t.Helper()

	router := chi.NewMux()
	api := humachi.New(router, huma.DefaultConfig("Test", "1.0.0"))
	api.UseMiddleware(middleware.RequestMeta(func() string { return "generated-id" }))

	metas := make(chan handlers.RequestMeta, 1)

	huma.Get(api, "/test", func(ctx context.Context, _ *struct{}) (*testOutput, error) {
		metas <- handlers.RequestMetaFromContext(ctx)

		return &testOutput{Body: "ok"}, nil
	})

	return router, metas
}

func TestRequestMeta(t *testing.T) {
	cases := []struct {
		name      string
		headers   map[string]string
		remote    string
		wantIP    string
		wantReqID string
	}{
		{
			name:      "remote address and generated id",
			remote:    "198.51.100.7:5555",
			wantIP:    "198.51.100.7",
			wantReqID: "generated-id",
		},
		{
			name:      "first X-Forwarded-For address",
			headers:   map[string]string{"X-Forwarded-For": "192.168.1.1, 10.0.0.1, 172.16.0.1"},
			remote:    "10.1.1.1:80",
			wantIP:    "192.168.1.1",
			wantReqID: "generated-id",
		},
		{
			name:      "X-Real-IP without X-Forwarded-For",
			headers:   map[string]string{"X-Real-IP": "10.0.0.1"},
			remote:    "10.1.1.1:80",
			wantIP:    "10.0.0.1",
			wantReqID: "generated-id",
		},
		{
			name:      "incoming request id is kept",
			headers:   map[string]string{"X-Request-ID": "abc-123_X"},
			remote:    "10.1.1.1:80",
			wantIP:    "10.1.1.1",
			wantReqID: "abc-123_X",
		},
		{
			name:      "malformed request id is replaced",
			headers:   map[string]string{"X-Request-ID": "<script>"},
			remote:    "10.1.1.1:80",
			wantIP:    "10.1.1.1",
			wantReqID: "generated-id",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			router, metas := setupTestAPI(t)

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = tc.remote
			req.Header.Set("User-Agent", "TestAgent/1.0")

			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, http.StatusOK, w.Code)

			meta := <-metas
			assert.Equal(t, tc.wantIP, meta.ClientIP)
			assert.Equal(t, "TestAgent/1.0", meta.UserAgent)
			assert.Equal(t, tc.wantReqID, meta.RequestID)
			assert.Equal(t, tc.wantReqID, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}
