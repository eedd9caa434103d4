package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func newAdminRouter(token string) *gin.Engine {
	r := gin.New()
	admin := r.Group("/v1/admin", AdminAuth(token))
	admin.GET("/orders", func(c *gin.Context) { c.Status(http.StatusOK) })
	admin.DELETE("/orders/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	return r
}

func TestAdminAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		token  string
		method string
		target string
		header string
		status int
	}{
		{"valid bearer", "s3cret", http.MethodGet, "/v1/admin/orders", "Bearer s3cret", http.StatusOK},
		{"wrong bearer", "s3cret", http.MethodGet, "/v1/admin/orders", "Bearer nope", http.StatusUnauthorized},
		{"missing header", "s3cret", http.MethodGet, "/v1/admin/orders", "", http.StatusUnauthorized},
		{"query token on get", "s3cret", http.MethodGet, "/v1/admin/orders?token=s3cret", "", http.StatusOK},
		{"query token ignored on delete", "s3cret", http.MethodDelete, "/v1/admin/orders/o-1?token=s3cret", "", http.StatusUnauthorized},
		{"admin disabled", "", http.MethodGet, "/v1/admin/orders", "Bearer ", http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := newAdminRouter(tc.token)
			req := httptest.NewRequest(tc.method, tc.target, nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, w.Code)
			}
		})
	}
}

func TestRequestLogger_SetsRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/v1/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("generated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))
		if w.Header().Get(RequestIDHeader) == "" {
			t.Fatalf("expected a request id header")
		}
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
		req.Header.Set(RequestIDHeader, "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if got := w.Header().Get(RequestIDHeader); got != "req-42" {
			t.Fatalf("expected req-42, got %q", got)
		}
	})
}

func TestRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
