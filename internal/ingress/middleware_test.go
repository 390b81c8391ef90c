package ingress

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/ledgersift/mail-ingestor/internal/logger"
)

func TestMain(m *testing.M) {
	_ = logger.Initialize(logger.Config{Debug: true})
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newTestRouter(middleware ...gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(middleware...)
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestRequestID(t *testing.T) {
	router := newTestRouter(RequestID())

	t.Run("generates an id when none is presented", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("keeps the caller's id", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.Header.Set("X-Request-ID", "caller-id-1")
		router.ServeHTTP(w, req)

		assert.Equal(t, "caller-id-1", w.Header().Get("X-Request-ID"))
	})
}

func TestPushAuth(t *testing.T) {
	tests := []struct {
		name       string
		token      string
		query      string
		authHeader string
		wantStatus int
	}{
		{
			name:       "empty configured token lets everything through",
			token:      "",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid query token",
			token:      "secret",
			query:      "?token=secret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "valid bearer token",
			token:      "secret",
			authHeader: "Bearer secret",
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong query token",
			token:      "secret",
			query:      "?token=wrong",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong bearer token",
			token:      "secret",
			authHeader: "Bearer wrong",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "missing credentials",
			token:      "secret",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(PushAuth(tt.token))

			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/ping"+tt.query, nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
		})
	}
}

func TestRecovery(t *testing.T) {
	router := gin.New()
	router.Use(Recovery())
	router.GET("/boom", func(c *gin.Context) {
		panic("unexpected")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/boom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal server error")
}
