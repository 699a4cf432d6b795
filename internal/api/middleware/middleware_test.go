package middleware

import (
	"Murmur/internal/pkg/logger"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestTraceMiddleware_EchoesHeader(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	var seen any
	r.GET("/x", func(c *gin.Context) {
		seen = c.Request.Context().Value(logger.TraceIDKey)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set(TraceHeader, "abc-123")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(TraceHeader))
	assert.Equal(t, "abc-123", seen)
}

func TestTraceMiddleware_GeneratesID(t *testing.T) {
	r := gin.New()
	r.Use(TraceMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Len(t, w.Header().Get(TraceHeader), 36)
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.POST("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestAuditMiddleware_KeepsRequestBody(t *testing.T) {
	r := gin.New()
	r.Use(AuditMiddleware())
	var body string
	r.POST("/x", func(c *gin.Context) {
		raw, _ := c.GetRawData()
		body = string(raw)
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(`{"a":1}`))
	r.ServeHTTP(w, req)

	assert.Equal(t, `{"a":1}`, body)
	assert.Equal(t, "ok", w.Body.String())
}

func TestAuditMiddleware_KeepsLargeRequestBody(t *testing.T) {
	r := gin.New()
	r.Use(AuditMiddleware())
	var size int
	r.POST("/x", func(c *gin.Context) {
		raw, _ := c.GetRawData()
		size = len(raw)
		c.Status(http.StatusOK)
	})

	payload := strings.Repeat("a", maxAuditBody+4000)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/x", strings.NewReader(payload)))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, len(payload), size)
}
