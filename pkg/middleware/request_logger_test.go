package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestRequestLoggerWritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(l))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/42", nil)
	req.Header.Set("X-Request-Id", "req-1")
	r.ServeHTTP(w, req)

	require.Equal(t, "req-1", w.Header().Get("X-Request-Id"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &entry))
	require.Equal(t, "warning", entry["level"])
	require.Equal(t, "/items/:id", entry["path"])
	require.EqualValues(t, 404, entry["status"])
	require.Equal(t, "req-1", entry["request_id"])
}

func TestRequestLoggerGeneratesRequestID(t *testing.T) {
	l := logrus.New()
	l.SetOutput(&bytes.Buffer{})
	r := gin.New()
	r.Use(RequestLogger(l))
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Len(t, w.Header().Get("X-Request-Id"), 36)
	require.Equal(t, w.Header().Get("X-Request-Id"), w.Body.String())
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("https://site.example"))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodOptions, "/", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://site.example", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}
