package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordOperation(t *testing.T) {
	before := testutil.ToFloat64(containerOperations.WithLabelValues("room", "create", "error"))
	RecordOperation("room", "create", 5*time.Millisecond, errors.New("boom"))
	RecordOperation("room", "create", 5*time.Millisecond, nil)
	assert.Equal(t, before+1, testutil.ToFloat64(containerOperations.WithLabelValues("room", "create", "error")))
	assert.GreaterOrEqual(t, testutil.ToFloat64(containerOperations.WithLabelValues("room", "create", "success")), 1.0)
}

func TestRecordOverdue(t *testing.T) {
	before := testutil.ToFloat64(invoicesOverdue)
	RecordOverdue(0)
	RecordOverdue(3)
	assert.Equal(t, before+3, testutil.ToFloat64(invoicesOverdue))
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(Middleware())
	router.GET("/v1/rooms/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	router.GET("/metrics", gin.WrapH(Handler()))

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/rooms/:id", "204"))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/v1/rooms/7", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/v1/rooms/:id", "204")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, _ := io.ReadAll(w.Body)
	assert.Contains(t, string(body), "rental_http_requests_total")
}
