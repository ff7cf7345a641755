package bridge

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newRouter(upstream string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	NewProxy(upstream, time.Second).Register(router)
	return router
}

func post(router http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestProxy_ForwardsBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"date": "2024-01-15", "carrier": "AA", "origin": "JFK"}`, string(body))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"regression_prediction": 12.5}`))
	}))
	defer upstream.Close()

	w := post(newRouter(upstream.URL+"/"), `{"date": "2024-01-15", "carrier": "AA", "origin": "JFK"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"regression_prediction": 12.5}`, w.Body.String())
}

func TestProxy_UpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "missing required field: date"}`))
	}))
	defer upstream.Close()

	w := post(newRouter(upstream.URL), `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "An error occurred while processing your request"}`, w.Body.String())
}

func TestProxy_UpstreamDown(t *testing.T) {
	upstream := httptest.NewServer(http.NotFoundHandler())
	url := upstream.URL
	upstream.Close()

	w := post(newRouter(url), `{}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
