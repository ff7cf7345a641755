package httpframework

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func appConfigs(origins string) *configs.AppConfigs {
	return &configs.AppConfigs{Configs: configs.Configs{ApplicationEnv: "test", CorsAllowedOrigins: origins}}
}

func TestCorsConfig(t *testing.T) {
	all := CorsConfig("*")
	assert.True(t, all.AllowAllOrigins)
	assert.Empty(t, all.AllowOrigins)

	listed := CorsConfig("https://a.example, https://b.example")
	assert.False(t, listed.AllowAllOrigins)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, listed.AllowOrigins)
	assert.NoError(t, listed.Validate())
}

func TestNewRouter_Health(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(appConfigs("*"))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/self", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "true", w.Body.String())
}

func TestNewRouter_RejectsUnlistedOrigin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := NewRouter(appConfigs("https://a.example"))

	req := httptest.NewRequest(http.MethodGet, "/health/self", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}
