package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var predictInfo = &grpc.UnaryServerInfo{FullMethod: "/flightdelay.Predictor/Predict"}

func TestRecoveryInterceptor(t *testing.T) {
	resp, err := RecoveryInterceptor(context.Background(), "req", predictInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			panic("boom")
		})
	assert.Nil(t, resp)
	assert.Equal(t, codes.Internal, status.Code(err))
}

func TestWrappedGRPCMiddleware_PassesThrough(t *testing.T) {
	InitGRPCMiddleware("x-request-id")
	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "abc", "authorization", "secret"))

	resp, err := WrappedGRPCMiddleware(ctx, "req", predictInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return "ok", nil
		})
	require.NoError(t, err)
	assert.Equal(t, "ok", resp)

	_, err = WrappedGRPCMiddleware(context.Background(), "req", predictInfo,
		func(ctx context.Context, req interface{}) (interface{}, error) {
			return nil, status.Error(codes.InvalidArgument, "missing required field: date")
		})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestFilterGRPCHeaders(t *testing.T) {
	InitGRPCMiddleware("X-Request-Id, user-agent")
	md := metadata.Pairs("x-request-id", "abc", "authorization", "secret")
	assert.Equal(t, map[string][]string{"x-request-id": {"abc"}}, filterGRPCHeaders(md))
}

func TestHTTPRecovery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(HTTPLogger(), HTTPRecovery())
	router.GET("/panic", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Internal server error"}`, w.Body.String())
}
