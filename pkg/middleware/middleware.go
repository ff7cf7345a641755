package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime/debug"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/set"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

var (
	reqHeadersToLog = set.NewThreadSafeSet()
)

// InitGRPCMiddleware sets the comma-separated request headers that are copied into access logs.
func InitGRPCMiddleware(headersToLog string) {
	reqHeadersToLog = set.FromCSV(headersToLog)
	logger.Info(fmt.Sprintf("gRPC access logs include %d request headers", reqHeadersToLog.Size()))
}

func WrappedGRPCMiddleware(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler) (resp interface{}, err error) {
	startTime := time.Now()

	md, _ := metadata.FromIncomingContext(ctx)
	method := info.FullMethod
	requestHeaders, _ := json.Marshal(filterGRPCHeaders(md))

	resp, err = handler(ctx, req)
	statusCode := codes.OK
	if err != nil {
		statusCode = status.Code(err)
	}
	responseTime := time.Since(startTime)

	logVariables := []string{
		method,
		strconv.Itoa(int(statusCode)),
		responseTime.String(),
		string(requestHeaders),
	}
	if err != nil {
		logger.Error(strings.Join(logVariables, " | "), err)
	} else {
		logger.Info(strings.Join(logVariables, " | "))
	}
	telemetryMiddleware(info, responseTime, statusCode)
	return resp, err
}

func RecoveryInterceptor(ctx context.Context, req interface{}, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (resp interface{}, err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().
				Str("service", info.FullMethod).
				Interface("request", req).
				Msgf("Recovered in recovery interceptor with err: %v, stack: %s", r, string(debug.Stack()))
			err = status.Errorf(codes.Internal, "Internal server error")
		}
	}()

	return handler(ctx, req)
}

func filterGRPCHeaders(md metadata.MD) map[string][]string {
	filteredHeaders := make(map[string][]string)
	for k, v := range md {
		if reqHeadersToLog.Contains(k) {
			filteredHeaders[k] = v
		}
	}
	return filteredHeaders
}

func telemetryMiddleware(info *grpc.UnaryServerInfo, responseTime time.Duration, statusCode codes.Code) {
	tags := []string{"api:" + info.FullMethod, "status:" + strconv.Itoa(int(statusCode))}
	metrics.Timing("flightdelay.router.api.request.latency", responseTime, tags)
	metrics.Count("flightdelay.router.api.request.total", 1, tags)
}
