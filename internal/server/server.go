package server

import (
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/predict"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/configs"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/httpframework"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/middleware"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/set"
	"github.com/cockroachdb/cmux"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// InitServer serves gRPC and HTTP on the application port and blocks until
// either protocol stops.
func InitServer(configs *configs.AppConfigs, gateway *predict.Gateway) {
	address := fmt.Sprintf("%d", configs.Configs.ApplicationPort)
	listener, err := net.Listen("tcp", ":"+address)
	if err != nil {
		logger.Panic("Failed to start flightdelay application!", err)
	}

	// create the cmux object that will multiplex 2 protocols on same port
	mux := cmux.New(listener)
	// match gRPC requests, otherwise regular HTTP requests
	grpcListener := mux.Match(cmux.HTTP2HeaderField("content-type", "application/grpc"))
	httpListener := mux.Match(cmux.Any())

	grpcServer := NewGRPCServer(configs, gateway)

	httpframework.Init(configs)
	router := httpframework.Instance()
	predict.RegisterRoutes(router, set.SplitCSV(configs.Configs.PredictRoutes), gateway)
	httpServer := &http.Server{
		Handler: router,
	}

	// Collect on this channel,the exits of each protocol's .Serve() call
	eps := make(chan error, 2)
	go func() { eps <- grpcServer.Serve(grpcListener) }()
	go func() { eps <- httpServer.Serve(httpListener) }()

	logger.Info(fmt.Sprintf("flightdelay started at port on %s", address))
	handleErrors(mux, eps)
}

// NewGRPCServer builds the gRPC server with the predictor, health and reflection services.
func NewGRPCServer(configs *configs.AppConfigs, gateway *predict.Gateway) *grpc.Server {
	middleware.InitGRPCMiddleware(configs.Configs.LogRequestHeaders)
	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(middleware.RecoveryInterceptor, middleware.WrappedGRPCMiddleware),
	)
	predict.RegisterPredictorServer(grpcServer, &predict.Predictor{Gateway: gateway})

	healthServer := health.NewServer()
	healthServer.SetServingStatus(predict.PredictorServiceName, healthpb.HealthCheckResponse_SERVING)
	healthpb.RegisterHealthServer(grpcServer, healthServer)

	reflection.Register(grpcServer)
	return grpcServer
}

func handleErrors(mux cmux.CMux, eps chan error) {
	err := mux.Serve()
	var failed bool
	if err != nil {
		logger.Error("cmux serve error", err)
		failed = true
	}
	var i int
	for err := range eps {
		if err != nil {
			logger.Error("protocol serve error", err)
			failed = true
		}
		i++
		if i == cap(eps) {
			close(eps)
			break
		}
	}
	if failed {
		os.Exit(1)
	}
}
