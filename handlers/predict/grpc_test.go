package predict

import (
	"context"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"
)

func mustStruct(t *testing.T, fields map[string]interface{}) *structpb.Struct {
	t.Helper()
	s, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return s
}

func TestPredictor_Predict(t *testing.T) {
	predictor := &Predictor{Gateway: NewGateway(newFakes().set(true), 0)}

	out, err := predictor.Predict(context.Background(), mustStruct(t, map[string]interface{}{
		"date": "2024-01-15", "carrier": "AA", "origin": "JFK",
	}))
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"regression_prediction":        12.5,
		"classification_prediction":    float64(1),
		"gradient_boosting_prediction": 10.2,
		"cluster":                      float64(3),
	}, out.AsMap())
}

func TestPredictor_Errors(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
		code   codes.Code
	}{
		{name: "missing origin", fields: map[string]interface{}{"date": "2024-01-15", "carrier": "AA"}, code: codes.InvalidArgument},
		{name: "null date", fields: map[string]interface{}{"date": nil, "carrier": "AA", "origin": "JFK"}, code: codes.InvalidArgument},
		{name: "non-string carrier", fields: map[string]interface{}{"date": "2024-01-15", "carrier": 7, "origin": "JFK"}, code: codes.InvalidArgument},
		{name: "invalid date", fields: map[string]interface{}{"date": "15/01/2024", "carrier": "AA", "origin": "JFK"}, code: codes.InvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			predictor := &Predictor{Gateway: NewGateway(newFakes().set(true), 0)}
			_, err := predictor.Predict(context.Background(), mustStruct(t, tt.fields))
			assert.Equal(t, tt.code, status.Code(err))
		})
	}
}

func TestPredictorService_OverGRPC(t *testing.T) {
	listener := bufconn.Listen(1 << 20)
	server := grpc.NewServer()
	f := newFakes()
	f.clustering.err = assert.AnError
	RegisterPredictorServer(server, &Predictor{Gateway: NewGateway(f.set(true), 0)})
	go func() { _ = server.Serve(listener) }()
	defer server.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return listener.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	defer conn.Close()

	in := mustStruct(t, map[string]interface{}{"date": "2024-01-15", "carrier": "AA", "origin": "JFK"})
	out := &structpb.Struct{}
	err = conn.Invoke(context.Background(), "/"+PredictorServiceName+"/Predict", in, out)
	assert.Equal(t, codes.Internal, status.Code(err))
	assert.Contains(t, status.Convert(err).Message(), "clustering model inference failed")
}

func TestRequestFromStruct_ReportsFirstBadFieldInOrder(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]interface{}
		errMsg string
	}{
		{name: "all non-string", fields: map[string]interface{}{"date": 1, "carrier": true, "origin": 3}, errMsg: "field date must be a string"},
		{name: "carrier and origin", fields: map[string]interface{}{"date": "2024-01-15", "carrier": 2, "origin": []interface{}{"JFK"}}, errMsg: "field carrier must be a string"},
		{name: "origin only", fields: map[string]interface{}{"date": "2024-01-15", "carrier": "AA", "origin": 3}, errMsg: "field origin must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := mustStruct(t, tt.fields)
			// repeated to rule out map iteration order
			for i := 0; i < 20; i++ {
				_, err := requestFromStruct(in)
				assert.EqualError(t, err, tt.errMsg)
			}
		})
	}
}
