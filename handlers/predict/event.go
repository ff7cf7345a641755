package predict

import (
	"context"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/external/kafka"
	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/utils"
	"google.golang.org/protobuf/types/known/structpb"
)

// logPrediction publishes a sampled request+response event. The same query is
// consistently in or out of the sample for a whole day.
func (g *Gateway) logPrediction(_ context.Context, req *models.PredictionRequest, resp *models.PredictionResponse) {
	if !kafka.Enabled() {
		return
	}
	key := utils.JoinKey(req.GetDate(), req.GetCarrier(), req.GetOrigin())
	if !utils.IsEnableForKeyForToday(key, g.predictionLoggingPercent) {
		return
	}
	event, err := predictionEvent(req, resp, time.Now())
	if err != nil {
		logger.Error("Error building prediction event", err)
		return
	}
	kafka.PublishPredictionLog(req.GetCarrier(), event)
}

func predictionEvent(req *models.PredictionRequest, resp *models.PredictionResponse, at time.Time) (*structpb.Struct, error) {
	fields := responseFields(resp)
	fields[fieldDate] = req.GetDate()
	fields[fieldCarrier] = req.GetCarrier()
	fields[fieldOrigin] = req.GetOrigin()
	fields["logged_at"] = at.UTC().Format(time.RFC3339Nano)
	return structpb.NewStruct(fields)
}
