package predict

import (
	"context"
	"fmt"
	"time"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/features"
	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/logger"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/metrics"
	"github.com/Meesho/BharatMLStack/flightdelay/pkg/mlmodel"
	"github.com/go-gota/gota/dataframe"
)

// inference stages, in call order
const (
	StageRegression       = "regression"
	StageClassification   = "classification"
	StageGradientBoosting = "gradient_boosting"
	StagePreprocessor     = "preprocessor"
	StageClustering       = "clustering"
)

// Gateway validates a request, builds its feature record and runs every
// configured model on it. It holds no per-request state.
type Gateway struct {
	models                   *mlmodel.Set
	predictionLoggingPercent int
}

func NewGateway(set *mlmodel.Set, predictionLoggingPercent int) *Gateway {
	return &Gateway{models: set, predictionLoggingPercent: predictionLoggingPercent}
}

// Predict returns either a complete response or an error; partial results are
// never returned.
func (g *Gateway) Predict(ctx context.Context, req *models.PredictionRequest) (*models.PredictionResponse, error) {
	if err := validate(req); err != nil {
		return nil, err
	}
	record, err := features.Build(req)
	if err != nil {
		return nil, err
	}
	frame := record.Frame()

	resp := &models.PredictionResponse{}
	resp.RegressionPrediction, err = g.regress(req, StageRegression, g.models.Regression, frame)
	if err != nil {
		return nil, err
	}
	resp.ClassificationPrediction, err = g.classify(req, frame)
	if err != nil {
		return nil, err
	}
	resp.GradientBoostingPrediction, err = g.regress(req, StageGradientBoosting, g.models.GradientBoosting, frame)
	if err != nil {
		return nil, err
	}
	if g.models.ClusteringConfigured() {
		cluster, err := g.cluster(req, frame)
		if err != nil {
			return nil, err
		}
		resp.Cluster = &cluster
	}

	g.logPrediction(ctx, req, resp)
	return resp, nil
}

// validate checks required keys in a fixed order so the reported field is deterministic.
func validate(req *models.PredictionRequest) error {
	if req == nil || req.Date == nil {
		return &errors.MissingFieldError{Field: "date"}
	}
	if req.Carrier == nil {
		return &errors.MissingFieldError{Field: "carrier"}
	}
	if req.Origin == nil {
		return &errors.MissingFieldError{Field: "origin"}
	}
	return nil
}

func (g *Gateway) regress(req *models.PredictionRequest, stage string, model mlmodel.Regressor, frame dataframe.DataFrame) (float64, error) {
	t := time.Now()
	out, err := model.Predict(frame)
	observe(stage, t, err)
	if err == nil && len(out) == 0 {
		err = fmt.Errorf("model returned no output")
	}
	if err != nil {
		return 0, stageError(req, stage, err)
	}
	logger.Debug(fmt.Sprintf("%s stage output: %v", stage, out[0]))
	return out[0], nil
}

func (g *Gateway) classify(req *models.PredictionRequest, frame dataframe.DataFrame) (mlmodel.Label, error) {
	t := time.Now()
	out, err := g.models.Classification.Classify(frame)
	observe(StageClassification, t, err)
	if err == nil && len(out) == 0 {
		err = fmt.Errorf("model returned no output")
	}
	if err != nil {
		return mlmodel.Label{}, stageError(req, StageClassification, err)
	}
	logger.Debug(fmt.Sprintf("%s stage output: %s", StageClassification, out[0]))
	return out[0], nil
}

func (g *Gateway) cluster(req *models.PredictionRequest, frame dataframe.DataFrame) (int, error) {
	t := time.Now()
	x, err := g.models.Preprocessor.Transform(frame)
	observe(StagePreprocessor, t, err)
	if err != nil {
		return 0, stageError(req, StagePreprocessor, err)
	}

	t = time.Now()
	out, err := g.models.Clustering.Assign(x)
	observe(StageClustering, t, err)
	if err == nil && len(out) == 0 {
		err = fmt.Errorf("model returned no output")
	}
	if err != nil {
		return 0, stageError(req, StageClustering, err)
	}
	logger.Debug(fmt.Sprintf("%s stage output: %d", StageClustering, out[0]))
	return out[0], nil
}

func observe(stage string, start time.Time, err error) {
	tags := []string{"stage:" + stage}
	metrics.Timing("flightdelay.predict.stage.latency", time.Since(start), tags)
	if err != nil {
		metrics.Count("flightdelay.predict.stage.error", 1, tags)
	}
}

func stageError(req *models.PredictionRequest, stage string, err error) error {
	logger.ErrorWithFields(fmt.Sprintf("Error running %s model", stage), err, map[string]interface{}{
		"stage":   stage,
		"date":    req.GetDate(),
		"carrier": req.GetCarrier(),
		"origin":  req.GetOrigin(),
	})
	return &errors.ModelInferenceError{Stage: stage, Err: err}
}
