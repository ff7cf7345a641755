package models

import "github.com/Meesho/BharatMLStack/flightdelay/pkg/mlmodel"

// PredictionRequest is the raw request body. Pointer fields let a missing key
// be told apart from an empty string.
type PredictionRequest struct {
	Date    *string `json:"date"`
	Carrier *string `json:"carrier"`
	Origin  *string `json:"origin"`
}

func (r *PredictionRequest) GetDate() string {
	if r == nil || r.Date == nil {
		return ""
	}
	return *r.Date
}

func (r *PredictionRequest) GetCarrier() string {
	if r == nil || r.Carrier == nil {
		return ""
	}
	return *r.Carrier
}

func (r *PredictionRequest) GetOrigin() string {
	if r == nil || r.Origin == nil {
		return ""
	}
	return *r.Origin
}

type PredictionResponse struct {
	RegressionPrediction       float64       `json:"regression_prediction"`
	ClassificationPrediction   mlmodel.Label `json:"classification_prediction"`
	GradientBoostingPrediction float64       `json:"gradient_boosting_prediction"`
	Cluster                    *int          `json:"cluster,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
