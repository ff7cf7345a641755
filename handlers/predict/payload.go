package predict

import (
	"fmt"

	"github.com/Meesho/BharatMLStack/flightdelay/handlers/models"
	"github.com/Meesho/BharatMLStack/flightdelay/internal/errors"
	"google.golang.org/protobuf/types/known/structpb"
)

const (
	fieldDate    = "date"
	fieldCarrier = "carrier"
	fieldOrigin  = "origin"
)

// requestFromStruct reads the request keys from a protobuf Struct in date,
// carrier, origin order. Absent and null values stay nil so validation reports
// them as missing.
func requestFromStruct(in *structpb.Struct) (*models.PredictionRequest, error) {
	req := &models.PredictionRequest{}
	fields := in.GetFields()
	for _, field := range []struct {
		name   string
		target **string
	}{
		{fieldDate, &req.Date},
		{fieldCarrier, &req.Carrier},
		{fieldOrigin, &req.Origin},
	} {
		name, target := field.name, field.target
		value, ok := fields[name]
		if !ok {
			continue
		}
		switch kind := value.GetKind().(type) {
		case *structpb.Value_NullValue:
		case *structpb.Value_StringValue:
			s := kind.StringValue
			*target = &s
		default:
			return nil, &errors.ParsingError{ErrorMsg: fmt.Sprintf("field %s must be a string", name)}
		}
	}
	return req, nil
}

func responseFields(resp *models.PredictionResponse) map[string]interface{} {
	fields := map[string]interface{}{
		"regression_prediction":        resp.RegressionPrediction,
		"classification_prediction":    resp.ClassificationPrediction.Value(),
		"gradient_boosting_prediction": resp.GradientBoostingPrediction,
	}
	if resp.Cluster != nil {
		fields["cluster"] = *resp.Cluster
	}
	return fields
}

func responseToStruct(resp *models.PredictionResponse) (*structpb.Struct, error) {
	return structpb.NewStruct(responseFields(resp))
}
