package mlmodel

import (
	"encoding/json"
	"fmt"
)

// Decode parses a JSON model artifact and validates its parameters.
func Decode(data []byte) (Model, error) {
	var meta Meta
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("invalid model artifact: %w", err)
	}

	var model interface {
		Model
		validate() error
	}
	switch meta.ModelKind {
	case KindColumnTransformer:
		model = &ColumnTransformer{}
	case KindLinearRegression:
		model = &LinearRegression{}
	case KindLogisticRegression:
		model = &LogisticRegression{}
	case KindRandomForestClassifier:
		model = &RandomForestClassifier{}
	case KindGradientBoostingRegressor:
		model = &GradientBoostingRegressor{}
	case KindKMeans:
		model = &KMeans{}
	case "":
		return nil, fmt.Errorf("model artifact has no kind")
	default:
		return nil, fmt.Errorf("unsupported model kind %q", meta.ModelKind)
	}

	if err := json.Unmarshal(data, model); err != nil {
		return nil, fmt.Errorf("invalid %s artifact: %w", meta.ModelKind, err)
	}
	if err := model.validate(); err != nil {
		return nil, fmt.Errorf("invalid %s artifact %q: %w", meta.ModelKind, meta.ModelName, err)
	}
	return model, nil
}
