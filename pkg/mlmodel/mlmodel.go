package mlmodel

import (
	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

const (
	KindColumnTransformer         = "column_transformer"
	KindLinearRegression          = "linear_regression"
	KindLogisticRegression        = "logistic_regression"
	KindRandomForestClassifier    = "random_forest_classifier"
	KindGradientBoostingRegressor = "gradient_boosting_regressor"
	KindKMeans                    = "kmeans"
)

// Model is any decoded artifact. Capabilities are exposed through the
// narrower interfaces below; a model may implement more than one.
type Model interface {
	Kind() string
	Name() string
}

// Regressor returns one value per frame row.
type Regressor interface {
	Predict(frame dataframe.DataFrame) ([]float64, error)
}

// Classifier returns one class label per frame row.
type Classifier interface {
	Classify(frame dataframe.DataFrame) ([]Label, error)
}

// Transformer encodes frame rows into a numeric matrix.
type Transformer interface {
	Transform(frame dataframe.DataFrame) (*mat.Dense, error)
	Width() int
}

// Clusterer assigns each encoded row to a cluster index.
type Clusterer interface {
	Assign(x mat.Matrix) ([]int, error)
}

type Meta struct {
	ModelKind string `json:"kind"`
	ModelName string `json:"name"`
}

func (m Meta) Kind() string {
	return m.ModelKind
}

func (m Meta) Name() string {
	return m.ModelName
}
