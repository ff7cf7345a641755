package mlmodel

import "fmt"

// Set holds the models loaded at startup. It is never mutated afterwards and is
// shared by every request.
type Set struct {
	Regression       Regressor
	Classification   Classifier
	GradientBoosting Regressor

	// optional clustering stage, both or neither
	Preprocessor Transformer
	Clustering   Clusterer
}

func (s *Set) ClusteringConfigured() bool {
	return s.Preprocessor != nil && s.Clustering != nil
}

func (s *Set) Validate() error {
	if s.Regression == nil || s.Classification == nil || s.GradientBoosting == nil {
		return fmt.Errorf("regression, classification and gradient boosting models are required")
	}
	if (s.Preprocessor == nil) != (s.Clustering == nil) {
		return fmt.Errorf("clustering stage needs both a preprocessor and a clustering model")
	}
	if s.ClusteringConfigured() {
		if sized, ok := s.Clustering.(interface{ Width() int }); ok && sized.Width() != s.Preprocessor.Width() {
			return fmt.Errorf("preprocessor produces %d features, clustering model expects %d",
				s.Preprocessor.Width(), sized.Width())
		}
	}
	return nil
}
