package mlmodel

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
)

type LinearRegression struct {
	Meta
	encoder
	Coef      []float64 `json:"coef"`
	Intercept float64   `json:"intercept"`
}

func (l *LinearRegression) validate() error {
	if err := l.validateEncoder(); err != nil {
		return err
	}
	if len(l.Coef) != l.encodedWidth() {
		return fmt.Errorf("%d coefficients for %d encoded features", len(l.Coef), l.encodedWidth())
	}
	return nil
}

func (l *LinearRegression) Predict(frame dataframe.DataFrame) ([]float64, error) {
	x, err := l.encode(frame)
	if err != nil {
		return nil, err
	}
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		out[i] = floats.Dot(x.RawRowView(i), l.Coef) + l.Intercept
	}
	return out, nil
}

// LogisticRegression is binary when it carries a single coefficient row,
// multinomial when it carries one row per class.
type LogisticRegression struct {
	Meta
	encoder
	Classes   []Label     `json:"classes"`
	Coef      [][]float64 `json:"coef"`
	Intercept []float64   `json:"intercept"`
}

func (l *LogisticRegression) binary() bool {
	return len(l.Coef) == 1
}

func (l *LogisticRegression) validate() error {
	if err := l.validateEncoder(); err != nil {
		return err
	}
	if len(l.Classes) < 2 {
		return fmt.Errorf("needs at least two classes, got %d", len(l.Classes))
	}
	if l.binary() {
		if len(l.Classes) != 2 {
			return fmt.Errorf("single coefficient row needs exactly two classes, got %d", len(l.Classes))
		}
	} else if len(l.Coef) != len(l.Classes) {
		return fmt.Errorf("%d coefficient rows for %d classes", len(l.Coef), len(l.Classes))
	}
	if len(l.Intercept) != len(l.Coef) {
		return fmt.Errorf("%d intercepts for %d coefficient rows", len(l.Intercept), len(l.Coef))
	}
	for i, row := range l.Coef {
		if len(row) != l.encodedWidth() {
			return fmt.Errorf("coefficient row %d has %d values for %d encoded features", i, len(row), l.encodedWidth())
		}
	}
	return nil
}

func (l *LogisticRegression) Classify(frame dataframe.DataFrame) ([]Label, error) {
	x, err := l.encode(frame)
	if err != nil {
		return nil, err
	}
	rows, _ := x.Dims()
	out := make([]Label, rows)
	scores := make([]float64, len(l.Coef))
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		for k := range l.Coef {
			scores[k] = floats.Dot(row, l.Coef[k]) + l.Intercept[k]
		}
		if l.binary() {
			if sigmoid(scores[0]) >= 0.5 {
				out[i] = l.Classes[1]
			} else {
				out[i] = l.Classes[0]
			}
			continue
		}
		out[i] = l.Classes[floats.MaxIdx(scores)]
	}
	return out, nil
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}
