package mlmodel

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/mat"
)

const (
	StepOneHot         = "one_hot"
	StepStandardScaler = "standard_scaler"
	StepPassthrough    = "passthrough"

	HandleUnknownIgnore = "ignore"
	HandleUnknownError  = "error"
)

// Step encodes a group of named columns. Columns not named by any step are dropped.
type Step struct {
	Type          string     `json:"type"`
	Columns       []string   `json:"columns"`
	Categories    [][]string `json:"categories,omitempty"`
	HandleUnknown string     `json:"handle_unknown,omitempty"`
	Mean          []float64  `json:"mean,omitempty"`
	Scale         []float64  `json:"scale,omitempty"`

	index []map[string]int
}

func (s *Step) width() int {
	if s.Type != StepOneHot {
		return len(s.Columns)
	}
	w := 0
	for _, c := range s.Categories {
		w += len(c)
	}
	return w
}

func (s *Step) validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("%s step has no columns", s.Type)
	}
	switch s.Type {
	case StepOneHot:
		if len(s.Categories) != len(s.Columns) {
			return fmt.Errorf("one_hot step has %d category lists for %d columns", len(s.Categories), len(s.Columns))
		}
		switch s.HandleUnknown {
		case "":
			s.HandleUnknown = HandleUnknownError
		case HandleUnknownIgnore, HandleUnknownError:
		default:
			return fmt.Errorf("unsupported handle_unknown %q", s.HandleUnknown)
		}
		s.index = make([]map[string]int, len(s.Categories))
		for i, categories := range s.Categories {
			s.index[i] = make(map[string]int, len(categories))
			for j, category := range categories {
				s.index[i][category] = j
			}
		}
	case StepStandardScaler:
		if len(s.Mean) != len(s.Columns) || len(s.Scale) != len(s.Columns) {
			return fmt.Errorf("standard_scaler step needs mean and scale for each of %d columns", len(s.Columns))
		}
	case StepPassthrough:
	default:
		return fmt.Errorf("unsupported step type %q", s.Type)
	}
	return nil
}

// encode writes the step's output for every row into out, starting at column offset.
func (s *Step) encode(frame dataframe.DataFrame, out *mat.Dense, offset int) error {
	rows := frame.Nrow()
	for i, name := range s.Columns {
		col := frame.Col(name)
		if col.Err != nil {
			return fmt.Errorf("column %s: %w", name, col.Err)
		}
		if s.Type == StepOneHot {
			values := col.Records()
			for r := 0; r < rows; r++ {
				j, ok := s.index[i][values[r]]
				if !ok {
					if s.HandleUnknown == HandleUnknownIgnore {
						continue
					}
					return fmt.Errorf("unknown category %q in column %s", values[r], name)
				}
				out.Set(r, offset+j, 1)
			}
			offset += len(s.Categories[i])
			continue
		}

		values := col.Float()
		for r := 0; r < rows; r++ {
			v := values[r]
			if math.IsNaN(v) {
				return fmt.Errorf("column %s has a non-numeric value at row %d", name, r)
			}
			if s.Type == StepStandardScaler {
				scale := s.Scale[i]
				if scale == 0 {
					scale = 1
				}
				v = (v - s.Mean[i]) / scale
			}
			out.Set(r, offset, v)
		}
		offset++
	}
	return nil
}

// ColumnTransformer turns named frame columns into the numeric matrix an estimator consumes.
type ColumnTransformer struct {
	Meta
	Transformers []Step `json:"transformers"`

	width int
}

func (c *ColumnTransformer) validate() error {
	if len(c.Transformers) == 0 {
		return fmt.Errorf("column transformer has no steps")
	}
	c.width = 0
	for i := range c.Transformers {
		if err := c.Transformers[i].validate(); err != nil {
			return err
		}
		c.width += c.Transformers[i].width()
	}
	if c.width == 0 {
		return fmt.Errorf("column transformer produces no output columns")
	}
	return nil
}

func (c *ColumnTransformer) Width() int {
	return c.width
}

func (c *ColumnTransformer) Transform(frame dataframe.DataFrame) (*mat.Dense, error) {
	if frame.Err != nil {
		return nil, frame.Err
	}
	if frame.Nrow() == 0 {
		return nil, fmt.Errorf("empty frame")
	}
	out := mat.NewDense(frame.Nrow(), c.width, nil)
	offset := 0
	for i := range c.Transformers {
		step := &c.Transformers[i]
		if err := step.encode(frame, out, offset); err != nil {
			return nil, err
		}
		offset += step.width()
	}
	return out, nil
}

// encoder is embedded by estimators: either a nested column transformer or a
// list of numeric columns used as-is.
type encoder struct {
	Preprocessor *ColumnTransformer `json:"preprocessor,omitempty"`
	FeatureNames []string           `json:"feature_names,omitempty"`

	passthrough *ColumnTransformer
}

func (e *encoder) validateEncoder() error {
	if e.Preprocessor != nil {
		return e.Preprocessor.validate()
	}
	if len(e.FeatureNames) == 0 {
		return fmt.Errorf("needs a preprocessor or feature_names")
	}
	e.passthrough = &ColumnTransformer{Transformers: []Step{{Type: StepPassthrough, Columns: e.FeatureNames}}}
	return e.passthrough.validate()
}

func (e *encoder) encode(frame dataframe.DataFrame) (*mat.Dense, error) {
	if e.Preprocessor != nil {
		return e.Preprocessor.Transform(frame)
	}
	return e.passthrough.Transform(frame)
}

func (e *encoder) encodedWidth() int {
	if e.Preprocessor != nil {
		return e.Preprocessor.Width()
	}
	return e.passthrough.Width()
}
