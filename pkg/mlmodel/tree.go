package mlmodel

import (
	"fmt"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/gonum/floats"
)

const leafNode = -1

// Tree is a fitted decision tree in flattened array form. Node i is a leaf
// when ChildrenLeft[i] is -1; otherwise rows with x[Feature[i]] <= Threshold[i]
// go left.
type Tree struct {
	ChildrenLeft  []int       `json:"children_left"`
	ChildrenRight []int       `json:"children_right"`
	Feature       []int       `json:"feature"`
	Threshold     []float64   `json:"threshold"`
	Value         [][]float64 `json:"value"`
}

func (t *Tree) validate(width, valueLen int) error {
	n := len(t.ChildrenLeft)
	if n == 0 {
		return fmt.Errorf("tree has no nodes")
	}
	if len(t.ChildrenRight) != n || len(t.Feature) != n || len(t.Threshold) != n || len(t.Value) != n {
		return fmt.Errorf("tree node arrays have different lengths")
	}
	for i := 0; i < n; i++ {
		if t.ChildrenLeft[i] == leafNode {
			if len(t.Value[i]) != valueLen {
				return fmt.Errorf("leaf %d has %d values, expected %d", i, len(t.Value[i]), valueLen)
			}
			continue
		}
		if t.ChildrenLeft[i] <= i || t.ChildrenLeft[i] >= n || t.ChildrenRight[i] <= i || t.ChildrenRight[i] >= n {
			return fmt.Errorf("node %d has children out of range", i)
		}
		if t.Feature[i] < 0 || t.Feature[i] >= width {
			return fmt.Errorf("node %d splits on feature %d of %d", i, t.Feature[i], width)
		}
	}
	return nil
}

// leaf walks the tree for one encoded row. Children always have a higher index
// than their parent, so the walk terminates.
func (t *Tree) leaf(x []float64) []float64 {
	node := 0
	for t.ChildrenLeft[node] != leafNode {
		if x[t.Feature[node]] <= t.Threshold[node] {
			node = t.ChildrenLeft[node]
		} else {
			node = t.ChildrenRight[node]
		}
	}
	return t.Value[node]
}

type GradientBoostingRegressor struct {
	Meta
	encoder
	Init         float64 `json:"init"`
	LearningRate float64 `json:"learning_rate"`
	Trees        []Tree  `json:"trees"`
}

func (g *GradientBoostingRegressor) validate() error {
	if err := g.validateEncoder(); err != nil {
		return err
	}
	if len(g.Trees) == 0 {
		return fmt.Errorf("no trees")
	}
	if g.LearningRate <= 0 {
		return fmt.Errorf("learning_rate must be positive, got %v", g.LearningRate)
	}
	for i := range g.Trees {
		if err := g.Trees[i].validate(g.encodedWidth(), 1); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

func (g *GradientBoostingRegressor) Predict(frame dataframe.DataFrame) ([]float64, error) {
	x, err := g.encode(frame)
	if err != nil {
		return nil, err
	}
	rows, _ := x.Dims()
	out := make([]float64, rows)
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		sum := 0.0
		for t := range g.Trees {
			sum += g.Trees[t].leaf(row)[0]
		}
		out[i] = g.Init + g.LearningRate*sum
	}
	return out, nil
}

// RandomForestClassifier averages the normalised class distribution of each
// tree's leaf and picks the most probable class.
type RandomForestClassifier struct {
	Meta
	encoder
	Classes []Label `json:"classes"`
	Trees   []Tree  `json:"trees"`
}

func (r *RandomForestClassifier) validate() error {
	if err := r.validateEncoder(); err != nil {
		return err
	}
	if len(r.Classes) < 2 {
		return fmt.Errorf("needs at least two classes, got %d", len(r.Classes))
	}
	if len(r.Trees) == 0 {
		return fmt.Errorf("no trees")
	}
	for i := range r.Trees {
		if err := r.Trees[i].validate(r.encodedWidth(), len(r.Classes)); err != nil {
			return fmt.Errorf("tree %d: %w", i, err)
		}
	}
	return nil
}

func (r *RandomForestClassifier) Classify(frame dataframe.DataFrame) ([]Label, error) {
	x, err := r.encode(frame)
	if err != nil {
		return nil, err
	}
	rows, _ := x.Dims()
	out := make([]Label, rows)
	proba := make([]float64, len(r.Classes))
	for i := 0; i < rows; i++ {
		row := x.RawRowView(i)
		for k := range proba {
			proba[k] = 0
		}
		for t := range r.Trees {
			counts := r.Trees[t].leaf(row)
			total := floats.Sum(counts)
			if total == 0 {
				continue
			}
			floats.AddScaled(proba, 1/total, counts)
		}
		out[i] = r.Classes[floats.MaxIdx(proba)]
	}
	return out, nil
}
