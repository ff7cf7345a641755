package mlmodel

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

// KMeans assigns rows that were already encoded by a separate preprocessor.
type KMeans struct {
	Meta
	ClusterCenters [][]float64 `json:"cluster_centers"`
}

func (k *KMeans) validate() error {
	if len(k.ClusterCenters) == 0 {
		return fmt.Errorf("no cluster centers")
	}
	width := len(k.ClusterCenters[0])
	if width == 0 {
		return fmt.Errorf("cluster centers are empty")
	}
	for i, center := range k.ClusterCenters {
		if len(center) != width {
			return fmt.Errorf("cluster center %d has %d values, expected %d", i, len(center), width)
		}
	}
	return nil
}

func (k *KMeans) Width() int {
	return len(k.ClusterCenters[0])
}

func (k *KMeans) Assign(x mat.Matrix) ([]int, error) {
	rows, cols := x.Dims()
	if cols != k.Width() {
		return nil, fmt.Errorf("encoded row has %d values, cluster centers have %d", cols, k.Width())
	}
	out := make([]int, rows)
	for i := 0; i < rows; i++ {
		row := rowOf(x, i)
		best, bestDistance := 0, floats.Distance(row, k.ClusterCenters[0], 2)
		for c := 1; c < len(k.ClusterCenters); c++ {
			if d := floats.Distance(row, k.ClusterCenters[c], 2); d < bestDistance {
				best, bestDistance = c, d
			}
		}
		out[i] = best
	}
	return out, nil
}

// rowOf copies row i of any matrix.
func rowOf(x mat.Matrix, i int) []float64 {
	return mat.Row(nil, i, x)
}
