package similarity

import (
	"gonum.org/v1/gonum/stat"
)

// zeroScaleTolerance mirrors the threshold below which a column is treated as constant.
const zeroScaleTolerance = 1e-12

// Standardize rescales each column to zero mean and unit population variance.
// A constant column is centered but not scaled.
func Standardize(columns [][]float64) [][]float64 {
	out := make([][]float64, len(columns))
	for i, col := range columns {
		mean, std := stat.PopMeanStdDev(col, nil)
		if std < zeroScaleTolerance {
			std = 1
		}
		scaled := make([]float64, len(col))
		for j, v := range col {
			scaled[j] = (v - mean) / std
		}
		out[i] = scaled
	}
	return out
}
