package similarity

import "sort"

// OneHot encodes categorical values. Categories are fixed by Fit.
type OneHot struct {
	categories []string
	index      map[string]int
}

// FitOneHot learns the sorted set of distinct values.
func FitOneHot(values []string) *OneHot {
	index := make(map[string]int)
	for _, v := range values {
		index[v] = 0
	}
	categories := make([]string, 0, len(index))
	for v := range index {
		categories = append(categories, v)
	}
	sort.Strings(categories)
	for i, c := range categories {
		index[c] = i
	}
	return &OneHot{categories: categories, index: index}
}

// Categories returns the learned columns in order.
func (o *OneHot) Categories() []string {
	return o.categories
}

// Transform returns one row per value. Values not seen by Fit encode as all zeros.
func (o *OneHot) Transform(values []string) [][]float64 {
	rows := make([][]float64, len(values))
	for i, v := range values {
		row := make([]float64, len(o.categories))
		if j, ok := o.index[v]; ok {
			row[j] = 1
		}
		rows[i] = row
	}
	return rows
}
