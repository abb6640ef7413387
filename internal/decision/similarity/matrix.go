package similarity

import (
	"errors"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"procurement-workers/internal/models"
)

// ErrEmptyCatalog is returned when there is nothing to build features from.
var ErrEmptyCatalog = errors.New("empty catalog")

// BuildFeatures turns a catalog snapshot into one feature row per product:
// standardized baseCost and price, one-hot category, then TF-IDF of the joined
// feature tags. Nothing is cached between calls.
func BuildFeatures(catalog []models.Product) (*mat.Dense, error) {
	if len(catalog) == 0 {
		return nil, ErrEmptyCatalog
	}

	costs := make([]float64, len(catalog))
	prices := make([]float64, len(catalog))
	categories := make([]string, len(catalog))
	docs := make([]string, len(catalog))
	for i, p := range catalog {
		p = p.WithDefaults()
		costs[i] = p.BaseCost
		prices[i] = p.Price
		categories[i] = p.Category
		docs[i] = strings.Join(p.Features, " ")
	}

	numeric := Standardize([][]float64{costs, prices})

	encoder := FitOneHot(categories)
	categorical := encoder.Transform(categories)

	vectorizer, err := FitTFIDF(docs)
	if err != nil {
		return nil, err
	}
	text := vectorizer.Transform(docs)

	width := len(numeric) + len(encoder.Categories()) + len(vectorizer.Vocabulary())
	data := make([]float64, 0, len(catalog)*width)
	for i := range catalog {
		for _, col := range numeric {
			data = append(data, col[i])
		}
		data = append(data, categorical[i]...)
		data = append(data, text[i]...)
	}
	return mat.NewDense(len(catalog), width, data), nil
}

// CosineMatrix returns pairwise cosine similarity between the rows of x.
// Zero rows have similarity 0 with every row, themselves included.
func CosineMatrix(x *mat.Dense) *mat.SymDense {
	r, _ := x.Dims()
	unit := mat.DenseCopyOf(x)
	for i := 0; i < r; i++ {
		normalize(unit.RawRowView(i))
	}
	sim := mat.NewSymDense(r, nil)
	sim.SymOuterK(1, unit)
	return sim
}

// normalize scales v to unit L2 norm in place. A zero vector is left alone.
func normalize(v []float64) {
	if n := floats.Norm(v, 2); n > 0 {
		floats.Scale(1/n, v)
	}
}
