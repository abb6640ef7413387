package similarity

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// ErrEmptyVocabulary is returned when no document contains a usable token.
var ErrEmptyVocabulary = errors.New("empty vocabulary: documents contain only stop words or no tokens")

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// Tokenize lower-cases doc, splits it into runs of two or more word characters
// and drops stop words.
func Tokenize(doc string) []string {
	raw := tokenPattern.FindAllString(strings.ToLower(doc), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if !IsStopWord(tok) {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// TFIDF is a fitted term weighting over a fixed vocabulary.
type TFIDF struct {
	vocabulary []string
	index      map[string]int
	idf        []float64
}

// FitTFIDF builds the vocabulary and smoothed inverse document frequencies.
func FitTFIDF(docs []string) (*TFIDF, error) {
	df := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, tok := range Tokenize(doc) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			df[tok]++
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	vocab := make([]string, 0, len(df))
	for term := range df {
		vocab = append(vocab, term)
	}
	sort.Strings(vocab)

	n := float64(len(docs))
	index := make(map[string]int, len(vocab))
	idf := make([]float64, len(vocab))
	for i, term := range vocab {
		index[term] = i
		idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}
	return &TFIDF{vocabulary: vocab, index: index, idf: idf}, nil
}

// Vocabulary returns the terms in column order.
func (t *TFIDF) Vocabulary() []string {
	return t.vocabulary
}

// Transform weights raw term counts by idf and L2-normalizes each row.
// Out-of-vocabulary terms are ignored.
func (t *TFIDF) Transform(docs []string) [][]float64 {
	rows := make([][]float64, len(docs))
	for i, doc := range docs {
		row := make([]float64, len(t.vocabulary))
		for _, tok := range Tokenize(doc) {
			if j, ok := t.index[tok]; ok {
				row[j]++
			}
		}
		for j := range row {
			row[j] *= t.idf[j]
		}
		normalize(row)
		rows[i] = row
	}
	return rows
}
