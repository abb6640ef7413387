// internal/signals/news/scorer.go
package news

import (
	"regexp"
	"strings"
)

// Scorer turns a piece of text into a sentiment polarity in [-1, 1].
type Scorer interface {
	Polarity(text string) float64
}

// LexiconScorer averages the polarity of known words. A negator directly
// before a word flips and halves it; an intensifier scales it.
type LexiconScorer struct {
	words        map[string]float64
	negators     map[string]struct{}
	intensifiers map[string]float64
}

var wordPattern = regexp.MustCompile(`[a-z']+`)

var defaultLexicon = map[string]float64{
	"boom": 0.6, "booming": 0.7, "demand": 0.2, "growth": 0.5, "growing": 0.4, "surge": 0.6,
	"surging": 0.6, "strong": 0.4, "record": 0.5, "popular": 0.6, "best": 1.0, "better": 0.5,
	"good": 0.7, "great": 0.8, "excellent": 1.0, "success": 0.6, "successful": 0.75, "gain": 0.4,
	"gains": 0.4, "rise": 0.3, "rising": 0.3, "soar": 0.6, "soaring": 0.6, "positive": 0.23,
	"improve": 0.4, "improved": 0.4, "innovative": 0.5, "love": 0.5, "hot": 0.25, "win": 0.8,
	"bad": -0.7, "worse": -0.4, "worst": -1.0, "weak": -0.375, "decline": -0.4, "declining": -0.4,
	"drop": -0.3, "falling": -0.3, "fall": -0.3, "slump": -0.6, "shortage": -0.4, "recall": -0.5,
	"recalled": -0.5, "loss": -0.5, "losses": -0.5, "negative": -0.3, "poor": -0.4, "crisis": -0.6,
	"disruption": -0.4, "delay": -0.3, "delays": -0.3, "tariff": -0.1, "tariffs": -0.1, "ban": -0.4,
	"lawsuit": -0.5, "defective": -0.6, "fail": -0.5, "failure": -0.5, "slow": -0.3, "risk": -0.2,
}

var defaultNegators = []string{"not", "no", "never", "isn't", "aren't", "wasn't", "don't", "doesn't", "didn't", "won't"}

var defaultIntensifiers = map[string]float64{
	"very": 1.3, "extremely": 1.5, "highly": 1.3, "really": 1.2, "slightly": 0.6, "somewhat": 0.7,
}

func NewLexiconScorer() *LexiconScorer {
	neg := make(map[string]struct{}, len(defaultNegators))
	for _, w := range defaultNegators {
		neg[w] = struct{}{}
	}
	return &LexiconScorer{words: defaultLexicon, negators: neg, intensifiers: defaultIntensifiers}
}

func (s *LexiconScorer) Polarity(text string) float64 {
	tokens := wordPattern.FindAllString(strings.ToLower(text), -1)

	var sum float64
	var n int
	modifier := 1.0
	for _, tok := range tokens {
		if _, ok := s.negators[tok]; ok {
			modifier *= -0.5
			continue
		}
		if m, ok := s.intensifiers[tok]; ok {
			modifier *= m
			continue
		}
		if w, ok := s.words[tok]; ok {
			sum += clamp(w * modifier)
			n++
		}
		modifier = 1.0
	}
	if n == 0 {
		return 0
	}
	return clamp(sum / float64(n))
}

func clamp(v float64) float64 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}

// MeanPolarity scores every article as "title. description" and averages. No articles scores 0.
func MeanPolarity(scorer Scorer, articles []Article) float64 {
	if len(articles) == 0 {
		return 0
	}
	var sum float64
	for _, a := range articles {
		sum += scorer.Polarity(a.Title + ". " + a.Description)
	}
	return sum / float64(len(articles))
}
