package similarity

import (
	"math"
	"strings"
	"unicode/utf8"
)

// FeatureNames is the column order of every feature vector. Models persist it
// and are rejected when it does not match.
var FeatureNames = []string{
	"length_diff",
	"length_ratio",
	"word_count_diff",
	"word_count_ratio",
	"exact_match",
	"contains_same_words",
	"tfidf_similarity",
}

// NumFeatures is len(FeatureNames).
var NumFeatures = len(FeatureNames)

// ExtractFeatures computes the feature vector for a pair of raw titles.
// A nil vectorizer means tfidf_similarity is computed with a vectorizer
// fitted on just these two titles.
func ExtractFeatures(title1, title2 string, vec *Vectorizer) []float64 {
	a, b := Normalize(title1), Normalize(title2)

	lenA, lenB := utf8.RuneCountInString(a), utf8.RuneCountInString(b)
	wordsA, wordsB := strings.Fields(a), strings.Fields(b)

	exact := 0.0
	if a == b {
		exact = 1
	}

	var tfidf float64
	if vec != nil {
		tfidf = Cosine(vec.Transform(a), vec.Transform(b))
	} else {
		tfidf = pairCosine(a, b)
	}

	return []float64{
		math.Abs(float64(lenA - lenB)),
		ratio(lenA, lenB),
		math.Abs(float64(len(wordsA) - len(wordsB))),
		ratio(len(wordsA), len(wordsB)),
		exact,
		jaccard(wordsA, wordsB),
		tfidf,
	}
}

// ratio is shorter/longer, 0 when both are zero.
func ratio(x, y int) float64 {
	hi, lo := x, y
	if lo > hi {
		hi, lo = lo, hi
	}
	if hi == 0 {
		return 0
	}
	return float64(lo) / float64(hi)
}

func jaccard(a, b []string) float64 {
	set := make(map[string]uint8, len(a)+len(b))
	for _, w := range a {
		set[w] |= 1
	}
	for _, w := range b {
		set[w] |= 2
	}
	if len(set) == 0 {
		return 0
	}
	var both int
	for _, m := range set {
		if m == 3 {
			both++
		}
	}
	return float64(both) / float64(len(set))
}
