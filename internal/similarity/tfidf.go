package similarity

import (
	"errors"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"
)

var ErrEmptyVocabulary = errors.New("empty vocabulary: no title yields a usable term")

// Normalize folds a title the way every feature sees it: lower case, outer whitespace trimmed.
func Normalize(title string) string {
	return strings.TrimSpace(strings.ToLower(title))
}

// tokenize returns runs of at least two word runes (letters, numbers,
// combining marks, underscore).
func tokenize(doc string) []string {
	var tokens []string
	start := -1
	flush := func(end int) {
		if start >= 0 && utf8.RuneCountInString(doc[start:end]) >= 2 {
			tokens = append(tokens, doc[start:end])
		}
		start = -1
	}
	for i, r := range doc {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || unicode.Is(unicode.Mn, r) || r == '_' {
			if start < 0 {
				start = i
			}
			continue
		}
		flush(i)
	}
	flush(len(doc))
	return tokens
}

// terms expands a document into its unigrams followed by its bigrams.
func terms(doc string) []string {
	tokens := tokenize(strings.ToLower(doc))
	if len(tokens) < 2 {
		return tokens
	}
	out := make([]string, 0, 2*len(tokens)-1)
	out = append(out, tokens...)
	for i := 0; i+1 < len(tokens); i++ {
		out = append(out, tokens[i]+" "+tokens[i+1])
	}
	return out
}

// Vectorizer is a fitted word (1,2)-gram TF-IDF vectorizer.
type Vectorizer struct {
	Vocabulary map[string]int `json:"vocabulary"`
	IDF        []float64      `json:"idf"`
}

// SparseVector maps vocabulary indices to weights.
type SparseVector map[int]float64

// FitVectorizer learns vocabulary and smoothed IDF weights from docs.
// maxFeatures <= 0 keeps every term; otherwise the most frequent terms
// across the corpus are kept, ties broken alphabetically.
func FitVectorizer(docs []string, maxFeatures int) (*Vectorizer, error) {
	df := make(map[string]int)
	counts := make(map[string]int)
	for _, doc := range docs {
		seen := make(map[string]struct{})
		for _, t := range terms(doc) {
			counts[t]++
			if _, ok := seen[t]; !ok {
				seen[t] = struct{}{}
				df[t]++
			}
		}
	}
	if len(df) == 0 {
		return nil, ErrEmptyVocabulary
	}

	keys := make([]string, 0, len(df))
	for k := range df {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	if maxFeatures > 0 && len(keys) > maxFeatures {
		sort.SliceStable(keys, func(i, j int) bool { return counts[keys[i]] > counts[keys[j]] })
		keys = keys[:maxFeatures]
		sort.Strings(keys)
	}

	n := float64(len(docs))
	v := &Vectorizer{
		Vocabulary: make(map[string]int, len(keys)),
		IDF:        make([]float64, len(keys)),
	}
	for i, k := range keys {
		v.Vocabulary[k] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(df[k]))) + 1
	}
	return v, nil
}

// Transform returns the L2-normalised TF-IDF row for doc. Unknown terms are ignored.
func (v *Vectorizer) Transform(doc string) SparseVector {
	vec := make(SparseVector)
	for _, t := range terms(doc) {
		if idx, ok := v.Vocabulary[t]; ok {
			vec[idx]++
		}
	}
	// Accumulate in index order so fitting is reproducible bit for bit.
	var norm float64
	for _, idx := range vec.indices() {
		w := vec[idx] * v.IDF[idx]
		vec[idx] = w
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for idx := range vec {
			vec[idx] /= norm
		}
	}
	return vec
}

func (s SparseVector) indices() []int {
	out := make([]int, 0, len(s))
	for idx := range s {
		out = append(out, idx)
	}
	sort.Ints(out)
	return out
}

// Size is the number of vocabulary terms.
func (v *Vectorizer) Size() int {
	return len(v.Vocabulary)
}

// Cosine of two L2-normalised rows, clamped into [0, 1].
func Cosine(a, b SparseVector) float64 {
	var dot float64
	for _, idx := range a.indices() {
		dot += a[idx] * b[idx]
	}
	return clamp01(dot)
}

// pairCosine fits a throwaway vectorizer on exactly the two documents.
func pairCosine(doc1, doc2 string) float64 {
	v, err := FitVectorizer([]string{doc1, doc2}, 0)
	if err != nil {
		return 0
	}
	return Cosine(v.Transform(doc1), v.Transform(doc2))
}

func clamp01(x float64) float64 {
	switch {
	case math.IsNaN(x), x < 0:
		return 0
	case x > 1:
		return 1
	default:
		return x
	}
}
