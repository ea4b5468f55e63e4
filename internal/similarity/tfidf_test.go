package similarity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "telefono movil", Normalize("  Telefono MOVIL \t"))
	assert.Equal(t, "", Normalize("   "))
}

func TestTerms(t *testing.T) {
	assert.Equal(t,
		[]string{"hola", "mundo", "feliz", "hola mundo", "mundo feliz"},
		terms("Hola, mundo feliz"))
	// Single-rune tokens are dropped before bigrams are formed.
	assert.Equal(t, []string{"iphone", "pro", "iphone pro"}, terms("iPhone X pro"))
	assert.Empty(t, terms("a b c !"))
	assert.Equal(t, []string{"cámara", "32gb", "cámara 32gb"}, terms("Cámara 32GB"))
	// Decomposed accents stay inside the token.
	assert.Equal(t, []string{"ca\u0301mara"}, terms("Ca\u0301mara"))
	assert.Equal(t, []string{"cafe\u0301", "oster", "cafe\u0301 oster"}, terms("cafe\u0301 Oster"))
}

func TestFitVectorizerEmptyVocabulary(t *testing.T) {
	_, err := FitVectorizer([]string{"a b", "!", ""}, 0)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)

	_, err = FitVectorizer(nil, 0)
	assert.ErrorIs(t, err, ErrEmptyVocabulary)
}

func TestFitVectorizerSmoothIDF(t *testing.T) {
	v, err := FitVectorizer([]string{"aa bb", "aa cc"}, 0)
	require.NoError(t, err)

	require.Equal(t, 5, v.Size())
	assert.Equal(t, 0, v.Vocabulary["aa"])
	assert.Equal(t, 1, v.Vocabulary["aa bb"])
	assert.InDelta(t, 1.0, v.IDF[v.Vocabulary["aa"]], 1e-12)
	assert.InDelta(t, math.Log(3.0/2.0)+1, v.IDF[v.Vocabulary["bb"]], 1e-12)
}

func TestFitVectorizerMaxFeatures(t *testing.T) {
	v, err := FitVectorizer([]string{"aa bb", "aa cc", "dd"}, 2)
	require.NoError(t, err)

	// aa occurs twice; "aa bb" wins the tie with the other single-count terms alphabetically.
	assert.Equal(t, map[string]int{"aa": 0, "aa bb": 1}, v.Vocabulary)
	assert.Len(t, v.IDF, 2)
}

func TestTransformIsUnitLength(t *testing.T) {
	v, err := FitVectorizer([]string{"telefono samsung galaxy", "laptop hp"}, 0)
	require.NoError(t, err)

	row := v.Transform("Telefono Samsung galaxy galaxy")
	var norm float64
	for _, w := range row {
		norm += w * w
	}
	assert.InDelta(t, 1.0, norm, 1e-12)
	assert.Empty(t, v.Transform("unknown words only"))
}

func TestPairCosine(t *testing.T) {
	assert.InDelta(t, 0.5193879933129156,
		pairCosine("telefono samsung galaxy", "telefono celular samsung galaxy"), 1e-9)
	assert.Equal(t, 0.0, pairCosine("telefono samsung galaxy", "laptop hp 15 pulgadas"))
	assert.Equal(t, 0.0, pairCosine("a", "b"))
	assert.InDelta(t, 1.0, pairCosine("aa bb", "aa bb"), 1e-12)
}
