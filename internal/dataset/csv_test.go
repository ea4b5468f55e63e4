package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"item-pairs/internal/models"
	"item-pairs/internal/similarity"
)

func TestSyntheticSamples(t *testing.T) {
	s := SyntheticSamples()
	require.Len(t, s, 16)

	var positives int
	for _, sample := range s {
		positives += sample.IsSimilar
	}
	assert.Equal(t, 8, positives)

	// Callers get their own copy.
	s[0].IsSimilar = 0
	assert.Equal(t, 1, SyntheticSamples()[0].IsSimilar)
}

func TestLoadLabeledCSV(t *testing.T) {
	in := "item_a_title,item_b_title,is_similar\n" +
		"Mouse Logitech,\"Mouse, Logitech\",1\n" +
		"Laptop HP,Tablet iPad, 0\n"

	samples, err := LoadLabeledCSV(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, []similarity.TrainingSample{
		{ItemATitle: "Mouse Logitech", ItemBTitle: "Mouse, Logitech", IsSimilar: 1},
		{ItemATitle: "Laptop HP", ItemBTitle: "Tablet iPad", IsSimilar: 0},
	}, samples)
}

func TestLoadLabeledCSVColumnOrderAndCase(t *testing.T) {
	in := "\ufeffIS_SIMILAR,Item_B_Title,item_a_title\n1,b title,a title\n"

	samples, err := LoadLabeledCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, samples, 1)
	assert.Equal(t, "a title", samples[0].ItemATitle)
	assert.Equal(t, "b title", samples[0].ItemBTitle)
}

func TestLoadLabeledCSVErrors(t *testing.T) {
	_, err := LoadLabeledCSV(strings.NewReader(""))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = LoadLabeledCSV(strings.NewReader("item_a_title,item_b_title\nx,y\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)

	_, err = LoadLabeledCSV(strings.NewReader("item_a_title,item_b_title,is_similar\nx,y,yes\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = LoadLabeledCSV(strings.NewReader("item_a_title,item_b_title,is_similar\nx,y,3\n"))
	assert.ErrorIs(t, err, similarity.ErrInvalidLabel)

	_, err = LoadLabeledCSV(strings.NewReader("item_a_title,item_b_title,is_similar\nx,y\n"))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestLoadPairsCSV(t *testing.T) {
	in := "ITEM_A,TITLE_A,ITEM_B,TITLE_B\n" +
		"1, Telefono Samsung Galaxy ,2,Telefono celular Samsung Galaxy\n" +
		"3,Laptop HP,4,Laptop HP\n"

	records, err := LoadPairsCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, PairRecord{
		Line:  2,
		ItemA: models.Item{ItemID: 1, Title: "Telefono Samsung Galaxy"},
		ItemB: models.Item{ItemID: 2, Title: "Telefono celular Samsung Galaxy"},
	}, records[0])
	assert.Equal(t, 3, records[1].Line)

	_, err = LoadPairsCSV(strings.NewReader("ITEM_A,TITLE_A,ITEM_B,TITLE_B\nx,a,2,b\n"))
	assert.ErrorContains(t, err, "ITEM_A")
}

func TestLabelByExactMatch(t *testing.T) {
	records := []PairRecord{
		{ItemA: models.Item{ItemID: 1, Title: "Laptop HP"}, ItemB: models.Item{ItemID: 2, Title: " laptop hp"}},
		{ItemA: models.Item{ItemID: 3, Title: "Laptop HP"}, ItemB: models.Item{ItemID: 4, Title: "Notebook HP"}},
	}

	samples := LabelByExactMatch(records)
	require.Len(t, samples, 2)
	assert.Equal(t, 1, samples[0].IsSimilar)
	assert.Equal(t, 0, samples[1].IsSimilar)
}

func TestSplit(t *testing.T) {
	samples := SyntheticSamples()

	train, val := Split(samples, 0.8, 42)
	assert.Len(t, train, 12)
	assert.Len(t, val, 4)

	again, _ := Split(samples, 0.8, 42)
	assert.Equal(t, train, again)
	assert.Equal(t, SyntheticSamples(), samples)

	train, val = Split(samples, 1, 42)
	assert.Len(t, train, 16)
	assert.Empty(t, val)

	train, val = Split(samples[:2], 0.99, 1)
	assert.Len(t, train, 1)
	assert.Len(t, val, 1)
}
