package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSplit(t *testing.T) {
	tests := []struct {
		expr     string
		expected SplitRange
	}{
		{expr: "test", expected: SplitRange{Name: "test", Offset: 0, Length: -1}},
		{expr: "test[:200]", expected: SplitRange{Name: "test", Offset: 0, Length: 200}},
		{expr: "train[:10]", expected: SplitRange{Name: "train", Offset: 0, Length: 10}},
		{expr: "train[50:]", expected: SplitRange{Name: "train", Offset: 50, Length: -1}},
		{expr: "validation[100:300]", expected: SplitRange{Name: "validation", Offset: 100, Length: 200}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := ParseSplit(tt.expr)

			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.expr, got.String())
		})
	}
}

func TestParseSplit_Invalid(t *testing.T) {
	for _, expr := range []string{"", "[:10]", "test[10]", "test[:x]", "test[20:10]", "test[-1:]", "test[:10"} {
		t.Run(expr, func(t *testing.T) {
			_, err := ParseSplit(expr)

			assert.ErrorIs(t, err, ErrInvalidSplit)
		})
	}
}

func TestDataset_LabelName(t *testing.T) {
	ds := &Dataset{Name: "yelp_polarity", LabelNames: []string{"1", "2"}}

	name, err := ds.LabelName(1)
	require.NoError(t, err)
	assert.Equal(t, "2", name)

	_, err = ds.LabelName(2)
	assert.Error(t, err)
	_, err = ds.LabelName(-1)
	assert.Error(t, err)
}

func TestDataset_Examples(t *testing.T) {
	ds := &Dataset{
		Name:       "ag_news",
		LabelNames: []string{"World", "Sports", "Business", "Sci/Tech"},
		Records: []DatasetRecord{
			{Text: "Stocks rally", Label: 2},
			{Text: "Cup final tonight", Label: 1},
		},
	}

	examples, err := ds.Examples()

	require.NoError(t, err)
	assert.Equal(t, []Example{
		{Text: "Stocks rally", Label: "Business"},
		{Text: "Cup final tonight", Label: "Sports"},
	}, examples)

	assert.Equal(t, []string{"World", "Sports", "Business", "Sci/Tech"}, ds.LabelSet().IDs())
}

func TestDataset_ExamplesBadLabel(t *testing.T) {
	ds := &Dataset{Name: "trec", LabelNames: []string{"ABBR"}, Records: []DatasetRecord{{Text: "x", Label: 4}}}

	_, err := ds.Examples()

	assert.Error(t, err)
}
