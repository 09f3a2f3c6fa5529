package insights

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTipsAndQuotes(t *testing.T) {
	got := Tips()
	assert.Len(t, got, 6)
	assert.Equal(t, "Start an Emergency Fund", got[0].Title)

	got[0].Title = "changed"
	assert.Equal(t, "Start an Emergency Fund", Tips()[0].Title)

	q := Quotes()
	assert.Len(t, q, 5)
	for _, quote := range q {
		assert.NotEmpty(t, quote.Text)
		assert.NotEmpty(t, quote.Author)
	}
}

func TestExtractNumbers(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []float64
	}{
		{"mixed", "Spent 42.50 on food and -3 refund, 7 items", []float64{42.5, -3, 7}},
		{"trailing_dot", "Total 100. Done", []float64{100}},
		{"none", "no digits here", []float64{}},
		{"empty", "", []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractNumbers(tt.text))
		})
	}
}
