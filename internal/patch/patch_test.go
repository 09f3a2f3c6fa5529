package patch

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Amount      Field[float64] `json:"amount"`
	Description Field[*string] `json:"description"`
	Category    Field[string]  `json:"category"`
}

func TestField_UnmarshalPresence(t *testing.T) {
	var s sample
	require.NoError(t, json.Unmarshal([]byte(`{"amount":75,"description":null}`), &s))

	assert.True(t, s.Amount.Set)
	assert.Equal(t, 75.0, s.Amount.Value)

	assert.True(t, s.Description.Set, "explicit null is present")
	assert.Nil(t, s.Description.Value)

	assert.False(t, s.Category.Set, "missing key is absent")
}

func TestField_UnmarshalTypeMismatch(t *testing.T) {
	var s sample
	err := json.Unmarshal([]byte(`{"amount":"lots"}`), &s)
	assert.Error(t, err)
}

func TestField_Apply(t *testing.T) {
	category := "Food"

	assert.False(t, Field[string]{}.Apply(&category))
	assert.Equal(t, "Food", category)

	assert.True(t, Of("Rent").Apply(&category))
	assert.Equal(t, "Rent", category)
}

func TestField_Present(t *testing.T) {
	v, ok := Of(12.5).Present()
	assert.True(t, ok)
	assert.Equal(t, 12.5, v)

	_, ok = Field[int]{}.Present()
	assert.False(t, ok)

	var p Presence = Of("x")
	_, ok = p.Present()
	assert.True(t, ok)
}

func TestField_Marshal(t *testing.T) {
	out, err := json.Marshal(sample{Amount: Of(3.0)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":3,"description":null,"category":null}`, string(out))
}
