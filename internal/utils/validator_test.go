package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	FoodID string `json:"foodId" validate:"required,mongodb"`
}

func TestStrictJSONDecode(t *testing.T) {
	var s sample
	require.NoError(t, StrictJSONDecode([]byte(`{"foodId":"abc"}`), &s))
	assert.Equal(t, "abc", s.FoodID)

	assert.Error(t, StrictJSONDecode([]byte(`{"foodId":"abc","extra":1}`), &s))
}

func TestValidate_ReportsJSONNames(t *testing.T) {
	InitValidator()

	err := Validate.Struct(sample{FoodID: "zz"})
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "foodId", verrs[0].Field())

	assert.NoError(t, Validate.Struct(sample{FoodID: "65f0c0ffee0000000000abcd"}))
}
