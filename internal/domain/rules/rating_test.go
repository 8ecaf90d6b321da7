package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRating(t *testing.T) {
	assert.NoError(t, ValidateRating(1))
	assert.NoError(t, ValidateRating(5))
	assert.Error(t, ValidateRating(0))
	assert.Error(t, ValidateRating(6))
}

func TestAverageRating(t *testing.T) {
	assert.Equal(t, 0.0, AverageRating(nil))
	assert.Equal(t, 4.0, AverageRating([]int{4}))
	assert.Equal(t, 4.3, AverageRating([]int{4, 4, 5}))
	assert.Equal(t, 3.5, AverageRating([]int{3, 4}))
}
