package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMeanRating(t *testing.T) {
	tests := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"two reviews average", []int{4, 2}, 3.0},
		{"no reviews resets to zero", nil, 0},
		{"empty slice resets to zero", []int{}, 0},
		{"single review", []int{5}, 5.0},
		{"fractional mean", []int{1, 2}, 1.5},
		{"all equal", []int{3, 3, 3}, 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MeanRating(tt.ratings))
		})
	}
}

func TestMeanRatingRepeatedThirds(t *testing.T) {
	assert.InDelta(t, 11.0/3.0, MeanRating([]int{3, 4, 4}), 1e-9)
}
