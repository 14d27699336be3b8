package calculators

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mamadbah2/livestockcare/internal/domain/models"
)

func TestArea(t *testing.T) {
	tests := []struct {
		name string
		in   models.AreaInput
		want models.AreaResult
	}{
		{
			name: "hectare in meters",
			in:   models.AreaInput{Length: 100, Width: 100, Unit: "meters"},
			want: models.AreaResult{SquareMeters: 10000, SquareFeet: 107640, Acres: 2.47, Hectares: 1},
		},
		{
			name: "feet",
			in:   models.AreaInput{Length: 100, Width: 50, Unit: "feet"},
			want: models.AreaResult{SquareMeters: 464.5, SquareFeet: 5000, Acres: 0.11, Hectares: 0.05},
		},
		{
			name: "unknown unit treated as meters",
			in:   models.AreaInput{Length: 20, Width: 10},
			want: models.AreaResult{SquareMeters: 200, SquareFeet: 2152.8, Acres: 0.05, Hectares: 0.02},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Area(tt.in)
			tt.want.Input = tt.in
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInterest(t *testing.T) {
	got := Interest(models.InterestInput{Principal: 10000, Rate: 10, TimeYears: 2})
	assert.Equal(t, 2000.0, got.SimpleInterest)
	assert.Equal(t, 12000.0, got.SimpleTotal)
	assert.Equal(t, 2100.0, got.CompoundInterest)
	assert.Equal(t, 12100.0, got.CompoundTotal)

	zero := Interest(models.InterestInput{Principal: 5000, Rate: 7})
	assert.Zero(t, zero.SimpleInterest)
	assert.Zero(t, zero.CompoundInterest)
	assert.Equal(t, 5000.0, zero.CompoundTotal)
}
