package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "", want: 1},
		{in: "  ", want: 1},
		{in: "3", want: 3},
		{in: " 4 ", want: 4},
		{in: "0", want: 0},
		{in: "-2", want: -2},
		{in: "2.5", wantErr: true},
		{in: "two", wantErr: true},
	}

	for _, tt := range tests {
		got, err := ParseQuantity(tt.in)
		if tt.wantErr {
			assert.True(t, errors.Is(err, ErrValidation), "input %q", tt.in)
			continue
		}
		assert.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestValidateQuantity(t *testing.T) {
	assert.NoError(t, ValidateQuantity(1))
	assert.NoError(t, ValidateQuantity(MaxQuantity))

	for _, q := range []int{0, -1, MaxQuantity + 1} {
		assert.True(t, errors.Is(ValidateQuantity(q), ErrValidation), "quantity %d", q)
	}
}

func TestQuantitySelection(t *testing.T) {
	s := QuantitySelection{}

	assert.Equal(t, 1, s.Quantity("a"))

	s.Set("a", 4)
	assert.Equal(t, 4, s.Quantity("a"))

	s.Set("a", 0)
	assert.Equal(t, 1, s.Quantity("a"))

	s.Set("a", -1)
	assert.Equal(t, -1, s.Quantity("a"))

	s.Reset("a")
	assert.Equal(t, 1, s.Quantity("a"))
}
