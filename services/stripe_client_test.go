package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUnitAmountRoundsToCents(t *testing.T) {
	cases := []struct {
		price float64
		want  int64
	}{
		{19.99, 1999},
		{29.99, 2999},
		{0.01, 1},
		{0.1, 10},
		{120, 12000},
		{120.5, 12050},
		{1234.56, 123456},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, unitAmount(tc.price), "%.2f", tc.price)
	}
}
