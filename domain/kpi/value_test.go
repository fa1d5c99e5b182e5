package kpi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeValueErrorLiterals(t *testing.T) {
	cases := []string{"#DIV/0!", "#VALOR!", "#REF!", " #div/0! ", "x #REF! y"}
	for _, c := range cases {
		t.Run(c, func(t *testing.T) {
			assert.True(t, IsMissing(NormalizeValue(c)), "expected %q to normalize to missing", c)
		})
	}
}

func TestNormalizeValueCurrencyAndPercent(t *testing.T) {
	cases := []struct {
		raw  string
		want float64
	}{
		{"R$ 1.234,56", 1234.56},
		{"R$1.234.567,89", 1234567.89},
		{"R$ 500", 500},
		{"45%", 45},
		{"12,5%", 12.5},
		{"1,5", 1.5},
		{"1234.56", 1234.56},
		{"42", 42},
		{"-3,25", -3.25},
	}
	for _, c := range cases {
		t.Run(c.raw, func(t *testing.T) {
			got := NormalizeValue(c.raw)
			assert.InDelta(t, c.want, got, 1e-9)
		})
	}
}

func TestNormalizeValueMalformed(t *testing.T) {
	cases := []string{"", "   ", "n/a", "abc", "R$", "--", "12abc"}
	for _, c := range cases {
		assert.True(t, IsMissing(NormalizeValue(c)), "expected %q to normalize to missing", c)
	}
}
