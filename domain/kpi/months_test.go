package kpi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMonthNumberCanonical(t *testing.T) {
	for i, m := range Months {
		num, ok := MonthNumber(m)
		assert.True(t, ok, m)
		assert.Equal(t, i+1, num, m)
	}
}

func TestMonthNumberCaseInsensitive(t *testing.T) {
	for i, m := range Months {
		num, ok := MonthNumber(strings.ToUpper(m))
		assert.True(t, ok, m)
		assert.Equal(t, i+1, num, m)

		num, ok = MonthNumber(strings.ToLower(m))
		assert.True(t, ok, m)
		assert.Equal(t, i+1, num, m)
	}
}

func TestMonthNumberAccentless(t *testing.T) {
	num, ok := MonthNumber("Marco")
	assert.True(t, ok)
	assert.Equal(t, 3, num)

	num, ok = MonthNumber("marco")
	assert.True(t, ok)
	assert.Equal(t, 3, num)
}

func TestMonthNumberCorruptedEncoding(t *testing.T) {
	num, ok := MonthNumber("mar�o")
	assert.True(t, ok)
	assert.Equal(t, 3, num)
}

func TestMonthNumberWhitespace(t *testing.T) {
	num, ok := MonthNumber("  Abril  ")
	assert.True(t, ok)
	assert.Equal(t, 4, num)
}

func TestMonthNumberUnknown(t *testing.T) {
	for _, name := range []string{"", "Totals", "Métrica", "Januar", "13"} {
		_, ok := MonthNumber(name)
		assert.False(t, ok, name)
	}
}
