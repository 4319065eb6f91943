package number

import (
	"testing"

	"github.com/bmizerany/assert"
)

func TestCeil(t *testing.T) {
	data := map[string]string{
		"0.10304":     "0.11",
		"0.100000001": "0.11",
		"0.108":       "0.11",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			c := Ceil(Decimal(k), 2)
			assert.Equal(t, v, c.String(), "should be ceil")
		})
	}
}

func TestTruncate(t *testing.T) {
	data := map[string]string{
		"100000.1234567": "100000.123456",
		"42":             "42",
		"0.000001":       "0.000001",
	}

	for k, v := range data {
		t.Run(k, func(t *testing.T) {
			assert.Equal(t, v, Truncate(Decimal(k)).String())
		})
	}
}

func TestIsAmount(t *testing.T) {
	assert.Equal(t, true, IsAmount(Decimal("0.000001")))
	assert.Equal(t, true, IsAmount(Decimal("40000")))
	assert.Equal(t, false, IsAmount(Decimal("0")))
	assert.Equal(t, false, IsAmount(Decimal("-1")))
	assert.Equal(t, false, IsAmount(Decimal("0.0000001")))
}
