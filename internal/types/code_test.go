package types

import (
	"testing"

	"github.com/rxtech-lab/argo-analyst/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"sh.600000", "sh.600000"},
		{"600000", "sh.600000"},
		{"  sz.000063 ", "sz.000063"},
		{"sz.63", "sz.000063"},
		{"1", "sh.000001"},
		{"SZ.000001", "sz.000001"},
		{"sh.6000001", "sh.600000"},
		{"sh.600000.extra", "sh.600000"},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			code, err := NormalizeCode(tc.input)
			assert.NoError(t, err)
			assert.Equal(t, tc.expected, code)
		})
	}
}

func TestNormalizeCodeInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "sh.", "sh.abc", "60a000"} {
		t.Run(input, func(t *testing.T) {
			_, err := NormalizeCode(input)
			assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidStockCode))
		})
	}
}

func TestHasExchange(t *testing.T) {
	assert.True(t, HasExchange("sh.600000"))
	assert.True(t, HasExchange(" SZ.000001"))
	assert.False(t, HasExchange("000001"))
	assert.False(t, HasExchange("hk.00700"))
}

func TestCodeNumber(t *testing.T) {
	assert.Equal(t, "000001", CodeNumber("sz.000001"))
	assert.Equal(t, "", CodeNumber("000001"))
}
