package types

import (
	"strings"

	"github.com/rxtech-lab/argo-analyst/pkg/errors"
)

const (
	defaultExchange = "sh"
	codeDigits      = 6
	maxCodeLength   = 9
)

var exchanges = []string{"sh.", "sz."}

// HasExchange reports whether code already carries an "sh." or "sz." prefix.
func HasExchange(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))

	for _, prefix := range exchanges {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}

	return false
}

// NormalizeCode brings a user supplied code into the "sh.600000" form: trimmed and
// lower-cased, "sh." prepended when no exchange is given, the number left-padded
// with zeros to six digits and the result cut to nine characters.
func NormalizeCode(code string) (string, error) {
	raw := code
	code = strings.ToLower(strings.TrimSpace(code))

	if !HasExchange(code) {
		code = defaultExchange + "." + code
	}

	exchange, number, _ := strings.Cut(code, ".")
	number, _, _ = strings.Cut(number, ".")

	if number == "" || strings.Trim(number, "0123456789") != "" {
		return "", errors.Newf(errors.ErrCodeInvalidStockCode, "invalid stock code %q", raw)
	}

	if len(number) < codeDigits {
		number = strings.Repeat("0", codeDigits-len(number)) + number
	}

	code = exchange + "." + number
	if len(code) > maxCodeLength {
		code = code[:maxCodeLength]
	}

	return code, nil
}

// CodeNumber returns the numeric part of a normalized code.
func CodeNumber(code string) string {
	_, number, _ := strings.Cut(code, ".")

	return number
}
