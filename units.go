package frame

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

const mmPerInch = 25.4

// unit scale factors to millimetres.
var units = map[string]float64{
	"":       1,
	"mm":     1,
	"cm":     10,
	"dm":     100,
	"m":      1000,
	"in":     mmPerInch,
	"inch":   mmPerInch,
	"inches": mmPerInch,
	`"`:      mmPerInch,
	"ft":     12 * mmPerInch,
	"'":      12 * mmPerInch,
}

// ErrBadQuantity is returned by ParseQuantity for unparseable input.
var ErrBadQuantity = errors.New("bad quantity")

// ParseQuantity parses a length such as "30 cm", "12in", "1.315 in" or "8"
// and returns it in millimetres. A bare number is read as millimetres.
func ParseQuantity(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty", ErrBadQuantity)
	}
	// No unit starts with an exponent letter so e/E stay with the number.
	i := strings.IndexFunc(s, func(r rune) bool {
		return !(unicode.IsDigit(r) || r == '.' || r == '-' || r == '+' || r == 'e' || r == 'E')
	})
	num, unit := s, ""
	if i >= 0 {
		num, unit = s[:i], strings.ToLower(strings.TrimSpace(s[i:]))
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(num), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadQuantity, s)
	}
	k, ok := units[unit]
	if !ok {
		return 0, fmt.Errorf("%w: unknown unit %q in %q", ErrBadQuantity, unit, s)
	}
	return v * k, nil
}

// FormatQuantity formats a length in millimetres, i.e. "304.8 mm".
func FormatQuantity(mm float64) string {
	return strconv.FormatFloat(mm, 'f', -1, 64) + " mm"
}
