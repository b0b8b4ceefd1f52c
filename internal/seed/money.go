package seed

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseCents parses "12", "12.5" or "12.50" into cents. Empty is zero.
func ParseCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	whole, frac, hasFrac := strings.Cut(s, ".")
	if hasFrac {
		if len(frac) == 0 || len(frac) > 2 {
			return 0, fmt.Errorf("amount %q: want at most two decimals", s)
		}
		if len(frac) == 1 {
			frac += "0"
		}
	} else {
		frac = "00"
	}
	if strings.HasPrefix(whole, "-") {
		return 0, fmt.Errorf("amount %q: negative", s)
	}
	if !digits(whole) || !digits(frac) {
		return 0, fmt.Errorf("amount %q: not a decimal number", s)
	}
	w, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	f, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("amount %q: %w", s, err)
	}
	return w*100 + f, nil
}

func digits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
