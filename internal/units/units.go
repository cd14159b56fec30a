// Package units converts between byte counts and the short size notation
// used on the command line and in reports (1000 based: 10k, 4.70G).
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dustin/go-humanize"
)

// ErrInvalidSize is returned for sizes that cannot be parsed
var ErrInvalidSize = errors.New("invalid size")

const unitBase = 1000

var unitSuffixes = []byte{'B', 'K', 'M', 'G', 'T'}

// ParseSize parses a size with an optional b, k, m, g or t suffix
// (case-insensitive, 1000 based). A trailing "b" after a multiplier is
// accepted as well, so "10k" and "10kb" are the same size.
func ParseSize(s string) (int64, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: empty size", ErrInvalidSize)
	}
	if strings.HasPrefix(trimmed, "-") {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidSize, s)
	}

	n, err := humanize.ParseBytes(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrInvalidSize, s, err)
	}
	if n > math.MaxInt64 {
		return 0, fmt.Errorf("%w: %q is too large", ErrInvalidSize, s)
	}
	return int64(n), nil
}

// FormatSize renders n with a single letter unit. Whole bytes are printed
// without decimals, larger units with two: 999B, 1000B, 1.50K, 4.70G.
func FormatSize(n int64) string {
	num := float64(n)
	i := 0
	for num > unitBase && i < len(unitSuffixes)-1 {
		num /= unitBase
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%.0f%c", num, unitSuffixes[i])
	}
	return fmt.Sprintf("%.2f%c", num, unitSuffixes[i])
}

// Humanize renders n the way log lines show sizes ("1.5 MB")
func Humanize(n int64) string {
	if n < 0 {
		return "-" + humanize.Bytes(uint64(-n))
	}
	return humanize.Bytes(uint64(n))
}
