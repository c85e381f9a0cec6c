package importer

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// leadingNumber matches the longest decimal prefix of a cell, so units and
// thousands separators after the number are ignored.
var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseNonNegativeNumber reads a quantity or price from the number at the
// start of the cell: "500 bags" is 500 and "2,500" is 2. Anything without a
// finite leading number of at least zero becomes 0.
func ParseNonNegativeNumber(raw string) float64 {
	prefix := leadingNumber.FindString(strings.TrimSpace(raw))
	if prefix == "" {
		return 0
	}
	v, err := strconv.ParseFloat(prefix, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseDate reads an optional YYYY-MM-DD date. Blank or malformed input is
// treated as absent.
func ParseDate(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil
	}
	return &t
}

func parseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1":
		return true
	}
	return false
}
