package extractor

import (
	"regexp"
	"strconv"
	"strings"
)

// Field normalizers coerce loosely formatted site text into typed values.
// Each one is total: it never fails, it just reports ok=false.

var (
	priceStripRe  = regexp.MustCompile(`[^\d.,]`)
	ratingValueRe = regexp.MustCompile(`\d+\.?\d*`)
	integerRe     = regexp.MustCompile(`\d+`)
)

// ParsePrice extracts a positive price from text such as "1 299,000 DT".
// Everything except digits, commas and periods is stripped, then commas
// are treated as decimal periods. The sites mix thousand separators and
// decimal commas too inconsistently for a strict grammar.
func ParsePrice(text string) (float64, bool) {
	cleaned := priceStripRe.ReplaceAllString(text, "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || val <= 0 {
		return 0, false
	}
	return val, true
}

// ParseRating extracts the first decimal number from text and accepts it
// only when it lies in [0, 5]. Anything outside that range is noise, a
// percentage or a SKU rather than a rating.
func ParseRating(text string) (float64, bool) {
	match := ratingValueRe.FindString(text)
	if match == "" {
		return 0, false
	}
	val, err := strconv.ParseFloat(match, 64)
	if err != nil || val < 0 || val > 5 {
		return 0, false
	}
	return val, true
}

// ParseReviewCount extracts the first integer from text as a non-negative
// review count.
func ParseReviewCount(text string) (int, bool) {
	match := integerRe.FindString(text)
	if match == "" {
		return 0, false
	}
	val, err := strconv.Atoi(match)
	if err != nil || val < 0 {
		return 0, false
	}
	return val, true
}
