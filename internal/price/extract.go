// Package price parses rand-denominated price fragments scraped from
// retailer listing pages.
package price

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrNoPrice is returned when a text fragment contains no parsable price.
var ErrNoPrice = errors.New("no price found in text")

// Matches fragments like "R 7,999", "R7999" or "R 1 999.50". The first
// occurrence wins; callers are expected to pass a fragment scoped to a
// single price element, not a whole page.
var priceRegex = regexp.MustCompile(`(?i)R\s?([0-9][0-9,\s]*(?:\.[0-9]+)?)`)

// Extract parses the first currency-prefixed numeral in the given text and
// returns its numeric value. Thousands separators (comma or space) are
// stripped before parsing. It never returns a sentinel numeric such as 0 on
// failure; the error is ErrNoPrice.
func Extract(text string) (float64, error) {
	match := priceRegex.FindStringSubmatch(text)
	if match == nil {
		return 0, ErrNoPrice
	}

	raw := strings.NewReplacer(",", "", " ", "").Replace(match[1])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, ErrNoPrice
	}

	return value, nil
}
