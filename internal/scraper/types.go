package scraper

import "errors"

// ErrPriceNotFound is returned when a retailer yields no usable price for a
// model. Transport failures, missing cards, title mismatches and unparsable
// price fragments all collapse into this one outcome; the distinction is
// logged at the point of occurrence but not surfaced to callers.
var ErrPriceNotFound = errors.New("price not found")

// Scraper is the uniform contract every retailer scraper satisfies.
type Scraper interface {
	// CheckPrice fetches the retailer's listing page and returns the price
	// observed for the given model, or ErrPriceNotFound.
	CheckPrice(model string) (float64, error)

	// Name returns the retailer name for logging and history keys
	Name() string
}

// Selectors contains the CSS selectors used to walk a retailer's listing
// page: the product card elements, the title inside a card and the price
// inside a card.
type Selectors struct {
	Card  string
	Title string
	Price string
}

// Config contains configuration for a retailer scraper
type Config struct {
	Name      string
	URL       string
	Selectors Selectors
	CacheKey  string
	BlockTime int
}
