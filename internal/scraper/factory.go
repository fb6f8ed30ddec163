package scraper

import (
	"strings"

	"watchtracker/config"
	"watchtracker/services/cache"
)

// CreateScrapers creates one scraper per configured retailer, in retailer
// declaration order.
func CreateScrapers(cfg *config.Config, cacheSvc cache.CacheService) []Scraper {
	retailers := cfg.Retailers()

	scrapers := make([]Scraper, 0, len(retailers))
	for _, r := range retailers {
		scrapers = append(scrapers, NewRetailerScraper(Config{
			Name: r.Name,
			URL:  r.URL,
			Selectors: Selectors{
				Card:  r.Selectors.Card,
				Title: r.Selectors.Title,
				Price: r.Selectors.Price,
			},
			CacheKey:  cacheKeyFor(r.Name),
			BlockTime: 300,
		}, cacheSvc))
	}

	return scrapers
}

func cacheKeyFor(retailerName string) string {
	key := strings.ToLower(retailerName)
	key = strings.ReplaceAll(key, " ", "_")
	return key + "_rate_limited"
}
