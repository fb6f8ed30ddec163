package scraper

import (
	"fmt"
	"io"
	"strings"
	"time"

	"watchtracker/helpers"
	"watchtracker/internal/price"
	"watchtracker/logger"
	"watchtracker/pkg/errors"
	"watchtracker/services/cache"

	"github.com/PuerkitoBio/goquery"
)

// RetailerScraper is a selector-driven scraper. Every retailer shares the
// same fetch, parse, match and extract skeleton; only the selector strings
// vary, so one type driven by configuration covers all of them.
type RetailerScraper struct {
	name      string
	url       string
	selectors Selectors
	cacheKey  string
	blockTime time.Duration
	cacheSvc  cache.CacheService
	fetchFunc func(string) (io.Reader, error)
	log       *logger.Logger
}

// NewRetailerScraper creates a scraper for one retailer from its selector
// configuration.
func NewRetailerScraper(config Config, cacheSvc cache.CacheService) *RetailerScraper {
	return &RetailerScraper{
		name:      config.Name,
		url:       config.URL,
		selectors: config.Selectors,
		cacheKey:  config.CacheKey,
		blockTime: time.Duration(config.BlockTime) * time.Second,
		cacheSvc:  cacheSvc,
		fetchFunc: helpers.FetchWithBrowserHeaders,
		log:       logger.ForRetailer(config.Name),
	}
}

// Name returns the retailer name
func (s *RetailerScraper) Name() string {
	return s.name
}

// CheckPrice fetches the retailer's listing page and scans it for the given
// model. Any failure degrades to ErrPriceNotFound so one retailer's outage
// never aborts a sweep; the underlying cause is logged here.
func (s *RetailerScraper) CheckPrice(model string) (float64, error) {
	body, err := s.fetchWithCache()
	if err != nil {
		s.log.Warn().
			Err(errors.NewNetwork(s.name, "page fetch failed", err)).
			Str("model", model).
			Msg("Degrading fetch failure to not found")
		return 0, ErrPriceNotFound
	}

	value, err := s.FindPrice(body, model)
	if err != nil {
		s.log.Debug().
			Str("model", model).
			Msg("No price found on page")
		return 0, ErrPriceNotFound
	}

	return value, nil
}

// FindPrice scans an already fetched page body for the given model. It
// enumerates product cards, matches the model name as an exact substring of
// each card title (case-sensitive, no normalization), and extracts the
// price from the first matching card. Multiple matching cards are not
// arbitrated; the first one wins.
func (s *RetailerScraper) FindPrice(body io.Reader, model string) (float64, error) {
	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		s.log.Warn().
			Err(errors.NewExtraction(s.name, "HTML parsing failed", err)).
			Msg("Could not parse page")
		return 0, ErrPriceNotFound
	}

	var (
		found bool
		value float64
	)

	doc.Find(s.selectors.Card).EachWithBreak(func(i int, card *goquery.Selection) bool {
		title := card.Find(s.selectors.Title)
		if title.Length() == 0 {
			return true
		}
		if !strings.Contains(title.Text(), model) {
			return true
		}

		priceSel := card.Find(s.selectors.Price)
		if priceSel.Length() == 0 {
			return false
		}

		extracted, extractErr := price.Extract(priceSel.Text())
		if extractErr != nil {
			return false
		}

		found = true
		value = extracted
		return false
	})

	if !found {
		return 0, ErrPriceNotFound
	}
	return value, nil
}

// fetchWithCache fetches the listing page, honoring a rate-limit block set
// by a previous 429 response.
func (s *RetailerScraper) fetchWithCache() (io.Reader, error) {
	// Check if the retailer is rate limited
	if s.cacheSvc != nil && s.cacheKey != "" {
		_, err := s.cacheSvc.Get(s.cacheKey)
		if err == nil {
			return nil, fmt.Errorf("%s: blocked for %d more seconds at most", s.cacheKey, s.blockTime/time.Second)
		}
	}

	body, err := s.fetchFunc(s.url)
	if err != nil {
		if s.cacheSvc != nil && s.cacheKey != "" && strings.HasPrefix(err.Error(), "rate limited") {
			// Set rate limiting cache
			s.cacheSvc.Set(s.cacheKey, []byte(fmt.Sprintf("%d", s.blockTime/time.Second)), s.blockTime)
		}
		return nil, err
	}

	return body, nil
}
