// Package monitor orchestrates price sweeps across all retailers, records
// observations into history, detects deals and ranks the best ones.
package monitor

import (
	"math"
	"sort"
	"sync"
	"time"

	"watchtracker/config"
	"watchtracker/internal/history"
	"watchtracker/internal/scraper"
	"watchtracker/logger"
)

// DealRecord is a threshold-qualifying price observed at one retailer.
// Records are derived, recomputed every sweep and never persisted. The same
// shape serves ranked best deals, where one record represents the cheapest
// retailer for a model.
type DealRecord struct {
	Model           string
	Retailer        string
	Price           float64
	NormalPrice     float64
	DiscountPercent float64
	Savings         float64
}

// Monitor drives sweeps over the catalog and retailer set. It owns the
// history store exclusively for the duration of a sweep.
type Monitor struct {
	catalog  []config.CatalogEntry
	scrapers []scraper.Scraper
	history  *history.Store
	now      func() time.Time
	log      *logger.Logger
}

// New creates a monitor over the given catalog, scrapers and history store
func New(catalog []config.CatalogEntry, scrapers []scraper.Scraper, store *history.Store) *Monitor {
	return &Monitor{
		catalog:  catalog,
		scrapers: scrapers,
		history:  store,
		now:      time.Now,
		log:      logger.ForMonitor(),
	}
}

type priceResult struct {
	price float64
	ok    bool
}

// collectPrices queries every retailer for one model. Fetches run
// concurrently; each goroutine writes only its own slot, so results come
// back in retailer declaration order and no shared state is mutated.
func (m *Monitor) collectPrices(model string) []priceResult {
	results := make([]priceResult, len(m.scrapers))
	var wg sync.WaitGroup

	for i, s := range m.scrapers {
		wg.Add(1)
		go func(i int, s scraper.Scraper) {
			defer wg.Done()
			price, err := s.CheckPrice(model)
			results[i] = priceResult{price: price, ok: err == nil}
		}(i, s)
	}
	wg.Wait()

	return results
}

// RunSweep checks every catalog model against every retailer, records each
// observed price into history, and returns the deals found in discovery
// order (model-major, retailer-minor, both in declaration order). History
// is persisted after the sweep; a failed save is logged but the sweep's
// results are still returned.
func (m *Monitor) RunSweep() []DealRecord {
	var deals []DealRecord
	today := m.now().Format("2006-01-02")

	for _, entry := range m.catalog {
		m.log.Debug().Str("model", entry.Model).Msg("Checking prices")

		results := m.collectPrices(entry.Model)

		for i, result := range results {
			if !result.ok {
				continue
			}
			retailer := m.scrapers[i].Name()

			// History writes stay on the sweep goroutine: single writer
			m.history.Record(entry.Model, retailer, history.Observation{
				Date:  today,
				Price: result.price,
			})

			discount := (entry.NormalPrice - result.price) / entry.NormalPrice * 100

			if result.price <= entry.DealThreshold {
				deal := DealRecord{
					Model:           entry.Model,
					Retailer:        retailer,
					Price:           result.price,
					NormalPrice:     entry.NormalPrice,
					DiscountPercent: roundToOneDecimal(discount),
					Savings:         entry.NormalPrice - result.price,
				}
				deals = append(deals, deal)

				m.log.Info().
					Str("model", deal.Model).
					Str("retailer", deal.Retailer).
					Float64("price", deal.Price).
					Float64("discount_percent", deal.DiscountPercent).
					Msg("Deal found")
			}
		}
	}

	if err := m.history.Save(); err != nil {
		m.log.Error().Err(err).Msg("Could not persist price history")
	}

	return deals
}

// BestDeals performs a fresh fetch across all retailers and returns one
// record per model, the cheapest retailer for that model, ordered by
// discount percentage descending. The sort is stable, so models with equal
// discounts keep catalog order. Models with no retailer price are omitted.
func (m *Monitor) BestDeals() []DealRecord {
	var best []DealRecord

	for _, entry := range m.catalog {
		results := m.collectPrices(entry.Model)

		bestPrice := math.Inf(1)
		bestRetailer := ""
		for i, result := range results {
			if result.ok && result.price < bestPrice {
				bestPrice = result.price
				bestRetailer = m.scrapers[i].Name()
			}
		}

		if bestRetailer == "" {
			continue
		}

		discount := (entry.NormalPrice - bestPrice) / entry.NormalPrice * 100
		best = append(best, DealRecord{
			Model:           entry.Model,
			Retailer:        bestRetailer,
			Price:           bestPrice,
			NormalPrice:     entry.NormalPrice,
			DiscountPercent: roundToOneDecimal(discount),
			Savings:         entry.NormalPrice - bestPrice,
		})
	}

	sort.SliceStable(best, func(i, j int) bool {
		return best[i].DiscountPercent > best[j].DiscountPercent
	})

	return best
}

func roundToOneDecimal(v float64) float64 {
	return math.Round(v*10) / 10
}
