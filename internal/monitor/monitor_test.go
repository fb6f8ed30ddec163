package monitor

import (
	"testing"
	"time"

	"watchtracker/config"
	"watchtracker/internal/history"
	"watchtracker/internal/scraper"

	"github.com/stretchr/testify/assert"
)

// stubScraper implements scraper.Scraper with fixed per-model prices
type stubScraper struct {
	name   string
	prices map[string]float64
}

var _ scraper.Scraper = (*stubScraper)(nil)

func (s *stubScraper) CheckPrice(model string) (float64, error) {
	if price, ok := s.prices[model]; ok {
		return price, nil
	}
	return 0, scraper.ErrPriceNotFound
}

func (s *stubScraper) Name() string {
	return s.name
}

// memStorage is an in-memory history.Storage for testing
type memStorage struct {
	data   []byte
	exists bool
	writes int
}

func (m *memStorage) ReadIfExists() ([]byte, bool, error) {
	return m.data, m.exists, nil
}

func (m *memStorage) Write(data []byte) error {
	m.data = data
	m.exists = true
	m.writes++
	return nil
}

func modelNames(catalog []config.CatalogEntry) []string {
	names := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		names = append(names, entry.Model)
	}
	return names
}

func newTestMonitor(catalog []config.CatalogEntry, scrapers []scraper.Scraper, storage *memStorage) (*Monitor, *history.Store) {
	retailers := make([]string, 0, len(scrapers))
	for _, s := range scrapers {
		retailers = append(retailers, s.Name())
	}
	store := history.NewStore(modelNames(catalog), retailers, storage)

	m := New(catalog, scrapers, store)
	m.now = func() time.Time {
		return time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	}
	return m, store
}

func TestRunSweepDetectsDeals(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Galaxy Watch 6 (40mm)", NormalPrice: 7999, DealThreshold: 6500},
	}
	scrapers := []scraper.Scraper{
		&stubScraper{name: "Takealot", prices: map[string]float64{"Galaxy Watch 6 (40mm)": 6499}},
		&stubScraper{name: "Makro", prices: map[string]float64{"Galaxy Watch 6 (40mm)": 7999}},
	}
	storage := &memStorage{}
	m, store := newTestMonitor(catalog, scrapers, storage)

	deals := m.RunSweep()

	assert.Len(t, deals, 1)
	assert.Equal(t, "Galaxy Watch 6 (40mm)", deals[0].Model)
	assert.Equal(t, "Takealot", deals[0].Retailer)
	assert.Equal(t, float64(6499), deals[0].Price)
	assert.Equal(t, 18.8, deals[0].DiscountPercent)
	assert.Equal(t, float64(1500), deals[0].Savings)

	// Both observed prices were recorded, deal or not
	assert.Equal(t, []history.Observation{{Date: "2025-06-01", Price: 6499}}, store.Observations("Galaxy Watch 6 (40mm)", "Takealot"))
	assert.Equal(t, []history.Observation{{Date: "2025-06-01", Price: 7999}}, store.Observations("Galaxy Watch 6 (40mm)", "Makro"))

	// History was persisted after the sweep
	assert.Equal(t, 1, storage.writes)
}

func TestRunSweepDealBoundaryIsInclusive(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Galaxy Watch 6 (40mm)", NormalPrice: 7999, DealThreshold: 6500},
	}

	// A price exactly at the threshold is a deal
	m, _ := newTestMonitor(catalog, []scraper.Scraper{
		&stubScraper{name: "Takealot", prices: map[string]float64{"Galaxy Watch 6 (40mm)": 6500}},
	}, &memStorage{})
	assert.Len(t, m.RunSweep(), 1)

	// One rand above the threshold is not
	m, _ = newTestMonitor(catalog, []scraper.Scraper{
		&stubScraper{name: "Takealot", prices: map[string]float64{"Galaxy Watch 6 (40mm)": 6501}},
	}, &memStorage{})
	assert.Empty(t, m.RunSweep())
}

func TestRunSweepOrderIsDeterministic(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Galaxy Watch 6 (40mm)", NormalPrice: 7999, DealThreshold: 7000},
		{Model: "Galaxy Watch Ultra", NormalPrice: 13999, DealThreshold: 12000},
	}
	scrapers := []scraper.Scraper{
		&stubScraper{name: "Samsung", prices: map[string]float64{
			"Galaxy Watch 6 (40mm)": 6999,
			"Galaxy Watch Ultra":    11500,
		}},
		&stubScraper{name: "Takealot", prices: map[string]float64{
			"Galaxy Watch 6 (40mm)": 6899,
		}},
	}
	m, _ := newTestMonitor(catalog, scrapers, &memStorage{})

	deals := m.RunSweep()

	// Model-major, retailer-minor, both in declaration order
	assert.Len(t, deals, 3)
	assert.Equal(t, "Galaxy Watch 6 (40mm)", deals[0].Model)
	assert.Equal(t, "Samsung", deals[0].Retailer)
	assert.Equal(t, "Galaxy Watch 6 (40mm)", deals[1].Model)
	assert.Equal(t, "Takealot", deals[1].Retailer)
	assert.Equal(t, "Galaxy Watch Ultra", deals[2].Model)
}

func TestRunSweepModelWithNoPrices(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Galaxy Watch Ultra", NormalPrice: 13999, DealThreshold: 11500},
	}
	m, store := newTestMonitor(catalog, []scraper.Scraper{
		&stubScraper{name: "Takealot", prices: map[string]float64{}},
	}, &memStorage{})

	deals := m.RunSweep()

	// No deal, but the history grid entry is untouched and present
	assert.Empty(t, deals)
	obs := store.Observations("Galaxy Watch Ultra", "Takealot")
	assert.NotNil(t, obs)
	assert.Empty(t, obs)
}

func TestBestDealsRankedByDiscount(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Model B", NormalPrice: 200, DealThreshold: 150},
		{Model: "Model A", NormalPrice: 200, DealThreshold: 150},
	}
	scrapers := []scraper.Scraper{
		&stubScraper{name: "X", prices: map[string]float64{"Model A": 100, "Model B": 150}},
		&stubScraper{name: "Y", prices: map[string]float64{"Model A": 90}},
	}
	m, _ := newTestMonitor(catalog, scrapers, &memStorage{})

	best := m.BestDeals()

	// A's cheapest retailer is Y at 90 (55% off); B's is X at 150 (25% off)
	assert.Len(t, best, 2)
	assert.Equal(t, "Model A", best[0].Model)
	assert.Equal(t, "Y", best[0].Retailer)
	assert.Equal(t, float64(90), best[0].Price)
	assert.Equal(t, 55.0, best[0].DiscountPercent)
	assert.Equal(t, "Model B", best[1].Model)
	assert.Equal(t, "X", best[1].Retailer)
	assert.Equal(t, 25.0, best[1].DiscountPercent)
}

func TestBestDealsStableTieBreak(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Model A", NormalPrice: 100, DealThreshold: 90},
		{Model: "Model B", NormalPrice: 200, DealThreshold: 180},
	}
	scrapers := []scraper.Scraper{
		&stubScraper{name: "X", prices: map[string]float64{"Model A": 80, "Model B": 160}},
	}
	m, _ := newTestMonitor(catalog, scrapers, &memStorage{})

	best := m.BestDeals()

	// Equal discounts keep catalog declaration order
	assert.Len(t, best, 2)
	assert.Equal(t, "Model A", best[0].Model)
	assert.Equal(t, "Model B", best[1].Model)
}

func TestBestDealsOmitsModelsWithoutPrices(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Model A", NormalPrice: 100, DealThreshold: 90},
		{Model: "Model B", NormalPrice: 200, DealThreshold: 180},
	}
	scrapers := []scraper.Scraper{
		&stubScraper{name: "X", prices: map[string]float64{"Model A": 95}},
	}
	m, _ := newTestMonitor(catalog, scrapers, &memStorage{})

	best := m.BestDeals()

	assert.Len(t, best, 1)
	assert.Equal(t, "Model A", best[0].Model)
}

func TestBestDealsDoesNotRecordHistory(t *testing.T) {
	catalog := []config.CatalogEntry{
		{Model: "Model A", NormalPrice: 100, DealThreshold: 90},
	}
	m, store := newTestMonitor(catalog, []scraper.Scraper{
		&stubScraper{name: "X", prices: map[string]float64{"Model A": 95}},
	}, &memStorage{})

	m.BestDeals()

	// Ranking is an independent point-in-time snapshot
	assert.Empty(t, store.Observations("Model A", "X"))
}
