package config

// CatalogEntry describes a tracked watch model with its reference price
// and the price at or below which an observation counts as a deal.
type CatalogEntry struct {
	Model         string
	NormalPrice   float64
	DealThreshold float64
}

// Selectors holds the retailer-specific CSS selectors used to locate
// product cards, their titles and their price elements on a listing page.
// These are site-dependent and drift as retailers redesign their pages.
type Selectors struct {
	Card  string
	Title string
	Price string
}

// Retailer describes a seller whose listing page is polled for prices.
type Retailer struct {
	Name      string
	URL       string
	Selectors Selectors
}

// Catalog returns the tracked watch models in declaration order. The order
// is significant: sweeps and reports follow it.
func Catalog() []CatalogEntry {
	return []CatalogEntry{
		{Model: "Galaxy Watch 6 (40mm)", NormalPrice: 7999, DealThreshold: 6500},
		{Model: "Galaxy Watch 6 (44mm)", NormalPrice: 8499, DealThreshold: 7000},
		{Model: "Galaxy Watch 6 Classic (43mm)", NormalPrice: 10999, DealThreshold: 9000},
		{Model: "Galaxy Watch 6 Classic (47mm)", NormalPrice: 11999, DealThreshold: 9800},
		{Model: "Galaxy Watch 7 (40mm)", NormalPrice: 8499, DealThreshold: 7000},
		{Model: "Galaxy Watch 7 (44mm)", NormalPrice: 8999, DealThreshold: 7500},
		{Model: "Galaxy Watch Ultra", NormalPrice: 13999, DealThreshold: 11500},
	}
}

// Retailers returns the polled retailers in declaration order, with page
// URLs taken from the configuration so tests and deployments can point
// them elsewhere.
func (c *Config) Retailers() []Retailer {
	return []Retailer{
		{
			Name: "Samsung",
			URL:  c.SamsungURL,
			Selectors: Selectors{
				Card:  ".product-card",
				Title: ".product-title",
				Price: ".sale-price",
			},
		},
		{
			Name: "Takealot",
			URL:  c.TakealotURL,
			Selectors: Selectors{
				Card:  ".product-card",
				Title: ".product-title",
				Price: ".price",
			},
		},
		{
			Name: "Incredible Connection",
			URL:  c.IncredibleURL,
			Selectors: Selectors{
				Card:  ".product-item",
				Title: ".product-name",
				Price: ".price",
			},
		},
		{
			Name: "Makro",
			URL:  c.MakroURL,
			Selectors: Selectors{
				Card:  ".product-card",
				Title: ".name",
				Price: ".price",
			},
		},
		{
			Name: "OneDayOnly",
			URL:  c.OneDayOnlyURL,
			Selectors: Selectors{
				Card:  ".product-item",
				Title: ".product-name",
				Price: ".current-price",
			},
		},
	}
}

// ModelNames returns the catalog model names in declaration order.
func ModelNames() []string {
	catalog := Catalog()
	names := make([]string, 0, len(catalog))
	for _, entry := range catalog {
		names = append(names, entry.Model)
	}
	return names
}

// RetailerNames returns the retailer names in declaration order.
func (c *Config) RetailerNames() []string {
	retailers := c.Retailers()
	names := make([]string, 0, len(retailers))
	for _, r := range retailers {
		names = append(names, r.Name)
	}
	return names
}
