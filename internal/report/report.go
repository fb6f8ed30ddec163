// Package report renders deal and ranking data into human-readable text.
// It only constructs content; writing the report artifact is the one piece
// of I/O, delegated to FileWriter.
package report

import (
	"fmt"
	"strings"

	"watchtracker/internal/monitor"
)

// BuildReport renders the ranked best-deal list as a dated plain-text
// report. Rendering is deterministic: the line order follows the ranking.
func BuildReport(date string, bestDeals []monitor.DealRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "SAMSUNG WATCH PRICE REPORT - %s\n", date)
	b.WriteString("=========================================\n\n")

	b.WriteString("BEST CURRENT DEALS (RANKED BY DISCOUNT)\n")
	b.WriteString("----------------------------------------\n")

	for i, deal := range bestDeals {
		fmt.Fprintf(&b, "%d. %s - R %.2f at %s\n", i+1, deal.Model, deal.Price, deal.Retailer)
		fmt.Fprintf(&b, "   Discount: %.1f%% off R %.2f (You save R %.2f)\n\n", deal.DiscountPercent, deal.NormalPrice, deal.Savings)
	}

	return b.String()
}

// BuildAlertMessage renders the sweep's deal list as an alert body. It
// returns an empty string when there are no deals, in which case no
// notification should be attempted.
func BuildAlertMessage(deals []monitor.DealRecord) string {
	if len(deals) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("Samsung Watch Price Alerts in South Africa:\n\n")

	for _, deal := range deals {
		fmt.Fprintf(&b, "%s at %s\n", deal.Model, deal.Retailer)
		fmt.Fprintf(&b, "Price: R %.2f (Normal: R %.2f)\n", deal.Price, deal.NormalPrice)
		fmt.Fprintf(&b, "Discount: %.1f%% (You save R %.2f)\n\n", deal.DiscountPercent, deal.Savings)
	}

	return b.String()
}
