package report

import (
	"fmt"
	"strings"
)

// renderText produces the terminal report.
func renderText(d Data, opts Options) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  %s\n", d.Subtitle))
	sb.WriteString(fmt.Sprintf("  As of: %s\n", d.AsOf))
	sb.WriteString(line + "\n")

	writeLines := func(title string, lines []Line, total, totalLabel string) {
		sb.WriteString(fmt.Sprintf("\n  ■ %s\n", title))
		for _, l := range lines {
			sb.WriteString(fmt.Sprintf("    %-24s %s\n", l.Label, l.Value))
			if l.Note != "" {
				sb.WriteString(fmt.Sprintf("    %-24s (%s)\n", "", l.Note))
			}
		}
		if total != "" {
			sb.WriteString(fmt.Sprintf("    %-24s %s\n", totalLabel, total))
		}
		sb.WriteString(thinLine + "\n")
	}

	writeLines("BUYER COSTS", d.Upfront, d.UpfrontTotal, "TOTAL UPFRONT")
	if opts.ShowBreakdown && len(d.Breakdown) > 0 {
		writeLines("BSD BREAKDOWN", d.Breakdown, "", "")
	}
	writeLines("MONTHLY COSTS", d.Monthly, d.MonthlyTotal, "TOTAL MONTHLY")
	writeLines("INVESTMENT ANALYSIS", d.Investment, "", "")
	writeLines("MARKET COMPARISON", d.Market, "", "")

	if d.Simulated {
		sb.WriteString("  NOTE: market data is simulated for demonstration.\n")
		sb.WriteString("  Configure a URA access key for real transactions.\n")
		sb.WriteString(thinLine + "\n")
	}

	if len(d.Transactions) > 0 {
		sb.WriteString("\n  ■ RECENT TRANSACTIONS\n")
		for _, t := range d.Transactions {
			marker := ""
			if t.Simulated {
				marker = " [SIM]"
			}
			sb.WriteString(fmt.Sprintf("    %s | %s | %s | %s%s\n", t.Date, t.PSF, t.Price, t.Size, marker))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(d.History) > 0 {
		sb.WriteString("\n  ■ PRICE HISTORY (12 months, simulated)\n")
		for _, h := range d.History {
			sb.WriteString(fmt.Sprintf("    %s | %12s | %s\n", h.Month, h.Price, h.Bar))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(d.News) > 0 {
		sb.WriteString("\n  ■ MARKET HEADLINES\n")
		for _, n := range d.News {
			sb.WriteString(fmt.Sprintf("    • %s (%s)\n", n.Title, n.Source))
		}
		sb.WriteString(thinLine + "\n")
	}

	if len(d.Notes) > 0 {
		sb.WriteString("\n  ■ NOTES\n")
		for _, n := range d.Notes {
			sb.WriteString(fmt.Sprintf("    [%s] %s\n", n.Level, n.Message))
		}
		sb.WriteString(thinLine + "\n")
	}

	if opts.ShowGlossary {
		sb.WriteString(Glossary())
	}

	sb.WriteString("\n" + line + "\n")
	sb.WriteString("  Estimates only - not legal, tax, or financial advice.\n")
	sb.WriteString(line + "\n")

	return sb.String()
}

// Glossary returns the quick reference guide explaining the terms used in
// the report.
func Glossary() string {
	return `
  ■ QUICK REFERENCE
    BSD (Buyer's Stamp Duty): tax on every property purchase.
      Progressive rate, 1% to 6% of price.
    ABSD (Additional Buyer's Stamp Duty): extra tax for some buyers.
      Citizen 1st property 0%, 2nd 20%; PR 1st 5%; foreigner 60%.
    PSF (Price Per Square Foot): price ÷ size.
      Used to compare properties of different sizes.
    LTV (Loan-to-Value): how much the bank will lend.
      1st property up to 75%, 2nd up to 45%, 3rd+ up to 35%.
    TDSR (Total Debt Servicing Ratio): all monthly debt ÷ income.
      Must stay at or under 55% to qualify for a loan.
    Cashflow: rental income minus monthly costs.
      Positive means the property pays for itself.
    Rental yield: annual rent ÷ purchase price.
      HDB 3.5-4.5%, condo 3.0-3.5%, landed 2.0-2.5%.
`
}
