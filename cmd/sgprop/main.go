// sgprop is the Singapore property deal analyser CLI.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/reddotai/sg-property-analyser/api"
	"github.com/reddotai/sg-property-analyser/internal/analysis/mortgage"
	"github.com/reddotai/sg-property-analyser/internal/analysis/tax"
	"github.com/reddotai/sg-property-analyser/internal/config"
	"github.com/reddotai/sg-property-analyser/internal/datasource"
	"github.com/reddotai/sg-property-analyser/internal/engine"
	"github.com/reddotai/sg-property-analyser/internal/report"
	"github.com/reddotai/sg-property-analyser/internal/scraper"
	"github.com/reddotai/sg-property-analyser/pkg/models"
	"github.com/reddotai/sg-property-analyser/pkg/utils"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// Global config
var cfg *config.Config

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sgprop",
	Short: "sgprop - Singapore property deal analyser",
	Long: `sgprop analyses Singapore residential property deals: stamp duties
(BSD/ABSD), mortgage and monthly holding costs, rental yield and TDSR,
and a price-per-square-foot comparison against recent transactions in
the same district.

Listings can be scraped from a property portal URL or described
manually with flags.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		configFile, _ := cmd.Flags().GetString("config")
		if configFile != "" {
			cfg, err = config.LoadFromFile(configFile)
		} else {
			cfg, err = config.Load()
		}
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(stampdutyCmd)
	rootCmd.AddCommand(mortgageCmd)
	rootCmd.AddCommand(marketCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(glossaryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
}

// --- Version Command ---

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sgprop %s\n", version)
		fmt.Printf("  commit:  %s\n", commit)
		fmt.Printf("  built:   %s\n", date)
	},
}

// --- Analyze Command ---

var analyzeCmd = &cobra.Command{
	Use:   "analyze [listing-url]",
	Short: "Analyse a property deal",
	Long: `Analyse a property deal from a listing URL or from manual flags.

Examples:
  sgprop analyze https://www.propertyguru.com.sg/listing/12345678
  sgprop analyze --price 1250000 --size 980 --type condo --district 15
  sgprop analyze --price 550000 --size 990 --type hdb --district 19 \
      --tenure 99 --lease-left 72 --buyer citizen_first --income 8000`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		listing, err := resolveListing(cmd, args)
		if err != nil {
			return err
		}

		buyer, err := resolveBuyer(cmd)
		if err != nil {
			return err
		}

		eng, err := engine.New(cfg.EngineParams())
		if err != nil {
			return err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		agg := newAggregator()
		market, err := agg.FetchMarketData(ctx, listing.District, listing.PropertyType)
		if err != nil {
			return fmt.Errorf("market data: %w", err)
		}

		result, err := eng.Analyze(*listing, buyer, market.Transactions, utils.NowSGT())
		if err != nil {
			return err
		}

		format := report.FormatText
		if html, _ := cmd.Flags().GetBool("html"); html {
			format = report.FormatHTML
		}
		breakdown, _ := cmd.Flags().GetBool("breakdown")
		glossary, _ := cmd.Flags().GetBool("glossary")

		out, err := report.Render(result, market, report.Options{
			Format:        format,
			ShowBreakdown: breakdown,
			ShowGlossary:  glossary,
		})
		if err != nil {
			return err
		}

		if output, _ := cmd.Flags().GetString("output"); output != "" {
			if err := os.WriteFile(output, []byte(out), 0o644); err != nil {
				return fmt.Errorf("failed to write report: %w", err)
			}
			fmt.Printf("Report written to %s\n", output)
			return nil
		}
		fmt.Println(out)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().Float64("price", 0, "asking price in SGD (manual mode)")
	analyzeCmd.Flags().Float64("size", 0, "floor area in sqft (manual mode)")
	analyzeCmd.Flags().String("type", "condo", "property type: hdb, condo, landed")
	analyzeCmd.Flags().Int("district", 0, "postal district (1-28)")
	analyzeCmd.Flags().String("address", "", "property address (manual mode)")
	analyzeCmd.Flags().String("tenure", "", "tenure: freehold, 999, 99")
	analyzeCmd.Flags().Int("lease-left", 0, "remaining lease in years (leasehold)")
	analyzeCmd.Flags().Float64("maintenance", 0, "monthly maintenance fee in SGD")
	analyzeCmd.Flags().String("buyer", string(models.BuyerCitizenFirst), "buyer category (see 'sgprop glossary')")
	analyzeCmd.Flags().Float64("income", 0, "gross monthly income in SGD (for TDSR)")
	analyzeCmd.Flags().Float64("debts", 0, "existing monthly debt obligations in SGD")
	analyzeCmd.Flags().Bool("breakdown", false, "show the per-tier BSD breakdown")
	analyzeCmd.Flags().Bool("glossary", false, "append the glossary to the report")
	analyzeCmd.Flags().Bool("html", false, "render the report as HTML")
	analyzeCmd.Flags().StringP("output", "o", "", "write the report to a file")
}

// resolveListing builds the listing either by scraping the URL argument
// or from the manual flags.
func resolveListing(cmd *cobra.Command, args []string) (*models.Listing, error) {
	if len(args) == 1 {
		fmt.Printf("Fetching listing %s ...\n", args[0])
		sc := scraper.New(time.Duration(cfg.Scraper.TimeoutSec) * time.Second)
		ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Scraper.TimeoutSec)*time.Second)
		defer cancel()
		listing, err := sc.Scrape(ctx, args[0])
		if err != nil {
			return nil, fmt.Errorf("failed to scrape listing: %w", err)
		}
		// Flags fill gaps the page did not state.
		if district, _ := cmd.Flags().GetInt("district"); district > 0 && listing.District == 0 {
			listing.District = district
		}
		if listing.District == 0 {
			return nil, fmt.Errorf("could not determine district from the listing; pass --district")
		}
		return listing, nil
	}

	price, _ := cmd.Flags().GetFloat64("price")
	size, _ := cmd.Flags().GetFloat64("size")
	district, _ := cmd.Flags().GetInt("district")
	if price <= 0 || size <= 0 || district == 0 {
		return nil, fmt.Errorf("manual mode requires --price, --size and --district (or pass a listing URL)")
	}
	if err := utils.ValidatePrice(price); err != nil {
		return nil, err
	}
	if err := utils.ValidateSize(size); err != nil {
		return nil, err
	}
	if err := utils.ValidateDistrict(district); err != nil {
		return nil, err
	}

	typeStr, _ := cmd.Flags().GetString("type")
	propertyType := models.PropertyType(strings.ToLower(typeStr))
	switch propertyType {
	case models.PropertyHDB, models.PropertyCondo, models.PropertyLanded:
	default:
		return nil, fmt.Errorf("unknown property type %q (hdb, condo, landed)", typeStr)
	}

	address, _ := cmd.Flags().GetString("address")
	if address == "" {
		address = fmt.Sprintf("District %d %s", district, propertyType)
	}

	tenureStr, _ := cmd.Flags().GetString("tenure")
	tenure := models.Tenure(tenureStr)
	if tenure == "" {
		if propertyType == models.PropertyHDB {
			tenure = models.TenureLeasehold99
		} else {
			tenure = models.TenureFreehold
		}
	}
	leaseLeft, _ := cmd.Flags().GetInt("lease-left")
	maintenance, _ := cmd.Flags().GetFloat64("maintenance")

	return &models.Listing{
		Address:        address,
		Price:          price,
		SizeSqft:       size,
		PropertyType:   propertyType,
		District:       district,
		Tenure:         tenure,
		LeaseYearsLeft: leaseLeft,
		MaintenanceFee: maintenance,
	}, nil
}

// resolveBuyer builds the buyer profile from flags.
func resolveBuyer(cmd *cobra.Command) (models.BuyerProfile, error) {
	buyerStr, _ := cmd.Flags().GetString("buyer")
	category := models.BuyerCategory(strings.ToLower(buyerStr))

	known := false
	for _, c := range models.AllBuyerCategories() {
		if category == c {
			known = true
			break
		}
	}
	if !known {
		return models.BuyerProfile{}, fmt.Errorf("unknown buyer category %q (see 'sgprop glossary')", buyerStr)
	}

	income, _ := cmd.Flags().GetFloat64("income")
	debts, _ := cmd.Flags().GetFloat64("debts")
	return models.BuyerProfile{
		Category:      category,
		MonthlyIncome: income,
		MonthlyDebts:  debts,
	}, nil
}

// --- Stamp Duty Command ---

var stampdutyCmd = &cobra.Command{
	Use:   "stampduty [price]",
	Short: "Compute BSD and ABSD for a purchase price",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := utils.ParseAmount(args[0])
		if err != nil {
			return err
		}
		if err := utils.ValidatePrice(price); err != nil {
			return err
		}

		bsd, breakdown, err := tax.ComputeBSD(price, cfg.BSDSchedule())
		if err != nil {
			return err
		}

		fmt.Printf("Purchase price: %s\n\n", utils.FormatSGD(price))
		fmt.Println("Buyer's Stamp Duty (BSD):")
		for _, tier := range breakdown {
			fmt.Printf("  %-28s %s\n", tier.Description, utils.FormatSGD(tier.Amount))
		}
		fmt.Printf("  %-28s %s\n\n", "Total BSD", utils.FormatSGD(bsd))

		buyerStr, _ := cmd.Flags().GetString("buyer")
		if buyerStr != "" {
			absd, desc, err := tax.ComputeABSD(price, models.BuyerCategory(buyerStr), cfg.ABSDSchedule())
			if err != nil {
				return err
			}
			fmt.Printf("ABSD (%s): %s\n", desc, utils.FormatSGD(absd))
			fmt.Printf("Total stamp duty: %s\n", utils.FormatSGD(bsd+absd))
			return nil
		}

		// No buyer given: show the full ABSD table.
		fmt.Println("ABSD by buyer category:")
		for _, category := range models.AllBuyerCategories() {
			absd, _, err := tax.ComputeABSD(price, category, cfg.ABSDSchedule())
			if err != nil {
				continue
			}
			fmt.Printf("  %-16s %s\n", category, utils.FormatSGD(absd))
		}
		return nil
	},
}

func init() {
	stampdutyCmd.Flags().String("buyer", "", "buyer category; omit to show the full ABSD table")
}

// --- Mortgage Command ---

var mortgageCmd = &cobra.Command{
	Use:   "mortgage [price]",
	Short: "Compute down payment and monthly installment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		price, err := utils.ParseAmount(args[0])
		if err != nil {
			return err
		}
		if err := utils.ValidatePrice(price); err != nil {
			return err
		}

		buyerStr, _ := cmd.Flags().GetString("buyer")
		down, loan, desc, err := mortgage.DownPayment(price, models.BuyerCategory(buyerStr), cfg.LTVPolicy())
		if err != nil {
			return err
		}

		rate, _ := cmd.Flags().GetFloat64("rate")
		if rate == 0 {
			rate = cfg.Rates.InterestRate
		}
		tenure, _ := cmd.Flags().GetInt("tenure")
		if tenure == 0 {
			tenure = cfg.Rates.LoanTenureYears
		}

		installment, err := mortgage.MonthlyInstallment(loan, rate, tenure)
		if err != nil {
			return err
		}

		fmt.Printf("Purchase price:      %s\n", utils.FormatSGD(price))
		fmt.Printf("Financing:           %s\n", desc)
		fmt.Printf("Down payment:        %s\n", utils.FormatSGD(down))
		fmt.Printf("Loan amount:         %s\n", utils.FormatSGD(loan))
		fmt.Printf("Monthly installment: %s (%.2f%% p.a., %d years)\n",
			utils.FormatSGD(installment), rate*100, tenure)
		return nil
	},
}

func init() {
	mortgageCmd.Flags().String("buyer", string(models.BuyerCitizenFirst), "buyer category (sets the LTV limit)")
	mortgageCmd.Flags().Float64("rate", 0, "annual interest rate as a decimal, e.g. 0.035")
	mortgageCmd.Flags().Int("tenure", 0, "loan tenure in years")
}

// --- Market Command ---

var marketCmd = &cobra.Command{
	Use:   "market",
	Short: "Show recent transactions for a district",
	RunE: func(cmd *cobra.Command, args []string) error {
		district, _ := cmd.Flags().GetInt("district")
		if err := utils.ValidateDistrict(district); err != nil {
			return err
		}
		typeStr, _ := cmd.Flags().GetString("type")
		propertyType := models.PropertyType(typeStr)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		agg := newAggregator()
		market, err := agg.FetchMarketData(ctx, district, propertyType)
		if err != nil {
			return err
		}

		fmt.Printf("Recent %s transactions, district %d (source: %s)\n\n",
			propertyType, district, market.Source)
		fmt.Printf("  %-12s %-30s %10s %8s %10s\n", "DATE", "ADDRESS", "PRICE", "SQFT", "PSF")
		for _, txn := range market.Transactions {
			marker := ""
			if txn.Simulated {
				marker = " [SIM]"
			}
			fmt.Printf("  %-12s %-30s %10s %8.0f %10s%s\n",
				txn.Date.Format("2006-01-02"), truncate(txn.Address, 30),
				utils.FormatSGDCompact(txn.Price), txn.SizeSqft,
				utils.FormatSGDCompact(txn.PSF()), marker)
		}

		psfs := make([]float64, 0, len(market.Transactions))
		for _, txn := range market.Transactions {
			if txn.SizeSqft > 0 {
				psfs = append(psfs, txn.PSF())
			}
		}
		if len(psfs) > 0 {
			sort.Float64s(psfs)
			fmt.Printf("\n  %d transactions, PSF range %s to %s\n",
				len(psfs), utils.FormatSGDCompact(psfs[0]), utils.FormatSGDCompact(psfs[len(psfs)-1]))
		}
		return nil
	},
}

func init() {
	marketCmd.Flags().Int("district", 0, "postal district (1-28)")
	marketCmd.Flags().String("type", "condo", "property type: hdb, condo, landed")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

// --- History Command ---

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the 12-month price history for a property type",
	RunE: func(cmd *cobra.Command, args []string) error {
		typeStr, _ := cmd.Flags().GetString("type")
		propertyType := models.PropertyType(typeStr)

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		agg := newAggregator()
		history := agg.Simulator().GetPriceHistory(ctx, "", propertyType)
		if len(history) == 0 {
			return fmt.Errorf("no price history available for type %q", typeStr)
		}

		minP, maxP := history[0].Price, history[0].Price
		for _, h := range history {
			if h.Price < minP {
				minP = h.Price
			}
			if h.Price > maxP {
				maxP = h.Price
			}
		}

		fmt.Printf("Simulated %s price history (PSF, 12 months)\n\n", propertyType)
		for _, h := range history {
			barLen := 15
			if maxP > minP {
				barLen = int((h.Price - minP) / (maxP - minP) * 30)
			}
			fmt.Printf("  %s  %10s  %s\n", h.Month, utils.FormatSGD(h.Price), strings.Repeat("█", barLen))
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().String("type", "condo", "property type: hdb, condo, landed")
}

// --- Glossary Command ---

var glossaryCmd = &cobra.Command{
	Use:   "glossary",
	Short: "Explain the terms and buyer categories used in reports",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(report.Glossary())
		fmt.Println("Buyer categories:")
		for _, category := range models.AllBuyerCategories() {
			fmt.Printf("  %s\n", category)
		}
	},
}

// --- Serve Command (API Server) ---

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := api.NewServer(cfg)
		if err != nil {
			return err
		}
		addr := fmt.Sprintf("%s:%d", cfg.API.Host, cfg.API.Port)
		fmt.Printf("Starting sgprop API server on %s\n", addr)
		return srv.ListenAndServe(addr)
	},
}

// --- Status Command ---

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show effective configuration and data sources",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println("═══════════════════════════════════════")
		fmt.Println("  sgprop - System Status")
		fmt.Println("═══════════════════════════════════════")
		fmt.Printf("  Version:     %s (%s)\n", version, commit)
		fmt.Printf("  Time (SGT):  %s\n", utils.NowSGT().Format("2006-01-02 15:04:05"))
		fmt.Println()

		fmt.Println("  Configuration:")
		fmt.Printf("    Interest rate:  %.2f%% p.a., %d-year tenure\n",
			cfg.Rates.InterestRate*100, cfg.Rates.LoanTenureYears)
		fmt.Printf("    TDSR limit:     %.0f%%\n", cfg.Rates.TDSRLimitPct)
		fmt.Printf("    Rating bands:   good ≤ %.0f%%, fair ≤ +%.0f%%\n",
			cfg.Rating.GoodBelowPct, cfg.Rating.FairBelowPct)
		fmt.Printf("    API server:     %s:%d\n", cfg.API.Host, cfg.API.Port)
		fmt.Println()

		fmt.Println("  Data sources:")
		agg := newAggregator()
		uraStatus := "not configured (simulated data)"
		if agg.URA().Configured() {
			uraStatus = fmt.Sprintf("%s configured (%s)", agg.URA().Name(), maskKey(cfg.Market.URAAPIKey))
		}
		fmt.Printf("    URA API:   %s\n", uraStatus)
		fmt.Printf("    News:      %d feed(s)\n", len(cfg.Market.NewsFeeds))
		fmt.Printf("    Cache:     %dh TTL, %s\n", cfg.Market.CacheTTLHours, cfg.Market.CacheFile)
		fmt.Println("═══════════════════════════════════════")
		return nil
	},
}

// maskKey shows only the last 4 characters of a secret.
func maskKey(key string) string {
	if len(key) <= 4 {
		return "****"
	}
	return "****" + key[len(key)-4:]
}

// newAggregator builds the market-data aggregator from the loaded config.
func newAggregator() *datasource.Aggregator {
	return datasource.NewAggregator(datasource.AggregatorOptions{
		URABaseURL: cfg.Market.URABaseURL,
		URAKey:     cfg.Market.URAAPIKey,
		NewsFeeds:  cfg.Market.NewsFeeds,
		Months:     cfg.Market.Months,
		CacheTTL:   time.Duration(cfg.Market.CacheTTLHours) * time.Hour,
		CacheFile:  cfg.Market.CacheFile,
	})
}
