package datasource

import (
	"context"
	"log"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// MarketData bundles everything the report layer shows about the market
// around a listing.
type MarketData struct {
	Transactions []models.Transaction `json:"transactions"`
	History      []models.PricePoint  `json:"history"`
	News         []models.NewsItem    `json:"news,omitempty"`
	Source       string               `json:"source"` // which source supplied transactions
}

// Aggregator resolves market data through the configured sources: the URA
// service when an access key is present, falling back to the simulator, with
// a TTL cache in front. News is fetched alongside transactions; a news
// failure never fails the lookup.
type Aggregator struct {
	ura       *URA
	simulator *Simulator
	news      *News
	cache     *Cache
	months    int
}

// AggregatorOptions configures a market-data aggregator.
type AggregatorOptions struct {
	URABaseURL string
	URAKey     string
	NewsFeeds  []string
	Months     int
	CacheTTL   time.Duration
	CacheFile  string // "" disables file persistence
}

// NewAggregator creates an aggregator with all default sources.
func NewAggregator(opts AggregatorOptions) *Aggregator {
	if opts.Months <= 0 {
		opts.Months = 6
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 24 * time.Hour
	}
	return &Aggregator{
		ura:       NewURA(opts.URABaseURL, opts.URAKey),
		simulator: NewSimulator(),
		news:      NewNews(opts.NewsFeeds),
		cache:     NewCache(opts.CacheTTL, opts.CacheFile),
		months:    opts.Months,
	}
}

// Simulator returns the simulated source for direct access.
func (a *Aggregator) Simulator() *Simulator { return a.simulator }

// URA returns the URA source for direct access.
func (a *Aggregator) URA() *URA { return a.ura }

// FetchMarketData fetches comparable transactions, price history, and news
// for a district and property type. Transactions and news are fetched
// concurrently. The returned transaction sequence is always non-empty: when
// URA is unconfigured or fails, the simulator supplies a tagged fallback
// set before anything reaches the engine.
func (a *Aggregator) FetchMarketData(ctx context.Context, district int, propertyType models.PropertyType) (*MarketData, error) {
	data := &MarketData{}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		transactions, source, err := a.getTransactions(gctx, district, propertyType)
		if err != nil {
			return err
		}
		data.Transactions = transactions
		data.Source = source
		return nil
	})

	g.Go(func() error {
		headlines, err := a.news.GetHeadlines(gctx, 5)
		if err != nil {
			log.Printf("news fetch failed: %v", err)
			return nil // non-fatal
		}
		data.News = headlines
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	data.History = a.simulator.GetPriceHistory(ctx, "", propertyType)
	return data, nil
}

// getTransactions resolves the transaction sequence: cache, then URA,
// then simulator.
func (a *Aggregator) getTransactions(ctx context.Context, district int, propertyType models.PropertyType) ([]models.Transaction, string, error) {
	if cached, ok := a.cache.Get(district, propertyType); ok {
		return cached, "cached", nil
	}

	if a.ura.Configured() {
		transactions, err := a.ura.GetTransactions(ctx, district, propertyType, a.months)
		if err == nil {
			a.cache.Set(district, propertyType, transactions)
			return transactions, a.ura.Name(), nil
		}
		log.Printf("URA fetch failed, falling back to simulated data: %v", err)
	}

	transactions, err := a.simulator.GetTransactions(ctx, district, propertyType, a.months)
	if err != nil {
		return nil, "", err
	}
	return transactions, a.simulator.Name(), nil
}
