package datasource

import (
	"context"
	"sort"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// DefaultNewsFeeds lists the property-news RSS feeds polled for headlines.
var DefaultNewsFeeds = []string{
	"https://www.edgeprop.sg/rss.xml",
	"https://stackedhomes.com/editorial/feed/",
}

// News fetches Singapore property-market headlines from RSS feeds.
type News struct {
	feeds   []string
	limiter *RateLimiter
	parser  *gofeed.Parser
}

// NewNews creates a news source. A nil or empty feed list uses the defaults.
func NewNews(feeds []string) *News {
	if len(feeds) == 0 {
		feeds = DefaultNewsFeeds
	}
	return &News{
		feeds:   feeds,
		limiter: NewRateLimiter(2, time.Second),
		parser:  gofeed.NewParser(),
	}
}

// Name returns the data source name.
func (n *News) Name() string { return "Property News" }

// GetHeadlines returns up to limit recent headlines across all feeds,
// newest first. Feeds that fail to parse are skipped; headlines are
// decoration, not analysis input.
func (n *News) GetHeadlines(ctx context.Context, limit int) ([]models.NewsItem, error) {
	var items []models.NewsItem
	for _, feedURL := range n.feeds {
		if err := n.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		feed, err := n.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			continue
		}
		for _, item := range feed.Items {
			published := time.Time{}
			if item.PublishedParsed != nil {
				published = *item.PublishedParsed
			}
			items = append(items, models.NewsItem{
				Title:       item.Title,
				Link:        item.Link,
				Source:      feed.Title,
				PublishedAt: published,
			})
		}
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].PublishedAt.After(items[j].PublishedAt)
	})
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}
