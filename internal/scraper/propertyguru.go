// Package scraper extracts property listings from PropertyGuru pages.
// It yields a Listing or fails with an extraction error; retries are the
// caller's decision, never the scraper's.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/reddotai/sg-property-analyser/pkg/models"
	"github.com/reddotai/sg-property-analyser/pkg/utils"
)

// AllowedDomains restricts which hosts the scraper will fetch.
var AllowedDomains = []string{"propertyguru.com.sg", "www.propertyguru.com.sg"}

// userAgent mimics a desktop browser; PropertyGuru serves a reduced page
// to unknown agents.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

// priceSelectors are tried in order until one yields a parseable price.
var priceSelectors = []string{
	`[data-testid="listing-price"]`,
	".listing-price",
	".price",
	`[class*="price"]`,
}

// addressSelectors are tried in order for the listing address.
var addressSelectors = []string{
	`[data-testid="listing-address"]`,
	".listing-address",
	".address",
}

// Scraper fetches and parses PropertyGuru listing pages.
type Scraper struct {
	client  *http.Client
	timeout time.Duration
}

// New creates a scraper with the given page-load timeout.
func New(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Scraper{
		client:  &http.Client{Timeout: timeout},
		timeout: timeout,
	}
}

// Scrape fetches a PropertyGuru listing URL and extracts a Listing. It
// fails when the URL is not an allowed PropertyGuru address, the page
// cannot be fetched, or no price can be found on the page.
func (s *Scraper) Scrape(ctx context.Context, url string) (*models.Listing, error) {
	if err := utils.ValidateURL(url, AllowedDomains); err != nil {
		return nil, fmt.Errorf("invalid listing URL: %w", err)
	}

	doc, err := s.fetchPage(ctx, url)
	if err != nil {
		return nil, err
	}

	listing := &models.Listing{URL: url}

	listing.Title = firstText(doc, "h1", ".listing-title", `[data-testid="listing-title"]`)

	for _, selector := range priceSelectors {
		if text := firstText(doc, selector); text != "" {
			if price := ParsePrice(text); price > 0 {
				listing.Price = price
				break
			}
		}
	}

	// Parse the body text once for the attribute fields.
	pageText := doc.Find("body").Text()
	listing.SizeSqft = ParseSize(pageText)
	listing.Bedrooms, listing.Bathrooms = ParseBedsBaths(pageText)
	listing.Tenure, listing.LeaseYearsLeft = ParseTenure(pageText)
	listing.PropertyType = ParsePropertyType(pageText)
	listing.MaintenanceFee = ParseMaintenanceFee(pageText)

	listing.Address = firstText(doc, addressSelectors...)
	if listing.Address == "" {
		listing.Address = listing.Title
	}

	if listing.Price <= 0 {
		return nil, fmt.Errorf("extraction failed: no price found on %s", url)
	}
	if listing.SizeSqft <= 0 {
		return nil, fmt.Errorf("extraction failed: no floor area found on %s", url)
	}
	return listing, nil
}

// fetchPage downloads and parses the listing page.
func (s *Scraper) fetchPage(ctx context.Context, url string) (*goquery.Document, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("fetch %s: HTTP %s", url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", url, err)
	}
	return doc, nil
}

// firstText returns the trimmed text of the first selector that matches.
func firstText(doc *goquery.Document, selectors ...string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	return ""
}
