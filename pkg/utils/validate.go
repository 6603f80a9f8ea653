package utils

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// Range-check bounds for raw user entry. These are sanity limits on input
// syntax, not engine rules.
const (
	MaxPrice    = 100_000_000 // $100M
	MaxSizeSqft = 50_000
)

// ValidatePrice range-checks a raw price entry.
func ValidatePrice(price float64) error {
	if price <= 0 {
		return fmt.Errorf("price must be greater than 0")
	}
	if price > MaxPrice {
		return fmt.Errorf("price seems unrealistic (over $100M)")
	}
	return nil
}

// ValidateSize range-checks a raw floor-area entry.
func ValidateSize(size float64) error {
	if size <= 0 {
		return fmt.Errorf("size must be greater than 0")
	}
	if size > MaxSizeSqft {
		return fmt.Errorf("size seems unrealistic (over 50,000 sqft)")
	}
	return nil
}

// ValidateDistrict checks a Singapore postal district number.
func ValidateDistrict(district int) error {
	if district < 1 || district > 28 {
		return fmt.Errorf("district must be between 1 and 28")
	}
	return nil
}

var dangerousURLPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.\./`),
	regexp.MustCompile(`\$\{`),
	regexp.MustCompile("`"),
	regexp.MustCompile(`[|;]`),
}

// ValidateURL checks a URL's scheme and, when allowedDomains is non-empty,
// restricts the host to the given domain suffixes.
func ValidateURL(raw string, allowedDomains []string) error {
	if raw == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme %q: must be http or https", parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("invalid URL: missing domain")
	}

	if len(allowedDomains) > 0 {
		allowed := false
		for _, domain := range allowedDomains {
			if strings.HasSuffix(parsed.Host, domain) {
				allowed = true
				break
			}
		}
		if !allowed {
			return fmt.Errorf("domain not allowed: %s", parsed.Host)
		}
	}

	for _, pattern := range dangerousURLPatterns {
		if pattern.MatchString(raw) {
			return fmt.Errorf("URL contains potentially dangerous characters")
		}
	}
	return nil
}
