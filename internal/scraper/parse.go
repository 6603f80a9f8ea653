package scraper

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

var (
	numberRe    = regexp.MustCompile(`[\d.]+`)
	sqftRe      = regexp.MustCompile(`(?i)(\d[,\d]*)\s*sqft`)
	sqmRe       = regexp.MustCompile(`(?i)(\d[,\d]*)\s*sqm`)
	bedRe       = regexp.MustCompile(`(?i)(\d+)\s*bed`)
	bathRe      = regexp.MustCompile(`(?i)(\d+)\s*bath`)
	leaseRe     = regexp.MustCompile(`(\d+)[\s-]*year`)
	remainingRe = regexp.MustCompile(`(\d+)\s*years?\s*(remaining|left)`)
	maintRe     = regexp.MustCompile(`\$([\d,]+)\s*(monthly|maintenance)`)
)

// sqmToSqft converts square metres to square feet.
const sqmToSqft = 10.764

// ParsePrice extracts a numeric price from text like "$1,250,000" or
// "S$ 1.25M". Returns 0 when no number is found.
func ParsePrice(text string) float64 {
	text = strings.NewReplacer("S$", "", "$", "", ",", "").Replace(text)
	text = strings.TrimSpace(text)

	multiplier := 1.0
	upper := strings.ToUpper(text)
	switch {
	case strings.Contains(upper, "M"):
		multiplier = 1_000_000
	case strings.Contains(upper, "K"):
		multiplier = 1_000
	}

	match := numberRe.FindString(text)
	if match == "" {
		return 0
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil {
		return 0
	}
	return value * multiplier
}

// ParseSize extracts a floor area in sqft from text, converting sqm when
// that is all the page states. Returns 0 when no size is found.
func ParseSize(text string) float64 {
	if m := sqftRe.FindStringSubmatch(text); m != nil {
		return parseGrouped(m[1])
	}
	if m := sqmRe.FindStringSubmatch(text); m != nil {
		return parseGrouped(m[1]) * sqmToSqft
	}
	return 0
}

// ParseBedsBaths extracts bedroom and bathroom counts from text. Missing
// counts come back as 0.
func ParseBedsBaths(text string) (beds, baths int) {
	if m := bedRe.FindStringSubmatch(text); m != nil {
		beds, _ = strconv.Atoi(m[1])
	}
	if m := bathRe.FindStringSubmatch(text); m != nil {
		baths, _ = strconv.Atoi(m[1])
	}
	return beds, baths
}

// ParseTenure extracts the tenure and, for leasehold, any stated remaining
// years. Returns the zero Tenure when nothing matches.
func ParseTenure(text string) (models.Tenure, int) {
	lower := strings.ToLower(text)

	if strings.Contains(lower, "freehold") {
		return models.TenureFreehold, 0
	}
	if strings.Contains(lower, "999") {
		return models.TenureLeasehold999, 0
	}
	if m := leaseRe.FindStringSubmatch(lower); m != nil {
		remaining := 0
		if rm := remainingRe.FindStringSubmatch(lower); rm != nil {
			remaining, _ = strconv.Atoi(rm[1])
		}
		return models.TenureLeasehold99, remaining
	}
	return "", 0
}

// ParsePropertyType infers the property type from free page text.
func ParsePropertyType(text string) models.PropertyType {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "condo"):
		return models.PropertyCondo
	case strings.Contains(lower, "hdb"):
		return models.PropertyHDB
	case strings.Contains(lower, "landed"),
		strings.Contains(lower, "bungalow"),
		strings.Contains(lower, "terrace"):
		return models.PropertyLanded
	default:
		return ""
	}
}

// ParseMaintenanceFee extracts a stated monthly maintenance fee, or 0.
func ParseMaintenanceFee(text string) float64 {
	if m := maintRe.FindStringSubmatch(strings.ToLower(text)); m != nil {
		return parseGrouped(m[1])
	}
	return 0
}

func parseGrouped(s string) float64 {
	value, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return value
}
