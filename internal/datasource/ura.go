package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/reddotai/sg-property-analyser/pkg/models"
)

// sqmToSqft converts URA's square-metre areas to square feet.
const sqmToSqft = 10.764

// URA fetches private residential transactions from the URA data service.
// The service requires an access key; tokens are issued per day via the
// insertNewToken endpoint.
type URA struct {
	baseURL   string
	accessKey string
	limiter   *RateLimiter

	mu          sync.Mutex
	token       string
	tokenIssued time.Time
}

// NewURA creates a URA data service client.
func NewURA(baseURL, accessKey string) *URA {
	return &URA{
		baseURL:   strings.TrimRight(baseURL, "/"),
		accessKey: accessKey,
		limiter:   NewRateLimiter(2, time.Second),
	}
}

// Name returns the data source name.
func (u *URA) Name() string { return "URA" }

// Configured reports whether an access key is set.
func (u *URA) Configured() bool { return u.accessKey != "" }

// --- Wire types ---

type uraTokenResponse struct {
	Status string `json:"Status"`
	Result string `json:"Result"`
}

type uraResponse struct {
	Status string       `json:"Status"`
	Result []uraProject `json:"Result"`
}

type uraProject struct {
	Project      string           `json:"project"`
	Street       string           `json:"street"`
	Transactions []uraTransaction `json:"transaction"`
}

type uraTransaction struct {
	Area         string `json:"area"` // sqm
	Price        string `json:"price"`
	ContractDate string `json:"contractDate"` // MMYY
	PropertyType string `json:"propertyType"`
	District     string `json:"district"`
	Tenure       string `json:"tenure"`
}

// GetTransactions queries the PMI_Resi_Transaction service and filters the
// result to the requested district, property type, and lookback window.
// Records are tagged Simulated=false.
func (u *URA) GetTransactions(ctx context.Context, district int, propertyType models.PropertyType, months int) ([]models.Transaction, error) {
	if !u.Configured() {
		return nil, ErrNotConfigured
	}
	if err := u.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	token, err := u.getToken(ctx)
	if err != nil {
		return nil, err
	}

	url := fmt.Sprintf("%s/invokeUraDS?service=PMI_Resi_Transaction&batch=1", u.baseURL)
	body, _, err := doGet(ctx, url, map[string]string{
		"AccessKey": u.accessKey,
		"Token":     token,
	})
	if err != nil {
		return nil, fmt.Errorf("ura transactions: %w", err)
	}
	defer body.Close()

	var resp uraResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return nil, fmt.Errorf("ura transactions: decode: %w", err)
	}
	if !strings.EqualFold(resp.Status, "success") {
		return nil, fmt.Errorf("ura transactions: service status %q", resp.Status)
	}

	cutoff := time.Now().AddDate(0, -months, 0)
	var transactions []models.Transaction
	for _, project := range resp.Result {
		for _, raw := range project.Transactions {
			txn, ok := convertURATransaction(project, raw)
			if !ok {
				continue
			}
			if txn.District != district || txn.Transaction.PropertyType != propertyType {
				continue
			}
			if txn.Transaction.Date.Before(cutoff) {
				continue
			}
			transactions = append(transactions, txn.Transaction)
		}
	}
	if len(transactions) == 0 {
		return nil, ErrNoData
	}

	sort.Slice(transactions, func(i, j int) bool {
		return transactions[i].Date.After(transactions[j].Date)
	})
	return transactions, nil
}

// getToken returns a cached daily token or requests a fresh one.
func (u *URA) getToken(ctx context.Context) (string, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.token != "" && time.Since(u.tokenIssued) < 23*time.Hour {
		return u.token, nil
	}

	body, _, err := doGet(ctx, u.baseURL+"/insertNewToken", map[string]string{
		"AccessKey": u.accessKey,
	})
	if err != nil {
		return "", fmt.Errorf("ura token: %w", err)
	}
	defer body.Close()

	var resp uraTokenResponse
	if err := json.NewDecoder(body).Decode(&resp); err != nil {
		return "", fmt.Errorf("ura token: decode: %w", err)
	}
	if resp.Result == "" {
		return "", fmt.Errorf("ura token: empty token, status %q", resp.Status)
	}

	u.token = resp.Result
	u.tokenIssued = time.Now()
	return u.token, nil
}

// convertedTxn pairs a converted transaction with its parsed district.
type convertedTxn struct {
	Transaction models.Transaction
	District    int
}

// convertURATransaction maps one wire record to the model form. Records
// with unparseable numbers or dates are skipped, not fatal.
func convertURATransaction(project uraProject, raw uraTransaction) (convertedTxn, bool) {
	areaSqm, err := strconv.ParseFloat(raw.Area, 64)
	if err != nil || areaSqm <= 0 {
		return convertedTxn{}, false
	}
	price, err := strconv.ParseFloat(raw.Price, 64)
	if err != nil || price <= 0 {
		return convertedTxn{}, false
	}
	district, err := strconv.Atoi(strings.TrimSpace(raw.District))
	if err != nil {
		return convertedTxn{}, false
	}
	date, err := parseContractDate(raw.ContractDate)
	if err != nil {
		return convertedTxn{}, false
	}

	return convertedTxn{
		District: district,
		Transaction: models.Transaction{
			Address:      strings.TrimSpace(project.Project + ", " + project.Street),
			PropertyType: mapURAPropertyType(raw.PropertyType),
			SizeSqft:     areaSqm * sqmToSqft,
			Price:        price,
			Date:         date,
			Tenure:       mapURATenure(raw.Tenure),
			Simulated:    false,
		},
	}, true
}

// parseContractDate parses URA's MMYY contract date format.
func parseContractDate(s string) (time.Time, error) {
	if len(s) != 4 {
		return time.Time{}, fmt.Errorf("bad contract date %q", s)
	}
	month, err := strconv.Atoi(s[:2])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, fmt.Errorf("bad contract month %q", s)
	}
	year, err := strconv.Atoi(s[2:])
	if err != nil {
		return time.Time{}, fmt.Errorf("bad contract year %q", s)
	}
	return time.Date(2000+year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), nil
}

func mapURAPropertyType(s string) models.PropertyType {
	switch {
	case strings.Contains(strings.ToLower(s), "condominium"), strings.Contains(strings.ToLower(s), "apartment"):
		return models.PropertyCondo
	case strings.Contains(strings.ToLower(s), "terrace"), strings.Contains(strings.ToLower(s), "detached"), strings.Contains(strings.ToLower(s), "semi"):
		return models.PropertyLanded
	default:
		return models.PropertyCondo
	}
}

func mapURATenure(s string) models.Tenure {
	lower := strings.ToLower(s)
	switch {
	case strings.Contains(lower, "freehold"):
		return models.TenureFreehold
	case strings.Contains(lower, "999"):
		return models.TenureLeasehold999
	default:
		return models.TenureLeasehold99
	}
}
