package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rxtech-lab/paper-trading/internal/types"
	"github.com/rxtech-lab/paper-trading/pkg/errors"
)

const (
	defaultEastMoneyBaseURL = "https://82.push2.eastmoney.com"
	eastMoneyPageSize       = 5000
)

// EastMoneyProvider fetches the A-share spot snapshot table from the
// EastMoney push2 quote API. The clist endpoint pages through every listed
// instrument; one fetch returns the whole market.
type EastMoneyProvider struct {
	client  *http.Client
	baseURL string
}

// EastMoneyOption customizes the provider.
type EastMoneyOption func(*EastMoneyProvider)

// WithBaseURL overrides the quote API endpoint.
func WithBaseURL(baseURL string) EastMoneyOption {
	return func(p *EastMoneyProvider) {
		p.baseURL = baseURL
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(client *http.Client) EastMoneyOption {
	return func(p *EastMoneyProvider) {
		p.client = client
	}
}

// NewEastMoneyProvider creates an EastMoney spot quote provider.
func NewEastMoneyProvider(opts ...EastMoneyOption) *EastMoneyProvider {
	provider := &EastMoneyProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: defaultEastMoneyBaseURL,
	}

	for _, opt := range opts {
		opt(provider)
	}

	return provider
}

// spotResponse mirrors the push2 clist payload. Field values of suspended
// instruments come back as the string "-" instead of a number, so the diff
// rows are decoded loosely and converted per field.
type spotResponse struct {
	Data struct {
		Total int              `json:"total"`
		Diff  []map[string]any `json:"diff"`
	} `json:"data"`
}

// FetchSpot downloads the full spot snapshot table.
func (p *EastMoneyProvider) FetchSpot(ctx context.Context) ([]types.Quote, error) {
	quotes := make([]types.Quote, 0, eastMoneyPageSize)

	for page := 1; ; page++ {
		diff, total, err := p.fetchPage(ctx, page)
		if err != nil {
			return nil, err
		}

		for _, row := range diff {
			quote, ok := parseSpotRow(row)
			if !ok {
				continue
			}

			quotes = append(quotes, quote)
		}

		if page*eastMoneyPageSize >= total || len(diff) == 0 {
			break
		}
	}

	if len(quotes) == 0 {
		return nil, errors.New(errors.ErrCodeQuoteParseFailed, "spot snapshot contained no usable rows")
	}

	return quotes, nil
}

func (p *EastMoneyProvider) fetchPage(ctx context.Context, page int) ([]map[string]any, int, error) {
	query := url.Values{}
	query.Set("pn", strconv.Itoa(page))
	query.Set("pz", strconv.Itoa(eastMoneyPageSize))
	query.Set("po", "1")
	query.Set("np", "1")
	query.Set("fltt", "2")
	query.Set("invt", "2")
	// Shanghai and Shenzhen main boards plus STAR and ChiNext.
	query.Set("fs", "m:0+t:6,m:0+t:80,m:1+t:2,m:1+t:23")
	// f2 price, f3 percent change, f12 code, f14 name, f18 previous close.
	query.Set("fields", "f2,f3,f12,f14,f18")

	endpoint := fmt.Sprintf("%s/api/qt/clist/get?%s", p.baseURL, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "failed to build spot request", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "spot request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, errors.Newf(errors.ErrCodeQuoteFetchFailed, "spot request returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQuoteFetchFailed, "failed to read spot response", err)
	}

	var payload spotResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, 0, errors.Wrap(errors.ErrCodeQuoteParseFailed, "failed to parse spot response", err)
	}

	return payload.Data.Diff, payload.Data.Total, nil
}

// parseSpotRow converts one clist diff row into a Quote. Rows without a
// numeric price (suspended or unlisted instruments) are skipped.
func parseSpotRow(row map[string]any) (types.Quote, bool) {
	code, _ := row["f12"].(string)
	name, _ := row["f14"].(string)

	if code == "" {
		return types.Quote{}, false
	}

	price, ok := toDecimal(row["f2"])
	if !ok || !price.IsPositive() {
		return types.Quote{}, false
	}

	prevClose, _ := toDecimal(row["f18"])
	percentChange, _ := toDecimal(row["f3"])

	return types.Quote{
		Code:          code,
		Name:          name,
		Price:         price,
		PrevClose:     prevClose,
		PercentChange: percentChange,
	}, true
}

func toDecimal(value any) (decimal.Decimal, bool) {
	switch v := value.(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		parsed, err := decimal.NewFromString(v)
		if err != nil {
			return decimal.Zero, false
		}

		return parsed, true
	default:
		return decimal.Zero, false
	}
}

// GetQuote looks up a single instrument by code or display name, scanning a
// fresh snapshot. Prefer CachedProvider for repeated lookups.
func (p *EastMoneyProvider) GetQuote(ctx context.Context, symbolOrName string) (types.Quote, error) {
	quotes, err := p.FetchSpot(ctx)
	if err != nil {
		return types.Quote{}, err
	}

	if quote, ok := findQuote(quotes, symbolOrName); ok {
		return quote, nil
	}

	return types.Quote{}, errors.Newf(errors.ErrCodeQuoteNotFound, "no quote for %s", symbolOrName)
}

// GetQuotes looks up quotes for the given codes from a fresh snapshot.
func (p *EastMoneyProvider) GetQuotes(ctx context.Context, symbols []string) (map[string]types.Quote, error) {
	quotes, err := p.FetchSpot(ctx)
	if err != nil {
		return nil, err
	}

	return selectQuotes(quotes, symbols), nil
}

// findQuote searches a snapshot by code first, then by display name. Codes
// carrying an exchange suffix like "600519.SH" match on the bare code.
func findQuote(quotes []types.Quote, symbolOrName string) (types.Quote, bool) {
	code := bareCode(symbolOrName)

	for _, quote := range quotes {
		if quote.Code == code {
			return quote, true
		}
	}

	for _, quote := range quotes {
		if quote.Name == symbolOrName {
			return quote, true
		}
	}

	return types.Quote{}, false
}

func selectQuotes(quotes []types.Quote, symbols []string) map[string]types.Quote {
	result := make(map[string]types.Quote, len(symbols))

	for _, symbol := range symbols {
		if quote, ok := findQuote(quotes, symbol); ok {
			result[symbol] = quote
		}
	}

	return result
}

// bareCode strips an exchange suffix from an instrument code.
func bareCode(symbol string) string {
	code, _, _ := strings.Cut(symbol, ".")

	return code
}
