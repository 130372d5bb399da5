package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
	"github.com/lazydrobe/lazydrobe-engine/pkg/retry"
)

// DefaultEndpoint is the eBay Finding API service URL.
const DefaultEndpoint = "https://svcs.ebay.com/services/search/FindingService/v1"

const findOperation = "findItemsByKeywords"

// Config holds eBay Finding API client configuration.
type Config struct {
	Endpoint string
	AppID    string
	Timeout  time.Duration
}

// EbayClient searches the eBay Finding API for catalog products. Search
// results carry eBay's suggested category as the product's category label;
// gender is never present in Finding API responses and is left empty for
// the caller to infer.
type EbayClient struct {
	endpoint   string
	appID      string
	httpClient *http.Client
	retryCfg   *retry.Config
	logger     *zap.Logger
}

// NewEbayClient creates a Finding API client.
func NewEbayClient(cfg Config, logger *zap.Logger) (*EbayClient, error) {
	if cfg.AppID == "" {
		return nil, fmt.Errorf("ebay app id is required")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &EbayClient{
		endpoint:   endpoint,
		appID:      cfg.AppID,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   retry.DefaultConfig(),
		logger:     logger.Named("ebay"),
	}, nil
}

// The Finding API wraps every JSON value in a single-element array.

type findResponse struct {
	FindItemsByKeywordsResponse []searchResponse `json:"findItemsByKeywordsResponse"`
}

type searchResponse struct {
	Ack          []string       `json:"ack"`
	ErrorMessage []errorMessage `json:"errorMessage"`
	SearchResult []searchResult `json:"searchResult"`
}

type errorMessage struct {
	Error []struct {
		Message []string `json:"message"`
	} `json:"error"`
}

type searchResult struct {
	Item []findItem `json:"item"`
}

type findItem struct {
	ItemID          []string          `json:"itemId"`
	Title           []string          `json:"title"`
	PrimaryCategory []primaryCategory `json:"primaryCategory"`
	SellingStatus   []sellingStatus   `json:"sellingStatus"`
	ViewItemURL     []string          `json:"viewItemURL"`
	GalleryURL      []string          `json:"galleryURL"`
}

type primaryCategory struct {
	CategoryName []string `json:"categoryName"`
}

type sellingStatus struct {
	CurrentPrice []currentPrice `json:"currentPrice"`
}

type currentPrice struct {
	Value    string `json:"__value__"`
	Currency string `json:"@currencyId"`
}

// Query searches the catalog for each clothing-type label and aggregates
// the results. A failed label is logged and skipped; the query fails only
// when every label fails.
func (c *EbayClient) Query(ctx context.Context, clothingTypes []string, limitPerType int) ([]models.CatalogProduct, error) {
	if limitPerType <= 0 {
		limitPerType = 10
	}

	var products []models.CatalogProduct
	failures := 0
	for _, label := range clothingTypes {
		items, err := c.search(ctx, label, limitPerType)
		if err != nil {
			c.logger.Warn("catalog search failed for clothing type",
				zap.String("type", label),
				zap.Error(err))
			failures++
			continue
		}
		products = append(products, items...)
	}

	if failures == len(clothingTypes) && len(clothingTypes) > 0 {
		return nil, fmt.Errorf("all %d catalog searches failed", len(clothingTypes))
	}
	return products, nil
}

// FetchSimilar returns links to products similar to the named one.
func (c *EbayClient) FetchSimilar(ctx context.Context, productName string, limit int) ([]string, error) {
	if limit <= 0 {
		limit = 3
	}
	items, err := c.search(ctx, productName, limit)
	if err != nil {
		return nil, err
	}

	links := make([]string, 0, len(items))
	for _, item := range items {
		if item.SourceURL != "" {
			links = append(links, item.SourceURL)
		}
	}
	return links, nil
}

func (c *EbayClient) search(ctx context.Context, keywords string, limit int) ([]models.CatalogProduct, error) {
	params := url.Values{}
	params.Set("keywords", keywords)
	params.Set("paginationInput.entriesPerPage", strconv.Itoa(limit))
	params.Set("paginationInput.pageNumber", "1")
	params.Set("itemFilter(0).name", "HideDuplicateItems")
	params.Set("itemFilter(0).value", "true")

	requestURL := c.endpoint + "?" + params.Encode()

	body, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}
		req.Header.Set("X-EBAY-SOA-SECURITY-APPNAME", c.appID)
		req.Header.Set("X-EBAY-SOA-OPERATION-NAME", findOperation)
		req.Header.Set("X-EBAY-SOA-SERVICE-VERSION", "1.0.0")
		req.Header.Set("X-EBAY-SOA-RESPONSE-DATA-FORMAT", "JSON")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("ebay returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("ebay search for %q: %w", keywords, err)
	}

	var parsed findResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode ebay response: %w", err)
	}
	if len(parsed.FindItemsByKeywordsResponse) == 0 {
		return nil, fmt.Errorf("ebay response missing search response")
	}

	search := parsed.FindItemsByKeywordsResponse[0]
	if first(search.Ack) != "Success" {
		return nil, fmt.Errorf("ebay api error: %s", apiErrorMessage(search))
	}
	if len(search.SearchResult) == 0 {
		return nil, nil
	}

	products := make([]models.CatalogProduct, 0, len(search.SearchResult[0].Item))
	for _, item := range search.SearchResult[0].Item {
		product := models.CatalogProduct{
			ID:            first(item.ItemID),
			Name:          first(item.Title),
			SourceURL:     first(item.ViewItemURL),
			ImageURL:      first(item.GalleryURL),
			CategoryLabel: keywords,
			Currency:      "USD",
		}
		if product.ID == "" || product.Name == "" || product.SourceURL == "" {
			c.logger.Debug("skipping ebay item with missing fields", zap.String("item_id", product.ID))
			continue
		}

		if len(item.PrimaryCategory) > 0 {
			if name := first(item.PrimaryCategory[0].CategoryName); name != "" {
				product.CategoryLabel = name
			}
		}
		if len(item.SellingStatus) > 0 && len(item.SellingStatus[0].CurrentPrice) > 0 {
			price := item.SellingStatus[0].CurrentPrice[0]
			if v, err := strconv.ParseFloat(price.Value, 64); err == nil {
				product.Price = v
			}
			if price.Currency != "" {
				product.Currency = price.Currency
			}
		}
		products = append(products, product)
	}
	return products, nil
}

func apiErrorMessage(search searchResponse) string {
	if len(search.ErrorMessage) > 0 && len(search.ErrorMessage[0].Error) > 0 {
		if msg := first(search.ErrorMessage[0].Error[0].Message); msg != "" {
			return msg
		}
	}
	return "unknown error"
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}
	return values[0]
}
