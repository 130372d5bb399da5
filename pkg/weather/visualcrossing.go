package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
	"github.com/lazydrobe/lazydrobe-engine/pkg/retry"
)

// DefaultEndpoint is the Visual Crossing timeline API base URL.
const DefaultEndpoint = "https://weather.visualcrossing.com/VisualCrossingWebServices/rest/services/timeline"

// Config holds Visual Crossing client configuration.
type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

// VisualCrossingClient fetches daily weather records from the Visual
// Crossing timeline API.
type VisualCrossingClient struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	retryCfg   *retry.Config
	logger     *zap.Logger
}

// NewVisualCrossingClient creates a timeline API client.
func NewVisualCrossingClient(cfg Config, logger *zap.Logger) (*VisualCrossingClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("weather api key is required")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &VisualCrossingClient{
		endpoint:   endpoint,
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		retryCfg:   retry.DefaultConfig(),
		logger:     logger.Named("weather"),
	}, nil
}

type timelineResponse struct {
	Days []timelineDay `json:"days"`
}

type timelineDay struct {
	Datetime     string  `json:"datetime"`
	TempMax      float64 `json:"tempmax"`
	TempMin      float64 `json:"tempmin"`
	FeelsLikeMax float64 `json:"feelslikemax"`
	FeelsLikeMin float64 `json:"feelslikemin"`
	WindSpeed    float64 `json:"windspeed"`
	Humidity     float64 `json:"humidity"`
	Precip       float64 `json:"precip"`
	PrecipProb   float64 `json:"precipprob"`
	Conditions   string  `json:"conditions"`
}

// Current returns today's weather for a location. Returns a nil record
// when the API responds without any day entries.
func (c *VisualCrossingClient) Current(ctx context.Context, location string) (*models.WeatherRecord, error) {
	days, err := c.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if len(days) == 0 {
		return nil, nil
	}
	record := recordFromDay(days[0], location)
	return &record, nil
}

// Forecast returns up to limit daily records starting today.
func (c *VisualCrossingClient) Forecast(ctx context.Context, location string, limit int) ([]models.WeatherRecord, error) {
	days, err := c.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	if limit > 0 && len(days) > limit {
		days = days[:limit]
	}

	records := make([]models.WeatherRecord, 0, len(days))
	for _, day := range days {
		records = append(records, recordFromDay(day, location))
	}
	return records, nil
}

func (c *VisualCrossingClient) fetch(ctx context.Context, location string) ([]timelineDay, error) {
	requestURL := fmt.Sprintf("%s/%s?key=%s&unitGroup=us",
		c.endpoint, url.PathEscape(location), url.QueryEscape(c.apiKey))

	body, err := retry.DoWithResult(ctx, c.retryCfg, func() ([]byte, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("weather api returned status %d", resp.StatusCode)
		}
		return io.ReadAll(resp.Body)
	})
	if err != nil {
		return nil, fmt.Errorf("weather fetch for %q: %w", location, err)
	}

	var parsed timelineResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	c.logger.Debug("fetched weather",
		zap.String("location", location),
		zap.Int("days", len(parsed.Days)))
	return parsed.Days, nil
}

func recordFromDay(day timelineDay, location string) models.WeatherRecord {
	date, err := time.Parse("2006-01-02", day.Datetime)
	if err != nil {
		date = time.Time{}
	}
	condition := day.Conditions
	if condition == "" {
		condition = "Unknown"
	}
	return models.WeatherRecord{
		Date:              date,
		Location:          location,
		TempMax:           day.TempMax,
		TempMin:           day.TempMin,
		FeelsMax:          day.FeelsLikeMax,
		FeelsMin:          day.FeelsLikeMin,
		WindSpeed:         day.WindSpeed,
		Humidity:          day.Humidity,
		Precipitation:     day.Precip,
		PrecipProbability: day.PrecipProb,
		Condition:         condition,
	}
}
