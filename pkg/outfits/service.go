package outfits

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
	"github.com/lazydrobe/lazydrobe-engine/pkg/repositories"
)

// WeatherProvider fetches the current weather for a location. A nil record
// with a nil error is treated as data unavailable.
type WeatherProvider interface {
	Current(ctx context.Context, location string) (*models.WeatherRecord, error)
}

// CatalogQuerier searches an external product catalog for items matching
// the given clothing-type labels.
type CatalogQuerier interface {
	Query(ctx context.Context, clothingTypes []string, limitPerType int) ([]models.CatalogProduct, error)
}

// SimilarProductFetcher looks up links to products similar to the named
// one. Best effort: implementations return an empty slice on failure.
type SimilarProductFetcher interface {
	FetchSimilar(ctx context.Context, productName string, limit int) ([]string, error)
}

// ServiceConfig carries the tunables for one suggestion run.
type ServiceConfig struct {
	MaxOutfits       int
	ItemsPerType     int
	ColdThresholdF   float64
	SimilarLinkLimit int
}

// Service produces and persists outfit suggestions from weather, trends,
// and an external catalog.
type Service struct {
	weather        WeatherProvider
	trendRepo      repositories.TrendRepository
	catalog        CatalogQuerier
	similar        SimilarProductFetcher
	genderInferrer GenderInferrer
	catInferrer    CategoryInferrer
	combiner       *Combiner
	suggestionRepo repositories.SuggestionRepository
	cfg            ServiceConfig
	logger         *zap.Logger
}

func NewService(
	weather WeatherProvider,
	trendRepo repositories.TrendRepository,
	catalog CatalogQuerier,
	similar SimilarProductFetcher,
	genderInferrer GenderInferrer,
	catInferrer CategoryInferrer,
	combiner *Combiner,
	suggestionRepo repositories.SuggestionRepository,
	cfg ServiceConfig,
	logger *zap.Logger,
) *Service {
	if cfg.MaxOutfits <= 0 {
		cfg.MaxOutfits = 5
	}
	if cfg.ItemsPerType <= 0 {
		cfg.ItemsPerType = 10
	}
	if cfg.SimilarLinkLimit <= 0 {
		cfg.SimilarLinkLimit = 3
	}
	return &Service{
		weather:        weather,
		trendRepo:      trendRepo,
		catalog:        catalog,
		similar:        similar,
		genderInferrer: genderInferrer,
		catInferrer:    catInferrer,
		combiner:       combiner,
		suggestionRepo: suggestionRepo,
		cfg:            cfg,
		logger:         logger.Named("outfits"),
	}
}

// Suggest builds outfit suggestions for one user at one location and
// persists them. genders restricts the catalog to products matching any
// of the given labels (unisex products always pass); an empty list means
// no gender filtering.
func (s *Service) Suggest(ctx context.Context, userID int64, location string, genders []models.Gender) (*models.OutfitSuggestion, error) {
	weather, err := s.weather.Current(ctx, location)
	if err != nil {
		return nil, fmt.Errorf("suggest outfits: fetching weather: %w", err)
	}
	if weather == nil {
		return nil, fmt.Errorf("suggest outfits: no weather data for %q: %w", location, apperrors.ErrDataUnavailable)
	}

	trends, err := s.trendRepo.GetRecent(ctx, maxTrendsConsidered)
	if err != nil {
		return nil, fmt.Errorf("suggest outfits: loading trends: %w", err)
	}
	if len(trends) == 0 {
		return nil, fmt.Errorf("suggest outfits: no trends available: %w", apperrors.ErrDataUnavailable)
	}

	types := ClothingTypes(weather, trends)
	s.logger.Info("selected clothing types",
		zap.Int64("user_id", userID),
		zap.String("location", location),
		zap.Float64("temp_max", weather.TempMax),
		zap.Strings("types", types))

	products, err := s.catalog.Query(ctx, types, s.cfg.ItemsPerType)
	if err != nil {
		return nil, fmt.Errorf("suggest outfits: querying catalog: %w", err)
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("suggest outfits: catalog returned no products: %w", apperrors.ErrDataUnavailable)
	}

	products = s.resolveProducts(ctx, products)
	products = filterByGender(products, genders)

	outfits, err := s.combiner.Combine(products, s.cfg.MaxOutfits, IncludeOuterwear(weather, s.cfg.ColdThresholdF))
	if err != nil {
		return nil, fmt.Errorf("suggest outfits: %w", err)
	}

	s.attachSimilarLinks(ctx, outfits)

	suggestion := &models.OutfitSuggestion{
		UserID:  userID,
		Outfits: outfits,
		Gender:  AggregateGender(componentGenders(outfits)),
	}
	if err := s.suggestionRepo.Create(ctx, suggestion); err != nil {
		return nil, fmt.Errorf("suggest outfits: persisting: %w", err)
	}

	s.logger.Info("outfit suggestion created",
		zap.Int64("user_id", userID),
		zap.Int64("suggestion_id", suggestion.ID),
		zap.Int("outfits", len(outfits)),
		zap.String("gender", string(suggestion.Gender)))
	return suggestion, nil
}

// resolveProducts fills in missing category labels and gender labels via
// the inference capabilities. Products whose category cannot be resolved
// are dropped.
func (s *Service) resolveProducts(ctx context.Context, products []models.CatalogProduct) []models.CatalogProduct {
	resolved := make([]models.CatalogProduct, 0, len(products))
	for _, p := range products {
		if p.CategoryLabel == "" {
			label, ok := s.catInferrer.InferCategory(ctx, p.Name)
			if !ok {
				s.logger.Debug("excluding uncategorizable product", zap.String("product", p.Name))
				continue
			}
			p.CategoryLabel = label
		}
		if p.Gender == "" {
			p.Gender = s.genderInferrer.InferGender(ctx, p.Name)
		}
		resolved = append(resolved, p)
	}
	return resolved
}

// filterByGender keeps products whose gender is in the allowed set.
// Unisex products always pass; an empty allowed set disables filtering.
func filterByGender(products []models.CatalogProduct, allowed []models.Gender) []models.CatalogProduct {
	if len(allowed) == 0 {
		return products
	}
	allowedSet := make(map[models.Gender]struct{}, len(allowed))
	for _, g := range allowed {
		allowedSet[g] = struct{}{}
	}

	filtered := make([]models.CatalogProduct, 0, len(products))
	for _, p := range products {
		if p.Gender == models.GenderUnisex {
			filtered = append(filtered, p)
			continue
		}
		if _, ok := allowedSet[p.Gender]; ok {
			filtered = append(filtered, p)
		}
	}
	return filtered
}

// attachSimilarLinks decorates every component with similar-product links.
// Lookups are best effort: a failed lookup leaves the component's links
// empty and the suggestion proceeds.
func (s *Service) attachSimilarLinks(ctx context.Context, outfits []models.Outfit) {
	for i := range outfits {
		for j := range outfits[i].Components {
			component := &outfits[i].Components[j]
			links, err := s.similar.FetchSimilar(ctx, component.ProductName, s.cfg.SimilarLinkLimit)
			if err != nil {
				s.logger.Warn("similar product lookup failed",
					zap.String("product", component.ProductName),
					zap.Error(err))
				continue
			}
			component.SimilarLinks = links
		}
	}
}

func componentGenders(outfits []models.Outfit) []models.Gender {
	var genders []models.Gender
	for _, outfit := range outfits {
		for _, component := range outfit.Components {
			genders = append(genders, component.Gender)
		}
	}
	return genders
}
