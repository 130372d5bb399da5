package trends

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/llm"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// fakeTrendRepo keeps trends in memory and skips duplicate
// (name, search phrase) pairs the way the database unique constraint does.
type fakeTrendRepo struct {
	existing map[string]bool
	saved    []models.CanonicalTrend
	saveErr  error
	nextID   int64
}

func newFakeTrendRepo() *fakeTrendRepo {
	return &fakeTrendRepo{existing: make(map[string]bool)}
}

func (f *fakeTrendRepo) SaveNew(ctx context.Context, trends []models.CanonicalTrend) ([]models.CanonicalTrend, error) {
	if f.saveErr != nil {
		return nil, f.saveErr
	}
	var inserted []models.CanonicalTrend
	for _, trend := range trends {
		key := trend.Name + "|" + trend.SearchPhrase
		if f.existing[key] {
			continue
		}
		f.existing[key] = true
		f.nextID++
		trend.ID = f.nextID
		f.saved = append(f.saved, trend)
		inserted = append(inserted, trend)
	}
	return inserted, nil
}

func (f *fakeTrendRepo) GetRecent(ctx context.Context, limit int) ([]models.CanonicalTrend, error) {
	if limit > len(f.saved) {
		limit = len(f.saved)
	}
	return f.saved[len(f.saved)-limit:], nil
}

func newTestService(mock *llm.MockClient, repo *fakeTrendRepo) *Service {
	logger := zap.NewNop()
	return NewService(
		mock,
		mock,
		NewClusterer(5, 42, logger),
		NewExtractor(mock, 0, logger),
		repo,
		0,
		logger,
	)
}

// stubCompleter answers summarization and extraction prompts by system
// message so one mock serves the whole pipeline.
func stubCompleter(extraction string) func(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
	return func(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
		if systemMessage == summarizeSystemMessage {
			return "summary of " + prompt[:min(20, len(prompt))], nil
		}
		return extraction, nil
	}
}

func TestService_Refresh(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		if len(input) > 20 {
			return []float64{1, 0}, nil
		}
		return []float64{0, 1}, nil
	}
	mock.CompleteFunc = stubCompleter("Leather Jackets: heavy hardware\nPastel Colors: soft spring palettes")

	repo := newFakeTrendRepo()
	service := newTestService(mock, repo)

	inserted, err := service.Refresh(context.Background(), []string{
		"a long article about leather outerwear trends",
		"pastel colors piece",
	})
	require.NoError(t, err)

	require.Len(t, inserted, 2)
	assert.Equal(t, "Leather Jackets", inserted[0].Name)
	assert.Equal(t, "heavy hardware", inserted[0].Description)
	assert.Equal(t, "Pastel Colors", inserted[1].Name)
	assert.NotZero(t, inserted[0].ID)
}

func TestService_RefreshIsIdempotent(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		return []float64{float64(len(input)), 1}, nil
	}
	mock.CompleteFunc = stubCompleter("Leather Jackets: heavy hardware\nPastel Colors: soft spring palettes")

	repo := newFakeTrendRepo()
	service := newTestService(mock, repo)

	docs := []string{"first source document text", "second source document"}

	first, err := service.Refresh(context.Background(), docs)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := service.Refresh(context.Background(), docs)
	require.NoError(t, err)
	assert.Empty(t, second)
	assert.Len(t, repo.saved, 2)
}

func TestService_RefreshMergesOverlappingTrends(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		return []float64{float64(len(input)), 1}, nil
	}
	mock.CompleteFunc = stubCompleter("Leather jackets are back\nLeather jacket trend returns\nSustainable fabrics rising")

	repo := newFakeTrendRepo()
	service := newTestService(mock, repo)

	inserted, err := service.Refresh(context.Background(), []string{"doc one text", "doc two other text"})
	require.NoError(t, err)

	assert.Len(t, inserted, 2)
}

func TestService_RefreshSkipsFailedEmbeddings(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		if input == "bad document" {
			return nil, fmt.Errorf("embedding backend down")
		}
		return []float64{float64(len(input)), 2}, nil
	}
	mock.CompleteFunc = stubCompleter("Denim Maxi Skirts: floor length denim")

	repo := newFakeTrendRepo()
	service := newTestService(mock, repo)

	inserted, err := service.Refresh(context.Background(), []string{"bad document", "good document about skirts", "another usable document"})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, "Denim Maxi Skirts", inserted[0].Name)
}

func TestService_RefreshFailsWhenNoEmbeddingsSurvive(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		return nil, fmt.Errorf("embedding backend down")
	}

	service := newTestService(mock, newFakeTrendRepo())

	_, err := service.Refresh(context.Background(), []string{"doc a", "doc b"})
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataUnavailable)
}

func TestService_RefreshIgnoresEmptyDocuments(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		return []float64{float64(len(input)), 3}, nil
	}
	mock.CompleteFunc = stubCompleter("Crochet Tops: handmade texture")

	repo := newFakeTrendRepo()
	service := newTestService(mock, repo)

	inserted, err := service.Refresh(context.Background(), []string{"", "  ", "real document one", "real document two longer"})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, 2, mock.EmbedCalls)
}

func TestService_SingleDocumentSkipsClustering(t *testing.T) {
	mock := llm.NewMockClient()
	mock.EmbedFunc = func(ctx context.Context, input string) ([]float64, error) {
		return []float64{1, 1}, nil
	}
	mock.CompleteFunc = stubCompleter("Wide Leg Trousers: relaxed tailoring")

	repo := newFakeTrendRepo()
	service := newTestService(mock, repo)

	inserted, err := service.Refresh(context.Background(), []string{"only one document"})
	require.NoError(t, err)
	require.Len(t, inserted, 1)
	assert.Equal(t, "Wide Leg Trousers", inserted[0].Name)
}
