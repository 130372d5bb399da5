package trends

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/llm"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

func TestExtractor_SplitsIntoChunks(t *testing.T) {
	mock := llm.NewMockClient()
	var prompts []string
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
		prompts = append(prompts, prompt)
		return fmt.Sprintf("Trend %d: something", len(prompts)), nil
	}

	extractor := NewExtractor(mock, 10, zap.NewNop())

	out, err := extractor.Extract(context.Background(), strings.Repeat("x", 25))
	require.NoError(t, err)

	assert.Equal(t, 3, mock.CompleteCalls)
	assert.Equal(t, "Trend 1: something\nTrend 2: something\nTrend 3: something", out)
}

func TestExtractor_SkipsFailedChunks(t *testing.T) {
	mock := llm.NewMockClient()
	call := 0
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
		call++
		if call == 2 {
			return "", fmt.Errorf("rate limited")
		}
		return fmt.Sprintf("Trend %d: ok", call), nil
	}

	extractor := NewExtractor(mock, 5, zap.NewNop())

	out, err := extractor.Extract(context.Background(), strings.Repeat("y", 15))
	require.NoError(t, err)
	assert.Equal(t, "Trend 1: ok\nTrend 3: ok", out)
}

func TestExtractor_AllChunksFail(t *testing.T) {
	mock := llm.NewMockClient()
	mock.CompleteFunc = func(ctx context.Context, prompt, systemMessage string, maxTokens int) (string, error) {
		return "", fmt.Errorf("unavailable")
	}

	extractor := NewExtractor(mock, 5, zap.NewNop())

	_, err := extractor.Extract(context.Background(), "some input text")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrDataUnavailable)
}

func TestSplitChunks_RuneBoundaries(t *testing.T) {
	text := strings.Repeat("é", 7)

	chunks := splitChunks(text, 3)

	require.Len(t, chunks, 3)
	for i, chunk := range chunks {
		assert.True(t, utf8.ValidString(chunk), "chunk %d", i)
	}
	assert.Equal(t, text, strings.Join(chunks, ""))
}

func TestParseStatements(t *testing.T) {
	statements := ParseStatements("One: first\n\n  Two: second  \n\nThree\n")
	assert.Equal(t, []string{"One: first", "Two: second", "Three"}, statements)
}

func TestParseStatements_Empty(t *testing.T) {
	assert.Nil(t, ParseStatements(""))
	assert.Nil(t, ParseStatements("\n \n"))
}

func TestParseTrend(t *testing.T) {
	trend := ParseTrend("Quiet Luxury: muted palettes and tailored cuts")
	assert.Equal(t, "Quiet Luxury", trend.Name)
	assert.Equal(t, "muted palettes and tailored cuts", trend.Description)
}

func TestParseTrend_NoColon(t *testing.T) {
	trend := ParseTrend("Ballet flats everywhere")
	assert.Equal(t, "Ballet flats everywhere", trend.Name)
	assert.Empty(t, trend.Description)
}

func TestParseTrend_TruncatesLongNames(t *testing.T) {
	longName := strings.Repeat("a", 300)
	trend := ParseTrend(longName + ": desc")

	assert.Len(t, trend.Name, models.MaxTrendNameLength)
	assert.True(t, strings.HasSuffix(trend.Name, "..."))
	assert.Equal(t, "desc", trend.Description)
}
