package trends

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/llm"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// DefaultChunkSize is the character length of one summarization chunk.
// Large enough to avoid excessive fragmentation of typical article text.
const DefaultChunkSize = 4000

const (
	extractSystemMessage = "You are a fashion trends analyst. Summarize the key fashion trends from the given text. " +
		"Respond with one trend per line in the form \"<name>: <description>\"."
	extractMaxTokens = 1500
)

// Extractor turns large text blobs into raw trend statements by splitting
// them into fixed-size chunks, summarizing each chunk through the
// completion capability, and joining the outputs.
type Extractor struct {
	completer llm.Completer
	chunkSize int
	logger    *zap.Logger
}

// NewExtractor creates an extractor. chunkSize <= 0 uses DefaultChunkSize.
func NewExtractor(completer llm.Completer, chunkSize int, logger *zap.Logger) *Extractor {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Extractor{
		completer: completer,
		chunkSize: chunkSize,
		logger:    logger.Named("extractor"),
	}
}

// Extract summarizes text chunk by chunk and concatenates the outputs with
// newlines. A failed chunk is logged and its contribution omitted; if no
// chunk succeeds the whole extraction fails.
func (e *Extractor) Extract(ctx context.Context, text string) (string, error) {
	chunks := splitChunks(text, e.chunkSize)

	var outputs []string
	for i, chunk := range chunks {
		out, err := e.completer.Complete(ctx,
			"Summarize key fashion trends from this text: "+chunk,
			extractSystemMessage, extractMaxTokens)
		if err != nil {
			e.logger.Warn("chunk summarization failed, skipping",
				zap.Int("chunk", i),
				zap.Int("chunks_total", len(chunks)),
				zap.Error(err))
			continue
		}
		outputs = append(outputs, out)
	}

	if len(outputs) == 0 {
		return "", fmt.Errorf("no trends extracted from %d chunks: %w",
			len(chunks), apperrors.ErrDataUnavailable)
	}

	return strings.Join(outputs, "\n"), nil
}

// splitChunks cuts text into fixed-size chunks, counting runes rather than
// bytes so multi-byte characters are never split across a boundary.
func splitChunks(text string, size int) []string {
	var chunks []string
	runes := []rune(text)
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, string(runes[start:end]))
	}
	return chunks
}

// ParseStatements splits extractor output into trimmed, non-empty lines.
func ParseStatements(text string) []string {
	var statements []string
	for _, line := range strings.Split(text, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			statements = append(statements, line)
		}
	}
	return statements
}

// ParseTrend converts one statement into a trend. Expected format is
// "<name>: <description>"; a statement without a colon becomes a trend
// with an empty description. Names are truncated to the column limit.
func ParseTrend(statement string) models.CanonicalTrend {
	name, description := statement, ""
	if idx := strings.Index(statement, ":"); idx >= 0 {
		name = strings.TrimSpace(statement[:idx])
		description = strings.TrimSpace(statement[idx+1:])
	}
	return models.CanonicalTrend{
		Name:        models.TruncateTrendName(name),
		Description: description,
	}
}
