package trends

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/llm"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
	"github.com/lazydrobe/lazydrobe-engine/pkg/repositories"
)

const (
	// embedWordLimit keeps embedding inputs under the provider's token
	// limit (roughly 4 characters per token at 8k tokens).
	embedWordLimit = 2000
	// summaryWordLimit caps the text handed to cluster summarization.
	summaryWordLimit = 1000

	summarizeSystemMessage = "Summarize the key fashion trends from the given text in 100 words or less."
	summarizeMaxTokens     = 150
)

// Service runs the trend-refresh pipeline: embed scraped documents,
// cluster them into topics, summarize each cluster, extract named trend
// statements, deduplicate, and persist the canonical trends.
type Service struct {
	embedder       llm.Embedder
	completer      llm.Completer
	clusterer      *Clusterer
	extractor      *Extractor
	repo           repositories.TrendRepository
	dedupThreshold float64
	logger         *zap.Logger
}

// NewService wires the trend pipeline. dedupThreshold <= 0 uses
// DefaultDedupThreshold.
func NewService(
	embedder llm.Embedder,
	completer llm.Completer,
	clusterer *Clusterer,
	extractor *Extractor,
	repo repositories.TrendRepository,
	dedupThreshold float64,
	logger *zap.Logger,
) *Service {
	if dedupThreshold <= 0 {
		dedupThreshold = DefaultDedupThreshold
	}
	return &Service{
		embedder:       embedder,
		completer:      completer,
		clusterer:      clusterer,
		extractor:      extractor,
		repo:           repo,
		dedupThreshold: dedupThreshold,
		logger:         logger.Named("trends"),
	}
}

// Refresh runs one trend-refresh pipeline over the given source documents
// and returns the newly persisted canonical trends. Documents whose
// embedding fails are excluded; exact (name, search_phrase) duplicates of
// existing rows are skipped, not erred. Persistence is a single
// transaction: on failure nothing is committed.
func (s *Service) Refresh(ctx context.Context, documents []string) ([]models.CanonicalTrend, error) {
	runID := uuid.New().String()
	logger := s.logger.With(zap.String("run_id", runID))

	docs := make([]string, 0, len(documents))
	for _, d := range documents {
		if strings.TrimSpace(d) != "" {
			docs = append(docs, d)
		}
	}
	logger.Info("starting trend refresh", zap.Int("documents", len(docs)))

	embeddings, kept := s.embedDocuments(ctx, docs, logger)
	if len(embeddings) == 0 {
		return nil, fmt.Errorf("refresh trends: no embeddings survived: %w", apperrors.ErrDataUnavailable)
	}

	var clusterTexts []string
	if len(embeddings) == 1 {
		// A single surviving document is its own topic.
		clusterTexts = []string{kept[0]}
	} else {
		assignments, k, err := s.clusterer.Cluster(embeddings)
		if err != nil {
			return nil, fmt.Errorf("refresh trends: clustering: %w", err)
		}
		clusterTexts = combineClusters(kept, assignments, k)
	}

	summaries := s.summarizeClusters(ctx, clusterTexts, logger)
	if len(summaries) == 0 {
		return nil, fmt.Errorf("refresh trends: no cluster summaries produced: %w", apperrors.ErrDataUnavailable)
	}

	extracted, err := s.extractor.Extract(ctx, strings.Join(summaries, " "))
	if err != nil {
		return nil, fmt.Errorf("refresh trends: %w", err)
	}

	statements := ParseStatements(extracted)
	if len(statements) == 0 {
		return nil, fmt.Errorf("refresh trends: no trend statements found: %w", apperrors.ErrDataUnavailable)
	}

	unique := Deduplicate(statements, s.dedupThreshold)
	logger.Info("deduplicated trend statements",
		zap.Int("raw", len(statements)),
		zap.Int("unique", len(unique)))

	trends := make([]models.CanonicalTrend, 0, len(unique))
	for _, statement := range unique {
		trends = append(trends, ParseTrend(statement))
	}

	inserted, err := s.repo.SaveNew(ctx, trends)
	if err != nil {
		return nil, fmt.Errorf("refresh trends: persisting: %w", err)
	}

	logger.Info("trend refresh complete",
		zap.Int("extracted", len(trends)),
		zap.Int("inserted", len(inserted)))
	return inserted, nil
}

// embedDocuments embeds each document, excluding (and logging) failures.
// Returns the surviving embeddings and their source documents, aligned.
func (s *Service) embedDocuments(ctx context.Context, docs []string, logger *zap.Logger) ([][]float64, []string) {
	embeddings := make([][]float64, 0, len(docs))
	kept := make([]string, 0, len(docs))
	for i, doc := range docs {
		vec, err := s.embedder.Embed(ctx, truncateWords(doc, embedWordLimit))
		if err != nil {
			logger.Warn("embedding failed, excluding document",
				zap.Int("document", i),
				zap.Error(err))
			continue
		}
		embeddings = append(embeddings, vec)
		kept = append(kept, doc)
	}
	return embeddings, kept
}

// summarizeClusters summarizes each cluster's combined text, skipping
// clusters whose summarization fails.
func (s *Service) summarizeClusters(ctx context.Context, clusterTexts []string, logger *zap.Logger) []string {
	summaries := make([]string, 0, len(clusterTexts))
	for i, text := range clusterTexts {
		summary, err := s.completer.Complete(ctx,
			truncateWords(text, summaryWordLimit),
			summarizeSystemMessage, summarizeMaxTokens)
		if err != nil {
			logger.Warn("cluster summarization failed, skipping",
				zap.Int("cluster", i),
				zap.Error(err))
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

// combineClusters joins the documents of each cluster into one text blob,
// ordered by cluster id.
func combineClusters(docs []string, assignments []int, k int) []string {
	grouped := make([][]string, k)
	for i, cluster := range assignments {
		grouped[cluster] = append(grouped[cluster], docs[i])
	}
	texts := make([]string, 0, k)
	for _, group := range grouped {
		if len(group) > 0 {
			texts = append(texts, strings.Join(group, " "))
		}
	}
	return texts
}

// truncateWords keeps at most limit whitespace-separated words.
func truncateWords(text string, limit int) string {
	words := strings.Fields(text)
	if len(words) <= limit {
		return text
	}
	return strings.Join(words[:limit], " ")
}
