package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/catalog"
	"github.com/lazydrobe/lazydrobe-engine/pkg/config"
	"github.com/lazydrobe/lazydrobe-engine/pkg/database"
	"github.com/lazydrobe/lazydrobe-engine/pkg/llm"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
	"github.com/lazydrobe/lazydrobe-engine/pkg/outfits"
	"github.com/lazydrobe/lazydrobe-engine/pkg/repositories"
	"github.com/lazydrobe/lazydrobe-engine/pkg/trends"
	"github.com/lazydrobe/lazydrobe-engine/pkg/weather"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:          "lazydrobe-engine",
		Short:        "Trend and outfit recommendation pipeline",
		Version:      Version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "path to config file")

	root.AddCommand(
		newMigrateCmd(&configPath),
		newRefreshTrendsCmd(&configPath),
		newSuggestOutfitsCmd(&configPath),
	)
	return root
}

func newMigrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			return database.RunMigrations(cfg.Database.URL(), cfg.MigrationsPath, logger)
		},
	}
}

func newRefreshTrendsCmd(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh-trends <document>...",
		Short: "Extract and persist fashion trends from source documents",
		Long: "Reads each argument as a text file containing one scraped source document, " +
			"clusters and summarizes them, and persists the extracted trends.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			documents := make([]string, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading document %s: %w", path, err)
				}
				documents = append(documents, string(data))
			}

			ctx := cmd.Context()
			db, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			embedder, err := llm.NewEmbedder(llmConfig(cfg), logger)
			if err != nil {
				return err
			}
			completer, err := llm.NewCompleter(llmConfig(cfg), logger)
			if err != nil {
				return err
			}

			service := trends.NewService(
				embedder,
				completer,
				trends.NewClusterer(cfg.Pipeline.MaxClusters, cfg.Pipeline.ClusterSeed, logger),
				trends.NewExtractor(completer, cfg.Pipeline.ChunkSize, logger),
				repositories.NewTrendRepository(db),
				cfg.Pipeline.DedupThreshold,
				logger,
			)

			inserted, err := service.Refresh(ctx, documents)
			if err != nil {
				return err
			}

			for _, trend := range inserted {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", trend.Name, trend.Description)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "inserted %d new trends\n", len(inserted))
			return nil
		},
	}
	return cmd
}

func newSuggestOutfitsCmd(configPath *string) *cobra.Command {
	var (
		userID   int64
		location string
		genders  []string
	)

	cmd := &cobra.Command{
		Use:   "suggest-outfits",
		Short: "Generate and persist outfit suggestions for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(*configPath)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			allowed := make([]models.Gender, 0, len(genders))
			for _, g := range genders {
				gender, ok := models.ParseGender(g)
				if !ok {
					return fmt.Errorf("unrecognized gender %q (want male, female, or unisex)", g)
				}
				allowed = append(allowed, gender)
			}

			ctx := cmd.Context()
			db, err := connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer db.Close()

			completer, err := llm.NewCompleter(llmConfig(cfg), logger)
			if err != nil {
				return err
			}
			ebayClient, err := catalog.NewEbayClient(catalog.Config{
				Endpoint: cfg.Catalog.Endpoint,
				AppID:    cfg.Catalog.AppID,
			}, logger)
			if err != nil {
				return err
			}
			weatherClient, err := weather.NewVisualCrossingClient(weather.Config{
				Endpoint: cfg.Weather.Endpoint,
				APIKey:   cfg.Weather.APIKey,
			}, logger)
			if err != nil {
				return err
			}

			inferrer := outfits.NewLLMInferrer(completer, logger)
			combiner := outfits.NewCombiner(
				outfits.NewMapper(outfits.DefaultCategoryTable()),
				rand.New(rand.NewSource(time.Now().UnixNano())),
			)

			service := outfits.NewService(
				weatherClient,
				repositories.NewTrendRepository(db),
				ebayClient,
				ebayClient,
				inferrer,
				inferrer,
				combiner,
				repositories.NewSuggestionRepository(db),
				outfits.ServiceConfig{
					MaxOutfits:       cfg.Pipeline.MaxOutfits,
					ItemsPerType:     cfg.Catalog.EntriesPerType,
					ColdThresholdF:   cfg.Pipeline.ColdThresholdF,
					SimilarLinkLimit: cfg.Pipeline.SimilarLinkLimit,
				},
				logger,
			)

			suggestion, err := service.Suggest(ctx, userID, location, allowed)
			if err != nil {
				return err
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(suggestion)
		},
	}

	cmd.Flags().Int64Var(&userID, "user", 0, "user id to record the suggestion for")
	cmd.Flags().StringVar(&location, "location", "", "location for the weather lookup (e.g. \"New York,US\")")
	cmd.Flags().StringSliceVar(&genders, "gender", nil, "restrict products to these genders (repeatable; unisex always passes)")
	cobra.CheckErr(cmd.MarkFlagRequired("user"))
	cobra.CheckErr(cmd.MarkFlagRequired("location"))
	return cmd
}

func setup(configPath string) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(configPath, Version)
	if err != nil {
		return nil, nil, err
	}

	var logger *zap.Logger
	if cfg.Env == "local" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	logger.Info("configuration loaded",
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version),
		zap.String("database", fmt.Sprintf("%s@%s:%d/%s",
			cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database)))
	return cfg, logger, nil
}

func llmConfig(cfg *config.Config) *llm.Config {
	return &llm.Config{
		Provider:        cfg.LLM.Provider,
		Endpoint:        cfg.LLM.Endpoint,
		Model:           cfg.LLM.Model,
		EmbeddingModel:  cfg.LLM.EmbeddingModel,
		APIKey:          cfg.LLM.APIKey,
		AnthropicAPIKey: cfg.LLM.AnthropicAPIKey,
	}
}

func connect(ctx context.Context, cfg *config.Config) (*database.DB, error) {
	return database.NewConnection(ctx, &database.Config{
		URL:            cfg.Database.ConnectionString(),
		MaxConnections: cfg.Database.MaxConnections,
	})
}
