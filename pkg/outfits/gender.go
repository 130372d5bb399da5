package outfits

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/lazydrobe/lazydrobe-engine/pkg/llm"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// AggregateGender reduces per-component gender labels to one outfit-level
// gender: all male yields Male, all female yields Female, anything mixed
// or unisex yields Unisex. An empty list is Unisex.
func AggregateGender(genders []models.Gender) models.Gender {
	if len(genders) == 0 {
		return models.GenderUnisex
	}
	first := genders[0]
	if first != models.GenderMale && first != models.GenderFemale {
		return models.GenderUnisex
	}
	for _, g := range genders[1:] {
		if g != first {
			return models.GenderUnisex
		}
	}
	return first
}

// GenderInferrer resolves a product's gender from its name when the
// catalog omits one. Implementations never fail; they fall back to Unisex.
type GenderInferrer interface {
	InferGender(ctx context.Context, productName string) models.Gender
}

// CategoryInferrer resolves a clothing category label from a product name
// when the catalog omits one. ok=false means the product is
// uncategorizable and should be excluded.
type CategoryInferrer interface {
	InferCategory(ctx context.Context, productName string) (string, bool)
}

const (
	genderSystemMessage = "You classify clothing products by target gender. " +
		"Respond with exactly one word: Male, Female, or Unisex."
	categorySystemMessage = "You classify clothing products into a category. " +
		"Respond with a short category label such as \"Jeans\", \"Sneakers\", or \"Jacket\", " +
		"or \"Unknown\" if the product is not clothing."
	inferMaxTokens = 10
)

// LLMInferrer answers gender and category questions about products via the
// completion capability, validating every response against the expected
// label set.
type LLMInferrer struct {
	completer llm.Completer
	logger    *zap.Logger
}

func NewLLMInferrer(completer llm.Completer, logger *zap.Logger) *LLMInferrer {
	return &LLMInferrer{completer: completer, logger: logger.Named("inferrer")}
}

var (
	_ GenderInferrer   = (*LLMInferrer)(nil)
	_ CategoryInferrer = (*LLMInferrer)(nil)
)

// InferGender asks the model for the product's target gender. Invalid or
// failed responses default to Unisex; this method never fails.
func (inf *LLMInferrer) InferGender(ctx context.Context, productName string) models.Gender {
	resp, err := inf.completer.Complete(ctx,
		"Product: "+productName, genderSystemMessage, inferMaxTokens)
	if err != nil {
		inf.logger.Warn("gender inference failed, defaulting to unisex",
			zap.String("product", productName),
			zap.Error(err))
		return models.GenderUnisex
	}
	gender, ok := models.ParseGender(resp)
	if !ok {
		inf.logger.Warn("gender inference returned unrecognized label",
			zap.String("product", productName),
			zap.String("response", resp))
		return models.GenderUnisex
	}
	return gender
}

// InferCategory asks the model for the product's clothing category.
// Failed or "Unknown" responses report ok=false.
func (inf *LLMInferrer) InferCategory(ctx context.Context, productName string) (string, bool) {
	resp, err := inf.completer.Complete(ctx,
		"Product: "+productName, categorySystemMessage, inferMaxTokens)
	if err != nil {
		inf.logger.Warn("category inference failed",
			zap.String("product", productName),
			zap.Error(err))
		return "", false
	}
	label := strings.TrimSpace(strings.Trim(strings.TrimSpace(resp), `"`))
	if label == "" || strings.EqualFold(label, "unknown") {
		return "", false
	}
	return label, true
}
