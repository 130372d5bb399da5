package outfits

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

func newTestCombiner(seed int64) *Combiner {
	return NewCombiner(NewMapper(DefaultCategoryTable()), rand.New(rand.NewSource(seed)))
}

func product(id, name, category string) models.CatalogProduct {
	return models.CatalogProduct{
		ID:            id,
		Name:          name,
		CategoryLabel: category,
		Gender:        models.GenderUnisex,
	}
}

func slotsOf(outfit models.Outfit) []models.Slot {
	slots := make([]models.Slot, 0, len(outfit.Components))
	for _, c := range outfit.Components {
		slots = append(slots, c.Slot)
	}
	return slots
}

func TestCombiner_FailsWithoutShoes(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Basic Tee", "T-Shirt"),
		product("2", "Slim Jeans", "Jeans"),
		product("3", "Wool Coat", "Coat"),
	}

	_, err := newTestCombiner(1).Combine(products, 5, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientInventory)
}

func TestCombiner_FailsWithoutSetOrTopBottomPair(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Runners", "Sneakers"),
		product("2", "Basic Tee", "T-Shirt"), // top without a bottom
	}

	_, err := newTestCombiner(1).Combine(products, 5, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInsufficientInventory)
}

func TestCombiner_SetAndShoesOnly(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Summer Dress", "Dress"),
		product("2", "Strappy Sandals", "Sandals"),
	}

	outfits, err := newTestCombiner(1).Combine(products, 1, false)
	require.NoError(t, err)
	require.Len(t, outfits, 1)

	assert.ElementsMatch(t,
		[]models.Slot{models.SlotSet, models.SlotShoes},
		slotsOf(outfits[0]))
}

func TestCombiner_TopBottomShoes(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Basic Tee", "T-Shirt"),
		product("2", "Slim Jeans", "Jeans"),
		product("3", "Runners", "Sneakers"),
	}

	outfits, err := newTestCombiner(1).Combine(products, 1, false)
	require.NoError(t, err)
	require.Len(t, outfits, 1)

	assert.ElementsMatch(t,
		[]models.Slot{models.SlotTop, models.SlotBottom, models.SlotShoes},
		slotsOf(outfits[0]))
}

func TestCombiner_OuterwearOnlyWhenRequested(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Basic Tee", "T-Shirt"),
		product("2", "Slim Jeans", "Jeans"),
		product("3", "Runners", "Sneakers"),
		product("4", "Wool Coat", "Coat"),
	}

	withOuterwear, err := newTestCombiner(1).Combine(products, 1, true)
	require.NoError(t, err)
	assert.Contains(t, slotsOf(withOuterwear[0]), models.SlotOuterwear)

	without, err := newTestCombiner(1).Combine(products, 1, false)
	require.NoError(t, err)
	assert.NotContains(t, slotsOf(without[0]), models.SlotOuterwear)
}

func TestCombiner_AccessoriesWhenAvailable(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Summer Dress", "Dress"),
		product("2", "Strappy Sandals", "Sandals"),
		product("3", "Aviators", "Sunglasses"),
	}

	outfits, err := newTestCombiner(1).Combine(products, 1, false)
	require.NoError(t, err)
	assert.Contains(t, slotsOf(outfits[0]), models.SlotAccessories)
}

func TestCombiner_DiscardsUncategorizableProducts(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Summer Dress", "Dress"),
		product("2", "Strappy Sandals", "Sandals"),
		product("3", "Gaming Laptop", "Electronics"),
	}

	outfits, err := newTestCombiner(1).Combine(products, 1, false)
	require.NoError(t, err)

	for _, c := range outfits[0].Components {
		assert.NotEqual(t, "3", c.ProductID)
	}
}

func TestCombiner_OutfitCountBoundedByInventory(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Dress A", "Dress"),
		product("2", "Dress B", "Dress"),
		product("3", "Dress C", "Dress"),
		product("4", "Sandals", "Sandals"),
	}

	outfits, err := newTestCombiner(1).Combine(products, 5, false)
	require.NoError(t, err)
	assert.Len(t, outfits, 3)
}

func TestCombiner_RespectsMaxOutfits(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Dress A", "Dress"),
		product("2", "Dress B", "Dress"),
		product("3", "Dress C", "Dress"),
		product("4", "Sandals", "Sandals"),
	}

	outfits, err := newTestCombiner(1).Combine(products, 2, false)
	require.NoError(t, err)
	assert.Len(t, outfits, 2)
}

func TestCombiner_DeterministicWithSeededSource(t *testing.T) {
	products := []models.CatalogProduct{
		product("1", "Tee A", "T-Shirt"),
		product("2", "Tee B", "T-Shirt"),
		product("3", "Jeans A", "Jeans"),
		product("4", "Jeans B", "Jeans"),
		product("5", "Runners", "Sneakers"),
		product("6", "Dress", "Dress"),
		product("7", "Coat", "Coat"),
		product("8", "Scarf", "Scarf"),
	}

	first, err := newTestCombiner(99).Combine(products, 3, true)
	require.NoError(t, err)
	second, err := newTestCombiner(99).Combine(products, 3, true)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestIncludeOuterwear(t *testing.T) {
	cold := &models.WeatherRecord{TempMax: 55, Condition: "clear"}
	assert.True(t, IncludeOuterwear(cold, 60))

	boundary := &models.WeatherRecord{TempMax: 60, Condition: "clear"}
	assert.True(t, IncludeOuterwear(boundary, 60))

	warmSnow := &models.WeatherRecord{TempMax: 70, Condition: "Light snow"}
	assert.True(t, IncludeOuterwear(warmSnow, 60))

	warm := &models.WeatherRecord{TempMax: 70, Condition: "clear"}
	assert.False(t, IncludeOuterwear(warm, 60))
}
