package outfits

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/lazydrobe/lazydrobe-engine/pkg/apperrors"
	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// coldConditionKeywords force outerwear regardless of temperature.
var coldConditionKeywords = []string{"snow", "sleet", "frost", "ice", "blizzard"}

// Combiner assembles complete outfits from categorized catalog products.
// Randomized choices go through the injected source so tests can seed it.
type Combiner struct {
	mapper *Mapper
	rng    *rand.Rand
}

func NewCombiner(mapper *Mapper, rng *rand.Rand) *Combiner {
	return &Combiner{mapper: mapper, rng: rng}
}

// IncludeOuterwear decides whether outfits for this weather should carry
// an outerwear piece: the daily high is at or below the cold threshold, or
// the condition string names a cold condition.
func IncludeOuterwear(weather *models.WeatherRecord, coldThresholdF float64) bool {
	if weather.TempMax <= coldThresholdF {
		return true
	}
	condition := strings.ToLower(weather.Condition)
	for _, kw := range coldConditionKeywords {
		if strings.Contains(condition, kw) {
			return true
		}
	}
	return false
}

// Combine builds up to maxOutfits complete outfits. An outfit is complete
// when it has shoes and either a set piece or a top and a bottom. Products
// whose category label maps to no slot are discarded. Fails with an
// insufficient-inventory error when no complete outfit can be formed.
func (c *Combiner) Combine(products []models.CatalogProduct, maxOutfits int, includeOuterwear bool) ([]models.Outfit, error) {
	bySlot := make(map[models.Slot][]models.CatalogProduct)
	for _, p := range products {
		slot, ok := c.mapper.MapToSlot(p.CategoryLabel)
		if !ok {
			continue
		}
		bySlot[slot] = append(bySlot[slot], p)
	}

	if len(bySlot[models.SlotShoes]) == 0 {
		return nil, fmt.Errorf("no shoes available: %w", apperrors.ErrInsufficientInventory)
	}

	setMode := len(bySlot[models.SlotSet]) > 0
	topBottomMode := len(bySlot[models.SlotTop]) > 0 && len(bySlot[models.SlotBottom]) > 0
	if !setMode && !topBottomMode {
		return nil, fmt.Errorf("no set and no top+bottom pair available: %w", apperrors.ErrInsufficientInventory)
	}

	// Shuffle in fixed slot order so a seeded source reproduces the same
	// outfits run to run.
	for _, slot := range models.AllSlots {
		items := bySlot[slot]
		c.rng.Shuffle(len(items), func(i, j int) {
			items[i], items[j] = items[j], items[i]
		})
	}

	count := maxOutfits
	if usable := usableCount(bySlot, setMode, topBottomMode); usable < count {
		count = usable
	}

	outfits := make([]models.Outfit, 0, count)
	for i := 0; i < count; i++ {
		useSet := setMode
		if setMode && topBottomMode {
			useSet = c.rng.Intn(2) == 0
		}

		var outfit models.Outfit
		if useSet {
			outfit.Components = append(outfit.Components,
				componentFrom(models.SlotSet, pickNth(bySlot[models.SlotSet], i)))
		} else {
			outfit.Components = append(outfit.Components,
				componentFrom(models.SlotTop, pickNth(bySlot[models.SlotTop], i)),
				componentFrom(models.SlotBottom, pickNth(bySlot[models.SlotBottom], i)))
		}

		outfit.Components = append(outfit.Components,
			componentFrom(models.SlotShoes, pickNth(bySlot[models.SlotShoes], i)))

		if includeOuterwear {
			if outer := bySlot[models.SlotOuterwear]; len(outer) > 0 {
				outfit.Components = append(outfit.Components,
					componentFrom(models.SlotOuterwear, outer[c.rng.Intn(len(outer))]))
			}
		}

		if accessories := bySlot[models.SlotAccessories]; len(accessories) > 0 {
			outfit.Components = append(outfit.Components,
				componentFrom(models.SlotAccessories, accessories[c.rng.Intn(len(accessories))]))
		}

		outfits = append(outfits, outfit)
	}

	return outfits, nil
}

// usableCount is the size of the largest category an outfit can rotate
// through, so requesting more outfits than distinct items still varies
// the selection as much as the inventory allows.
func usableCount(bySlot map[models.Slot][]models.CatalogProduct, setMode, topBottomMode bool) int {
	max := len(bySlot[models.SlotShoes])
	consider := func(slot models.Slot) {
		if n := len(bySlot[slot]); n > max {
			max = n
		}
	}
	if setMode {
		consider(models.SlotSet)
	}
	if topBottomMode {
		consider(models.SlotTop)
		consider(models.SlotBottom)
	}
	return max
}

func pickNth(items []models.CatalogProduct, i int) models.CatalogProduct {
	return items[i%len(items)]
}

func componentFrom(slot models.Slot, p models.CatalogProduct) models.OutfitComponent {
	return models.OutfitComponent{
		Slot:        slot,
		ProductID:   p.ID,
		ProductName: p.Name,
		ImageURL:    p.ImageURL,
		Gender:      p.Gender,
	}
}
