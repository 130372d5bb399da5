package outfits

import (
	"strings"

	"github.com/jinzhu/inflection"

	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// CategoryTable maps each outfit slot to the singular category labels that
// belong to it.
type CategoryTable map[models.Slot][]string

// DefaultCategoryTable returns the built-in slot vocabulary. Labels are
// stored in singular form; the mapper normalizes plurals on lookup.
func DefaultCategoryTable() CategoryTable {
	return CategoryTable{
		models.SlotTop: {
			"t-shirt", "tee", "tank top", "shirt", "blouse", "sweater",
			"hoodie", "sweatshirt", "polo", "linen shirt", "top",
			"long sleeve shirt", "turtleneck", "crop top",
		},
		models.SlotBottom: {
			// "jeans" is uncountable to the inflector, so both forms are
			// listed explicitly.
			"jean", "jeans", "pant", "trouser", "short", "skirt", "legging",
			"chino", "jogger", "sweatpant", "cargo pant", "bottom",
		},
		models.SlotShoes: {
			"shoe", "sneaker", "boot", "heavy boot", "snow boot",
			"rain boot", "sandal", "loafer", "heel", "flat", "oxford",
			"trainer",
		},
		models.SlotOuterwear: {
			"jacket", "coat", "windbreaker", "raincoat", "parka",
			"blazer", "cardigan", "trench coat", "puffer", "vest",
			"overcoat",
		},
		models.SlotSet: {
			"dress", "jumpsuit", "romper", "overall", "gown", "suit",
		},
		models.SlotAccessories: {
			"sunglass", "sun hat", "hat", "beanie", "scarf", "glove",
			"belt", "bag", "umbrella", "watch", "cap", "accessory",
		},
	}
}

// Mapper resolves free-form clothing category labels to outfit slots.
type Mapper struct {
	index map[string]models.Slot
}

// NewMapper builds a mapper over the given table. When two slots claim the
// same label the slot earlier in models.AllSlots wins, so lookups are
// deterministic regardless of map iteration order.
func NewMapper(table CategoryTable) *Mapper {
	index := make(map[string]models.Slot)
	for _, slot := range models.AllSlots {
		for _, label := range table[slot] {
			key := normalizeLabel(label)
			if _, exists := index[key]; !exists {
				index[key] = slot
			}
		}
	}
	return &Mapper{index: index}
}

// MapToSlot resolves a category label to its slot. Matching is
// case-insensitive and plural-insensitive ("Jeans" and "jean" both map to
// the bottom slot). Unknown labels report ok=false.
func (m *Mapper) MapToSlot(label string) (models.Slot, bool) {
	key := normalizeLabel(label)
	if slot, ok := m.index[key]; ok {
		return slot, true
	}
	if slot, ok := m.index[inflection.Singular(key)]; ok {
		return slot, true
	}
	return "", false
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
