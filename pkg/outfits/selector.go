package outfits

import (
	"sort"
	"strings"

	"github.com/lazydrobe/lazydrobe-engine/pkg/models"
)

// maxTrendsConsidered caps how many trends feed clothing-type selection.
const maxTrendsConsidered = 10

// temperature band boundaries in degrees fahrenheit. Bands are half-open:
// a band covers (low, high], so 60 exactly falls in the 35-60 band.
const (
	freezingMaxF = 35.0
	coldMaxF     = 60.0
	mildMaxF     = 75.0
)

// conditionTypes maps weather condition keywords to the clothing types
// they call for.
var conditionTypes = []struct {
	keywords []string
	types    []string
}{
	{[]string{"rain", "drizzle", "storm"}, []string{"Raincoat", "Rain Boots", "Umbrella"}},
	{[]string{"snow", "sleet"}, []string{"Heavy Boots", "Coat", "Gloves"}},
	{[]string{"windy"}, []string{"Windbreaker"}},
	{[]string{"humid"}, []string{"Linen Shirt", "Breathable Tee"}},
	{[]string{"fog"}, []string{"Reflective Jacket"}},
	{[]string{"sunny", "clear"}, []string{"Sunglasses", "Sun Hat"}},
}

// trendVocabulary is the set of clothing nouns recognized inside trend
// descriptions. Multi-word entries come first so "tank top" matches before
// "top" ever could.
var trendVocabulary = []string{
	"tank top", "heavy boots", "t-shirt", "jacket", "sweater", "dress",
	"jeans", "shorts", "boots", "sandals", "sneakers", "coat", "hoodie",
	"skirt", "cardigan", "blazer", "scarf",
}

// ClothingTypes derives the clothing-type labels an outfit should draw
// from, combining the day's weather with the current trends. Pure and
// deterministic: the same inputs always yield the same sorted output.
func ClothingTypes(weather *models.WeatherRecord, trends []models.CanonicalTrend) []string {
	seen := make(map[string]struct{})
	var types []string
	add := func(t string) {
		key := strings.ToLower(t)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		types = append(types, t)
	}

	for _, t := range bandTypes(weather.TempMax) {
		add(t)
	}

	condition := strings.ToLower(weather.Condition)
	for _, group := range conditionTypes {
		for _, kw := range group.keywords {
			if strings.Contains(condition, kw) {
				for _, t := range group.types {
					add(t)
				}
				break
			}
		}
	}

	considered := trends
	if len(considered) > maxTrendsConsidered {
		considered = considered[:maxTrendsConsidered]
	}
	for _, trend := range considered {
		text := strings.ToLower(trend.Description)
		for _, noun := range trendVocabulary {
			if strings.Contains(text, noun) {
				add(titleCase(noun))
			}
		}
	}

	sort.Strings(types)
	return types
}

// bandTypes returns the baseline clothing types for a daily high.
func bandTypes(tempMax float64) []string {
	switch {
	case tempMax <= freezingMaxF:
		return []string{"Coat", "Hoodie", "Heavy Boots"}
	case tempMax <= coldMaxF:
		return []string{"Sweater", "Jacket", "Boots"}
	case tempMax <= mildMaxF:
		return []string{"Jeans", "T-Shirt", "Sneakers"}
	default:
		return []string{"Shorts", "Tank Top", "Sandals"}
	}
}

// titleCase capitalizes each hyphen- or space-separated word.
func titleCase(s string) string {
	var b strings.Builder
	upper := true
	for _, r := range s {
		switch {
		case r == ' ' || r == '-':
			upper = true
			b.WriteRune(r)
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
