package classifier

import (
	"fmt"
	"strings"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

// Rule confidences.
const (
	ConfidenceKeyword   = 0.9
	ConfidenceHousehold = 0.8
	ConfidenceNoMatch   = 0.3
)

// Rule maps keyword substrings to a category.
type Rule struct {
	Category models.Category
	Keywords []string
}

// rules is evaluated in order and the first match wins. The order breaks
// ties between categories: snacks come before vegetables so "potato chips"
// is a snack, not a potato.
var rules = []Rule{
	{models.CategorySnacks, []string{
		"chips", "crisps", "cookie", "cracker", "popcorn", "pretzel", "candy",
		"chocolate", "biscuit", "granola bar", "peanut", "trail mix", "gummy",
	}},
	{models.CategoryFruits, []string{
		"apple", "banana", "orange", "grape", "strawberr", "blueberr", "raspberr",
		"berry", "mango", "lemon", "lime", "peach", "pear", "cherr", "melon",
		"kiwi", "plum", "avocado", "apricot", "papaya", "coconut",
	}},
	{models.CategoryVegetables, []string{
		"potato", "tomato", "carrot", "onion", "garlic", "lettuce", "spinach",
		"broccoli", "cabbage", "cucumber", "bell pepper", "chili pepper", "celery",
		"peas", "green bean", "kidney bean", "black bean", "lentil", "mushroom",
		"zucchini", "kale", "cauliflower", "eggplant", "beet", "radish",
		"asparagus", "sweet corn", "squash", "pumpkin",
	}},
	{models.CategoryDairy, []string{
		"milk", "cheese", "yogurt", "yoghurt", "butter", "cream", "egg", "kefir", "ghee",
	}},
	{models.CategoryMeat, []string{
		"chicken", "beef", "pork", "lamb", "turkey", "bacon", "sausage", "steak",
		"mince", "salami", "pepperoni", "fish", "salmon", "tuna", "shrimp", "prawn", "meat",
	}},
	{models.CategoryGrains, []string{
		"rice", "bread", "pasta", "spaghetti", "flour", "oat", "cereal", "noodle",
		"quinoa", "barley", "tortilla", "bagel", "couscous", "cornflakes", "muesli",
	}},
	{models.CategoryBeverages, []string{
		"water", "juice", "soda", "coffee", "green tea", "black tea", "herbal tea",
		"iced tea", "tea bag", "beer", "wine", "cola", "lemonade", "smoothie", "drink",
	}},
	{models.CategoryCondiments, []string{
		"ketchup", "mustard", "mayo", "sauce", "vinegar", "olive oil", "cooking oil",
		"salt", "honey", "jam", "syrup", "spice", "dressing", "relish", "salsa",
	}},
	{models.CategoryFrozen, []string{
		"frozen", "ice cube", "popsicle", "ice pop", "sorbet",
	}},
}

// householdKeywords recognize non-food household goods. They classify as
// "other" but with enough confidence that the AI step is not needed to say so.
var householdKeywords = []string{
	"soap", "detergent", "shampoo", "toilet paper", "paper towel", "tissue",
	"bleach", "sponge", "trash bag", "garbage bag", "foil", "cleaner",
	"toothpaste", "batter", "light bulb",
}

// Rules returns the ordered rule table.
func Rules() []Rule {
	out := make([]Rule, len(rules))
	copy(out, rules)
	return out
}

// ClassifyRules runs the keyword rules only. It is pure and deterministic.
func ClassifyRules(productName string) models.ClassificationResult {
	name := strings.ToLower(strings.TrimSpace(productName))
	if name == "" {
		return noMatch()
	}

	for _, r := range rules {
		if kw, ok := matchAny(name, r.Keywords); ok {
			return models.ClassificationResult{
				Category:   r.Category,
				Confidence: ConfidenceKeyword,
				Reasoning:  fmt.Sprintf("matched %s keyword %q", r.Category, kw),
			}
		}
	}

	if kw, ok := matchAny(name, householdKeywords); ok {
		return models.ClassificationResult{
			Category:   models.CategoryOther,
			Confidence: ConfidenceHousehold,
			Reasoning:  fmt.Sprintf("household item (matched %q)", kw),
		}
	}

	return noMatch()
}

func noMatch() models.ClassificationResult {
	return models.ClassificationResult{
		Category:   models.CategoryOther,
		Confidence: ConfidenceNoMatch,
		Reasoning:  "no match",
	}
}

func matchAny(name string, keywords []string) (string, bool) {
	for _, kw := range keywords {
		if strings.Contains(name, kw) {
			return kw, true
		}
	}
	return "", false
}
