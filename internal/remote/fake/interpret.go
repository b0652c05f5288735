package fake

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/classifier"
	"github.com/Vipul2202/Ai-smarthome-app-sub000/internal/models"
)

// DefaultUnit is used when a command names no unit.
const DefaultUnit = "pieces"

var verbs = []struct {
	kind    models.IntentKind
	phrases []string
}{
	{models.IntentQueryItem, []string{"how much", "how many", "do we have", "do i have", "is there", "are there", "check"}},
	{models.IntentRemoveItem, []string{"remove", "delete", "throw away", "throw out", "used up", "finished", "ate", "drank"}},
	{models.IntentUpdateItem, []string{"update", "change", "set"}},
	{models.IntentAddItem, []string{"add", "buy", "bought", "put", "store", "got"}},
}

var numberWords = map[string]int64{
	"a": 1, "an": 1, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10, "eleven": 11,
	"twelve": 12, "dozen": 12,
}

var units = map[string]string{
	"l": "liters", "liter": "liters", "liters": "liters", "litre": "liters", "litres": "liters",
	"ml": "ml", "milliliter": "ml", "milliliters": "ml",
	"kg": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg", "kilograms": "kg",
	"g": "g", "gram": "g", "grams": "g",
	"lb": "lb", "lbs": "lb", "pound": "lb", "pounds": "lb",
	"piece": "pieces", "pieces": "pieces", "pcs": "pieces",
	"bottle": "bottles", "bottles": "bottles",
	"can": "cans", "cans": "cans",
	"pack": "packs", "packs": "packs", "packet": "packs", "packets": "packs",
	"box": "boxes", "boxes": "boxes",
	"bag": "bags", "bags": "bags",
	"carton": "cartons", "cartons": "cartons",
	"loaf": "loaves", "loaves": "loaves",
}

var (
	locationPattern = regexp.MustCompile(`\s+(?:in|into|to|on)\s+(?:the\s+|my\s+|our\s+)?([a-z][a-z ]*)$`)
	trailingPunct   = regexp.MustCompile(`[.!?,]+$`)
	fillerPrefix    = regexp.MustCompile(`^(?:please\s+|can you\s+|could you\s+|i\s+|we\s+)+`)
	querySuffix     = regexp.MustCompile(`\s+(?:do we have|do i have|is left|are left|left|is there|are there)(?:\s+left)?$`)
)

// Interpret is the built-in transcript parser. It understands simple
// commands such as "add 2 liters of milk to the fridge".
func Interpret(transcript string) (*models.Intent, error) {
	text := strings.ToLower(strings.TrimSpace(transcript))
	text = trailingPunct.ReplaceAllString(text, "")
	text = fillerPrefix.ReplaceAllString(text, "")
	if text == "" {
		return nil, errors.New("empty transcript")
	}

	kind, rest, recognized := splitVerb(text)
	if kind == models.IntentQueryItem {
		rest = querySuffix.ReplaceAllString(rest, "")
	}

	var location string
	if m := locationPattern.FindStringSubmatchIndex(rest); m != nil {
		location = strings.TrimSpace(rest[m[2]:m[3]])
		rest = rest[:m[0]]
	}

	quantity, unit, name := splitQuantity(strings.Fields(rest))
	if name == "" {
		return nil, errors.New("no item named in transcript")
	}

	confidence := 0.9
	if !recognized {
		confidence = 0.5
	}

	return &models.Intent{
		Intent: kind,
		Item: models.IntentItem{
			RawName:        name,
			NormalizedName: normalizeName(name),
			Category:       classifier.ClassifyRules(name).Category,
			Quantity:       quantity,
			Unit:           unit,
			Location:       location,
		},
		Confidence: confidence,
		Transcript: strings.TrimSpace(transcript),
	}, nil
}

func splitVerb(text string) (models.IntentKind, string, bool) {
	for _, v := range verbs {
		for _, p := range v.phrases {
			if text == p {
				return v.kind, "", true
			}
			if strings.HasPrefix(text, p+" ") {
				return v.kind, strings.TrimSpace(text[len(p):]), true
			}
		}
	}
	return models.IntentAddItem, text, false
}

func splitQuantity(words []string) (decimal.Decimal, string, string) {
	quantity := decimal.NewFromInt(1)
	unit := DefaultUnit

	for len(words) > 0 && (words[0] == "some" || words[0] == "of" || words[0] == "the") {
		words = words[1:]
	}
	if len(words) == 0 {
		return quantity, unit, ""
	}

	if n, err := decimal.NewFromString(words[0]); err == nil {
		quantity = n
		words = words[1:]
	} else if n, ok := numberWords[words[0]]; ok {
		quantity = decimal.NewFromInt(n)
		words = words[1:]
	} else if words[0] == "half" {
		quantity = decimal.NewFromFloat(0.5)
		words = words[1:]
		if len(words) > 0 && (words[0] == "a" || words[0] == "an") {
			words = words[1:]
		}
	}

	if len(words) > 1 && words[0] == "dozen" {
		quantity = quantity.Mul(decimal.NewFromInt(12))
		words = words[1:]
	}

	if len(words) > 1 {
		if u, ok := units[words[0]]; ok {
			unit = u
			words = words[1:]
		}
	}
	if len(words) > 0 && words[0] == "of" {
		words = words[1:]
	}
	return quantity, unit, strings.Join(words, " ")
}

// normalizeName trims a plural "s" from single-word names ("apples" -> "apple").
func normalizeName(name string) string {
	if strings.Contains(name, " ") || len(name) < 4 {
		return name
	}
	switch {
	case strings.HasSuffix(name, "ies"):
		return strings.TrimSuffix(name, "ies") + "y"
	case strings.HasSuffix(name, "oes"):
		return strings.TrimSuffix(name, "es")
	case strings.HasSuffix(name, "ss"), strings.HasSuffix(name, "us"):
		return name
	case strings.HasSuffix(name, "s"):
		return strings.TrimSuffix(name, "s")
	}
	return name
}
