package nutrition

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var quantityPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)(.*)$`)

// Scale multiplies the leading amount of quantity by multiplier and prints it
// with one decimal, keeping the unit text verbatim. A quantity without a
// leading number is returned unchanged.
func Scale(quantity string, multiplier float64) string {
	m := quantityPattern.FindStringSubmatch(quantity)
	if m == nil {
		return quantity
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return quantity
	}
	return strconv.FormatFloat(amount*multiplier, 'f', 1, 64) + m[2]
}

// ScaleNutrient scales a per-serving value and rounds to a whole number.
func ScaleNutrient(value float64, servings int) int {
	return int(math.Round(value * float64(servings)))
}

// Serving bounds of the recipe serving calculator.
const (
	MinServings = 1
	MaxServings = 12
)

// ClampServings keeps servings within [MinServings, MaxServings].
func ClampServings(servings int) int {
	if servings < MinServings {
		return MinServings
	}
	if servings > MaxServings {
		return MaxServings
	}
	return servings
}

// Ingredient is one "quantity name" line split in two.
type Ingredient struct {
	Quantity string `json:"quantity"`
	Name     string `json:"name"`
}

// ParseIngredient splits a line on its first space.
func ParseIngredient(line string) Ingredient {
	line = strings.TrimSpace(line)
	quantity, name, _ := strings.Cut(line, " ")
	return Ingredient{Quantity: quantity, Name: strings.TrimSpace(name)}
}

// FormatIngredient is the inverse of ParseIngredient.
func FormatIngredient(ing Ingredient) string {
	return strings.TrimSpace(ing.Quantity + " " + ing.Name)
}

// ParseIngredients decodes a serialized ingredient array. Malformed input
// yields no ingredients.
func ParseIngredients(serialized string) []Ingredient {
	var lines []string
	if err := json.Unmarshal([]byte(serialized), &lines); err != nil {
		return nil
	}
	out := make([]Ingredient, 0, len(lines))
	for _, l := range lines {
		if strings.TrimSpace(l) == "" {
			continue
		}
		out = append(out, ParseIngredient(l))
	}
	return out
}

// SplitAmount separates the numeric amount of a quantity from its unit text.
// ok is false when quantity has no leading number.
func SplitAmount(quantity string) (amount float64, unit string, ok bool) {
	m := quantityPattern.FindStringSubmatch(strings.TrimSpace(quantity))
	if m == nil {
		return 0, "", false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, "", false
	}
	return amount, strings.TrimSpace(m[2]), true
}
