package nutrition

import (
	"strings"
	"time"
)

// ShoppingList is a generated list as exchanged over the wire.
type ShoppingList struct {
	ID        string             `json:"id"`
	UserID    string             `json:"userId"`
	Items     []ShoppingListItem `json:"items"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ShoppingListItem is one ingredient line and its purchase state.
type ShoppingListItem struct {
	ID             string  `json:"id"`
	IngredientName string  `json:"ingredientName"`
	Quantity       float64 `json:"quantity"`
	Unit           string  `json:"unit"`
	IsChecked      bool    `json:"isChecked"`
}

// Progress counts checked items out of the total.
type Progress struct {
	Checked int `json:"checked"`
	Total   int `json:"total"`
}

// Percent returns the checked share in [0, 100]. An empty list is 0%.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Checked) / float64(p.Total) * 100
}

// ComputeProgress derives progress from the current item states.
func ComputeProgress(items []ShoppingListItem) Progress {
	p := Progress{Total: len(items)}
	for _, it := range items {
		if it.IsChecked {
			p.Checked++
		}
	}
	return p
}

// AggregatedItem is an ingredient total before it is persisted.
type AggregatedItem struct {
	IngredientName string
	Quantity       float64
	Unit           string
}

// AggregateIngredients merges ingredient lines by name and unit, summing the
// numeric amounts. Lines without a leading number count as one of their name
// with an empty unit. Output keeps first-seen order.
func AggregateIngredients(lines []string) []AggregatedItem {
	type key struct{ name, unit string }
	index := make(map[key]int)
	var out []AggregatedItem
	for _, line := range lines {
		ing := ParseIngredient(line)
		amount, unit, ok := SplitAmount(ing.Quantity)
		name := ing.Name
		if !ok {
			amount, unit, name = 1, "", strings.TrimSpace(line)
		}
		if name == "" {
			continue
		}
		k := key{strings.ToLower(name), strings.ToLower(unit)}
		if i, seen := index[k]; seen {
			out[i].Quantity += amount
			continue
		}
		index[k] = len(out)
		out = append(out, AggregatedItem{IngredientName: name, Quantity: amount, Unit: unit})
	}
	return out
}
