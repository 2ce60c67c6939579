package shopping

import (
	"fmt"
	"strings"
	"time"

	"plan-my-meal/internal/ingredients"
)

// Platform is a shopping list export target.
type Platform string

const (
	PlatformZepto     Platform = "zepto"
	PlatformBlinkit   Platform = "blinkit"
	PlatformInstamart Platform = "instamart"
	PlatformGeneric   Platform = "generic"
)

// Platforms lists the supported export targets.
var Platforms = []Platform{PlatformZepto, PlatformBlinkit, PlatformInstamart, PlatformGeneric}

// ParsePlatform converts a string into a Platform.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Platforms {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown platform: %q", s)
}

// ShoppingListItem is a flattened ingredient projection inside an export.
type ShoppingListItem struct {
	IngredientID string `json:"ingredientId"`
	Name         string `json:"name"`
	Quantity     string `json:"quantity"`
	Category     string `json:"category"`
	Checked      bool   `json:"checked"`
}

// ShoppingList is a formatted export of an ingredient list for one
// platform. It is recomputed on demand; the stored copy is a convenience,
// not a source of truth.
type ShoppingList struct {
	ID               string             `json:"id"`
	IngredientListID string             `json:"ingredientListId"`
	Platform         Platform           `json:"platform"`
	Items            []ShoppingListItem `json:"items"`
	FormattedText    string             `json:"formattedText"`
	GeneratedAt      time.Time          `json:"generatedAt"`
}

// New builds a ShoppingList for the given platform from the current
// ingredient set. Checked items are included; checked state is
// informational only.
func New(ingredientListID string, platform Platform, items []ingredients.Ingredient) *ShoppingList {
	listItems := make([]ShoppingListItem, 0, len(items))
	for _, ing := range items {
		listItems = append(listItems, ShoppingListItem{
			IngredientID: ing.ID,
			Name:         ing.Name,
			Quantity:     fmt.Sprintf("%s %s", ing.Quantity, ing.Unit),
			Category:     string(ing.Category),
			Checked:      ing.Checked,
		})
	}

	return &ShoppingList{
		ID:               fmt.Sprintf("shop-%d", time.Now().UnixMilli()),
		IngredientListID: ingredientListID,
		Platform:         platform,
		Items:            listItems,
		FormattedText:    Format(items, platform),
		GeneratedAt:      time.Now().UTC(),
	}
}
