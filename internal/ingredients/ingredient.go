package ingredients

import (
	"strings"
	"time"
)

// Category is one of the fixed ingredient category tags.
type Category string

const (
	CategoryVegetables Category = "vegetables"
	CategoryFruits     Category = "fruits"
	CategoryDairy      Category = "dairy"
	CategoryMeat       Category = "meat"
	CategorySeafood    Category = "seafood"
	CategoryGrains     Category = "grains"
	CategorySpices     Category = "spices"
	CategoryOils       Category = "oils"
	CategoryCondiments Category = "condiments"
	CategoryBakery     Category = "bakery"
	CategoryFrozen     Category = "frozen"
	CategoryBeverages  Category = "beverages"
	CategorySnacks     Category = "snacks"
	CategoryOther      Category = "other"
)

// Categories lists all known categories in canonical display order.
var Categories = []Category{
	CategoryVegetables,
	CategoryFruits,
	CategoryDairy,
	CategoryMeat,
	CategorySeafood,
	CategoryGrains,
	CategorySpices,
	CategoryOils,
	CategoryCondiments,
	CategoryBakery,
	CategoryFrozen,
	CategoryBeverages,
	CategorySnacks,
	CategoryOther,
}

// ParseCategory maps a free-form category string onto a known Category,
// falling back to "other" for anything unrecognized.
func ParseCategory(s string) Category {
	c := Category(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Categories {
		if c == known {
			return c
		}
	}
	return CategoryOther
}

// Ingredient is a single shopping list entry. Quantity and unit stay
// free-form strings so values like "2-3" or "to taste" survive untouched.
type Ingredient struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Quantity string   `json:"quantity"`
	Unit     string   `json:"unit"`
	Category Category `json:"category"`
	Checked  bool     `json:"checked"`
}

// IngredientList is the generated ingredient set for one weekly plan.
// Regeneration replaces it wholesale; checked flags do not survive.
type IngredientList struct {
	ID          string       `json:"id"`
	MealPlanID  string       `json:"mealPlanId"`
	Ingredients []Ingredient `json:"ingredients"`
	GeneratedAt time.Time    `json:"generatedAt"`
}
