package shopping

import (
	"fmt"
	"strings"

	"plan-my-meal/internal/ingredients"
)

// platformStyle captures the rendering conventions of one export target.
type platformStyle struct {
	header   string
	category func(title string, count int) string
	line     func(ing ingredients.Ingredient) string
}

var styles = map[Platform]platformStyle{
	PlatformZepto: {
		header: "Zepto Cart",
		category: func(title string, _ int) string {
			return fmt.Sprintf("[%s]", title)
		},
		line: func(ing ingredients.Ingredient) string {
			return fmt.Sprintf("%s x %s %s", ing.Name, ing.Quantity, ing.Unit)
		},
	},
	PlatformBlinkit: {
		header: "Blinkit Order",
		category: func(title string, count int) string {
			return fmt.Sprintf("%s (%d)", title, count)
		},
		line: func(ing ingredients.Ingredient) string {
			return fmt.Sprintf("* %s - %s %s", ing.Name, ing.Quantity, ing.Unit)
		},
	},
	PlatformInstamart: {
		header: "Instamart Basket",
		category: func(title string, _ int) string {
			return fmt.Sprintf("-- %s --", title)
		},
		line: func(ing ingredients.Ingredient) string {
			return fmt.Sprintf("%s, %s %s", ing.Name, ing.Quantity, ing.Unit)
		},
	},
	PlatformGeneric: {
		header: "SHOPPING LIST",
		category: func(title string, _ int) string {
			return fmt.Sprintf("%s:", title)
		},
		line: func(ing ingredients.Ingredient) string {
			return fmt.Sprintf("- %s - %s %s", ing.Name, ing.Quantity, ing.Unit)
		},
	},
}

// Format renders the ingredients as plain text for the given platform,
// grouped by category in canonical order. The transform is pure: identical
// input always renders byte-identical output. Checked items are not
// filtered; that is the caller's decision.
func Format(items []ingredients.Ingredient, platform Platform) string {
	if len(items) == 0 {
		return ""
	}

	style, ok := styles[platform]
	if !ok {
		style = styles[PlatformGeneric]
	}

	grouped := make(map[ingredients.Category][]ingredients.Ingredient)
	for _, ing := range items {
		grouped[ing.Category] = append(grouped[ing.Category], ing)
	}

	var b strings.Builder
	b.WriteString(style.header)
	b.WriteString("\n")

	for _, cat := range ingredients.Categories {
		group := grouped[cat]
		if len(group) == 0 {
			continue
		}

		b.WriteString("\n")
		b.WriteString(style.category(categoryTitle(cat), len(group)))
		b.WriteString("\n")
		for _, ing := range group {
			b.WriteString(style.line(ing))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func categoryTitle(c ingredients.Category) string {
	s := string(c)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
