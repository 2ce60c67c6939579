package ingredients

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"plan-my-meal/internal/llm"
	"plan-my-meal/internal/planner"
	"plan-my-meal/internal/shared"
)

//go:embed ingredients_prompt.md
var ingredientsPrompt string

// Generator turns a weekly plan into a consolidated ingredient list by
// prompting the text model and validating its JSON answer.
type Generator struct {
	textGen llm.TextGenerator
}

// NewGenerator creates a Generator backed by the given text model.
func NewGenerator(textGen llm.TextGenerator) *Generator {
	return &Generator{textGen: textGen}
}

// Generate builds the prompt for the plan's occupied slots, runs one
// generation round trip and parses the answer. A transport or API failure
// is returned as an error; an answer with no usable JSON yields an empty
// slice, which callers must treat as "generation failed, try again".
func (g *Generator) Generate(ctx context.Context, plan *planner.WeeklyPlan) ([]Ingredient, shared.CallMeta, error) {
	start := time.Now()
	prompt, err := buildPrompt(plan)
	if err != nil {
		return nil, shared.CallMeta{}, err
	}

	resp, err := g.textGen.GenerateContent(ctx, prompt)
	meta := shared.CallMeta{
		Operation: "ingredients",
		Usage:     resp.Usage,
		Latency:   time.Since(start),
	}
	if err != nil {
		return nil, meta, fmt.Errorf("failed to generate ingredients: %w", err)
	}

	return Parse(resp.Content, time.Now()), meta, nil
}

type promptDay struct {
	Day   planner.DayOfWeek
	Date  string
	Meals []*planner.Meal
}

func buildPrompt(plan *planner.WeeklyPlan) (string, error) {
	tmpl, err := template.New("ingredients").Parse(ingredientsPrompt)
	if err != nil {
		return "", err
	}

	var days []promptDay
	for i := range plan.Days {
		day := promptDay{Day: plan.Days[i].Day, Date: plan.Days[i].Date}
		for _, t := range planner.MealTypes {
			if meal := plan.Days[i].Meals.Get(t); meal != nil {
				day.Meals = append(day.Meals, meal)
			}
		}
		days = append(days, day)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Days []promptDay }{days}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

type rawIngredient struct {
	Name     string `json:"name"`
	Quantity string `json:"quantity"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

// Parse extracts the first JSON object from the model's free-text answer
// and normalizes its ingredients array into domain values. The model may
// wrap the JSON in prose or code fences; everything outside the outermost
// braces is ignored. Any shape violation yields an empty slice, never an
// error.
func Parse(text string, now time.Time) []Ingredient {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var parsed struct {
		Ingredients []rawIngredient `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(text[start:end+1]), &parsed); err != nil {
		return nil
	}
	if parsed.Ingredients == nil {
		return nil
	}

	items := make([]Ingredient, 0, len(parsed.Ingredients))
	for i, raw := range parsed.Ingredients {
		items = append(items, normalize(raw, now, i))
	}
	return items
}

// normalize fills the documented defaults and assigns a batch-unique id
// from the generation timestamp and the item's position.
func normalize(raw rawIngredient, now time.Time, index int) Ingredient {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		name = "Unknown"
	}
	quantity := strings.TrimSpace(raw.Quantity)
	if quantity == "" {
		quantity = "1"
	}
	unit := strings.TrimSpace(raw.Unit)
	if unit == "" {
		unit = "pcs"
	}

	return Ingredient{
		ID:       fmt.Sprintf("ing-%d-%d", now.UnixMilli(), index),
		Name:     name,
		Quantity: quantity,
		Unit:     unit,
		Category: ParseCategory(raw.Category),
		Checked:  false,
	}
}

// NewList wraps freshly generated ingredients into a persistable list for
// the given plan.
func NewList(mealPlanID string, items []Ingredient) *IngredientList {
	return &IngredientList{
		ID:          fmt.Sprintf("ing-list-%d", time.Now().UnixMilli()),
		MealPlanID:  mealPlanID,
		Ingredients: items,
		GeneratedAt: time.Now().UTC(),
	}
}
