package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"plan-my-meal/internal/ingredients"
	"plan-my-meal/internal/llm"
	"plan-my-meal/internal/metrics"
	"plan-my-meal/internal/planner"
	"plan-my-meal/internal/recipe"
	"plan-my-meal/internal/shared"
	"plan-my-meal/internal/shopping"
	"plan-my-meal/internal/storage"
)

// ErrNoPlan is returned by operations that need a stored current plan.
var ErrNoPlan = fmt.Errorf("no meal plan found")

// ErrNoIngredients signals that the generation call produced no usable
// ingredients. Callers should prompt the user to try again.
var ErrNoIngredients = fmt.Errorf("failed to generate ingredients, please try again")

// App wires the store, the generators and the formatter into the
// operations the surfaces (CLI, HTTP) expose. Every operation is a
// load -> mutate -> save cycle over whole records; concurrent edit
// sessions are last-writer-wins.
type App struct {
	store        *storage.Store
	textGen      llm.TextGenerator
	generator    *ingredients.Generator
	importer     *recipe.Importer
	metricsStore *metrics.Store
}

// NewApp creates and initializes a new App instance.
func NewApp(store *storage.Store, textGen llm.TextGenerator, metricsStore *metrics.Store) *App {
	return &App{
		store:        store,
		textGen:      textGen,
		generator:    ingredients.NewGenerator(textGen),
		importer:     recipe.NewImporter(textGen),
		metricsStore: metricsStore,
	}
}

// CurrentPlan returns the stored current plan, creating and persisting a
// fresh one for this week when none exists. A stored plan from a past week
// stays current: the week is sticky and never rolls over automatically.
func (a *App) CurrentPlan(ctx context.Context) (*planner.WeeklyPlan, error) {
	plan, err := a.store.CurrentMealPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan != nil {
		return plan, nil
	}

	plan = planner.NewWeeklyPlan(time.Now())
	if err := a.store.SaveMealPlan(ctx, plan); err != nil {
		return nil, err
	}
	return plan, nil
}

// UpsertMeal assigns a meal to a slot of the current plan and persists the
// whole plan.
func (a *App) UpsertMeal(ctx context.Context, day planner.DayOfWeek, mealType planner.MealType, in planner.MealInput) (*planner.Meal, error) {
	plan, err := a.CurrentPlan(ctx)
	if err != nil {
		return nil, err
	}

	meal, err := plan.UpsertMeal(day, mealType, in)
	if err != nil {
		return nil, err
	}

	if err := a.store.SaveMealPlan(ctx, plan); err != nil {
		return nil, err
	}
	return meal, nil
}

// DeleteMeal clears the slot holding the meal id and persists the plan.
// An unknown id still persists and succeeds.
func (a *App) DeleteMeal(ctx context.Context, mealID string) error {
	plan, err := a.store.CurrentMealPlan(ctx)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNoPlan
	}

	plan.DeleteMeal(mealID)
	return a.store.SaveMealPlan(ctx, plan)
}

// GenerateIngredients runs the generation round trip for the current plan
// and persists the result keyed by the plan id. Regeneration replaces the
// prior list wholesale, resetting all checked flags. An answer with no
// usable ingredients is not persisted and surfaces as ErrNoIngredients.
func (a *App) GenerateIngredients(ctx context.Context) (*ingredients.IngredientList, error) {
	plan, err := a.store.CurrentMealPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}

	items, meta, err := a.generator.Generate(ctx, plan)
	a.recordUsage(ctx, meta)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoIngredients
	}

	list := ingredients.NewList(plan.ID, items)
	if err := a.store.SaveIngredientList(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

// Ingredients returns the stored ingredient list for the current plan, or
// nil when none was generated yet.
func (a *App) Ingredients(ctx context.Context) (*ingredients.IngredientList, error) {
	plan, err := a.store.CurrentMealPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}
	return a.store.IngredientList(ctx, plan.ID)
}

// ToggleIngredient flips the checked flag of one ingredient in the current
// plan's list and persists the list. Other ingredients are untouched.
func (a *App) ToggleIngredient(ctx context.Context, ingredientID string) error {
	plan, err := a.store.CurrentMealPlan(ctx)
	if err != nil {
		return err
	}
	if plan == nil {
		return ErrNoPlan
	}

	list, err := a.store.IngredientList(ctx, plan.ID)
	if err != nil {
		return err
	}
	if list == nil {
		return fmt.Errorf("no ingredient list found for plan %s", plan.ID)
	}

	updated := make([]ingredients.Ingredient, len(list.Ingredients))
	copy(updated, list.Ingredients)
	for i := range updated {
		if updated[i].ID == ingredientID {
			updated[i].Checked = !updated[i].Checked
		}
	}

	return a.store.UpdateIngredients(ctx, plan.ID, updated)
}

// BuildShoppingList formats the current plan's ingredients for a platform,
// persists the export keyed by the ingredient list id and returns it.
func (a *App) BuildShoppingList(ctx context.Context, platform shopping.Platform) (*shopping.ShoppingList, error) {
	plan, err := a.store.CurrentMealPlan(ctx)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, ErrNoPlan
	}

	list, err := a.store.IngredientList(ctx, plan.ID)
	if err != nil {
		return nil, err
	}
	if list == nil {
		return nil, fmt.Errorf("no ingredient list found for plan %s", plan.ID)
	}

	shoppingList := shopping.New(list.ID, platform, list.Ingredients)
	if err := a.store.SaveShoppingList(ctx, shoppingList); err != nil {
		return nil, err
	}
	return shoppingList, nil
}

// GenerateRecipe asks the model for step-by-step instructions for a dish.
func (a *App) GenerateRecipe(ctx context.Context, mealName string) (string, error) {
	text, meta, err := recipe.Generate(ctx, a.textGen, mealName)
	a.recordUsage(ctx, meta)
	return text, err
}

// ImportRecipe fetches a recipe page and rewrites it as plain recipe text.
func (a *App) ImportRecipe(ctx context.Context, url string) (string, error) {
	text, meta, err := a.importer.ImportFromURL(ctx, url)
	a.recordUsage(ctx, meta)
	return text, err
}

// ClearAll erases every stored record.
func (a *App) ClearAll(ctx context.Context) error {
	return a.store.ClearAll(ctx)
}

func (a *App) recordUsage(ctx context.Context, meta shared.CallMeta) {
	if a.metricsStore == nil {
		return
	}
	if err := a.metricsStore.RecordMeta(ctx, meta); err != nil {
		log.Printf("Warning: failed to record metrics for %s: %v", meta.Operation, err)
	}
}
