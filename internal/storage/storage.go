package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"plan-my-meal/internal/ingredients"
	"plan-my-meal/internal/planner"
	"plan-my-meal/internal/shopping"
)

// Key namespace for the records table. One singleton key holds the current
// plan pointer, one the append-oriented list of all plans; ingredient and
// shopping lists are addressed per owning id.
const (
	keyCurrentPlan = "current_plan"
	keyAllPlans    = "all_plans"
)

func ingredientsKey(mealPlanID string) string {
	return fmt.Sprintf("ingredients:%s", mealPlanID)
}

func shoppingKey(ingredientListID string) string {
	return fmt.Sprintf("shopping:%s", ingredientListID)
}

// Store persists the domain records as JSON values in a key/value table.
type Store struct {
	db *sql.DB
}

// NewStore creates a Store over an open database connection.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// put overwrites the value at key.
func (s *Store) put(ctx context.Context, key string, record any) error {
	value, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal record for %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, string(value), time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("failed to save record %s: %w", key, err)
	}
	return nil
}

// get reads the value at key into record. A missing key reports found=false
// with no error.
func (s *Store) get(ctx context.Context, key string, record any) (bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read record %s: %w", key, err)
	}

	if err := json.Unmarshal([]byte(value), record); err != nil {
		return false, fmt.Errorf("failed to unmarshal record %s: %w", key, err)
	}
	return true, nil
}

// SaveMealPlan writes the plan as the current plan and replaces it by id in
// the all-plans history.
func (s *Store) SaveMealPlan(ctx context.Context, plan *planner.WeeklyPlan) error {
	if err := s.put(ctx, keyCurrentPlan, plan); err != nil {
		return err
	}

	allPlans, err := s.AllPlans(ctx)
	if err != nil {
		return err
	}

	updated := make([]*planner.WeeklyPlan, 0, len(allPlans)+1)
	for _, p := range allPlans {
		if p.ID != plan.ID {
			updated = append(updated, p)
		}
	}
	updated = append(updated, plan)

	return s.put(ctx, keyAllPlans, updated)
}

// CurrentMealPlan returns the current plan, or nil when none is stored.
func (s *Store) CurrentMealPlan(ctx context.Context) (*planner.WeeklyPlan, error) {
	var plan planner.WeeklyPlan
	found, err := s.get(ctx, keyCurrentPlan, &plan)
	if err != nil || !found {
		return nil, err
	}
	return &plan, nil
}

// AllPlans returns every plan ever saved, oldest first.
func (s *Store) AllPlans(ctx context.Context) ([]*planner.WeeklyPlan, error) {
	var plans []*planner.WeeklyPlan
	if _, err := s.get(ctx, keyAllPlans, &plans); err != nil {
		return nil, err
	}
	return plans, nil
}

// SaveIngredientList overwrites the ingredient list for its meal plan.
func (s *Store) SaveIngredientList(ctx context.Context, list *ingredients.IngredientList) error {
	return s.put(ctx, ingredientsKey(list.MealPlanID), list)
}

// IngredientList returns the ingredient list for a meal plan, or nil.
func (s *Store) IngredientList(ctx context.Context, mealPlanID string) (*ingredients.IngredientList, error) {
	var list ingredients.IngredientList
	found, err := s.get(ctx, ingredientsKey(mealPlanID), &list)
	if err != nil || !found {
		return nil, err
	}
	return &list, nil
}

// UpdateIngredients replaces the ingredients of a stored list, keeping its
// identity and generation timestamp. Missing list is a silent no-op, the
// checked-state toggle has nothing to update then.
func (s *Store) UpdateIngredients(ctx context.Context, mealPlanID string, items []ingredients.Ingredient) error {
	existing, err := s.IngredientList(ctx, mealPlanID)
	if err != nil || existing == nil {
		return err
	}
	existing.Ingredients = items
	return s.SaveIngredientList(ctx, existing)
}

// SaveShoppingList overwrites the formatted shopping list for its
// ingredient list.
func (s *Store) SaveShoppingList(ctx context.Context, list *shopping.ShoppingList) error {
	return s.put(ctx, shoppingKey(list.IngredientListID), list)
}

// ShoppingList returns the stored shopping list for an ingredient list, or nil.
func (s *Store) ShoppingList(ctx context.Context, ingredientListID string) (*shopping.ShoppingList, error) {
	var list shopping.ShoppingList
	found, err := s.get(ctx, shoppingKey(ingredientListID), &list)
	if err != nil || !found {
		return nil, err
	}
	return &list, nil
}

// ClearAll erases every stored record unconditionally.
func (s *Store) ClearAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}
	return nil
}
