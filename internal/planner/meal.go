package planner

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MealType identifies one of the four fixed meal slots in a day.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnacks    MealType = "snacks"
)

// MealTypes lists the slots in display order.
var MealTypes = []MealType{MealBreakfast, MealLunch, MealDinner, MealSnacks}

// ParseMealType converts a string into a MealType.
func ParseMealType(s string) (MealType, error) {
	switch MealType(strings.ToLower(strings.TrimSpace(s))) {
	case MealBreakfast:
		return MealBreakfast, nil
	case MealLunch:
		return MealLunch, nil
	case MealDinner:
		return MealDinner, nil
	case MealSnacks:
		return MealSnacks, nil
	}
	return "", fmt.Errorf("unknown meal type: %q", s)
}

// DayOfWeek is a Monday-first weekday tag.
type DayOfWeek string

const (
	Monday    DayOfWeek = "monday"
	Tuesday   DayOfWeek = "tuesday"
	Wednesday DayOfWeek = "wednesday"
	Thursday  DayOfWeek = "thursday"
	Friday    DayOfWeek = "friday"
	Saturday  DayOfWeek = "saturday"
	Sunday    DayOfWeek = "sunday"
)

// DaysOfWeek lists the weekdays Monday first.
var DaysOfWeek = []DayOfWeek{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// ParseDayOfWeek converts a string into a DayOfWeek.
func ParseDayOfWeek(s string) (DayOfWeek, error) {
	d := DayOfWeek(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range DaysOfWeek {
		if d == known {
			return d, nil
		}
	}
	return "", fmt.Errorf("unknown day of week: %q", s)
}

// Meal is a single dish assigned to a day/meal-type slot. A Meal only
// exists inside the slot of its owning WeeklyPlan.
type Meal struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      MealType  `json:"type"`
	DayOfWeek DayOfWeek `json:"dayOfWeek"`
	Date      string    `json:"date"`
	Servings  int       `json:"servings"`
	Recipe    string    `json:"recipe,omitempty"`
}

// DefaultServings is used when the user-supplied servings value is not a
// positive integer.
const DefaultServings = 4

// ParseServings parses a free-form servings string, falling back to
// DefaultServings for anything that is not a positive integer.
func ParseServings(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return DefaultServings
	}
	return n
}

// NewMealID returns a time-seeded meal identifier.
func NewMealID() string {
	return fmt.Sprintf("meal-%d", time.Now().UnixMilli())
}
