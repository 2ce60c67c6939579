package planner

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the calendar-date layout used throughout the plan records.
const DateFormat = "2006-01-02"

// Meals holds the four fixed meal slots of a day. The slot set is closed,
// so this is a struct with named optional fields rather than a map.
type Meals struct {
	Breakfast *Meal `json:"breakfast,omitempty"`
	Lunch     *Meal `json:"lunch,omitempty"`
	Dinner    *Meal `json:"dinner,omitempty"`
	Snacks    *Meal `json:"snacks,omitempty"`
}

// Get returns the meal occupying the given slot, or nil.
func (m *Meals) Get(t MealType) *Meal {
	switch t {
	case MealBreakfast:
		return m.Breakfast
	case MealLunch:
		return m.Lunch
	case MealDinner:
		return m.Dinner
	case MealSnacks:
		return m.Snacks
	}
	return nil
}

// Set assigns a meal to the given slot; a nil meal clears it.
func (m *Meals) Set(t MealType, meal *Meal) {
	switch t {
	case MealBreakfast:
		m.Breakfast = meal
	case MealLunch:
		m.Lunch = meal
	case MealDinner:
		m.Dinner = meal
	case MealSnacks:
		m.Snacks = meal
	}
}

// DayPlan holds the meals assigned to a single calendar day.
type DayPlan struct {
	Day   DayOfWeek `json:"day"`
	Date  string    `json:"date"`
	Meals Meals     `json:"meals"`
}

// WeeklyPlan is the root record: seven days, Monday first.
type WeeklyPlan struct {
	ID        string    `json:"id"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Days      []DayPlan `json:"days"`
}

// MealInput carries the user-supplied fields for a meal upsert. Servings is
// free-form text from the input field, parsed with a default of 4.
type MealInput struct {
	Name     string
	Servings string
	Recipe   string
}

// ErrEmptyMealName is returned when a meal is saved without a name.
var ErrEmptyMealName = fmt.Errorf("meal name must not be empty")

// NewWeeklyPlan creates a fresh plan for the week containing today,
// starting at the Monday on or before today.
func NewWeeklyPlan(today time.Time) *WeeklyPlan {
	monday := today
	switch wd := int(today.Weekday()); wd {
	case 0: // Sunday
		monday = today.AddDate(0, 0, -6)
	default:
		monday = today.AddDate(0, 0, -(wd - 1))
	}

	days := make([]DayPlan, 0, len(DaysOfWeek))
	for i, day := range DaysOfWeek {
		days = append(days, DayPlan{
			Day:  day,
			Date: monday.AddDate(0, 0, i).Format(DateFormat),
		})
	}

	return &WeeklyPlan{
		ID:        fmt.Sprintf("plan-%d", time.Now().UnixMilli()),
		StartDate: monday.Format(DateFormat),
		EndDate:   monday.AddDate(0, 0, 6).Format(DateFormat),
		Days:      days,
	}
}

// Day returns the DayPlan for the given weekday, or nil.
func (p *WeeklyPlan) Day(day DayOfWeek) *DayPlan {
	for i := range p.Days {
		if p.Days[i].Day == day {
			return &p.Days[i]
		}
	}
	return nil
}

// UpsertMeal assigns a meal to the (day, mealType) slot, replacing whatever
// occupied it. The existing meal's id is reused on edit so references stay
// stable. The caller persists the whole plan afterwards.
func (p *WeeklyPlan) UpsertMeal(day DayOfWeek, mealType MealType, in MealInput) (*Meal, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrEmptyMealName
	}

	dayPlan := p.Day(day)
	if dayPlan == nil {
		return nil, fmt.Errorf("plan has no entry for %s", day)
	}

	id := NewMealID()
	if existing := dayPlan.Meals.Get(mealType); existing != nil {
		id = existing.ID
	}

	meal := &Meal{
		ID:        id,
		Name:      name,
		Type:      mealType,
		DayOfWeek: day,
		Date:      dayPlan.Date,
		Servings:  ParseServings(in.Servings),
		Recipe:    strings.TrimSpace(in.Recipe),
	}
	dayPlan.Meals.Set(mealType, meal)
	return meal, nil
}

// DeleteMeal clears the slot holding the meal with the given id and reports
// whether a slot was cleared. Deleting an unknown id is a no-op.
func (p *WeeklyPlan) DeleteMeal(mealID string) bool {
	for i := range p.Days {
		for _, t := range MealTypes {
			if meal := p.Days[i].Meals.Get(t); meal != nil && meal.ID == mealID {
				p.Days[i].Meals.Set(t, nil)
				return true
			}
		}
	}
	return false
}

// MealCount returns the number of occupied slots across the week.
func (p *WeeklyPlan) MealCount() int {
	count := 0
	for i := range p.Days {
		for _, t := range MealTypes {
			if p.Days[i].Meals.Get(t) != nil {
				count++
			}
		}
	}
	return count
}

// IsPast reports whether the plan's week ended before today. The current
// plan is sticky: a past week is reported, never auto-replaced.
func (p *WeeklyPlan) IsPast(today time.Time) bool {
	// ISO dates compare lexicographically.
	return p.EndDate < today.Format(DateFormat)
}
