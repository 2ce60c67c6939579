package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"plan-my-meal/internal/app"
	"plan-my-meal/internal/config"
	"plan-my-meal/internal/database"
	"plan-my-meal/internal/llm"
	"plan-my-meal/internal/metrics"
	"plan-my-meal/internal/planner"
	"plan-my-meal/internal/shopping"
	"plan-my-meal/internal/storage"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	geminiClient, err := llm.NewGeminiClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	if closer, ok := geminiClient.(llm.Closer); ok {
		defer closer.Close()
	}

	db, err := database.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	store := storage.NewStore(db.SQL)
	metricsStore := metrics.NewStore(db.SQL)
	application := app.NewApp(store, geminiClient, metricsStore)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "plan":
		if err := showPlan(ctx, application); err != nil {
			log.Fatalf("Failed to show plan: %v", err)
		}
	case "add-meal":
		addCmd := flag.NewFlagSet("add-meal", flag.ExitOnError)
		day := addCmd.String("day", "", "Day of week (monday..sunday)")
		mealType := addCmd.String("type", "", "Meal type (breakfast, lunch, dinner, snacks)")
		name := addCmd.String("name", "", "Meal name")
		servings := addCmd.String("servings", "4", "Servings")
		recipeText := addCmd.String("recipe", "", "Optional recipe text")
		addCmd.Parse(os.Args[2:])

		if err := addMeal(ctx, application, *day, *mealType, *name, *servings, *recipeText); err != nil {
			log.Fatalf("Failed to add meal: %v", err)
		}
	case "delete-meal":
		delCmd := flag.NewFlagSet("delete-meal", flag.ExitOnError)
		id := delCmd.String("id", "", "Meal id")
		delCmd.Parse(os.Args[2:])

		if err := application.DeleteMeal(ctx, *id); err != nil {
			log.Fatalf("Failed to delete meal: %v", err)
		}
		fmt.Println("Meal deleted (absent ids are a no-op).")
	case "ingredients":
		if err := generateIngredients(ctx, application); err != nil {
			log.Fatalf("Failed to generate ingredients: %v", err)
		}
	case "toggle":
		toggleCmd := flag.NewFlagSet("toggle", flag.ExitOnError)
		id := toggleCmd.String("id", "", "Ingredient id")
		toggleCmd.Parse(os.Args[2:])

		if err := application.ToggleIngredient(ctx, *id); err != nil {
			log.Fatalf("Failed to toggle ingredient: %v", err)
		}
	case "shopping":
		shopCmd := flag.NewFlagSet("shopping", flag.ExitOnError)
		platform := shopCmd.String("platform", "generic", "Platform (zepto, blinkit, instamart, generic)")
		shopCmd.Parse(os.Args[2:])

		if err := showShoppingList(ctx, application, *platform); err != nil {
			log.Fatalf("Failed to build shopping list: %v", err)
		}
	case "recipe":
		recipeCmd := flag.NewFlagSet("recipe", flag.ExitOnError)
		name := recipeCmd.String("name", "", "Dish name")
		recipeCmd.Parse(os.Args[2:])

		text, err := application.GenerateRecipe(ctx, *name)
		if err != nil {
			log.Fatalf("Failed to generate recipe: %v", err)
		}
		fmt.Println(text)
	case "import-recipe":
		importCmd := flag.NewFlagSet("import-recipe", flag.ExitOnError)
		url := importCmd.String("url", "", "Recipe page URL")
		importCmd.Parse(os.Args[2:])

		text, err := application.ImportRecipe(ctx, *url)
		if err != nil {
			log.Fatalf("Failed to import recipe: %v", err)
		}
		fmt.Println(text)
	case "metrics":
		metricsCmd := flag.NewFlagSet("metrics", flag.ExitOnError)
		days := metricsCmd.Int("days", 7, "Show usage for the last N days")
		metricsCmd.Parse(os.Args[2:])

		if err := showMetrics(ctx, metricsStore, cfg, *days); err != nil {
			log.Fatalf("Failed to show metrics: %v", err)
		}
	case "metrics-cleanup":
		cleanupCmd := flag.NewFlagSet("metrics-cleanup", flag.ExitOnError)
		days := cleanupCmd.Int("days", 30, "Keep records for the last N days")
		cleanupCmd.Parse(os.Args[2:])

		affected, err := metricsStore.Cleanup(ctx, *days)
		if err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
		fmt.Printf("Successfully removed %d old metric records.\n", affected)
	case "clear":
		if err := application.ClearAll(ctx); err != nil {
			log.Fatalf("Failed to clear data: %v", err)
		}
		fmt.Println("All data cleared.")
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func showPlan(ctx context.Context, application *app.App) error {
	plan, err := application.CurrentPlan(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("=== WEEK %s to %s ===\n", plan.StartDate, plan.EndDate)
	if plan.IsPast(time.Now()) {
		fmt.Println("Note: this plan's week has passed. It stays current until you clear it.")
	}

	for _, day := range plan.Days {
		fmt.Printf("\n%s (%s):\n", day.Day, day.Date)
		empty := true
		for _, t := range planner.MealTypes {
			if meal := day.Meals.Get(t); meal != nil {
				fmt.Printf("  %-10s %s (%d servings) [%s]\n", t+":", meal.Name, meal.Servings, meal.ID)
				empty = false
			}
		}
		if empty {
			fmt.Println("  (no meals)")
		}
	}
	return nil
}

func addMeal(ctx context.Context, application *app.App, day, mealType, name, servings, recipeText string) error {
	d, err := planner.ParseDayOfWeek(day)
	if err != nil {
		return err
	}
	t, err := planner.ParseMealType(mealType)
	if err != nil {
		return err
	}

	meal, err := application.UpsertMeal(ctx, d, t, planner.MealInput{
		Name:     name,
		Servings: servings,
		Recipe:   recipeText,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s for %s %s (%d servings).\n", meal.Name, meal.DayOfWeek, meal.Type, meal.Servings)
	return nil
}

func generateIngredients(ctx context.Context, application *app.App) error {
	fmt.Println("Generating ingredients for the current plan...")

	list, err := application.GenerateIngredients(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Generated %d ingredients:\n", len(list.Ingredients))
	for _, ing := range list.Ingredients {
		fmt.Printf("  - %s: %s %s (%s) [%s]\n", ing.Name, ing.Quantity, ing.Unit, ing.Category, ing.ID)
	}
	return nil
}

func showShoppingList(ctx context.Context, application *app.App, platform string) error {
	p, err := shopping.ParsePlatform(platform)
	if err != nil {
		return err
	}

	list, err := application.BuildShoppingList(ctx, p)
	if err != nil {
		return err
	}

	fmt.Println(list.FormattedText)
	fmt.Printf("WhatsApp: %s\n", shopping.WhatsAppLink(list.FormattedText))
	return nil
}

func showMetrics(ctx context.Context, store *metrics.Store, cfg *config.Config, days int) error {
	usage, err := store.GetDailyUsage(ctx, days)
	if err != nil {
		return err
	}

	fmt.Println("=== TOKEN USAGE ===")
	if len(usage) == 0 {
		fmt.Println("No recorded usage.")
	}
	for _, u := range usage {
		fmt.Printf("%s: prompt=%d completion=%d calls=%d\n", u.Date, u.TotalPrompt, u.TotalCompletion, u.TotalExecutions)
	}

	sys := metrics.GetSysHealth(cfg.DataDir)
	fmt.Printf("\nData dir: %s (%s)\n", cfg.DataDir, sys.DataDiskSize)
	return nil
}

func printUsage() {
	fmt.Println("Usage: plan-my-meal <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  plan               Show the current weekly plan")
	fmt.Println("  add-meal           Assign a meal to a day/meal-type slot")
	fmt.Println("  delete-meal        Remove a meal by id")
	fmt.Println("  ingredients        Generate the consolidated ingredient list")
	fmt.Println("  toggle             Toggle an ingredient's checked state")
	fmt.Println("  shopping           Render the shopping list for a platform")
	fmt.Println("  recipe             Generate a recipe for a dish name")
	fmt.Println("  import-recipe      Import a recipe from a web page")
	fmt.Println("  metrics            Show token usage and data dir size")
	fmt.Println("  metrics-cleanup    Remove old metric records")
	fmt.Println("  clear              Erase all stored data")
}
