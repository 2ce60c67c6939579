package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"plan-my-meal/internal/app"
	"plan-my-meal/internal/config"
	"plan-my-meal/internal/database"
	"plan-my-meal/internal/ingredients"
	"plan-my-meal/internal/llm"
	"plan-my-meal/internal/metrics"
	"plan-my-meal/internal/planner"
	"plan-my-meal/internal/storage"
)

type stubTextGenerator struct {
	response string
}

func (s *stubTextGenerator) GenerateContent(ctx context.Context, prompt string) (llm.ContentResponse, error) {
	return llm.ContentResponse{Content: s.response}, nil
}

func setupServer(t *testing.T, gen llm.TextGenerator) *Server {
	t.Helper()
	dataDir := t.TempDir()
	db, err := database.NewDB(filepath.Join(dataDir, "test.db"))
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	metricsStore := metrics.NewStore(db.SQL)
	application := app.NewApp(storage.NewStore(db.SQL), gen, metricsStore)
	return New(application, metricsStore, &config.Config{DataDir: dataDir})
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPlanEndpoints(t *testing.T) {
	srv := setupServer(t, &stubTextGenerator{})
	handler := srv.Handler()

	t.Run("GetPlanCreatesWeek", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", "/api/plan", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var plan planner.WeeklyPlan
		if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
			t.Fatalf("Failed to decode plan: %v", err)
		}
		if len(plan.Days) != 7 {
			t.Errorf("Expected 7 days, got %d", len(plan.Days))
		}
	})

	t.Run("UpsertMeal", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/plan/meals", upsertMealRequest{
			Day: "wednesday", MealType: "lunch", Name: "Chole", Servings: "3",
		})
		if rec.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		var meal planner.Meal
		if err := json.Unmarshal(rec.Body.Bytes(), &meal); err != nil {
			t.Fatalf("Failed to decode meal: %v", err)
		}
		if meal.Type != planner.MealLunch || meal.DayOfWeek != planner.Wednesday {
			t.Errorf("Unexpected meal: %+v", meal)
		}

		del := doJSON(t, handler, "DELETE", "/api/plan/meals/"+meal.ID, nil)
		if del.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", del.Code)
		}
	})

	t.Run("UpsertMealEmptyName", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/plan/meals", upsertMealRequest{
			Day: "monday", MealType: "dinner", Name: "   ",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for empty name, got %d", rec.Code)
		}
	})

	t.Run("UpsertMealBadDay", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/plan/meals", upsertMealRequest{
			Day: "someday", MealType: "dinner", Name: "Chole",
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown day, got %d", rec.Code)
		}
	})
}

func TestIngredientAndShoppingEndpoints(t *testing.T) {
	srv := setupServer(t, &stubTextGenerator{
		response: `{"ingredients":[{"name":"Rice","quantity":"2","unit":"kg","category":"grains"}]}`,
	})
	handler := srv.Handler()

	// Seed a plan with one meal.
	if rec := doJSON(t, handler, "POST", "/api/plan/meals", upsertMealRequest{
		Day: "tuesday", MealType: "dinner", Name: "Fried Rice",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("Seed meal failed: %d", rec.Code)
	}

	t.Run("IngredientsBeforeGeneration", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", "/api/ingredients", nil)
		if rec.Code != http.StatusNotFound {
			t.Errorf("Expected 404 before generation, got %d", rec.Code)
		}
	})

	var list ingredients.IngredientList

	t.Run("Generate", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/ingredients/generate", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
			t.Fatalf("Failed to decode list: %v", err)
		}
		if len(list.Ingredients) != 1 || list.Ingredients[0].Name != "Rice" {
			t.Fatalf("Unexpected list: %+v", list)
		}
	})

	t.Run("Toggle", func(t *testing.T) {
		rec := doJSON(t, handler, "POST", "/api/ingredients/"+list.Ingredients[0].ID+"/toggle", nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("Expected 204, got %d", rec.Code)
		}

		get := doJSON(t, handler, "GET", "/api/ingredients", nil)
		var reloaded ingredients.IngredientList
		if err := json.Unmarshal(get.Body.Bytes(), &reloaded); err != nil {
			t.Fatalf("Failed to decode list: %v", err)
		}
		if !reloaded.Ingredients[0].Checked {
			t.Error("Expected ingredient checked after toggle")
		}
	})

	t.Run("ShoppingList", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", "/api/shopping/zepto", nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp struct {
			FormattedText string `json:"formattedText"`
			WhatsAppLink  string `json:"whatsappLink"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !strings.Contains(resp.FormattedText, "Rice x 2 kg") {
			t.Errorf("Unexpected formatted text: %q", resp.FormattedText)
		}
		if !strings.HasPrefix(resp.WhatsAppLink, "whatsapp://send?text=") {
			t.Errorf("Unexpected WhatsApp link: %q", resp.WhatsAppLink)
		}
	})

	t.Run("ShoppingListUnknownPlatform", func(t *testing.T) {
		rec := doJSON(t, handler, "GET", "/api/shopping/amazon", nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400 for unknown platform, got %d", rec.Code)
		}
	})
}

func TestRecipeEndpoint(t *testing.T) {
	srv := setupServer(t, &stubTextGenerator{response: "1. Boil water"})
	handler := srv.Handler()

	rec := doJSON(t, handler, "POST", "/api/recipes/generate", generateRecipeRequest{MealName: "Maggi"})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp["recipe"] != "1. Boil water" {
		t.Errorf("Unexpected recipe: %q", resp["recipe"])
	}

	missing := doJSON(t, handler, "POST", "/api/recipes/generate", generateRecipeRequest{})
	if missing.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for missing meal name, got %d", missing.Code)
	}
}

func TestClearAllEndpoint(t *testing.T) {
	srv := setupServer(t, &stubTextGenerator{})
	handler := srv.Handler()

	if rec := doJSON(t, handler, "POST", "/api/plan/meals", upsertMealRequest{
		Day: "monday", MealType: "breakfast", Name: "Poha",
	}); rec.Code != http.StatusCreated {
		t.Fatalf("Seed meal failed: %d", rec.Code)
	}

	if rec := doJSON(t, handler, "DELETE", "/api/data", nil); rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}

	// A fresh plan is created on the next read, with no meals.
	rec := doJSON(t, handler, "GET", "/api/plan", nil)
	var plan planner.WeeklyPlan
	if err := json.Unmarshal(rec.Body.Bytes(), &plan); err != nil {
		t.Fatalf("Failed to decode plan: %v", err)
	}
	if plan.MealCount() != 0 {
		t.Errorf("Expected empty plan after clear, got %d meals", plan.MealCount())
	}
}
