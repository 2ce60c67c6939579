package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"plan-my-meal/internal/app"
	"plan-my-meal/internal/metrics"
	"plan-my-meal/internal/planner"
	"plan-my-meal/internal/shopping"

	"github.com/gorilla/mux"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"sys":    metrics.GetSysHealth(s.cfg.DataDir),
	})
}

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.app.CurrentPlan(r.Context())
	if err != nil {
		log.Printf("failed to load plan: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load plan")
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

type upsertMealRequest struct {
	Day      string `json:"day"`
	MealType string `json:"mealType"`
	Name     string `json:"name"`
	Servings string `json:"servings"`
	Recipe   string `json:"recipe"`
}

func (s *Server) handleUpsertMeal(w http.ResponseWriter, r *http.Request) {
	var req upsertMealRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	day, err := planner.ParseDayOfWeek(req.Day)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mealType, err := planner.ParseMealType(req.MealType)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	meal, err := s.app.UpsertMeal(r.Context(), day, mealType, planner.MealInput{
		Name:     req.Name,
		Servings: req.Servings,
		Recipe:   req.Recipe,
	})
	if err != nil {
		if errors.Is(err, planner.ErrEmptyMealName) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("failed to upsert meal: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to save meal")
		return
	}

	writeJSON(w, http.StatusCreated, meal)
}

func (s *Server) handleDeleteMeal(w http.ResponseWriter, r *http.Request) {
	mealID := mux.Vars(r)["id"]

	if err := s.app.DeleteMeal(r.Context(), mealID); err != nil {
		if errors.Is(err, app.ErrNoPlan) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("failed to delete meal: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to delete meal")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetIngredients(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.Ingredients(r.Context())
	if err != nil {
		if errors.Is(err, app.ErrNoPlan) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("failed to load ingredients: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load ingredients")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "no ingredient list generated yet")
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleGenerateIngredients(w http.ResponseWriter, r *http.Request) {
	list, err := s.app.GenerateIngredients(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, app.ErrNoPlan):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, app.ErrNoIngredients):
			writeError(w, http.StatusBadGateway, err.Error())
		default:
			log.Printf("ingredient generation failed: %v", err)
			writeError(w, http.StatusBadGateway, "ingredient generation failed")
		}
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleToggleIngredient(w http.ResponseWriter, r *http.Request) {
	ingredientID := mux.Vars(r)["id"]

	if err := s.app.ToggleIngredient(r.Context(), ingredientID); err != nil {
		if errors.Is(err, app.ErrNoPlan) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("failed to toggle ingredient: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to toggle ingredient")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type shoppingListResponse struct {
	*shopping.ShoppingList
	WhatsAppLink string `json:"whatsappLink"`
}

func (s *Server) handleShoppingList(w http.ResponseWriter, r *http.Request) {
	platform, err := shopping.ParsePlatform(mux.Vars(r)["platform"])
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	list, err := s.app.BuildShoppingList(r.Context(), platform)
	if err != nil {
		if errors.Is(err, app.ErrNoPlan) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		log.Printf("failed to build shopping list: %v", err)
		writeError(w, http.StatusNotFound, "no ingredient list to format")
		return
	}

	writeJSON(w, http.StatusOK, shoppingListResponse{
		ShoppingList: list,
		WhatsAppLink: shopping.WhatsAppLink(list.FormattedText),
	})
}

type generateRecipeRequest struct {
	MealName string `json:"mealName"`
}

func (s *Server) handleGenerateRecipe(w http.ResponseWriter, r *http.Request) {
	var req generateRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MealName == "" {
		writeError(w, http.StatusBadRequest, "mealName is required")
		return
	}

	text, err := s.app.GenerateRecipe(r.Context(), req.MealName)
	if err != nil {
		log.Printf("recipe generation failed: %v", err)
		writeError(w, http.StatusBadGateway, "recipe generation failed, please try again")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"recipe": text})
}

type importRecipeRequest struct {
	URL string `json:"url"`
}

func (s *Server) handleImportRecipe(w http.ResponseWriter, r *http.Request) {
	var req importRecipeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "url is required")
		return
	}

	text, err := s.app.ImportRecipe(r.Context(), req.URL)
	if err != nil {
		log.Printf("recipe import failed: %v", err)
		writeError(w, http.StatusBadGateway, "recipe import failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"recipe": text})
}

func (s *Server) handleDailyUsage(w http.ResponseWriter, r *http.Request) {
	days := 7
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "days must be a positive integer")
			return
		}
		days = n
	}

	usage, err := s.metricsStore.GetDailyUsage(r.Context(), days)
	if err != nil {
		log.Printf("failed to load usage: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load usage")
		return
	}
	if usage == nil {
		usage = []metrics.DailyUsage{}
	}
	writeJSON(w, http.StatusOK, usage)
}

func (s *Server) handleClearAll(w http.ResponseWriter, r *http.Request) {
	if err := s.app.ClearAll(r.Context()); err != nil {
		log.Printf("failed to clear data: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to clear data")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
