package server

import (
	"net/http"

	"plan-my-meal/internal/app"
	"plan-my-meal/internal/config"
	"plan-my-meal/internal/metrics"

	"github.com/gorilla/mux"
)

// Server exposes the planner operations as a JSON API. It is a thin
// presentation layer: every handler is a direct call into the App.
type Server struct {
	app          *app.App
	metricsStore *metrics.Store
	cfg          *config.Config
}

// New creates a Server.
func New(application *app.App, metricsStore *metrics.Store, cfg *config.Config) *Server {
	return &Server{app: application, metricsStore: metricsStore, cfg: cfg}
}

// Router builds the HTTP routes.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/health", s.handleHealth).Methods("GET")

	r.HandleFunc("/api/plan", s.handleGetPlan).Methods("GET")
	r.HandleFunc("/api/plan/meals", s.handleUpsertMeal).Methods("POST")
	r.HandleFunc("/api/plan/meals/{id}", s.handleDeleteMeal).Methods("DELETE")

	r.HandleFunc("/api/ingredients", s.handleGetIngredients).Methods("GET")
	r.HandleFunc("/api/ingredients/generate", s.handleGenerateIngredients).Methods("POST")
	r.HandleFunc("/api/ingredients/{id}/toggle", s.handleToggleIngredient).Methods("POST")

	r.HandleFunc("/api/shopping/{platform}", s.handleShoppingList).Methods("GET")

	r.HandleFunc("/api/recipes/generate", s.handleGenerateRecipe).Methods("POST")
	r.HandleFunc("/api/recipes/import", s.handleImportRecipe).Methods("POST")

	r.HandleFunc("/api/metrics/daily", s.handleDailyUsage).Methods("GET")
	r.HandleFunc("/api/data", s.handleClearAll).Methods("DELETE")

	return r
}

// Handler returns the root http.Handler for the server.
func (s *Server) Handler() http.Handler {
	return s.Router()
}
