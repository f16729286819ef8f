package controllers

import (
	"net/http"

	"smart-pantry/backend/app/dto"
	"smart-pantry/backend/app/recipes"
)

type RecipeController struct {
	suggester recipes.Suggester
}

func NewRecipeController(s recipes.Suggester) *RecipeController {
	return &RecipeController{suggester: s}
}

// Suggest GET /api/recipes/suggest?ingredients=egg,bread
func (c *RecipeController) Suggest(w http.ResponseWriter, r *http.Request) {
	ingredients := recipes.ParseQuery(r.URL.Query().Get("ingredients"))
	writeJSON(w, http.StatusOK, dto.RecipesResponse{Recipes: c.suggester.Suggest(r.Context(), ingredients)})
}
