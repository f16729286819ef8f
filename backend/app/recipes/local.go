package recipes

import (
	"context"
	"slices"
	"strings"

	"smart-pantry/backend/app/dto"
)

type rule struct {
	keywords []string
	recipe   dto.Recipe
}

// Tried in order; every keyword must appear in some ingredient name.
var localRules = []rule{
	{[]string{"egg", "bread"}, dto.Recipe{
		Title:       "French Toast",
		URL:         "https://www.allrecipes.com/recipe/7016/french-toast-i/",
		Ingredients: []string{"egg", "bread", "milk"},
	}},
	{[]string{"tomato", "pasta"}, dto.Recipe{
		Title:       "Simple Tomato Pasta",
		URL:         "https://www.allrecipes.com/recipe/23431/pasta-with-fresh-tomatoes/",
		Ingredients: []string{"pasta", "tomato", "garlic"},
	}},
	{[]string{"rice", "chicken"}, dto.Recipe{
		Title:       "Chicken Fried Rice",
		URL:         "https://www.allrecipes.com/recipe/79543/chicken-fried-rice/",
		Ingredients: []string{"rice", "chicken", "egg", "peas"},
	}},
	{[]string{"banana"}, dto.Recipe{
		Title:       "Banana Smoothie",
		URL:         "https://www.allrecipes.com/recipe/221261/banana-banana-strawberry-smoothie/",
		Ingredients: []string{"banana", "milk", "ice"},
	}},
	{[]string{"potato"}, dto.Recipe{
		Title:       "Crispy Roasted Potatoes",
		URL:         "https://www.allrecipes.com/recipe/240208/ultimate-roasted-potatoes/",
		Ingredients: []string{"potato", "oil", "salt"},
	}},
}

var defaultRecipe = dto.Recipe{
	Title:       "Mixed Veg Stir-fry",
	URL:         "https://www.allrecipes.com/recipe/229960/quick-vegetable-stir-fry/",
	Ingredients: []string{"vegetables", "soy sauce", "garlic"},
}

// Local matches ingredient names against a fixed keyword table.
type Local struct{}

func (Local) Suggest(_ context.Context, ingredients []string) []dto.Recipe {
	names := Normalize(ingredients)
	for i := range names {
		names[i] = strings.ToLower(names[i])
	}
	has := func(keyword string) bool {
		return slices.ContainsFunc(names, func(n string) bool { return strings.Contains(n, keyword) })
	}

	out := []dto.Recipe{}
	for _, r := range localRules {
		matched := true
		for _, k := range r.keywords {
			if !has(k) {
				matched = false
				break
			}
		}
		if matched {
			out = append(out, clone(r.recipe))
		}
	}
	if len(out) == 0 {
		out = append(out, clone(defaultRecipe))
	}
	return capResults(out)
}

func clone(r dto.Recipe) dto.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	return r
}
