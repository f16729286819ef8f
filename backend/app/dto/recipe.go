package dto

type Recipe struct {
	Title       string   `json:"title"`
	URL         string   `json:"url"`
	Ingredients []string `json:"ingredients"`
	Image       string   `json:"image,omitempty"`
}

type RecipesResponse struct {
	Recipes []Recipe `json:"recipes"`
}

type PingResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
