package recipes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"smart-pantry/backend/app/dto"

	"github.com/tidwall/gjson"
)

const (
	DefaultBaseURL = "https://api.spoonacular.com"
	DefaultTimeout = 5 * time.Second

	recipePageURL = "https://spoonacular.com/recipes/"
	maxBodyBytes  = 1 << 20
)

// Spoonacular calls GET /recipes/findByIngredients.
type Spoonacular struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

func NewSpoonacular(baseURL, apiKey string, timeout time.Duration) *Spoonacular {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Spoonacular{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

func (s *Spoonacular) Search(ctx context.Context, ingredients []string) ([]dto.Recipe, error) {
	q := url.Values{}
	q.Set("ingredients", strings.Join(ingredients, ","))
	q.Set("number", strconv.Itoa(MaxResults))
	q.Set("ranking", "2")
	q.Set("apiKey", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"/recipes/findByIngredients?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("spoonacular request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("spoonacular status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read spoonacular body: %w", err)
	}
	return parseFindByIngredients(body)
}

func parseFindByIngredients(body []byte) ([]dto.Recipe, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("spoonacular: invalid json")
	}
	res := gjson.ParseBytes(body)
	if !res.IsArray() {
		return nil, fmt.Errorf("spoonacular: expected array, got %s", res.Type)
	}
	out := []dto.Recipe{}
	res.ForEach(func(_, r gjson.Result) bool {
		title := r.Get("title").String()
		ingredients := []string{}
		for _, path := range []string{"usedIngredients.#.name", "missedIngredients.#.name"} {
			for _, n := range r.Get(path).Array() {
				ingredients = append(ingredients, n.String())
			}
		}
		out = append(out, dto.Recipe{
			Title:       title,
			URL:         recipePageURL + encodeURIComponent(title) + "-" + r.Get("id").String(),
			Ingredients: ingredients,
			Image:       r.Get("image").String(),
		})
		return len(out) < MaxResults
	})
	return out, nil
}

// encodeURIComponent leaves A-Z a-z 0-9 - _ . ! ~ * ' ( ) unescaped.
var uriComponentFixups = strings.NewReplacer("+", "%20", "%21", "!", "%27", "'", "%28", "(", "%29", ")", "%2A", "*")

func encodeURIComponent(s string) string {
	return uriComponentFixups.Replace(url.QueryEscape(s))
}
