// Package recipes suggests recipes for a list of ingredient names, either
// from the Spoonacular API or from a small built-in rule table.
package recipes

import (
	"context"
	"strings"
	"time"

	"smart-pantry/backend/app/dto"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	MaxIngredients = 10
	MaxResults     = 6
)

// Suggester never fails; the worst case is the local default suggestion.
type Suggester interface {
	Suggest(ctx context.Context, ingredients []string) []dto.Recipe
}

// Searcher is a remote source that can fail.
type Searcher interface {
	Search(ctx context.Context, ingredients []string) ([]dto.Recipe, error)
}

// Normalize trims names, drops empties and keeps at most MaxIngredients.
func Normalize(ingredients []string) []string {
	out := make([]string, 0, len(ingredients))
	for _, in := range ingredients {
		in = strings.TrimSpace(in)
		if in == "" {
			continue
		}
		out = append(out, in)
		if len(out) == MaxIngredients {
			break
		}
	}
	return out
}

// ParseQuery splits the comma separated ?ingredients= value.
func ParseQuery(q string) []string { return Normalize(strings.Split(q, ",")) }

func capResults(rs []dto.Recipe) []dto.Recipe {
	if rs == nil {
		return []dto.Recipe{}
	}
	if len(rs) > MaxResults {
		return rs[:MaxResults]
	}
	return rs
}

// Fallback asks Primary first and answers from Local when it fails or
// there is nothing to search for.
type Fallback struct {
	Primary Searcher
	Local   Suggester
	Logger  zerolog.Logger
}

func (f *Fallback) Suggest(ctx context.Context, ingredients []string) []dto.Recipe {
	ingredients = Normalize(ingredients)
	if f.Primary == nil || len(ingredients) == 0 {
		return f.Local.Suggest(ctx, ingredients)
	}
	rs, err := f.Primary.Search(ctx, ingredients)
	if err != nil {
		f.Logger.Warn().Err(err).Strs("ingredients", ingredients).Msg("recipe search failed, using local suggestions")
		return f.Local.Suggest(ctx, ingredients)
	}
	return capResults(rs)
}

type Config struct {
	APIKey   string
	BaseURL  string
	Timeout  time.Duration
	Redis    *redis.Client
	CacheTTL time.Duration
}

// New picks the strategy: local rules only without an API key, otherwise the
// remote API (cached when Redis is configured) with local fallback.
func New(cfg Config, logger zerolog.Logger) Suggester {
	local := Local{}
	if cfg.APIKey == "" {
		return local
	}
	var primary Searcher = NewSpoonacular(cfg.BaseURL, cfg.APIKey, cfg.Timeout)
	if cfg.Redis != nil {
		primary = NewCached(primary, NewRedisCache(cfg.Redis), cfg.CacheTTL, logger)
	}
	return &Fallback{Primary: primary, Local: local, Logger: logger}
}
