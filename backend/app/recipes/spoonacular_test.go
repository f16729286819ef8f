package recipes

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"smart-pantry/backend/app/dto"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResponse = `[
  {"id": 641803, "title": "Easy French Toast", "image": "https://img.spoonacular.com/641803.jpg",
   "usedIngredients": [{"name": "eggs"}, {"name": "bread"}],
   "missedIngredients": [{"name": "cinnamon"}]},
  {"id": 12, "title": "Mac & Cheese (Baked)", "usedIngredients": [], "missedIngredients": [{"name": "macaroni"}]}
]`

func TestSpoonacularSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/recipes/findByIngredients", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "eggs,bread", q.Get("ingredients"))
		assert.Equal(t, "6", q.Get("number"))
		assert.Equal(t, "2", q.Get("ranking"))
		assert.Equal(t, "key-123", q.Get("apiKey"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	rs, err := NewSpoonacular(srv.URL, "key-123", time.Second).Search(context.Background(), []string{"eggs", "bread"})
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, dto.Recipe{
		Title:       "Easy French Toast",
		URL:         "https://spoonacular.com/recipes/Easy%20French%20Toast-641803",
		Ingredients: []string{"eggs", "bread", "cinnamon"},
		Image:       "https://img.spoonacular.com/641803.jpg",
	}, rs[0])
	assert.Equal(t, "https://spoonacular.com/recipes/Mac%20%26%20Cheese%20(Baked)-12", rs[1].URL)
	assert.Equal(t, []string{"macaroni"}, rs[1].Ingredients)
	assert.Empty(t, rs[1].Image)
}

func TestSpoonacularFailures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{"server error", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusPaymentRequired) }},
		{"not json", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("<html>")) }},
		{"not an array", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"status":"failure","message":"bad key"}`))
		}},
		{"slow", func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
			_, _ = w.Write([]byte(`[]`))
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			defer srv.Close()
			_, err := NewSpoonacular(srv.URL, "k", 100*time.Millisecond).Search(context.Background(), []string{"egg"})
			assert.Error(t, err)
		})
	}
}

func TestEncodeURIComponent(t *testing.T) {
	assert.Equal(t, "Tom's%20(Best)%20Soup!%20*%2B%2C%3B", encodeURIComponent("Tom's (Best) Soup! *+,;"))
}

type stubSearcher struct {
	calls atomic.Int32
	rs    []dto.Recipe
	err   error
}

func (s *stubSearcher) Search(context.Context, []string) ([]dto.Recipe, error) {
	s.calls.Add(1)
	return s.rs, s.err
}

func TestFallbackUsesLocalOnFailure(t *testing.T) {
	primary := &stubSearcher{err: errors.New("down")}
	f := &Fallback{Primary: primary, Local: Local{}, Logger: zerolog.Nop()}

	rs := f.Suggest(context.Background(), []string{"banana"})
	assert.Equal(t, []string{"Banana Smoothie"}, titles(rs))
	assert.EqualValues(t, 1, primary.calls.Load())
}

func TestFallbackSkipsRemoteWithoutIngredients(t *testing.T) {
	primary := &stubSearcher{}
	f := &Fallback{Primary: primary, Local: Local{}, Logger: zerolog.Nop()}

	rs := f.Suggest(context.Background(), []string{" ", ""})
	assert.Equal(t, []string{"Mixed Veg Stir-fry"}, titles(rs))
	assert.Zero(t, primary.calls.Load())
}

func TestFallbackCapsRemoteResults(t *testing.T) {
	many := make([]dto.Recipe, 9)
	primary := &stubSearcher{rs: many}
	f := &Fallback{Primary: primary, Local: Local{}, Logger: zerolog.Nop()}
	assert.Len(t, f.Suggest(context.Background(), []string{"x"}), MaxResults)

	primary.rs = nil
	rs := f.Suggest(context.Background(), []string{"x"})
	assert.NotNil(t, rs)
	assert.Empty(t, rs)
}

func TestNewSelectsStrategy(t *testing.T) {
	_, isLocal := New(Config{}, zerolog.Nop()).(Local)
	assert.True(t, isLocal)

	f, ok := New(Config{APIKey: "k"}, zerolog.Nop()).(*Fallback)
	require.True(t, ok)
	_, remote := f.Primary.(*Spoonacular)
	assert.True(t, remote)
}

func TestRemoteOutageEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	s := New(Config{APIKey: "k", BaseURL: srv.URL, Timeout: time.Second}, zerolog.Nop())
	assert.Equal(t, []string{"French Toast"}, titles(s.Suggest(context.Background(), []string{"egg", "bread"})))
}
