package router

import (
	"net/http"

	"smart-pantry/backend/app/controllers"
	"smart-pantry/backend/app/middleware"

	"github.com/gorilla/mux"
)

type Controllers struct {
	HTTP      *controllers.HTTPController
	Auth      *controllers.AuthController
	Inventory *controllers.InventoryController
	Recipes   *controllers.RecipeController
}

type Middleware struct {
	Auth      *middleware.Auth
	RateLimit *middleware.RateLimiter
	Metrics   *middleware.Metrics
}

func NewRouter(c Controllers, mw Middleware) http.Handler {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(c.HTTP.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(c.HTTP.MethodNotAllowed)
	if mw.Metrics != nil {
		r.Handle("/metrics", mw.Metrics.Handler()).Methods(http.MethodGet)
	}

	protected := func(h http.HandlerFunc) http.Handler { return mw.Auth.RequireAuth(h) }

	api := r.PathPrefix("/api").Subrouter()
	api.NotFoundHandler = r.NotFoundHandler
	api.MethodNotAllowedHandler = r.MethodNotAllowedHandler

	// public
	api.HandleFunc("/ping", c.HTTP.Ping).Methods(http.MethodGet)
	api.Handle("/auth/signup", mw.RateLimit.Handler(http.HandlerFunc(c.Auth.Signup))).Methods(http.MethodPost)
	api.Handle("/auth/login", mw.RateLimit.Handler(http.HandlerFunc(c.Auth.Login))).Methods(http.MethodPost)

	// session
	api.Handle("/auth/me", protected(c.Auth.Me)).Methods(http.MethodGet)

	// inventory
	api.Handle("/inventory", protected(c.Inventory.List)).Methods(http.MethodGet)
	api.Handle("/inventory", protected(c.Inventory.Create)).Methods(http.MethodPost)
	api.Handle("/inventory/stats", protected(c.Inventory.Stats)).Methods(http.MethodGet)
	api.Handle("/inventory/export", protected(c.Inventory.Export)).Methods(http.MethodGet)
	api.Handle("/inventory/{id}", protected(c.Inventory.Update)).Methods(http.MethodPut)
	api.Handle("/inventory/{id}", protected(c.Inventory.Delete)).Methods(http.MethodDelete)

	// recipes
	api.Handle("/recipes/suggest", protected(c.Recipes.Suggest)).Methods(http.MethodGet)

	if mw.Metrics != nil {
		return mw.Metrics.Wrap(r)
	}
	return r
}
