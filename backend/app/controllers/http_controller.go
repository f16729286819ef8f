package controllers

import (
	"net/http"

	"smart-pantry/backend/app/dto"
)

type HTTPController struct {
	pingMessage string
}

func NewHTTPController(pingMessage string) *HTTPController {
	if pingMessage == "" {
		pingMessage = "ping"
	}
	return &HTTPController{pingMessage: pingMessage}
}

// Ping GET /api/ping
func (c *HTTPController) Ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dto.PingResponse{Message: c.pingMessage})
}

func (c *HTTPController) NotFound(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusNotFound, "Not found")
}

func (c *HTTPController) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	writeJSONError(w, http.StatusMethodNotAllowed, "Method not allowed")
}
