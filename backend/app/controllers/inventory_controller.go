package controllers

import (
	"bytes"
	"net/http"

	"smart-pantry/backend/app/dto"
	"smart-pantry/backend/app/services"

	"github.com/gorilla/mux"
)

type InventoryController struct {
	service *services.InventoryService
}

func NewInventoryController(svc *services.InventoryService) *InventoryController {
	return &InventoryController{service: svc}
}

// List GET /api/inventory
func (c *InventoryController) List(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	items, err := c.service.List(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, dto.ItemsResponse{Items: items})
}

// Create POST /api/inventory
func (c *InventoryController) Create(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req dto.ItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := c.service.Create(r.Context(), uid, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

// Update PUT /api/inventory/{id}
func (c *InventoryController) Update(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var req dto.ItemRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	item, err := c.service.Update(r.Context(), uid, mux.Vars(r)["id"], req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

// Delete DELETE /api/inventory/{id}
func (c *InventoryController) Delete(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	if err := c.service.Delete(r.Context(), uid, mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Stats GET /api/inventory/stats
func (c *InventoryController) Stats(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	st, err := c.service.Stats(r.Context(), uid)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

// Export GET /api/inventory/export
func (c *InventoryController) Export(w http.ResponseWriter, r *http.Request) {
	uid, ok := userID(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := c.service.ExportCSV(r.Context(), uid, &buf); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=inventory.csv")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
