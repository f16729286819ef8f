package services

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"sync/atomic"
	"time"

	"smart-pantry/backend/app/apperr"
	"smart-pantry/backend/app/dto"
	"smart-pantry/backend/app/models"
	"smart-pantry/backend/app/repo"

	"github.com/google/uuid"
)

const (
	DefaultExpirySoonDays = 3

	msgMissingFields   = "Missing required fields"
	msgItemNotFound    = "Item not found"
	msgInvalidExpiry   = "Invalid expiry"
	msgInvalidCategory = "Invalid category"
	msgInvalidQuantity = "Quantity must be a positive number"
	msgEmptyName       = "Name cannot be empty"
	millisPerDay       = 24 * 60 * 60 * 1000
)

var csvHeader = []string{"id", "name", "quantity", "unit", "expiry", "category", "barcode", "notes", "createdAt", "updatedAt"}

type InventoryService struct {
	items    repo.ItemStore
	soonDays atomic.Int64
	Now      func() time.Time
}

func NewInventoryService(items repo.ItemStore, expirySoonDays int) *InventoryService {
	s := &InventoryService{items: items}
	s.SetExpirySoonDays(expirySoonDays)
	return s
}

func (s *InventoryService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

// SetExpirySoonDays changes the stats threshold; safe while serving.
func (s *InventoryService) SetExpirySoonDays(days int) {
	if days < 0 {
		days = DefaultExpirySoonDays
	}
	s.soonDays.Store(int64(days))
}

func (s *InventoryService) ExpirySoonDays() int { return int(s.soonDays.Load()) }

func (s *InventoryService) List(ctx context.Context, userID string) ([]dto.Item, error) {
	items, err := s.items.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.Item, 0, len(items))
	for i := range items {
		out = append(out, toItemDTO(&items[i]))
	}
	return out, nil
}

func (s *InventoryService) Create(ctx context.Context, userID string, req dto.ItemRequest) (*dto.Item, error) {
	if req.Name == nil || strings.TrimSpace(*req.Name) == "" ||
		req.Quantity == nil || *req.Quantity == 0 ||
		req.Expiry == nil || strings.TrimSpace(*req.Expiry) == "" ||
		req.Category == nil || *req.Category == "" {
		return nil, apperr.InvalidInput(msgMissingFields)
	}
	now := models.Instant(s.now())
	it := &models.Item{ID: uuid.NewString(), UserID: userID, CreatedAt: now}
	if err := applyPatch(it, req); err != nil {
		return nil, err
	}
	it.UpdatedAt = now
	if err := s.items.Create(ctx, it); err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	out := toItemDTO(it)
	return &out, nil
}

// Update merges only the fields present in req into the stored item.
func (s *InventoryService) Update(ctx context.Context, userID, id string, req dto.ItemRequest) (*dto.Item, error) {
	it, err := s.items.Update(ctx, userID, id, func(it *models.Item) error {
		if err := applyPatch(it, req); err != nil {
			return err
		}
		it.UpdatedAt = models.Instant(s.now())
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, apperr.NotFound(msgItemNotFound)
	}
	if err != nil {
		return nil, err
	}
	out := toItemDTO(it)
	return &out, nil
}

func (s *InventoryService) Delete(ctx context.Context, userID, id string) error {
	err := s.items.Delete(ctx, userID, id)
	if errors.Is(err, repo.ErrNotFound) {
		return apperr.NotFound(msgItemNotFound)
	}
	return err
}

// Stats counts expired items, items expiring within the threshold in whole
// days rounded up, and items per category.
func (s *InventoryService) Stats(ctx context.Context, userID string) (*dto.Stats, error) {
	items, err := s.items.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	now := s.now()
	threshold := float64(s.ExpirySoonDays())
	st := &dto.Stats{Total: len(items), CategoriesCount: map[string]int{}}
	for _, it := range items {
		if it.Expiry.Before(now) {
			st.Expired++
		}
		// an item that expired under a day ago rounds to -0 and still counts
		days := math.Ceil(float64(it.Expiry.Sub(now).Milliseconds()) / millisPerDay)
		if days >= 0 && days <= threshold {
			st.ExpiringSoon++
		}
		st.CategoriesCount[string(it.Category)]++
	}
	return st, nil
}

// ExportCSV writes the user's items, header first, in listing order.
func (s *InventoryService) ExportCSV(ctx context.Context, userID string, w io.Writer) error {
	items, err := s.items.List(ctx, userID)
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			it.ID,
			it.Name,
			formatQuantity(it.Quantity),
			it.Unit,
			models.FormatInstant(it.Expiry),
			string(it.Category),
			it.Barcode,
			it.Notes,
			models.FormatInstant(it.CreatedAt),
			models.FormatInstant(it.UpdatedAt),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func applyPatch(it *models.Item, req dto.ItemRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return apperr.InvalidInput(msgEmptyName)
		}
		it.Name = name
	}
	if req.Quantity != nil {
		q := float64(*req.Quantity)
		if q <= 0 || math.IsNaN(q) || math.IsInf(q, 0) {
			return apperr.InvalidInput(msgInvalidQuantity)
		}
		it.Quantity = q
	}
	// a blank expiry keeps the stored one
	if req.Expiry != nil && strings.TrimSpace(*req.Expiry) != "" {
		exp, ok := models.ParseExpiry(*req.Expiry)
		if !ok {
			return apperr.InvalidInput(msgInvalidExpiry)
		}
		it.Expiry = exp
	}
	if req.Category != nil {
		c := models.Category(*req.Category)
		if !c.Valid() {
			return apperr.InvalidInput(msgInvalidCategory)
		}
		it.Category = c
	}
	if req.Unit != nil {
		it.Unit = *req.Unit
	}
	if req.Barcode != nil {
		it.Barcode = *req.Barcode
	}
	if req.Notes != nil {
		it.Notes = *req.Notes
	}
	return nil
}

func formatQuantity(q float64) string { return strconv.FormatFloat(q, 'f', -1, 64) }

func toItemDTO(it *models.Item) dto.Item {
	return dto.Item{
		ID:        it.ID,
		UserID:    it.UserID,
		Name:      it.Name,
		Quantity:  it.Quantity,
		Unit:      it.Unit,
		Expiry:    models.FormatInstant(it.Expiry),
		Category:  string(it.Category),
		Barcode:   it.Barcode,
		Notes:     it.Notes,
		CreatedAt: models.FormatInstant(it.CreatedAt),
		UpdatedAt: models.FormatInstant(it.UpdatedAt),
	}
}
