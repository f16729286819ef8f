package repo

import (
	"context"
	"errors"
	"sort"

	"smart-pantry/backend/app/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

// UserStore holds credentials keyed by normalized email.
type UserStore interface {
	// Create fails with ErrDuplicate when the email is taken.
	Create(ctx context.Context, u *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, id string) (*models.User, error)
}

// ItemStore holds inventory items. Every call is scoped to one owner.
type ItemStore interface {
	// List returns the owner's items ordered by expiry, then creation time, then id.
	List(ctx context.Context, userID string) ([]models.Item, error)
	Get(ctx context.Context, userID, id string) (*models.Item, error)
	Create(ctx context.Context, item *models.Item) error
	// Update runs mutate on the stored item and persists the result atomically.
	// An error from mutate aborts the update and is returned unchanged.
	Update(ctx context.Context, userID, id string, mutate func(*models.Item) error) (*models.Item, error)
	Delete(ctx context.Context, userID, id string) error
}

func sortItems(items []models.Item) {
	sort.Slice(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if !a.Expiry.Equal(b.Expiry) {
			return a.Expiry.Before(b.Expiry)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}
