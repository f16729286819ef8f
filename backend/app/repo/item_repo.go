package repo

import (
	"context"
	"errors"
	"fmt"

	"smart-pantry/backend/app/models"

	"gorm.io/gorm"
)

// ItemRepository is the gorm-backed ItemStore.
type ItemRepository struct{ db *gorm.DB }

func NewItemRepository(db *gorm.DB) *ItemRepository { return &ItemRepository{db: db} }

func (r *ItemRepository) List(ctx context.Context, userID string) ([]models.Item, error) {
	items := []models.Item{}
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("expiry ASC").Order("created_at ASC").Order("id ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

func (r *ItemRepository) Get(ctx context.Context, userID, id string) (*models.Item, error) {
	return r.get(r.db.WithContext(ctx), userID, id)
}

func (r *ItemRepository) get(tx *gorm.DB, userID, id string) (*models.Item, error) {
	var it models.Item
	err := tx.Where("user_id = ? AND id = ?", userID, id).First(&it).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get item: %w", err)
	}
	return &it, nil
}

func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicate
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

func (r *ItemRepository) Update(ctx context.Context, userID, id string, mutate func(*models.Item) error) (*models.Item, error) {
	var out *models.Item
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		it, err := r.get(tx, userID, id)
		if err != nil {
			return err
		}
		if err := mutate(it); err != nil {
			return err
		}
		it.ID, it.UserID = id, userID
		if err := tx.Save(it).Error; err != nil {
			return fmt.Errorf("save item: %w", err)
		}
		out = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *ItemRepository) Delete(ctx context.Context, userID, id string) error {
	res := r.db.WithContext(ctx).Where("user_id = ? AND id = ?", userID, id).Delete(&models.Item{})
	if res.Error != nil {
		return fmt.Errorf("delete item: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
