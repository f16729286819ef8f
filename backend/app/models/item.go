package models

import (
	"strings"
	"time"
)

type Category string

const (
	CategoryDairy      Category = "Dairy"
	CategoryVegetables Category = "Vegetables"
	CategoryFruits     Category = "Fruits"
	CategoryMeat       Category = "Meat"
	CategorySeafood    Category = "Seafood"
	CategoryGrains     Category = "Grains"
	CategorySnacks     Category = "Snacks"
	CategoryBeverages  Category = "Beverages"
	CategoryBakery     Category = "Bakery"
	CategoryFrozen     Category = "Frozen"
	CategoryOther      Category = "Other"
)

// Categories lists the closed set in display order.
var Categories = []Category{
	CategoryDairy, CategoryVegetables, CategoryFruits, CategoryMeat, CategorySeafood,
	CategoryGrains, CategorySnacks, CategoryBeverages, CategoryBakery, CategoryFrozen, CategoryOther,
}

func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Item is one pantry entry owned by UserID.
type Item struct {
	ID        string    `gorm:"primaryKey;size:36"`
	UserID    string    `gorm:"index;size:36;not null"`
	Name      string    `gorm:"size:255;not null"`
	Quantity  float64   `gorm:"not null"`
	Unit      string    `gorm:"size:64"`
	Expiry    time.Time `gorm:"index;not null"`
	Category  Category  `gorm:"size:32;not null"`
	Barcode   string    `gorm:"size:64"`
	Notes     string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime:false"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false"`
}

// InstantLayout is the wire form of every timestamp: UTC with milliseconds.
const InstantLayout = "2006-01-02T15:04:05.000Z07:00"

// FormatInstant renders t as e.g. 2099-01-01T00:00:00.000Z.
func FormatInstant(t time.Time) string { return t.UTC().Format(InstantLayout) }

// Instant normalizes t to the stored precision.
func Instant(t time.Time) time.Time { return t.UTC().Truncate(time.Millisecond) }

var expiryLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseExpiry accepts RFC 3339, a zone-less date-time or a bare date.
// Zone-less input is read as UTC.
func ParseExpiry(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range expiryLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Instant(t), true
		}
	}
	return time.Time{}, false
}
