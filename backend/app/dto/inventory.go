package dto

import (
	"fmt"
	"strconv"
	"strings"
)

// Quantity accepts a JSON number or a numeric string.
type Quantity float64

func (q *Quantity) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
		if s == "" {
			*q = 0
			return nil
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("quantity %s: not a number", string(b))
	}
	*q = Quantity(f)
	return nil
}

// ItemRequest is the body of create and update. Nil fields were not sent.
type ItemRequest struct {
	Name     *string   `json:"name"`
	Quantity *Quantity `json:"quantity"`
	Unit     *string   `json:"unit"`
	Expiry   *string   `json:"expiry"`
	Category *string   `json:"category"`
	Barcode  *string   `json:"barcode"`
	Notes    *string   `json:"notes"`
}

type Item struct {
	ID        string  `json:"id"`
	UserID    string  `json:"userId"`
	Name      string  `json:"name"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
	Expiry    string  `json:"expiry"`
	Category  string  `json:"category"`
	Barcode   string  `json:"barcode,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type ItemsResponse struct {
	Items []Item `json:"items"`
}

type Stats struct {
	Total           int            `json:"total"`
	Expired         int            `json:"expired"`
	ExpiringSoon    int            `json:"expiringSoon"`
	CategoriesCount map[string]int `json:"categoriesCount"`
}
