package model

import (
	"database/sql/driver"
	"encoding/json"

	"github.com/chef4u/backend/internal/types"
)

// JSONPriceArray stores per-retailer price quotes as a serialized JSON
// column, which works the same against SQLite and Postgres.
type JSONPriceArray []types.ProductPrice

// Value implements the driver.Valuer interface
func (a JSONPriceArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONPriceArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONPriceArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Product is a row of the seeded price catalog.
type Product struct {
	ID       string         `gorm:"primary_key" json:"id"`
	Name     string         `gorm:"size:255;not null" json:"name"`
	Category string         `gorm:"size:50" json:"category"`
	Image    string         `gorm:"size:16" json:"image"`
	Prices   JSONPriceArray `gorm:"type:json;not null;default:'[]'" json:"prices"`
}

// ToType converts a catalog row into the boundary entity.
func (p *Product) ToType() *types.Product {
	return &types.Product{
		ID:       p.ID,
		Name:     p.Name,
		Category: p.Category,
		Image:    p.Image,
		Prices:   []types.ProductPrice(p.Prices),
	}
}
