package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/chef4u/backend/internal/model"
	"github.com/chef4u/backend/internal/types"
)

// Price catalog modes. The product screen supports two comparison
// strategies; config picks one explicitly instead of guessing.
const (
	PriceSourceMock = "mock"
	PriceSourceLive = "live"
)

// MockPriceCatalog serves the seeded product dataset from the database.
type MockPriceCatalog struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewMockPriceCatalog migrates the product table and seeds it if empty.
func NewMockPriceCatalog(db *gorm.DB, logger *zap.Logger) (*MockPriceCatalog, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := db.AutoMigrate(&model.Product{}); err != nil {
		return nil, fmt.Errorf("failed to migrate product catalog: %w", err)
	}

	var count int64
	if err := db.Model(&model.Product{}).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}
	if count == 0 {
		if err := db.Create(seedProducts()).Error; err != nil {
			return nil, fmt.Errorf("failed to seed product catalog: %w", err)
		}
		logger.Info("seeded mock price catalog", zap.Int("products", len(seedProducts())))
	}

	return &MockPriceCatalog{db: db, logger: logger}, nil
}

// Search finds the first product whose name or category contains the query,
// case-insensitively. No match is ErrProductNotFound, never a failure.
func (c *MockPriceCatalog) Search(ctx context.Context, query string) (*types.Product, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"

	var row model.Product
	err := c.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern).
		Order("name").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to query product catalog: %w", err)
	}
	return row.ToType(), nil
}

// LivePriceCatalog delegates price searches to the generation gateway.
type LivePriceCatalog struct {
	gateway GenerationGateway
}

// NewLivePriceCatalog creates a catalog backed by live generation.
func NewLivePriceCatalog(gateway GenerationGateway) *LivePriceCatalog {
	return &LivePriceCatalog{gateway: gateway}
}

// Search asks the gateway to estimate prices for the query.
func (c *LivePriceCatalog) Search(ctx context.Context, query string) (*types.Product, error) {
	return c.gateway.SearchProductPrices(ctx, query)
}

// seedProducts is the static dataset the comparison screen ships with.
func seedProducts() []*model.Product {
	return []*model.Product{
		{
			ID: "1", Name: "Leche Entera 1L", Category: "Lácteos", Image: "🥛",
			Prices: model.JSONPriceArray{
				{Supermarket: "Mercadona", Price: 0.95, Logo: "🟢"},
				{Supermarket: "Carrefour", Price: 1.05, Logo: "🔵"},
				{Supermarket: "Lidl", Price: 0.91, Logo: "🟡"},
				{Supermarket: "Dia", Price: 0.99, Logo: "🔴"},
			},
		},
		{
			ID: "2", Name: "Huevos L (Docena)", Category: "Huevos", Image: "🥚",
			Prices: model.JSONPriceArray{
				{Supermarket: "Mercadona", Price: 2.10, Logo: "🟢"},
				{Supermarket: "Carrefour", Price: 2.35, Logo: "🔵"},
				{Supermarket: "Lidl", Price: 1.99, Logo: "🟡"},
			},
		},
		{
			ID: "3", Name: "Aceite de Oliva Virgen Extra 1L", Category: "Aceites", Image: "🫒",
			Prices: model.JSONPriceArray{
				{Supermarket: "Mercadona", Price: 8.50, Logo: "🟢"},
				{Supermarket: "Carrefour", Price: 8.95, Logo: "🔵"},
				{Supermarket: "Lidl", Price: 8.45, Logo: "🟡"},
				{Supermarket: "Alcampo", Price: 8.25, Logo: "🔴"},
			},
		},
		{
			ID: "4", Name: "Arroz Redondo 1kg", Category: "Despensa", Image: "🍚",
			Prices: model.JSONPriceArray{
				{Supermarket: "Mercadona", Price: 1.30, Logo: "🟢"},
				{Supermarket: "Carrefour", Price: 1.45, Logo: "🔵"},
				{Supermarket: "Lidl", Price: 1.25, Logo: "🟡"},
			},
		},
		{
			ID: "5", Name: "Pechuga de Pollo 1kg", Category: "Carnicería", Image: "🍗",
			Prices: model.JSONPriceArray{
				{Supermarket: "Mercadona", Price: 6.95, Logo: "🟢"},
				{Supermarket: "Carrefour", Price: 7.50, Logo: "🔵"},
				{Supermarket: "Lidl", Price: 6.80, Logo: "🟡"},
				{Supermarket: "Carnicería local", Price: 8.00, Logo: "🥩"},
			},
		},
		{
			ID: "6", Name: "Tomate Frito", Category: "Despensa", Image: "🥫",
			Prices: model.JSONPriceArray{
				{Supermarket: "Mercadona", Price: 0.85, Logo: "🟢"},
				{Supermarket: "Carrefour", Price: 0.99, Logo: "🔵"},
				{Supermarket: "Lidl", Price: 0.80, Logo: "🟡"},
			},
		},
	}
}
