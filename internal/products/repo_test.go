package products

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hanamaged/electro-backend/pkg/db/models"
	"github.com/hanamaged/electro-backend/pkg/pagination"
)

func setupProductsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{})
	require.NoError(t, err)

	categories := `
CREATE TABLE IF NOT EXISTS categories (
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL UNIQUE,
  slug TEXT NOT NULL UNIQUE,
  description TEXT,
  image_url TEXT,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	products := `
CREATE TABLE IF NOT EXISTS products (
  id TEXT PRIMARY KEY,
  category_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT,
  price NUMERIC NOT NULL,
  discount_type TEXT,
  discount_value NUMERIC,
  stock INTEGER NOT NULL DEFAULT 0,
  is_active INTEGER NOT NULL DEFAULT 1,
  is_featured INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	productImages := `
CREATE TABLE IF NOT EXISTS product_images (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  url TEXT NOT NULL,
  alt_text TEXT,
  position INTEGER NOT NULL DEFAULT 0,
  is_primary INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME
);`
	for _, stmt := range []string{
		`DROP TABLE IF EXISTS product_images;`,
		`DROP TABLE IF EXISTS products;`,
		`DROP TABLE IF EXISTS categories;`,
		categories, products, productImages,
	} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedCategory(t *testing.T, db *gorm.DB, name string) *models.Category {
	t.Helper()
	category := &models.Category{
		ID:   uuid.New(),
		Name: name,
		Slug: name,
	}
	require.NoError(t, db.Create(category).Error)
	return category
}

func seedProduct(t *testing.T, db *gorm.DB, categoryID uuid.UUID, name string, stock int, active bool) *models.Product {
	t.Helper()
	product := &models.Product{
		ID:         uuid.New(),
		CategoryID: categoryID,
		Name:       name,
		Price:      decimal.RequireFromString("19.99"),
		Stock:      stock,
		IsActive:   active,
	}
	require.NoError(t, db.Create(product).Error)
	return product
}

func TestListFiltersActiveAndSearch(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "peripherals")

	seedProduct(t, db, category.ID, "USB hub", 5, true)
	seedProduct(t, db, category.ID, "Mechanical keyboard", 3, true)
	seedProduct(t, db, category.ID, "USB microphone", 2, false)

	rows, total, err := repo.List(context.Background(), ListFilter{
		ActiveOnly: true,
		Search:     "usb",
		Page:       pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "USB hub", rows[0].Name)
}

func TestListScopesToCategory(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	peripherals := seedCategory(t, db, "peripherals")
	audio := seedCategory(t, db, "audio")

	seedProduct(t, db, peripherals.ID, "USB hub", 5, true)
	seedProduct(t, db, audio.ID, "Studio headphones", 4, true)

	rows, total, err := repo.List(context.Background(), ListFilter{
		CategoryID: &audio.ID,
		Page:       pagination.Params{Page: 1, Limit: 10},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, rows, 1)
	assert.Equal(t, "Studio headphones", rows[0].Name)
}

func TestDecrementStockGuardsOversell(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "peripherals")
	product := seedProduct(t, db, category.ID, "USB hub", 3, true)

	require.NoError(t, repo.DecrementStock(db, product.ID, 2))

	err := repo.DecrementStock(db, product.ID, 2)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Stock)
}

func TestReplaceImagesSwapsGallery(t *testing.T) {
	db := setupProductsTestDB(t)
	repo := NewRepository(db)
	category := seedCategory(t, db, "peripherals")
	product := seedProduct(t, db, category.ID, "USB hub", 3, true)

	first := []models.ProductImage{
		{ID: uuid.New(), ProductID: product.ID, URL: "https://cdn.example.com/hub-a.jpg", Position: 0},
		{ID: uuid.New(), ProductID: product.ID, URL: "https://cdn.example.com/hub-b.jpg", Position: 1},
	}
	require.NoError(t, repo.ReplaceImages(context.Background(), product.ID, first))

	second := []models.ProductImage{
		{ID: uuid.New(), ProductID: product.ID, URL: "https://cdn.example.com/hub-c.jpg", Position: 0},
	}
	require.NoError(t, repo.ReplaceImages(context.Background(), product.ID, second))

	reloaded, err := repo.FindByID(context.Background(), product.ID)
	require.NoError(t, err)
	require.Len(t, reloaded.Images, 1)
	assert.Equal(t, "https://cdn.example.com/hub-c.jpg", reloaded.Images[0].URL)
}
