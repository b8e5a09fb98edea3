package products

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/binhminh2409/WebXeDapApi/internal/storage"
)

func setupSvc(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&Category{}, &Brand{}, &Product{}, &Stock{}))

	store := storage.NewLocal(t.TempDir(), "/uploads")
	return NewService(db, store), db
}

func seedCatalog(t *testing.T, db *gorm.DB) (Category, Brand) {
	t.Helper()
	cat := Category{Name: "Mountain Bikes", Collection: "trail"}
	require.NoError(t, db.Create(&cat).Error)
	brand := Brand{Name: "Giant"}
	require.NoError(t, db.Create(&brand).Error)
	return cat, brand
}

func createProduct(t *testing.T, svc *Service, cat Category, brand Brand, name, price string) Product {
	t.Helper()
	p, err := svc.Create(context.Background(), CreateInput{
		Name:          name,
		Price:         decimal.RequireFromString(price),
		Quantity:      10,
		CategoryID:    cat.ID,
		BrandID:       brand.ID,
		Image:         bytes.NewReader([]byte("fake image bytes")),
		ImageFilename: "photo.png",
		ImageType:     "image/png",
	})
	require.NoError(t, err)
	return p
}

func TestCreateProduct(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	p := createProduct(t, svc, cat, brand, "Talon 29", "749.00")

	assert.NotZero(t, p.ID)
	assert.Equal(t, StatusAvailable, p.Status)
	assert.Equal(t, cat.Name, p.CategoryName)
	assert.Equal(t, brand.Name, p.BrandName)

	// Image keys follow the Category/date/uuid layout.
	assert.Regexp(t, regexp.MustCompile(`^Product/\d{2}-\d{2}-\d{4}/[0-9a-f-]{36}\.png$`), p.ImageKey)

	var s Stock
	require.NoError(t, db.First(&s, "product_id = ?", p.ID).Error)
	assert.Equal(t, 10, s.Quantity)

	b, err := svc.ImageBytes(context.Background(), p.ImageKey)
	require.NoError(t, err)
	assert.Equal(t, []byte("fake image bytes"), b)
}

func TestCreateProductMissingReferences(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	_, err := svc.Create(context.Background(), CreateInput{
		Name: "x", Price: decimal.RequireFromString("1.00"),
		CategoryID: 999, BrandID: brand.ID,
		Image: bytes.NewReader(nil), ImageFilename: "a.png",
	})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = svc.Create(context.Background(), CreateInput{
		Name: "x", Price: decimal.RequireFromString("1.00"),
		CategoryID: cat.ID, BrandID: 999,
		Image: bytes.NewReader(nil), ImageFilename: "a.png",
	})
	assert.ErrorIs(t, err, ErrBrandNotFound)

	_, err = svc.Create(context.Background(), CreateInput{
		Name: "x", Price: decimal.RequireFromString("1.00"),
		CategoryID: cat.ID, BrandID: brand.ID,
	})
	assert.ErrorIs(t, err, ErrImageRequired)
}

func TestSearchKeyDedupesByName(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	createProduct(t, svc, cat, brand, "Talon 29", "749.00")
	createProduct(t, svc, cat, brand, "Talon 29", "749.00") // color/size variant
	createProduct(t, svc, cat, brand, "Marlin 7", "899.75")

	items, err := svc.Repo().SearchKey(context.Background(), "talon")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Talon 29", items[0].Name)

	// brand name matches too
	items, err = svc.Repo().SearchKey(context.Background(), "Giant")
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestByPriceRange(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	other := Brand{Name: "Trek"}
	require.NoError(t, db.Create(&other).Error)

	createProduct(t, svc, cat, brand, "Cheap", "100.00")
	createProduct(t, svc, cat, brand, "Mid", "500.00")
	createProduct(t, svc, cat, other, "Mid Trek", "550.00")
	createProduct(t, svc, cat, brand, "Expensive", "2000.00")

	items, err := svc.Repo().ByPriceRange(context.Background(), PriceRangeParams{
		Category: cat.Name,
		Min:      decimal.RequireFromString("200.00"),
		Max:      decimal.RequireFromString("1000.00"),
	})
	require.NoError(t, err)
	assert.Len(t, items, 2)

	items, err = svc.Repo().ByPriceRange(context.Background(), PriceRangeParams{
		Category: cat.Name,
		Min:      decimal.RequireFromString("200.00"),
		Max:      decimal.RequireFromString("1000.00"),
		Brand:    "trek",
	})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Mid Trek", items[0].Name)
}

func TestByCollection(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	createProduct(t, svc, cat, brand, "Talon 29", "749.00")

	items, err := svc.Repo().ByCollection(context.Background(), "trail")
	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.Repo().ByCollection(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestDiscounted(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	p := createProduct(t, svc, cat, brand, "Talon 29", "749.00")
	createProduct(t, svc, cat, brand, "Marlin 7", "899.75")

	sale := decimal.RequireFromString("599.00")
	_, err := svc.Update(context.Background(), p.ID, UpdateInput{PriceHasDecreased: &sale})
	require.NoError(t, err)

	items, err := svc.Repo().Discounted(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, p.ID, items[0].ID)
}

func TestUpdateProduct(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	p := createProduct(t, svc, cat, brand, "Talon 29", "749.00")

	name := "Talon 29 v2"
	price := decimal.RequireFromString("799.00")
	status := StatusOutOfStock
	updated, err := svc.Update(context.Background(), p.ID, UpdateInput{
		Name:   &name,
		Price:  &price,
		Status: &status,
	})
	require.NoError(t, err)
	assert.Equal(t, "Talon 29 v2", updated.Name)
	assert.True(t, updated.Price.Equal(price))
	assert.Equal(t, StatusOutOfStock, updated.Status)
	// untouched fields survive
	assert.Equal(t, cat.Name, updated.CategoryName)

	_, err = svc.Update(context.Background(), 9999, UpdateInput{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteProduct(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	p := createProduct(t, svc, cat, brand, "Talon 29", "749.00")

	require.NoError(t, svc.Delete(context.Background(), p.ID))

	_, err := svc.Repo().Get(context.Background(), p.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&Stock{}).Where("product_id = ?", p.ID).Count(&count).Error)
	assert.EqualValues(t, 0, count)

	assert.ErrorIs(t, svc.Delete(context.Background(), p.ID), ErrNotFound)
}

func TestListOrdering(t *testing.T) {
	svc, db := setupSvc(t)
	cat, brand := seedCatalog(t, db)

	first := createProduct(t, svc, cat, brand, "Old", "10.00")
	require.NoError(t, db.Model(&Product{}).Where("id = ?", first.ID).
		Update("updated_at", time.Now().Add(-time.Hour)).Error)
	createProduct(t, svc, cat, brand, "New", "20.00")

	items, err := svc.Repo().List(context.Background(), 10, 0)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "New", items[0].Name)
}
