package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/bioquip/bioquip/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "catalog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&domain.Product{}))
	return db
}

var seedSeq int64

func seedProduct(t *testing.T, db *gorm.DB, p domain.Product) domain.Product {
	t.Helper()
	seedSeq++
	if p.ID == 0 {
		p.ID = seedSeq
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().Add(-time.Duration(1000-seedSeq) * time.Minute)
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = p.CreatedAt
	}
	if p.Tags == nil {
		p.Tags = []string{}
	}
	if p.Features == nil {
		p.Features = []string{}
	}
	if p.Images == nil {
		p.Images = []string{}
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestSearchMatchesNameCaseInsensitive(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	seedProduct(t, db, domain.Product{Name: "X-Ray Unit", Category: "Imaging"})
	seedProduct(t, db, domain.Product{Name: "Infusion Pump", Category: "Therapy"})

	for _, q := range []string{"x-ray", "X-RAY", "Ray", "rAy"} {
		res, err := svc.Search(context.Background(), q, "", 1, 10)
		require.NoError(t, err, q)
		require.Len(t, res.Items, 1, q)
		assert.Equal(t, "X-Ray Unit", res.Items[0].Name, q)
	}
}

func TestSearchMatchesTagsAndFeatures(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	seedProduct(t, db, domain.Product{
		Name:     "Surgical Table",
		Category: "Surgery",
		Tags:     []string{"hydraulic", "stainless"},
	})
	seedProduct(t, db, domain.Product{
		Name:     "Patient Monitor",
		Category: "Monitoring",
		Features: []string{"SpO2 tracking", "ECG waveform"},
	})

	res, err := svc.Search(context.Background(), "hydraulic", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Surgical Table", res.Items[0].Name)

	res, err = svc.Search(context.Background(), "ecg", "", 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Patient Monitor", res.Items[0].Name)
}

func TestSearchCombinesTextAndCategory(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	seedProduct(t, db, domain.Product{Name: "Ultrasound Scanner", Category: "Imaging"})
	seedProduct(t, db, domain.Product{Name: "Ultrasound Cleaner", Category: "Sterilization"})

	res, err := svc.Search(context.Background(), "ultrasound", "Imaging", 1, 10)
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Ultrasound Scanner", res.Items[0].Name)

	// category match is exact, not substring
	res, err = svc.Search(context.Background(), "ultrasound", "Imag", 1, 10)
	require.NoError(t, err)
	assert.Empty(t, res.Items)
}

func TestSearchEmptyQueryMatchesEverything(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	for i := 0; i < 5; i++ {
		seedProduct(t, db, domain.Product{Name: fmt.Sprintf("Device %d", i), Category: "General"})
	}

	res, err := svc.Search(context.Background(), "", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Total)

	res, err = svc.Search(context.Background(), "   ", "", 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 5, res.Total)
}

func TestSearchPagination(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	for i := 0; i < 14; i++ {
		seedProduct(t, db, domain.Product{
			Name:     fmt.Sprintf("Gynecology Chair %d", i),
			Category: "Gynecology",
		})
	}
	seedProduct(t, db, domain.Product{Name: "Dental Chair", Category: "Dental"})

	res, err := svc.Search(context.Background(), "gynecology", "Gynecology", 1, 6)
	require.NoError(t, err)
	assert.Len(t, res.Items, 6)
	assert.Equal(t, 1, res.Page)
	assert.Equal(t, 3, res.TotalPages)
	assert.EqualValues(t, 14, res.Total)

	res, err = svc.Search(context.Background(), "gynecology", "Gynecology", 3, 6)
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	// page past the end: empty items, true totalPages
	res, err = svc.Search(context.Background(), "gynecology", "Gynecology", 9, 6)
	require.NoError(t, err)
	assert.NotNil(t, res.Items)
	assert.Empty(t, res.Items)
	assert.Equal(t, 3, res.TotalPages)
}

func TestSearchNormalizesPageArguments(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	for i := 0; i < 12; i++ {
		seedProduct(t, db, domain.Product{Name: fmt.Sprintf("Item %d", i), Category: "General"})
	}

	res, err := svc.Search(context.Background(), "", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Items, DefaultPageSize)
	assert.Equal(t, 2, res.TotalPages)

	res, err = svc.Search(context.Background(), "", "", -3, -7)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Page)
	assert.Len(t, res.Items, DefaultPageSize)
}

func TestListNewestFirst(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	now := time.Now()
	seedProduct(t, db, domain.Product{Name: "Old", CreatedAt: now.Add(-3 * time.Hour)})
	seedProduct(t, db, domain.Product{Name: "Newest", CreatedAt: now.Add(-time.Hour)})
	seedProduct(t, db, domain.Product{Name: "Middle", CreatedAt: now.Add(-2 * time.Hour)})

	items, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 3)
	assert.Equal(t, "Newest", items[0].Name)
	assert.Equal(t, "Middle", items[1].Name)
	assert.Equal(t, "Old", items[2].Name)
}

func TestCategoriesDistinct(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	seedProduct(t, db, domain.Product{Name: "A", Category: "Imaging"})
	seedProduct(t, db, domain.Product{Name: "B", Category: "Imaging"})
	seedProduct(t, db, domain.Product{Name: "C", Category: "Dental"})
	seedProduct(t, db, domain.Product{Name: "D", Category: ""})

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Dental", "Imaging"}, categories)
}

func TestGetAbsentReturnsNil(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	product, err := svc.Get(context.Background(), 424242)
	require.NoError(t, err)
	assert.Nil(t, product)
}

func TestByCategoryExactMatch(t *testing.T) {
	db := setupDB(t)
	svc := NewServiceDB(db)

	seedProduct(t, db, domain.Product{Name: "A", Category: "Imaging"})
	seedProduct(t, db, domain.Product{Name: "B", Category: "Dental"})

	items, err := svc.ByCategory(context.Background(), "Imaging")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A", items[0].Name)

	items, err = svc.ByCategory(context.Background(), "imaging")
	require.NoError(t, err)
	assert.Empty(t, items)
}
