package catalog

import (
	"context"
	"errors"
	"strings"

	"github.com/bioquip/bioquip/internal/domain"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// ProductRepository handles database operations for catalog products
type ProductRepository interface {
	// Create inserts a new product record
	Create(ctx context.Context, p *domain.Product) error

	// Replace overwrites an existing product record in full
	Replace(ctx context.Context, p *domain.Product) error

	// GetByID retrieves a product by ID; a missing ID yields (nil, nil)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)

	// Delete removes a product; deleting a missing ID is not an error
	Delete(ctx context.Context, id int64) error

	// List retrieves all products, newest first
	List(ctx context.Context) ([]domain.Product, error)

	// ListByCategory retrieves products with an exact category match
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)

	// Search retrieves matching products with pagination and the unpaginated
	// match count. The query is a single case-insensitive substring pattern
	// tested against name, category, description, tags and features. LIKE
	// metacharacters (% and _) in the query pass through unescaped, so they
	// act as wildcards rather than literals.
	Search(ctx context.Context, query, category string, offset, limit int) ([]domain.Product, int64, error)

	// Categories retrieves the distinct non-empty category values
	Categories(ctx context.Context) ([]string, error)
}

// GormProductRepository is the GORM implementation of ProductRepository
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GORM-based repository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

func (r *GormProductRepository) Create(ctx context.Context, p *domain.Product) error {
	return pkgerrors.Wrap(r.db.WithContext(ctx).Create(p).Error, "create product")
}

func (r *GormProductRepository) Replace(ctx context.Context, p *domain.Product) error {
	return pkgerrors.Wrap(r.db.WithContext(ctx).Save(p).Error, "replace product")
}

func (r *GormProductRepository) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	var p domain.Product
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, pkgerrors.Wrap(err, "get product")
	}
	return &p, nil
}

func (r *GormProductRepository) Delete(ctx context.Context, id int64) error {
	return pkgerrors.Wrap(r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Product{}).Error, "delete product")
}

func (r *GormProductRepository) List(ctx context.Context) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, pkgerrors.Wrap(err, "list products")
}

func (r *GormProductRepository) ListByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	var rows []domain.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at DESC, id DESC").
		Find(&rows).Error
	return rows, pkgerrors.Wrap(err, "list products by category")
}

func (r *GormProductRepository) Search(ctx context.Context, query, category string, offset, limit int) ([]domain.Product, int64, error) {
	db := r.db.WithContext(ctx).Model(&domain.Product{})

	if q := strings.TrimSpace(query); q != "" {
		if strings.EqualFold(db.Name(), "postgres") { //nolint:staticcheck
			pat := "%" + q + "%"
			db = db.Where("name ILIKE ? OR category ILIKE ? OR description ILIKE ? OR tags ILIKE ? OR features ILIKE ?",
				pat, pat, pat, pat, pat)
		} else {
			pat := "%" + strings.ToLower(q) + "%"
			db = db.Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ? OR LOWER(description) LIKE ? OR LOWER(tags) LIKE ? OR LOWER(features) LIKE ?",
				pat, pat, pat, pat, pat)
		}
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "count products")
	}

	var rows []domain.Product
	if err := db.Order("created_at DESC, id DESC").Offset(offset).Limit(limit).Find(&rows).Error; err != nil {
		return nil, 0, pkgerrors.Wrap(err, "search products")
	}
	return rows, total, nil
}

func (r *GormProductRepository) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.WithContext(ctx).
		Model(&domain.Product{}).
		Where("category <> ''").
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	return categories, pkgerrors.Wrap(err, "list categories")
}
