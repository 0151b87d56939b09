package catalog

import (
	"context"

	"github.com/bioquip/bioquip/internal/domain"
	"gorm.io/gorm"
)

const (
	// DefaultPageSize applies when a caller omits or mangles the limit.
	DefaultPageSize = 10
	// MaxPageSize caps caller-supplied limits.
	MaxPageSize = 100
)

// SearchResult is one page of matching products plus the page arithmetic
// computed from the unpaginated match count.
type SearchResult struct {
	Items      []domain.Product `json:"items"`
	Page       int              `json:"page"`
	TotalPages int              `json:"totalPages"`
	Total      int64            `json:"total"`
}

// Service answers catalog read queries. It is read-only and safe for
// concurrent use; all state lives in the injected repository.
type Service struct {
	repo ProductRepository
}

func NewService(repo ProductRepository) *Service {
	return &Service{repo: repo}
}

// NewServiceDB is a convenience constructor over a GORM handle.
func NewServiceDB(db *gorm.DB) *Service {
	return NewService(NewGormProductRepository(db))
}

// Search returns the requested page of products matching the free-text
// query and optional exact category. An empty query matches everything.
// Page and pageSize are normalized rather than rejected: values below 1
// fall back to 1 and DefaultPageSize, oversized limits clamp to
// MaxPageSize. A page past the end returns an empty item list while
// TotalPages still reflects the true match count.
func (s *Service) Search(ctx context.Context, query, category string, page, pageSize int) (*SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	items, total, err := s.repo.Search(ctx, query, category, (page-1)*pageSize, pageSize)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}

	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return &SearchResult{
		Items:      items,
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// List returns every product, newest first.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

// Get returns the product with the given ID, or nil when absent.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// ByCategory returns products whose category matches exactly.
func (s *Service) ByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	items, err := s.repo.ListByCategory(ctx, category)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Product{}
	}
	return items, nil
}

// Categories returns the distinct category values present in the catalog.
func (s *Service) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if categories == nil {
		categories = []string{}
	}
	return categories, nil
}
