package restapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bioquip/bioquip/internal/catalog"
	"github.com/bioquip/bioquip/internal/domain"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/bioquip/bioquip/pkg/common"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

func registerProductRoutes() {
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
	webserver.ApiGET("/products/export", exportProducts)
}

// productPayload accepts the loosely typed bodies the admin console sends.
// Numeric fields arrive as numbers or strings and are coerced; list fields
// default to empty when absent or malformed.
type productPayload struct {
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Price       interface{} `json:"price"`
	Stock       interface{} `json:"stock"`
	Description string      `json:"description"`
	Advantages  string      `json:"advantages"`
	Uses        string      `json:"uses"`
	Tags        interface{} `json:"tags"`
	Features    interface{} `json:"features"`
	Images      interface{} `json:"images"`
}

// apply writes the normalized payload over every mutable field of the
// product: full-replace semantics, omitted fields become their defaults.
func (p *productPayload) apply(product *domain.Product) {
	product.Name = p.Name
	product.Category = p.Category
	product.Price = coerceNonNegativeFloat(p.Price)
	product.Stock = coerceNonNegativeInt(p.Stock)
	product.Description = p.Description
	product.Advantages = p.Advantages
	product.Uses = p.Uses
	product.Tags = toStringList(p.Tags)
	product.Features = toStringList(p.Features)
	product.Images = toStringList(p.Images)
}

func coerceNonNegativeFloat(v interface{}) float64 {
	f := cast.ToFloat64(v)
	if f < 0 {
		return 0
	}
	return f
}

func coerceNonNegativeInt(v interface{}) int {
	i := cast.ToInt(v)
	if i < 0 {
		return 0
	}
	return i
}

func toStringList(v interface{}) []string {
	switch val := v.(type) {
	case []string:
		return val
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, cast.ToString(item))
		}
		return out
	default:
		return []string{}
	}
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}

	now := time.Now()
	product := domain.Product{
		ID:        common.UUIDint64(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	payload.apply(&product)

	repo := catalog.NewGormProductRepository(GetDB(c))
	if err := repo.Create(c.Request().Context(), &product); err != nil {
		zap.L().Error("failed to create product", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create product")
	}
	zap.L().Info("product created",
		zap.Int64("id", product.ID),
		zap.Int64("admin", webserver.SessionAdminID(c)))
	return ok(c, map[string]interface{}{
		"success": true,
		"message": "Product created successfully",
		"product": product,
	})
}

// updateProduct replaces the stored record with the submitted body. Fields
// the caller omits are cleared to defaults, not preserved, so partial-edit
// clients must round-trip the full record.
func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}

	repo := catalog.NewGormProductRepository(GetDB(c))
	product, err := repo.GetByID(c.Request().Context(), id)
	if err != nil {
		zap.L().Error("failed to query product", zap.Error(err), zap.Int64("id", id))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product")
	}
	if product == nil {
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product")
	}

	payload.apply(product)
	product.UpdatedAt = time.Now()

	if err := repo.Replace(c.Request().Context(), product); err != nil {
		zap.L().Error("failed to update product", zap.Error(err), zap.Int64("id", id))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to update product")
	}
	zap.L().Info("product updated",
		zap.Int64("id", id),
		zap.Int64("admin", webserver.SessionAdminID(c)))
	return ok(c, map[string]interface{}{
		"success": true,
		"message": "Product updated successfully",
		"product": product,
	})
}

// deleteProduct removes the record; deleting an absent ID still succeeds.
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	repo := catalog.NewGormProductRepository(GetDB(c))
	if err := repo.Delete(c.Request().Context(), id); err != nil {
		zap.L().Error("failed to delete product", zap.Error(err), zap.Int64("id", id))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to delete product")
	}
	zap.L().Info("product deleted",
		zap.Int64("id", id),
		zap.Int64("admin", webserver.SessionAdminID(c)))
	return ok(c, map[string]interface{}{
		"success": true,
		"message": "Product deleted successfully",
	})
}

type productExportRow struct {
	ID          int64   `csv:"id"`
	Name        string  `csv:"name"`
	Category    string  `csv:"category"`
	Price       float64 `csv:"price"`
	Stock       int     `csv:"stock"`
	Description string  `csv:"description"`
	Tags        string  `csv:"tags"`
	Features    string  `csv:"features"`
	Images      string  `csv:"images"`
	CreatedAt   string  `csv:"created_at"`
}

// exportProducts streams the catalog as CSV for offline editing.
func exportProducts(c echo.Context) error {
	repo := catalog.NewGormProductRepository(GetDB(c))
	products, err := repo.List(c.Request().Context())
	if err != nil {
		zap.L().Error("failed to export products", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}

	rows := make([]productExportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, productExportRow{
			ID:          p.ID,
			Name:        p.Name,
			Category:    p.Category,
			Price:       p.Price,
			Stock:       p.Stock,
			Description: p.Description,
			Tags:        strings.Join(p.Tags, "|"),
			Features:    strings.Join(p.Features, "|"),
			Images:      strings.Join(p.Images, "|"),
			CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		})
	}

	data, err := gocsv.MarshalString(&rows)
	if err != nil {
		zap.L().Error("failed to marshal product csv", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export products")
	}

	filename := fmt.Sprintf("products-%s.csv", time.Now().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Blob(http.StatusOK, "text/csv", []byte(data))
}
