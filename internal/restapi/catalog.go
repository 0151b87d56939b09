package restapi

import (
	"net/http"
	"net/url"

	"github.com/bioquip/bioquip/internal/catalog"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func registerCatalogRoutes() {
	webserver.PubGET("/products", listProducts)
	webserver.PubGET("/products/search", searchProducts)
	webserver.PubGET("/products/category/:category", productsByCategory)
	webserver.PubGET("/products/:id", getProduct)
	webserver.PubGET("/categories", listCategories)
}

// listProducts returns the full catalog, newest first.
func listProducts(c echo.Context) error {
	svc := catalog.NewServiceDB(GetDB(c))
	products, err := svc.List(c.Request().Context())
	if err != nil {
		zap.L().Error("failed to list products", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}
	return ok(c, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

// searchProducts runs the free-text catalog search with pagination. A page
// past the last one returns an empty product list while totalPages still
// reflects the true match count.
func searchProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	q := c.QueryParam("q")
	category := c.QueryParam("category")

	svc := catalog.NewServiceDB(GetDB(c))
	res, err := svc.Search(c.Request().Context(), q, category, page, pageSize)
	if err != nil {
		zap.L().Error("failed to search products", zap.Error(err), zap.String("q", q))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}
	return ok(c, map[string]interface{}{
		"success":    true,
		"page":       res.Page,
		"totalPages": res.TotalPages,
		"products":   res.Items,
	})
}

// getProduct returns one product; an absent ID yields product: null rather
// than an error, a malformed ID is rejected outright.
func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
	}
	svc := catalog.NewServiceDB(GetDB(c))
	product, err := svc.Get(c.Request().Context(), id)
	if err != nil {
		zap.L().Error("failed to get product", zap.Error(err), zap.Int64("id", id))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query product")
	}
	return ok(c, map[string]interface{}{
		"success": true,
		"product": product,
	})
}

func productsByCategory(c echo.Context) error {
	category := c.Param("category")
	if decoded, err := url.PathUnescape(category); err == nil {
		category = decoded
	}
	svc := catalog.NewServiceDB(GetDB(c))
	products, err := svc.ByCategory(c.Request().Context(), category)
	if err != nil {
		zap.L().Error("failed to list products by category", zap.Error(err), zap.String("category", category))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query products")
	}
	return ok(c, map[string]interface{}{
		"success":  true,
		"products": products,
	})
}

func listCategories(c echo.Context) error {
	svc := catalog.NewServiceDB(GetDB(c))
	categories, err := svc.Categories(c.Request().Context())
	if err != nil {
		zap.L().Error("failed to list categories", zap.Error(err))
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to query categories")
	}
	return ok(c, map[string]interface{}{
		"success":    true,
		"categories": categories,
	})
}
