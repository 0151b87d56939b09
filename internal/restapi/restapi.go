// Package restapi contains the HTTP handlers for the public catalog API and
// the session-gated admin API. Handlers resolve the database handle and
// application context injected by the web server middleware.
package restapi

import (
	"net/http"

	"github.com/bioquip/bioquip/internal/app"
	"github.com/bioquip/bioquip/internal/catalog"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

// RegisterRoutes attaches every API route to the web server.
func RegisterRoutes() {
	registerAuthRoutes()
	registerCatalogRoutes()
	registerProductRoutes()
	registerContactRoutes()
	registerUploadRoutes()
}

// GetDB returns the request-scoped database handle.
func GetDB(c echo.Context) *gorm.DB {
	db, _ := c.Get(webserver.ContextKeyDB).(*gorm.DB)
	return db
}

// GetApp returns the request-scoped application context.
func GetApp(c echo.Context) app.AppContext {
	a, _ := c.Get(webserver.ContextKeyApp).(app.AppContext)
	return a
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

// fail writes the error envelope. Infrastructure detail is logged at the
// call site and never echoed to the caller.
func fail(c echo.Context, status int, code, message string) error {
	return c.JSON(status, map[string]interface{}{
		"success": false,
		"code":    code,
		"message": message,
	})
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	totalPages := int((total + int64(pageSize) - 1) / int64(pageSize))
	return c.JSON(http.StatusOK, map[string]interface{}{
		"success":    true,
		"items":      items,
		"total":      total,
		"page":       page,
		"totalPages": totalPages,
	})
}

// parsePagination coerces page/limit query parameters, falling back to safe
// defaults instead of rejecting malformed values.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = cast.ToInt(c.QueryParam("page"))
	if page < 1 {
		page = 1
	}
	pageSize = cast.ToInt(c.QueryParam("limit"))
	if pageSize < 1 {
		pageSize = catalog.DefaultPageSize
	}
	if pageSize > catalog.MaxPageSize {
		pageSize = catalog.MaxPageSize
	}
	return page, pageSize
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	return cast.ToInt64E(c.Param(name))
}
