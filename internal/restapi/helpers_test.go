package restapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/bioquip/bioquip/config"
	"github.com/bioquip/bioquip/internal/app"
	"github.com/bioquip/bioquip/internal/domain"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "restapi.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(domain.Tables...))
	return db
}

// newTestContext builds an echo context carrying the database handle and
// application context the way the web server middleware does.
func newTestContext(t *testing.T, db *gorm.DB, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	cfg := config.DefaultAppConfig
	return newTestContextReq(t, db, cfg, req)
}

// newTestContextReq is the general form for tests needing a custom request
// (multipart bodies) or a non-default config (media host endpoint).
func newTestContextReq(t *testing.T, db *gorm.DB, cfg config.AppConfig, req *http.Request) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	c := echo.New().NewContext(req, rec)

	a := app.NewApplication(&cfg)
	a.OverrideDB(db)
	c.Set(webserver.ContextKeyDB, db)
	c.Set(webserver.ContextKeyApp, a)
	return c, rec
}

func cast64(id int64) string {
	return strconv.FormatInt(id, 10)
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
