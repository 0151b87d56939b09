package restapi

import (
	"io"
	"net/http"

	"github.com/bioquip/bioquip/internal/mediastore"
	"github.com/bioquip/bioquip/internal/webserver"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

func registerUploadRoutes() {
	webserver.ApiPOST("/upload-image", uploadImage)
}

// uploadImage relays a multipart file to the external media host and
// returns the hosted URL.
func uploadImage(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return fail(c, http.StatusBadRequest, "NO_FILE", "No file uploaded")
	}

	f, err := fh.Open()
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_FILE", "Unable to read uploaded file")
	}

	client := mediastore.NewClient(GetApp(c).Config().Media)
	if !client.Configured() {
		return fail(c, http.StatusServiceUnavailable, "MEDIA_UNCONFIGURED", "Media host is not configured")
	}

	url, err := client.Upload(c.Request().Context(), fh.Filename, data)
	if err != nil {
		zap.L().Error("image upload failed", zap.Error(err), zap.String("filename", fh.Filename))
		return fail(c, http.StatusBadGateway, "UPLOAD_FAILED", "Upload failed")
	}

	return ok(c, map[string]interface{}{
		"success": true,
		"url":     url,
	})
}
