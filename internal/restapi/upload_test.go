package restapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bioquip/bioquip/config"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartFileRequest(t *testing.T, target, field, filename string, data []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
	return req
}

func TestUploadImageNoFile(t *testing.T) {
	db := setupDB(t)

	c, rec := newTestContext(t, db, http.MethodPost, "/api/upload-image", "")
	require.NoError(t, uploadImage(c))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "NO_FILE", resp["code"])
}

func TestUploadImageMediaUnconfigured(t *testing.T) {
	db := setupDB(t)

	req := multipartFileRequest(t, "/api/upload-image", "file", "scan.png", []byte("png-bytes"))
	c, rec := newTestContextReq(t, db, config.DefaultAppConfig, req)
	require.NoError(t, uploadImage(c))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "MEDIA_UNCONFIGURED", resp["code"])
}

func TestUploadImageMediaHostRejects(t *testing.T) {
	db := setupDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid upload preset"}}`))
	}))
	defer srv.Close()

	cfg := config.DefaultAppConfig
	cfg.Media.UploadURL = srv.URL
	cfg.Media.Preset = "unsigned"

	req := multipartFileRequest(t, "/api/upload-image", "file", "scan.png", []byte("png-bytes"))
	c, rec := newTestContextReq(t, db, cfg, req)
	require.NoError(t, uploadImage(c))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, "UPLOAD_FAILED", resp["code"])
}

func TestUploadImageSuccess(t *testing.T) {
	db := setupDB(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"secure_url":"https://media.example.com/products/scan.png"}`))
	}))
	defer srv.Close()

	cfg := config.DefaultAppConfig
	cfg.Media.UploadURL = srv.URL
	cfg.Media.Preset = "unsigned"

	req := multipartFileRequest(t, "/api/upload-image", "file", "scan.png", []byte("png-bytes"))
	c, rec := newTestContextReq(t, db, cfg, req)
	require.NoError(t, uploadImage(c))

	require.Equal(t, http.StatusOK, rec.Code)
	resp := decodeBody(t, rec)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "https://media.example.com/products/scan.png", resp["url"])
}
