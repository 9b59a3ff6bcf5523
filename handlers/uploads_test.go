package handlers

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/storage"
)

func newUploadRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)
	m := storage.NewManager(store, config.UploadsConfig{MaxBytes: 1 << 20, PublicPrefix: "/api/files", MaxDimension: 1920})

	r := gin.New()
	h := NewUploadHandler(m)
	api := r.Group("/api")
	h.RegisterPublic(api)
	h.RegisterAdmin(api.Group("/admin"))
	return r
}

func multipartBody(t *testing.T, filename string, content []byte, subfolder string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write(content)
	require.NoError(t, err)
	if subfolder != "" {
		require.NoError(t, mw.WriteField("subfolder", subfolder))
	}
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func tinyPNG(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 4, 4))))
	return buf.Bytes()
}

func TestUploadListServeDelete(t *testing.T) {
	r := newUploadRouter(t)

	body, ctype := multipartBody(t, "avatar.png", tinyPNG(t), "hero")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.StoredFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stored))
	require.Equal(t, "avatar.png", stored.OriginalFilename)
	require.Equal(t, "image/png", stored.MimeType)
	require.Equal(t, "/api/files/hero/"+stored.Filename, stored.URL)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, stored.URL, nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "image/png", w.Header().Get("Content-Type"))
	require.Equal(t, tinyPNG(t), w.Body.Bytes())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/admin/files?subfolder=hero", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var files []models.StoredFile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &files))
	require.Len(t, files, 1)
	require.Equal(t, stored.Filename, files[0].Filename)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/files/"+stored.Filename+"?subfolder=hero", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"message":"File deleted successfully"}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/admin/files/"+stored.Filename+"?subfolder=hero", nil))
	require.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, stored.URL, nil))
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	r := newUploadRouter(t)
	body, ctype := multipartBody(t, "script.sh", []byte("#!/bin/sh\necho hi\n"), "")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "File type not allowed")
}

func TestUploadRequiresFile(t *testing.T) {
	r := newUploadRouter(t)
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("subfolder", "hero"))
	require.NoError(t, mw.Close())
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadFarOverCapIsTooLarge(t *testing.T) {
	r := newUploadRouter(t)
	big := append(tinyPNG(t), bytes.Repeat([]byte{0}, 3<<20)...)
	body, ctype := multipartBody(t, "huge.png", big, "projects")
	req := httptest.NewRequest(http.MethodPost, "/api/admin/upload", body)
	req.Header.Set("Content-Type", ctype)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	require.JSONEq(t, `{"code":"PAYLOAD_TOO_LARGE","message":"File too large. Maximum size is 1MB"}`, w.Body.String())
}
