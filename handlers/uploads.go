package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/storage"
	"github.com/folio/folio/pkg/logger"
)

// UploadHandler exposes the upload manager over HTTP.
type UploadHandler struct {
	files *storage.Manager
}

func NewUploadHandler(m *storage.Manager) *UploadHandler { return &UploadHandler{files: m} }

// RegisterAdmin mounts upload, listing and deletion on an authenticated group.
func (h *UploadHandler) RegisterAdmin(admin *gin.RouterGroup) {
	admin.POST("/upload", h.Upload)
	admin.GET("/files", h.List)
	admin.DELETE("/files/:filename", h.Delete)
}

// RegisterPublic serves stored files under /files.
func (h *UploadHandler) RegisterPublic(api *gin.RouterGroup) {
	api.GET("/files/*path", h.Serve)
}

func (h *UploadHandler) Upload(c *gin.Context) {
	const op = "Upload"
	// multipart overhead on top of the file itself
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.files.MaxBytes()+1<<20)
	fh, err := c.FormFile("file")
	var tooBig *http.MaxBytesError
	if errors.As(err, &tooBig) {
		apperr.Respond(c, h.files.TooLarge(op))
		return
	}
	if err != nil {
		apperr.Respond(c, apperr.E(apperr.CodeInvalidArgument, op, "file is required", err))
		return
	}
	f, err := fh.Open()
	if err != nil {
		apperr.Respond(c, apperr.E(apperr.CodeInvalidArgument, op, "could not read file", err))
		return
	}
	defer f.Close()

	stored, err := h.files.Save(c.Request.Context(), fh.Filename, f, c.PostForm("subfolder"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	logger.Infof("stored upload %s (%d bytes) at %s", stored.OriginalFilename, stored.Size, stored.URL)
	c.JSON(http.StatusOK, stored)
}

func (h *UploadHandler) List(c *gin.Context) {
	files, err := h.files.List(c.Request.Context(), c.Query("subfolder"))
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, files)
}

func (h *UploadHandler) Delete(c *gin.Context) {
	if err := h.files.Delete(c.Request.Context(), c.Param("filename"), c.Query("subfolder")); err != nil {
		apperr.Respond(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse{Message: "File deleted successfully"})
}

// Serve streams a stored file. Stores that presign (MinIO) redirect instead.
func (h *UploadHandler) Serve(c *gin.Context) {
	p := c.Param("path")
	if ps, ok := h.files.Store().(storage.Presigner); ok {
		// resolve first so unknown paths still 404
		rc, obj, err := h.files.Open(c.Request.Context(), p)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		rc.Close()
		u, err := ps.PresignedURL(c.Request.Context(), obj.Key, 15*time.Minute)
		if err == nil {
			c.Redirect(http.StatusTemporaryRedirect, u)
			return
		}
		logger.Warnf("presign %s failed, streaming instead: %v", obj.Key, err)
	}

	rc, obj, err := h.files.Open(c.Request.Context(), p)
	if err != nil {
		apperr.Respond(c, err)
		return
	}
	defer rc.Close()
	ctype := obj.ContentType
	if ctype == "" {
		ctype = "application/octet-stream"
	}
	c.Header("Content-Type", ctype)
	c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		logger.Debugf("serving %s interrupted: %v", p, err)
	}
}
