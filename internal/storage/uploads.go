package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/config"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/pkg/logger"
	"github.com/folio/folio/pkg/metrics"
)

// AllowedTypes are the sniffed content types accepted for upload.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp", "application/pdf"}

var (
	folderRe = regexp.MustCompile(`^[A-Za-z0-9_-]*$`)
	nameRe   = regexp.MustCompile(`^[A-Za-z0-9_.-]+$`)
)

// Manager validates uploads and places them in a Storage.
type Manager struct {
	store    Storage
	maxBytes int64
	prefix   string
	maxDim   int
	newName  func() string
}

func NewManager(store Storage, cfg config.UploadsConfig) *Manager {
	prefix := strings.TrimSuffix(cfg.PublicPrefix, "/")
	if prefix == "" {
		prefix = "/api/files"
	}
	return &Manager{
		store:    store,
		maxBytes: cfg.MaxBytes,
		prefix:   prefix,
		maxDim:   cfg.MaxDimension,
		newName:  func() string { return uuid.New().String() },
	}
}

// Store exposes the backing storage.
func (m *Manager) Store() Storage { return m.store }

func (m *Manager) MaxBytes() int64 { return m.maxBytes }

// TooLarge is the error reported for any upload over the size cap.
func (m *Manager) TooLarge(op string) error {
	return apperr.E(apperr.CodeTooLarge, op, "File too large. Maximum size is "+humanSize(m.maxBytes), nil)
}

func cleanFolder(op, sub string) (string, error) {
	sub = strings.Trim(strings.TrimSpace(sub), "/")
	if !folderRe.MatchString(sub) {
		return "", apperr.E(apperr.CodeInvalidArgument, op, "Invalid subfolder", nil)
	}
	return sub, nil
}

func (m *Manager) key(sub, name string) string {
	if sub == "" {
		return name
	}
	return sub + "/" + name
}

func (m *Manager) url(key string) string { return m.prefix + "/" + key }

// Save checks size and content type, downsizes large images and stores the
// file under a fresh uuid name.
func (m *Manager) Save(ctx context.Context, originalName string, r io.Reader, subfolder string) (*models.StoredFile, error) {
	const op = "storage.Save"
	sub, err := cleanFolder(op, subfolder)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(r, m.maxBytes+1))
	if err != nil {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "Could not read upload", err)
	}
	if int64(len(data)) > m.maxBytes {
		return nil, m.TooLarge(op)
	}
	if len(data) == 0 {
		return nil, apperr.E(apperr.CodeInvalidArgument, op, "Empty file", nil)
	}

	mt := mimetype.Detect(data)
	allowed := false
	for _, t := range AllowedTypes {
		if mt.Is(t) {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperr.E(apperr.CodeInvalidArgument, op,
			"File type not allowed. Allowed types: "+strings.Join(AllowedTypes, ", "), nil)
	}
	mimeType := strings.SplitN(mt.String(), ";", 2)[0]

	ext := strings.ToLower(path.Ext(originalName))
	if ext == "" || !nameRe.MatchString(ext) {
		ext = mt.Extension()
	}

	if strings.HasPrefix(mimeType, "image/") {
		out, changed, err := Downscale(data, mimeType, m.maxDim)
		switch {
		case err != nil:
			logger.Warnf("image optimisation skipped for %s: %v", originalName, err)
		case changed:
			logger.Debugf("downscaled %s from %d to %d bytes", originalName, len(data), len(out))
			data = out
		case mimeType == "image/webp":
			if w, h, derr := Dimensions(data); derr == nil && (w > m.maxDim || h > m.maxDim) {
				logger.Infof("webp %s is %dx%d, stored without resizing", originalName, w, h)
			}
		}
	}

	name := m.newName() + ext
	key := m.key(sub, name)
	if err := m.store.Put(ctx, key, bytes.NewReader(data), int64(len(data)), mimeType); err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "Could not store file", err)
	}
	metrics.UploadedBytes.Add(float64(len(data)))

	return &models.StoredFile{
		Filename:         name,
		OriginalFilename: originalName,
		Size:             int64(len(data)),
		MimeType:         mimeType,
		URL:              m.url(key),
	}, nil
}

// List returns the files in subfolder, newest first.
func (m *Manager) List(ctx context.Context, subfolder string) ([]models.StoredFile, error) {
	const op = "storage.List"
	sub, err := cleanFolder(op, subfolder)
	if err != nil {
		return nil, err
	}
	objs, err := m.store.List(ctx, sub)
	if err != nil {
		return nil, apperr.E(apperr.CodeInternal, op, "Could not list files", err)
	}
	sort.SliceStable(objs, func(i, j int) bool { return objs[i].Modified.After(objs[j].Modified) })
	out := make([]models.StoredFile, 0, len(objs))
	for _, o := range objs {
		out = append(out, models.StoredFile{
			Filename: path.Base(o.Key),
			Size:     o.Size,
			URL:      m.url(o.Key),
			Modified: o.Modified,
		})
	}
	return out, nil
}

func (m *Manager) Delete(ctx context.Context, filename, subfolder string) error {
	const op = "storage.Delete"
	sub, err := cleanFolder(op, subfolder)
	if err != nil {
		return err
	}
	if !nameRe.MatchString(filename) || strings.Contains(filename, "..") {
		return apperr.E(apperr.CodeInvalidArgument, op, "Invalid filename", nil)
	}
	if err := m.store.Delete(ctx, m.key(sub, filename)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.E(apperr.CodeNotFound, op, "File not found", err)
		}
		return apperr.E(apperr.CodeInternal, op, "Could not delete file", err)
	}
	return nil
}

// Open resolves a public path ("projects/x.png") to its content.
func (m *Manager) Open(ctx context.Context, p string) (io.ReadCloser, *Object, error) {
	const op = "storage.Open"
	p = strings.TrimPrefix(p, "/")
	dir, name := path.Split(p)
	sub, err := cleanFolder(op, dir)
	if err != nil || !nameRe.MatchString(name) || strings.Contains(name, "..") {
		return nil, nil, apperr.E(apperr.CodeNotFound, op, "File not found", nil)
	}
	rc, obj, err := m.store.Open(ctx, m.key(sub, name))
	if errors.Is(err, ErrNotFound) {
		return nil, nil, apperr.E(apperr.CodeNotFound, op, "File not found", err)
	}
	if err != nil {
		return nil, nil, apperr.E(apperr.CodeInternal, op, "Could not read file", err)
	}
	return rc, obj, nil
}

func humanSize(n int64) string {
	const mib = 1 << 20
	if n%mib == 0 {
		return strconv.FormatInt(n/mib, 10) + "MB"
	}
	return strconv.FormatInt(n, 10) + " bytes"
}
