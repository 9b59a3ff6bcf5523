package admin

import (
	"context"
	"io"
)

// Upload subfolders, one per section that has image fields.
const (
	SubfolderHero           = "hero"
	SubfolderProjects       = "projects"
	SubfolderCertifications = "certifications"
	SubfolderTestimonials   = "testimonials"
	SubfolderBlog           = "blog"
)

// Uploader stores a file and returns its public URL; client.Client implements it.
type Uploader interface {
	Upload(ctx context.Context, filename string, r io.Reader, subfolder string) (string, error)
}

func upload(ctx context.Context, up Uploader, n Notifier, subfolder, filename string, r io.Reader) (string, error) {
	url, err := up.Upload(ctx, filename, r, subfolder)
	if err != nil {
		failure(n, "Failed to upload image")
		return "", err
	}
	success(n, "Image uploaded successfully")
	return url, nil
}

// UploadField uploads into subfolder and writes the URL into the open form
// with set. On failure the field is left unchanged.
func (e *ListEditor[T]) UploadField(ctx context.Context, up Uploader, subfolder, filename string, r io.Reader, set func(*T, string)) error {
	if e.State() != Editing {
		return ErrNotEditing
	}
	url, err := upload(ctx, up, e.notify, subfolder, filename, r)
	if err != nil {
		return err
	}
	return e.Edit(func(f *T) { set(f, url) })
}

func (e *DocEditor[T]) UploadField(ctx context.Context, up Uploader, subfolder, filename string, r io.Reader, set func(*T, string)) error {
	url, err := upload(ctx, up, e.notify, subfolder, filename, r)
	if err != nil {
		return err
	}
	return e.Edit(func(f *T) { set(f, url) })
}
