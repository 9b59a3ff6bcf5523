package models

import "time"

// StoredFile describes an uploaded file. Upload responses fill the original name,
// listings fill Modified.
type StoredFile struct {
	Filename         string    `json:"filename"`
	OriginalFilename string    `json:"original_filename,omitempty"`
	Size             int64     `json:"file_size"`
	MimeType         string    `json:"mime_type,omitempty"`
	URL              string    `json:"url"`
	Modified         time.Time `json:"modified,omitempty"`
}
