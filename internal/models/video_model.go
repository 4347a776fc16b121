package models

import "time"

// Video is an accepted upload held as a transient preview.
type Video struct {
	ID          string    `json:"id"`
	FileName    string    `json:"file_name"`
	FileType    string    `json:"file_type"`
	FileSize    int64     `json:"file_size"`
	PreviewURL  string    `json:"preview_url"`
	UploadedAt  time.Time `json:"uploaded_at"`
	StoragePath string    `json:"-"`
}
