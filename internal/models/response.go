package models

import (
	"github.com/Mraprguild8133/telegramwasabi/internal/progress"
	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
)

// FileInfo is the public shape of one stored file.
type FileInfo struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Size      string `json:"size"`
	SizeBytes int64  `json:"size_bytes"`
	Date      string `json:"date"`
	StreamURL string `json:"streaming_url"`
}

// FileListResponse is the payload of GET /api/files.
type FileListResponse struct {
	Status string     `json:"status"`
	Total  int        `json:"total"`
	Files  []FileInfo `json:"files"`
}

// HealthResponse is the payload of GET /health.
type HealthResponse struct {
	Status     string `json:"status"`
	FilesCount int    `json:"files_count"`
	ServerTime string `json:"server_time"`
}

func NewFileInfo(rec registry.Record) FileInfo {
	return FileInfo{
		ID:        rec.ID,
		Name:      rec.OriginalName,
		Size:      progress.FormatSize(rec.SizeBytes),
		SizeBytes: rec.SizeBytes,
		Date:      rec.CreatedAt.Format("2006-01-02"),
		StreamURL: "/stream/" + rec.ID,
	}
}
