package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
)

func TestListTextEmpty(t *testing.T) {
	assert.Equal(t, noFilesText, listText(nil))
}

func TestListTextFormatsRecords(t *testing.T) {
	records := []registry.Record{
		{
			ID:           "aaa-111",
			OriginalName: "movie.mkv",
			SizeBytes:    1536 * 1024 * 1024,
			CreatedAt:    time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
		},
		{
			ID:           "bbb-222",
			OriginalName: "notes.pdf",
			SizeBytes:    2048,
			CreatedAt:    time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
		},
	}

	text := listText(records)
	assert.Contains(t, text, "movie.mkv")
	assert.Contains(t, text, "`aaa-111`")
	assert.Contains(t, text, "1.5 GB")
	assert.Contains(t, text, "2026-03-14")
	assert.Contains(t, text, "/download aaa-111")
	assert.Contains(t, text, "notes.pdf")
	assert.Contains(t, text, "2.0 KB")
	assert.Contains(t, text, "/download bbb-222")
}

func TestDownloadText(t *testing.T) {
	rec := registry.Record{
		ID:           "ccc-333",
		OriginalName: "song.flac",
		SizeBytes:    24 * 1024 * 1024,
	}
	text := downloadText(rec, "https://s3.example/presigned")
	assert.Contains(t, text, "song.flac")
	assert.Contains(t, text, "24.0 MB")
	assert.Contains(t, text, "https://s3.example/presigned")
	assert.Contains(t, text, "MX Player")
}
