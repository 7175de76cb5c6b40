package bot

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	telegrambot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// fileResolver is the slice of the Telegram client the downloader needs.
type fileResolver interface {
	GetFile(ctx context.Context, params *telegrambot.GetFileParams) (*models.File, error)
	FileDownloadLink(f *models.File) string
}

// Downloader streams a Telegram file into a local staging path, reporting
// cumulative progress. It implements transfer.Downloader.
type Downloader struct {
	resolver fileResolver
	client   *http.Client
}

func NewDownloader(resolver fileResolver) *Downloader {
	return &Downloader{
		resolver: resolver,
		client:   &http.Client{},
	}
}

const downloadChunkSize = 64 * 1024

// Download resolves the stream handle to a transport URL and copies the body
// to destPath. onProgress receives the cumulative byte count after every
// chunk.
func (d *Downloader) Download(ctx context.Context, streamHandle, destPath string, onProgress func(current, total int64)) error {
	file, err := d.resolver.GetFile(ctx, &telegrambot.GetFileParams{FileID: streamHandle})
	if err != nil {
		return fmt.Errorf("resolve file %s: %w", streamHandle, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.resolver.FileDownloadLink(file), nil)
	if err != nil {
		return err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("download file %s: %w", streamHandle, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download file %s: unexpected status %s", streamHandle, resp.Status)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return err
	}
	defer out.Close()

	total := resp.ContentLength
	var current int64
	buf := make([]byte, downloadChunkSize)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := out.Write(buf[:n]); writeErr != nil {
				return writeErr
			}
			current += int64(n)
			if onProgress != nil {
				onProgress(current, total)
			}
		}
		if readErr == io.EOF {
			return nil
		}
		if readErr != nil {
			return fmt.Errorf("download file %s: %w", streamHandle, readErr)
		}
	}
}
