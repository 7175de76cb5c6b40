package transfer

import (
	"context"
	"time"
)

// Downloader is the chat transport's streaming-download primitive. It writes
// the file behind streamHandle to destPath, reporting cumulative progress.
type Downloader interface {
	Download(ctx context.Context, streamHandle, destPath string, onProgress func(current, total int64)) error
}

// ObjectStore is the narrow contract against the object-storage bridge.
type ObjectStore interface {
	Upload(ctx context.Context, localPath, objectKey string, onProgress func(deltaBytes int64)) (string, error)
	PresignDownload(ctx context.Context, objectKey string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, objectKey string) error
}

// StatusPublisher edits the invocation's status message. Publish failures
// (e.g. rate-limited edits) are swallowed by callers, never fatal.
type StatusPublisher interface {
	Publish(ctx context.Context, text string) error
}

// Admitter gates operation starts; satisfied by ratelimit.Limiter.
type Admitter interface {
	Acquire(ctx context.Context) error
}
