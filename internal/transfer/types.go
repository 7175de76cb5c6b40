package transfer

import (
	"errors"
	"fmt"
)

// MediaKind tags the inbound event's media variant.
type MediaKind string

const (
	KindDocument MediaKind = "document"
	KindVideo    MediaKind = "video"
	KindAudio    MediaKind = "audio"
	KindPhoto    MediaKind = "photo"
)

// InboundFile is the minimal view of a file event the orchestrator needs:
// the transport's stream handle, the declared size and the owner identity.
type InboundFile struct {
	Kind         MediaKind
	StreamHandle string
	Name         string
	SizeBytes    int64
	OwnerID      int64
}

// ErrSizeLimit rejects inputs whose declared size exceeds the configured
// maximum, before any transfer work starts.
var ErrSizeLimit = errors.New("transfer: file exceeds size limit")

// DownloadError reports a failed transport download leg. No upload is
// attempted and no registry record is written.
type DownloadError struct {
	Err error
}

func (e *DownloadError) Error() string { return fmt.Sprintf("download failed: %v", e.Err) }

func (e *DownloadError) Unwrap() error { return e.Err }

// UploadError reports a failed object-store upload leg.
type UploadError struct {
	Err error
}

func (e *UploadError) Error() string { return fmt.Sprintf("upload failed: %v", e.Err) }

func (e *UploadError) Unwrap() error { return e.Err }
