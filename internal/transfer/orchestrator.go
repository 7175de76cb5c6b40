// Package transfer coordinates the two legs of a file relay: the streaming
// download from the chat transport into local staging, and the multi-part
// upload from staging into the object store. Progress for each leg is
// sampled on a fixed cadence and published without ever blocking the
// transfer itself.
package transfer

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/Mraprguild8133/telegramwasabi/internal/config"
	"github.com/Mraprguild8133/telegramwasabi/internal/progress"
	"github.com/Mraprguild8133/telegramwasabi/internal/registry"
)

// Orchestrator drives one transfer per Handle invocation. Invocations are
// independent; many may run concurrently, bounded by the admitter.
type Orchestrator struct {
	downloader Downloader
	store      ObjectStore
	registry   *registry.Registry
	admitter   Admitter
	opts       *config.TransferOptions
	stagingDir string
}

func NewOrchestrator(
	downloader Downloader,
	store ObjectStore,
	reg *registry.Registry,
	admitter Admitter,
	opts *config.TransferOptions,
	stagingDir string,
) *Orchestrator {
	return &Orchestrator{
		downloader: downloader,
		store:      store,
		registry:   reg,
		admitter:   admitter,
		opts:       opts,
		stagingDir: stagingDir,
	}
}

// Handle relays one inbound file end to end and returns the registered
// record on success. Every failure is also converted into a user-visible
// status message; the returned error is for the caller's logging.
func (o *Orchestrator) Handle(ctx context.Context, file InboundFile, pub StatusPublisher) (*registry.Record, error) {
	// Oversized inputs are rejected outright and never count against the
	// transport rate limit.
	if file.SizeBytes > o.opts.MaxFileSize() {
		o.publish(ctx, pub, sizeLimitText(o.opts.MaxFileSize()))
		return nil, fmt.Errorf("%w: declared %d bytes, limit %d", ErrSizeLimit, file.SizeBytes, o.opts.MaxFileSize())
	}

	if err := o.admitter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("admission: %w", err)
	}

	id := uuid.NewString()
	name := file.Name
	if name == "" {
		name = "file_" + id
	}
	objectKey := fmt.Sprintf("files/%d/%s_%s", file.OwnerID, id, name)

	if err := os.MkdirAll(o.stagingDir, 0o755); err != nil {
		o.publish(ctx, pub, downloadFailedText)
		return nil, &DownloadError{Err: err}
	}
	stagingPath := filepath.Join(o.stagingDir, id+"_"+name)
	defer o.removeStaging(stagingPath)

	log.Printf("transfer %s: downloading %q (%s) for user %d", id, name, progress.FormatSize(file.SizeBytes), file.OwnerID)
	o.publish(ctx, pub, downloadStartedText)

	interval := o.opts.UpdateInterval()
	samplerA := progress.NewSampler(downloadCaption, downloadFooter, file.SizeBytes, interval)

	downloadStart := time.Now()
	err := o.runLeg(ctx, samplerA, pub, func() error {
		return o.downloader.Download(ctx, file.StreamHandle, stagingPath, func(current, _ int64) {
			samplerA.Set(current)
		})
	})
	if err != nil {
		log.Printf("transfer %s: download failed: %v", id, err)
		o.publish(ctx, pub, downloadFailedText)
		return nil, &DownloadError{Err: err}
	}
	downloadTime := time.Since(downloadStart)

	o.publish(ctx, pub, downloadCompleteText(name, file.SizeBytes, downloadTime))
	log.Printf("transfer %s: downloaded in %s, uploading to %s", id, progress.FormatDuration(downloadTime), objectKey)

	samplerB := progress.NewSampler(uploadCaption, uploadFooter, file.SizeBytes, interval)

	var downloadURL string
	err = o.runLeg(ctx, samplerB, pub, func() error {
		var uploadErr error
		downloadURL, uploadErr = o.store.Upload(ctx, stagingPath, objectKey, samplerB.Add)
		return uploadErr
	})
	if err != nil {
		log.Printf("transfer %s: upload failed: %v", id, err)
		o.publish(ctx, pub, uploadFailedText)
		return nil, &UploadError{Err: err}
	}

	rec := registry.Record{
		ID:           id,
		OriginalName: name,
		ObjectKey:    objectKey,
		SizeBytes:    file.SizeBytes,
		OwnerID:      file.OwnerID,
		CreatedAt:    time.Now(),
		DownloadURL:  downloadURL,
	}
	if err := o.registry.Put(rec); err != nil {
		// The upload itself succeeded; a duplicate id is an internal
		// invariant violation, not a user-facing failure.
		log.Printf("transfer %s: registry insert failed: %v", id, err)
	}

	// A fresh presigned link for display, independent of the raw endpoint
	// URL stored on the record.
	streamingURL, err := o.store.PresignDownload(ctx, objectKey, o.opts.SuccessLinkTTL())
	if err != nil {
		log.Printf("transfer %s: presign failed: %v", id, err)
		streamingURL = downloadURL
	}

	o.publish(ctx, pub, uploadSuccessText(name, file.SizeBytes, id, streamingURL))
	log.Printf("transfer %s: complete ✅", id)
	return &rec, nil
}

// runLeg executes work on the calling goroutine while a polling goroutine
// forwards sampler snapshots to the publisher on the sampling interval.
// Polling stops as soon as the work returns; publishing never blocks the
// transfer and the transfer never blocks on publishing.
func (o *Orchestrator) runLeg(ctx context.Context, sampler *progress.Sampler, pub StatusPublisher, work func() error) error {
	done := make(chan struct{})
	pollerStopped := make(chan struct{})

	go func() {
		defer close(pollerStopped)
		ticker := time.NewTicker(o.opts.UpdateInterval())
		defer ticker.Stop()
		var last string
		for {
			select {
			case <-done:
				return
			case <-ctx.Done():
				return
			case <-ticker.C:
				if text, ok := sampler.Snapshot(); ok && text != last {
					o.publish(ctx, pub, text)
					last = text
				}
			}
		}
	}()

	err := work()
	close(done)
	<-pollerStopped
	return err
}

// publish is best-effort: rate-limited or failed edits never affect the
// transfer.
func (o *Orchestrator) publish(ctx context.Context, pub StatusPublisher, text string) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, text); err != nil {
		log.Printf("status publish dropped: %v", err)
	}
}

func (o *Orchestrator) removeStaging(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		log.Printf("failed to clean staging file %s: %v", path, err)
	}
}
