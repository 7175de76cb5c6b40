package s3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3Types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// TransferError reports a failed backend operation. Partial progress never
// raises; only the overall call outcome does.
type TransferError struct {
	Op  string
	Err error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("s3 %s failed: %v", e.Op, e.Err)
}

func (e *TransferError) Unwrap() error { return e.Err }

// ProgressFunc receives the byte count of each confirmed chunk. The
// cumulative total never exceeds the file's actual size.
type ProgressFunc = func(deltaBytes int64)

// objectAPI is the slice of the AWS S3 client the bridge uses, split out for
// testing.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	CreateMultipartUpload(ctx context.Context, in *s3.CreateMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error)
	UploadPart(ctx context.Context, in *s3.UploadPartInput, optFns ...func(*s3.Options)) (*s3.UploadPartOutput, error)
	CompleteMultipartUpload(ctx context.Context, in *s3.CompleteMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error)
	AbortMultipartUpload(ctx context.Context, in *s3.AbortMultipartUploadInput, optFns ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type presignAPI interface {
	PresignGetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error)
}

// Client moves local files into a bucket on an S3-compatible backend and
// issues presigned download URLs. Files above the multipart threshold are
// split into parts uploaded concurrently.
type Client struct {
	api       objectAPI
	presigner presignAPI

	bucket   string
	endpoint string

	multipartThreshold int64
	partSize           int64
	maxConcurrency     int
}

// Options tunes the transfer behaviour of a Client.
type Options struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	Endpoint  string

	MultipartThreshold int64
	PartSize           int64
	MaxConcurrency     int
}

const (
	defaultPartSize  = 25 * 1024 * 1024
	minimumPartSize  = 5 * 1024 * 1024
	defaultParallels = 10
)

func NewClient(ctx context.Context, opts Options) (*Client, error) {
	if opts.AccessKey == "" || opts.SecretKey == "" {
		return nil, fmt.Errorf("no storage credentials provided")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(opts.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load storage config: %w", err)
	}

	s3Client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.Endpoint != "" {
			o.BaseEndpoint = aws.String(opts.Endpoint)
			o.UsePathStyle = true
		}
	})

	c := &Client{
		api:                s3Client,
		presigner:          s3.NewPresignClient(s3Client),
		bucket:             opts.Bucket,
		endpoint:           opts.Endpoint,
		multipartThreshold: opts.MultipartThreshold,
		partSize:           opts.PartSize,
		maxConcurrency:     opts.MaxConcurrency,
	}
	c.applyDefaults()
	return c, nil
}

func (c *Client) applyDefaults() {
	if c.partSize <= 0 {
		c.partSize = defaultPartSize
	}
	if c.partSize < minimumPartSize {
		c.partSize = minimumPartSize
	}
	if c.multipartThreshold <= 0 {
		c.multipartThreshold = defaultPartSize
	}
	if c.maxConcurrency < 1 {
		c.maxConcurrency = defaultParallels
	}
}

// Upload copies the file at localPath to objectKey, invoking onProgress for
// each confirmed chunk. It returns the object's direct endpoint URL.
func (c *Client) Upload(ctx context.Context, localPath, objectKey string, onProgress ProgressFunc) (string, error) {
	f, err := os.Open(localPath)
	if err != nil {
		return "", &TransferError{Op: "upload", Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", &TransferError{Op: "upload", Err: err}
	}
	size := info.Size()

	if size < c.multipartThreshold {
		err = c.uploadSingle(ctx, f, size, objectKey, onProgress)
	} else {
		err = c.uploadMultipart(ctx, f, size, objectKey, onProgress)
	}
	if err != nil {
		return "", err
	}

	return c.objectURL(objectKey), nil
}

func (c *Client) uploadSingle(ctx context.Context, f *os.File, size int64, objectKey string, onProgress ProgressFunc) error {
	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(c.bucket),
		Key:           aws.String(objectKey),
		Body:          f,
		ContentLength: aws.Int64(size),
	})
	if err != nil {
		return &TransferError{Op: "upload", Err: err}
	}
	if onProgress != nil {
		onProgress(size)
	}
	return nil
}

func (c *Client) uploadMultipart(ctx context.Context, f *os.File, size int64, objectKey string, onProgress ProgressFunc) error {
	create, err := c.api.CreateMultipartUpload(ctx, &s3.CreateMultipartUploadInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return &TransferError{Op: "upload", Err: err}
	}
	uploadID := aws.ToString(create.UploadId)

	numParts := int((size + c.partSize - 1) / c.partSize)
	completed := make([]s3Types.CompletedPart, numParts)
	errs := make([]error, numParts)

	sem := make(chan struct{}, c.maxConcurrency)
	var wg sync.WaitGroup
	for i := 0; i < numParts; i++ {
		wg.Add(1)
		go func(part int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			offset := int64(part) * c.partSize
			length := c.partSize
			if offset+length > size {
				length = size - offset
			}

			out, err := c.api.UploadPart(ctx, &s3.UploadPartInput{
				Bucket:        aws.String(c.bucket),
				Key:           aws.String(objectKey),
				UploadId:      aws.String(uploadID),
				PartNumber:    aws.Int32(int32(part + 1)),
				Body:          io.NewSectionReader(f, offset, length),
				ContentLength: aws.Int64(length),
			})
			if err != nil {
				errs[part] = err
				return
			}
			completed[part] = s3Types.CompletedPart{
				ETag:       out.ETag,
				PartNumber: aws.Int32(int32(part + 1)),
			}
			if onProgress != nil {
				onProgress(length)
			}
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			c.abort(ctx, objectKey, uploadID)
			return &TransferError{Op: "upload", Err: err}
		}
	}

	_, err = c.api.CompleteMultipartUpload(ctx, &s3.CompleteMultipartUploadInput{
		Bucket:   aws.String(c.bucket),
		Key:      aws.String(objectKey),
		UploadId: aws.String(uploadID),
		MultipartUpload: &s3Types.CompletedMultipartUpload{
			Parts: completed,
		},
	})
	if err != nil {
		c.abort(ctx, objectKey, uploadID)
		return &TransferError{Op: "upload", Err: err}
	}
	return nil
}

func (c *Client) abort(ctx context.Context, objectKey, uploadID string) {
	// Cleanup only; the original upload error is what callers see.
	_, _ = c.api.AbortMultipartUpload(ctx, &s3.AbortMultipartUploadInput{
		Bucket:   aws.String(c.bucket),
		Key:      aws.String(objectKey),
		UploadId: aws.String(uploadID),
	})
}

// PresignDownload issues a fresh time-limited GET URL for objectKey. Nothing
// is cached; every call signs anew.
func (c *Client) PresignDownload(ctx context.Context, objectKey string, ttl time.Duration) (string, error) {
	req, err := c.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", &TransferError{Op: "presign", Err: err}
	}
	return req.URL, nil
}

// Delete removes objectKey from the bucket. Deleting an absent key is a
// no-op, matching S3 semantics.
func (c *Client) Delete(ctx context.Context, objectKey string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(c.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return &TransferError{Op: "delete", Err: err}
	}
	return nil
}

func (c *Client) objectURL(objectKey string) string {
	segments := strings.Split(objectKey, "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	return fmt.Sprintf("%s/%s/%s", c.endpoint, c.bucket, strings.Join(segments, "/"))
}
