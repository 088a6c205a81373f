// Package objectstore uploads user images to a MinIO bucket and returns the
// public URL they will be served from.
package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"quizbank/internal/errs"
)

// allowedImageTypes are the sniffed content types accepted for profile
// images.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
	"image/bmp":  true,
	"image/tiff": true,
	"image/webp": true,
}

// Client is the subset of the MinIO API the uploader needs.
type Client interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
}

// Uploader stores image buffers in a bucket.
type Uploader struct {
	client    Client
	bucket    string
	publicURL string
}

// NewUploader creates an Uploader for the given bucket. publicURL is the
// base under which objects in the bucket are reachable.
func NewUploader(client Client, bucket, publicURL string) *Uploader {
	return &Uploader{
		client:    client,
		bucket:    bucket,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// UploadImage validates that the buffer is an allowed image format, stores
// it under a unique key derived from the original filename and returns the
// public URL. The content type is sniffed from the bytes, never trusted
// from the request.
func (u *Uploader) UploadImage(ctx context.Context, data []byte, filename string) (string, error) {
	mtype := mimetype.Detect(data)
	if !allowedImageTypes[mtype.String()] {
		return "", errs.NewUnsupportedMedia("Only image files (JPEG, PNG, GIF, BMP, TIFF, WEBP) are allowed")
	}

	key := fmt.Sprintf("%s-%s", uuid.New().String(), path.Base(filename))
	_, err := u.client.PutObject(ctx, u.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: mtype.String(),
	})
	if err != nil {
		return "", fmt.Errorf("uploading image: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.publicURL, u.bucket, key), nil
}
