package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"

	"pawmarket/pkg/errors"
	"pawmarket/pkg/logger"
)

const publicURLPrefix = "https://storage.googleapis.com/"

// imageExtensions lists the content types accepted for avatars, logos and product images.
var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/jpg":  ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

type CloudStorageClient struct {
	client     *storage.Client
	bucketName string
}

func NewCloudStorageClient(ctx context.Context, bucketName string, opts ...option.ClientOption) (*CloudStorageClient, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %v", err)
	}

	storageClient := &CloudStorageClient{
		client:     client,
		bucketName: bucketName,
	}

	if err := storageClient.setBucketCORS(ctx); err != nil {
		logger.Warn("Failed to set CORS configuration on bucket %s: %v", bucketName, err)
	}

	return storageClient, nil
}

func (c *CloudStorageClient) setBucketCORS(ctx context.Context) error {
	bucket := c.client.Bucket(c.bucketName)

	corsConfig := storage.CORS{
		MaxAge:          time.Hour,
		Methods:         []string{"GET", "HEAD"},
		Origins:         []string{"*"},
		ResponseHeaders: []string{"Content-Type"},
	}

	bucketAttrs, err := bucket.Attrs(ctx)
	if err != nil {
		return fmt.Errorf("failed to get bucket attributes: %v", err)
	}

	if len(bucketAttrs.CORS) == 0 {
		_, err := bucket.Update(ctx, storage.BucketAttrsToUpdate{CORS: []storage.CORS{corsConfig}})
		if err != nil {
			return fmt.Errorf("failed to update bucket CORS: %v", err)
		}
	}

	return nil
}

// objectName builds a unique public object path for an upload.
func objectName(folder, contentType string, now time.Time) (string, error) {
	ext, ok := imageExtensions[strings.ToLower(contentType)]
	if !ok {
		return "", errors.InvalidArgument(fmt.Sprintf("unsupported file type %q", contentType), nil)
	}
	folder = strings.Trim(folder, "/")
	if folder == "" {
		return "", errors.InvalidArgument("upload folder is required", nil)
	}
	return fmt.Sprintf("public/%s/%s-%s%s", folder, uuid.New().String(), now.Format("20060102150405"), ext), nil
}

// UploadFile stores an image and returns its public URL.
func (c *CloudStorageClient) UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error) {
	filename, err := objectName(folder, contentType, time.Now())
	if err != nil {
		return "", err
	}

	obj := c.client.Bucket(c.bucketName).Object(filename)
	wc := obj.NewWriter(ctx)
	wc.ContentType = contentType
	wc.CacheControl = "public, max-age=86400"

	if _, err := io.Copy(wc, file); err != nil {
		_ = wc.Close()
		return "", fmt.Errorf("failed to copy file to GCS: %v", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("failed to close writer: %v", err)
	}

	if err := obj.ACL().Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return "", fmt.Errorf("failed to set ACL: %v", err)
	}

	return publicURL(c.bucketName, filename), nil
}

func publicURL(bucket, object string) string {
	return publicURLPrefix + bucket + "/" + object
}

// objectFromURL reverses publicURL for objects in bucket.
func objectFromURL(bucket, fileURL string) (string, error) {
	if !strings.HasPrefix(fileURL, publicURLPrefix) {
		return "", errors.InvalidArgument("invalid GCS URL format", nil)
	}
	parts := strings.SplitN(strings.TrimPrefix(fileURL, publicURLPrefix), "/", 2)
	if len(parts) != 2 || parts[0] != bucket || parts[1] == "" {
		return "", errors.InvalidArgument("invalid GCS URL format or bucket mismatch", nil)
	}
	return parts[1], nil
}

func (c *CloudStorageClient) DeleteFile(ctx context.Context, fileURL string) error {
	objectName, err := objectFromURL(c.bucketName, fileURL)
	if err != nil {
		return err
	}

	if err := c.client.Bucket(c.bucketName).Object(objectName).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

func (c *CloudStorageClient) Close() error {
	return c.client.Close()
}
