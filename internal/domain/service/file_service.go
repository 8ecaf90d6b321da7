package service

import (
	"context"
	"io"
)

const (
	FolderAvatars       = "avatars"
	FolderShopLogos     = "shop-logos"
	FolderProductImages = "product-images"
)

type FileUploadService interface {
	// UploadFile stores a public object under folder and returns its URL.
	UploadFile(ctx context.Context, file io.Reader, contentType, folder string) (string, error)
	DeleteFile(ctx context.Context, fileURL string) error
	Close() error
}
