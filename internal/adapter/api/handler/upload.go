package handler

import (
	"fmt"
	"io"

	"github.com/labstack/echo/v4"

	"pawmarket/pkg/errors"
)

const maxUploadSize = 5 * 1024 * 1024

// readUpload opens the multipart "file" field. The caller closes the reader.
func readUpload(c echo.Context) (io.ReadCloser, string, error) {
	file, err := c.FormFile("file")
	if err != nil {
		return nil, "", errors.InvalidArgument("Missing or invalid file", err)
	}
	if file.Size > maxUploadSize {
		return nil, "", errors.InvalidArgument(fmt.Sprintf("File size exceeds maximum allowed (%dMB)", maxUploadSize/(1024*1024)), nil)
	}

	src, err := file.Open()
	if err != nil {
		return nil, "", errors.InvalidArgument("Failed to read file", err)
	}
	return src, file.Header.Get("Content-Type"), nil
}
