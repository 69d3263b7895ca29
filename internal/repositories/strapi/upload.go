package strapi

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/SAP-F-2025/trainee-dashboard/internal/models"
)

const uploadResource = "upload"

// Files is the media library client.
type Files struct {
	client *Client
}

func NewFiles(client *Client) *Files {
	return &Files{client: client}
}

// Upload sends one file as the multipart field "files" and returns the first descriptor
// of the answer. An empty answer is ErrNoFile.
func (f *Files) Upload(ctx context.Context, filename string, r io.Reader) (models.FileRef, error) {
	if r == nil {
		return models.FileRef{}, fmt.Errorf("upload %s: no content", filename)
	}

	var uploaded []models.FileRef
	resp, err := f.client.request(ctx).
		SetFileReader("files", filename, r).
		Post("/api/upload")
	if err := f.client.check(ctx, uploadResource, "upload", resp, err); err != nil {
		return models.FileRef{}, err
	}
	if err := decodeBody(uploadResource, resp.Body(), &uploaded); err != nil && !errors.Is(err, ErrEmptyResponse) {
		return models.FileRef{}, err
	}

	if len(uploaded) == 0 || uploaded[0].Empty() {
		f.client.logger.WarnContext(ctx, "CMS upload returned no file", "filename", filename)
		return models.FileRef{}, ErrNoFile
	}
	return uploaded[0], nil
}
