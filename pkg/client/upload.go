package client

import (
	"context"
	"fmt"
	"io"
	"path/filepath"

	openapiTypes "github.com/oapi-codegen/runtime/types"

	"github.com/kjanat/ghost-blog/pkg/api"
)

const imageUploadPath = "admin/images/upload/"

// UploadedImage is an image entry of an upload response.
type UploadedImage struct {
	URL string `json:"url"`
	Ref string `json:"ref"`
}

// UploadImage uploads file to the Admin API and returns the public URL of
// the stored image. ref is optional; Ghost echoes it back unchanged.
func (c *Client) UploadImage(ctx context.Context, file openapiTypes.File, ref string) (string, error) {
	content, err := file.Reader()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer func() { _ = content.Close() }()

	return c.upload(ctx, file.Filename(), content, ref)
}

// UploadImageFile uploads the file at path, read through the client's
// filesystem.
func (c *Client) UploadImageFile(ctx context.Context, path string, ref string) (string, error) {
	f, err := c.opts.fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return c.upload(ctx, filepath.Base(path), f, ref)
}

func (c *Client) upload(ctx context.Context, filename string, content io.Reader, ref string) (string, error) {
	r, err := classifyPath(imageUploadPath)
	if err != nil {
		return "", err
	}

	query, header, err := r.credentials(c, nil)
	if err != nil {
		return "", err
	}

	part := api.FilePart{
		FieldName: "file",
		Filename:  filename,
		Content:   content,
	}
	req, err := api.NewMultipartRequest(c.raw.Server, r.path(), part, map[string]string{"ref": ref})
	if err != nil {
		return "", err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}

	raw, err := c.dispatch(ctx, r, req, header)
	if err != nil {
		return "", err
	}
	if raw == nil {
		return "", fmt.Errorf("%w: empty upload response", ErrMalformedResponse)
	}

	images, err := decodeEnvelope[UploadedImage](raw, "images")
	if err != nil {
		return "", err
	}
	if len(images) == 0 || images[0].URL == "" {
		return "", fmt.Errorf("%w: no image url in response", ErrMalformedResponse)
	}
	return images[0].URL, nil
}
