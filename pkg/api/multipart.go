package api

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path"
	"strings"

	"github.com/google/uuid"
)

// DefaultContentType is sent for file parts whose extension is unknown.
const DefaultContentType = "application/octet-stream"

var imageContentTypes = map[string]string{
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
}

// ContentTypeFor returns the content type for filename based on its
// extension, or DefaultContentType.
func ContentTypeFor(filename string) string {
	ext := strings.TrimPrefix(path.Ext(filename), ".")
	if ct, ok := imageContentTypes[strings.ToLower(ext)]; ok {
		return ct
	}
	return DefaultContentType
}

// FilePart is the file section of a multipart upload.
type FilePart struct {
	// FieldName is the form field, "file" for Ghost image uploads.
	FieldName string
	Filename  string
	Content   io.Reader
}

// NewBoundary returns a fresh multipart boundary.
func NewBoundary() string {
	return "----GhostUpload" + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// NewMultipartRequest builds a POST request carrying file and the extra
// string fields. Fields with an empty value are omitted.
func NewMultipartRequest(server, urlPath string, file FilePart, fields map[string]string) (*http.Request, error) {
	queryURL, err := ResolveURL(server, urlPath, nil)
	if err != nil {
		return nil, err
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.SetBoundary(NewBoundary()); err != nil {
		return nil, fmt.Errorf("set multipart boundary: %w", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, file.FieldName, file.Filename))
	header.Set("Content-Type", ContentTypeFor(file.Filename))

	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("create file part: %w", err)
	}
	if _, err := io.Copy(part, file.Content); err != nil {
		return nil, fmt.Errorf("write file part: %w", err)
	}

	for name, value := range fields {
		if value == "" {
			continue
		}
		if err := mw.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, queryURL.String(), &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", mw.FormDataContentType())

	return req, nil
}
