package client

import (
	"context"
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	openapiTypes "github.com/oapi-codegen/runtime/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type uploadCapture struct {
	auth        string
	path        string
	query       string
	filename    string
	contentType string
	data        string
	ref         string
	hasRef      bool
}

func newUploadServer(t *testing.T, status int, body string) (*httptest.Server, *uploadCapture) {
	t.Helper()
	capture := &uploadCapture{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capture.auth = r.Header.Get("Authorization")
		capture.path = r.URL.Path
		capture.query = r.URL.RawQuery

		mediaType, params, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if err == nil && mediaType == "multipart/form-data" {
			mr := multipart.NewReader(r.Body, params["boundary"])
			for {
				part, err := mr.NextPart()
				if err != nil {
					break
				}
				b, _ := io.ReadAll(part)
				switch part.FormName() {
				case "file":
					capture.filename = part.FileName()
					capture.contentType = part.Header.Get("Content-Type")
					capture.data = string(b)
				case "ref":
					capture.ref = string(b)
					capture.hasRef = true
				}
			}
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, capture
}

func TestUploadImage(t *testing.T) {
	server, capture := newUploadServer(t, http.StatusCreated,
		`{"images":[{"url":"https://blog.example.com/content/images/2024/01/cat.png","ref":"cat.png"}]}`)

	c, err := New(Config{BaseURL: server.URL, ContentKey: testContentKey, AdminKey: testAdminKey})
	require.NoError(t, err)

	var file openapiTypes.File
	file.InitFromBytes([]byte("PNGDATA"), "cat.png")

	imageURL, err := c.UploadImage(context.Background(), file, "cat.png")
	require.NoError(t, err)

	assert.Equal(t, "https://blog.example.com/content/images/2024/01/cat.png", imageURL)
	assert.Equal(t, "/ghost/api/admin/images/upload/", capture.path)
	assert.True(t, strings.HasPrefix(capture.auth, "Ghost "), "expected admin authorization, got %q", capture.auth)
	assert.Empty(t, capture.query, "uploads must not carry the content key")
	assert.Equal(t, "cat.png", capture.filename)
	assert.Equal(t, "image/png", capture.contentType)
	assert.Equal(t, "PNGDATA", capture.data)
	assert.True(t, capture.hasRef)
	assert.Equal(t, "cat.png", capture.ref)
}

func TestUploadImageFile(t *testing.T) {
	server, capture := newUploadServer(t, http.StatusCreated, `{"images":[{"url":"https://cdn/x.bin"}]}`)

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/tmp/assets/x.bin", []byte{0x01, 0x02}, 0o644))

	c, err := New(Config{BaseURL: server.URL, AdminKey: testAdminKey}, WithFs(fs))
	require.NoError(t, err)

	imageURL, err := c.UploadImageFile(context.Background(), "/tmp/assets/x.bin", "")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn/x.bin", imageURL)
	assert.Equal(t, "x.bin", capture.filename)
	assert.Equal(t, "application/octet-stream", capture.contentType)
	assert.False(t, capture.hasRef, "empty ref must be omitted")
}

func TestUploadImageFileMissing(t *testing.T) {
	c, err := New(Config{BaseURL: "http://127.0.0.1:1", AdminKey: testAdminKey}, WithFs(afero.NewMemMapFs()))
	require.NoError(t, err)

	_, err = c.UploadImageFile(context.Background(), "/nope.png", "")
	require.Error(t, err)
	assert.False(t, IsTransportError(err), "missing files fail before any request")
}

func TestUploadRequiresAdminKey(t *testing.T) {
	doer := &fakeDoer{}
	c := newFakeClient(t, doer, Config{ContentKey: testContentKey})

	var file openapiTypes.File
	file.InitFromBytes([]byte("x"), "x.gif")

	_, err := c.UploadImage(context.Background(), file, "")
	assert.True(t, IsConfigurationError(err), "expected configuration error, got %v", err)
	assert.Empty(t, doer.requests)
}

func TestUploadErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		checkFn func(t *testing.T, err error)
	}{
		{
			name:   "api error",
			status: http.StatusRequestEntityTooLarge,
			body:   `{"errors":[{"message":"Request is larger than the maximum file size"}]}`,
			checkFn: func(t *testing.T, err error) {
				var apiErr *APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, 413, apiErr.StatusCode)
				assert.Equal(t, "Request is larger than the maximum file size", apiErr.Message)
			},
		},
		{
			name:   "no images",
			status: http.StatusCreated,
			body:   `{"images":[]}`,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
		{
			name:   "no content",
			status: http.StatusNoContent,
			checkFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrMalformedResponse)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server, _ := newUploadServer(t, tt.status, tt.body)
			c, err := New(Config{BaseURL: server.URL, AdminKey: testAdminKey})
			require.NoError(t, err)

			var file openapiTypes.File
			file.InitFromBytes([]byte("x"), "x.jpg")

			imageURL, err := c.UploadImage(context.Background(), file, "x.jpg")
			assert.Empty(t, imageURL)
			tt.checkFn(t, err)
		})
	}
}
