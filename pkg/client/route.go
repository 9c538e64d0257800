package client

import (
	"net/http"
	"net/url"
	"strings"
)

// Surface identifies one of the two Ghost API surfaces.
type Surface string

const (
	// ContentSurface is the read-only API authenticated by a static key.
	ContentSurface Surface = "content"
	// AdminSurface is the privileged API authenticated by signed tokens.
	AdminSurface Surface = "admin"
)

// route is a request path already classified by surface. Routes are only
// built by classifyPath, so every dispatched request carries exactly one
// authentication scheme.
type route interface {
	surface() Surface
	path() string
	// credentials returns the query parameters and headers to send. The
	// caller's params are never modified.
	credentials(c *Client, params url.Values) (url.Values, http.Header, error)
}

// classifyPath picks the authentication scheme from the path prefix.
func classifyPath(path string) (route, error) {
	switch {
	case strings.HasPrefix(path, "content/"):
		return contentRoute{p: path}, nil
	case strings.HasPrefix(path, "admin/"):
		return adminRoute{p: path}, nil
	default:
		return nil, &InvalidPathError{Path: path}
	}
}

type contentRoute struct{ p string }

func (r contentRoute) surface() Surface { return ContentSurface }
func (r contentRoute) path() string     { return r.p }

func (r contentRoute) credentials(c *Client, params url.Values) (url.Values, http.Header, error) {
	if c.cfg.ContentKey == "" {
		return nil, nil, &ConfigurationError{Setting: "content_key", Message: "not set"}
	}

	out := cloneValues(params)
	out.Set("key", c.cfg.ContentKey)
	return out, nil, nil
}

type adminRoute struct{ p string }

func (r adminRoute) surface() Surface { return AdminSurface }
func (r adminRoute) path() string     { return r.p }

func (r adminRoute) credentials(c *Client, params url.Values) (url.Values, http.Header, error) {
	token, err := c.adminToken()
	if err != nil {
		return nil, nil, err
	}

	header := make(http.Header)
	header.Set("Authorization", "Ghost "+token)
	return cloneValues(params), header, nil
}

func cloneValues(params url.Values) url.Values {
	out := make(url.Values, len(params)+1)
	for k, v := range params {
		out[k] = append([]string(nil), v...)
	}
	return out
}
