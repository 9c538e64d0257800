package client

import "strings"

// Config holds the connection settings for a Ghost site. It is read once by
// New and never modified afterwards.
type Config struct {
	// BaseURL is the site root, e.g. "https://blog.example.com".
	BaseURL string
	// ContentKey is the Content API key, required for content/ paths.
	ContentKey string
	// AdminKey is the Admin API key in "id:secret" form, required for
	// admin/ paths.
	AdminKey string
}

func (c Config) normalize() (Config, error) {
	c.BaseURL = strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if c.BaseURL == "" {
		return c, &ConfigurationError{Setting: "base_url", Message: "not set"}
	}
	return c, nil
}

// apiRoot is the server root every request path is resolved against.
func (c Config) apiRoot() string {
	return c.BaseURL + "/ghost/api/"
}
