package client

import (
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"

	"github.com/kjanat/ghost-blog/pkg/api"
)

// Options configures the client behavior.
type Options struct {
	timeout   time.Duration
	doer      api.HttpRequestDoer
	logger    hclog.Logger
	now       func() time.Time
	fs        afero.Fs
	userAgent string
}

func defaultOptions() *Options {
	return &Options{
		logger:    hclog.NewNullLogger(),
		now:       time.Now,
		fs:        afero.NewOsFs(),
		userAgent: "ghost-blog-client",
	}
}

// Option configures the client.
type Option func(*Options)

// WithTimeout sets the HTTP request timeout. Zero, the default, leaves
// requests bounded only by their context.
// Ignored when WithHTTPClient is also used.
func WithTimeout(d time.Duration) Option {
	return func(o *Options) {
		o.timeout = d
	}
}

// WithHTTPClient replaces the transport used to perform requests.
func WithHTTPClient(doer api.HttpRequestDoer) Option {
	return func(o *Options) {
		o.doer = doer
	}
}

// WithLogger sets the logger used for request tracing.
// Requests are logged at debug level; keys and tokens are never logged.
func WithLogger(logger hclog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

// WithClock sets the time source used to issue admin tokens.
func WithClock(now func() time.Time) Option {
	return func(o *Options) {
		o.now = now
	}
}

// WithFs sets the filesystem UploadImageFile reads from.
func WithFs(fs afero.Fs) Option {
	return func(o *Options) {
		o.fs = fs
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(o *Options) {
		o.userAgent = ua
	}
}
