// Package main provides a CLI for the Ghost Content and Admin APIs.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	cliflag "github.com/tomasbasham/cli-runtime/flag"
	"github.com/tomasbasham/cli-runtime/iooption"
	"github.com/tomasbasham/cli-runtime/templates"

	"github.com/kjanat/ghost-blog/pkg/client"
)

// Environment variables
const (
	envAPIURL     = "GHOST_API_URL"
	envContentKey = "GHOST_CONTENT_API_KEY"
	envAdminKey   = "GHOST_ADMIN_API_KEY"
)

var rootLong = templates.LongDesc(`
	A command-line client for the Ghost Content and Admin APIs.

	Paths start with the API they target: content/... uses the Content API
	key, admin/... signs a short-lived token with the Admin API key.

	Settings are taken from flags, then from --env-file, then from the
	environment:
	  GHOST_API_URL          - site URL, e.g. https://blog.example.com
	  GHOST_CONTENT_API_KEY  - Content API key
	  GHOST_ADMIN_API_KEY    - Admin API key (id:secret)`)

var rootExamples = templates.Examples(`
	# List published posts
	ghost get content/posts/ limit=5

	# Create a draft from JSON on stdin
	echo '{"posts":[{"title":"Hi"}]}' | ghost post admin/posts/

	# Edit a post as Markdown
	ghost pull 64a1f0c2e4b0a1b2c3d4e5f6 post.md
	ghost push 64a1f0c2e4b0a1b2c3d4e5f6 post.md`)

// rootOptions holds global flags and the process environment.
type rootOptions struct {
	iooption.IOStreams

	fs     afero.Fs
	getenv func(string) string

	apiURL     string
	contentKey string
	adminKey   string
	envFile    string
	timeout    time.Duration
	verbose    bool
}

func defaultRootOptions() *rootOptions {
	return &rootOptions{
		IOStreams: iooption.IOStreams{
			In:     os.Stdin,
			Out:    os.Stdout,
			ErrOut: os.Stderr,
		},
		fs:     afero.NewOsFs(),
		getenv: os.Getenv,
	}
}

func main() {
	if err := newRootCommand(defaultRootOptions()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(o *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "ghost",
		Short:         "Ghost blog API CLI",
		Long:          rootLong,
		Example:       rootExamples,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	cmd.SetIn(o.In)
	cmd.SetOut(o.Out)
	cmd.SetErr(o.ErrOut)

	pflags := cmd.PersistentFlags()
	pflags.StringVar(&o.apiURL, "url", "", "Ghost site URL (or GHOST_API_URL env)")
	pflags.StringVar(&o.contentKey, "content-key", "", "Content API key (or GHOST_CONTENT_API_KEY env)")
	pflags.StringVar(&o.adminKey, "admin-key", "", "Admin API key id:secret (or GHOST_ADMIN_API_KEY env)")
	pflags.StringVar(&o.envFile, "env-file", "", "Read settings from a dotenv file")
	pflags.DurationVar(&o.timeout, "timeout", 30*time.Second, "Request timeout")
	pflags.BoolVarP(&o.verbose, "verbose", "v", false, "Log requests to stderr")

	cmd.AddCommand(newGetCommand(o))
	cmd.AddCommand(newWriteCommand(o, "post"))
	cmd.AddCommand(newWriteCommand(o, "put"))
	cmd.AddCommand(newDeleteCommand(o))
	cmd.AddCommand(newUploadCommand(o))
	cmd.AddCommand(newPullCommand(o))
	cmd.AddCommand(newPushCommand(o))

	// Accept --content_key as well as --content-key.
	cmd.SetGlobalNormalizationFunc(cliflag.WordSepNormalizeFunc())

	return cmd
}

// config resolves each setting from flag, env file and environment, in
// that order.
func (o *rootOptions) config() (client.Config, error) {
	fileEnv := map[string]string{}
	if o.envFile != "" {
		f, err := o.fs.Open(o.envFile)
		if err != nil {
			return client.Config{}, fmt.Errorf("failed to open env file: %w", err)
		}
		defer f.Close()

		fileEnv, err = godotenv.Parse(f)
		if err != nil {
			return client.Config{}, fmt.Errorf("failed to parse env file: %w", err)
		}
	}

	resolve := func(flagValue, key string) string {
		if flagValue != "" {
			return flagValue
		}
		if v := fileEnv[key]; v != "" {
			return v
		}
		return o.getenv(key)
	}

	return client.Config{
		BaseURL:    resolve(o.apiURL, envAPIURL),
		ContentKey: resolve(o.contentKey, envContentKey),
		AdminKey:   resolve(o.adminKey, envAdminKey),
	}, nil
}

func (o *rootOptions) logger() hclog.Logger {
	if !o.verbose {
		return hclog.NewNullLogger()
	}
	return hclog.New(&hclog.LoggerOptions{
		Name:   "ghost",
		Output: o.ErrOut,
		Level:  hclog.Debug,
	})
}

// newClient creates a new API client
func (o *rootOptions) newClient() (*client.Client, error) {
	cfg, err := o.config()
	if err != nil {
		return nil, err
	}

	c, err := client.New(cfg,
		client.WithTimeout(o.timeout),
		client.WithLogger(o.logger()),
		client.WithFs(o.fs),
		client.WithUserAgent("ghost-cli"),
	)
	if err != nil {
		if client.IsConfigurationError(err) && cfg.BaseURL == "" {
			return nil, fmt.Errorf("%s is not set: %w", envAPIURL, err)
		}
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}

// context bounds a command by --timeout, when set.
func (o *rootOptions) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if o.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, o.timeout)
}

// outputJSON prints the value as indented JSON
func (o *rootOptions) outputJSON(v any) error {
	enc := json.NewEncoder(o.Out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// parseParams turns key=value arguments into query parameters. Arguments
// without "=" are ignored.
func parseParams(args []string) map[string][]string {
	params := map[string][]string{}
	for _, kv := range args {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		params[k] = []string{v}
	}
	return params
}
