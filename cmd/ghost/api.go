package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

func newGetCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "get <path> [key=value...]",
		Short: "GET a path",
		Long:  "Performs a GET request and prints the JSON response.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := o.context(cmd)
			defer cancel()

			result, err := c.Get(ctx, args[0], url.Values(parseParams(args[1:])))
			if err != nil {
				return fmt.Errorf("GET %s failed: %w", args[0], err)
			}
			return o.outputJSON(result)
		},
	}
}

// newWriteCommand builds the post and put commands, which read a JSON body
// from stdin.
func newWriteCommand(o *rootOptions, verb string) *cobra.Command {
	method := http.MethodPost
	if verb == "put" {
		method = http.MethodPut
	}

	return &cobra.Command{
		Use:   verb + " <path> [key=value...]",
		Short: strings.ToUpper(verb) + " a JSON body read from stdin",
		Long: fmt.Sprintf(`Reads a JSON document from stdin, sends it with %s and prints the JSON response.

Example:
  echo '{"posts":[{"title":"Hello"}]}' | ghost %s admin/posts/ source=html`, method, verb),
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := io.ReadAll(o.In)
			if err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}

			var body any
			if err := json.Unmarshal(data, &body); err != nil {
				return fmt.Errorf("invalid JSON on stdin: %w", err)
			}

			c, err := o.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := o.context(cmd)
			defer cancel()

			result, err := c.Call(ctx, method, args[0], body, url.Values(parseParams(args[1:])))
			if err != nil {
				return fmt.Errorf("%s %s failed: %w", method, args[0], err)
			}
			return o.outputJSON(result)
		},
	}
}

func newDeleteCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <path>",
		Short: "DELETE a path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := o.context(cmd)
			defer cancel()

			if err := c.Delete(ctx, args[0]); err != nil {
				return fmt.Errorf("DELETE %s failed: %w", args[0], err)
			}

			fmt.Fprintln(o.Out, "Deleted.")
			return nil
		},
	}
}

func newUploadCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file>",
		Short: "Upload an image",
		Long:  "Uploads an image through the Admin API and prints its public URL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := o.context(cmd)
			defer cancel()

			path := args[0]
			imageURL, err := c.UploadImageFile(ctx, path, filepath.Base(path))
			if err != nil {
				return fmt.Errorf("upload failed: %w", err)
			}
			return o.outputJSON(map[string]string{"url": imageURL})
		},
	}
}
