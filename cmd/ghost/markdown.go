package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kjanat/ghost-blog/pkg/markdown"
)

func newPullCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "pull <post_id> [output_file]",
		Short: "Fetch a post as Markdown",
		Long:  "Fetches a post's HTML and prints it as Markdown, or saves it to output_file.",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := o.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := o.context(cmd)
			defer cancel()

			md, err := markdown.Pull(ctx, c.Posts(), args[0])
			if err != nil {
				return fmt.Errorf("pull failed: %w", err)
			}

			if len(args) < 2 {
				fmt.Fprintln(o.Out, md)
				return nil
			}

			if err := afero.WriteFile(o.fs, args[1], []byte(md), 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", args[1], err)
			}
			fmt.Fprintf(o.Out, "Saved to %s\n", args[1])
			return nil
		},
	}
}

func newPushCommand(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "push <post_id> <markdown_file>",
		Short: "Replace a post's content with a Markdown file",
		Long:  "Renders markdown_file as HTML and stores it as the post's content.",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := afero.ReadFile(o.fs, args[1])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[1], err)
			}

			c, err := o.newClient()
			if err != nil {
				return err
			}

			ctx, cancel := o.context(cmd)
			defer cancel()

			if _, err := markdown.Push(ctx, c.Posts(), args[0], src); err != nil {
				return fmt.Errorf("push failed: %w", err)
			}

			fmt.Fprintln(o.Out, "Updated")
			return nil
		},
	}
}
