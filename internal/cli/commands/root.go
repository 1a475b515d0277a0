// Package commands implements the seohead command line.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the root command
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "seohead",
		Short: "Resolve SEO head tags for pages",
		Long: `seohead merges site-wide SEO defaults with per-page settings and renders
the resulting <head> tags: title, description, links, Open Graph, Twitter
cards and robots directives.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(NewResolveCommand())
	rootCmd.AddCommand(NewServeCommand())

	return rootCmd
}
