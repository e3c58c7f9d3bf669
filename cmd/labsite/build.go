package main

import (
	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Build the site into the output directory",
	Long: `Loads content/data, content/pages and the theme, then writes every
page, the sitemap, the RSS feed and the static assets to the output
directory (default ./output).`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadSite()
		if err != nil {
			return err
		}
		return site.Build(cmd.Context())
	},
}
