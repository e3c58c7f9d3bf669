package main

import (
	"github.com/spf13/cobra"

	"github.com/eringen/labsite"
)

var (
	skipBuild bool
	addr      string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Build the site and preview it over HTTP",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		site, err := loadSite()
		if err != nil {
			return err
		}
		if addr != "" {
			site.Config.Addr = addr
		}
		if !skipBuild {
			if err := site.Build(cmd.Context()); err != nil {
				return err
			}
		}
		return labsite.NewServer(site.Config, logger).Start(cmd.Context())
	},
}

func init() {
	serveCmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides addr)")
	serveCmd.Flags().BoolVar(&skipBuild, "no-build", false, "serve the existing output without rebuilding")
}
