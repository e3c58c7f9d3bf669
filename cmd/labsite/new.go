package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eringen/labsite/scaffold"
)

var siteURL string

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new lab site with sample content and the default theme",
	Example: `  labsite new my-lab
  labsite new my-lab --url https://lab.example.edu`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]
		name := filepath.Base(dir)
		data := scaffold.Data{
			ProjectName: name,
			SiteName:    scaffold.ToTitle(name),
			SiteURL:     siteURL,
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Creating new lab site: %s\n\n", name)
		err := scaffold.Generate(dir, data, func(path string) {
			fmt.Fprintf(out, "  created %s\n", path)
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "\nDone! Next steps:\n\n")
		fmt.Fprintf(out, "  cd %s\n", dir)
		fmt.Fprintf(out, "  labsite serve\n")
		return nil
	},
}

func init() {
	newCmd.Flags().StringVar(&siteURL, "url", "http://localhost:8000", "canonical site URL")
}
