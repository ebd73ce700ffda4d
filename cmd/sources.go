package cmd

import (
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/jonesrussell/newscrawl/internal/sites"
)

func newSourcesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sources",
		Short: "List the registered news sources",
		Long:  `List every registered source with its domains, start URLs and feed count.`,
		RunE: func(*cobra.Command, []string) error {
			registry := sites.Builtin()

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.SetStyle(table.StyleLight)
			t.AppendHeader(table.Row{"Name", "Domains", "Start URLs", "Feeds"})

			for _, name := range registry.Names() {
				site, ok := registry.Lookup(name)
				if !ok {
					continue
				}
				t.AppendRow(table.Row{
					site.Name(),
					strings.Join(site.AllowedDomains(), "\n"),
					strings.Join(site.StartURLs(), "\n"),
					len(site.FeedURLs()),
				})
			}

			t.Render()
			return nil
		},
	}
}
