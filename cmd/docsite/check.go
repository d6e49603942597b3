package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kamiertop/docsite"
	"github.com/kamiertop/docsite/markdown"
)

func newCheckCmd() *cobra.Command {
	var configPath string
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the config and render every page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := docsite.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			r := markdown.New(markdown.Options{ShowLineNumbers: cfg.Markdown.ShowLineNumbers})
			start := time.Now()
			site, err := docsite.LoadSite(cfg, r, nil)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range site.Pages {
				fmt.Fprintf(out, "  %-32s %s\n", p.URL, p.SourcePath)
			}
			fmt.Fprintf(out, "\n%s: %d pages OK (%s)\n", cfg.Title, len(site.Pages), time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "docsite.yaml", "site config file")
	return cmd
}
