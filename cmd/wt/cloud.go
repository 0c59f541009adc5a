package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/wordtree/pkg/export"
	"github.com/vanderheijden86/wordtree/pkg/scene"
)

func newCloudCmd(a *app) *cobra.Command {
	var (
		out    string
		format string
		limit  int
		floor  float64
	)
	cmd := &cobra.Command{
		Use:   "cloud",
		Short: "Render the word cloud to a file",
		Long: `Render the word cloud for the selected sources and category.

Examples:
  wt cloud -d reviews.json
  wt cloud --source amazon --category coffee -o coffee.png
  wt cloud --limit 50 --format svgz`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("limit") {
				a.cfg.Cloud.Limit = limit
			}
			if cmd.Flags().Changed("floor") {
				a.cfg.Cloud.Floor = floor
			}

			src, fetch, err := a.open()
			if err != nil {
				return err
			}
			defer src.Close()

			entries, err := fetch.FetchFrequencies(contextFor(cmd), a.filter())
			if err != nil {
				return err
			}
			layout := a.cloudLayout(entries)
			if len(layout.Words) == 0 {
				return fmt.Errorf("no words above frequency %g", a.cfg.Cloud.Floor)
			}
			if layout.Overflowed {
				warnf(cmd.ErrOrStderr(), "some words did not fit the spiral and were stacked below it")
			}

			path, err := export.Save(scene.FromCloud(layout), export.SnapshotOptions{
				Path:   a.outputPath(out, "cloud"),
				Format: a.formatFor(out, format),
			})
			if err != nil {
				return err
			}
			wrote(cmd.OutOrStdout(), fmt.Sprintf("cloud of %d words", len(layout.Words)), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <output.dir>/cloud.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "svg, svgz or png (default from extension or config)")
	cmd.Flags().IntVar(&limit, "limit", 0, "keep only the N most frequent words")
	cmd.Flags().Float64Var(&floor, "floor", 0, "drop words with frequency at or below this")
	return cmd
}
