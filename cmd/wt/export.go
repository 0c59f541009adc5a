package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/wordtree/internal/datasource"
	"github.com/vanderheijden86/wordtree/pkg/export"
	"github.com/vanderheijden86/wordtree/pkg/scene"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		dir         string
		format      string
		top         int
		depth       int
		concurrency int
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render the cloud and the trees of its top words",
		Long: `Render the word cloud plus one sentiment tree for each of the --top
most frequent words. Trees are fetched concurrently; words without a tree
are skipped.

Examples:
  wt export -d reviews.db --top 10 --out-dir site/
  wt export --top 5 --depth 3 --format png`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("depth") {
				depth = a.cfg.Tree.Depth
			}
			if dir == "" {
				dir = a.cfg.Output.Dir
			}
			if format == "" {
				format = a.cfg.Output.Format
			}
			ctx := contextFor(cmd)
			out := cmd.OutOrStdout()

			src, fetch, err := a.open()
			if err != nil {
				return err
			}
			defer src.Close()

			entries, err := fetch.FetchFrequencies(ctx, a.filter())
			if err != nil {
				return err
			}
			layout := a.cloudLayout(entries)
			path, err := export.Save(scene.FromCloud(layout), export.SnapshotOptions{
				Path:   filepath.Join(dir, "cloud"),
				Format: format,
			})
			if err != nil {
				return err
			}
			wrote(out, fmt.Sprintf("cloud of %d words", len(layout.Words)), path)

			// Layout words are ordered by descending frequency.
			words := make([]string, 0, max(top, 0))
			for _, w := range layout.Words {
				if len(words) == top {
					break
				}
				words = append(words, w.Text)
			}

			trees, err := datasource.PrefetchTrees(ctx, fetch, words, a.filter(), concurrency)
			if err != nil {
				return err
			}
			for _, word := range words {
				root, ok := trees[word]
				if !ok {
					warnf(cmd.ErrOrStderr(), "no tree for %q", word)
					continue
				}
				path, err := export.Save(a.treeScene(root, depth), export.SnapshotOptions{
					Path:   filepath.Join(dir, "tree-"+fileName(word)),
					Format: format,
				})
				if err != nil {
					return err
				}
				wrote(out, fmt.Sprintf("tree %q", word), path)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "out-dir", "", "output directory (default output.dir from config)")
	cmd.Flags().StringVar(&format, "format", "", "svg, svgz or png (default from config)")
	cmd.Flags().IntVar(&top, "top", 10, "number of words to render trees for")
	cmd.Flags().IntVar(&depth, "depth", 0, "levels expanded below each root (default from config)")
	cmd.Flags().IntVar(&concurrency, "concurrency", datasource.DefaultPrefetchConcurrency, "parallel tree fetches")
	return cmd
}
