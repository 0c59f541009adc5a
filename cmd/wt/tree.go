package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/wordtree/pkg/export"
	"github.com/vanderheijden86/wordtree/pkg/scene"
)

func newTreeCmd(a *app) *cobra.Command {
	var (
		out    string
		format string
		depth  int
	)
	cmd := &cobra.Command{
		Use:   "tree WORD",
		Short: "Render the sentiment tree for a word",
		Long: `Render the sentiment tree rooted at WORD with every node expanded
down to --depth levels below the root.

Examples:
  wt tree taste -d reviews.json
  wt tree taste --depth 4 -o taste.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			word := args[0]
			if !cmd.Flags().Changed("depth") {
				depth = a.cfg.Tree.Depth
			}

			src, fetch, err := a.open()
			if err != nil {
				return err
			}
			defer src.Close()

			root, err := fetch.FetchTree(contextFor(cmd), word, a.filter())
			if err != nil {
				return fmt.Errorf("tree for %q: %w", word, err)
			}

			layout := a.treeLayout(root, depth)
			path, err := export.Save(scene.FromTree(layout), export.SnapshotOptions{
				Path:   a.outputPath(out, "tree-"+fileName(word)),
				Format: a.formatFor(out, format),
			})
			if err != nil {
				return err
			}
			wrote(cmd.OutOrStdout(), fmt.Sprintf("tree %q (%d of %d nodes)", word, len(layout.Nodes), root.Count()), path)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "output file (default <output.dir>/tree-WORD.<format>)")
	cmd.Flags().StringVar(&format, "format", "", "svg, svgz or png (default from extension or config)")
	cmd.Flags().IntVar(&depth, "depth", 0, "levels expanded below the root (default from config)")
	return cmd
}
