package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vanderheijden86/wordtree/internal/datasource"
)

func newImportCmd(a *app) *cobra.Command {
	var db string
	cmd := &cobra.Command{
		Use:   "import DATASET.json",
		Short: "Load a JSON dataset into a SQLite database",
		Long: `Import a JSON dataset document into SQLite. Rows are keyed by
(source, category, word); importing again replaces them.

Examples:
  wt import reviews.json
  wt import reviews.json --db ~/.local/share/wt/reviews.db`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := args[0]
			if db == "" {
				db = strings.TrimSuffix(in, ".json") + ".db"
			}
			stats, err := datasource.ImportFile(contextFor(cmd), db, in)
			if err != nil {
				return err
			}
			wrote(cmd.OutOrStdout(),
				fmt.Sprintf("%d datasets, %d frequencies, %d trees into", stats.Datasets, stats.Frequencies, stats.Trees),
				db)
			return nil
		},
	}
	cmd.Flags().StringVar(&db, "db", "", "database to write (default DATASET.db)")
	return cmd
}
