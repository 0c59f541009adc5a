package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/wordtree/internal/datasource"
	"github.com/vanderheijden86/wordtree/pkg/config"
	"github.com/vanderheijden86/wordtree/pkg/debug"
	"github.com/vanderheijden86/wordtree/pkg/metrics"
	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/ui"
	"github.com/vanderheijden86/wordtree/pkg/version"
)

// app carries the resolved configuration shared by every subcommand.
type app struct {
	cfg config.Config

	configPath string
	dataPath   string
	sources    []string
	category   string
	width      float64
	fullscreen bool
	debug      bool
	metrics    bool
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:   "wt",
		Short: "wt - word clouds and sentiment trees",
		Long: Brand.Sprint("wt") + " draws word clouds from review datasets and expands\n" +
			"a sentiment tree for any word.\n\n" +
			Subtle.Sprint("Datasets are JSON documents or SQLite databases created with `wt import`."),
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.resolve(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.metrics {
				printMetrics(cmd)
			}
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&a.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/wt/config.yaml)")
	f.StringVarP(&a.dataPath, "data", "d", "", "dataset (.json, .db or .sqlite)")
	f.StringSliceVar(&a.sources, "source", nil, "review sources to include (repeatable)")
	f.StringVar(&a.category, "category", "", "product category")
	f.Float64Var(&a.width, "width", 0, "canvas width in pixels (default from terminal or config)")
	f.BoolVar(&a.fullscreen, "fullscreen", false, "use fullscreen sizing")
	f.BoolVar(&a.debug, "debug", false, "write debug logs to stderr")
	f.BoolVar(&a.metrics, "metrics", false, "print timing and cache metrics on exit")

	root.AddCommand(
		newCloudCmd(a),
		newTreeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newExploreCmd(a),
		newVersionCmd(),
	)

	return root
}

// resolve loads the config file and lets flags override it.
func (a *app) resolve(cmd *cobra.Command) error {
	if a.debug {
		debug.SetEnabled(true)
	}
	if a.metrics {
		metrics.SetEnabled(true)
	}

	var err error
	if a.configPath != "" {
		a.cfg, err = config.LoadFrom(a.configPath)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("data") {
		a.cfg.Data.Path = a.dataPath
	}
	if flags.Changed("source") {
		a.cfg.Filter.Sources = a.sources
	}
	if flags.Changed("category") {
		a.cfg.Filter.Category = a.category
	}
	if flags.Changed("fullscreen") {
		a.cfg.Tree.Fullscreen = a.fullscreen
	}
	if flags.Changed("width") {
		a.cfg.Cloud.Width = a.width
	} else if a.cfg.Cloud.Width == config.DefaultConfig().Cloud.Width {
		// Not set anywhere: follow the terminal.
		if w := terminalWidth(); w > 0 {
			a.cfg.Cloud.Width = w
		}
	}
	debug.Log("wt: config data=%s filter=%q width=%g", a.cfg.DataPath(), a.cfg.Filter.Key(), a.cfg.Cloud.Width)
	return nil
}

// terminalWidth converts the terminal width to layout pixels, or returns 0
// when stdout is not a terminal.
func terminalWidth() float64 {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return 0
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return 0
	}
	return float64(cols * ui.CellWidth)
}

func (a *app) filter() model.FilterCriteria { return a.cfg.Filter }

// open opens the configured dataset behind a coalescing wrapper.
func (a *app) open() (datasource.SourceCloser, *datasource.Coalescing, error) {
	path := a.cfg.DataPath()
	src, err := datasource.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return src, datasource.NewCoalescing(src), nil
}

func printMetrics(cmd *cobra.Command) {
	w := cmd.ErrOrStderr()
	for _, s := range metrics.AllTimingStats() {
		if s.Count == 0 {
			continue
		}
		fmt.Fprintf(w, "%s n=%d avg=%.2fms max=%.2fms total=%.2fms\n",
			Subtle.Sprintf("%-16s", s.Name), s.Count, s.AvgMs, s.MaxMs, s.TotalMs)
	}
	for _, c := range metrics.AllCacheMetrics() {
		if c.Hits()+c.Misses() == 0 {
			continue
		}
		fmt.Fprintf(w, "%s hits=%d misses=%d rate=%.0f%%\n", Subtle.Sprintf("%-16s", c.Name()), c.Hits(), c.Misses(), c.HitRate()*100)
	}
}

func contextFor(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
