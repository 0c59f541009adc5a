package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vanderheijden86/wordtree/internal/datasource"
	"github.com/vanderheijden86/wordtree/pkg/export"
	"github.com/vanderheijden86/wordtree/pkg/model"
	"github.com/vanderheijden86/wordtree/pkg/ui"
	"github.com/vanderheijden86/wordtree/pkg/watcher"
)

func newExploreCmd(a *app) *cobra.Command {
	var pick, watch bool
	cmd := &cobra.Command{
		Use:   "explore",
		Short: "Browse the cloud and trees in the terminal",
		Long: `Open the interactive cloud. Select a word to load its sentiment tree,
expand and collapse nodes, and save what you see.

Examples:
  wt explore -d reviews.json
  wt explore --pick
  wt explore -d reviews.json --watch`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := contextFor(cmd)
			if cmd.Flags().Changed("watch") {
				a.cfg.Data.Watch = watch
			}

			src, fetch, err := a.open()
			if err != nil {
				return err
			}
			defer src.Close()

			if pick {
				f, err := pickFilter(ctx, src, a.filter())
				if err != nil {
					return err
				}
				a.cfg.Filter = f
			}

			format, err := export.ParseFormat("", a.cfg.Output.Format)
			if err != nil {
				return err
			}

			opts := ui.Options{
				Source:         fetch,
				Filter:         a.filter(),
				Cloud:          a.normalizeOptions(),
				Padding:        a.cfg.Cloud.Padding,
				Fullscreen:     a.cfg.Tree.Fullscreen,
				ResizeDebounce: a.cfg.UI.ResizeDebounce,
				OutputDir:      a.cfg.Output.Dir,
				Format:         format,
			}

			if a.cfg.Data.Watch {
				w, err := watcher.NewWatcher(a.cfg.DataPath())
				if err != nil {
					return err
				}
				if err := w.Start(); err != nil {
					return err
				}
				defer w.Stop()
				opts.Watcher = w
			}

			// The coalescing wrapper hides Reload; route it to the file source.
			m := ui.NewModel(ctx, opts)
			if r, ok := src.(interface{ Reload() error }); ok {
				m = m.WithReloader(r)
			}
			return runTUIProgram(m)
		},
	}
	cmd.Flags().BoolVar(&pick, "pick", false, "choose sources and category interactively first")
	cmd.Flags().BoolVar(&watch, "watch", false, "reload when the dataset file changes")
	return cmd
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

func newForm(groups ...*huh.Group) *huh.Form {
	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if !isTerminal() {
		form = form.WithAccessible(true)
	}
	return form
}

// pickFilter asks for sources and a category, offering the values the
// dataset actually has when it can list them.
func pickFilter(ctx context.Context, src datasource.Source, current model.FilterCriteria) (model.FilterCriteria, error) {
	var facets datasource.Facets
	if fc, ok := src.(datasource.Faceter); ok {
		var err error
		if facets, err = fc.Facets(ctx); err != nil {
			return current, err
		}
	}

	sources := current.Sources
	category := current.Category
	raw := strings.Join(current.Sources, ", ")
	var fields []huh.Field

	if len(facets.Sources) > 0 {
		opts := make([]huh.Option[string], len(facets.Sources))
		for i, s := range facets.Sources {
			opts[i] = huh.NewOption(s, s)
		}
		fields = append(fields, huh.NewMultiSelect[string]().
			Title("Review sources").
			Description("None selected means all").
			Options(opts...).
			Value(&sources))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Review sources").
			Description("Comma separated, empty for all").
			Value(&raw))
	}

	if len(facets.Categories) > 0 {
		opts := []huh.Option[string]{huh.NewOption("All categories", "")}
		for _, c := range facets.Categories {
			opts = append(opts, huh.NewOption(c, c))
		}
		fields = append(fields, huh.NewSelect[string]().
			Title("Category").
			Options(opts...).
			Value(&category))
	} else {
		fields = append(fields, huh.NewInput().
			Title("Category").
			Description("Empty for all").
			Value(&category))
	}

	if err := newForm(huh.NewGroup(fields...)).Run(); err != nil {
		return current, err
	}
	if len(facets.Sources) == 0 {
		sources = splitList(raw)
	}
	return model.FilterCriteria{Sources: sources, Category: category}, nil
}

func runTUIProgram(m ui.Model) error {
	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithoutSignalHandler(),
	)

	runDone := make(chan struct{})
	defer close(runDone)

	// Graceful shutdown on SIGINT/SIGTERM.
	sigCh := make(chan os.Signal, 2)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-runDone:
			return
		case <-sigCh:
		}

		p.Quit()

		select {
		case <-runDone:
			return
		case <-sigCh:
		case <-time.After(5 * time.Second):
		}

		p.Kill()
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) || errors.Is(err, tea.ErrInterrupted) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
